package budget

import "testing"

func TestEstimateTokensFromChars(t *testing.T) {
    cases := []struct{
        in int
        want int
    }{
        {0, 0},
        {1, 1},           // ceil(1/4)=1
        {3, 1},           // ceil(3/4)=1
        {4, 1},           // ceil(4/4)=1
        {5, 2},           // ceil(5/4)=2
        {400, 100},
    }
    for _, c := range cases {
        got := EstimateTokensFromChars(c.in)
        if got != c.want {
            t.Fatalf("EstimateTokensFromChars(%d) = %d, want %d", c.in, got, c.want)
        }
    }
}

func TestEstimatePromptTokens(t *testing.T) {
    // system(6)->2, user(12)->3
    if got := EstimatePromptTokens("system", "user message"); got != 5 {
        t.Fatalf("EstimatePromptTokens() = %d, want 5", got)
    }
}

func TestModelContextTokens(t *testing.T) {
    if ModelContextTokens("") != 8192 {
        t.Fatal("empty model should default to 8192")
    }
    if ModelContextTokens("gemini-2.0-flash-exp") != 1_000_000 {
        t.Fatal("gemini 2 models should have a 1M window")
    }
    if ModelContextTokens("models/gemini-1.5-pro") != 1_000_000 {
        t.Fatal("models/ prefix should be ignored")
    }
    if ModelContextTokens("LLAMA-3.1") < 100_000 {
        t.Fatal("case-insensitive match for llama-3.1 should be ~128k")
    }
    if ModelContextTokens("mystery") != 8192 {
        t.Fatal("unknown model should default to 8192")
    }
}

func TestFits(t *testing.T) {
    if !Fits("llama-3", 1024, 7000) {
        t.Fatal("7000+1024 should fit in 8192")
    }
    if Fits("llama-3", 2048, 7000) {
        t.Fatal("7000+2048 should not fit in 8192")
    }
}
