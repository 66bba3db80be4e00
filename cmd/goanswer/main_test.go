package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperifyio/goanswer/internal/app"
	"github.com/hyperifyio/goanswer/internal/stub"
)

func stubArgs(t *testing.T, opts stub.Options) []string {
	t.Helper()
	srv := httptest.NewServer(stub.NewHandler(opts))
	t.Cleanup(srv.Close)
	return []string{
		"-env", "",
		"-serper.url", srv.URL,
		"-serper.key", "test-key",
		"-llm.provider", "openai",
		"-llm.base", srv.URL + "/v1",
		"-llm.model", stub.Model,
	}
}

func TestRun_OneShotWritesMarkdownAndPDF(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "answer.md")
	pdf := filepath.Join(dir, "answer.pdf")
	args := append(stubArgs(t, stub.Options{}), "-query", "espresso", "-sections", "maps, videos", "-output", out, "-pdf", pdf)

	if code := run(args, &bytes.Buffer{}); code != 0 {
		t.Fatalf("exit=%d, want 0", code)
	}
	md, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"# espresso", "## AI Answer", "## Map Results", "## Related Videos", "Generated by goanswer"} {
		if !strings.Contains(string(md), want) {
			t.Fatalf("output missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(string(md), "## Image Results") {
		t.Fatalf("images were not requested")
	}
	b, err := os.ReadFile(pdf)
	if err != nil || !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("pdf not written: %v", err)
	}
}

func TestRun_OneShotStdout(t *testing.T) {
	var stdout bytes.Buffer
	args := append(stubArgs(t, stub.Options{}), "-query", "espresso")
	if code := run(args, &stdout); code != 0 {
		t.Fatalf("exit=%d", code)
	}
	if !strings.Contains(stdout.String(), "**espresso** explained") {
		t.Fatalf("stdout=%q", stdout.String())
	}
}

func TestRun_AnswerFailureExitsTwo(t *testing.T) {
	args := append(stubArgs(t, stub.Options{FailChat: true}), "-query", "espresso")
	if code := run(args, &bytes.Buffer{}); code != 2 {
		t.Fatalf("exit=%d, want 2", code)
	}
}

func TestRun_UnknownSectionExitsTwo(t *testing.T) {
	args := append(stubArgs(t, stub.Options{}), "-query", "espresso", "-sections", "news")
	if code := run(args, &bytes.Buffer{}); code != 2 {
		t.Fatalf("exit=%d, want 2", code)
	}
}

func TestRun_BadFlagExitsTwo(t *testing.T) {
	if code := run([]string{"-no-such-flag"}, &bytes.Buffer{}); code != 2 {
		t.Fatalf("exit=%d, want 2", code)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "goanswer.yaml")
	yml := "addr: \":7000\"\nserper:\n  key: from-file\n  gl: se\nllm:\n  model: file-model\n"
	if err := os.WriteFile(cfgPath, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SERPER_GL=dk\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("SERPER_GL", "")
	t.Setenv("SERPER_API_KEY", "from-env")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("ADDR", "")
	t.Setenv("SEARCH_TIMEOUT", "")

	opts, set, err := parseFlags([]string{"-config", cfgPath, "-env", envPath, "-llm.model", "flag-model"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	cfg, err := loadConfig(opts, set)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Fatalf("Addr=%q, want file value", cfg.Addr)
	}
	if cfg.SerperKey != "from-env" {
		t.Fatalf("SerperKey=%q, env should beat file", cfg.SerperKey)
	}
	if cfg.SerperCountry != "dk" {
		t.Fatalf("SerperCountry=%q, dotenv should beat file", cfg.SerperCountry)
	}
	if cfg.LLMModel != "flag-model" {
		t.Fatalf("LLMModel=%q, flag should win", cfg.LLMModel)
	}
	if cfg.SearchTimeout != app.DefaultSearchTimeout || cfg.MaxConcurrent != app.DefaultMaxConcurrent {
		t.Fatalf("defaults not applied: %v %d", cfg.SearchTimeout, cfg.MaxConcurrent)
	}
}

func TestParseSections(t *testing.T) {
	s, err := parseSections("web, Maps,image,videos,shopping")
	if err != nil {
		t.Fatalf("parseSections: %v", err)
	}
	if !s.Maps || !s.Images || !s.Videos || !s.Shopping {
		t.Fatalf("sections=%+v", s)
	}
	if s, _ := parseSections(""); s.Any() {
		t.Fatalf("empty list should enable nothing")
	}
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	if code := run([]string{"-version"}, &stdout); code != 0 {
		t.Fatalf("exit=%d", code)
	}
	if !strings.HasPrefix(stdout.String(), "goanswer "+app.BuildVersion) {
		t.Fatalf("stdout=%q", stdout.String())
	}
}
