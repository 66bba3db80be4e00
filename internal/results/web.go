package results

// MaxSources is how many organic results feed the answer and the sources list.
const MaxSources = 5

const (
	DefaultTitle      = "No title"
	DefaultPromptLink = "No link"
	DefaultSourceLink = "#"
	DefaultSnippet    = "No snippet"
)

// Source is one numbered entry of the sources list.
type Source struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// PromptEntry is one organic result as embedded in the answer prompt.
type PromptEntry struct {
	Title   string
	Link    string
	Snippet string
}

// BuildSources returns the first organic results for display. ok is false
// when the payload is missing or has no organic key.
func BuildSources(body []byte) (sources []Source, ok bool) {
	items, ok := list(body, "organic")
	if !ok {
		return nil, false
	}
	items = head(items, MaxSources)
	sources = make([]Source, 0, len(items))
	for i, r := range items {
		sources = append(sources, Source{
			Index:   i + 1,
			Title:   field(r, "title", DefaultTitle),
			Link:    field(r, "link", DefaultSourceLink),
			Snippet: field(r, "snippet", DefaultSnippet),
		})
	}
	return sources, true
}

// PromptEntries returns the first organic results for the answer prompt.
// A missing payload yields no entries.
func PromptEntries(body []byte) []PromptEntry {
	items, _ := list(body, "organic")
	items = head(items, MaxSources)
	out := make([]PromptEntry, 0, len(items))
	for _, r := range items {
		out = append(out, PromptEntry{
			Title:   field(r, "title", DefaultTitle),
			Link:    field(r, "link", DefaultPromptLink),
			Snippet: field(r, "snippet", DefaultSnippet),
		})
	}
	return out
}
