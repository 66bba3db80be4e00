package app

import (
    "fmt"
    "strings"
)

// runInfo records which backends produced a page.
type runInfo struct {
    Search      string // search backend name
    Provider    string // llm provider name
    Model       string
    Sources     int
    SearchCache bool
    LLMCache    bool
}

// appendRunFooter appends a deterministic footer with the backends and
// cache state used for the page, so exported documents can be reproduced.
func appendRunFooter(markdown string, info runInfo) string {
    var b strings.Builder
    b.WriteString(strings.TrimRight(markdown, "\n"))
    b.WriteString("\n\n---\n")
    fmt.Fprintf(&b, "Generated by goanswer %s: search=%s; llm=%s; model=%s; sources_used=%d; search_cache=%t; llm_cache=%t\n",
        BuildVersion,
        strings.TrimSpace(info.Search),
        strings.TrimSpace(info.Provider),
        strings.TrimSpace(info.Model),
        info.Sources,
        info.SearchCache,
        info.LLMCache,
    )
    return b.String()
}
