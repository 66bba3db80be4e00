package extract

import (
    "strings"

    "golang.org/x/net/html"
    "golang.org/x/net/html/atom"
)

// PlainText reduces a possibly marked-up snippet to readable text. Search
// APIs occasionally leak highlighting tags (<b>, <em>) or entities into
// titles and snippets; those are removed before the text is embedded in a
// prompt. Inputs without markup are returned with whitespace collapsed.
func PlainText(fragment string) string {
    if !strings.ContainsAny(fragment, "<&") {
        return collapseSpaces(strings.TrimSpace(fragment))
    }
    nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
        Type:     html.ElementNode,
        Data:     "div",
        DataAtom: atom.Div,
    })
    if err != nil {
        return collapseSpaces(strings.TrimSpace(fragment))
    }
    var b strings.Builder
    for _, n := range nodes {
        collectText(&b, n)
    }
    return collapseSpaces(strings.TrimSpace(b.String()))
}

func collectText(b *strings.Builder, n *html.Node) {
    if n.Type == html.ElementNode {
        switch strings.ToLower(n.Data) {
        case "script", "style", "noscript", "iframe":
            return
        case "br", "p", "li", "div":
            b.WriteString(" ")
        }
    }
    if n.Type == html.TextNode {
        b.WriteString(n.Data)
    }
    for c := n.FirstChild; c != nil; c = c.NextSibling {
        collectText(b, c)
    }
}

func collapseSpaces(s string) string {
    var b strings.Builder
    lastSpace := false
    for _, r := range s {
        if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\u00a0' {
            if !lastSpace {
                b.WriteByte(' ')
                lastSpace = true
            }
            continue
        }
        b.WriteRune(r)
        lastSpace = false
    }
    return b.String()
}
