package app

import (
    "bufio"
    "io"
    "regexp"
    "strings"

    "github.com/jung-kurt/gofpdf"
)

var pdfLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`) // [text](url)

// WritePDF renders Markdown text to w as a simple A4 document. Headings
// become bold lines and [text](url) links stay clickable; other Markdown
// is written as plain text.
func WritePDF(w io.Writer, title, markdown string) error {
    pdf := gofpdf.New("P", "mm", "A4", "")
    pdf.SetTitle(title, true)
    pdf.SetCreator("goanswer "+BuildVersion, true)
    tr := pdf.UnicodeTranslatorFromDescriptor("")
    pdf.SetFont("Helvetica", "", 11)
    pdf.AddPage()

    scanner := bufio.NewScanner(strings.NewReader(markdown))
    scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
    for scanner.Scan() {
        s := strings.TrimSpace(scanner.Text())
        if s == "" {
            pdf.Ln(4)
            continue
        }
        if s == "---" {
            y := pdf.GetY()
            pdf.Line(10, y, 200, y)
            pdf.Ln(3)
            continue
        }
        if strings.HasPrefix(s, "#") {
            level := 0
            for level < len(s) && s[level] == '#' { level++ }
            text := strings.TrimSpace(s[level:])
            if text == "" { continue }
            size := 16.0
            switch {
            case level == 2:
                size = 14.0
            case level >= 3:
                size = 12.0
            }
            pdf.SetFont("Helvetica", "B", size)
            pdf.MultiCell(0, 8, tr(text), "", "L", false)
            pdf.SetFont("Helvetica", "", 11)
            continue
        }
        s = strings.NewReplacer("**", "", "__", "").Replace(s)
        parts := pdfLinkRe.FindAllStringSubmatchIndex(s, -1)
        if len(parts) == 0 {
            pdf.MultiCell(0, 5, tr(s), "", "L", false)
            continue
        }
        pos := 0
        for _, m := range parts {
            // m: [fullStart, fullEnd, textStart, textEnd, urlStart, urlEnd]
            if m[0] > pos {
                pdf.Write(5, tr(s[pos:m[0]]))
            }
            text := tr(s[m[2]:m[3]])
            url := s[m[4]:m[5]]
            if url == "#" || strings.HasPrefix(url, "#") {
                pdf.Write(5, text)
            } else {
                pdf.WriteLinkString(5, text, url)
            }
            pos = m[1]
        }
        if pos < len(s) {
            pdf.Write(5, tr(s[pos:]))
        }
        pdf.Ln(6)
    }
    if err := scanner.Err(); err != nil {
        return err
    }
    return pdf.Output(w)
}
