package app

import (
    "bytes"
    "testing"
)

func TestWritePDF_ProducesDocument(t *testing.T) {
    md := "# café\n\n## AI Answer\n\nSee **this** [source](https://example.com/a) and [nothing](#).\n\n---\nfooter\n"
    var buf bytes.Buffer
    if err := WritePDF(&buf, "café", md); err != nil {
        t.Fatalf("WritePDF: %v", err)
    }
    out := buf.Bytes()
    if !bytes.HasPrefix(out, []byte("%PDF-")) {
        t.Fatalf("missing PDF header: %q", out[:min(16, len(out))])
    }
    if !bytes.Contains(out, []byte("https://example.com/a")) {
        t.Fatalf("expected link annotation for source URL")
    }
    if !bytes.Contains(bytes.TrimSpace(out), []byte("%%EOF")) {
        t.Fatalf("missing EOF marker")
    }
}

func TestWritePDF_Empty(t *testing.T) {
    var buf bytes.Buffer
    if err := WritePDF(&buf, "", ""); err != nil {
        t.Fatalf("WritePDF: %v", err)
    }
    if buf.Len() == 0 {
        t.Fatalf("expected a one-page document")
    }
}
