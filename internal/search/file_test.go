package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileProvider_ReadsVerticalFixture(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "videos.json"), []byte(`{"videos":[]}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	p := &FileProvider{Dir: dir}
	resp, err := p.Search(context.Background(), VerticalVideos, "anything")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if string(resp.Body) != `{"videos":[]}` || resp.Source != "file" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if _, err := p.Search(context.Background(), VerticalMaps, "anything"); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestFileProvider_RejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "search.json"), []byte(`{`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	p := &FileProvider{Dir: dir}
	if _, err := p.Search(context.Background(), VerticalWeb, "q"); err == nil {
		t.Fatal("expected error")
	}
}

func TestFileProvider_EmptyDir(t *testing.T) {
	p := &FileProvider{}
	if _, err := p.Search(context.Background(), VerticalWeb, "q"); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestFileProvider_AliasReadsCanonicalFixture(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "videos.json"), []byte(`{"videos":[]}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	p := &FileProvider{Dir: dir}
	resp, err := p.Search(context.Background(), Vertical("video"), "q")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Vertical != VerticalVideos {
		t.Fatalf("vertical = %q, want %q", resp.Vertical, VerticalVideos)
	}
}
