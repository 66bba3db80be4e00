package search

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
)

// FileProvider serves vertical responses from local JSON fixtures for
// offline/testing use. Each vertical is read from <Dir>/<vertical>.json, for
// example search.json or maps.json, holding a document in the same shape the
// API returns. The query is ignored.
type FileProvider struct {
    Dir string
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Search(_ context.Context, vertical Vertical, _ string) (Response, error) {
    if strings.TrimSpace(f.Dir) == "" {
        return Response{}, errors.New("file provider dir is empty")
    }
    vertical = vertical.Canonical()
    b, err := os.ReadFile(filepath.Join(f.Dir, string(vertical)+".json"))
    if err != nil {
        return Response{}, err
    }
    if !json.Valid(b) {
        return Response{}, fmt.Errorf("%s fixture is not valid JSON", vertical)
    }
    return Response{Vertical: vertical, Body: b, Source: f.Name()}, nil
}
