// Package results turns raw search API documents into display-ready
// sections. Every lookup tolerates missing fields by substituting a fixed
// default string; sections are built independently from their own payload.
package results

import (
	"github.com/tidwall/gjson"
)

// Sections selects which optional verticals are displayed. The AI answer and
// its web sources are always shown.
type Sections struct {
	Maps     bool `json:"maps"`
	Images   bool `json:"images"`
	Videos   bool `json:"videos"`
	Shopping bool `json:"shopping"`
}

// Any reports whether at least one optional section is enabled.
func (s Sections) Any() bool {
	return s.Maps || s.Images || s.Videos || s.Shopping
}

// Payloads holds the raw body for each vertical; nil means no data.
type Payloads struct {
	Web      []byte
	Maps     []byte
	Images   []byte
	Videos   []byte
	Shopping []byte
}

// Page is everything rendered for one search. A nil optional section was not
// enabled and is not displayed.
type Page struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`

	// ShowSources is false when the web payload is missing or lacks organic
	// results; the sources list is then omitted entirely.
	ShowSources bool     `json:"showSources"`
	Sources     []Source `json:"sources,omitempty"`

	Maps     *MapSection      `json:"maps,omitempty"`
	Images   *ImageSection    `json:"images,omitempty"`
	Videos   *VideoSection    `json:"videos,omitempty"`
	Shopping *ShoppingSection `json:"shopping,omitempty"`
}

// Build assembles the page sections for the enabled verticals. The answer is
// filled in by the caller.
func Build(query string, sections Sections, p Payloads) *Page {
	page := &Page{Query: query}
	page.Sources, page.ShowSources = BuildSources(p.Web)
	if sections.Maps {
		page.Maps = BuildMaps(p.Maps)
	}
	if sections.Images {
		page.Images = BuildImages(p.Images)
	}
	if sections.Videos {
		page.Videos = BuildVideos(p.Videos)
	}
	if sections.Shopping {
		page.Shopping = BuildShopping(p.Shopping)
	}
	return page
}

// field returns the textual value at path or def when the field is absent
// or null.
func field(r gjson.Result, path, def string) string {
	v := r.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return def
	}
	return v.String()
}

// list returns the array stored under key and whether the key is present.
// A present value that is not an array yields an empty list.
func list(body []byte, key string) ([]gjson.Result, bool) {
	if len(body) == 0 {
		return nil, false
	}
	v := gjson.GetBytes(body, key)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, false
	}
	if !v.IsArray() {
		return []gjson.Result{}, true
	}
	return v.Array(), true
}

func head(items []gjson.Result, n int) []gjson.Result {
	if len(items) > n {
		return items[:n]
	}
	return items
}
