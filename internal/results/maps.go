package results

import (
	"strings"

	"github.com/tidwall/gjson"
)

const (
	MaxPlaces = 5
	MapZoom   = 14

	NoMapResults = "No map results available for this query."

	DefaultPlaceTitle  = "Unknown Location"
	DefaultAddress     = "No address available"
	DefaultPlaceRating = "N/A"
	DefaultRatingCount = "0"
	DefaultPhone       = "Not available"
	DefaultWebsite     = "#"
	DefaultPlaceType   = "Location"
	HoursNotAvailable  = "Hours not available"
)

// LatLng is a map coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is a pin on the results map.
type Marker struct {
	LatLng
	Title   string `json:"title"`
	Address string `json:"address"`
	Rating  string `json:"rating"`
}

// Place is one place card next to the map.
type Place struct {
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Rating      string   `json:"rating"`
	RatingCount string   `json:"ratingCount"`
	Phone       string   `json:"phone"`
	Website     string   `json:"website"`
	Type        string   `json:"type"`
	Hours       []string `json:"hours,omitempty"` // "day: time" lines
}

// HoursText is the opening hours as display lines, or the default text.
func (p Place) HoursText() []string {
	if len(p.Hours) == 0 {
		return []string{HoursNotAvailable}
	}
	return p.Hours
}

// MapSection is the maps vertical. When Empty is set, nothing else is shown.
type MapSection struct {
	Empty   string   `json:"empty,omitempty"`
	Center  LatLng   `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers,omitempty"`
	Places  []Place  `json:"places,omitempty"`
}

// BuildMaps centers the map on the first place, pins every place with
// coordinates, and lists the first few places as cards.
func BuildMaps(body []byte) *MapSection {
	places, _ := list(body, "places")
	if len(places) == 0 {
		return &MapSection{Empty: NoMapResults}
	}
	first := places[0]
	sec := &MapSection{
		Center: LatLng{Lat: first.Get("latitude").Float(), Lng: first.Get("longitude").Float()},
		Zoom:   MapZoom,
	}
	for _, p := range places {
		lat, lng := p.Get("latitude").Float(), p.Get("longitude").Float()
		if lat == 0 || lng == 0 {
			continue
		}
		sec.Markers = append(sec.Markers, Marker{
			LatLng:  LatLng{Lat: lat, Lng: lng},
			Title:   field(p, "title", DefaultPlaceTitle),
			Address: field(p, "address", DefaultAddress),
			Rating:  field(p, "rating", DefaultPlaceRating),
		})
	}
	for _, p := range head(places, MaxPlaces) {
		sec.Places = append(sec.Places, Place{
			Title:       field(p, "title", DefaultPlaceTitle),
			Address:     field(p, "address", DefaultAddress),
			Rating:      field(p, "rating", DefaultPlaceRating),
			RatingCount: ratingCount(p.Get("ratingCount")),
			Phone:       field(p, "phoneNumber", DefaultPhone),
			Website:     field(p, "website", DefaultWebsite),
			Type:        field(p, "type", DefaultPlaceType),
			Hours:       openingHours(p.Get("openingHours")),
		})
	}
	return sec
}

// ratingCount keeps the value exactly as the response wrote it, so 12345
// stays "12345" rather than being regrouped.
func ratingCount(v gjson.Result) string {
	if !v.Exists() || v.Type == gjson.Null {
		return DefaultRatingCount
	}
	if v.Type == gjson.Number {
		return v.Raw
	}
	return v.String()
}

// openingHours keeps the day order of the response document.
func openingHours(v gjson.Result) []string {
	if v.IsObject() {
		var lines []string
		v.ForEach(func(day, hours gjson.Result) bool {
			lines = append(lines, day.String()+": "+hours.String())
			return true
		})
		return lines
	}
	if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
		return []string{strings.TrimSpace(v.Str)}
	}
	return nil
}
