package results

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildSources_DefaultsAndLimit(t *testing.T) {
	t.Parallel()
	body := []byte(`{"organic":[
		{"title":"A","link":"https://a.example","snippet":"alpha"},
		{},
		{"title":null,"link":"https://c.example"},
		{"title":"D"},{"title":"E"},{"title":"F"}
	]}`)
	got, ok := BuildSources(body)
	if !ok {
		t.Fatal("expected sources to be shown")
	}
	if len(got) != MaxSources {
		t.Fatalf("len = %d, want %d", len(got), MaxSources)
	}
	if got[0] != (Source{Index: 1, Title: "A", Link: "https://a.example", Snippet: "alpha"}) {
		t.Fatalf("first source: %+v", got[0])
	}
	if got[1] != (Source{Index: 2, Title: DefaultTitle, Link: DefaultSourceLink, Snippet: DefaultSnippet}) {
		t.Fatalf("defaults not applied: %+v", got[1])
	}
	if got[2].Title != DefaultTitle {
		t.Fatalf("null title should fall back to default, got %q", got[2].Title)
	}
}

func TestBuildSources_MissingPayload(t *testing.T) {
	t.Parallel()
	if _, ok := BuildSources(nil); ok {
		t.Fatal("nil payload should hide sources")
	}
	if _, ok := BuildSources([]byte(`{"knowledgeGraph":{}}`)); ok {
		t.Fatal("payload without organic should hide sources")
	}
	got, ok := BuildSources([]byte(`{"organic":[]}`))
	if !ok || len(got) != 0 {
		t.Fatalf("empty organic should show an empty list, got ok=%v len=%d", ok, len(got))
	}
}

func TestPromptEntries_UsesPromptLinkDefault(t *testing.T) {
	t.Parallel()
	got := PromptEntries([]byte(`{"organic":[{"title":"T"}]}`))
	want := []PromptEntry{{Title: "T", Link: DefaultPromptLink, Snippet: DefaultSnippet}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if len(PromptEntries(nil)) != 0 {
		t.Fatal("nil payload should produce no entries")
	}
}

func TestBuildMaps(t *testing.T) {
	t.Parallel()
	body := []byte(`{"places":[
		{"title":"Blue Bottle","address":"1 Main St","latitude":37.77,"longitude":-122.41,"rating":4.5,"ratingCount":12345,
		 "phoneNumber":"555-0100","website":"https://bb.example","type":"Coffee shop",
		 "openingHours":{"Monday":"7 AM-5 PM","Tuesday":"7 AM-5 PM"}},
		{"title":"No Coordinates"},
		{"latitude":37.78,"longitude":-122.42}
	]}`)
	sec := BuildMaps(body)
	if sec.Empty != "" {
		t.Fatalf("unexpected empty state %q", sec.Empty)
	}
	if sec.Center != (LatLng{Lat: 37.77, Lng: -122.41}) || sec.Zoom != MapZoom {
		t.Fatalf("center/zoom: %+v %d", sec.Center, sec.Zoom)
	}
	if len(sec.Markers) != 2 {
		t.Fatalf("markers = %d, want 2 (place without coordinates skipped)", len(sec.Markers))
	}
	if m := sec.Markers[1]; m.Title != DefaultPlaceTitle || m.Address != DefaultAddress || m.Rating != DefaultPlaceRating {
		t.Fatalf("marker defaults: %+v", m)
	}
	first := sec.Places[0]
	if first.Rating != "4.5" || first.RatingCount != "12345" {
		t.Fatalf("rating values: %q %q", first.Rating, first.RatingCount)
	}
	if !reflect.DeepEqual(first.Hours, []string{"Monday: 7 AM-5 PM", "Tuesday: 7 AM-5 PM"}) {
		t.Fatalf("hours: %v", first.Hours)
	}
	second := sec.Places[1]
	want := Place{
		Title: "No Coordinates", Address: DefaultAddress, Rating: DefaultPlaceRating,
		RatingCount: DefaultRatingCount, Phone: DefaultPhone, Website: DefaultWebsite, Type: DefaultPlaceType,
	}
	if !reflect.DeepEqual(second, want) {
		t.Fatalf("place defaults:\n got %+v\nwant %+v", second, want)
	}
	if got := second.HoursText(); len(got) != 1 || got[0] != HoursNotAvailable {
		t.Fatalf("hours text default: %v", got)
	}
}

func TestBuildMaps_CenterDefaultsToZero(t *testing.T) {
	t.Parallel()
	sec := BuildMaps([]byte(`{"places":[{"title":"Somewhere"}]}`))
	if sec.Center != (LatLng{}) || len(sec.Markers) != 0 || len(sec.Places) != 1 {
		t.Fatalf("unexpected section: %+v", sec)
	}
}

func TestBuildMaps_LimitsPlaceCards(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	b.WriteString(`{"places":[`)
	for i := 0; i < 8; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"latitude":1,"longitude":2}`)
	}
	b.WriteString(`]}`)
	sec := BuildMaps([]byte(b.String()))
	if len(sec.Places) != MaxPlaces || len(sec.Markers) != 8 {
		t.Fatalf("places=%d markers=%d", len(sec.Places), len(sec.Markers))
	}
}

func TestBuildMaps_EmptyStates(t *testing.T) {
	t.Parallel()
	for _, body := range []string{"", `{}`, `{"places":[]}`, `{"places":null}`} {
		if sec := BuildMaps([]byte(body)); sec.Empty != NoMapResults {
			t.Fatalf("body %q: expected empty state, got %+v", body, sec)
		}
	}
}

func TestBuildImages(t *testing.T) {
	t.Parallel()
	body := []byte(`{"images":[
		{"title":"Golden Gate Bridge... - Wikipedia","imageUrl":"https://img.example/1.jpg"},
		{"imageUrl":"https://img.example/2.jpg"},
		{"title":""}
	]}`)
	sec := BuildImages(body)
	want := []Image{
		{URL: "https://img.example/1.jpg", Caption: "Golden Gate Bridge"},
		{URL: "https://img.example/2.jpg", Caption: ""},
		{URL: "", Caption: ""},
	}
	if !reflect.DeepEqual(sec.Images, want) {
		t.Fatalf("got %+v", sec.Images)
	}
	if BuildImages(nil).Empty != NoImageResults {
		t.Fatal("missing payload should show the empty state")
	}
}

func TestBuildVideos_FiltersYouTube(t *testing.T) {
	t.Parallel()
	body := []byte(`{"videos":[
		{"title":"Intro","link":"https://www.youtube.com/watch?v=abc123&t=10s","source":" YouTube ","channel":"Go","duration":"3:01"},
		{"title":"Vimeo","link":"https://vimeo.com/1","source":"Vimeo"},
		{"link":"https://youtu.be/short","source":"youtube"},
		{"link":"https://m.youtube.com/watch?v=xyz","source":"youtube"}
	]}`)
	sec := BuildVideos(body)
	if sec.Empty != "" {
		t.Fatalf("unexpected empty state %q", sec.Empty)
	}
	want := []Video{
		{Title: "Intro", Link: "https://www.youtube.com/watch?v=abc123&t=10s", Duration: "3:01", Channel: "Go", EmbedURL: "https://www.youtube.com/embed/abc123"},
		{Title: DefaultVideoTitle, Link: "https://m.youtube.com/watch?v=xyz", Duration: DefaultDuration, Channel: DefaultChannel, EmbedURL: "https://www.youtube.com/embed/xyz"},
	}
	if !reflect.DeepEqual(sec.Videos, want) {
		t.Fatalf("got %+v", sec.Videos)
	}
}

func TestBuildVideos_EmptyStates(t *testing.T) {
	t.Parallel()
	if got := BuildVideos(nil).Empty; got != NoVideoResults {
		t.Fatalf("nil payload: %q", got)
	}
	if got := BuildVideos([]byte(`{"videos":[{"source":"Vimeo"}]}`)).Empty; got != NoRelevantVideos {
		t.Fatalf("no youtube: %q", got)
	}
}

func TestYouTubeID(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":                "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL1":       "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=first&feature=share&v=last": "last",
	}
	for link, want := range cases {
		if got, ok := YouTubeID(link); !ok || got != want {
			t.Errorf("YouTubeID(%q) = %q,%v want %q", link, got, ok, want)
		}
	}
	if _, ok := YouTubeID("#"); ok {
		t.Error("default link must not be embeddable")
	}
}

func TestBuildShopping(t *testing.T) {
	t.Parallel()
	body := []byte(`{"shopping":[{"title":"Shoe","price":"$99.00","source":"Store","rating":4.8,"imageUrl":"https://i.example/s.jpg","link":"https://s.example"},{}]}`)
	sec := BuildShopping(body)
	if len(sec.Products) != 2 {
		t.Fatalf("products = %d", len(sec.Products))
	}
	if sec.Products[0].Rating != "4.8" || sec.Products[0].Price != "$99.00" {
		t.Fatalf("first product: %+v", sec.Products[0])
	}
	want := Product{Title: DefaultProductTitle, Link: DefaultProductLink, Price: DefaultPrice, Source: DefaultProductSource, Rating: DefaultProductRating}
	if sec.Products[1] != want {
		t.Fatalf("defaults: %+v", sec.Products[1])
	}
	if BuildShopping([]byte(`{"organic":[]}`)).Empty != NoShoppingResults {
		t.Fatal("missing key should show the empty state")
	}
}

func TestBuild_OnlyEnabledSections(t *testing.T) {
	t.Parallel()
	p := Payloads{
		Web:    []byte(`{"organic":[{"title":"A"}]}`),
		Videos: []byte(`{"videos":[{"source":"youtube","link":"https://www.youtube.com/watch?v=1"}]}`),
	}
	page := Build("q", Sections{Videos: true}, p)
	if page.Maps != nil || page.Images != nil || page.Shopping != nil {
		t.Fatalf("disabled sections must be nil: %+v", page)
	}
	if page.Videos == nil || len(page.Videos.Videos) != 1 {
		t.Fatalf("videos section missing: %+v", page.Videos)
	}
	if !page.ShowSources || len(page.Sources) != 1 {
		t.Fatalf("sources: %+v", page.Sources)
	}
}

func TestBuild_SectionsAreIndependent(t *testing.T) {
	t.Parallel()
	all := Sections{Maps: true, Images: true, Videos: true, Shopping: true}
	full := Payloads{
		Web:      []byte(`{"organic":[]}`),
		Maps:     []byte(`{"places":[{"title":"P","latitude":1,"longitude":1}]}`),
		Images:   []byte(`{"images":[{"title":"I"}]}`),
		Videos:   []byte(`{"videos":[{"source":"youtube","link":"https://www.youtube.com/watch?v=v1"}]}`),
		Shopping: []byte(`{"shopping":[{"title":"S"}]}`),
	}
	withShopping := Build("q", all, full)

	noShopping := full
	noShopping.Shopping = []byte(`{"searchParameters":{}}`)
	without := Build("q", all, noShopping)

	if !reflect.DeepEqual(withShopping.Videos, without.Videos) ||
		!reflect.DeepEqual(withShopping.Maps, without.Maps) ||
		!reflect.DeepEqual(withShopping.Images, without.Images) {
		t.Fatal("removing shopping data changed another section")
	}
	if without.Shopping.Empty != NoShoppingResults {
		t.Fatalf("shopping empty state: %+v", without.Shopping)
	}
}

func TestPage_Markdown(t *testing.T) {
	t.Parallel()
	page := Build("best coffee", Sections{Shopping: true}, Payloads{
		Web:      []byte(`{"organic":[{"title":"Guide","link":"https://g.example","snippet":"beans"}]}`),
		Shopping: nil,
	})
	page.Answer = "Coffee is **great**."
	md := page.Markdown()
	for _, want := range []string{
		"# best coffee",
		"## AI Answer",
		"Coffee is **great**.",
		"1. [Guide](https://g.example)",
		"## Related Products",
		NoShoppingResults,
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "## Map Results") {
		t.Fatal("disabled section rendered")
	}
}
