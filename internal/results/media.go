package results

import (
	"strings"

	"github.com/tidwall/gjson"
)

const (
	MaxImages   = 10
	MaxVideos   = 6
	MaxProducts = 10

	NoImageResults    = "No image results available for this query."
	NoVideoResults    = "No video results available."
	NoRelevantVideos  = "No relevant videos found for this query."
	NoShoppingResults = "No shopping results available for this query."

	DefaultVideoTitle = "Unknown Video"
	DefaultVideoLink  = "#"
	DefaultDuration   = "Unknown duration"
	DefaultChannel    = "Unknown Channel"

	DefaultProductTitle  = "Unknown Product"
	DefaultProductLink   = "#"
	DefaultPrice         = "Price not available"
	DefaultProductSource = "Unknown Source"
	DefaultProductRating = "No rating"

	youtubeWatch = "youtube.com/watch?v="
	youtubeEmbed = "https://www.youtube.com/embed/"
)

type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type ImageSection struct {
	Empty  string  `json:"empty,omitempty"`
	Images []Image `json:"images,omitempty"`
}

// BuildImages keeps the first images; the caption is the title up to the
// first ellipsis.
func BuildImages(body []byte) *ImageSection {
	items, ok := list(body, "images")
	if !ok {
		return &ImageSection{Empty: NoImageResults}
	}
	sec := &ImageSection{Images: []Image{}}
	for _, r := range head(items, MaxImages) {
		caption := field(r, "title", "")
		if caption != "" {
			caption, _, _ = strings.Cut(caption, "...")
		}
		sec.Images = append(sec.Images, Image{
			URL:     field(r, "imageUrl", ""),
			Caption: caption,
		})
	}
	return sec
}

type Video struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Duration string `json:"duration"`
	Channel  string `json:"channel"`
	EmbedURL string `json:"embedUrl"`
}

type VideoSection struct {
	Empty  string  `json:"empty,omitempty"`
	Videos []Video `json:"videos,omitempty"`
}

// BuildVideos keeps YouTube results only and turns watch links into embed
// URLs. Entries without a watch link are dropped.
func BuildVideos(body []byte) *VideoSection {
	items, ok := list(body, "videos")
	if !ok {
		return &VideoSection{Empty: NoVideoResults}
	}
	youtube := make([]gjson.Result, 0, len(items))
	for _, r := range items {
		if strings.ToLower(strings.TrimSpace(field(r, "source", ""))) == "youtube" {
			youtube = append(youtube, r)
		}
	}
	if len(youtube) == 0 {
		return &VideoSection{Empty: NoRelevantVideos}
	}
	sec := &VideoSection{Videos: []Video{}}
	for _, r := range head(youtube, MaxVideos) {
		link := field(r, "link", DefaultVideoLink)
		id, ok := YouTubeID(link)
		if !ok {
			continue
		}
		sec.Videos = append(sec.Videos, Video{
			Title:    field(r, "title", DefaultVideoTitle),
			Link:     link,
			Duration: field(r, "duration", DefaultDuration),
			Channel:  field(r, "channel", DefaultChannel),
			EmbedURL: youtubeEmbed + id,
		})
	}
	return sec
}

// YouTubeID extracts the video id from a youtube.com watch link: the text
// after the last "v=" up to the next "&".
func YouTubeID(link string) (string, bool) {
	if !strings.Contains(link, youtubeWatch) {
		return "", false
	}
	id := link[strings.LastIndex(link, "v=")+len("v="):]
	id, _, _ = strings.Cut(id, "&")
	return id, true
}

type Product struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Price    string `json:"price"`
	Source   string `json:"source"`
	ImageURL string `json:"imageUrl"`
	Rating   string `json:"rating"`
}

type ShoppingSection struct {
	Empty    string    `json:"empty,omitempty"`
	Products []Product `json:"products,omitempty"`
}

func BuildShopping(body []byte) *ShoppingSection {
	items, ok := list(body, "shopping")
	if !ok {
		return &ShoppingSection{Empty: NoShoppingResults}
	}
	sec := &ShoppingSection{Products: []Product{}}
	for _, r := range head(items, MaxProducts) {
		sec.Products = append(sec.Products, Product{
			Title:    field(r, "title", DefaultProductTitle),
			Link:     field(r, "link", DefaultProductLink),
			Price:    field(r, "price", DefaultPrice),
			Source:   field(r, "source", DefaultProductSource),
			ImageURL: field(r, "imageUrl", ""),
			Rating:   field(r, "rating", DefaultProductRating),
		})
	}
	return sec
}
