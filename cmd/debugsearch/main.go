package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hyperifyio/goanswer/internal/app"
	"github.com/hyperifyio/goanswer/internal/results"
	"github.com/hyperifyio/goanswer/internal/search"
)

func main() {
	names := make([]string, len(search.Verticals))
	for i, v := range search.Verticals { names[i] = string(v) }
	vertical := flag.String("vertical", "search", "Vertical to query: "+strings.Join(names, ", "))
	flag.Parse()
	q := "What is love?"
	if flag.NArg() > 0 { q = flag.Arg(0) }

	v, ok := search.ParseVertical(*vertical)
	if !ok { fmt.Fprintf(os.Stderr, "unknown vertical %q, using web\n", *vertical) }

	var cfg app.Config
	app.ApplyEnvToConfig(&cfg)
	prov := &search.Serper{
		BaseURL:   cfg.SerperURL,
		APIKey:    cfg.SerperKey,
		UserAgent: "debugsearch/1.0",
		Country:   cfg.SerperCountry,
		Language:  cfg.SerperLang,
		Num:       cfg.SerperNum,
		RetryMax:  cfg.SerperRetries,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	resp, err := prov.Search(ctx, v, q)
	fmt.Println("err:", err)
	if err != nil { os.Exit(1) }

	switch v {
	case search.VerticalMaps:
		sec := results.BuildMaps(resp.Body)
		if sec.Empty != "" { fmt.Println(sec.Empty) }
		for i, p := range sec.Places {
			fmt.Printf("%d. %s — %s (%s, %s reviews)\n", i+1, p.Title, p.Address, p.Rating, p.RatingCount)
		}
	case search.VerticalImages:
		sec := results.BuildImages(resp.Body)
		if sec.Empty != "" { fmt.Println(sec.Empty) }
		for i, img := range sec.Images {
			fmt.Printf("%d. %s — %s\n", i+1, img.Caption, img.URL)
		}
	case search.VerticalVideos:
		sec := results.BuildVideos(resp.Body)
		if sec.Empty != "" { fmt.Println(sec.Empty) }
		for i, vid := range sec.Videos {
			fmt.Printf("%d. %s — %s\n", i+1, vid.Title, vid.EmbedURL)
		}
	case search.VerticalShopping:
		sec := results.BuildShopping(resp.Body)
		if sec.Empty != "" { fmt.Println(sec.Empty) }
		for i, p := range sec.Products {
			fmt.Printf("%d. %s — %s (%s)\n", i+1, p.Title, p.Price, p.Source)
		}
	default:
		sources, _ := results.BuildSources(resp.Body)
		for _, s := range sources {
			fmt.Printf("%d. %s — %s\n", s.Index, s.Title, s.Link)
		}
	}
}
