package results

import (
	"fmt"
	"strings"
)

// Markdown renders the page as a single Markdown document, section by
// section in display order.
func (p *Page) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Query)

	b.WriteString("## AI Answer\n\n")
	b.WriteString(strings.TrimSpace(p.Answer))
	b.WriteString("\n")
	if p.ShowSources {
		b.WriteString("\n### Sources\n\n")
		for _, s := range p.Sources {
			fmt.Fprintf(&b, "%d. [%s](%s)\n\n   _%s_\n\n", s.Index, s.Title, s.Link, s.Snippet)
		}
	}

	if m := p.Maps; m != nil {
		b.WriteString("\n## Map Results\n\n")
		if m.Empty != "" {
			b.WriteString(m.Empty + "\n")
		}
		for _, pl := range m.Places {
			fmt.Fprintf(&b, "### %s\n\n", pl.Title)
			fmt.Fprintf(&b, "- Address: %s\n", pl.Address)
			fmt.Fprintf(&b, "- Rating: %s (%s reviews)\n", pl.Rating, pl.RatingCount)
			fmt.Fprintf(&b, "- Phone: %s\n", pl.Phone)
			fmt.Fprintf(&b, "- Type: %s\n", pl.Type)
			fmt.Fprintf(&b, "- Hours: %s\n", strings.Join(pl.HoursText(), "; "))
			fmt.Fprintf(&b, "- [Visit Website](%s)\n\n", pl.Website)
		}
	}

	if im := p.Images; im != nil {
		b.WriteString("\n## Image Results\n\n")
		if im.Empty != "" {
			b.WriteString(im.Empty + "\n")
		}
		for _, img := range im.Images {
			fmt.Fprintf(&b, "- [%s](%s)\n", captionOr(img.Caption, img.URL), img.URL)
		}
	}

	if v := p.Videos; v != nil {
		b.WriteString("\n## Related Videos\n\n")
		if v.Empty != "" {
			b.WriteString(v.Empty + "\n")
		}
		for _, vid := range v.Videos {
			fmt.Fprintf(&b, "- [%s](%s) | %s | %s\n", vid.Title, vid.Link, vid.Channel, vid.Duration)
		}
	}

	if s := p.Shopping; s != nil {
		b.WriteString("\n## Related Products\n\n")
		if s.Empty != "" {
			b.WriteString(s.Empty + "\n")
		}
		for _, pr := range s.Products {
			fmt.Fprintf(&b, "- [%s](%s) | %s | %s | %s\n", pr.Title, pr.Link, pr.Price, pr.Rating, pr.Source)
		}
	}
	return b.String()
}

func captionOr(caption, fallback string) string {
	if strings.TrimSpace(caption) != "" {
		return caption
	}
	return fallback
}
