package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/octobees/leads-pipeline/internal/entity"
)

var (
	mapIframePattern = regexp.MustCompile(`<iframe[^>]+src\s*=\s*["']([^"']*(?:google\.[a-z.]+/maps|maps\.google)[^"']*)["']`)
	mapLinkPattern   = regexp.MustCompile(`https?://(?:www\.)?(?:google\.[a-z.]+/maps|maps\.google\.[a-z.]+|maps\.app\.goo\.gl|goo\.gl/maps)[^\s"'<>)\]]*`)

	placeIDPattern    = regexp.MustCompile(`(?:place_id[=:]|!1s)([A-Za-z0-9_\-:]+)`)
	atCoordsPattern   = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	bangCoordsPattern = regexp.MustCompile(`!3d(-?\d+\.\d+)!4d(-?\d+\.\d+)`)
	llCoordsPattern   = regexp.MustCompile(`ll=(-?\d+\.\d+),(-?\d+\.\d+)`)
)

// MapData looks for an embedded map iframe first, then a bare map link, and
// pulls a place identifier plus coordinates out of the URL when present.
// Coordinates are kept as opaque strings.
func MapData(c Content) entity.MapMetadata {
	meta := entity.MapMetadata{}

	embedURL := findMapEmbed(c)
	if embedURL == "" {
		if m := mapLinkPattern.FindString(c.Combined()); m != "" {
			embedURL = m
		}
	}
	if embedURL == "" {
		return meta
	}
	meta.EmbedURL = embedURL

	if m := placeIDPattern.FindStringSubmatch(embedURL); m != nil {
		meta.PlaceID = m[1]
	}
	for _, p := range []*regexp.Regexp{atCoordsPattern, bangCoordsPattern, llCoordsPattern} {
		if m := p.FindStringSubmatch(embedURL); m != nil {
			meta.Latitude = m[1]
			meta.Longitude = m[2]
			break
		}
	}
	return meta
}

func findMapEmbed(c Content) string {
	if c.Markup == "" {
		return ""
	}
	if doc, err := c.doc(); err == nil {
		embed := ""
		doc.Find("iframe[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			src, _ := sel.Attr("src")
			if mapLinkPattern.MatchString(src) {
				embed = src
				return false
			}
			return true
		})
		if embed != "" {
			return embed
		}
	}
	if m := mapIframePattern.FindStringSubmatch(c.Markup); m != nil {
		return m[1]
	}
	return ""
}
