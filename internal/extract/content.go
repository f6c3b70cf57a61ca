// Package extract pulls business signals out of fetched page content. Each
// extractor is a pure function over the same Content value, so callers may run
// them concurrently without coordination.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/octobees/leads-pipeline/internal/entity"
)

// Content is one fetched page: plain text plus raw markup when the fetch
// service provides it. Either half may be empty.
type Content struct {
	Text   string
	Markup string
}

// Combined concatenates text and markup for extractors that scan both.
func (c Content) Combined() string {
	if c.Markup == "" {
		return c.Text
	}
	if c.Text == "" {
		return c.Markup
	}
	return c.Text + "\n" + c.Markup
}

func (c Content) doc() (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(c.Markup))
}

// Result aggregates the output of all six regex extractors for one page.
type Result struct {
	Emails    []string
	Phones    []string
	Addresses []string
	Socials   entity.SocialLinks
	MapData   entity.MapMetadata
	Websites  []string
}

// All runs every extractor over the content and collects the results.
func All(c Content) Result {
	return Result{
		Emails:    Emails(c),
		Phones:    Phones(c),
		Addresses: Addresses(c),
		Socials:   Socials(c),
		MapData:   MapData(c),
		Websites:  Websites(c),
	}
}
