package extract

import (
	"regexp"
	"strings"

	"github.com/octobees/leads-pipeline/internal/phone"
)

// Scrub patterns strip digit-bearing noise out of markup before phone
// matching: asset URLs, non-tel href/src attributes, CSS url() values, UUID
// tokens and query strings all contain runs that pass a naive phone regex.
var (
	scrubFullURL     = regexp.MustCompile(`https?://[^\s"'<>]+`)
	scrubSrcAttr     = regexp.MustCompile(`src\s*=\s*["'][^"']*["']`)
	scrubHrefAttr    = regexp.MustCompile(`href\s*=\s*["'][^"']*["']`)
	scrubCSSURL      = regexp.MustCompile(`url\([^)]*\)`)
	scrubUUID        = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	scrubQueryString = regexp.MustCompile(`\?[^\s"'<>]+`)
)

var (
	usPhonePattern       = regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]\d{4}|\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`)
	intlPhonePattern     = regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{1,4}\)?(?:[-.\s]?\d{2,4}){2,4}`)
	tollFreePhonePattern = regexp.MustCompile(`\b1?[-.\s]?\(?8(?:00|33|44|55|66|77|88)\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	leadingOnePattern    = regexp.MustCompile(`\b1[-.\s]\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	telHrefPattern       = regexp.MustCompile(`href\s*=\s*["']tel:([^"']+)["']`)
)

// Phones extracts validated, E.164-normalized phone numbers from page text
// and scrubbed markup.
func Phones(c Content) []string {
	haystack := c.Text
	if c.Markup != "" {
		haystack += "\n" + scrubMarkup(c.Markup)
	}

	var candidates []string
	for _, p := range []*regexp.Regexp{usPhonePattern, intlPhonePattern, tollFreePhonePattern, leadingOnePattern} {
		candidates = append(candidates, p.FindAllString(haystack, -1)...)
	}
	if c.Markup != "" {
		for _, m := range telHrefPattern.FindAllStringSubmatch(c.Markup, -1) {
			candidates = append(candidates, m[1])
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	var valid []string
	for _, raw := range candidates {
		normalized, ok := phone.Normalize(raw)
		if !ok {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		valid = append(valid, normalized)
	}
	return valid
}

func scrubMarkup(markup string) string {
	out := scrubUUID.ReplaceAllString(markup, " ")
	out = scrubFullURL.ReplaceAllString(out, " ")
	out = scrubSrcAttr.ReplaceAllString(out, " ")
	out = scrubCSSURL.ReplaceAllString(out, " ")
	out = scrubQueryString.ReplaceAllString(out, " ")
	out = scrubNonTelHrefs(out)
	return out
}

// scrubNonTelHrefs removes href attributes unless they are tel: links.
func scrubNonTelHrefs(markup string) string {
	return scrubHrefAttr.ReplaceAllStringFunc(markup, func(attr string) string {
		if strings.Contains(attr, "tel:") {
			return attr
		}
		return " "
	})
}
