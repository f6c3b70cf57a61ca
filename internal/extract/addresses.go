package extract

import (
	"regexp"
	"strings"
)

// Two pattern families for US postal addresses: a street-suffix anchored form
// and a looser comma-separated "<number> <street>, <city>, <ST> <zip>" form.
var (
	streetAddressPattern = regexp.MustCompile(`\b\d{1,5}\s+(?:[A-Za-z0-9.'\-]+\s+){1,5}(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Drive|Dr|Lane|Ln|Way|Court|Ct|Place|Pl|Circle|Cir|Parkway|Pkwy|Highway|Hwy)\.?(?:,?\s+(?:Suite|Ste|Unit|Apt|#)\.?\s*[A-Za-z0-9\-]+)?,?\s+[A-Za-z.\s]{2,30},?\s+[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`)
	looseAddressPattern  = regexp.MustCompile(`\b\d{1,5}\s+[A-Za-z0-9.'\-\s]{3,40},\s*[A-Za-z.\s]{2,30},\s*[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`)
)

// Addresses extracts deduplicated US postal address strings from page text.
func Addresses(c Content) []string {
	text := c.Text
	candidates := streetAddressPattern.FindAllString(text, -1)
	candidates = append(candidates, looseAddressPattern.FindAllString(text, -1)...)

	seen := make(map[string]struct{}, len(candidates))
	var valid []string
	for _, raw := range candidates {
		addr := strings.Join(strings.Fields(raw), " ")
		key := strings.ToLower(addr)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		valid = append(valid, addr)
	}
	return valid
}
