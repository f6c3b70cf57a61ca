// Package relevance filters and scores search-driven extraction candidates.
// It is a heuristic precision filter, not a classifier; false negatives and
// positives are expected and acceptable.
package relevance

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/octobees/leads-pipeline/internal/entity"
)

// MinScore is the fixed retention cutoff for scored candidates.
const MinScore = 20

// Domains that host discussion, news, listings or marketplaces rather than a
// business's own site.
var blockedDomains = []string{
	"reddit.com",
	"quora.com",
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"linkedin.com",
	"youtube.com",
	"tiktok.com",
	"pinterest.com",
	"wikipedia.org",
	"amazon.com",
	"ebay.com",
	"etsy.com",
	"craigslist.org",
	"indeed.com",
	"glassdoor.com",
	"ziprecruiter.com",
	"nytimes.com",
	"forbes.com",
	"bloomberg.com",
	"cnn.com",
	"bbc.com",
	"medium.com",
	"tripadvisor.com",
	"angi.com",
	"thumbtack.com",
}

// Path shapes that denote editorial content instead of a business site.
var blockedPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/article[s]?/`),
	regexp.MustCompile(`/blog/`),
	regexp.MustCompile(`/news/`),
	regexp.MustCompile(`/top-\d+`),
	regexp.MustCompile(`/best-\d+`),
	regexp.MustCompile(`/\d+-best-`),
	regexp.MustCompile(`/guide[s]?/`),
	regexp.MustCompile(`/review[s]?/`),
	regexp.MustCompile(`/forum[s]?/`),
}

// Fixed field weights for the 0-100 completeness score.
const (
	weightName    = 20
	weightPhone   = 25
	weightEmail   = 20
	weightAddress = 15
	weightWebsite = 10
	weightSocial  = 10
)

// Allowed reports whether a candidate's source URL may enter the result set.
func Allowed(sourceURL string) bool {
	u, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, domain := range blockedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return false
		}
	}
	path := strings.ToLower(u.Path)
	for _, pattern := range blockedPathPatterns {
		if pattern.MatchString(path) {
			return false
		}
	}
	return true
}

// Score sums fixed weights for field presence on a candidate record.
func Score(record *entity.BusinessRecord) int {
	score := 0
	if plausibleName(record.Name) {
		score += weightName
	}
	if len(record.Phones) > 0 {
		score += weightPhone
	}
	if len(record.Emails) > 0 {
		score += weightEmail
	}
	if len(record.Addresses) > 0 {
		score += weightAddress
	}
	if strings.TrimSpace(record.Website) != "" {
		score += weightWebsite
	}
	if record.Socials.Count() > 0 {
		score += weightSocial
	}
	return score
}

// Retained reports whether a candidate passes both the blocklist and the
// minimum completeness score.
func Retained(record *entity.BusinessRecord) bool {
	if record.SourceURL != "" && !Allowed(record.SourceURL) {
		return false
	}
	return Score(record) >= MinScore
}

func plausibleName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 120 {
		return false
	}
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}
