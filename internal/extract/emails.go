package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var (
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+\-']+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	mailtoPattern = regexp.MustCompile(`mailto:([^"'?>\s]+)`)
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico", ".bmp"}

// Domains that show up in markup constantly but never belong to the business:
// documentation placeholders plus analytics/CDN vendors.
var placeholderEmailDomains = map[string]struct{}{
	"example.com":          {},
	"example.org":          {},
	"example.net":          {},
	"domain.com":           {},
	"yourdomain.com":       {},
	"email.com":            {},
	"sentry.io":            {},
	"wixpress.com":         {},
	"sentry.wixpress.com":  {},
	"cloudflare.com":       {},
	"googleapis.com":       {},
	"googletagmanager.com": {},
	"google-analytics.com": {},
	"schema.org":           {},
}

// Emails extracts deduplicated, lowercased email addresses from page text and
// mailto/href targets in the markup.
func Emails(c Content) []string {
	candidates := emailPattern.FindAllString(c.Text, -1)
	if c.Markup != "" {
		candidates = append(candidates, emailPattern.FindAllString(c.Markup, -1)...)
		for _, m := range mailtoPattern.FindAllStringSubmatch(c.Markup, -1) {
			candidates = append(candidates, m[1])
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	var valid []string
	for _, raw := range candidates {
		email, ok := NormalizeEmail(raw)
		if !ok {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		valid = append(valid, email)
	}
	return valid
}

// NormalizeEmail lowercases a candidate and applies the same noise filters the
// email extractor uses. Fusion runs AI-supplied addresses through this so no
// rejected value can re-enter a record.
func NormalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.Trim(strings.TrimSpace(raw), ".,;:"))
	if email == "" || !emailLooksReal(email) {
		return "", false
	}
	return email, true
}

func emailLooksReal(email string) bool {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return false
	}
	local, domain := parts[0], parts[1]
	if local == "" || domain == "" {
		return false
	}
	// Filenames like image@2x.png match the email pattern.
	for _, ext := range imageExtensions {
		if strings.HasSuffix(email, ext) {
			return false
		}
	}
	if _, blocked := placeholderEmailDomains[domain]; blocked {
		return false
	}
	for blocked := range placeholderEmailDomains {
		if strings.HasSuffix(domain, "."+blocked) {
			return false
		}
	}
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	ascii, err := idna.Lookup.ToASCII(domain)
	return err == nil && ascii != ""
}
