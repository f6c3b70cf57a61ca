package extract

import (
	"net/url"
	"regexp"
	"strings"
)

const maxWebsites = 10

var genericURLPattern = regexp.MustCompile(`https?://[^\s"'<>()\[\]{}]+`)

var imageCDNDomains = []string{
	"cloudinary.com", "imgix.net", "gravatar.com", "googleusercontent.com",
	"cloudfront.net", "akamaized.net", "twimg.com", "fbcdn.net",
	"wixstatic.com", "squarespace-cdn.com",
}

var assetQueryMarkers = []string{"w=", "width=", "h=", "height=", "fit=", "format=", "quality="}

// Websites extracts auxiliary website URLs from page text, filtered of social
// domains, images, CDNs and root-only links, capped at the first 10 unique
// survivors.
func Websites(c Content) []string {
	seen := make(map[string]struct{})
	var valid []string
	for _, raw := range genericURLPattern.FindAllString(c.Text, -1) {
		cleaned, ok := cleanWebsiteURL(raw)
		if !ok {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		valid = append(valid, cleaned)
		if len(valid) >= maxWebsites {
			break
		}
	}
	return valid
}

func cleanWebsiteURL(raw string) (string, bool) {
	raw = strings.TrimRight(strings.TrimSpace(raw), `.,;:!?"'`)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	for domain := range socialDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return "", false
		}
	}
	lowerPath := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowerPath, ext) {
			return "", false
		}
	}
	for _, cdn := range imageCDNDomains {
		if host == cdn || strings.HasSuffix(host, "."+cdn) {
			return "", false
		}
	}
	if u.RawQuery != "" {
		query := strings.ToLower(u.RawQuery)
		for _, marker := range assetQueryMarkers {
			if strings.HasPrefix(query, marker) || strings.Contains(query, "&"+marker) {
				return "", false
			}
		}
	}
	// Bare anchors and root-path-only links carry no signal.
	if u.Fragment != "" && u.Path == "" {
		return "", false
	}
	if (u.Path == "" || u.Path == "/") && u.RawQuery == "" {
		return "", false
	}
	return u.String(), true
}
