package extract

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/octobees/leads-pipeline/internal/entity"
)

var socialDomains = map[string]string{
	"facebook.com":  "facebook",
	"fb.com":        "facebook",
	"instagram.com": "instagram",
	"linkedin.com":  "linkedin",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"youtube.com":   "youtube",
	"youtu.be":      "youtube",
	"tiktok.com":    "tiktok",
	"pinterest.com": "pinterest",
	"yelp.com":      "yelp",
}

var socialURLPattern = regexp.MustCompile(`https?://(?:[a-z0-9\-]+\.)?(?:facebook|fb|instagram|linkedin|twitter|x|youtube|tiktok|pinterest|yelp)\.com/[^\s"'<>)\]}]+|https?://youtu\.be/[^\s"'<>)\]}]+`)

// Share/plugin endpoints point at the platform, not at the business profile.
var sharePathMarkers = []string{
	"/sharer", "/share.php", "/share?", "/intent/", "/plugins/",
	"/shareArticle", "/dialog/", "/oauth", "/login",
}

// Socials finds at most one profile URL per platform using a tiered strategy,
// highest-confidence markup sections first. The first valid match per
// platform wins; later tiers never override earlier ones.
func Socials(c Content) entity.SocialLinks {
	links := entity.SocialLinks{}

	if c.Markup != "" {
		if doc, err := c.doc(); err == nil {
			collectSectionAnchors(doc, &links)
			collectLabeledAnchors(doc, &links)
			collectIconAnchors(doc, &links)
		}
	}

	// Plain pattern fallback over everything.
	for _, raw := range socialURLPattern.FindAllString(c.Combined(), -1) {
		tryStoreSocial(&links, raw)
	}

	if c.Markup != "" {
		if doc, err := c.doc(); err == nil {
			collectSameAs(doc, &links)
		}
	}

	return links
}

// Tier: anchors inside sections semantically tagged as footer, header, nav or
// social/contact blocks.
func collectSectionAnchors(doc *goquery.Document, links *entity.SocialLinks) {
	selector := "footer a[href], header a[href], nav a[href], " +
		"[class*='social'] a[href], [id*='social'] a[href], " +
		"[class*='contact'] a[href], a[class*='social'][href]"
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			tryStoreSocial(links, href)
		}
	})
}

// Tier: anchors whose aria-label, title or class names reference a platform.
func collectLabeledAnchors(doc *goquery.Document, links *entity.SocialLinks) {
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		label := strings.ToLower(
			sel.AttrOr("aria-label", "") + " " +
				sel.AttrOr("title", "") + " " +
				sel.AttrOr("class", ""))
		if !mentionsPlatform(label) {
			return
		}
		if href, ok := sel.Attr("href"); ok {
			tryStoreSocial(links, href)
		}
	})
}

// Tier: anchors carrying an icon glyph whose href also matches a platform
// domain.
func collectIconAnchors(doc *goquery.Document, links *entity.SocialLinks) {
	doc.Find("a[href]:has(i), a[href]:has(svg), a[href]:has(span[class*='icon'])").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			tryStoreSocial(links, href)
		}
	})
}

// Tier: sameAs arrays in embedded JSON-LD blocks.
func collectSameAs(doc *goquery.Document, links *entity.SocialLinks) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var block struct {
			SameAs []string `json:"sameAs"`
		}
		if err := json.Unmarshal([]byte(sel.Text()), &block); err != nil {
			return
		}
		for _, raw := range block.SameAs {
			tryStoreSocial(links, raw)
		}
	})
}

func mentionsPlatform(label string) bool {
	for _, name := range []string{"facebook", "instagram", "linkedin", "twitter", "youtube", "tiktok", "pinterest", "yelp"} {
		if strings.Contains(label, name) {
			return true
		}
	}
	return false
}

// tryStoreSocial cleans a candidate URL, resolves its platform and stores it
// if that platform slot is still empty.
func tryStoreSocial(links *entity.SocialLinks, raw string) {
	cleaned, platform, ok := CleanSocialURL(raw)
	if !ok {
		return
	}
	if links.Get(platform) == "" {
		links.Set(platform, cleaned)
	}
}

// CleanSocialURL trims punctuation artifacts off a candidate URL, resolves
// its platform and rejects share endpoints and bare domain roots. Exposed so
// fusion can gate AI-supplied links with the same rules.
func CleanSocialURL(raw string) (string, string, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "([{<")
	raw = strings.TrimRight(raw, `.,;:!?)]}>"'`+"`")
	raw = strings.TrimSuffix(raw, "\\")
	if raw == "" || strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, "mailto:") || strings.HasPrefix(raw, "tel:") {
		return "", "", false
	}
	if !strings.Contains(raw, "://") {
		if !strings.HasPrefix(raw, "//") {
			return "", "", false
		}
		raw = "https:" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	platform := ""
	for domain, name := range socialDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			platform = name
			break
		}
	}
	if platform == "" {
		return "", "", false
	}

	path := u.EscapedPath()
	for _, marker := range sharePathMarkers {
		if strings.Contains(strings.ToLower(path+"?"), marker) {
			return "", "", false
		}
	}
	// A bare domain root is the platform home page, not a profile.
	if path == "" || path == "/" {
		return "", "", false
	}

	return u.String(), platform, true
}
