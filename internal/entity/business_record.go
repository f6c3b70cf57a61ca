package entity

// SocialPlatforms is the fixed set of platform keys a record may carry.
var SocialPlatforms = []string{
	"facebook", "instagram", "linkedin", "twitter",
	"youtube", "tiktok", "pinterest", "yelp",
}

// SocialLinks stores at most one canonical URL per supported platform.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Youtube   string `json:"youtube,omitempty"`
	Tiktok    string `json:"tiktok,omitempty"`
	Pinterest string `json:"pinterest,omitempty"`
	Yelp      string `json:"yelp,omitempty"`
}

// Get returns the URL stored for a platform key, or "".
func (s *SocialLinks) Get(platform string) string {
	switch platform {
	case "facebook":
		return s.Facebook
	case "instagram":
		return s.Instagram
	case "linkedin":
		return s.LinkedIn
	case "twitter":
		return s.Twitter
	case "youtube":
		return s.Youtube
	case "tiktok":
		return s.Tiktok
	case "pinterest":
		return s.Pinterest
	case "yelp":
		return s.Yelp
	}
	return ""
}

// Set stores a URL for a platform key; unknown keys are ignored.
func (s *SocialLinks) Set(platform, value string) {
	switch platform {
	case "facebook":
		s.Facebook = value
	case "instagram":
		s.Instagram = value
	case "linkedin":
		s.LinkedIn = value
	case "twitter":
		s.Twitter = value
	case "youtube":
		s.Youtube = value
	case "tiktok":
		s.Tiktok = value
	case "pinterest":
		s.Pinterest = value
	case "yelp":
		s.Yelp = value
	}
}

// Count reports how many platforms hold a URL.
func (s *SocialLinks) Count() int {
	n := 0
	for _, platform := range SocialPlatforms {
		if s.Get(platform) != "" {
			n++
		}
	}
	return n
}

// MapMetadata holds map-embed details extracted from a page. Coordinates stay
// opaque strings; the pipeline never does arithmetic on them.
type MapMetadata struct {
	EmbedURL  string `json:"embed_url,omitempty"`
	PlaceID   string `json:"place_id,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

// Provenance records per-source extraction counts for quality auditing.
type Provenance struct {
	RegexEmails    int  `json:"regex_emails"`
	RegexPhones    int  `json:"regex_phones"`
	RegexAddresses int  `json:"regex_addresses"`
	RegexSocials   int  `json:"regex_socials"`
	RegexWebsites  int  `json:"regex_websites"`
	AIExtracted    bool `json:"ai_extracted"`
}

// MemberBusiness is a sub-record for directory-type pages listing member
// businesses.
type MemberBusiness struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Competitor annotates one same-category place relative to a maps result.
type Competitor struct {
	Name           string  `json:"name"`
	Rating         float64 `json:"rating"`
	Reviews        int     `json:"reviews"`
	RatingPosition int     `json:"rating_position"`
}

// ReviewSummary condenses the review fan-out for a maps result.
type ReviewSummary struct {
	PositivePct       int         `json:"positive_pct"`
	NegativePct       int         `json:"negative_pct"`
	StarHistogram     map[int]int `json:"star_histogram"`
	HasOwnerResponses bool        `json:"has_owner_responses"`
	TopTopics         []string    `json:"top_topics,omitempty"`
}

// BusinessRecord is the fused output of one extraction pass. Every
// email/phone/social value has passed its validator before landing here;
// fusion never re-introduces a rejected value.
type BusinessRecord struct {
	Name            string           `json:"name,omitempty"`
	Description     string           `json:"description,omitempty"`
	Emails          []string         `json:"emails,omitempty"`
	Phones          []string         `json:"phones,omitempty"`
	Addresses       []string         `json:"addresses,omitempty"`
	Website         string           `json:"website,omitempty"`
	RelatedWebsites []string         `json:"related_websites,omitempty"`
	Socials         SocialLinks      `json:"socials"`
	MapData         MapMetadata      `json:"map_data"`
	Hours           string           `json:"hours,omitempty"`
	Services        string           `json:"services,omitempty"`
	ContactNames    []string         `json:"contact_names,omitempty"`
	Members         []MemberBusiness `json:"members,omitempty"`
	Provenance      Provenance       `json:"provenance"`

	// Search/maps strategies only.
	SourceURL     string         `json:"source_url,omitempty"`
	Rating        float64        `json:"rating,omitempty"`
	Reviews       int            `json:"reviews,omitempty"`
	Category      string         `json:"category,omitempty"`
	PainScore     float64        `json:"pain_score,omitempty"`
	RevenueLow    float64        `json:"revenue_low,omitempty"`
	RevenueHigh   float64        `json:"revenue_high,omitempty"`
	Competitors   []Competitor   `json:"competitors,omitempty"`
	ReviewSummary *ReviewSummary `json:"review_summary,omitempty"`

	// Single-field job kinds.
	TextContent string      `json:"text_content,omitempty"`
	Tables      []TableData `json:"tables,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// TableData is one HTML table lifted from a page.
type TableData struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
}

// FieldsCount tallies the populated top-level fields of a record. Used as the
// denormalized fields_count for single-result jobs.
func (r *BusinessRecord) FieldsCount() int {
	count := 0
	if r.Name != "" {
		count++
	}
	if r.Description != "" {
		count++
	}
	if len(r.Emails) > 0 {
		count++
	}
	if len(r.Phones) > 0 {
		count++
	}
	if len(r.Addresses) > 0 {
		count++
	}
	if r.Website != "" {
		count++
	}
	if len(r.RelatedWebsites) > 0 {
		count++
	}
	count += r.Socials.Count()
	if r.MapData.EmbedURL != "" || r.MapData.PlaceID != "" {
		count++
	}
	if r.Hours != "" {
		count++
	}
	if r.Services != "" {
		count++
	}
	if len(r.ContactNames) > 0 {
		count++
	}
	if len(r.Members) > 0 {
		count++
	}
	if r.TextContent != "" {
		count++
	}
	if len(r.Tables) > 0 {
		count++
	}
	return count
}
