package service

import (
	"strings"

	"github.com/octobees/leads-pipeline/internal/ai"
	"github.com/octobees/leads-pipeline/internal/entity"
	"github.com/octobees/leads-pipeline/internal/extract"
	"github.com/octobees/leads-pipeline/internal/phone"
)

// fuseRecord combines regex and AI extraction into one canonical record.
// List fields are unioned and deduplicated; scalar fields prefer the AI value
// with regex fallback; social links prefer regex with AI fill-in. Every AI
// value crosses the same validators the extractors use, so nothing a filter
// rejected can re-enter the record.
func fuseRecord(regex extract.Result, profile ai.BusinessProfile) entity.BusinessRecord {
	record := entity.BusinessRecord{
		Emails:          fuseEmails(regex.Emails, profile.Email),
		Phones:          fusePhones(regex.Phones, profile.Phone),
		Addresses:       fuseAddresses(regex.Addresses, profile.Address),
		RelatedWebsites: regex.Websites,
		MapData:         regex.MapData,
	}

	record.Name = strings.TrimSpace(profile.BusinessName)
	record.Description = strings.TrimSpace(profile.About)
	record.Hours = strings.TrimSpace(profile.Hours)
	record.Services = strings.TrimSpace(profile.Services)
	record.ContactNames = profile.ContactNames
	for _, member := range profile.Members {
		record.Members = append(record.Members, entity.MemberBusiness{
			Name:    member.Name,
			Website: member.Website,
			Phone:   member.Phone,
		})
	}

	record.Website = strings.TrimSpace(profile.Website)
	if record.Website == "" && len(regex.Websites) > 0 {
		record.Website = regex.Websites[0]
	}

	record.Socials = regex.Socials
	for platform, raw := range profile.Socials {
		if record.Socials.Get(platform) != "" {
			continue
		}
		if cleaned, resolved, ok := extract.CleanSocialURL(raw); ok && resolved == platform {
			record.Socials.Set(platform, cleaned)
		}
	}

	if record.MapData.EmbedURL == "" {
		record.MapData = entity.MapMetadata{
			EmbedURL:  strings.TrimSpace(profile.MapEmbedURL),
			PlaceID:   strings.TrimSpace(profile.MapPlaceID),
			Latitude:  strings.TrimSpace(profile.Latitude),
			Longitude: strings.TrimSpace(profile.Longitude),
		}
	}

	record.Provenance = entity.Provenance{
		RegexEmails:    len(regex.Emails),
		RegexPhones:    len(regex.Phones),
		RegexAddresses: len(regex.Addresses),
		RegexSocials:   regex.Socials.Count(),
		RegexWebsites:  len(regex.Websites),
		AIExtracted:    !profile.IsEmpty(),
	}
	return record
}

// fuseEmails unions regex and AI emails, deduplicating case-insensitively.
func fuseEmails(regexEmails []string, aiEmail string) []string {
	merged := append([]string{}, regexEmails...)
	seen := make(map[string]struct{}, len(merged))
	for _, email := range merged {
		seen[strings.ToLower(email)] = struct{}{}
	}
	if normalized, ok := extract.NormalizeEmail(aiEmail); ok {
		if _, dup := seen[normalized]; !dup {
			merged = append(merged, normalized)
		}
	}
	return merged
}

func fusePhones(regexPhones []string, aiPhone string) []string {
	merged := append([]string{}, regexPhones...)
	seen := make(map[string]struct{}, len(merged))
	for _, p := range merged {
		seen[p] = struct{}{}
	}
	if normalized, ok := phone.Normalize(aiPhone); ok {
		if _, dup := seen[normalized]; !dup {
			merged = append(merged, normalized)
		}
	}
	return merged
}

func fuseAddresses(regexAddresses []string, aiAddress string) []string {
	merged := append([]string{}, regexAddresses...)
	aiAddress = strings.Join(strings.Fields(aiAddress), " ")
	if aiAddress == "" {
		return merged
	}
	for _, addr := range merged {
		if strings.EqualFold(addr, aiAddress) {
			return merged
		}
	}
	return append(merged, aiAddress)
}
