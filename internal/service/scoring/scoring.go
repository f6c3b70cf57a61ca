// Package scoring estimates how much a place would benefit from outbound
// outreach. Higher pain means weaker digital presence and reputation, which
// is the opportunity signal the dialer payload carries.
package scoring

import "strings"

const (
	categoryPresence   = "digital_presence"
	categoryReputation = "reputation"
	categoryVisibility = "visibility"
	categoryEngagement = "engagement"
)

// PlaceSignals captures the observable signals a pain score is derived from.
type PlaceSignals struct {
	Rating            float64
	ReviewCount       int
	HasWebsite        bool
	HasPhone          bool
	HasHours          bool
	HasOwnerResponses bool
	NegativePct       int
	RatingPosition    int
	CompetitorCount   int
}

// PainResult reports the aggregate pain score and the per-category breakdown.
type PainResult struct {
	Total     int
	Breakdown map[string]int
}

// ComputePain evaluates the signals and returns the 0-100 pain breakdown.
func ComputePain(input PlaceSignals) PainResult {
	breakdown := map[string]int{
		categoryPresence:   scorePresence(input),
		categoryReputation: scoreReputation(input),
		categoryVisibility: scoreVisibility(input),
		categoryEngagement: scoreEngagement(input),
	}

	total := 0
	for _, value := range breakdown {
		total += value
	}

	return PainResult{
		Total:     total,
		Breakdown: breakdown,
	}
}

func scorePresence(input PlaceSignals) int {
	score := 0
	if !input.HasWebsite {
		score += 20
	}
	if !input.HasPhone {
		score += 10
	}
	if score > 30 {
		return 30
	}
	return score
}

func scoreReputation(input PlaceSignals) int {
	score := 0
	switch {
	case input.Rating > 0 && input.Rating < 3.5:
		score += 15
	case input.Rating > 0 && input.Rating < 4.0:
		score += 10
	}
	if input.ReviewCount < 10 {
		score += 10
	}
	if !input.HasOwnerResponses {
		score += 5
	}
	if score > 30 {
		return 30
	}
	return score
}

func scoreVisibility(input PlaceSignals) int {
	score := 0
	if input.ReviewCount < 25 {
		score += 10
	}
	if input.CompetitorCount > 0 && input.RatingPosition > 3 {
		score += 10
	}
	if score > 20 {
		return 20
	}
	return score
}

func scoreEngagement(input PlaceSignals) int {
	score := 0
	if !input.HasHours {
		score += 10
	}
	if input.NegativePct >= 30 {
		score += 10
	}
	if score > 20 {
		return 20
	}
	return score
}

// EstimateRevenue derives a coarse monthly revenue band from review volume.
// Review counts proxy customer throughput; the band is intentionally wide and
// meant only to prioritize outreach, never to be shown as a fact.
func EstimateRevenue(reviewCount int, rating float64) (low, high float64) {
	if reviewCount <= 0 {
		return 0, 0
	}
	low = float64(reviewCount) * 400
	high = float64(reviewCount) * 1200
	if rating >= 4.5 {
		low *= 1.25
		high *= 1.25
	}
	const ceiling = 2_000_000
	if high > ceiling {
		high = ceiling
	}
	if low > high {
		low = high
	}
	return low, high
}

// NormalizeCategory maps a raw place category to a niche label for the dialer
// payload.
func NormalizeCategory(raw string) string {
	category := strings.TrimSpace(strings.ToLower(raw))
	return strings.ReplaceAll(category, "_", " ")
}
