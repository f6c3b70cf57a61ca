package scoring

import "testing"

func TestComputePain_MaximumPain(t *testing.T) {
	input := PlaceSignals{
		Rating:          2.8,
		ReviewCount:     3,
		HasWebsite:      false,
		HasPhone:        false,
		HasHours:        false,
		NegativePct:     45,
		RatingPosition:  6,
		CompetitorCount: 5,
	}

	result := ComputePain(input)

	if result.Total != 100 {
		t.Fatalf("expected full pain 100, got %d", result.Total)
	}
	if result.Breakdown[categoryPresence] != 30 {
		t.Fatalf("expected digital presence 30, got %d", result.Breakdown[categoryPresence])
	}
	if result.Breakdown[categoryReputation] != 30 {
		t.Fatalf("expected reputation 30, got %d", result.Breakdown[categoryReputation])
	}
	if result.Breakdown[categoryVisibility] != 20 {
		t.Fatalf("expected visibility 20, got %d", result.Breakdown[categoryVisibility])
	}
	if result.Breakdown[categoryEngagement] != 20 {
		t.Fatalf("expected engagement 20, got %d", result.Breakdown[categoryEngagement])
	}
}

func TestComputePain_HealthyBusiness(t *testing.T) {
	input := PlaceSignals{
		Rating:            4.8,
		ReviewCount:       240,
		HasWebsite:        true,
		HasPhone:          true,
		HasHours:          true,
		HasOwnerResponses: true,
		NegativePct:       4,
		RatingPosition:    1,
		CompetitorCount:   4,
	}

	result := ComputePain(input)

	if result.Total != 0 {
		t.Fatalf("expected zero pain for healthy business, got %d", result.Total)
	}
}

func TestComputePain_UnratedPlaceSkipsRatingPenalty(t *testing.T) {
	input := PlaceSignals{
		ReviewCount: 0,
		HasWebsite:  true,
		HasPhone:    true,
		HasHours:    true,
	}

	result := ComputePain(input)

	// No rating penalty, but thin review volume still scores.
	if result.Breakdown[categoryReputation] != 15 {
		t.Fatalf("expected reputation 15, got %d", result.Breakdown[categoryReputation])
	}
	if result.Breakdown[categoryVisibility] != 10 {
		t.Fatalf("expected visibility 10, got %d", result.Breakdown[categoryVisibility])
	}
}

func TestEstimateRevenue(t *testing.T) {
	low, high := EstimateRevenue(0, 4.0)
	if low != 0 || high != 0 {
		t.Fatalf("expected zero band without reviews, got %v-%v", low, high)
	}

	low, high = EstimateRevenue(100, 4.0)
	if low != 40000 || high != 120000 {
		t.Fatalf("unexpected band for 100 reviews: %v-%v", low, high)
	}

	low, high = EstimateRevenue(100, 4.7)
	if low != 50000 || high != 150000 {
		t.Fatalf("expected high-rating uplift, got %v-%v", low, high)
	}

	_, high = EstimateRevenue(10000, 3.9)
	if high != 2000000 {
		t.Fatalf("expected capped ceiling, got %v", high)
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeCategory("  Plumbing_Contractor "); got != "plumbing contractor" {
		t.Fatalf("got %q", got)
	}
}
