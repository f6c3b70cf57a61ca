package service

import (
	"context"
	"errors"
	"testing"

	"github.com/octobees/leads-pipeline/internal/entity"
	"github.com/octobees/leads-pipeline/internal/places"
)

func mapsJob(target string, limit int) *entity.Job {
	job := pendingJob(entity.ScrapeTypeGoogleBusinessProfiles, target)
	job.SearchLimit = limit
	return job
}

func testPlaces() []places.Place {
	return []places.Place{
		{
			ID:              "place-a",
			DisplayName:     places.DisplayName{Text: "Alpha Dental"},
			PrimaryType:     "dentist",
			Rating:          4.8,
			UserRatingCount: 210,
			FormattedAddr:   "12 Main St, Newark, NJ 07102",
			Website:         "https://alphadental.com",
			Phone:           "+1 973-555-0142",
			Location:        places.LatLng{Latitude: 40.7357, Longitude: -74.1724},
			OpeningHours:    places.Hours{WeekdayDescriptions: []string{"Monday: 9AM-5PM"}},
		},
		{
			ID:              "place-b",
			DisplayName:     places.DisplayName{Text: "Bright Smiles"},
			PrimaryType:     "dentist",
			Rating:          4.2,
			UserRatingCount: 48,
		},
		{
			ID:          "place-c",
			DisplayName: places.DisplayName{Text: "City Bakery"},
			PrimaryType: "bakery",
			Rating:      4.6,
		},
	}
}

func TestProcessMapsProfileBuildsRecords(t *testing.T) {
	job := mapsJob("dentists in newark", 10)
	repo := &stubRepo{job: job}
	placesClient := &stubPlaces{
		found: testPlaces(),
		details: map[string]*places.PlaceDetails{
			"place-a": {ID: "place-a", Reviews: []places.Review{
				{Rating: 5, Text: places.ReviewText{Text: "Friendly staff, great service"}},
				{Rating: 5, Text: places.ReviewText{Text: "Very professional service"}, OwnerResponse: &places.OwnerResp{Text: "Thanks!"}},
				{Rating: 2, Text: places.ReviewText{Text: "Long wait"}},
				{Rating: 4, Text: places.ReviewText{Text: "Good price"}},
			}},
		},
	}
	svc, _, _, _ := newTestService(repo, &stubFetcher{}, placesClient)

	processed, err := svc.Process(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if placesClient.lastLimit != 10 {
		t.Fatalf("search limit = %d, want job's limit", placesClient.lastLimit)
	}
	if len(processed.Results) != 3 {
		t.Fatalf("results = %d, want one per place", len(processed.Results))
	}

	alpha := processed.Results[0]
	if alpha.Name != "Alpha Dental" || alpha.Category != "dentist" {
		t.Fatalf("record = %+v", alpha)
	}
	if len(alpha.Phones) != 1 || alpha.Phones[0] != "+19735550142" {
		t.Fatalf("phones = %v", alpha.Phones)
	}
	if alpha.MapData.PlaceID != "place-a" || alpha.MapData.Latitude == "" {
		t.Fatalf("map data = %+v", alpha.MapData)
	}
	if alpha.Hours != "Monday: 9AM-5PM" {
		t.Fatalf("hours = %q", alpha.Hours)
	}

	// Same-category competitor, annotated with rating rank.
	if len(alpha.Competitors) != 1 {
		t.Fatalf("competitors = %+v, want only the other dentist", alpha.Competitors)
	}
	if alpha.Competitors[0].Name != "Bright Smiles" || alpha.Competitors[0].RatingPosition != 2 {
		t.Fatalf("competitor = %+v", alpha.Competitors[0])
	}
	// The bakery shares no category with anyone.
	if len(processed.Results[2].Competitors) != 0 {
		t.Fatalf("bakery competitors = %+v", processed.Results[2].Competitors)
	}

	summary := alpha.ReviewSummary
	if summary == nil {
		t.Fatal("expected review summary for first result")
	}
	if summary.PositivePct != 75 || summary.NegativePct != 25 {
		t.Fatalf("sentiment = %d/%d, want 75/25", summary.PositivePct, summary.NegativePct)
	}
	if summary.StarHistogram[5] != 2 || summary.StarHistogram[2] != 1 {
		t.Fatalf("histogram = %+v", summary.StarHistogram)
	}
	if !summary.HasOwnerResponses {
		t.Fatal("owner response not detected")
	}
	if len(summary.TopTopics) == 0 || summary.TopTopics[0] != "service" {
		t.Fatalf("topics = %v, want service first", summary.TopTopics)
	}

	// Weak-presence place scores more pain than the established one.
	bright := processed.Results[1]
	if bright.PainScore <= alpha.PainScore {
		t.Fatalf("pain scores = %v vs %v, want weaker presence to score higher", bright.PainScore, alpha.PainScore)
	}
	if alpha.RevenueLow <= 0 || alpha.RevenueHigh <= alpha.RevenueLow {
		t.Fatalf("revenue band = %v-%v", alpha.RevenueLow, alpha.RevenueHigh)
	}
}

func TestProcessMapsProfileDetailFailureIsNonFatal(t *testing.T) {
	job := mapsJob("dentists in newark", 0)
	repo := &stubRepo{job: job}
	placesClient := &stubPlaces{found: testPlaces(), detailErr: errors.New("quota exceeded")}
	svc, _, _, _ := newTestService(repo, &stubFetcher{}, placesClient)

	processed, err := svc.Process(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if processed.Status != entity.JobStatusCompleted {
		t.Fatalf("status = %s, want completed despite detail failures", processed.Status)
	}
	for _, record := range processed.Results {
		if record.ReviewSummary != nil {
			t.Fatalf("record = %+v, want no summary when details fail", record)
		}
	}
	if placesClient.lastLimit != 20 {
		t.Fatalf("limit = %d, want service default", placesClient.lastLimit)
	}
}

func TestProcessMapsSearchFailureMarksJobFailed(t *testing.T) {
	job := mapsJob("dentists in newark", 5)
	repo := &stubRepo{job: job}
	placesClient := &stubPlaces{searchErr: errors.New("API key invalid")}
	svc, _, _, notifier := newTestService(repo, &stubFetcher{}, placesClient)

	processed, err := svc.Process(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if processed.Status != entity.JobStatusFailed {
		t.Fatalf("status = %s, want failed", processed.Status)
	}
	if notifier.failed != 1 {
		t.Fatalf("failure notifications = %d, want 1", notifier.failed)
	}
}
