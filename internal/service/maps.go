package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/leads-pipeline/internal/entity"
	"github.com/octobees/leads-pipeline/internal/phone"
	"github.com/octobees/leads-pipeline/internal/places"
	"github.com/octobees/leads-pipeline/internal/service/scoring"
)

const (
	competitorCap   = 5
	reviewFanOutCap = 5
)

// Topics scanned for in review bodies. Order is the tie-break for equal
// counts.
var reviewTopics = []string{
	"price", "service", "quality", "staff", "wait",
	"clean", "friendly", "professional", "communication", "schedule",
}

const topTopicsCap = 3

// processMapsProfile runs the place-search strategy: one bounded text search,
// competitor annotation per place, and a review fan-out for the first
// reviewFanOutCap results only. The caps are cost controls, not tunables.
func (s *JobsService) processMapsProfile(ctx context.Context, job *entity.Job) ([]entity.BusinessRecord, error) {
	limit := job.SearchLimit
	if limit <= 0 {
		limit = s.defaultSearchLimit
	}

	found, err := s.places.TextSearch(ctx, job.Target, limit)
	if err != nil {
		return nil, fmt.Errorf("places search %q: %w", job.Target, err)
	}

	records := make([]entity.BusinessRecord, len(found))
	for i, place := range found {
		records[i] = recordFromPlace(place, job.TargetCountry)
		records[i].Competitors = competitorsFor(i, found)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reviewFanOutCap)
	for i := range records {
		if i >= reviewFanOutCap {
			break
		}
		i := i
		placeID := found[i].ID
		g.Go(func() error {
			details, err := s.places.Details(gctx, placeID)
			if err != nil {
				s.logger.Warn("place details fetch failed",
					zap.String("job_id", job.ID.String()),
					zap.String("place_id", placeID),
					zap.Error(err))
				return nil
			}
			records[i].ReviewSummary = summarizeReviews(details.Reviews)
			return nil
		})
	}
	_ = g.Wait()

	for i := range records {
		scoreRecord(&records[i])
	}
	return records, nil
}

func recordFromPlace(place places.Place, country *string) entity.BusinessRecord {
	record := entity.BusinessRecord{
		Name:      place.DisplayName.Text,
		Website:   place.Website,
		Rating:    place.Rating,
		Reviews:   place.UserRatingCount,
		Category:  scoring.NormalizeCategory(place.PrimaryType),
		Hours:     strings.Join(place.OpeningHours.WeekdayDescriptions, "; "),
		SourceURL: "https://www.google.com/maps/place/?q=place_id:" + place.ID,
	}
	if place.FormattedAddr != "" {
		record.Addresses = []string{place.FormattedAddr}
	}
	if place.Phone != "" {
		region := ""
		if country != nil {
			region = *country
		}
		if normalized, ok := phone.NormalizeWithRegion(place.Phone, region); ok {
			record.Phones = []string{normalized}
		}
	}
	record.MapData = entity.MapMetadata{
		PlaceID:   place.ID,
		Latitude:  strconv.FormatFloat(place.Location.Latitude, 'f', -1, 64),
		Longitude: strconv.FormatFloat(place.Location.Longitude, 'f', -1, 64),
	}
	return record
}

// competitorsFor lists other found places sharing the subject's primary
// category, annotated with their rating rank within that category group.
func competitorsFor(subject int, found []places.Place) []entity.Competitor {
	category := found[subject].PrimaryType
	if category == "" {
		return nil
	}

	group := make([]int, 0, len(found))
	for i, place := range found {
		if place.PrimaryType == category {
			group = append(group, i)
		}
	}
	if len(group) < 2 {
		return nil
	}

	// Rank the whole category group by rating, review count as tie-break.
	ranked := append([]int{}, group...)
	sort.SliceStable(ranked, func(a, b int) bool {
		if found[ranked[a]].Rating != found[ranked[b]].Rating {
			return found[ranked[a]].Rating > found[ranked[b]].Rating
		}
		return found[ranked[a]].UserRatingCount > found[ranked[b]].UserRatingCount
	})
	position := make(map[int]int, len(ranked))
	for rank, idx := range ranked {
		position[idx] = rank + 1
	}

	competitors := make([]entity.Competitor, 0, competitorCap)
	for _, idx := range ranked {
		if idx == subject {
			continue
		}
		competitors = append(competitors, entity.Competitor{
			Name:           found[idx].DisplayName.Text,
			Rating:         found[idx].Rating,
			Reviews:        found[idx].UserRatingCount,
			RatingPosition: position[idx],
		})
		if len(competitors) == competitorCap {
			break
		}
	}
	return competitors
}

func summarizeReviews(reviews []places.Review) *entity.ReviewSummary {
	if len(reviews) == 0 {
		return nil
	}

	summary := &entity.ReviewSummary{StarHistogram: make(map[int]int)}
	positive, negative := 0, 0
	topicCounts := make(map[string]int)

	for _, review := range reviews {
		summary.StarHistogram[review.Rating]++
		if review.Rating >= 4 {
			positive++
		} else if review.Rating <= 2 {
			negative++
		}
		if review.OwnerResponse != nil {
			summary.HasOwnerResponses = true
		}
		body := strings.ToLower(review.Text.Text)
		for _, topic := range reviewTopics {
			if strings.Contains(body, topic) {
				topicCounts[topic]++
			}
		}
	}

	total := len(reviews)
	summary.PositivePct = positive * 100 / total
	summary.NegativePct = negative * 100 / total

	for _, topic := range reviewTopics {
		if topicCounts[topic] == 0 {
			continue
		}
		summary.TopTopics = append(summary.TopTopics, topic)
	}
	sort.SliceStable(summary.TopTopics, func(a, b int) bool {
		return topicCounts[summary.TopTopics[a]] > topicCounts[summary.TopTopics[b]]
	})
	if len(summary.TopTopics) > topTopicsCap {
		summary.TopTopics = summary.TopTopics[:topTopicsCap]
	}
	return summary
}

// scoreRecord fills the outreach-priority fields from the place signals.
func scoreRecord(record *entity.BusinessRecord) {
	ownRank := 0
	if len(record.Competitors) > 0 {
		// The subject's rank is the slot its competitors skip over.
		taken := make(map[int]bool, len(record.Competitors))
		for _, c := range record.Competitors {
			taken[c.RatingPosition] = true
		}
		for rank := 1; rank <= len(record.Competitors)+1; rank++ {
			if !taken[rank] {
				ownRank = rank
				break
			}
		}
	}

	signals := scoring.PlaceSignals{
		Rating:          record.Rating,
		ReviewCount:     record.Reviews,
		HasWebsite:      record.Website != "",
		HasPhone:        len(record.Phones) > 0,
		HasHours:        record.Hours != "",
		RatingPosition:  ownRank,
		CompetitorCount: len(record.Competitors),
	}
	if record.ReviewSummary != nil {
		signals.HasOwnerResponses = record.ReviewSummary.HasOwnerResponses
		signals.NegativePct = record.ReviewSummary.NegativePct
	}

	record.PainScore = float64(scoring.ComputePain(signals).Total)
	record.RevenueLow, record.RevenueHigh = scoring.EstimateRevenue(record.Reviews, record.Rating)
}
