// Package service contains the job orchestrator and the extraction strategies
// it dispatches to. A job is processed by exactly one invocation: fetched,
// transitioned to processing, run through its resolved strategy, and written
// back with terminal status and results in a single persist.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/leads-pipeline/internal/ai"
	"github.com/octobees/leads-pipeline/internal/entity"
	"github.com/octobees/leads-pipeline/internal/extract"
	"github.com/octobees/leads-pipeline/internal/fetch"
	"github.com/octobees/leads-pipeline/internal/places"
	"github.com/octobees/leads-pipeline/internal/repository"
	"github.com/octobees/leads-pipeline/internal/service/relevance"
)

type aiExtractor interface {
	Extract(ctx context.Context, pageText string) ai.BusinessProfile
}

type autoDialer interface {
	Trigger(ctx context.Context, job *entity.Job) (int, error)
}

type jobNotifier interface {
	JobCompleted(ctx context.Context, job *entity.Job, resultCount int)
	JobFailed(ctx context.Context, job *entity.Job, reason string)
}

// JobsService orchestrates the scrape-job lifecycle.
type JobsService struct {
	repo      repository.JobsRepository
	fetcher   fetch.Client
	places    places.Client
	extractor aiExtractor
	dialer    autoDialer
	notifier  jobNotifier
	logger    *zap.Logger

	defaultSearchLimit int
}

// NewJobsService wires the orchestrator.
func NewJobsService(
	repo repository.JobsRepository,
	fetcher fetch.Client,
	placesClient places.Client,
	extractor aiExtractor,
	dialer autoDialer,
	notifier jobNotifier,
	logger *zap.Logger,
	defaultSearchLimit int,
) *JobsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultSearchLimit <= 0 {
		defaultSearchLimit = 20
	}
	return &JobsService{
		repo:               repo,
		fetcher:            fetcher,
		places:             placesClient,
		extractor:          extractor,
		dialer:             dialer,
		notifier:           notifier,
		logger:             logger,
		defaultSearchLimit: defaultSearchLimit,
	}
}

// Process claims a pending job, runs its resolved strategy and persists the
// terminal outcome. A strategy failure marks the job failed (with a synthetic
// error result) and is not returned as an error; persistence failures are.
func (s *JobsService) Process(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkProcessing(ctx, id); err != nil {
		return nil, err
	}
	job.Status = entity.JobStatusProcessing

	var records []entity.BusinessRecord
	strategy := job.ResolveStrategy()
	switch strategy {
	case entity.StrategyMapsProfile:
		records, err = s.processMapsProfile(ctx, job)
	case entity.StrategyBulkSearch:
		records, err = s.processBulkSearch(ctx, job)
	default:
		records, err = s.processSinglePage(ctx, job)
	}
	if err != nil {
		return s.failJob(ctx, job, err)
	}

	// The denormalized field tally only makes sense for a single-page job,
	// where the one record describes the target itself.
	fieldsCount := 0
	if strategy == entity.StrategySinglePage && len(records) == 1 {
		fieldsCount = records[0].FieldsCount()
	}
	if err := s.repo.SaveResults(ctx, job.ID, entity.JobStatusCompleted, records, fieldsCount); err != nil {
		return nil, err
	}
	job.Status = entity.JobStatusCompleted
	job.Results = records
	job.ResultsCount = len(records)
	job.FieldsCount = fieldsCount

	s.notifier.JobCompleted(ctx, job, len(records))

	if _, err := s.dialer.Trigger(ctx, job); err != nil {
		s.logger.Warn("auto-dial trigger failed",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
	}
	return job, nil
}

// Retry resets a failed job back to pending, discarding its prior results.
func (s *JobsService) Retry(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	if err := s.repo.ResetForRetry(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetJob(ctx, id)
}

// Cancel forces an in-flight job to failed with a synthetic result entry.
// Cancellation is advisory: a fetch already in flight is not interrupted, the
// status overwrite just makes its eventual outcome invisible.
func (s *JobsService) Cancel(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != entity.JobStatusProcessing {
		return nil, repository.ErrJobNotClaimable
	}

	records := []entity.BusinessRecord{{Error: "cancelled by user"}}
	if err := s.repo.SaveResults(ctx, job.ID, entity.JobStatusFailed, records, 0); err != nil {
		return nil, err
	}
	job.Status = entity.JobStatusFailed
	job.Results = records
	job.ResultsCount = len(records)
	job.FieldsCount = 0
	return job, nil
}

// Get returns one job for operator inspection.
func (s *JobsService) Get(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return s.repo.GetJob(ctx, id)
}

func (s *JobsService) failJob(ctx context.Context, job *entity.Job, cause error) (*entity.Job, error) {
	s.logger.Error("job strategy failed",
		zap.String("job_id", job.ID.String()),
		zap.String("scrape_type", string(job.ScrapeType)),
		zap.Error(cause))

	records := []entity.BusinessRecord{{Error: cause.Error()}}
	if err := s.repo.SaveResults(ctx, job.ID, entity.JobStatusFailed, records, 0); err != nil {
		return nil, fmt.Errorf("persist failed job: %w", err)
	}
	job.Status = entity.JobStatusFailed
	job.Results = records
	job.ResultsCount = len(records)
	job.FieldsCount = 0

	s.notifier.JobFailed(ctx, job, cause.Error())
	return job, nil
}

// processSinglePage fetches the target URL and runs the extractor selected by
// the job's scrape type.
func (s *JobsService) processSinglePage(ctx context.Context, job *entity.Job) ([]entity.BusinessRecord, error) {
	var opts []fetch.FetchOption
	if job.TargetCountry != nil && *job.TargetCountry != "" {
		opts = append(opts, fetch.WithCountry(*job.TargetCountry))
	}
	page, err := s.fetcher.Fetch(ctx, job.Target, opts...)
	if err != nil {
		return nil, fmt.Errorf("fetch target page: %w", err)
	}

	content := extract.Content{Text: page.Text, Markup: page.Markup}

	var record entity.BusinessRecord
	switch job.ScrapeType {
	case entity.ScrapeTypeEmails:
		record.Emails = extract.Emails(content)
	case entity.ScrapeTypePhoneNumbers:
		record.Phones = extract.Phones(content)
	case entity.ScrapeTypeTextContent:
		record.TextContent = page.Text
	case entity.ScrapeTypeTables:
		record.Tables = extract.Tables(content)
	default:
		record = s.extractBusinessData(ctx, content)
	}
	record.SourceURL = page.URL
	return []entity.BusinessRecord{record}, nil
}

// processBulkSearch runs a web search, extracts a record per rendered result
// and keeps only candidates that pass the relevance filter.
func (s *JobsService) processBulkSearch(ctx context.Context, job *entity.Job) ([]entity.BusinessRecord, error) {
	limit := job.SearchLimit
	if limit <= 0 {
		limit = s.defaultSearchLimit
	}

	opts := []fetch.SearchOption{fetch.WithLimit(limit)}
	if job.TargetCountry != nil && *job.TargetCountry != "" {
		opts = append(opts, fetch.WithLocale(*job.TargetCountry))
	}
	results, err := s.fetcher.Search(ctx, job.Target, opts...)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", job.Target, err)
	}

	records := make([]entity.BusinessRecord, 0, len(results))
	for _, result := range results {
		if !relevance.Allowed(result.URL) {
			continue
		}

		content := extract.Content{Text: result.Text, Markup: result.Markup}
		record := s.extractBusinessData(ctx, content)
		record.SourceURL = result.URL
		if record.Name == "" {
			record.Name = result.Title
		}

		if !relevance.Retained(&record) {
			s.logger.Debug("search candidate dropped",
				zap.String("job_id", job.ID.String()),
				zap.String("source_url", result.URL))
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// extractBusinessData runs the regex engine and the AI extractor concurrently
// over the same content and fuses their outputs. Both sides are failure-free:
// the extractors are pure and the AI side degrades to an empty profile.
func (s *JobsService) extractBusinessData(ctx context.Context, content extract.Content) entity.BusinessRecord {
	var (
		regex   extract.Result
		profile ai.BusinessProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		regex = extract.All(content)
		return nil
	})
	g.Go(func() error {
		profile = s.extractor.Extract(gctx, content.Text)
		return nil
	})
	_ = g.Wait()

	return fuseRecord(regex, profile)
}
