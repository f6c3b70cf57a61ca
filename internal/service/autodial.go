package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/octobees/leads-pipeline/internal/entity"
	"github.com/octobees/leads-pipeline/internal/phone"
	"github.com/octobees/leads-pipeline/internal/repository"
)

// DialPayload is the fixed outbound body posted per lead. Field set is part of
// the downstream calling provider's contract.
type DialPayload struct {
	BusinessName  string  `json:"business_name"`
	Phone         string  `json:"phone"`
	PainScore     float64 `json:"pain_score,omitempty"`
	Niche         string  `json:"niche,omitempty"`
	RevenueLow    float64 `json:"revenue_low,omitempty"`
	RevenueHigh   float64 `json:"revenue_high,omitempty"`
	Timestamp     string  `json:"timestamp"`
	AutoTriggered bool    `json:"auto_triggered"`
}

type dialNotifier interface {
	AutoDialSummary(ctx context.Context, job *entity.Job, succeeded int)
}

// AutoDialer offers completed-job leads to the outbound-call webhook. The loop
// is deliberately sequential: attempt ordering matters for operator review and
// keeps the downstream provider's rate limits trivial to respect.
type AutoDialer struct {
	repo     repository.JobsRepository
	poster   DialPoster
	notifier dialNotifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewAutoDialer wires an auto-dialer.
func NewAutoDialer(repo repository.JobsRepository, poster DialPoster, notifier dialNotifier, logger *zap.Logger) *AutoDialer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoDialer{
		repo:     repo,
		poster:   poster,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Trigger runs the auto-dial loop for a completed job. Returns the number of
// successful webhook dispatches. Webhook and attempt-logging failures never
// abort the loop; only the preference lookup can fail the call.
func (d *AutoDialer) Trigger(ctx context.Context, job *entity.Job) (int, error) {
	if len(job.Results) == 0 {
		return 0, nil
	}

	enabled, err := d.repo.AutoCallEnabled(ctx, job.UserID)
	if err != nil {
		return 0, err
	}
	if !enabled {
		return 0, nil
	}

	succeeded := 0
	for i := range job.Results {
		record := &job.Results[i]
		number, ok := phone.Best(leadPhoneCandidates(record))
		if !ok {
			continue
		}

		payload := DialPayload{
			BusinessName:  record.Name,
			Phone:         number,
			PainScore:     record.PainScore,
			Niche:         record.Category,
			RevenueLow:    record.RevenueLow,
			RevenueHigh:   record.RevenueHigh,
			Timestamp:     d.now().UTC().Format(time.RFC3339),
			AutoTriggered: true,
		}

		attempt := &entity.CallAttempt{
			JobID:         job.ID,
			UserID:        job.UserID,
			BusinessName:  record.Name,
			Phone:         number,
			Status:        entity.CallAttemptSuccess,
			AutoTriggered: true,
		}
		if raw, err := json.Marshal(payload); err == nil {
			attempt.Payload = raw
		}

		if err := d.poster.Post(ctx, payload); err != nil {
			msg := err.Error()
			attempt.Status = entity.CallAttemptFailed
			attempt.ErrorMessage = &msg
			d.logger.Warn("dial webhook dispatch failed",
				zap.String("job_id", job.ID.String()),
				zap.String("business", record.Name),
				zap.Error(err))
		} else {
			succeeded++
		}

		if err := d.repo.InsertCallAttempt(ctx, attempt); err != nil {
			d.logger.Warn("call attempt insert failed",
				zap.String("job_id", job.ID.String()),
				zap.Error(err))
		}
	}

	d.notifier.AutoDialSummary(ctx, job, succeeded)
	return succeeded, nil
}

// leadPhoneCandidates gathers every phone-shaped field on a record, including
// member-business numbers.
func leadPhoneCandidates(record *entity.BusinessRecord) []string {
	candidates := append([]string{}, record.Phones...)
	for _, member := range record.Members {
		if member.Phone != "" {
			candidates = append(candidates, member.Phone)
		}
	}
	return candidates
}
