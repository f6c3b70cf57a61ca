package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/octobees/leads-pipeline/internal/entity"
	"github.com/octobees/leads-pipeline/internal/repository"
)

// Notifier writes fire-and-forget in-app notifications. Every method swallows
// persistence errors after logging them; notification failure never affects a
// job's outcome.
type Notifier struct {
	repo   repository.JobsRepository
	logger *zap.Logger
}

// NewNotifier wires a notifier.
func NewNotifier(repo repository.JobsRepository, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{repo: repo, logger: logger}
}

// JobCompleted announces a finished job with its result count.
func (n *Notifier) JobCompleted(ctx context.Context, job *entity.Job, resultCount int) {
	n.insert(ctx, &entity.Notification{
		UserID: job.UserID,
		JobID:  job.ID,
		Kind:   "job_completed",
		Title:  "Scrape job completed",
		Body:   fmt.Sprintf("Job for %q finished with %d result(s).", job.Target, resultCount),
	})
}

// JobFailed announces a failed job with its error message.
func (n *Notifier) JobFailed(ctx context.Context, job *entity.Job, reason string) {
	n.insert(ctx, &entity.Notification{
		UserID: job.UserID,
		JobID:  job.ID,
		Kind:   "job_failed",
		Title:  "Scrape job failed",
		Body:   fmt.Sprintf("Job for %q failed: %s", job.Target, reason),
	})
}

// AutoDialSummary announces how many auto-dial triggers succeeded.
func (n *Notifier) AutoDialSummary(ctx context.Context, job *entity.Job, succeeded int) {
	n.insert(ctx, &entity.Notification{
		UserID: job.UserID,
		JobID:  job.ID,
		Kind:   "auto_dial_summary",
		Title:  "Auto-dial run finished",
		Body:   fmt.Sprintf("%d call(s) triggered for job %s.", succeeded, job.ID),
	})
}

func (n *Notifier) insert(ctx context.Context, notification *entity.Notification) {
	if err := n.repo.InsertNotification(ctx, notification); err != nil {
		n.logger.Warn("notification insert failed",
			zap.String("kind", notification.Kind),
			zap.String("job_id", notification.JobID.String()),
			zap.Error(err))
	}
}
