package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/leads-pipeline/internal/entity"
)

// JobsRepository describes persistence operations for scrape jobs and their
// downstream rows.
type JobsRepository interface {
	GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	ResetForRetry(ctx context.Context, id uuid.UUID) error
	SaveResults(ctx context.Context, id uuid.UUID, status entity.JobStatus, results []entity.BusinessRecord, fieldsCount int) error
	InsertCallAttempt(ctx context.Context, attempt *entity.CallAttempt) error
	InsertNotification(ctx context.Context, notification *entity.Notification) error
	AutoCallEnabled(ctx context.Context, userID uuid.UUID) (bool, error)
}

var (
	// ErrJobNotFound indicates no job row matches the id.
	ErrJobNotFound = errors.New("job not found")
	// ErrJobNotClaimable indicates the job is not in a state the requested
	// transition accepts.
	ErrJobNotClaimable = errors.New("job not in required state")
)

type pgxPool interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

// PGXJobsRepository implements JobsRepository using pgx.
type PGXJobsRepository struct {
	pool pgxPool
}

// NewPGXJobsRepository wires a pgx backed repository.
func NewPGXJobsRepository(pool *pgxpool.Pool) *PGXJobsRepository {
	return &PGXJobsRepository{pool: pool}
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// GetJob fetches one job by id.
func (r *PGXJobsRepository) GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, user_id, target, scrape_type, status, target_country, target_state,
               search_limit, results, results_count, fields_count, error_message,
               created_at, updated_at
        FROM scrape_jobs WHERE id = $1`, id)

	var (
		job        entity.Job
		rawResults []byte
	)
	if err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.Target,
		&job.ScrapeType,
		&job.Status,
		&job.TargetCountry,
		&job.TargetState,
		&job.SearchLimit,
		&rawResults,
		&job.ResultsCount,
		&job.FieldsCount,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("query job by id: %w", err)
	}

	if len(rawResults) > 0 {
		if err := json.Unmarshal(rawResults, &job.Results); err != nil {
			return nil, fmt.Errorf("decode job results: %w", err)
		}
	}
	return &job, nil
}

// MarkProcessing transitions a pending job to processing. Returns
// ErrJobNotClaimable when the job is not pending.
func (r *PGXJobsRepository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE scrape_jobs SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3`,
		entity.JobStatusProcessing, id, entity.JobStatusPending)
	if err != nil {
		return fmt.Errorf("mark job processing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotClaimable
	}
	return nil
}

// ResetForRetry moves a failed job back to pending, discarding prior results.
func (r *PGXJobsRepository) ResetForRetry(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE scrape_jobs
        SET status = $1, results = '[]'::jsonb, results_count = 0,
            fields_count = 0, error_message = NULL, updated_at = NOW()
        WHERE id = $2 AND status = $3`,
		entity.JobStatusPending, id, entity.JobStatusFailed)
	if err != nil {
		return fmt.Errorf("reset job for retry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotClaimable
	}
	return nil
}

// SaveResults persists terminal status, results and denormalized counts in a
// single statement. Prior results are replaced, never appended.
func (r *PGXJobsRepository) SaveResults(ctx context.Context, id uuid.UUID, status entity.JobStatus, results []entity.BusinessRecord, fieldsCount int) error {
	if results == nil {
		results = []entity.BusinessRecord{}
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode job results: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
        UPDATE scrape_jobs
        SET status = $1, results = $2::jsonb, results_count = $3,
            fields_count = $4, updated_at = NOW()
        WHERE id = $5`,
		status, raw, len(results), fieldsCount, id)
	if err != nil {
		return fmt.Errorf("save job results: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// InsertCallAttempt appends one immutable call-attempt row.
func (r *PGXJobsRepository) InsertCallAttempt(ctx context.Context, attempt *entity.CallAttempt) error {
	if attempt == nil {
		return fmt.Errorf("call attempt payload is nil")
	}
	payload := attempt.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO call_attempts (job_id, user_id, business_name, phone, status,
                                   error_message, auto_triggered, payload)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)`,
		attempt.JobID,
		attempt.UserID,
		attempt.BusinessName,
		attempt.Phone,
		attempt.Status,
		attempt.ErrorMessage,
		attempt.AutoTriggered,
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert call attempt: %w", err)
	}
	return nil
}

// InsertNotification appends one in-app notification row.
func (r *PGXJobsRepository) InsertNotification(ctx context.Context, notification *entity.Notification) error {
	if notification == nil {
		return fmt.Errorf("notification payload is nil")
	}
	_, err := r.pool.Exec(ctx, `
        INSERT INTO notifications (user_id, job_id, kind, title, body)
        VALUES ($1, $2, $3, $4, $5)`,
		notification.UserID,
		notification.JobID,
		notification.Kind,
		notification.Title,
		notification.Body,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// AutoCallEnabled reads the owning user's auto-call preference flag.
func (r *PGXJobsRepository) AutoCallEnabled(ctx context.Context, userID uuid.UUID) (bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT auto_call_enabled FROM user_preferences WHERE user_id = $1`, userID)

	var enabled bool
	if err := row.Scan(&enabled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query auto-call preference: %w", err)
	}
	return enabled, nil
}

var _ JobsRepository = (*PGXJobsRepository)(nil)
