package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/leads-pipeline/internal/dto"
	"github.com/octobees/leads-pipeline/internal/entity"
	"github.com/octobees/leads-pipeline/internal/repository"
)

// JobsAPI is the orchestrator surface the handler depends on.
type JobsAPI interface {
	Process(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	Retry(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	Cancel(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Job, error)
}

// JobsHandler exposes the job lifecycle endpoints.
type JobsHandler struct {
	service JobsAPI
}

// NewJobsHandler creates a new handler instance.
func NewJobsHandler(service JobsAPI) *JobsHandler {
	return &JobsHandler{service: service}
}

// Process handles POST /jobs/:id/process requests.
func (h *JobsHandler) Process(c echo.Context) error {
	id, err := parseJobID(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid job id")
	}

	job, err := h.service.Process(c.Request().Context(), id)
	if err != nil {
		return jobError(c, err, "failed to process job")
	}
	return Success(c, http.StatusOK, "job processed", dto.JobResponseFrom(job))
}

// Retry handles POST /jobs/:id/retry requests.
func (h *JobsHandler) Retry(c echo.Context) error {
	id, err := parseJobID(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid job id")
	}

	job, err := h.service.Retry(c.Request().Context(), id)
	if err != nil {
		return jobError(c, err, "failed to retry job")
	}
	return Success(c, http.StatusOK, "job reset for retry", dto.JobResponseFrom(job))
}

// Cancel handles POST /jobs/:id/cancel requests.
func (h *JobsHandler) Cancel(c echo.Context) error {
	id, err := parseJobID(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid job id")
	}

	job, err := h.service.Cancel(c.Request().Context(), id)
	if err != nil {
		return jobError(c, err, "failed to cancel job")
	}
	return Success(c, http.StatusOK, "job cancelled", dto.JobResponseFrom(job))
}

// Get handles GET /jobs/:id requests.
func (h *JobsHandler) Get(c echo.Context) error {
	id, err := parseJobID(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid job id")
	}

	job, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return jobError(c, err, "failed to fetch job")
	}
	return Success(c, http.StatusOK, "job retrieved", dto.JobResponseFrom(job))
}

func parseJobID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

func jobError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrJobNotFound):
		return Error(c, http.StatusNotFound, "job not found")
	case errors.Is(err, repository.ErrJobNotClaimable):
		return Error(c, http.StatusConflict, err.Error())
	default:
		return Error(c, http.StatusInternalServerError, fallback)
	}
}
