package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/octobees/leads-pipeline/internal/entity"
)

// JobResponse is the job representation returned by the jobs endpoints.
type JobResponse struct {
	ID           uuid.UUID               `json:"id"`
	Target       string                  `json:"target"`
	ScrapeType   entity.ScrapeType       `json:"scrape_type"`
	Status       entity.JobStatus        `json:"status"`
	Results      []entity.BusinessRecord `json:"results"`
	ResultsCount int                     `json:"results_count"`
	FieldsCount  int                     `json:"fields_count"`
	ErrorMessage *string                 `json:"error_message,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// JobResponseFrom maps a job entity onto the response shape.
func JobResponseFrom(job *entity.Job) JobResponse {
	results := job.Results
	if results == nil {
		results = []entity.BusinessRecord{}
	}
	return JobResponse{
		ID:           job.ID,
		Target:       job.Target,
		ScrapeType:   job.ScrapeType,
		Status:       job.Status,
		Results:      results,
		ResultsCount: job.ResultsCount,
		FieldsCount:  job.FieldsCount,
		ErrorMessage: job.ErrorMessage,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}
