package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CallAttemptStatus is the outcome of one auto-dial webhook dispatch.
type CallAttemptStatus string

const (
	CallAttemptSuccess CallAttemptStatus = "success"
	CallAttemptFailed  CallAttemptStatus = "failed"
	CallAttemptPending CallAttemptStatus = "pending"
)

// CallAttempt logs one lead offered to the auto-dial trigger. Rows are never
// mutated after insert; retries create new attempts.
type CallAttempt struct {
	ID            uuid.UUID         `json:"id"`
	JobID         uuid.UUID         `json:"job_id"`
	UserID        uuid.UUID         `json:"user_id"`
	BusinessName  string            `json:"business_name"`
	Phone         string            `json:"phone"`
	Status        CallAttemptStatus `json:"status"`
	ErrorMessage  *string           `json:"error_message,omitempty"`
	AutoTriggered bool              `json:"auto_triggered"`
	Payload       json.RawMessage   `json:"payload"`
	CreatedAt     time.Time         `json:"created_at"`
}
