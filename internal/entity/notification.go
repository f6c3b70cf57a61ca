package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a fire-and-forget in-app message row. Delivery failures are
// logged and never propagated to the job outcome.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	JobID     uuid.UUID `json:"job_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
