package events

import (
	"time"
)

// Event is a single delivery lifecycle event
type Event struct {
	DeliveryID int64     `json:"delivery_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
