package kafka

import (
	"strings"
	"time"

	"course-go-avito-dispatch/internal/service/events"
)

// EventDTO is a data transfer object for events.Event
type EventDTO struct {
	DeliveryID int64     `json:"delivery_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to events.Event
func ToDomain(dto EventDTO) events.Event {
	return events.Event{
		DeliveryID: dto.DeliveryID,
		Status:     strings.TrimSpace(dto.Status),
		CreatedAt:  dto.CreatedAt,
	}
}
