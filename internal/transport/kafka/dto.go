package kafka

import (
	"strings"
	"time"

	"service-foodrescue/internal/service/statusfeed"
)

// EventDTO is the wire form of a status feed message.
type EventDTO struct {
	AlertID   string    `json:"alert_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts an EventDTO to a statusfeed.Event.
func ToDomain(dto EventDTO) statusfeed.Event {
	return statusfeed.Event{
		AlertID:   strings.TrimSpace(dto.AlertID),
		Status:    strings.TrimSpace(dto.Status),
		CreatedAt: dto.CreatedAt,
	}
}
