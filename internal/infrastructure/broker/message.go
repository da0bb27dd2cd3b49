package broker

import (
	"encoding/json"
	"fmt"
	"time"

	"fonda/internal/domain"
)

type availabilityMessage struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Availability string  `json:"availability"`
	Date         string  `json:"date"`
}

func EncodeEvent(ev domain.AvailabilityEvent) ([]byte, error) {
	body, err := json.Marshal(availabilityMessage{
		ID:           ev.Guisado.ID,
		Name:         ev.Guisado.Name,
		Description:  ev.Guisado.Description,
		Availability: ev.Guisado.Availability,
		Date:         domain.FormatDay(ev.Guisado.Date),
	})
	if err != nil {
		return nil, fmt.Errorf("encode availability event: %w", err)
	}
	return body, nil
}

func DecodeEvent(body []byte) (domain.AvailabilityEvent, error) {
	var msg availabilityMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return domain.AvailabilityEvent{}, fmt.Errorf("decode availability event: %w", err)
	}

	availability, ok := domain.ParseAvailability(msg.Availability)
	if !ok {
		return domain.AvailabilityEvent{}, fmt.Errorf("unknown availability %q", msg.Availability)
	}

	day, err := time.Parse(time.DateOnly, msg.Date)
	if err != nil {
		return domain.AvailabilityEvent{}, fmt.Errorf("parse event date: %w", err)
	}

	return domain.AvailabilityEvent{Guisado: domain.Guisado{
		ID:           msg.ID,
		Name:         msg.Name,
		Description:  msg.Description,
		Availability: availability,
		Date:         day,
	}}, nil
}
