package models

import "time"

// Tour status values.
const (
	TourRequested = "requested"
	TourConfirmed = "confirmed"
	TourCancelled = "cancelled"
	TourCompleted = "completed"
)

type Tour struct {
	ID          string    `json:"_id"`
	PropertyID  string    `json:"propertyId"`
	UserID      string    `json:"userId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
}
