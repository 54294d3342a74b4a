package models

import "time"

// Feedback is a user-submitted note routed to the admin back-office.
type Feedback struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
