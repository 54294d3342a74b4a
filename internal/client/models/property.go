// Package models defines the view-model types the client exchanges with the
// Estate backend and stores locally.
package models

import "time"

// Property status values as reported by the backend moderation workflow.
const (
	PropertyPending  = "pending"
	PropertyApproved = "approved"
	PropertyRejected = "rejected"
)

type Property struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Type        string    `json:"propertyType"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	AreaSqft    float64   `json:"area"`
	Images      []string  `json:"images"`
	OwnerID     string    `json:"ownerId"`
	Status      string    `json:"status"`
	Rating      float64   `json:"averageRating"`
	RatingCount int       `json:"ratingCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
