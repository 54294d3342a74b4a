package models

import "time"

// User roles known to the client.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	Blocked   bool      `json:"isBlocked"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserLocation is the consented geolocation persisted locally under the
// userLocation key.
type UserLocation struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}
