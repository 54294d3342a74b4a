package models

import "time"

// FavoriteSnapshot is the locally persisted slice of a favorited property,
// enough to render the favorites list while offline. It is refreshed from the
// backend whenever the favorites query succeeds.
type FavoriteSnapshot struct {
	PropertyID string
	Title      string
	Price      float64
	City       string
	Image      string
	SavedAt    time.Time
	Deleted    bool
}
