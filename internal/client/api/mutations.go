package api

import (
	"context"
	"time"

	"github.com/elliot09alderson/estate-client/internal/client/models"
)

// PropertyInput is the create/update payload for a listing.
type PropertyInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Type        string   `json:"propertyType"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	AreaSqft    float64  `json:"area"`
	Images      []string `json:"images,omitempty"`
}

// CreateProperty submits a new listing. It lands in the moderation queue
// with pending status.
func (a *API) CreateProperty(ctx context.Context, in PropertyInput) (models.Property, error) {
	var created models.Property
	err := a.cache.Mutate(ctx, []string{TagProperty}, func(ctx context.Context) error {
		return a.rest.Post(ctx, "/properties", in, &created)
	})
	return created, err
}

// UpdateProperty replaces a listing's editable fields.
func (a *API) UpdateProperty(ctx context.Context, id string, in PropertyInput) (models.Property, error) {
	var updated models.Property
	err := a.cache.Mutate(ctx, []string{TagProperty}, func(ctx context.Context) error {
		return a.rest.Put(ctx, "/properties/"+id, in, &updated)
	})
	return updated, err
}

// DeleteProperty removes a listing. Favorites pointing at it disappear too,
// so both tags are invalidated.
func (a *API) DeleteProperty(ctx context.Context, id string) error {
	return a.cache.Mutate(ctx, []string{TagProperty, TagFavorite}, func(ctx context.Context) error {
		return a.rest.Delete(ctx, "/properties/"+id, nil)
	})
}

// ApproveProperty publishes a pending listing. Admin only.
func (a *API) ApproveProperty(ctx context.Context, id string) error {
	return a.cache.Mutate(ctx, []string{TagProperty, TagActivity}, func(ctx context.Context) error {
		return a.rest.Patch(ctx, "/admin/properties/"+id+"/approve", nil, nil)
	})
}

// RejectProperty declines a pending listing with a reason. Admin only.
func (a *API) RejectProperty(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	return a.cache.Mutate(ctx, []string{TagProperty, TagActivity}, func(ctx context.Context) error {
		return a.rest.Patch(ctx, "/admin/properties/"+id+"/reject", body, nil)
	})
}

// ToggleFavorite flips the favorite state of a property for the signed-in
// user and reports the new state.
func (a *API) ToggleFavorite(ctx context.Context, propertyID string) (bool, error) {
	var out struct {
		Favorited bool `json:"favorited"`
	}
	err := a.cache.Mutate(ctx, []string{TagFavorite}, func(ctx context.Context) error {
		return a.rest.Post(ctx, "/favorites/"+propertyID+"/toggle", nil, &out)
	})
	return out.Favorited, err
}

// RateProperty records a 1-5 star rating.
func (a *API) RateProperty(ctx context.Context, propertyID string, stars int) error {
	body := map[string]int{"rating": stars}
	return a.cache.Mutate(ctx, []string{TagProperty}, func(ctx context.Context) error {
		return a.rest.Post(ctx, "/properties/"+propertyID+"/rate", body, nil)
	})
}

// ScheduleTour books a visit of a property.
func (a *API) ScheduleTour(ctx context.Context, propertyID string, at time.Time, notes string) (models.Tour, error) {
	body := map[string]any{"propertyId": propertyID, "scheduledAt": at, "notes": notes}
	var tour models.Tour
	err := a.cache.Mutate(ctx, []string{TagTour}, func(ctx context.Context) error {
		return a.rest.Post(ctx, "/tours", body, &tour)
	})
	return tour, err
}

// CancelTour withdraws a scheduled visit.
func (a *API) CancelTour(ctx context.Context, tourID string) error {
	return a.cache.Mutate(ctx, []string{TagTour}, func(ctx context.Context) error {
		return a.rest.Patch(ctx, "/tours/"+tourID+"/cancel", nil, nil)
	})
}

// SendMessage posts a message. A conversation for the property is created
// server-side when none exists yet.
func (a *API) SendMessage(ctx context.Context, propertyID, body string) (models.Message, error) {
	payload := map[string]string{"propertyId": propertyID, "body": body}
	var msg models.Message
	err := a.cache.Mutate(ctx, []string{TagMessage}, func(ctx context.Context) error {
		return a.rest.Post(ctx, "/messages", payload, &msg)
	})
	return msg, err
}

// SetUserBlocked blocks or unblocks an account. Admin only.
func (a *API) SetUserBlocked(ctx context.Context, userID string, blocked bool) error {
	body := map[string]bool{"isBlocked": blocked}
	return a.cache.Mutate(ctx, []string{TagUser, TagActivity}, func(ctx context.Context) error {
		return a.rest.Patch(ctx, "/admin/users/"+userID+"/block", body, nil)
	})
}

// SubmitFeedback files a note with the admin back-office.
func (a *API) SubmitFeedback(ctx context.Context, subject, body string) error {
	payload := map[string]string{"subject": subject, "body": body}
	return a.cache.Mutate(ctx, []string{TagFeedback}, func(ctx context.Context) error {
		return a.rest.Post(ctx, "/feedback", payload, nil)
	})
}
