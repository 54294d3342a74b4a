package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/elliot09alderson/estate-client/internal/client/cache"
	"github.com/elliot09alderson/estate-client/internal/client/models"
)

// PropertyFilter narrows the public listing. Zero values mean "not set" and
// are omitted from both the query string and the cache key.
type PropertyFilter struct {
	Page     int     `json:"page,omitempty"`
	Search   string  `json:"search,omitempty"`
	City     string  `json:"city,omitempty"`
	Type     string  `json:"propertyType,omitempty"`
	MinPrice float64 `json:"minPrice,omitempty"`
	MaxPrice float64 `json:"maxPrice,omitempty"`
	Bedrooms int     `json:"bedrooms,omitempty"`
	Sort     string  `json:"sort,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
}

func (f PropertyFilter) values() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.Type != "" {
		q.Set("propertyType", f.Type)
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Bedrooms > 0 {
		q.Set("bedrooms", strconv.Itoa(f.Bedrooms))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	if f.Lat != 0 || f.Lng != 0 {
		q.Set("lat", strconv.FormatFloat(f.Lat, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(f.Lng, 'f', -1, 64))
	}
	return q
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

// ListProperties returns one page of the approved public listing, filtered
// and sorted server-side.
func (a *API) ListProperties(ctx context.Context, filter PropertyFilter) (models.Page[models.Property], error) {
	key := cache.Key("listProperties", filter)
	return cache.QueryAs(ctx, a.cache, key, []string{TagProperty}, func(ctx context.Context) (models.Page[models.Property], error) {
		raw, err := a.raw(ctx, "/properties", filter.values())
		if err != nil {
			return models.Page[models.Property]{}, err
		}
		return adaptPage[models.Property](raw, "properties"), nil
	})
}

// GetProperty returns one property by ID.
func (a *API) GetProperty(ctx context.Context, id string) (models.Property, error) {
	key := cache.Key("getProperty", id)
	return cache.QueryAs(ctx, a.cache, key, []string{TagProperty}, func(ctx context.Context) (models.Property, error) {
		var p models.Property
		if err := a.rest.Get(ctx, "/properties/"+id, nil, &p); err != nil {
			return models.Property{}, err
		}
		return p, nil
	})
}

// PendingProperties returns the moderation queue. Admin only.
func (a *API) PendingProperties(ctx context.Context, page int) (models.Page[models.Property], error) {
	key := cache.Key("pendingProperties", page)
	return cache.QueryAs(ctx, a.cache, key, []string{TagProperty}, func(ctx context.Context) (models.Page[models.Property], error) {
		raw, err := a.raw(ctx, "/admin/properties/pending", pageQuery(page))
		if err != nil {
			return models.Page[models.Property]{}, err
		}
		return adaptPage[models.Property](raw, "properties"), nil
	})
}

// MyProperties returns the signed-in agent's own listings, any status.
func (a *API) MyProperties(ctx context.Context, page int) (models.Page[models.Property], error) {
	key := cache.Key("myProperties", page)
	return cache.QueryAs(ctx, a.cache, key, []string{TagProperty}, func(ctx context.Context) (models.Page[models.Property], error) {
		raw, err := a.raw(ctx, "/properties/mine", pageQuery(page))
		if err != nil {
			return models.Page[models.Property]{}, err
		}
		return adaptPage[models.Property](raw, "properties"), nil
	})
}

// Favorites returns the signed-in user's favorited properties.
func (a *API) Favorites(ctx context.Context, page int) (models.Page[models.Property], error) {
	key := cache.Key("favorites", page)
	return cache.QueryAs(ctx, a.cache, key, []string{TagFavorite, TagProperty}, func(ctx context.Context) (models.Page[models.Property], error) {
		raw, err := a.raw(ctx, "/favorites", pageQuery(page))
		if err != nil {
			return models.Page[models.Property]{}, err
		}
		return adaptPage[models.Property](raw, "favorites"), nil
	})
}

// ListUsers returns one page of registered users. Admin only.
func (a *API) ListUsers(ctx context.Context, page int) (models.Page[models.User], error) {
	key := cache.Key("listUsers", page)
	return cache.QueryAs(ctx, a.cache, key, []string{TagUser}, func(ctx context.Context) (models.Page[models.User], error) {
		raw, err := a.raw(ctx, "/admin/users", pageQuery(page))
		if err != nil {
			return models.Page[models.User]{}, err
		}
		return adaptPage[models.User](raw, "users"), nil
	})
}

// ActivityLog returns one page of the admin activity trail.
func (a *API) ActivityLog(ctx context.Context, page int) (models.Page[models.Activity], error) {
	key := cache.Key("activityLog", page)
	return cache.QueryAs(ctx, a.cache, key, []string{TagActivity}, func(ctx context.Context) (models.Page[models.Activity], error) {
		raw, err := a.raw(ctx, "/admin/activity", pageQuery(page))
		if err != nil {
			return models.Page[models.Activity]{}, err
		}
		return adaptPage[models.Activity](raw, "activities"), nil
	})
}

// MyTours returns the signed-in user's scheduled tours.
func (a *API) MyTours(ctx context.Context) ([]models.Tour, error) {
	return cache.QueryAs(ctx, a.cache, "myTours", []string{TagTour}, func(ctx context.Context) ([]models.Tour, error) {
		var tours []models.Tour
		if err := a.rest.Get(ctx, "/tours", nil, &tours); err != nil {
			return nil, err
		}
		return tours, nil
	})
}

// Conversations returns the signed-in user's message threads.
func (a *API) Conversations(ctx context.Context) ([]models.Conversation, error) {
	return cache.QueryAs(ctx, a.cache, "conversations", []string{TagMessage}, func(ctx context.Context) ([]models.Conversation, error) {
		var convs []models.Conversation
		if err := a.rest.Get(ctx, "/conversations", nil, &convs); err != nil {
			return nil, err
		}
		return convs, nil
	})
}

// Messages returns the messages of one conversation, oldest first.
func (a *API) Messages(ctx context.Context, conversationID string) ([]models.Message, error) {
	key := cache.Key("messages", conversationID)
	return cache.QueryAs(ctx, a.cache, key, []string{TagMessage}, func(ctx context.Context) ([]models.Message, error) {
		var msgs []models.Message
		if err := a.rest.Get(ctx, "/conversations/"+conversationID+"/messages", nil, &msgs); err != nil {
			return nil, err
		}
		return msgs, nil
	})
}
