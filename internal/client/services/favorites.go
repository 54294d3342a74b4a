package services

import (
	"context"
	"time"

	"github.com/elliot09alderson/estate-client/internal/client/models"
	"github.com/elliot09alderson/estate-client/internal/client/repositories/favorites"
	"github.com/elliot09alderson/estate-client/internal/logging"
)

// FavoritesAPI is the slice of the operation catalog the favorites service
// needs.
type FavoritesAPI interface {
	Favorites(ctx context.Context, page int) (models.Page[models.Property], error)
	ToggleFavorite(ctx context.Context, propertyID string) (bool, error)
}

// FavoritesService serves the favorites list remote-first and falls back to
// the local snapshot when the backend is unreachable.
type FavoritesService struct {
	api   FavoritesAPI
	local favorites.Repository
	log   logging.Logger
	now   func() time.Time
}

func NewFavoritesService(a FavoritesAPI, local favorites.Repository, log logging.Logger) *FavoritesService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &FavoritesService{api: a, local: local, log: log, now: time.Now}
}

// List returns the user's favorites. A successful remote fetch of the first
// page refreshes the local snapshot; on a remote failure the snapshot is
// served instead so the list still renders offline.
func (s *FavoritesService) List(ctx context.Context, page int) (models.Page[models.Property], error) {
	remote, err := s.api.Favorites(ctx, page)
	if err != nil {
		s.log.Warn(ctx, "favorites fetch failed, serving local snapshot", "error", err)
		return s.fromSnapshot(ctx, err)
	}

	if page <= 1 {
		if err := s.local.ReplaceAll(ctx, snapshots(remote.Items, s.now())); err != nil {
			// The remote page is still good; a snapshot failure is not fatal.
			s.log.Warn(ctx, "favorites snapshot refresh failed", "error", err)
		}
	}
	return remote, nil
}

// Toggle flips the favorite state remotely and mirrors the result into the
// local snapshot.
func (s *FavoritesService) Toggle(ctx context.Context, p models.Property) (bool, error) {
	favorited, err := s.api.ToggleFavorite(ctx, p.ID)
	if err != nil {
		return false, err
	}

	if favorited {
		snap := snapshot(p, s.now())
		if err := s.local.CreateOrUpdate(ctx, &snap); err != nil {
			s.log.Warn(ctx, "favorite snapshot write failed", "property", p.ID, "error", err)
		}
	} else {
		if err := s.local.DeleteByID(ctx, p.ID); err != nil {
			s.log.Warn(ctx, "favorite snapshot delete failed", "property", p.ID, "error", err)
		}
	}
	return favorited, nil
}

// fromSnapshot builds a single offline page from the local snapshot. When
// the snapshot is empty too, the original remote error is returned.
func (s *FavoritesService) fromSnapshot(ctx context.Context, remoteErr error) (models.Page[models.Property], error) {
	snaps, err := s.local.GetAll(ctx)
	if err != nil || len(snaps) == 0 {
		return models.Page[models.Property]{}, remoteErr
	}

	items := make([]models.Property, len(snaps))
	for i, snap := range snaps {
		items[i] = models.Property{
			ID:    snap.PropertyID,
			Title: snap.Title,
			Price: snap.Price,
			City:  snap.City,
		}
		if snap.Image != "" {
			items[i].Images = []string{snap.Image}
		}
	}
	return models.Page[models.Property]{
		Items: items,
		Pagination: models.Pagination{
			CurrentPage: 1,
			TotalPages:  1,
			Total:       len(items),
		},
	}, nil
}

func snapshots(items []models.Property, at time.Time) []models.FavoriteSnapshot {
	out := make([]models.FavoriteSnapshot, len(items))
	for i, p := range items {
		out[i] = snapshot(p, at)
	}
	return out
}

func snapshot(p models.Property, at time.Time) models.FavoriteSnapshot {
	snap := models.FavoriteSnapshot{
		PropertyID: p.ID,
		Title:      p.Title,
		Price:      p.Price,
		City:       p.City,
		SavedAt:    at,
	}
	if len(p.Images) > 0 {
		snap.Image = p.Images[0]
	}
	return snap
}
