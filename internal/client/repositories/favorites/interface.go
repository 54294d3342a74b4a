package favorites

import (
	"context"

	"github.com/elliot09alderson/estate-client/internal/client/models"
)

// Repository describes the local favorites snapshot operations.
// Implementations are typically backed by the client's SQLite database.
type Repository interface {
	// CreateOrUpdate inserts a new snapshot or refreshes an existing one by
	// property id, clearing any tombstone.
	CreateOrUpdate(ctx context.Context, f *models.FavoriteSnapshot) error

	// GetAll returns all non-deleted snapshots, most recently saved first.
	GetAll(ctx context.Context) ([]models.FavoriteSnapshot, error)

	// DeleteByID tombstones a snapshot. Absent ids are ignored.
	DeleteByID(ctx context.Context, propertyID string) error

	// ReplaceAll atomically swaps the whole snapshot set for the given list,
	// used after a successful remote favorites fetch.
	ReplaceAll(ctx context.Context, list []models.FavoriteSnapshot) error
}
