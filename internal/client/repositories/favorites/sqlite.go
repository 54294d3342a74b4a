package favorites

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/elliot09alderson/estate-client/internal/client/models"
	"github.com/elliot09alderson/estate-client/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateOrUpdate upserts a snapshot by property id. On conflict the display
// columns are refreshed and the tombstone is cleared.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, f *models.FavoriteSnapshot) error {
	query := `INSERT INTO favorites (property_id, title, price, city, image, saved_at, deleted)
			VALUES (?, ?, ?, ?, ?, ?, 0)
			ON CONFLICT(property_id) DO UPDATE SET title = excluded.title,
				price = excluded.price,
				city = excluded.city,
				image = excluded.image,
				saved_at = excluded.saved_at,
				deleted = 0
	`
	_, err := r.db.ExecContext(ctx, query,
		f.PropertyID, f.Title, f.Price, f.City, f.Image, f.SavedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert favorite: %w", err)
	}
	return nil
}

// GetAll lists all non-deleted snapshots, newest first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.FavoriteSnapshot, error) {
	query := `SELECT property_id, title, price, city, image, saved_at
			FROM favorites WHERE deleted = 0 ORDER BY saved_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorites: %w", err)
	}
	defer rows.Close()

	var result []models.FavoriteSnapshot
	for rows.Next() {
		var item models.FavoriteSnapshot
		if err := rows.Scan(&item.PropertyID, &item.Title, &item.Price, &item.City, &item.Image, &item.SavedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByID marks a snapshot as deleted (soft delete). Absent or already
// deleted ids are a no-op.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, propertyID string) error {
	query := `UPDATE favorites SET deleted = 1 WHERE property_id = ? AND deleted = 0`
	if _, err := r.db.ExecContext(ctx, query, propertyID); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

// ReplaceAll swaps the full snapshot set inside one transaction. The db bound
// to the repository must be a *sql.DB for this call.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, list []models.FavoriteSnapshot) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return fmt.Errorf("ReplaceAll requires a *sql.DB handle")
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM favorites`); err != nil {
			return fmt.Errorf("failed to clear favorites: %w", err)
		}
		repo := NewSQLiteRepository(tx)
		for i := range list {
			if err := repo.CreateOrUpdate(ctx, &list[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
