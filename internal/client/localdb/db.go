// Package localdb opens the client's SQLite state database and applies the
// embedded migrations.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/elliot09alderson/estate-client/internal/client/migrations"
	"github.com/elliot09alderson/estate-client/internal/client/repositories/favorites"
	"github.com/elliot09alderson/estate-client/internal/client/repositories/localdata"
)

// Repositories bundles the repositories backed by the local database together
// with the raw handle, which callers need for transactional operations.
type Repositories struct {
	Metadata  localdata.Repository
	Favorites favorites.Repository
	DB        *sql.DB
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at dsn, migrates it, and
// returns the repository set.
func Open(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Metadata:  localdata.NewSQLiteRepository(db),
		Favorites: favorites.NewSQLiteRepository(db),
		DB:        db,
	}, nil
}
