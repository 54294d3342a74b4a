package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elliot09alderson/estate-client/internal/client/models"
)

type fakeFavoritesAPI struct {
	page      models.Page[models.Property]
	err       error
	favorited bool
	toggleErr error
	toggled   []string
}

func (f *fakeFavoritesAPI) Favorites(ctx context.Context, page int) (models.Page[models.Property], error) {
	return f.page, f.err
}

func (f *fakeFavoritesAPI) ToggleFavorite(ctx context.Context, propertyID string) (bool, error) {
	f.toggled = append(f.toggled, propertyID)
	return f.favorited, f.toggleErr
}

type fakeFavoritesRepo struct {
	snaps      []models.FavoriteSnapshot
	replaced   [][]models.FavoriteSnapshot
	deleted    []string
	getAllErr  error
	replaceErr error
}

func (f *fakeFavoritesRepo) CreateOrUpdate(ctx context.Context, s *models.FavoriteSnapshot) error {
	f.snaps = append(f.snaps, *s)
	return nil
}

func (f *fakeFavoritesRepo) GetAll(ctx context.Context) ([]models.FavoriteSnapshot, error) {
	return f.snaps, f.getAllErr
}

func (f *fakeFavoritesRepo) DeleteByID(ctx context.Context, propertyID string) error {
	f.deleted = append(f.deleted, propertyID)
	return nil
}

func (f *fakeFavoritesRepo) ReplaceAll(ctx context.Context, list []models.FavoriteSnapshot) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = append(f.replaced, list)
	f.snaps = list
	return nil
}

func remotePage(ids ...string) models.Page[models.Property] {
	items := make([]models.Property, len(ids))
	for i, id := range ids {
		items[i] = models.Property{
			ID:     id,
			Title:  "Home " + id,
			Price:  100000,
			City:   "Austin",
			Images: []string{"https://cdn.example.com/" + id + ".jpg"},
		}
	}
	return models.Page[models.Property]{
		Items:      items,
		Pagination: models.Pagination{CurrentPage: 1, TotalPages: 1, Total: len(items)},
	}
}

func TestFavoritesService_ListRefreshesSnapshot(t *testing.T) {
	remote := &fakeFavoritesAPI{page: remotePage("p1", "p2")}
	repo := &fakeFavoritesRepo{}
	svc := NewFavoritesService(remote, repo, nil)
	savedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return savedAt }

	page, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	require.Len(t, repo.replaced, 1)
	snaps := repo.replaced[0]
	require.Len(t, snaps, 2)
	assert.Equal(t, "p1", snaps[0].PropertyID)
	assert.Equal(t, "Home p1", snaps[0].Title)
	assert.Equal(t, "https://cdn.example.com/p1.jpg", snaps[0].Image)
	assert.Equal(t, savedAt, snaps[0].SavedAt)
}

func TestFavoritesService_ListLaterPagesDoNotTouchSnapshot(t *testing.T) {
	remote := &fakeFavoritesAPI{page: remotePage("p3")}
	repo := &fakeFavoritesRepo{}
	svc := NewFavoritesService(remote, repo, nil)

	_, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, repo.replaced, "only the first page mirrors into the snapshot")
}

func TestFavoritesService_ListFallsBackToSnapshotOffline(t *testing.T) {
	remote := &fakeFavoritesAPI{err: errors.New("network error: connection refused")}
	repo := &fakeFavoritesRepo{snaps: []models.FavoriteSnapshot{
		{PropertyID: "p1", Title: "Home p1", Price: 100000, City: "Austin", Image: "img"},
	}}
	svc := NewFavoritesService(remote, repo, nil)

	page, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p1", page.Items[0].ID)
	assert.Equal(t, []string{"img"}, page.Items[0].Images)
	assert.Equal(t, 1, page.Pagination.Total)
}

func TestFavoritesService_ListOfflineWithEmptySnapshotReturnsRemoteError(t *testing.T) {
	remoteErr := errors.New("network error: connection refused")
	remote := &fakeFavoritesAPI{err: remoteErr}
	repo := &fakeFavoritesRepo{}
	svc := NewFavoritesService(remote, repo, nil)

	_, err := svc.List(context.Background(), 1)
	require.ErrorIs(t, err, remoteErr)
}

func TestFavoritesService_SnapshotWriteFailureIsNotFatal(t *testing.T) {
	remote := &fakeFavoritesAPI{page: remotePage("p1")}
	repo := &fakeFavoritesRepo{replaceErr: errors.New("disk full")}
	svc := NewFavoritesService(remote, repo, nil)

	page, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestFavoritesService_ToggleMirrorsLocally(t *testing.T) {
	prop := models.Property{ID: "p1", Title: "Home", Images: []string{"img"}}

	t.Run("favorited", func(t *testing.T) {
		remote := &fakeFavoritesAPI{favorited: true}
		repo := &fakeFavoritesRepo{}
		svc := NewFavoritesService(remote, repo, nil)

		on, err := svc.Toggle(context.Background(), prop)
		require.NoError(t, err)
		assert.True(t, on)
		require.Len(t, repo.snaps, 1)
		assert.Equal(t, "p1", repo.snaps[0].PropertyID)
	})

	t.Run("unfavorited", func(t *testing.T) {
		remote := &fakeFavoritesAPI{favorited: false}
		repo := &fakeFavoritesRepo{}
		svc := NewFavoritesService(remote, repo, nil)

		on, err := svc.Toggle(context.Background(), prop)
		require.NoError(t, err)
		assert.False(t, on)
		assert.Equal(t, []string{"p1"}, repo.deleted)
	})

	t.Run("remote failure leaves snapshot untouched", func(t *testing.T) {
		remote := &fakeFavoritesAPI{toggleErr: errors.New("boom")}
		repo := &fakeFavoritesRepo{}
		svc := NewFavoritesService(remote, repo, nil)

		_, err := svc.Toggle(context.Background(), prop)
		require.Error(t, err)
		assert.Empty(t, repo.snaps)
		assert.Empty(t, repo.deleted)
	})
}
