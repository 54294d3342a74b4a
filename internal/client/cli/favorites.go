package cli

import (
	"context"
	"fmt"
)

// Favorite toggles the favorite state of a property.
func (a *App) Favorite(ctx context.Context, args []string) error {
	p, err := a.catalog.GetProperty(ctx, args[0])
	if err != nil {
		return err
	}

	on, err := a.favorites.Toggle(ctx, p)
	if err != nil {
		return err
	}
	if on {
		printlnFn(fmt.Sprintf("Added %q to favorites", p.Title))
	} else {
		printlnFn(fmt.Sprintf("Removed %q from favorites", p.Title))
	}
	return nil
}

// Favorites prints the favorites list. When the backend is unreachable the
// locally stored snapshot is shown instead.
func (a *App) Favorites(ctx context.Context) error {
	page, err := a.favorites.List(ctx, 1)
	if err != nil {
		return err
	}
	printPropertyPage(page)
	return nil
}
