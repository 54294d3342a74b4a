package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/elliot09alderson/estate-client/internal/client/api"
	"github.com/elliot09alderson/estate-client/internal/client/models"
)

// List prints one page of the public listing. An optional numeric argument
// selects the page. With a stored location the backend sorts by distance.
func (a *App) List(ctx context.Context, args []string) error {
	filter := api.PropertyFilter{}
	if len(args) > 0 {
		page, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid page %q", args[0])
		}
		filter.Page = page
	}

	if loc, err := a.session.Location(ctx); err == nil && loc != nil {
		filter.Lat = loc.Latitude
		filter.Lng = loc.Longitude
	}

	result, err := a.catalog.ListProperties(ctx, filter)
	if err != nil {
		return err
	}
	printPropertyPage(result)
	return nil
}

// Search runs a text search over the listing.
func (a *App) Search(ctx context.Context, args []string) error {
	result, err := a.catalog.ListProperties(ctx, api.PropertyFilter{Search: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	printPropertyPage(result)
	return nil
}

// Show prints one property in full.
func (a *App) Show(ctx context.Context, args []string) error {
	p, err := a.catalog.GetProperty(ctx, args[0])
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s (%s)", p.Title, p.ID))
	printlnFn(fmt.Sprintf("  %s, %s", p.Address, p.City))
	printlnFn(fmt.Sprintf("  %s, %d bd / %d ba, %.0f sqft", p.Type, p.Bedrooms, p.Bathrooms, p.AreaSqft))
	printlnFn(fmt.Sprintf("  $%.0f", p.Price))
	if p.RatingCount > 0 {
		printlnFn(fmt.Sprintf("  rated %.1f by %d users", p.Rating, p.RatingCount))
	}
	if p.Description != "" {
		printlnFn("  " + p.Description)
	}
	for _, img := range p.Images {
		printlnFn("  image: " + img)
	}
	return nil
}

// Location stores the coordinates used for distance-sorted listings:
// location <lat> <lng>. Without arguments the stored location is printed.
func (a *App) Location(ctx context.Context, args []string) error {
	if len(args) == 0 {
		loc, err := a.session.Location(ctx)
		if err != nil {
			return err
		}
		if loc == nil {
			printlnFn("No location stored. Usage: location <lat> <lng>")
			return nil
		}
		printlnFn(fmt.Sprintf("Stored location: %.5f, %.5f", loc.Latitude, loc.Longitude))
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: location <lat> <lng>")
		return nil
	}

	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid latitude %q", args[0])
	}
	lng, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid longitude %q", args[1])
	}

	if err := a.session.SetLocation(ctx, models.UserLocation{Latitude: lat, Longitude: lng}); err != nil {
		return err
	}
	if err := a.session.MarkLocationPromptShown(ctx); err != nil {
		return err
	}
	printlnFn("Location saved; listings now sort by distance")
	return nil
}

func printPropertyPage(page models.Page[models.Property]) {
	if len(page.Items) == 0 {
		printlnFn("No properties found")
		return
	}
	for _, p := range page.Items {
		printlnFn(fmt.Sprintf("%s  %-30s %-12s $%.0f", p.ID, p.Title, p.City, p.Price))
	}
	printPageFooter(page.Pagination)
}

func printPageFooter(p models.Pagination) {
	footer := fmt.Sprintf("Page %d of %d (%d total)", p.CurrentPage, p.TotalPages, p.Total)
	if p.HasNext {
		footer += ", more available"
	}
	printlnFn(footer)
}
