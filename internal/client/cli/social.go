package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Tours prints the user's scheduled visits.
func (a *App) Tours(ctx context.Context) error {
	tours, err := a.catalog.MyTours(ctx)
	if err != nil {
		return err
	}
	if len(tours) == 0 {
		printlnFn("No tours scheduled")
		return nil
	}
	for _, tr := range tours {
		printlnFn(fmt.Sprintf("%s  property %s  %s  [%s]",
			tr.ID, tr.PropertyID, tr.ScheduledAt.Format("2006-01-02 15:04"), tr.Status))
	}
	return nil
}

// BookTour schedules a visit: tour <propertyID> <YYYY-MM-DDTHH:MM>.
func (a *App) BookTour(ctx context.Context, args []string) error {
	at, err := time.Parse("2006-01-02T15:04", args[1])
	if err != nil {
		return fmt.Errorf("invalid time %q, expected YYYY-MM-DDTHH:MM", args[1])
	}

	notes, err := getSimpleText(a.reader, "Notes for the agent (optional)", os.Stdout)
	if err != nil {
		return err
	}

	tour, err := a.catalog.ScheduleTour(ctx, args[0], at, notes)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Tour %s requested for %s", tour.ID, at.Format("2006-01-02 15:04")))
	return nil
}

// Message sends a message about a property; the backend opens the
// conversation when none exists.
func (a *App) Message(ctx context.Context, args []string) error {
	var body string
	var err error
	if len(args) > 1 {
		body = strings.Join(args[1:], " ")
	} else {
		body, err = getSimpleText(a.reader, "Message", os.Stdout)
		if err != nil {
			return err
		}
	}
	if body == "" {
		return fmt.Errorf("message body is empty")
	}

	if _, err := a.catalog.SendMessage(ctx, args[0], body); err != nil {
		return err
	}
	printlnFn("Message sent")
	return nil
}

// Feedback files a note with the back-office.
func (a *App) Feedback(ctx context.Context) error {
	subject, err := getSimpleText(a.reader, "Subject", os.Stdout)
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Your feedback", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.catalog.SubmitFeedback(ctx, subject, body); err != nil {
		return err
	}
	printlnFn("Thanks for the feedback!")
	return nil
}
