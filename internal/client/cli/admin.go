package cli

import (
	"context"
	"fmt"
	"strings"
)

// Pending prints the moderation queue.
func (a *App) Pending(ctx context.Context) error {
	page, err := a.catalog.PendingProperties(ctx, 1)
	if err != nil {
		return err
	}
	printPropertyPage(page)
	return nil
}

// Approve publishes a pending listing.
func (a *App) Approve(ctx context.Context, args []string) error {
	if err := a.catalog.ApproveProperty(ctx, args[0]); err != nil {
		return err
	}
	printlnFn("Approved " + args[0])
	return nil
}

// Reject declines a pending listing: reject <propertyID> [reason].
func (a *App) Reject(ctx context.Context, args []string) error {
	reason := strings.Join(args[1:], " ")
	if err := a.catalog.RejectProperty(ctx, args[0], reason); err != nil {
		return err
	}
	printlnFn("Rejected " + args[0])
	return nil
}

// Users prints one page of registered accounts.
func (a *App) Users(ctx context.Context) error {
	page, err := a.catalog.ListUsers(ctx, 1)
	if err != nil {
		return err
	}
	for _, u := range page.Items {
		line := fmt.Sprintf("%s  %-20s %-25s %s", u.ID, u.Name, u.Email, u.Role)
		if u.Blocked {
			line += "  [blocked]"
		}
		printlnFn(line)
	}
	printPageFooter(page.Pagination)
	return nil
}

// Block flips the blocked flag of an account.
func (a *App) Block(ctx context.Context, args []string) error {
	if err := a.catalog.SetUserBlocked(ctx, args[0], true); err != nil {
		return err
	}
	printlnFn("Blocked " + args[0])
	return nil
}

// Activity prints the admin activity trail.
func (a *App) Activity(ctx context.Context) error {
	page, err := a.catalog.ActivityLog(ctx, 1)
	if err != nil {
		return err
	}
	for _, act := range page.Items {
		printlnFn(fmt.Sprintf("%s  %s %s %s/%s",
			act.CreatedAt.Format("2006-01-02 15:04"), act.ActorName, act.Action, act.TargetType, act.TargetID))
	}
	printPageFooter(page.Pagination)
	return nil
}
