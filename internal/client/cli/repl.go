package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Pending(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	Favorite(ctx context.Context, args []string) error
	Favorites(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	Uploads(ctx context.Context) error
	RetryUpload(ctx context.Context, args []string) error
	CancelUpload(ctx context.Context, args []string) error
	Tours(ctx context.Context) error
	BookTour(ctx context.Context, args []string) error
	Users(ctx context.Context) error
	Block(ctx context.Context, args []string) error
	Activity(ctx context.Context) error
	Message(ctx context.Context, args []string) error
	Feedback(ctx context.Context) error
	Location(ctx context.Context, args []string) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are printed and swallowed here so
// a failed command never kills the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("estate %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "l", "list":
			err = a.List(ctx, args)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <text>")
				continue
			}
			err = a.Search(ctx, args)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <propertyID>")
				continue
			}
			err = a.Show(ctx, args)

		case "pending":
			err = a.Pending(ctx)

		case "approve":
			if len(args) == 0 {
				printlnFn("Usage: approve <propertyID>")
				continue
			}
			err = a.Approve(ctx, args)

		case "reject":
			if len(args) == 0 {
				printlnFn("Usage: reject <propertyID> [reason]")
				continue
			}
			err = a.Reject(ctx, args)

		case "fav":
			if len(args) == 0 {
				printlnFn("Usage: fav <propertyID>")
				continue
			}
			err = a.Favorite(ctx, args)

		case "favorites":
			err = a.Favorites(ctx)

		case "upload":
			if len(args) < 2 {
				printlnFn("Usage: upload <propertyID> <file> [file...]")
				continue
			}
			err = a.Upload(ctx, args)

		case "uploads":
			err = a.Uploads(ctx)

		case "retry":
			if len(args) == 0 {
				printlnFn("Usage: retry <uploadID>")
				continue
			}
			err = a.RetryUpload(ctx, args)

		case "cancel":
			if len(args) == 0 {
				printlnFn("Usage: cancel <uploadID>")
				continue
			}
			err = a.CancelUpload(ctx, args)

		case "tours":
			err = a.Tours(ctx)

		case "tour":
			if len(args) < 2 {
				printlnFn("Usage: tour <propertyID> <YYYY-MM-DDTHH:MM>")
				continue
			}
			err = a.BookTour(ctx, args)

		case "users":
			err = a.Users(ctx)

		case "block":
			if len(args) == 0 {
				printlnFn("Usage: block <userID>")
				continue
			}
			err = a.Block(ctx, args)

		case "activity":
			err = a.Activity(ctx)

		case "message":
			if len(args) == 0 {
				printlnFn("Usage: message <propertyID>")
				continue
			}
			err = a.Message(ctx, args)

		case "feedback":
			err = a.Feedback(ctx)

		case "location":
			err = a.Location(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

func printHelp(a execIface) {
	printlnFn("Browse: (l)ist, search, show, tours, tour, message, location")
	if !a.isLoggedIn() {
		printlnFn("Account: register, login, exit")
		return
	}
	printlnFn("Account: logout, feedback, exit")
	printlnFn("Favorites: fav, favorites")
	printlnFn("Uploads: upload, uploads, retry, cancel")
	if a.isAdmin() {
		printlnFn("Admin: pending, approve, reject, users, block, activity")
	}
}
