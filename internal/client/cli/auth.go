package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/elliot09alderson/estate-client/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates an account. The new
// user is signed in right away.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, api.RegisterInput{Name: name, Email: email, Password: password})
	if err != nil {
		return err
	}

	a.setUser(user)
	printlnFn(fmt.Sprintf("Welcome, %s!", user.Name))
	return nil
}

// Login prompts for credentials and authenticates. On success the session is
// persisted locally, so the next start skips the login.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.setUser(user)
	printlnFn(fmt.Sprintf("Welcome, %s!", user.Name))
	return nil
}

// Logout drops the persisted session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setUser(nil)
	printlnFn("Logged out")
	return nil
}
