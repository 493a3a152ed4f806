package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bloglist/internal/client/client"
)

// Register prompts for a username, display name and password and creates
// the account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if _, err := a.api.Register(ctx, username, name, password); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and keeps the issued token for the session.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	s, err := a.api.Login(ctx, username, password)
	if err != nil {
		return a.report(err)
	}

	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Logged in as %s\n", s.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// report prints err in user terms and returns it.
func (a *App) report(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Server unavailable")
	case errors.Is(err, client.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "Please login first")
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintln(a.out, "Not found")
	case errors.As(err, &apiErr) && apiErr.Message != "":
		fmt.Fprintln(a.out, "Error:", apiErr.Message)
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}
