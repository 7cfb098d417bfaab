package cli

import (
	"context"
	"fmt"
	"time"
)

// getSimpleText and getPassword point to the interactive input helpers and
// can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a user name, email and password and creates an
// account. The new session becomes current.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.api.Register(ctx, userName, string(password), email); err != nil {
		return err
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Registered and logged in")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.api.Login(ctx, userName, string(password)); err != nil {
		return err
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}

	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.api.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:       %s\nusername: %s\nemail:    %s\njoined:   %s\nxp:       %d\n",
		p.ID, p.Username, p.Email, time.Unix(p.JoinedAt, 0).Format(time.RFC3339), p.XP)
	return nil
}

// Check prints the current token's expiry and whether it has passed.
func (a *App) Check(ctx context.Context) error {
	exp, err := a.api.CheckToken(ctx)
	if err != nil {
		return err
	}

	state := "valid"
	if !exp.After(time.Now()) {
		state = "expired"
	}
	fmt.Fprintf(a.out, "token expires at %s (%s)\n", exp.Format(time.RFC3339), state)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}
