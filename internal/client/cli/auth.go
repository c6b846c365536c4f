package cli

import (
	"context"
	"fmt"

	"github.com/evently/evently/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login exchanges email/password for a credential, stores it and
// re-resolves the session. A failed server verification after a successful
// exchange still leaves the credential stored.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		a.printError(err)
		return err
	}

	if err := a.session.Login(ctx, token); err != nil {
		a.printError(err)
		return err
	}

	if p := a.session.Profile(); p != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", p.Name)
		if err := a.favorites.Load(ctx); err != nil {
			a.logger.Warn(ctx, "loading favorites failed", "error", err)
		}
	} else {
		fmt.Fprintln(a.out, "Login succeeded but the credential could not be verified.")
	}
	return nil
}

// Signup creates an account, then logs straight in with the same
// credentials.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
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
	defer common.WipeByteArray(password)

	if err := a.api.Signup(ctx, email, string(password), name); err != nil {
		a.printError(err)
		return err
	}

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		a.printError(err)
		return err
	}
	if err := a.session.Login(ctx, token); err != nil {
		a.printError(err)
		return err
	}

	fmt.Fprintln(a.out, "Welcome to Evently!")
	return nil
}

// Logout clears the stored credential and drops back to anonymous.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.printError(err)
		return err
	}
	a.current = nil
	a.thread = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the verified profile, or the anonymous state.
func (a *App) WhoAmI(ctx context.Context) {
	if p := a.session.Profile(); p != nil {
		fmt.Fprintf(a.out, "%s <%s>\n", p.Name, p.Email)
		return
	}
	fmt.Fprintln(a.out, "Not logged in.")
}
