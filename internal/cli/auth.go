package cli

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for username, display name and password (twice) and
// creates the account. The user still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	displayName, err := getSimpleText(a.reader, "Display name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	complete := strings.TrimSpace(userName) != "" && strings.TrimSpace(displayName) != "" && len(password) > 0
	if complete && subtle.ConstantTimeCompare(password, confirm) != 1 {
		return errPasswordMismatch
	}

	ctx, cancel := a.storageCtx(ctx)
	defer cancel()

	if err := a.auth.Register(ctx, userName, displayName, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created! Please log in.")
	return nil
}

// Login prompts for credentials and opens the user's records. Logging in
// while already logged in switches user.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.storageCtx(ctx)
	defer cancel()

	id, err := a.session.Login(ctx, userName, string(password))
	if err != nil {
		return err
	}

	recs, err := a.session.Records()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s! You have %d application(s).\n", id.DisplayName, len(recs))
	return nil
}

// Logout forgets the current user. Nothing is saved: every change was
// already persisted when it was made.
func (a *App) Logout(ctx context.Context) error {
	if !a.session.Authenticated() {
		return common.ErrNotAuthenticated
	}
	a.session.Logout()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id, ok := a.session.Identity()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", id.DisplayName, id.Username)
	return nil
}
