package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/client/client"
	"github.com/dmitrijs2005/alumnilink/internal/client/guard"
	"github.com/dmitrijs2005/alumnilink/internal/client/session"
	"github.com/dmitrijs2005/alumnilink/internal/common"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getRole       = GetRole
)

// Signup asks for name, email, role and password and creates the account.
// The session stays anonymous; the user logs in afterwards.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	role, err := getRole(a.reader, false, a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Signup(ctx, email, string(password), name, role)
	if err != nil {
		return describe(err)
	}

	printlnFn(fmt.Sprintf("Account created for %s. Type 'login' to sign in.", user.Email))
	return nil
}

// Login asks for credentials and the role to log in as. On success the
// user lands on their dashboard.
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

	role, err := getRole(a.reader, true, a.out)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, email, string(password), role)
	if err != nil {
		if errors.Is(err, session.ErrRoleMismatch) {
			a.setView(common.PublicEntryPath)
		}
		return describe(err)
	}

	a.setView(guard.HomeFor(user.Role))
	printlnFn(fmt.Sprintf("Welcome back, %s!", user.Name))
	return nil
}

// Logout ends the session and returns to the public entry.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.setView(common.PublicEntryPath)
	printlnFn("Logged out")
	return nil
}

// WhoAmI shows what the server asserts about the current credential.
func (a *App) WhoAmI(ctx context.Context) error {
	info, err := a.session.Verify(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			a.setView(common.PublicEntryPath)
		}
		return describe(err)
	}
	snap := a.session.Snapshot()
	name := ""
	if snap.User != nil {
		name = snap.User.Name + " "
	}
	printlnFn(fmt.Sprintf("%sid=%s role=%s expires=%s", name, info.UserID, info.Role, info.ExpiresAt.Local().Format(time.RFC1123)))
	return nil
}

// describe turns session and transport errors into something worth showing.
func describe(err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return errors.New("server is unavailable, try again later")
	case errors.Is(err, session.ErrInvalidCredentials):
		return errors.New("invalid email or password")
	case errors.Is(err, session.ErrNotAuthenticated):
		return errors.New("you are not logged in")
	default:
		return err
	}
}
