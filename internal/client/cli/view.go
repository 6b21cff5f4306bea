package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/alumnilink/internal/client/guard"
	"github.com/dmitrijs2005/alumnilink/internal/client/session"
	"github.com/dmitrijs2005/alumnilink/internal/common"
)

// maxRedirects bounds redirect chains; a guard never needs more than one hop.
const maxRedirects = 3

// Open navigates to path through the route guard.
func (a *App) Open(ctx context.Context, path string) error {
	for i := 0; i < maxRedirects; i++ {
		if path == common.PublicEntryPath {
			a.setView(path)
			printlnFn("AlumniLink: connect students with alumni. Type 'login' or 'signup'.")
			return nil
		}

		snap := a.session.Snapshot()
		d, err := a.router.Resolve(path, snap)
		if err != nil {
			if errors.Is(err, guard.ErrUnknownRoute) {
				return fmt.Errorf("no such view: %s", path)
			}
			return err
		}

		switch d.Outcome {
		case guard.Loading:
			printlnFn("Loading session, try again in a moment...")
			return nil
		case guard.Redirect:
			printlnFn("Redirected to", d.Target)
			path = d.Target
		default:
			a.setView(path)
			a.render(path, snap)
			return nil
		}
	}
	return fmt.Errorf("too many redirects opening %s", path)
}

// Views lists the views the current user may open.
func (a *App) Views(ctx context.Context) error {
	snap := a.session.Snapshot()
	if !snap.Authenticated() {
		printlnFn(common.PublicEntryPath)
		return nil
	}
	for _, p := range a.router.Paths(snap.User.Role) {
		printlnFn(p)
	}
	return nil
}

// render draws the view for the snapshot the guard admitted it under.
func (a *App) render(path string, snap session.Snapshot) {
	if snap.User == nil {
		printlnFn("Not signed in.")
		return
	}
	title := "Student dashboard"
	if snap.User.Role == common.RoleAlumni {
		title = "Alumni dashboard"
	}
	home := guard.HomeFor(snap.User.Role)
	if sub := strings.TrimPrefix(path, home+"/"); sub != path {
		title += ": " + sub
	}
	printlnFn(fmt.Sprintf("== %s ==", title))
}
