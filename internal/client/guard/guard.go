// Package guard decides what a client view shows for a given session:
// the content, a loading notice while the session settles, or a redirect.
package guard

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/alumnilink/internal/client/session"
	"github.com/dmitrijs2005/alumnilink/internal/common"
)

var ErrUnknownRoute = errors.New("unknown route")

type Outcome int

const (
	Render Outcome = iota
	Loading
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the guard's verdict. Target is set only for Redirect.
type Decision struct {
	Outcome Outcome
	Target  string
}

// HomeFor returns the dashboard path of role.
func HomeFor(role common.Role) string {
	return role.HomePath()
}

// Decide gates a view that requires role. A settling session never renders
// and never redirects.
func Decide(snap session.Snapshot, required common.Role) Decision {
	switch {
	case snap.Pending():
		return Decision{Outcome: Loading}
	case !snap.Authenticated():
		return Decision{Outcome: Redirect, Target: common.PublicEntryPath}
	case snap.User.Role != required:
		return Decision{Outcome: Redirect, Target: HomeFor(snap.User.Role)}
	default:
		return Decision{Outcome: Render}
	}
}

// Router maps the dashboard view paths to the role they require.
type Router struct {
	routes map[string]common.Role
}

func NewRouter() *Router {
	r := &Router{routes: make(map[string]common.Role)}
	for _, role := range common.Roles {
		home := role.HomePath()
		r.routes[home] = role
		for _, v := range common.DashboardViews {
			r.routes[home+"/"+v] = role
		}
	}
	return r
}

// Required returns the role a path requires.
func (r *Router) Required(path string) (common.Role, bool) {
	role, ok := r.routes[normalize(path)]
	return role, ok
}

// Resolve decides what path shows for snap.
func (r *Router) Resolve(path string, snap session.Snapshot) (Decision, error) {
	role, ok := r.Required(path)
	if !ok {
		return Decision{}, ErrUnknownRoute
	}
	return Decide(snap, role), nil
}

// Paths lists every guarded path available to role.
func (r *Router) Paths(role common.Role) []string {
	home := role.HomePath()
	out := []string{home}
	for _, v := range common.DashboardViews {
		out = append(out, home+"/"+v)
	}
	return out
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
