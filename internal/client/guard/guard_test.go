package guard

import (
	"testing"

	"github.com/dmitrijs2005/alumnilink/internal/client/client"
	"github.com/dmitrijs2005/alumnilink/internal/client/session"
	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authed(role common.Role) session.Snapshot {
	return session.Snapshot{
		State: session.StateAuthenticated,
		User:  &client.User{ID: "u1", Name: "Jane Doe", Role: role},
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		snap     session.Snapshot
		required common.Role
		want     Decision
	}{
		{"uninitialized waits", session.Snapshot{State: session.StateUninitialized}, common.RoleStudent, Decision{Outcome: Loading}},
		{"restoring waits", session.Snapshot{State: session.StateRestoring}, common.RoleAlumni, Decision{Outcome: Loading}},
		{"loading flag waits", session.Snapshot{State: session.StateAnonymous, Loading: true}, common.RoleStudent, Decision{Outcome: Loading}},
		{"anonymous goes to entry", session.Snapshot{State: session.StateAnonymous}, common.RoleStudent, Decision{Outcome: Redirect, Target: "/"}},
		{"student on student view", authed(common.RoleStudent), common.RoleStudent, Decision{Outcome: Render}},
		{"student on alumni view", authed(common.RoleStudent), common.RoleAlumni, Decision{Outcome: Redirect, Target: "/student-dashboard"}},
		{"alumni on student view", authed(common.RoleAlumni), common.RoleStudent, Decision{Outcome: Redirect, Target: "/alumni-dashboard"}},
		{"alumni on alumni view", authed(common.RoleAlumni), common.RoleAlumni, Decision{Outcome: Render}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.snap, tt.required))
		})
	}
}

func TestRouter_Resolve(t *testing.T) {
	r := NewRouter()

	d, err := r.Resolve("/student-dashboard/sessions", authed(common.RoleStudent))
	require.NoError(t, err)
	assert.Equal(t, Render, d.Outcome)

	d, err = r.Resolve("alumni-dashboard/network/", authed(common.RoleStudent))
	require.NoError(t, err)
	assert.Equal(t, Decision{Outcome: Redirect, Target: "/student-dashboard"}, d)

	d, err = r.Resolve("/alumni-dashboard", session.Snapshot{State: session.StateRestoring})
	require.NoError(t, err)
	assert.Equal(t, Loading, d.Outcome)

	_, err = r.Resolve("/admin", authed(common.RoleAlumni))
	assert.ErrorIs(t, err, ErrUnknownRoute)

	_, err = r.Resolve("/student-dashboard/grades", authed(common.RoleStudent))
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestRouter_Paths(t *testing.T) {
	r := NewRouter()
	paths := r.Paths(common.RoleAlumni)

	assert.Len(t, paths, len(common.DashboardViews)+1)
	assert.Equal(t, "/alumni-dashboard", paths[0])
	for _, p := range paths {
		role, ok := r.Required(p)
		assert.True(t, ok, p)
		assert.Equal(t, common.RoleAlumni, role, p)
	}
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, "/student-dashboard", HomeFor(common.RoleStudent))
	assert.Equal(t, "/alumni-dashboard", HomeFor(common.RoleAlumni))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "render", Render.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "redirect", Redirect.String())
}
