// Package cli is the interactive AlumniLink command-line client.
//
// It restores the previous session in the background on start-up, then runs
// a REPL for signing up, logging in and out, and moving between dashboard
// views. Views are gated by the route guard: a view for the other role
// redirects to the user's own dashboard and anonymous visitors go back to
// the public entry.
//
// The REPL is started via App.Run, which blocks until the user exits.
package cli
