// Package client talks to the AlumniLink API on behalf of the CLI.
//
// Backend is the contract the session manager depends on (Signup, Login,
// Restore, Verify and Logout); HTTPBackend implements it over HTTP/JSON and
// adds the ping and avatar helpers used by the CLI.
//
// Transport failures, timeouts and 5xx answers are reported as
// ErrUnavailable, rejected credentials as ErrUnauthorized and other 4xx
// answers as *APIError carrying the server message. InitDatabase opens the
// local SQLite file and applies the embedded goose migrations.
package client
