// Package cli provides the interactive OnTrail command-line client.
//
// It wraps the api package in a small REPL: log in with email and password,
// inspect the stored session, and fetch PostgREST resources with filters
// given on the command line (select=, order=, range= and column=op.value).
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
