// Package cli provides the interactive stockbook command-line client.
//
// It wires configuration, the local SQLite mirror, the backend API client,
// and an interactive REPL. Catalog and record commands work entirely against
// the local database; a background worker mirrors local writes to the
// backend whenever the server is reachable.
//
// Key features:
//   - Register / Login
//   - Two catalogs (shoes, foods) with per-domain entry lists
//   - Purchase, sale and inbound records per entry
//   - Date-bucketed statistics with unit price extrema
//   - Manual and timed synchronization with the server
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
