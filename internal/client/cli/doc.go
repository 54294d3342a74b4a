// Package cli provides the interactive Estate command-line client.
//
// It wires configuration, the local SQLite store, the REST transport, the
// entity cache and the upload queue into an interactive REPL. Typical flow:
// restore the persisted session, start a background connectivity watcher,
// and execute user commands.
//
// Key features:
//   - Login / Register / Logout with a locally persisted session
//   - Browse, search and inspect property listings
//   - Favorites with an offline local snapshot
//   - Queued image uploads with progress, retry and cancel
//   - Admin moderation: pending queue, approve/reject, users, activity log
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, startOnlineStatusWatcher, and runREPL for details.
package cli
