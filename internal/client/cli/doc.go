// Package cli provides the interactive bloglist command-line client.
//
// It wires configuration, the HTTP API client and an interactive REPL.
// A background watcher probes the server and flips the prompt between
// online and offline.
//
// Commands:
//   - register / login / logout
//   - list, add, like <id>, delete <id>
//   - stats
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
