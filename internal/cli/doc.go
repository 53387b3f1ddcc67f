// Package cli provides the Resilia command-line front end.
//
// It wires configuration, the device store, the account, session and
// activity services, and exposes them two ways: one-shot cobra subcommands
// (see NewRootCommand) and an interactive REPL started when no subcommand is
// given (see App.Root).
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - Profile edits and profile photo
//   - Mood check-ins, mood history and trends
//   - Conversation journal and history
//   - Device status
package cli
