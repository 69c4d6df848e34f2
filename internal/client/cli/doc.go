// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, the local store, the backend client and the
// services into an App, and exposes the App two ways: an interactive REPL
// (App.Run) and one-shot cobra subcommands (NewRootCommand).
//
// Key features:
//   - Browse the catalog: home page, categories, products
//   - Cart: add by product id, change quantities, remove, clear, checkout
//   - Demo login / logout
//   - Admin product and category management
//
// A background watcher pings the backend and the prompt shows whether the
// client is online or offline. Every failed command is reported once and
// the prompt returns; nothing is retried.
package cli
