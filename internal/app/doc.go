// Package app provides the orchestration layer for snackdash.
//
// # Overview
//
// This package wires configuration, the POS API client, the data store,
// the background poller, and the UI into the complete application. It is
// the composition root; business logic lives in the domain packages.
//
// # Startup Sequence
//
//  1. Resolve the API base URL (flag > env > config file > default).
//  2. Load user preferences (theme).
//  3. Build the pos.Client and the store over it.
//  4. Launch the background poller goroutine.
//  5. Hydrate the store once so the first frame has data.
//  6. Run the TUI and block until exit or context cancellation.
//
// # Polling Behavior
//
// The poller re-fetches all three collections at a fixed cadence
// (default 15s) so sales recorded at other terminals show up without a
// manual refresh. Poll failures are logged and retried with exponential
// backoff capped at two minutes; the UI keeps displaying the last good
// snapshot and surfaces the store's error field.
//
// # Error Handling
//
// Configuration and client construction failures are fatal and returned
// from Run. Everything after startup is recoverable: fetch failures set
// the store's error field and polling continues.
package app
