// Package store provides the application data store shared by all screens.
//
// # Overview
//
// The Store is the only mutable shared state in the application: the three
// POS collections (snacks, sales, stock lots) plus a loading flag and a
// user-facing error message. Screens never talk to the API directly; they
// invoke store operations and re-render from Snapshot().
//
// # Consistency Model
//
// Every mutation is followed by a full re-fetch of the affected
// collection(s) instead of a local patch. The server is always truth; the
// client never reconciles deltas. CreateSale is the one operation with a
// cross-collection effect: a sale consumes stock server-side, so it
// invalidates both the sales and the stocks collections.
//
// # Flags
//
// Each operation raises the loading flag on entry and clears the error
// field; on failure it records a display message (extracted from the
// response's detail field when present) and returns the error so the
// caller can react locally. The release runs on every exit path, so the
// flag can never stick. Internally the flag is an in-flight counter:
// operations that trigger nested re-fetches keep it raised until the whole
// chain resolves.
//
// # Concurrency
//
// Fields are guarded by an RWMutex; Snapshot() returns defensive copies.
// Concurrent operations are not serialized against each other: two racing
// mutations each perform an atomic collection replacement, and the last
// error message written wins. Acceptable at this scale.
package store
