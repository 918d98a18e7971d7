// Package pos provides an HTTP client for the snack point-of-sale API.
//
// # Overview
//
// The package defines the typed bindings for the three POS resources
// (snacks, sales, and stock lots) plus the error taxonomy the rest of the
// application classifies failures with. It handles HTTP communication and
// JSON serialization; policy (what to fetch when, how to react to errors)
// lives in the store and app layers.
//
// # Client Usage
//
//	client, err := pos.NewClient("http://localhost:5000/api")
//	if err != nil {
//		log.Fatalf("init client: %v", err)
//	}
//
//	snacks, err := client.ListSnacks(ctx)
//	if err != nil {
//		log.Printf("list snacks: %v", err)
//	}
//
// # Endpoints
//
// One base path per resource, collection endpoints with a trailing slash:
//
//   - GET/POST /snacks/ and GET/PUT/DELETE /snacks/{barcode}
//   - GET/POST /sales/ and GET/DELETE /sales/{id}
//   - GET/POST /stock/ and GET/PUT/DELETE /stock/{id}
//
// # Error Handling
//
// Failures fall into four classes:
//
//   - Transport errors: wrapped as "execute request: ...", no response.
//   - *HTTPError: non-2xx with status and raw body.
//   - *ValidationError: 4xx whose body carried a user-facing "detail".
//   - ErrNotFound: matched via errors.Is for 404s on key operations.
//
// Reason() extracts the display string from any of these, falling back to
// a caller-provided generic message.
//
// # Design Notes
//
// The client is deliberately minimal: no retry, no caching, no request
// deduplication, and no timeout beyond the transport default; requests
// are bounded by the caller's context. Money fields use decimal.Decimal
// rather than floats so revenue arithmetic stays exact.
package pos
