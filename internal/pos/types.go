package pos

import (
	"time"

	"github.com/shopspring/decimal"
)

const posTimestampLayout = "2006-01-02 15:04:05"

// Snack is a sellable product. The barcode is the natural key and is
// immutable after creation.
type Snack struct {
	Barcode string          `json:"barcode"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
}

// Sale is a recorded transaction for a single snack. The server assigns
// the ID and timestamp; the embedded snack is a display denormalization
// and may be absent.
type Sale struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	SnackID   string `json:"snack_id"`
	Quantity  int    `json:"quantity"`
	Snack     *Snack `json:"snack,omitempty"`
}

// ParsedTimestamp returns the sale timestamp as time.Time when possible.
func (s Sale) ParsedTimestamp() time.Time {
	return parseTime(s.Timestamp)
}

// Stock is a tracked inventory lot for a snack. Quantity is the initial
// count for the lot, QuantityNow the current count. The wire field for the
// creation timestamp is "create_at", matching the service payload.
type Stock struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"create_at"`
	SnackID     string `json:"snack_id"`
	Quantity    int    `json:"quantity"`
	QuantityNow int    `json:"quantity_now"`
	Snack       *Snack `json:"snack,omitempty"`
}

// ParsedCreatedAt returns the parsed creation timestamp.
func (s Stock) ParsedCreatedAt() time.Time {
	return parseTime(s.CreatedAt)
}

// CreateSaleRequest is the payload for POST /sales/.
type CreateSaleRequest struct {
	SnackID  string `json:"snack_id"`
	Quantity int    `json:"quantity"`
}

// CreateStockRequest is the payload for POST /stock/.
type CreateStockRequest struct {
	SnackID     string `json:"snack_id"`
	Quantity    int    `json:"quantity"`
	QuantityNow int    `json:"quantity_now"`
}

// StockPatch is a partial update for PUT /stock/{id}. Nil fields are
// omitted and left unchanged server-side.
type StockPatch struct {
	SnackID     *string `json:"snack_id,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	QuantityNow *int    `json:"quantity_now,omitempty"`
}

// SnackPatch is a partial update for PUT /snacks/{barcode}.
type SnackPatch struct {
	Name  *string          `json:"name,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// parseTime parses API timestamps, which arrive either as RFC3339 or in
// the service's "2006-01-02 15:04:05" form. Unparseable or empty values
// return the zero time.
func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	if ts, err := time.ParseInLocation(posTimestampLayout, value, time.Local); err == nil {
		return ts
	}
	return time.Time{}
}
