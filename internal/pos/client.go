package pos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Service is the set of POS API operations the rest of the application
// depends on. It is implemented by *Client and by test stubs.
type Service interface {
	ListSnacks(ctx context.Context) ([]Snack, error)
	GetSnack(ctx context.Context, barcode string) (*Snack, error)
	CreateSnack(ctx context.Context, snack Snack) (*Snack, error)
	UpdateSnack(ctx context.Context, barcode string, patch SnackPatch) (*Snack, error)
	DeleteSnack(ctx context.Context, barcode string) error

	ListSales(ctx context.Context) ([]Sale, error)
	GetSale(ctx context.Context, id string) (*Sale, error)
	CreateSale(ctx context.Context, req CreateSaleRequest) (*Sale, error)
	DeleteSale(ctx context.Context, id string) error

	ListStock(ctx context.Context) ([]Stock, error)
	GetStock(ctx context.Context, id string) (*Stock, error)
	CreateStock(ctx context.Context, req CreateStockRequest) (*Stock, error)
	UpdateStock(ctx context.Context, id string, patch StockPatch) (*Stock, error)
	DeleteStock(ctx context.Context, id string) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the POS HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the address of a locally running POS service.
	DefaultBaseURL = "http://localhost:5000/api"

	defaultUserAgent = "snackdash/0.1"
)

// NewClient builds a Client for the given base URL. An empty value uses
// DefaultBaseURL. No timeout is configured beyond the transport default;
// callers bound requests through the context.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}, nil
}

// Snacks

// ListSnacks retrieves every snack.
func (c *Client) ListSnacks(ctx context.Context) ([]Snack, error) {
	var payload []Snack
	if err := c.do(ctx, http.MethodGet, c.endpoint("snacks/"), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetSnack retrieves one snack by barcode.
func (c *Client) GetSnack(ctx context.Context, barcode string) (*Snack, error) {
	var payload Snack
	if err := c.do(ctx, http.MethodGet, c.endpoint("snacks/", barcode), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateSnack registers a new snack. The caller supplies the barcode;
// the server rejects duplicates.
func (c *Client) CreateSnack(ctx context.Context, snack Snack) (*Snack, error) {
	var payload Snack
	if err := c.do(ctx, http.MethodPost, c.endpoint("snacks/"), snack, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateSnack applies a partial update to a snack by barcode.
func (c *Client) UpdateSnack(ctx context.Context, barcode string, patch SnackPatch) (*Snack, error) {
	var payload Snack
	if err := c.do(ctx, http.MethodPut, c.endpoint("snacks/", barcode), patch, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteSnack removes a snack by barcode.
func (c *Client) DeleteSnack(ctx context.Context, barcode string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("snacks/", barcode), nil, nil)
}

// Sales

// ListSales retrieves every recorded sale.
func (c *Client) ListSales(ctx context.Context) ([]Sale, error) {
	var payload []Sale
	if err := c.do(ctx, http.MethodGet, c.endpoint("sales/"), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetSale retrieves one sale by ID.
func (c *Client) GetSale(ctx context.Context, id string) (*Sale, error) {
	var payload Sale
	if err := c.do(ctx, http.MethodGet, c.endpoint("sales/", id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateSale records a sale. The server assigns ID and timestamp and
// decrements stock for the referenced snack.
func (c *Client) CreateSale(ctx context.Context, req CreateSaleRequest) (*Sale, error) {
	var payload Sale
	if err := c.do(ctx, http.MethodPost, c.endpoint("sales/"), req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteSale removes a sale by ID.
func (c *Client) DeleteSale(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("sales/", id), nil, nil)
}

// Stock

// ListStock retrieves every stock lot.
func (c *Client) ListStock(ctx context.Context) ([]Stock, error) {
	var payload []Stock
	if err := c.do(ctx, http.MethodGet, c.endpoint("stock/"), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetStock retrieves one stock lot by ID.
func (c *Client) GetStock(ctx context.Context, id string) (*Stock, error) {
	var payload Stock
	if err := c.do(ctx, http.MethodGet, c.endpoint("stock/", id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateStock registers a new stock lot. The server assigns ID and
// creation timestamp.
func (c *Client) CreateStock(ctx context.Context, req CreateStockRequest) (*Stock, error) {
	var payload Stock
	if err := c.do(ctx, http.MethodPost, c.endpoint("stock/"), req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateStock applies a partial update to a stock lot; fields left nil in
// the patch are merged server-side.
func (c *Client) UpdateStock(ctx context.Context, id string, patch StockPatch) (*Stock, error) {
	var payload Stock
	if err := c.do(ctx, http.MethodPut, c.endpoint("stock/", id), patch, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteStock removes a stock lot by ID.
func (c *Client) DeleteStock(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("stock/", id), nil, nil)
}

// endpoint joins path segments onto the base URL, preserving the base
// path (the API roots under /api) and the collection trailing slash.
func (c *Client) endpoint(parts ...string) string {
	out := strings.TrimRight(c.baseURL.String(), "/")
	for _, part := range parts {
		out += "/" + strings.Trim(part, "/")
	}
	if len(parts) > 0 && strings.HasSuffix(parts[len(parts)-1], "/") {
		out += "/"
	}
	return out
}

func (c *Client) do(ctx context.Context, method, reqURL string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return decodeError(resp.StatusCode, raw)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseBaseURL normalizes the configured base URL. Unlike a bare
// host:port bind, the path component is kept because the service roots
// its API under a path prefix.
func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
