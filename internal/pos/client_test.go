package pos

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:9000/api/")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "/api" {
		t.Fatalf("path = %q, want /api (trailing slash trimmed)", u.Path)
	}

	u, err = parseBaseURL("https://pos.internal/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL accepted a url without host")
	}
}

func TestClient_EndpointPreservesBasePath(t *testing.T) {
	c, err := NewClient("http://localhost:5000/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if got := c.endpoint("snacks/"); got != "http://localhost:5000/api/snacks/" {
		t.Fatalf("collection endpoint = %q", got)
	}
	if got := c.endpoint("snacks/", "001"); got != "http://localhost:5000/api/snacks/001" {
		t.Fatalf("keyed endpoint = %q", got)
	}
	if got := c.endpoint("stock/", "abc"); got != "http://localhost:5000/api/stock/abc" {
		t.Fatalf("stock endpoint = %q", got)
	}
}

func TestClient_CoversResourceOperations(t *testing.T) {
	t.Parallel()

	saleID := uuid.NewString()
	stockID := uuid.NewString()

	type recorded struct {
		method string
		path   string
		body   string
	}
	var calls []recorded

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: string(raw)})
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/snacks/":
			_ = json.NewEncoder(w).Encode([]Snack{{Barcode: "001", Name: "Cola", Price: decimal.RequireFromString("15.5")}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/snacks/001":
			_ = json.NewEncoder(w).Encode(Snack{Barcode: "001", Name: "Cola"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/snacks/":
			_ = json.NewEncoder(w).Encode(Snack{Barcode: "002", Name: "Chips"})
		case r.Method == http.MethodPut && r.URL.Path == "/api/snacks/001":
			_ = json.NewEncoder(w).Encode(Snack{Barcode: "001", Name: "Cola Zero"})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/snacks/001":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/api/sales/":
			_ = json.NewEncoder(w).Encode(Sale{ID: saleID, SnackID: "001", Quantity: 3})
		case r.Method == http.MethodGet && r.URL.Path == "/api/sales/":
			_ = json.NewEncoder(w).Encode([]Sale{{ID: saleID, SnackID: "001", Quantity: 3}})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/sales/"+saleID:
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/api/stock/":
			_ = json.NewEncoder(w).Encode(Stock{ID: stockID, SnackID: "001", Quantity: 10, QuantityNow: 10})
		case r.Method == http.MethodPut && r.URL.Path == "/api/stock/"+stockID:
			_ = json.NewEncoder(w).Encode(Stock{ID: stockID, SnackID: "001", Quantity: 10, QuantityNow: 4})
		case r.Method == http.MethodGet && r.URL.Path == "/api/stock/":
			_ = json.NewEncoder(w).Encode([]Stock{{ID: stockID, SnackID: "001", Quantity: 10, QuantityNow: 10}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	snacks, err := c.ListSnacks(ctx)
	if err != nil {
		t.Fatalf("ListSnacks returned error: %v", err)
	}
	if len(snacks) != 1 || snacks[0].Barcode != "001" {
		t.Fatalf("ListSnacks = %#v, want one snack 001", snacks)
	}
	if !snacks[0].Price.Equal(decimal.RequireFromString("15.5")) {
		t.Fatalf("price = %s, want 15.5", snacks[0].Price)
	}

	if _, err := c.GetSnack(ctx, "001"); err != nil {
		t.Fatalf("GetSnack returned error: %v", err)
	}
	if _, err := c.CreateSnack(ctx, Snack{Barcode: "002", Name: "Chips", Price: decimal.NewFromInt(12)}); err != nil {
		t.Fatalf("CreateSnack returned error: %v", err)
	}
	name := "Cola Zero"
	if _, err := c.UpdateSnack(ctx, "001", SnackPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateSnack returned error: %v", err)
	}
	if err := c.DeleteSnack(ctx, "001"); err != nil {
		t.Fatalf("DeleteSnack returned error: %v", err)
	}

	sale, err := c.CreateSale(ctx, CreateSaleRequest{SnackID: "001", Quantity: 3})
	if err != nil {
		t.Fatalf("CreateSale returned error: %v", err)
	}
	if sale.ID != saleID {
		t.Fatalf("sale id = %q, want %q", sale.ID, saleID)
	}
	if _, err := c.ListSales(ctx); err != nil {
		t.Fatalf("ListSales returned error: %v", err)
	}
	if err := c.DeleteSale(ctx, saleID); err != nil {
		t.Fatalf("DeleteSale returned error: %v", err)
	}

	lot, err := c.CreateStock(ctx, CreateStockRequest{SnackID: "001", Quantity: 10, QuantityNow: 10})
	if err != nil {
		t.Fatalf("CreateStock returned error: %v", err)
	}
	now := 4
	updated, err := c.UpdateStock(ctx, lot.ID, StockPatch{QuantityNow: &now})
	if err != nil {
		t.Fatalf("UpdateStock returned error: %v", err)
	}
	if updated.QuantityNow != 4 {
		t.Fatalf("QuantityNow = %d, want 4", updated.QuantityNow)
	}
	if _, err := c.ListStock(ctx); err != nil {
		t.Fatalf("ListStock returned error: %v", err)
	}

	// Mutation payloads must be JSON bodies on the collection paths.
	var sawSalePost bool
	for _, call := range calls {
		if call.method == http.MethodPost && call.path == "/api/sales/" {
			sawSalePost = true
			if !strings.Contains(call.body, `"snack_id":"001"`) || !strings.Contains(call.body, `"quantity":3`) {
				t.Fatalf("sale POST body = %q", call.body)
			}
		}
	}
	if !sawSalePost {
		t.Fatalf("no POST /api/sales/ recorded; calls = %#v", calls)
	}
}

func TestClient_ClassifiesErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/snacks/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"snack not found"}`))
		case "/api/snacks/":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail":"barcode already registered"}`))
		case "/api/sales/":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/api/stock/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.GetSnack(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSnack error = %v, want ErrNotFound", err)
	}

	_, err = c.CreateSnack(ctx, Snack{Barcode: "001"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("CreateSnack error = %v, want ValidationError", err)
	}
	if ve.Detail != "barcode already registered" {
		t.Fatalf("detail = %q", ve.Detail)
	}

	_, err = c.ListSales(ctx)
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("ListSales error = %v, want HTTPError", err)
	}
	if he.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", he.Status)
	}

	_, err = c.ListStock(ctx)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("ListStock error = %v, want decode response error", err)
	}

	// Transport failure: no server listening.
	dead, err := NewClient("http://127.0.0.1:1/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = dead.ListSnacks(ctx)
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("ListSnacks error = %v, want execute request error", err)
	}
}
