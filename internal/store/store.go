package store

import (
	"context"
	"sync"
	"time"

	"github.com/snackpos/snackdash/internal/pos"
)

// Snapshot is an immutable view of the store's collections and flags at a
// point in time.
type Snapshot struct {
	Snacks      []pos.Snack
	Sales       []pos.Sale
	Stocks      []pos.Stock
	Loading     bool
	Err         string
	LastUpdated time.Time
}

// Store is the single source of truth for the three POS collections. It
// holds a read-through cache that is only ever replaced wholesale by a
// fresh server listing: mutations POST/PUT/DELETE and then re-fetch the
// affected collection(s) rather than patching in place, so the server's
// latest snapshot always wins.
type Store struct {
	api pos.Service

	mu       sync.RWMutex
	snacks   []pos.Snack
	sales    []pos.Sale
	stocks   []pos.Stock
	inflight int
	errMsg   string
	updated  time.Time
}

// New builds a Store over the given API service. Collections start empty
// and are hydrated by the first fetch.
func New(api pos.Service) *Store {
	return &Store{api: api}
}

// begin marks an operation as in flight and clears the error field. The
// returned release must run on every exit path so the loading flag cannot
// stick. The flag is a counter exposed as a boolean: nested re-fetches
// (createSale triggers two) keep it raised until the whole operation ends.
func (s *Store) begin() func() {
	s.mu.Lock()
	s.inflight++
	s.errMsg = ""
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}
}

// fail records the user-facing message for err and returns err so the
// caller can react locally (keep a modal open, log it). The store's error
// field is the single user-visible channel.
func (s *Store) fail(err error, fallback string) error {
	s.mu.Lock()
	s.errMsg = pos.Reason(err, fallback)
	s.mu.Unlock()
	return err
}

// FetchSnacks replaces the snack collection with a fresh listing.
func (s *Store) FetchSnacks(ctx context.Context) error {
	defer s.begin()()
	snacks, err := s.api.ListSnacks(ctx)
	if err != nil {
		return s.fail(err, "Failed to fetch snacks")
	}
	s.mu.Lock()
	s.snacks = snacks
	s.updated = time.Now()
	s.mu.Unlock()
	return nil
}

// FetchSales replaces the sale collection with a fresh listing.
func (s *Store) FetchSales(ctx context.Context) error {
	defer s.begin()()
	sales, err := s.api.ListSales(ctx)
	if err != nil {
		return s.fail(err, "Failed to fetch sales")
	}
	s.mu.Lock()
	s.sales = sales
	s.updated = time.Now()
	s.mu.Unlock()
	return nil
}

// FetchStocks replaces the stock collection with a fresh listing.
func (s *Store) FetchStocks(ctx context.Context) error {
	defer s.begin()()
	stocks, err := s.api.ListStock(ctx)
	if err != nil {
		return s.fail(err, "Failed to fetch stocks")
	}
	s.mu.Lock()
	s.stocks = stocks
	s.updated = time.Now()
	s.mu.Unlock()
	return nil
}

// FetchAll hydrates all three collections, stopping at the first failure.
func (s *Store) FetchAll(ctx context.Context) error {
	if err := s.FetchSnacks(ctx); err != nil {
		return err
	}
	if err := s.FetchSales(ctx); err != nil {
		return err
	}
	return s.FetchStocks(ctx)
}

// CreateSnack registers a snack, then re-fetches the snack collection.
func (s *Store) CreateSnack(ctx context.Context, snack pos.Snack) error {
	defer s.begin()()
	if _, err := s.api.CreateSnack(ctx, snack); err != nil {
		return s.fail(err, "Failed to create snack")
	}
	return s.FetchSnacks(ctx)
}

// CreateSale records a sale, then re-fetches sales AND stocks: the sale
// consumes stock server-side and the client cannot know the magnitude of
// the change, so both collections are invalidated.
func (s *Store) CreateSale(ctx context.Context, req pos.CreateSaleRequest) error {
	defer s.begin()()
	if _, err := s.api.CreateSale(ctx, req); err != nil {
		return s.fail(err, "Failed to create sale")
	}
	if err := s.FetchSales(ctx); err != nil {
		return err
	}
	return s.FetchStocks(ctx)
}

// CreateStock registers a stock lot, then re-fetches the stock collection.
func (s *Store) CreateStock(ctx context.Context, req pos.CreateStockRequest) error {
	defer s.begin()()
	if _, err := s.api.CreateStock(ctx, req); err != nil {
		return s.fail(err, "Failed to create stock")
	}
	return s.FetchStocks(ctx)
}

// DeleteSnack removes a snack by barcode, then re-fetches snacks.
func (s *Store) DeleteSnack(ctx context.Context, barcode string) error {
	defer s.begin()()
	if err := s.api.DeleteSnack(ctx, barcode); err != nil {
		return s.fail(err, "Failed to delete snack")
	}
	return s.FetchSnacks(ctx)
}

// DeleteSale removes a sale by ID, then re-fetches sales.
func (s *Store) DeleteSale(ctx context.Context, id string) error {
	defer s.begin()()
	if err := s.api.DeleteSale(ctx, id); err != nil {
		return s.fail(err, "Failed to delete sale")
	}
	return s.FetchSales(ctx)
}

// DeleteStock removes a stock lot by ID, then re-fetches stocks.
func (s *Store) DeleteStock(ctx context.Context, id string) error {
	defer s.begin()()
	if err := s.api.DeleteStock(ctx, id); err != nil {
		return s.fail(err, "Failed to delete stock")
	}
	return s.FetchStocks(ctx)
}

// UpdateStock applies a partial update to a stock lot, then re-fetches
// stocks.
func (s *Store) UpdateStock(ctx context.Context, id string, patch pos.StockPatch) error {
	defer s.begin()()
	if _, err := s.api.UpdateStock(ctx, id, patch); err != nil {
		return s.fail(err, "Failed to update stock")
	}
	return s.FetchStocks(ctx)
}

// Snapshot returns a copy of the current collections and flags. The
// returned slices are independent of the store's internal state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Snacks:      cloneSlice(s.snacks),
		Sales:       cloneSlice(s.sales),
		Stocks:      cloneSlice(s.stocks),
		Loading:     s.inflight > 0,
		Err:         s.errMsg,
		LastUpdated: s.updated,
	}
}

// ClearError resets the error field, e.g. after the user dismisses it.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
