package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/snackpos/snackdash/internal/pos"
	"github.com/snackpos/snackdash/internal/views"
)

// fakeService is an in-memory POS backend. It mimics the server-side
// coupling between sales and stock: creating a sale decrements the
// matching lot's quantity_now.
type fakeService struct {
	mu     sync.Mutex
	snacks []pos.Snack
	sales  []pos.Sale
	stocks []pos.Stock

	listCalls map[string]int
	failWith  error           // next call returns this error
	gate      <-chan struct{} // when set, List calls block until closed
}

func newFakeService() *fakeService {
	return &fakeService{listCalls: map[string]int{}}
}

func (f *fakeService) take() error {
	err := f.failWith
	f.failWith = nil
	return err
}

func (f *fakeService) ListSnacks(ctx context.Context) ([]pos.Snack, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls["snacks"]++
	if err := f.take(); err != nil {
		return nil, err
	}
	return append([]pos.Snack(nil), f.snacks...), nil
}

func (f *fakeService) GetSnack(ctx context.Context, barcode string) (*pos.Snack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snacks {
		if f.snacks[i].Barcode == barcode {
			snack := f.snacks[i]
			return &snack, nil
		}
	}
	return nil, pos.ErrNotFound
}

func (f *fakeService) CreateSnack(ctx context.Context, snack pos.Snack) (*pos.Snack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.take(); err != nil {
		return nil, err
	}
	f.snacks = append(f.snacks, snack)
	return &snack, nil
}

func (f *fakeService) UpdateSnack(ctx context.Context, barcode string, patch pos.SnackPatch) (*pos.Snack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snacks {
		if f.snacks[i].Barcode == barcode {
			if patch.Name != nil {
				f.snacks[i].Name = *patch.Name
			}
			if patch.Price != nil {
				f.snacks[i].Price = *patch.Price
			}
			snack := f.snacks[i]
			return &snack, nil
		}
	}
	return nil, pos.ErrNotFound
}

func (f *fakeService) DeleteSnack(ctx context.Context, barcode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.take(); err != nil {
		return err
	}
	for i := range f.snacks {
		if f.snacks[i].Barcode == barcode {
			f.snacks = append(f.snacks[:i], f.snacks[i+1:]...)
			return nil
		}
	}
	return pos.ErrNotFound
}

func (f *fakeService) ListSales(ctx context.Context) ([]pos.Sale, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls["sales"]++
	if err := f.take(); err != nil {
		return nil, err
	}
	return append([]pos.Sale(nil), f.sales...), nil
}

func (f *fakeService) GetSale(ctx context.Context, id string) (*pos.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sales {
		if f.sales[i].ID == id {
			sale := f.sales[i]
			return &sale, nil
		}
	}
	return nil, pos.ErrNotFound
}

func (f *fakeService) CreateSale(ctx context.Context, req pos.CreateSaleRequest) (*pos.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.take(); err != nil {
		return nil, err
	}
	sale := pos.Sale{
		ID:        uuid.NewString(),
		Timestamp: time.Now().Format(time.RFC3339),
		SnackID:   req.SnackID,
		Quantity:  req.Quantity,
	}
	f.sales = append(f.sales, sale)
	for i := range f.stocks {
		if f.stocks[i].SnackID == req.SnackID {
			f.stocks[i].QuantityNow -= req.Quantity
			break
		}
	}
	return &sale, nil
}

func (f *fakeService) DeleteSale(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sales {
		if f.sales[i].ID == id {
			f.sales = append(f.sales[:i], f.sales[i+1:]...)
			return nil
		}
	}
	return pos.ErrNotFound
}

func (f *fakeService) ListStock(ctx context.Context) ([]pos.Stock, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls["stock"]++
	if err := f.take(); err != nil {
		return nil, err
	}
	return append([]pos.Stock(nil), f.stocks...), nil
}

func (f *fakeService) GetStock(ctx context.Context, id string) (*pos.Stock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.stocks {
		if f.stocks[i].ID == id {
			lot := f.stocks[i]
			return &lot, nil
		}
	}
	return nil, pos.ErrNotFound
}

func (f *fakeService) CreateStock(ctx context.Context, req pos.CreateStockRequest) (*pos.Stock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.take(); err != nil {
		return nil, err
	}
	lot := pos.Stock{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().Format(time.RFC3339),
		SnackID:     req.SnackID,
		Quantity:    req.Quantity,
		QuantityNow: req.QuantityNow,
	}
	f.stocks = append(f.stocks, lot)
	return &lot, nil
}

func (f *fakeService) UpdateStock(ctx context.Context, id string, patch pos.StockPatch) (*pos.Stock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.stocks {
		if f.stocks[i].ID == id {
			if patch.SnackID != nil {
				f.stocks[i].SnackID = *patch.SnackID
			}
			if patch.Quantity != nil {
				f.stocks[i].Quantity = *patch.Quantity
			}
			if patch.QuantityNow != nil {
				f.stocks[i].QuantityNow = *patch.QuantityNow
			}
			lot := f.stocks[i]
			return &lot, nil
		}
	}
	return nil, pos.ErrNotFound
}

func (f *fakeService) DeleteStock(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.stocks {
		if f.stocks[i].ID == id {
			f.stocks = append(f.stocks[:i], f.stocks[i+1:]...)
			return nil
		}
	}
	return pos.ErrNotFound
}

var _ pos.Service = (*fakeService)(nil)

func TestStore_CreateThenDeleteSnack(t *testing.T) {
	ctx := context.Background()
	api := newFakeService()
	s := New(api)

	err := s.CreateSnack(ctx, pos.Snack{Barcode: "001", Name: "Chips", Price: decimal.RequireFromString("15.5")})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Snacks, 1)
	require.Equal(t, "001", snap.Snacks[0].Barcode)
	require.False(t, snap.Loading)
	require.Empty(t, snap.Err)

	require.NoError(t, s.DeleteSnack(ctx, "001"))
	snap = s.Snapshot()
	require.Empty(t, snap.Snacks)
}

func TestStore_RefetchIsAuthoritative(t *testing.T) {
	ctx := context.Background()
	api := newFakeService()
	s := New(api)

	require.NoError(t, s.CreateSnack(ctx, pos.Snack{Barcode: "001", Name: "Cola"}))
	require.NoError(t, s.CreateSnack(ctx, pos.Snack{Barcode: "002", Name: "Chips"}))

	// The collection after a mutation equals exactly what a fresh GET-all
	// returns: no stale entries, no duplicates.
	fresh, err := api.ListSnacks(ctx)
	require.NoError(t, err)
	require.Equal(t, fresh, s.Snapshot().Snacks)
}

func TestStore_CreateSaleRefreshesSalesAndStocks(t *testing.T) {
	ctx := context.Background()
	api := newFakeService()
	s := New(api)

	// No stock entries exist for this snack; both refreshes still fire.
	err := s.CreateSale(ctx, pos.CreateSaleRequest{SnackID: "no-stock", Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, 1, api.listCalls["sales"])
	require.Equal(t, 1, api.listCalls["stock"])
}

func TestStore_SaleConsumesStock(t *testing.T) {
	ctx := context.Background()
	api := newFakeService()
	s := New(api)

	require.NoError(t, s.CreateStock(ctx, pos.CreateStockRequest{SnackID: "001", Quantity: 10, QuantityNow: 10}))
	require.NoError(t, s.CreateSale(ctx, pos.CreateSaleRequest{SnackID: "001", Quantity: 3}))

	snap := s.Snapshot()
	require.Len(t, snap.Stocks, 1)
	lot := snap.Stocks[0]
	require.Equal(t, 7, lot.QuantityNow)

	// The screen-level derivation recomputes from the refreshed lot.
	pct := views.FillPercent(lot)
	require.InDelta(t, 70.0, pct, 0.0001)
	require.Equal(t, views.StatusHigh, views.StatusFor(pct))

	// The created sale is a member of the re-fetched collection, matched
	// by its server-assigned key.
	require.Len(t, snap.Sales, 1)
	require.NotEmpty(t, snap.Sales[0].ID)
}

func TestStore_LoadingDuringInFlightWindow(t *testing.T) {
	ctx := context.Background()
	api := newFakeService()
	gate := make(chan struct{})
	api.gate = gate
	s := New(api)

	done := make(chan error, 1)
	go func() { done <- s.FetchSnacks(ctx) }()

	// The operation is blocked inside the list call; loading must read true.
	require.Eventually(t, func() bool { return s.Snapshot().Loading },
		time.Second, time.Millisecond)

	close(gate)
	require.NoError(t, <-done)
	require.False(t, s.Snapshot().Loading)
}

func TestStore_FailureSetsErrorAndReleasesLoading(t *testing.T) {
	ctx := context.Background()
	api := newFakeService()
	s := New(api)

	api.failWith = &pos.ValidationError{Status: 422, Detail: "insufficient stock"}
	err := s.CreateSale(ctx, pos.CreateSaleRequest{SnackID: "001", Quantity: 99})
	require.Error(t, err)

	snap := s.Snapshot()
	require.Equal(t, "insufficient stock", snap.Err)
	require.False(t, snap.Loading)

	// No refresh ran after the failed create.
	require.Zero(t, api.listCalls["sales"])
	require.Zero(t, api.listCalls["stock"])

	// The next operation clears the stale error on entry.
	require.NoError(t, s.FetchSnacks(ctx))
	require.Empty(t, s.Snapshot().Err)
}

func TestStore_FallbackErrorMessage(t *testing.T) {
	ctx := context.Background()
	api := newFakeService()
	s := New(api)

	api.failWith = &pos.HTTPError{Status: 500}
	require.Error(t, s.FetchStocks(ctx))
	require.Equal(t, "Failed to fetch stocks", s.Snapshot().Err)
}

func TestStore_UpdateStockRefetches(t *testing.T) {
	ctx := context.Background()
	api := newFakeService()
	s := New(api)

	require.NoError(t, s.CreateStock(ctx, pos.CreateStockRequest{SnackID: "001", Quantity: 10, QuantityNow: 2}))
	id := s.Snapshot().Stocks[0].ID

	now := 10
	require.NoError(t, s.UpdateStock(ctx, id, pos.StockPatch{QuantityNow: &now}))
	require.Equal(t, 10, s.Snapshot().Stocks[0].QuantityNow)
}

func TestStore_SnapshotIsDefensiveCopy(t *testing.T) {
	ctx := context.Background()
	api := newFakeService()
	s := New(api)

	require.NoError(t, s.CreateSnack(ctx, pos.Snack{Barcode: "001", Name: "Cola"}))

	snap := s.Snapshot()
	snap.Snacks[0].Name = "mutated"
	require.Equal(t, "Cola", s.Snapshot().Snacks[0].Name)
}
