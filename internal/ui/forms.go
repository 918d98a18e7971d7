package ui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/snackpos/snackdash/internal/pos"
)

// newSnackForm builds the "register snack" dialog.
func (m Model) newSnackForm() Modal {
	fields := []formField{
		newFormField("Barcode", "", "e.g. 8850999001234"),
		newFormField("Name", "", "snack name"),
		newFormField("Price ("+currencySymbol+")", "", "0.00"),
	}
	return newFormModal("New snack", fields, func(vals []string) (tea.Cmd, string) {
		barcode, name, rawPrice := vals[0], vals[1], vals[2]
		if barcode == "" {
			return nil, "barcode is required"
		}
		if name == "" {
			return nil, "name is required"
		}
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return nil, "price must be a number"
		}
		if price.IsNegative() {
			return nil, "price cannot be negative"
		}
		snack := pos.Snack{Barcode: barcode, Name: name, Price: price}
		return m.formCmd(func(ctx context.Context) error {
			return m.store.CreateSnack(ctx, snack)
		}), ""
	})
}

// newSaleForm builds the "record sale" dialog. When a snack is selected on
// the current screen its barcode pre-fills the form.
func (m Model) newSaleForm(snackID string) Modal {
	fields := []formField{
		newFormField("Snack barcode", snackID, "barcode"),
		newFormField("Quantity", "1", "1"),
	}
	return newFormModal("New sale", fields, func(vals []string) (tea.Cmd, string) {
		id, rawQty := vals[0], vals[1]
		if id == "" {
			return nil, "snack barcode is required"
		}
		qty, err := strconv.Atoi(rawQty)
		if err != nil || qty < 1 {
			return nil, "quantity must be a positive whole number"
		}
		req := pos.CreateSaleRequest{SnackID: id, Quantity: qty}
		return m.formCmd(func(ctx context.Context) error {
			return m.store.CreateSale(ctx, req)
		}), ""
	})
}

// newStockForm builds the "register stock lot" dialog. The current count
// defaults to the initial count and is clamped to never exceed it.
func (m Model) newStockForm(snackID string) Modal {
	fields := []formField{
		newFormField("Snack barcode", snackID, "barcode"),
		newFormField("Initial quantity", "", "units in the lot"),
		newFormField("Current quantity", "", "defaults to initial"),
	}
	return newFormModal("New stock lot", fields, func(vals []string) (tea.Cmd, string) {
		id, rawQty, rawNow := vals[0], vals[1], vals[2]
		if id == "" {
			return nil, "snack barcode is required"
		}
		qty, err := strconv.Atoi(rawQty)
		if err != nil || qty < 0 {
			return nil, "initial quantity must be a whole number"
		}
		now := qty
		if rawNow != "" {
			now, err = strconv.Atoi(rawNow)
			if err != nil || now < 0 {
				return nil, "current quantity must be a whole number"
			}
		}
		if now > qty {
			now = qty
		}
		req := pos.CreateStockRequest{SnackID: id, Quantity: qty, QuantityNow: now}
		return m.formCmd(func(ctx context.Context) error {
			return m.store.CreateStock(ctx, req)
		}), ""
	})
}

// newRestockForm builds the "adjust stock lot" dialog for the given lot,
// patching only the current count. The lot's initial quantity stays the
// upper bound.
func (m Model) newRestockForm(lot pos.Stock) Modal {
	name := lot.SnackID
	if lot.Snack != nil && lot.Snack.Name != "" {
		name = lot.Snack.Name
	}
	fields := []formField{
		newFormField("Current quantity", strconv.Itoa(lot.QuantityNow), ""),
	}
	title := "Adjust stock " + truncate(name, 24)
	return newFormModal(title, fields, func(vals []string) (tea.Cmd, string) {
		now, err := strconv.Atoi(strings.TrimSpace(vals[0]))
		if err != nil || now < 0 {
			return nil, "current quantity must be a whole number"
		}
		if now > lot.Quantity {
			now = lot.Quantity
		}
		patch := pos.StockPatch{QuantityNow: &now}
		return m.formCmd(func(ctx context.Context) error {
			return m.store.UpdateStock(ctx, lot.ID, patch)
		}), ""
	})
}
