package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Refresh    key.Binding

	// View switching
	ViewOverview key.Binding
	ViewSnacks   key.Binding
	ViewSales    key.Binding
	ViewStock    key.Binding

	// Screen actions
	New         key.Binding
	Delete      key.Binding
	Restock     key.Binding
	Search      key.Binding
	CycleFilter key.Binding
	CycleSort   key.Binding
	SortOrder   key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Modal/input
	Confirm   key.Binding
	NextField key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next screen"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous screen"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close/clear"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		ViewOverview: key.NewBinding(
			key.WithKeys("1", "o"),
			key.WithHelp("1", "Overview"),
		),
		ViewSnacks: key.NewBinding(
			key.WithKeys("2", "s"),
			key.WithHelp("2", "Snacks"),
		),
		ViewSales: key.NewBinding(
			key.WithKeys("3", "a"),
			key.WithHelp("3", "Sales"),
		),
		ViewStock: key.NewBinding(
			key.WithKeys("4", "t"),
			key.WithHelp("4", "Stock"),
		),

		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New entry"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete selected"),
		),
		Restock: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Update stock"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle filter"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cycle sort column"),
		),
		SortOrder: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Reverse sort"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewOverview, k.ViewSnacks, k.ViewSales, k.ViewStock},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.New, k.Delete, k.Restock, k.Search, k.CycleFilter, k.CycleSort},
		{k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
