// Package ui provides the snackdash terminal user interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program over the store's snapshots. It never talks
// to the API directly: reads come from store.Snapshot, mutations run store
// operations as background commands and the next snapshot reflects the
// re-fetched server state.
//
// # Package Structure
//
//   - app.go: root Model, Update loop, messages, commands, and Run
//   - header.go: status line, screen tabs, and the command bar
//   - overview.go: dashboard stat cards, recent sales, low stock
//   - snacks.go, sales.go, stock.go: the three collection screens
//   - modal.go: confirm and form dialogs
//   - forms.go: the concrete create/adjust dialogs
//   - theme.go: color themes and Lipgloss styles
//   - keys.go: key bindings
//
// # Screens
//
//   - Overview: aggregate stats over all collections
//   - Snacks: the product catalog with search and sorting
//   - Sales: the transaction log with date-range filtering and revenue
//   - Stock: inventory lots with fill bars and status filtering
//
// # Event Flow
//
//  1. Run() starts the program; Init schedules the first snapshot and tick
//  2. A ticker re-reads store.Snapshot every second
//  3. Key input opens modals or runs store operations as commands
//  4. Operation completion triggers an immediate snapshot refresh
//  5. A failed form submission keeps its modal open for correction
//
// # Error Display
//
// The store's error field is the single user-visible error channel and is
// rendered in the header. Modals additionally surface local validation
// problems inline before anything reaches the network.
package ui
