package ui

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/snackpos/snackdash/internal/prefs"
	"github.com/snackpos/snackdash/internal/store"
	"github.com/snackpos/snackdash/internal/views"
)

// View represents the current active screen.
type View int

const (
	ViewOverview View = iota
	ViewSnacks
	ViewSales
	ViewStock
)

// StockFilter narrows the stock table by fill status.
type StockFilter int

const (
	StockAll StockFilter = iota
	StockLow
	StockMedium
	StockHigh
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *store.Store
	APIURL    string
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *store.Store
	apiURL    string
	prefsPath string
	pollTick  time.Duration

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot    store.Snapshot
	lastUpdated time.Time

	// Per-screen state
	snackRow    int
	saleRow     int
	stockRow    int
	snackSort   views.SnackSort
	snackAsc    bool
	dateRange   views.DateRange
	stockFilter StockFilter

	// Search
	searchMode  bool
	searchInput textinput.Model
	search      string

	// Active modal dialog, nil when none is open
	modal Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 || pollTick > DefaultUIInterval {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Placeholder = "name or barcode"
	search.Prompt = "/"
	search.CharLimit = 64

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		apiURL:      opts.APIURL,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewOverview,
		snackAsc:    true,
		searchInput: search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, snapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, snapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = store.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelections()
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			// The store's error field is the user-visible channel; this
			// is the diagnostic one.
			log.Printf("operation failed: %v", msg.err)
		}
		return m, snapshotCmd(m.store)

	case formDoneMsg:
		if msg.err != nil {
			log.Printf("form submit failed: %v", msg.err)
			// Keep the modal open so the user can correct and retry.
			return m, snapshotCmd(m.store)
		}
		m.modal = nil
		return m, snapshotCmd(m.store)
	}

	// Forward non-key messages (e.g. cursor blink) to the active input.
	if m.modal != nil {
		updated, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = updated
		}
		return m, cmd
	}
	if m.searchMode {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if m.modal != nil {
		b.WriteString(m.modal.View(m.theme, m.width, m.contentHeight()))
		return b.String()
	}
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) contentHeight() int {
	h := m.height - 2 // header + command bar
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSnacks:
		return m.renderSnacks()
	case ViewSales:
		return m.renderSales()
	case ViewStock:
		return m.renderStock()
	default:
		return m.renderOverview()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// An open modal owns the keyboard except for hard quit.
	if m.modal != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		updated, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = updated
		}
		return m, cmd
	}

	// Search entry mode.
	if m.searchMode {
		switch msg.String() {
		case "enter":
			m.search = strings.TrimSpace(m.searchInput.Value())
			m.searchMode = false
			m.searchInput.Blur()
			m.resetSelection()
			return m, nil
		case "esc":
			m.searchMode = false
			m.searchInput.SetValue(m.search)
			m.searchInput.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "tab":
		m.switchView(nextView(m.currentView))
		return m, nil

	case "shift+tab":
		m.switchView(prevView(m.currentView))
		return m, nil

	case "1", "o":
		m.switchView(ViewOverview)
		return m, nil
	case "2", "s":
		m.switchView(ViewSnacks)
		return m, nil
	case "3", "a":
		m.switchView(ViewSales)
		return m, nil
	case "4", "t":
		m.switchView(ViewStock)
		return m, nil

	case "r":
		return m, m.opCmd(m.store.FetchAll)

	case "/":
		if m.currentView != ViewOverview {
			m.searchMode = true
			m.searchInput.SetValue(m.search)
			m.searchInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "esc":
		if m.snapshot.Err != "" {
			m.store.ClearError()
			return m, snapshotCmd(m.store)
		}
		if m.search != "" {
			m.search = ""
			m.searchInput.SetValue("")
			m.resetSelection()
			return m, nil
		}
		m.switchView(ViewOverview)
		return m, nil
	}

	switch m.currentView {
	case ViewSnacks:
		return m.handleSnacksKey(msg)
	case ViewSales:
		return m.handleSalesKey(msg)
	case ViewStock:
		return m.handleStockKey(msg)
	}
	return m, nil
}

// switchView changes screens, dropping screen-local search state the way
// a page unmount would.
func (m *Model) switchView(v View) {
	if v == m.currentView {
		return
	}
	m.currentView = v
	m.search = ""
	m.searchMode = false
	m.searchInput.SetValue("")
	m.searchInput.Blur()
}

func nextView(v View) View {
	switch v {
	case ViewOverview:
		return ViewSnacks
	case ViewSnacks:
		return ViewSales
	case ViewSales:
		return ViewStock
	default:
		return ViewOverview
	}
}

func prevView(v View) View {
	switch v {
	case ViewOverview:
		return ViewStock
	case ViewStock:
		return ViewSales
	case ViewSales:
		return ViewSnacks
	default:
		return ViewOverview
	}
}

func (m *Model) resetSelection() {
	switch m.currentView {
	case ViewSnacks:
		m.snackRow = 0
	case ViewSales:
		m.saleRow = 0
	case ViewStock:
		m.stockRow = 0
	}
}

// clampSelections keeps row cursors inside the refreshed collections.
func (m *Model) clampSelections() {
	m.snackRow = clamp(m.snackRow, len(m.visibleSnacks()))
	m.saleRow = clamp(m.saleRow, len(m.visibleSales()))
	m.stockRow = clamp(m.stockRow, len(m.visibleStocks()))
}

func clamp(row, count int) int {
	if count == 0 {
		return 0
	}
	if row >= count {
		return count - 1
	}
	if row < 0 {
		return 0
	}
	return row
}

// moveSelection applies shared j/k/g/G navigation, returning the new row.
func moveSelection(msg tea.KeyMsg, row, count int) int {
	if count == 0 {
		return 0
	}
	switch msg.String() {
	case "j", "down":
		if row < count-1 {
			row++
		}
	case "k", "up":
		if row > 0 {
			row--
		}
	case "g", "home":
		row = 0
	case "G", "end":
		row = count - 1
	}
	return row
}

// emptyListText explains an empty table, noting an active search filter.
func (m Model) emptyListText(fallback string) string {
	if m.search != "" {
		return "No matches for " + strconv.Quote(m.search) + "."
	}
	return fallback
}

// Messages

type tickMsg time.Time

type snapshotMsg store.Snapshot

// opDoneMsg reports completion of a background store operation.
type opDoneMsg struct{ err error }

// formDoneMsg reports completion of a modal form submission.
type formDoneMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func snapshotCmd(st *store.Store) tea.Cmd {
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(st.Snapshot())
	}
}

// opCmd runs a store operation off the UI goroutine.
func (m Model) opCmd(op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: op(m.ctx)}
	}
}

// formCmd runs a modal form's store operation off the UI goroutine.
func (m Model) formCmd(op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return formDoneMsg{err: op(m.ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
