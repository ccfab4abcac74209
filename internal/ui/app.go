package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shelf/internal/debounce"
	"github.com/five82/shelf/internal/filter"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/wps"
)

// pane identifies a focusable region. Tab order follows declaration order.
type pane int

const (
	paneSearch pane = iota
	paneCategories
	paneColors
	paneSizes
	paneMinPrice
	paneMaxPrice
	paneProducts
	paneEndpoint
	paneCount
)

const (
	defaultPageSize = 10
	priceWidth      = 14
)

// Synchronizer turns filter states into shop requests. *search.Synchronizer
// implements it.
type Synchronizer interface {
	Observe(filter.State) bool
	SetNotify(func(state.Snapshot))
}

// Options configures the UI.
type Options struct {
	Context       context.Context
	Filters       *filter.Store
	Results       *state.Store
	Sync          Synchronizer
	QueryDelay    time.Duration
	EndpointDelay time.Duration
	PageSize      int
	Prefs         prefs.Prefs
	PrefsPath     string
	Logger        *zap.Logger
}

// dispatcher forwards messages from background goroutines into the running
// program. Messages sent before the program is attached are dropped.
type dispatcher struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (d *dispatcher) attach(send func(tea.Msg)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.send = send
}

func (d *dispatcher) Send(msg tea.Msg) {
	d.mu.Lock()
	send := d.send
	d.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	filters   *filter.Store
	results   *state.Store
	sync      Synchronizer
	prefsPath string
	pageSize  int
	logger    *zap.Logger
	dispatch  *dispatcher
	keys      keyMap

	// UI state
	theme      Theme
	compact    bool
	width      int
	height     int
	ready      bool
	focus      pane
	cursors    [paneCount]int
	showHelp   bool
	showDetail bool

	// Inputs
	inputs     [paneCount]textinput.Model
	debouncers [paneCount]*debounce.Debouncer[fieldMsg]
	delays     [paneCount]time.Duration
	seenReset  filter.ResetSignal

	// Data state
	snapshot state.Snapshot

	// Components
	spinner        spinner.Model
	pager          paginator.Model
	help           help.Model
	detailViewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.PerPage = pageSize

	m := Model{
		ctx:       ctx,
		filters:   opts.Filters,
		results:   opts.Results,
		sync:      opts.Sync,
		prefsPath: prefsPath,
		pageSize:  pageSize,
		logger:    logger.Named("ui"),
		dispatch:  &dispatcher{},
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.Prefs.Theme),
		compact:   opts.Prefs.Compact,
		focus:     paneProducts,
		spinner:   sp,
		pager:     pager,
		help:      help.New(),
	}
	if m.filters != nil {
		m.seenReset = m.filters.ResetSignal()
	}
	m.initInputs(opts.QueryDelay, opts.EndpointDelay)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spinner.Tick,
		tickCmd(time.Second),
		func() tea.Msg { return observeMsg{} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeInputs()
		m.ready = true
		return m, nil

	case observeMsg:
		m.observe()
		return m, nil

	case resultMsg:
		snap := state.Snapshot(msg)
		// Notifications race each other; a lower generation is stale.
		if snap.Generation < m.snapshot.Generation {
			return m, nil
		}
		m.applySnapshot(snap)
		return m, nil

	case fieldMsg:
		return m.handleField(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		// Redraw keeps the "updated ago" label current.
		return m, tickCmd(time.Second)
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

	if m.showDetail {
		return m.renderDetail()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.showDetail {
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Quit):
			m.showDetail = false
			return m, nil
		}
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return m, cmd
	}

	if isInput(m.focus) {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			cmd := m.setFocus(nextPane(m.focus, 1))
			return m, cmd
		case key.Matches(msg, m.keys.ShiftTab):
			cmd := m.setFocus(nextPane(m.focus, -1))
			return m, cmd
		case key.Matches(msg, m.keys.Escape):
			cmd := m.setFocus(paneProducts)
			return m, cmd
		case key.Matches(msg, m.keys.Confirm):
			flushed, cmd := m.flushInput()
			return flushed, cmd
		}
		updated, cmd := m.updateInput(msg)
		return updated, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Compact):
		m.compact = !m.compact
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		if m.filters != nil {
			m.filters.Reset()
			m.syncReset()
			m.observe()
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		cmd := m.setFocus(nextPane(m.focus, 1))
		return m, cmd

	case key.Matches(msg, m.keys.ShiftTab):
		cmd := m.setFocus(nextPane(m.focus, -1))
		return m, cmd

	case key.Matches(msg, m.keys.FocusSearch):
		cmd := m.setFocus(paneSearch)
		return m, cmd

	case key.Matches(msg, m.keys.FocusEndpoint):
		cmd := m.setFocus(paneEndpoint)
		return m, cmd

	case key.Matches(msg, m.keys.PrevPage):
		m.changePage(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.changePage(1)
		return m, nil
	}

	return m.handleListKey(msg)
}

// handleListKey processes keys for the facet and product lists.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.rowCount(m.focus)
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursors[m.focus] < n-1 {
			m.cursors[m.focus]++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursors[m.focus] > 0 {
			m.cursors[m.focus]--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursors[m.focus] = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursors[m.focus] = max(0, n-1)
	case key.Matches(msg, m.keys.Toggle):
		if m.focus != paneProducts && m.toggleFacet(m.focus) {
			m.observe()
		}
	case key.Matches(msg, m.keys.Confirm):
		if m.focus == paneProducts {
			m.openDetail()
		}
	}
	return m, nil
}

func (m Model) rowCount(p pane) int {
	if p == paneProducts {
		return len(m.products())
	}
	return len(m.facetRowsFor(p))
}

func nextPane(p pane, step int) pane {
	return pane((int(p) + step + int(paneCount)) % int(paneCount))
}

// changePage moves by step pages within the known page count.
func (m *Model) changePage(step int) {
	if m.filters == nil {
		return
	}
	page := m.filters.State().Page + step
	if page < 1 || (m.snapshot.HasResult && page > m.pager.TotalPages) {
		return
	}
	if m.filters.SetPage(page) {
		m.observe()
	}
}

// observe hands the current filter state to the synchronizer and shows the
// resulting in-flight state right away.
func (m *Model) observe() {
	if m.filters == nil || m.sync == nil {
		return
	}
	m.sync.Observe(m.filters.State())
	if m.results != nil {
		m.applySnapshot(m.results.Snapshot())
	}
	m.updatePager()
}

// applySnapshot takes in result data and refreshes everything derived from it.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if snap.HasResult && m.filters != nil {
		m.filters.SetCategoryTerms(snap.Result.TermsFor(wps.TaxonomyCategory))
	}
	for p := range m.cursors {
		if isInput(pane(p)) {
			continue
		}
		if n := m.rowCount(pane(p)); m.cursors[p] >= n {
			m.cursors[p] = max(0, n-1)
		}
	}
	m.updatePager()
}

func (m *Model) updatePager() {
	total := m.snapshot.Result.Products.Total
	if total <= 0 {
		m.pager.TotalPages = 1
	} else {
		m.pager.SetTotalPages(total)
	}
	if m.filters != nil {
		m.pager.Page = max(0, m.filters.State().Page-1)
	}
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Compact: m.compact}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderInputs())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// Messages

type tickMsg time.Time

type resultMsg state.Snapshot

type observeMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits or the context
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	defer m.stopInputs()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	m.dispatch.attach(p.Send)
	if opts.Sync != nil {
		opts.Sync.SetNotify(func(snap state.Snapshot) {
			p.Send(resultMsg(snap))
		})
		defer opts.Sync.SetNotify(nil)
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
