package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/shelf/internal/debounce"
	"github.com/five82/shelf/internal/filter"
)

// fieldMsg carries a debounced text input value back into the event loop.
// reset is the signal current when the value was typed; values typed before a
// later reset are dropped.
type fieldMsg struct {
	pane  pane
	value string
	reset filter.ResetSignal
}

func isInput(p pane) bool {
	switch p {
	case paneSearch, paneMinPrice, paneMaxPrice, paneEndpoint:
		return true
	default:
		return false
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = limit
	return ti
}

// initInputs builds the text inputs and their debouncers. Debounced values
// reach the model through send.
func (m *Model) initInputs(queryDelay, endpointDelay time.Duration) {
	m.inputs[paneSearch] = newInput("type to search", 200)
	m.inputs[paneMinPrice] = newInput("Min", 12)
	m.inputs[paneMaxPrice] = newInput("Max", 12)
	m.inputs[paneEndpoint] = newInput("https://example.com/wps", 500)
	if m.filters != nil {
		m.inputs[paneEndpoint].SetValue(m.filters.State().Endpoint)
	}

	m.delays[paneSearch] = queryDelay
	m.delays[paneMinPrice] = queryDelay
	m.delays[paneMaxPrice] = queryDelay
	m.delays[paneEndpoint] = endpointDelay

	send := m.dispatch.Send
	forward := func(v fieldMsg) { send(v) }
	for _, p := range []pane{paneSearch, paneMinPrice, paneMaxPrice} {
		m.debouncers[p] = debounce.New(queryDelay, forward)
	}
	m.debouncers[paneEndpoint] = debounce.New(endpointDelay, forward)
}

// updateInput feeds a key to the focused input and schedules the debounced
// value when the text changed. Without a delay the value is applied in place;
// sending it to the program from inside Update would block the event loop.
func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	p := m.focus
	before := m.inputs[p].Value()
	var cmd tea.Cmd
	m.inputs[p], cmd = m.inputs[p].Update(msg)
	after := m.inputs[p].Value()
	if after == before {
		return m, cmd
	}
	value := fieldMsg{pane: p, value: after, reset: m.seenReset}
	if m.delays[p] <= 0 {
		m, _ = m.handleField(value)
		return m, cmd
	}
	if d := m.debouncers[p]; d != nil {
		d.Push(value)
	}
	return m, cmd
}

// pending reports whether input p holds a value that has not been applied yet.
func (m Model) pending(p pane) bool {
	d := m.debouncers[p]
	return d != nil && d.Pending()
}

// flushInput applies the focused input immediately, dropping its pending
// debounced value.
func (m Model) flushInput() (Model, tea.Cmd) {
	p := m.focus
	if d := m.debouncers[p]; d != nil {
		d.Cancel()
	}
	return m.handleField(fieldMsg{pane: p, value: m.inputs[p].Value(), reset: m.seenReset})
}

// handleField applies a settled input value to the filter store.
func (m Model) handleField(msg fieldMsg) (Model, tea.Cmd) {
	if m.filters == nil || msg.reset != m.seenReset {
		return m, nil
	}
	var changed bool
	switch msg.pane {
	case paneSearch:
		changed = m.filters.SetQuery(msg.value)
	case paneMinPrice:
		changed = m.filters.SetPrice(filter.PriceUpdate{Min: filter.Text(msg.value)})
	case paneMaxPrice:
		changed = m.filters.SetPrice(filter.PriceUpdate{Max: filter.Text(msg.value)})
	case paneEndpoint:
		changed = m.filters.SetEndpointURL(msg.value)
		if changed {
			m.logger.Info("endpoint changed", zap.String("endpoint", msg.value))
		}
	}
	if changed {
		m.observe()
	}
	return m, nil
}

// syncReset clears every input once per reset signal. The endpoint input
// shows the endpoint, which survives a reset.
func (m *Model) syncReset() {
	if m.filters == nil {
		return
	}
	sig := m.filters.ResetSignal()
	if sig == m.seenReset {
		return
	}
	m.seenReset = sig
	for _, p := range []pane{paneSearch, paneMinPrice, paneMaxPrice, paneEndpoint} {
		if d := m.debouncers[p]; d != nil {
			d.Cancel()
		}
		m.inputs[p].SetValue("")
	}
	m.inputs[paneEndpoint].SetValue(m.filters.State().Endpoint)
	for p := range m.cursors {
		m.cursors[p] = 0
	}
}

// stopInputs cancels pending values for good. Run calls it on teardown.
func (m Model) stopInputs() {
	for _, d := range m.debouncers {
		if d != nil {
			d.Stop()
		}
	}
}

func (m *Model) setFocus(p pane) tea.Cmd {
	if isInput(m.focus) {
		m.inputs[m.focus].Blur()
	}
	m.focus = p
	if isInput(p) {
		return m.inputs[p].Focus()
	}
	return nil
}

func (m *Model) resizeInputs() {
	searchWidth := m.width - 2*priceWidth - 12
	if searchWidth < 10 {
		searchWidth = 10
	}
	m.inputs[paneSearch].Width = searchWidth
	m.inputs[paneMinPrice].Width = priceWidth - 4
	m.inputs[paneMaxPrice].Width = priceWidth - 4
	m.inputs[paneEndpoint].Width = max(10, m.width-16)
}
