package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const logo = "shelf"

// renderHeader renders the logo, the request badge and the endpoint.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	badge := styles.RequestStyle(m.snapshot.Request).Render(m.snapshot.Request.String())
	if m.snapshot.Loading() {
		badge = m.spinner.View() + " " + badge
	}
	left := styles.Logo.Render(logo) + " " + badge

	endpoint := ""
	if m.filters != nil {
		endpoint = m.filters.State().Endpoint
	}
	right := styles.MutedText.Render(truncate(endpoint, max(10, m.width/2)))
	if m.focus == paneEndpoint {
		right = styles.AccentText.Render(m.inputTitle(paneEndpoint, "endpoint")+": ") + m.inputs[paneEndpoint].View()
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderInputs renders the search and price inputs side by side.
func (m Model) renderInputs() string {
	searchWidth := m.width - 2*(priceWidth+2) - 2
	if searchWidth < 12 {
		searchWidth = 12
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPane(paneSearch, m.inputTitle(paneSearch, "Search"), m.inputs[paneSearch].View(), searchWidth, 1),
		m.renderPane(paneMinPrice, m.inputTitle(paneMinPrice, "Min"), m.inputs[paneMinPrice].View(), priceWidth, 1),
		m.renderPane(paneMaxPrice, m.inputTitle(paneMaxPrice, "Max"), m.inputs[paneMaxPrice].View(), priceWidth, 1),
	)
}

// inputTitle marks titles of inputs whose value is still settling.
func (m Model) inputTitle(p pane, title string) string {
	if m.pending(p) {
		return title + "…"
	}
	return title
}

// renderBody renders the facet column next to the product list.
func (m Model) renderBody() string {
	// header 1, inputs 3, status 2, plus separators
	height := m.height - 8
	if height < 9 {
		height = 9
	}
	leftWidth := max(24, m.width/3)
	rightWidth := max(20, m.width-leftWidth-4)

	facetHeight := height/3 - 2
	if facetHeight < 1 {
		facetHeight = 1
	}
	inner := leftWidth - 2

	facets := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane(paneCategories, "Categories", m.renderFacet(paneCategories, inner, facetHeight-1), leftWidth, facetHeight),
		m.renderPane(paneColors, "Colors", m.renderFacet(paneColors, inner, facetHeight-1), leftWidth, facetHeight),
		m.renderPane(paneSizes, "Sizes", m.renderFacet(paneSizes, inner, facetHeight-1), leftWidth, facetHeight),
	)

	productHeight := 3*(facetHeight+2) - 2
	products := m.renderPane(paneProducts, "Products "+m.pager.View(), m.renderProducts(rightWidth-2, productHeight-1), rightWidth, productHeight)

	return lipgloss.JoinHorizontal(lipgloss.Top, facets, products)
}

// renderPane frames body with a title. The focused pane gets the accent
// border.
func (m Model) renderPane(p pane, title, body string, width, height int) string {
	styles := m.theme.Styles()
	style := styles.Pane
	titleStyle := styles.MutedText
	if m.focus == p {
		style = styles.FocusedPane
		titleStyle = styles.AccentText.Bold(true)
	}
	content := titleStyle.Render(title+": ") + body
	if !isInput(p) {
		content = titleStyle.Render(title) + "\n" + body
	}
	return style.Width(width).Height(height).MaxHeight(height + 2).Render(content)
}

// renderStatus renders the result counter, freshness and last error, then
// the short key help.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	return styles.Footer.Width(m.width).Render(m.statusLine()) + "\n" + m.help.View(m.keys)
}

// statusLine summarizes the result data in one line.
func (m Model) statusLine() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	var parts []string
	if snap.HasResult {
		parts = append(parts, fmt.Sprintf("Showing %s of %s",
			humanize.Comma(int64(len(snap.Result.Products.Products))),
			humanize.Comma(int64(snap.Result.Products.Total))))
		if m.pager.TotalPages > 1 {
			parts = append(parts, fmt.Sprintf("page %d/%d", m.pager.Page+1, m.pager.TotalPages))
		}
		if !snap.LastUpdated.IsZero() {
			parts = append(parts, "updated "+humanize.Time(snap.LastUpdated))
		}
	} else if !snap.Loading() {
		parts = append(parts, "No results yet")
	}

	line := strings.Join(parts, " · ")
	if snap.LastError != nil {
		label := "error"
		if snap.IsOffline() {
			label = "offline"
		}
		msg := styles.DangerText.Render(label+": ") + styles.WarningText.Render(truncate(snap.LastError.Error(), max(20, m.width/2)))
		if line != "" {
			line += " · "
		}
		line += msg
	}
	return line
}
