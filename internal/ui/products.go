package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/five82/shelf/internal/wps"
)

func (m Model) products() []wps.Product {
	return m.snapshot.Result.Products.Products
}

// renderProducts renders the product list. Compact mode shows one line per
// product; otherwise price and link go on a second line.
func (m Model) renderProducts(width, height int) string {
	styles := m.theme.Styles()
	products := m.products()
	if len(products) == 0 {
		switch {
		case m.snapshot.Loading():
			return styles.MutedText.Render(m.spinner.View() + " Loading products…")
		case m.snapshot.HasResult:
			return styles.MutedText.Render("No products match the current filters.")
		default:
			return styles.FaintText.Render("No results yet.")
		}
	}

	linesPer := 2
	if m.compact {
		linesPer = 1
	}
	start, end := visibleRange(len(products), m.cursors[paneProducts], max(1, height/linesPer))
	focused := m.focus == paneProducts

	var b strings.Builder
	for i := start; i < end; i++ {
		p := products[i]
		price := p.PriceText()
		var block string
		if m.compact {
			block = padBetween(p.Name, price, width)
		} else {
			block = truncate(p.Name, width) + "\n" + padBetween("  "+price, p.Link(), width)
		}
		switch {
		case focused && i == m.cursors[paneProducts]:
			block = styles.Selected.Render(block)
		default:
			block = styles.Text.Render(block)
		}
		b.WriteString(block)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// productMarkdown describes a product for the detail overlay.
func productMarkdown(p wps.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if price := p.PriceText(); price != "" {
		fmt.Fprintf(&b, "**Price:** %s\n\n", price)
	}
	if img, ok := p.FeaturedImage(); ok {
		alt := img.Alt
		if alt == "" {
			alt = img.Name
		}
		fmt.Fprintf(&b, "**Image:** %s  \n%s\n\n", alt, img.Src)
	}
	if len(p.Images) > 1 {
		fmt.Fprintf(&b, "%d images in gallery.\n\n", len(p.Images))
	}
	fmt.Fprintf(&b, "[%s](%s)\n", p.Link(), p.Link())
	return b.String()
}

// renderMarkdown renders md for the terminal, falling back to the raw text
// when glamour cannot build a renderer.
func renderMarkdown(md, style string, width int) string {
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// openDetail fills the detail viewport with the product under the cursor.
func (m *Model) openDetail() bool {
	products := m.products()
	cursor := m.cursors[paneProducts]
	if cursor < 0 || cursor >= len(products) {
		return false
	}
	width := m.detailWidth()
	m.detailViewport.Width = width
	m.detailViewport.Height = max(3, m.height-6)
	m.detailViewport.SetContent(renderMarkdown(productMarkdown(products[cursor]), m.theme.MarkdownStyle, width-4))
	m.detailViewport.GotoTop()
	m.showDetail = true
	return true
}

func (m Model) detailWidth() int {
	w := m.width * 2 / 3
	if w < 40 {
		w = min(m.width, 40)
	}
	return w
}
