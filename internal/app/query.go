package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/five82/shelf/internal/filter"
	"github.com/five82/shelf/internal/logging"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/wps"
)

// Output formats accepted by Query.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatURL   = "url"
)

// QueryOptions describe a single headless search.
type QueryOptions struct {
	ConfigPath string
	Endpoint   string
	LogLevel   string

	Text       string
	Categories []int
	Colors     []int
	Sizes      []int
	MinPrice   string
	MaxPrice   string
	Page       int
	Format     string

	// Logger overrides the stderr logger built from LogLevel.
	Logger *zap.Logger
}

// queryOutput is the JSON document written for FormatJSON.
type queryOutput struct {
	URL      string          `json:"url"`
	Page     int             `json:"page"`
	Pages    int             `json:"pages"`
	Total    int             `json:"total"`
	Products []wps.Product   `json:"products"`
	Terms    []wps.TermGroup `json:"terms"`
}

// Query runs one search against the shop endpoint and writes the result to
// out. It goes through the same filter store and synchronizer as the TUI.
func Query(ctx context.Context, opts QueryOptions, out io.Writer) error {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = FormatTable
	}
	switch format {
	case FormatTable, FormatJSON, FormatURL:
	default:
		return fmt.Errorf("unknown format %q (want table, json or url)", opts.Format)
	}

	cfg, err := loadConfig(opts.ConfigPath, overrides{endpoint: opts.Endpoint, logLevel: opts.LogLevel})
	if err != nil {
		return err
	}

	st := opts.filterState(cfg.Endpoint)
	u, err := wps.BuildURL(st.Endpoint, st.Query())
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	if format == FormatURL {
		_, err := fmt.Fprintln(out, u.String())
		return err
	}

	logger := opts.Logger
	if logger == nil {
		logger, err = logging.New(logging.Options{Level: cfg.LogLevel})
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	rt := newRuntime(ctx, cfg, logger)
	defer rt.Close()

	rt.sync.Observe(st)
	rt.sync.Wait()

	snap := rt.results.Snapshot()
	if !snap.HasResult {
		if snap.LastError != nil {
			return fmt.Errorf("query shop: %w", snap.LastError)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return errors.New("query shop: no result")
	}
	if snap.LastError != nil {
		logger.Warn("shop returned an error status", zap.Error(snap.LastError))
	}

	result := queryOutput{
		URL:      u.String(),
		Page:     st.Page,
		Pages:    pageCount(snap.Result.Products.Total, cfg.PageSize),
		Total:    snap.Result.Products.Total,
		Products: snap.Result.Products.Products,
		Terms:    snap.Result.Terms,
	}
	if format == FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return writeTable(out, result, snap)
}

// filterState applies the options to a fresh filter store. Without a fetched
// category tree, category selection is plain set membership.
func (o QueryOptions) filterState(endpoint string) filter.State {
	store := filter.NewStore(endpoint)
	store.SetQuery(o.Text)
	for _, id := range o.Categories {
		if !store.State().Categories.Has(id) {
			store.ToggleCategory(id)
		}
	}
	for _, id := range o.Colors {
		if !store.State().Colors.Has(id) {
			store.ToggleColor(id)
		}
	}
	for _, id := range o.Sizes {
		if !store.State().Sizes.Has(id) {
			store.ToggleSize(id)
		}
	}

	var update filter.PriceUpdate
	if o.MinPrice != "" {
		update.Min = filter.Text(o.MinPrice)
	}
	if o.MaxPrice != "" {
		update.Max = filter.Text(o.MaxPrice)
	}
	store.SetPrice(update)

	if o.Page > 0 {
		store.SetPage(o.Page)
	}
	return store.State()
}

func writeTable(out io.Writer, result queryOutput, snap state.Snapshot) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "PRICE", "LINK")
	for _, p := range result.Products {
		t.Row(strconv.Itoa(p.ID), p.Name, p.PriceText(), p.Link())
	}

	footer := fmt.Sprintf("Showing %s of %s · page %d of %d",
		humanize.Comma(int64(len(result.Products))),
		humanize.Comma(int64(result.Total)),
		result.Page, result.Pages)
	if snap.LastError != nil {
		footer += " · error: " + snap.LastError.Error()
	}

	_, err := fmt.Fprintf(out, "%s\n%s\n", t.Render(), footer)
	return err
}

func pageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
