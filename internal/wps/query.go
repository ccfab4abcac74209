package wps

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultEndpoint is the public demo shop.
	DefaultEndpoint = "https://demo.itthinx.com/wps"
	// ShopPath is appended to the endpoint base URL.
	ShopPath = "wp-json/wps/v1/shop"
)

// Taxonomies known to the shop endpoint.
const (
	TaxonomyCategory = "product_cat"
	TaxonomyTag      = "product_tag"
	TaxonomyColor    = "pa_color"
	TaxonomySize     = "pa_size"
)

// TermFilter restricts results to products carrying any of the listed terms.
type TermFilter struct {
	Taxonomy string `json:"taxonomy"`
	IDs      []int  `json:"t"`
	IDBy     string `json:"id_by"`
}

// TaxonomyScope asks the endpoint to report terms for Taxonomy. Except names a
// taxonomy whose own filter is ignored when computing that term list.
type TaxonomyScope struct {
	Taxonomy string `json:"taxonomy"`
	Except   string `json:"except,omitempty"`
}

// Query is the structured form of a shop request.
type Query struct {
	Text     string
	Terms    []TermFilter
	Scope    []TaxonomyScope
	MinPrice *float64
	MaxPrice *float64
	Page     int
}

// DefaultScope lists every known taxonomy. Colors and sizes are excluded from
// their own filter so selecting one keeps the alternatives visible.
func DefaultScope() []TaxonomyScope {
	return []TaxonomyScope{
		{Taxonomy: TaxonomyCategory},
		{Taxonomy: TaxonomyTag},
		{Taxonomy: TaxonomyColor, Except: TaxonomyColor},
		{Taxonomy: TaxonomySize, Except: TaxonomySize},
	}
}

// ShopURL joins base and ShopPath with exactly one separator. Invalid bases
// are joined textually so they can still be displayed.
func ShopURL(base string) string {
	u, err := shopURL(base)
	if err != nil {
		return strings.TrimRight(strings.TrimSpace(base), "/") + "/" + ShopPath
	}
	return u.String()
}

func shopURL(base string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q: unsupported scheme %q", base, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q: missing host", base)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + ShopPath
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BuildURL derives the request URL for q against the endpoint base. Any query
// or fragment on the base is dropped.
func BuildURL(base string, q Query) (*url.URL, error) {
	u, err := shopURL(base)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	if q.Text != "" {
		values.Set("q", q.Text)
	}
	if len(q.Terms) > 0 {
		encoded, err := json.Marshal(q.Terms)
		if err != nil {
			return nil, fmt.Errorf("encode term filters: %w", err)
		}
		values.Set("t", string(encoded))
	}
	if len(q.Scope) > 0 {
		encoded, err := json.Marshal(q.Scope)
		if err != nil {
			return nil, fmt.Errorf("encode taxonomy scope: %w", err)
		}
		values.Set("taxonomy-data", string(encoded))
	}
	if q.MinPrice != nil {
		values.Set("min_price", formatPrice(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		values.Set("max_price", formatPrice(*q.MaxPrice))
	}
	if q.Page > 1 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	u.RawQuery = values.Encode()
	return u, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
