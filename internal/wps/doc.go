// Package wps provides an HTTP client for the WooCommerce Product Search shop endpoint.
//
// # Overview
//
// The shop endpoint lives at {base}/wp-json/wps/v1/shop on any WordPress site running
// the search extension. Shelf treats it as a fixed external collaborator: it derives a
// request URL from the current filter state, issues a GET, and decodes the products and
// facet term lists from the JSON payload.
//
// # Files
//
//   - query.go: Query, TermFilter, TaxonomyScope and URL derivation (BuildURL)
//   - client.go: HTTP client with optional response cache and metrics
//   - types.go: Data structures mirroring the endpoint payload
//
// # Query Parameters
//
//	q              free-text search, omitted when empty
//	t              JSON array of {taxonomy, t: [ids], id_by: "id"}
//	taxonomy-data  JSON array of {taxonomy[, except]} scope directives
//	min_price      decimal string, omitted when unset
//	max_price      decimal string, omitted when unset
//	page           integer, omitted for the first page
//
// # Response Shape
//
//	{
//	  "products": {"products": [...], "total": 42},
//	  "terms": [{"taxonomy": "product_cat", "terms": [{"id": 1, "name": "...", "parent": 0, "count": 3}]}]
//	}
//
// # Error Handling
//
// Search returns wrapped errors for request construction, transport and decode
// failures. A non-success status yields a *StatusError; when the error body still
// decodes as a shop payload, that payload is returned alongside the error so callers
// can apply it best-effort. Responses are cached only on success.
//
// # Usage Example
//
//	client := wps.NewClient(wps.ClientOptions{Timeout: 10 * time.Second})
//	u, err := wps.BuildURL(wps.DefaultEndpoint, wps.Query{Text: "shirt", Page: 2})
//	if err != nil {
//		return err
//	}
//	resp, err := client.Search(ctx, u)
package wps
