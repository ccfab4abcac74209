package wps

import (
	"encoding/json"
	"testing"
)

func TestShopURL_NormalizesTrailingSeparator(t *testing.T) {
	cases := map[string]string{
		"https://example.com/shop":   "https://example.com/shop/wp-json/wps/v1/shop",
		"https://example.com/shop/":  "https://example.com/shop/wp-json/wps/v1/shop",
		"https://example.com/shop//": "https://example.com/shop/wp-json/wps/v1/shop",
		"  https://example.com  ":    "https://example.com/wp-json/wps/v1/shop",
	}
	for in, want := range cases {
		if got := ShopURL(in); got != want {
			t.Fatalf("ShopURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildURL_EmptyQueryHasNoParameters(t *testing.T) {
	u, err := BuildURL(DefaultEndpoint, Query{Page: 1})
	if err != nil {
		t.Fatalf("BuildURL returned error: %v", err)
	}
	if u.RawQuery != "" {
		t.Fatalf("RawQuery = %q, want empty", u.RawQuery)
	}
	if u.String() != "https://demo.itthinx.com/wps/wp-json/wps/v1/shop" {
		t.Fatalf("URL = %q", u.String())
	}
}

func TestBuildURL_EncodesAllParameters(t *testing.T) {
	minPrice, maxPrice := 10.5, 20.0
	u, err := BuildURL("https://example.com/?ignored=1", Query{
		Text:     "shirt",
		Terms:    []TermFilter{{Taxonomy: TaxonomyCategory, IDs: []int{5}, IDBy: "id"}},
		Scope:    DefaultScope(),
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Page:     2,
	})
	if err != nil {
		t.Fatalf("BuildURL returned error: %v", err)
	}

	values := u.Query()
	if values.Get("q") != "shirt" {
		t.Fatalf("q = %q, want shirt", values.Get("q"))
	}
	if values.Get("t") != `[{"taxonomy":"product_cat","t":[5],"id_by":"id"}]` {
		t.Fatalf("t = %q", values.Get("t"))
	}
	if values.Get("min_price") != "10.5" || values.Get("max_price") != "20" {
		t.Fatalf("prices = %q/%q, want 10.5/20", values.Get("min_price"), values.Get("max_price"))
	}
	if values.Get("page") != "2" {
		t.Fatalf("page = %q, want 2", values.Get("page"))
	}
	if values.Has("ignored") {
		t.Fatalf("base query leaked into request: %q", u.RawQuery)
	}
	if u.Path != "/wp-json/wps/v1/shop" {
		t.Fatalf("Path = %q, want /wp-json/wps/v1/shop", u.Path)
	}

	var scope []TaxonomyScope
	if err := json.Unmarshal([]byte(values.Get("taxonomy-data")), &scope); err != nil {
		t.Fatalf("decode taxonomy-data: %v", err)
	}
	if len(scope) != 4 {
		t.Fatalf("scope = %#v, want 4 entries", scope)
	}
	if scope[2].Taxonomy != TaxonomyColor || scope[2].Except != TaxonomyColor {
		t.Fatalf("color scope = %#v, want except pa_color", scope[2])
	}
	if scope[0].Except != "" {
		t.Fatalf("category scope = %#v, want no except", scope[0])
	}
}

func TestBuildURL_RejectsInvalidEndpoints(t *testing.T) {
	for _, base := range []string{"", "example.com", "ftp://example.com", "http://"} {
		if _, err := BuildURL(base, Query{}); err == nil {
			t.Fatalf("BuildURL(%q) returned nil error, want error", base)
		}
	}
}
