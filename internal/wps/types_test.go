package wps

import (
	"encoding/json"
	"testing"
)

func TestShopResponse_DecodesPayload(t *testing.T) {
	raw := `{
		"products": {"products": [{"id": 7, "name": "Shirt", "permalink": "https://x/p/7",
			"price_html": "<span>$10</span>", "images": [{"src": "a.jpg"}, {"src": "b.jpg", "featured": true}]}],
			"total": 31},
		"terms": [
			{"taxonomy": "product_cat", "terms": [{"id": 1, "name": "Clothing", "parent": 0, "count": 5},
				{"id": 2, "name": "Shirts", "parent": 1, "count": 3}]},
			{"taxonomy": "pa_color", "terms": [{"id": 9, "name": "Red", "parent": null, "count": 2}]}
		]
	}`
	var resp ShopResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Products.Total != 31 || len(resp.Products.Products) != 1 {
		t.Fatalf("products = %#v, want 1 product total 31", resp.Products)
	}
	cats := resp.TermsFor(TaxonomyCategory)
	if len(cats) != 2 || cats[1].Parent != 1 {
		t.Fatalf("categories = %#v, want 2 with child parent=1", cats)
	}
	colors := resp.TermsFor(TaxonomyColor)
	if len(colors) != 1 || colors[0].Parent != 0 {
		t.Fatalf("colors = %#v, want Red with no parent", colors)
	}
	if resp.TermsFor(TaxonomySize) != nil {
		t.Fatalf("sizes should be nil when absent")
	}
}

func TestProduct_FeaturedImage(t *testing.T) {
	if _, ok := (Product{}).FeaturedImage(); ok {
		t.Fatalf("FeaturedImage on product without images should report false")
	}

	p := Product{Images: []Image{{Src: "a"}, {Src: "b"}}}
	if img, _ := p.FeaturedImage(); img.Src != "a" {
		t.Fatalf("FeaturedImage = %q, want first image", img.Src)
	}

	p.Images = []Image{{Src: "a", Featured: true}, {Src: "b"}, {Src: "c", Featured: true}}
	if img, _ := p.FeaturedImage(); img.Src != "c" {
		t.Fatalf("FeaturedImage = %q, want last featured image", img.Src)
	}
}

func TestProduct_PriceTextStripsMarkup(t *testing.T) {
	p := Product{PriceHTML: `<del><span class="amount">&#36;20.00</span></del> <ins><span class="amount">&#36;15.00</span></ins>`}
	if got := p.PriceText(); got != "$20.00 $15.00" {
		t.Fatalf("PriceText = %q, want %q", got, "$20.00 $15.00")
	}
	if got := (Product{}).PriceText(); got != "" {
		t.Fatalf("PriceText empty = %q, want empty", got)
	}
}

func TestProduct_LinkFallsBack(t *testing.T) {
	if got := (Product{}).Link(); got != "#" {
		t.Fatalf("Link = %q, want #", got)
	}
	if got := (Product{Permalink: "https://x"}).Link(); got != "https://x" {
		t.Fatalf("Link = %q, want https://x", got)
	}
}
