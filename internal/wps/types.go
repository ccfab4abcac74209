package wps

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// ShopResponse mirrors the payload returned by the shop endpoint.
type ShopResponse struct {
	Products ProductPage `json:"products"`
	Terms    []TermGroup `json:"terms"`
}

// ProductPage holds one page of products plus the total match count.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// Product describes a single search hit.
type Product struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Permalink string  `json:"permalink"`
	PriceHTML string  `json:"price_html"`
	Images    []Image `json:"images"`
}

// Image is a product or term image reference.
type Image struct {
	ID       int    `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Name     string `json:"name"`
	Featured bool   `json:"featured"`
}

// TermGroup lists the terms of one taxonomy that apply to the current results.
type TermGroup struct {
	Taxonomy string `json:"taxonomy"`
	Terms    []Term `json:"terms"`
}

// Term is a taxonomy term. Parent is zero for top-level terms.
type Term struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Parent int     `json:"parent"`
	Count  int     `json:"count"`
	Images []Image `json:"images,omitempty"`
}

// TermsFor returns the terms reported for taxonomy, or nil when absent.
// When the endpoint repeats a taxonomy the last group wins.
func (r ShopResponse) TermsFor(taxonomy string) []Term {
	var out []Term
	for _, group := range r.Terms {
		if group.Taxonomy == taxonomy {
			out = group.Terms
		}
	}
	return out
}

// FeaturedImage picks the image flagged as featured, falling back to the first one.
func (p Product) FeaturedImage() (Image, bool) {
	if len(p.Images) == 0 {
		return Image{}, false
	}
	picked := -1
	for i, img := range p.Images {
		if img.Featured {
			picked = i
		}
	}
	if picked < 0 {
		picked = 0
	}
	return p.Images[picked], true
}

// Link returns the permalink or "#" when the product has none.
func (p Product) Link() string {
	if strings.TrimSpace(p.Permalink) == "" {
		return "#"
	}
	return p.Permalink
}

var (
	stripOnce   sync.Once
	stripPolicy *bluemonday.Policy
)

// PriceText renders the price markup as plain text.
func (p Product) PriceText() string {
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	text := stripPolicy.Sanitize(p.PriceHTML)
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
