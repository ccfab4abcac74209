package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/shelf/internal/wps"
)

func TestStore_ReportsChanges(t *testing.T) {
	s := NewStore(wps.DefaultEndpoint)

	assert.True(t, s.SetQuery("mug"))
	assert.False(t, s.SetQuery("mug"))
	assert.True(t, s.SetQuery(" mug "), "query is stored verbatim")
	assert.Equal(t, " mug ", s.State().QueryText)

	assert.True(t, s.SetPage(3))
	assert.False(t, s.SetPage(3))

	assert.True(t, s.SetEndpointURL("https://other.example"))
	assert.False(t, s.SetEndpointURL("https://other.example"))

	assert.True(t, s.ToggleColor(1))
	assert.True(t, s.ToggleSize(1))
}

func TestStore_NoopPriceUpdateReportsFalse(t *testing.T) {
	s := NewStore(wps.DefaultEndpoint)

	assert.True(t, s.SetPrice(PriceUpdate{Min: Text("10")}))
	assert.False(t, s.SetPrice(PriceUpdate{Min: Text("10.0")}))
	assert.False(t, s.SetPrice(PriceUpdate{Max: Text("abc")}), "max was already unset")
	assert.False(t, s.SetPrice(PriceUpdate{Max: Text("5")}), "max below min is cleared back to unset")
	assert.True(t, s.SetPrice(PriceUpdate{Max: Text("15")}))
}

func TestStore_ToggleCategoryUsesLatestTerms(t *testing.T) {
	s := NewStore(wps.DefaultEndpoint)
	s.ToggleCategory(1)
	s.ToggleCategory(3)
	assert.Equal(t, []int{1, 3}, s.State().Categories.IDs(), "no tree yet, so no exclusion")

	s.SetCategoryTerms(chainTerms())
	s.ToggleCategory(2)
	assert.Equal(t, []int{2}, s.State().Categories.IDs())
	assert.Equal(t, 2, s.Tree().Depth(3))
}

func TestStore_ResetEmitsSignal(t *testing.T) {
	s := NewStore("https://shop.example")
	first := s.ResetSignal()

	s.SetQuery("boots")
	s.ToggleColor(2)
	s.SetPage(5)
	sig := s.Reset()

	assert.NotEqual(t, first, sig)
	assert.Equal(t, sig, s.ResetSignal())
	assert.True(t, s.State().Equal(DefaultState("https://shop.example")))

	again := s.Reset()
	assert.NotEqual(t, sig, again, "every reset is observable, even from defaults")
}
