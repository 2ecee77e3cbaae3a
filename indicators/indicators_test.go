package indicators

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_DefaultSortIsRatingDesc(t *testing.T) {
	c := NewCatalog()
	list := c.List(Query{})
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].Rating, list[i].Rating)
	}
	assert.Equal(t, "Wyckoff Tools", list[0].Name)
}

func TestCatalog_SearchMatchesNameAndDescription(t *testing.T) {
	c := NewCatalog()

	byName := c.List(Query{Search: "wyckoff"})
	require.Len(t, byName, 1)
	assert.Equal(t, "Wyckoff Tools", byName[0].Name)

	byDescription := c.List(Query{Search: "divergences"})
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Multi-Timeframe RSI", byDescription[0].Name)
}

func TestCatalog_PriceFilter(t *testing.T) {
	c := NewCatalog()

	for _, it := range c.List(Query{Price: "free"}) {
		assert.Zero(t, it.Price)
		assert.False(t, it.IsPremium)
	}
	for _, it := range c.List(Query{Price: "paid"}) {
		assert.Positive(t, it.Price)
	}
	assert.Len(t, c.List(Query{}), len(c.List(Query{Price: "free"}))+len(c.List(Query{Price: "paid"})))
}

func TestCatalog_TimeframeFilterIncludesWildcard(t *testing.T) {
	c := NewCatalog()

	weekly := c.List(Query{Timeframe: "1w"})
	names := make([]string, 0, len(weekly))
	for _, it := range weekly {
		names = append(names, it.Name)
	}
	// explicit 1w plus everything tagged "All"
	assert.Contains(t, names, "Wyckoff Tools")
	assert.Contains(t, names, "Smart Money Concepts")
	assert.NotContains(t, names, "Multi-Timeframe RSI")
}

func TestCatalog_SortOrders(t *testing.T) {
	c := NewCatalog()

	byPrice := c.List(Query{Sort: "price-asc"})
	for i := 1; i < len(byPrice); i++ {
		assert.LessOrEqual(t, byPrice[i-1].Price, byPrice[i].Price)
	}

	byName := c.List(Query{Sort: "name-asc"})
	for i := 1; i < len(byName); i++ {
		assert.LessOrEqual(t, byName[i-1].Name, byName[i].Name)
	}
}

func TestCatalog_Facets(t *testing.T) {
	c := NewCatalog()

	assert.Contains(t, c.Categories(), "Price Action")
	assert.Contains(t, c.Categories(), "Volume")

	tfs := c.Timeframes()
	assert.Contains(t, tfs, "4h")
	assert.NotContains(t, tfs, "All")
}

func TestHandlers_List(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/indicators", NewHandlers(NewCatalog()).RegisterRoutes)

	req := httptest.NewRequest(http.MethodGet, "/indicators?price=free&sort=name-asc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enhanced VWAP")
	assert.Contains(t, rec.Body.String(), "Multi-Timeframe RSI")
	assert.NotContains(t, rec.Body.String(), "Wyckoff Tools")
}
