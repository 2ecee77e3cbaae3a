package indicators

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers serves the indicator catalog.
type Handlers struct {
	catalog *Catalog
}

// NewHandlers constructs the indicator handlers.
func NewHandlers(catalog *Catalog) *Handlers {
	return &Handlers{catalog: catalog}
}

// RegisterRoutes mounts the indicator routes.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/facets", h.handleFacets)
}

// handleList godoc
// @Summary List chart indicators
// @Description Lists the indicator catalog with optional search, category,
// @Description price ("free" or "paid") and timeframe filters.
// @Tags Indicators
// @Produce json
// @Param search query string false "Match against name and description"
// @Param category query string false "Category filter"
// @Param price query string false "free or paid"
// @Param timeframe query string false "Timeframe filter"
// @Param sort query string false "price-asc, price-desc, name-asc, name-desc, rating-asc, rating-desc"
// @Success 200 {array} indicators.Indicator
// @Router /indicators [get]
func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	q := Query{
		Search:    r.URL.Query().Get("search"),
		Category:  r.URL.Query().Get("category"),
		Price:     r.URL.Query().Get("price"),
		Timeframe: r.URL.Query().Get("timeframe"),
		Sort:      r.URL.Query().Get("sort"),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.catalog.List(q))
}

// handleFacets godoc
// @Summary Indicator filter facets
// @Description Returns the distinct categories and timeframes available for
// @Description filtering the catalog.
// @Tags Indicators
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /indicators/facets [get]
func (h *Handlers) handleFacets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{
		"categories": h.catalog.Categories(),
		"timeframes": h.catalog.Timeframes(),
	})
}
