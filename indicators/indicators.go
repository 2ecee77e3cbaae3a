// Package indicators serves the static catalog of chart indicators offered
// on the site, with search, filtering and sorting.
package indicators

import (
	"sort"
	"strings"
)

// Indicator is a catalog entry.
type Indicator struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	IsPremium   bool     `json:"is_premium"`
	Rating      float64  `json:"rating"`
	Timeframes  []string `json:"timeframes"`
}

// Query narrows and orders the catalog. Zero values mean "no filter".
type Query struct {
	Search    string
	Category  string
	Price     string // "free" or "paid"
	Timeframe string
	Sort      string // price-asc, price-desc, name-asc, name-desc, rating-asc, rating-desc
}

// Catalog is an in-memory indicator listing.
type Catalog struct {
	items []Indicator
}

// NewCatalog returns the built-in indicator catalog.
func NewCatalog() *Catalog {
	return &Catalog{items: catalog}
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, it := range c.items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

// Timeframes returns the distinct concrete timeframes, excluding the "All"
// wildcard.
func (c *Catalog) Timeframes() []string {
	var out []string
	seen := map[string]bool{}
	for _, it := range c.items {
		for _, tf := range it.Timeframes {
			if tf == "All" || seen[tf] {
				continue
			}
			seen[tf] = true
			out = append(out, tf)
		}
	}
	return out
}

// List returns the indicators matching q, sorted by q.Sort. The default
// order is highest rating first.
func (c *Catalog) List(q Query) []Indicator {
	out := make([]Indicator, 0, len(c.items))
	for _, it := range c.items {
		if matches(it, q) {
			out = append(out, it)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch q.Sort {
		case "price-asc":
			return out[i].Price < out[j].Price
		case "price-desc":
			return out[i].Price > out[j].Price
		case "name-asc":
			return out[i].Name < out[j].Name
		case "name-desc":
			return out[i].Name > out[j].Name
		case "rating-asc":
			return out[i].Rating < out[j].Rating
		default: // rating-desc
			return out[i].Rating > out[j].Rating
		}
	})
	return out
}

func matches(it Indicator, q Query) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(it.Name), needle) &&
			!strings.Contains(strings.ToLower(it.Description), needle) {
			return false
		}
	}
	if q.Category != "" && it.Category != q.Category {
		return false
	}
	switch q.Price {
	case "free":
		if it.Price != 0 {
			return false
		}
	case "paid":
		if it.Price == 0 {
			return false
		}
	}
	if q.Timeframe != "" {
		ok := false
		for _, tf := range it.Timeframes {
			if tf == q.Timeframe || tf == "All" {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

var catalog = []Indicator{
	{
		ID:          "1",
		Name:        "Smart Money Concepts",
		Description: "Identify smart money concepts like liquidity, order blocks, and breaker blocks with precision. This premium indicator visualizes key market structure elements.",
		Price:       149,
		Category:    "Price Action",
		IsPremium:   true,
		Rating:      4.8,
		Timeframes:  []string{"All"},
	},
	{
		ID:          "2",
		Name:        "Multi-Timeframe RSI",
		Description: "View RSI values across multiple timeframes in a single chart to confirm trends and spot divergences quickly.",
		Price:       0,
		Category:    "Oscillator",
		IsPremium:   false,
		Rating:      4.5,
		Timeframes:  []string{"5m", "15m", "1h", "4h", "1d"},
	},
	{
		ID:          "3",
		Name:        "Volume Profile Plus",
		Description: "Advanced volume profile with value areas, POC, and developing areas. Identify key price levels where most trading activity occurs.",
		Price:       89,
		Category:    "Volume",
		IsPremium:   true,
		Rating:      4.7,
		Timeframes:  []string{"All"},
	},
	{
		ID:          "4",
		Name:        "Wyckoff Tools",
		Description: "Complete suite of Wyckoff analysis tools, including phase identification, accumulation/distribution schematic overlays, and effort vs result indicators.",
		Price:       129,
		Category:    "Wyckoff",
		IsPremium:   true,
		Rating:      4.9,
		Timeframes:  []string{"1h", "4h", "1d", "1w"},
	},
	{
		ID:          "5",
		Name:        "Fibonacci Extension Suite",
		Description: "Comprehensive Fibonacci tools with auto-detection of swing highs and lows, plus multiple extension levels and time projections.",
		Price:       79,
		Category:    "Fibonacci",
		IsPremium:   true,
		Rating:      4.6,
		Timeframes:  []string{"All"},
	},
	{
		ID:          "6",
		Name:        "Enhanced VWAP",
		Description: "Volume Weighted Average Price with standard deviation bands, multi-timeframe capabilities, and anchored VWAP options.",
		Price:       0,
		Category:    "Volume",
		IsPremium:   false,
		Rating:      4.4,
		Timeframes:  []string{"5m", "15m", "1h", "4h"},
	},
	{
		ID:          "7",
		Name:        "Support & Resistance Detector",
		Description: "Automatic detection of key support and resistance levels based on price history and market structure analysis.",
		Price:       69,
		Category:    "Price Action",
		IsPremium:   true,
		Rating:      4.3,
		Timeframes:  []string{"1h", "4h", "1d"},
	},
	{
		ID:          "8",
		Name:        "Harmonic Pattern Scanner",
		Description: "Automatically detect and label harmonic patterns including Gartley, Butterfly, Bat, and Crab formations with price projections.",
		Price:       99,
		Category:    "Pattern Recognition",
		IsPremium:   true,
		Rating:      4.5,
		Timeframes:  []string{"1h", "4h", "1d"},
	},
}
