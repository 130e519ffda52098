package templates

import (
	"encoding/json"
	"strconv"

	"github.com/camposjoaoc/Seedly/internal/catalog"
)

// Route paths the grid markup points at.
const (
	GridPath     = "/products/grid"
	ShowMorePath = "/products/grid/more"
)

// PageData represents the payload for the products page.
type PageData struct {
	Title      string
	EdibleOnly bool
	CSRFHeader string
	CSRFToken  string
	Grid       GridData
}

// GridData is the state of one grid render: the visible cards and what the
// "Show More" control must post back.
type GridData struct {
	PageToken  string
	EdibleOnly bool
	Displayed  []catalog.Product
	HasMore    bool
	Empty      bool
}

// Shown is the number of cards the client will display after this render.
func (d GridData) Shown() int {
	return len(d.Displayed)
}

// EdibleValue is the form value the client sends back for the filter flag.
func (d GridData) EdibleValue() string {
	if d.EdibleOnly {
		return "1"
	}
	return ""
}

// ShowMoreValues is the hx-vals payload of the "Show More" button.
func (d GridData) ShowMoreValues() string {
	payload, err := json.Marshal(map[string]string{
		"page":   d.PageToken,
		"edible": d.EdibleValue(),
		"shown":  strconv.Itoa(d.Shown()),
	})
	if err != nil {
		return "{}"
	}
	return string(payload)
}

// HXHeaders is the hx-headers payload carrying the CSRF token on every htmx request.
func (d PageData) HXHeaders() string {
	if d.CSRFHeader == "" || d.CSRFToken == "" {
		return "{}"
	}
	payload, err := json.Marshal(map[string]string{d.CSRFHeader: d.CSRFToken})
	if err != nil {
		return "{}"
	}
	return string(payload)
}
