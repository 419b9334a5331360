package tui

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/paulmach/orb/geojson"

	"geoops/internal/geom"
)

const maxColW = 24

// refreshAttrsFromCurrent rebuilds the table columns/rows from the active document
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := buildAttributes(m.fc)
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		trows = append(trows, table.Row(append([]string{strconv.Itoa(i + 1)}, r...)))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes unions the property keys of every feature, in first-seen
// order, and returns one row per feature. A "kind" column is always present.
func buildAttributes(fc *geojson.FeatureCollection) ([]string, [][]string) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, nil
	}
	order := []string{"kind"}
	seen := map[string]bool{"kind": true}
	for _, f := range fc.Features {
		for _, k := range slices.Sorted(maps.Keys(f.Properties)) {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	rows := make([][]string, 0, len(fc.Features))
	for _, f := range fc.Features {
		vals := make([]string, len(order))
		if k, ok := geom.KindOf(f.Geometry); ok {
			vals[0] = k.String()
		}
		for i, k := range order[1:] {
			vals[i+1] = formatValue(f.Properties[k])
		}
		rows = append(rows, vals)
	}
	return order, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return strconv.FormatBool(t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
