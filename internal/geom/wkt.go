package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
)

// ParseWKT parses a single WKT geometry (any of the seven kinds) into a
// one-feature collection.
func ParseWKT(s string) (*geojson.FeatureCollection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	if _, ok := KindOf(g); !ok {
		return nil, errors.New("unsupported wkt type")
	}
	if GeometryCoordCount(g) == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	return geojson.NewFeatureCollection().Append(geojson.NewFeature(g)), nil
}
