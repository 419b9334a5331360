package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// LoadGeo reads a GeoJSON file (FeatureCollection, Feature or bare geometry)
// into a feature collection.
func LoadGeo(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON decodes GeoJSON bytes into a feature collection.
func ParseGeoJSON(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var fc *geojson.FeatureCollection
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		c, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		fc = c
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		fc = geojson.NewFeatureCollection().Append(f)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		fc = geojson.NewFeatureCollection().Append(geojson.NewFeature(g.Geometry()))
	}
	if ObservedKinds(fc).Empty() {
		return nil, errors.New("no geometries found")
	}
	return fc, nil
}
