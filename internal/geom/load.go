package geom

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".geojson", ".json", ".csv", ".kml", ".wkt"}

// Supported reports whether Load can read a file with this name.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads any supported format into a feature collection.
func Load(path string) (*geojson.FeatureCollection, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return LoadGeo(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseWKT(string(data))
	}
	return nil, &UnsupportedError{Ext: ext}
}

type UnsupportedError struct {
	Ext string
}

func (e *UnsupportedError) Error() string { return "unsupported file: " + e.Ext }
