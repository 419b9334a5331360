package geom

import (
	"encoding/xml"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadKML extracts Placemark points from a KML file. Placemark names become
// the "name" property. KML coordinates are "lon,lat[,alt]"; we ignore altitude.
func LoadKML(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Name  string    `xml:"name"`
		Point *kmlPoint `xml:"Point"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Document   struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
		} `xml:"Document"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	placemarks := append(doc.Placemarks, doc.Document.Placemarks...)
	for _, pm := range placemarks {
		if pm.Point == nil {
			continue
		}
		// coordinates may contain multiple tuples separated by spaces
		var pts orb.MultiPoint
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			pts = append(pts, orb.Point{lon, lat})
		}
		var g orb.Geometry
		switch len(pts) {
		case 0:
			continue
		case 1:
			g = pts[0]
		default:
			g = pts
		}
		feat := geojson.NewFeature(g)
		if pm.Name != "" {
			feat.Properties["name"] = pm.Name
		}
		fc.Append(feat)
	}
	if len(fc.Features) == 0 {
		return nil, errors.New("kml: no points found")
	}
	return fc, nil
}
