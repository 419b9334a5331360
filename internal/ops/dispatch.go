package ops

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoops/internal/geom"
)

// Policy decides what happens to nodes whose kind an operation does not support.
type Policy int

const (
	// DropUnsupported excludes unsupported nodes from the output.
	DropUnsupported Policy = iota
	// KeepUnsupported passes unsupported nodes through unchanged.
	KeepUnsupported
)

func (p Policy) String() string {
	if p == KeepUnsupported {
		return "keep"
	}
	return "drop"
}

// ParsePolicy accepts "drop" or "keep".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return DropUnsupported, nil
	case "keep":
		return KeepUnsupported, nil
	}
	return DropUnsupported, fmt.Errorf("unknown unsupported-kind policy %q", s)
}

// Dispatcher walks features and geometries depth first, in input order, and
// calls the visitor callback matching each node's kind.
//
// A GeometryCollection is handed to VisitGeometryCollection as a whole when
// the visitor allows that kind; otherwise its children are visited in order.
type Dispatcher struct {
	Policy Policy
}

// Collection visits the geometry of every feature in fc.
func (d Dispatcher) Collection(fc *geojson.FeatureCollection, v Visitor) {
	if fc == nil {
		return
	}
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		d.Geometry(f.Geometry, v)
	}
}

// Geometry visits a single geometry tree.
func (d Dispatcher) Geometry(g orb.Geometry, v Visitor) {
	if g == nil {
		return
	}
	k, ok := geom.KindOf(g)
	if !ok {
		return
	}
	allowed := v.Allowed()
	if k == geom.GeometryCollection {
		c := g.(orb.Collection)
		if allowed.Allows(geom.GeometryCollection) {
			v.VisitGeometryCollection(c)
			return
		}
		for _, child := range c {
			d.Geometry(child, v)
		}
		return
	}
	if !allowed.Allows(k) {
		if d.Policy == KeepUnsupported {
			v.Keep(g)
		}
		return
	}
	switch g := g.(type) {
	case orb.Point:
		v.VisitPoint(g)
	case orb.LineString:
		v.VisitLineString(g)
	case orb.Polygon:
		v.VisitPolygon(g)
	case orb.Ring:
		v.VisitPolygon(orb.Polygon{g})
	case orb.Bound:
		v.VisitPolygon(g.ToPolygon())
	case orb.MultiPoint:
		v.VisitMultiPoint(g)
	case orb.MultiLineString:
		v.VisitMultiLineString(g)
	case orb.MultiPolygon:
		v.VisitMultiPolygon(g)
	}
}
