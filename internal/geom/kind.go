package geom

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Kind is one of the seven geometry kinds an operation can act on.
type Kind uint8

const (
	Point Kind = iota
	LineString
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
	GeometryCollection

	kindCount
)

var kindNames = [kindCount]string{
	Point:              "Point",
	LineString:         "LineString",
	Polygon:            "Polygon",
	MultiPoint:         "MultiPoint",
	MultiLineString:    "MultiLineString",
	MultiPolygon:       "MultiPolygon",
	GeometryCollection: "GeometryCollection",
}

func (k Kind) String() string {
	if k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// KindMask is a set of geometry kinds.
type KindMask uint8

// AllKinds contains all seven kinds.
const AllKinds KindMask = 1<<kindCount - 1

// MaskOf builds a mask from the given kinds.
func MaskOf(kinds ...Kind) KindMask {
	var m KindMask
	for _, k := range kinds {
		if k < kindCount {
			m |= 1 << k
		}
	}
	return m
}

func (m KindMask) Allows(k Kind) bool {
	return k < kindCount && m&(1<<k) != 0
}

func (m KindMask) Union(o KindMask) KindMask { return m | o }

func (m KindMask) Intersect(o KindMask) KindMask { return m & o }

func (m KindMask) Intersects(o KindMask) bool { return m&o != 0 }

func (m KindMask) Empty() bool { return m&AllKinds == 0 }

// Kinds returns the members of the mask in declaration order.
func (m KindMask) Kinds() []Kind {
	var out []Kind
	for _, k := range Kinds() {
		if m.Allows(k) {
			out = append(out, k)
		}
	}
	return out
}

func (m KindMask) String() string {
	ks := m.Kinds()
	if len(ks) == 0 {
		return "none"
	}
	names := make([]string, 0, len(ks))
	for _, k := range ks {
		names = append(names, k.String())
	}
	return strings.Join(names, "|")
}

// KindOf reports the kind of g. Rings and bounds count as polygons.
func KindOf(g orb.Geometry) (Kind, bool) {
	switch g.(type) {
	case orb.Point:
		return Point, true
	case orb.LineString:
		return LineString, true
	case orb.Polygon, orb.Ring, orb.Bound:
		return Polygon, true
	case orb.MultiPoint:
		return MultiPoint, true
	case orb.MultiLineString:
		return MultiLineString, true
	case orb.MultiPolygon:
		return MultiPolygon, true
	case orb.Collection:
		return GeometryCollection, true
	}
	return 0, false
}

// ObservedKinds scans a collection and returns every kind present,
// including the kinds nested inside geometry collections.
func ObservedKinds(fc *geojson.FeatureCollection) KindMask {
	var m KindMask
	if fc == nil {
		return m
	}
	var walk func(g orb.Geometry)
	walk = func(g orb.Geometry) {
		if g == nil {
			return
		}
		k, ok := KindOf(g)
		if !ok {
			return
		}
		m |= MaskOf(k)
		if c, ok := g.(orb.Collection); ok {
			for _, child := range c {
				walk(child)
			}
		}
	}
	for _, f := range fc.Features {
		if f != nil {
			walk(f.Geometry)
		}
	}
	return m
}

// CoordCount returns the total number of coordinates in the collection.
func CoordCount(fc *geojson.FeatureCollection) int {
	if fc == nil {
		return 0
	}
	n := 0
	for _, f := range fc.Features {
		if f != nil {
			n += GeometryCoordCount(f.Geometry)
		}
	}
	return n
}

func GeometryCoordCount(g orb.Geometry) int {
	switch g := g.(type) {
	case orb.Point:
		return 1
	case orb.MultiPoint:
		return len(g)
	case orb.LineString:
		return len(g)
	case orb.Ring:
		return len(g)
	case orb.MultiLineString:
		n := 0
		for _, ls := range g {
			n += len(ls)
		}
		return n
	case orb.Polygon:
		n := 0
		for _, r := range g {
			n += len(r)
		}
		return n
	case orb.MultiPolygon:
		n := 0
		for _, p := range g {
			n += GeometryCoordCount(p)
		}
		return n
	case orb.Collection:
		n := 0
		for _, c := range g {
			n += GeometryCoordCount(c)
		}
		return n
	case orb.Bound:
		return 5
	}
	return 0
}
