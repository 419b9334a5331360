package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64 // every vertex, used for inspect and point-only datasets
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
}

// Empty reports whether nothing drawable was found.
func (d Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

// Flatten converts a feature collection into render Data.
func Flatten(fc *geojson.FeatureCollection) Data {
	var d Data
	if fc == nil {
		return d
	}
	addPt := func(p orb.Point) {
		if len(d.Points) == 0 {
			d.BBox = BBox{MinX: p[0], MinY: p[1], MaxX: p[0], MaxY: p[1]}
		} else {
			if p[0] < d.BBox.MinX {
				d.BBox.MinX = p[0]
			}
			if p[1] < d.BBox.MinY {
				d.BBox.MinY = p[1]
			}
			if p[0] > d.BBox.MaxX {
				d.BBox.MaxX = p[0]
			}
			if p[1] > d.BBox.MaxY {
				d.BBox.MaxY = p[1]
			}
		}
		d.Points = append(d.Points, [2]float64(p))
	}
	addLine := func(ls orb.LineString) {
		line := make([][2]float64, 0, len(ls))
		for _, p := range ls {
			line = append(line, [2]float64(p))
			addPt(p)
		}
		d.Lines = append(d.Lines, line)
	}
	addPoly := func(poly orb.Polygon) {
		rings := make([][][2]float64, 0, len(poly))
		for _, r := range poly {
			ring := make([][2]float64, 0, len(r))
			for _, p := range r {
				ring = append(ring, [2]float64(p))
				addPt(p)
			}
			rings = append(rings, ring)
		}
		d.Polygons = append(d.Polygons, rings)
	}
	var walk func(g orb.Geometry)
	walk = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.Point:
			addPt(g)
		case orb.MultiPoint:
			for _, p := range g {
				addPt(p)
			}
		case orb.LineString:
			addLine(g)
		case orb.MultiLineString:
			for _, ls := range g {
				addLine(ls)
			}
		case orb.Ring:
			addPoly(orb.Polygon{g})
		case orb.Bound:
			addPoly(g.ToPolygon())
		case orb.Polygon:
			addPoly(g)
		case orb.MultiPolygon:
			for _, p := range g {
				addPoly(p)
			}
		case orb.Collection:
			for _, c := range g {
				walk(c)
			}
		}
	}
	for _, f := range fc.Features {
		if f != nil {
			walk(f.Geometry)
		}
	}
	return d
}
