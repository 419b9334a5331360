package ops

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoops/internal/geom"
)

const BoundingRectName = "Bounding rectangles"

// BoundingRect replaces every node with its axis-aligned bounding rectangle.
// It takes no parameters, so the preview is always ready.
type BoundingRect struct {
	base
}

func NewBoundingRect() *BoundingRect { return newBoundingRect(defaultEnv()) }

func newBoundingRect(e env) *BoundingRect {
	return &BoundingRect{base: newBase(BoundingRectName, geom.AllKinds, e)}
}

func (b *BoundingRect) RenderParameters(ui Surface, input *geojson.FeatureCollection) {
	if b.state == Committed {
		ui.Label("Committed")
		return
	}
	b.setParams(true)
	b.preview(b, "", input)
	ui.Label("Replaces each geometry with its bounding rectangle.")
	b.previewCounts(ui, input)
	if ui.Button("Execute", b.acc.err == nil) {
		b.commit()
	}
}

func (b *BoundingRect) Perform(input *geojson.FeatureCollection) { b.perform(b, input) }

func (b *BoundingRect) push(k geom.Kind, g orb.Geometry) {
	if !b.ready(k) {
		return
	}
	b.acc.push(g.Bound().ToPolygon())
}

func (b *BoundingRect) VisitPoint(p orb.Point)                     { b.push(geom.Point, p) }
func (b *BoundingRect) VisitLineString(ls orb.LineString)          { b.push(geom.LineString, ls) }
func (b *BoundingRect) VisitPolygon(p orb.Polygon)                 { b.push(geom.Polygon, p) }
func (b *BoundingRect) VisitMultiPoint(mp orb.MultiPoint)          { b.push(geom.MultiPoint, mp) }
func (b *BoundingRect) VisitMultiLineString(m orb.MultiLineString) { b.push(geom.MultiLineString, m) }
func (b *BoundingRect) VisitMultiPolygon(mp orb.MultiPolygon)      { b.push(geom.MultiPolygon, mp) }
func (b *BoundingRect) VisitGeometryCollection(c orb.Collection) {
	if len(c) == 0 {
		return
	}
	b.push(geom.GeometryCollection, c)
}

// BoundingRectTransform computes the bounding rectangles of fc without any
// interactive surface.
func BoundingRectTransform(fc *geojson.FeatureCollection, d Dispatcher) (Outcome, error) {
	b := newBoundingRect(env{dispatcher: d})
	b.valid = true
	b.pass(b, fc)
	return b.Finalize()
}
