package ops

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"

	"geoops/internal/geom"
)

// recorder logs every callback it receives.
type recorder struct {
	allowed geom.KindMask
	calls   []string
	kept    []orb.Geometry
}

func (r *recorder) Allowed() geom.KindMask                  { return r.allowed }
func (r *recorder) VisitPoint(orb.Point)                     { r.calls = append(r.calls, "point") }
func (r *recorder) VisitLineString(orb.LineString)           { r.calls = append(r.calls, "linestring") }
func (r *recorder) VisitPolygon(orb.Polygon)                 { r.calls = append(r.calls, "polygon") }
func (r *recorder) VisitMultiPoint(orb.MultiPoint)           { r.calls = append(r.calls, "multipoint") }
func (r *recorder) VisitMultiLineString(orb.MultiLineString) { r.calls = append(r.calls, "multilinestring") }
func (r *recorder) VisitMultiPolygon(orb.MultiPolygon)       { r.calls = append(r.calls, "multipolygon") }
func (r *recorder) VisitGeometryCollection(orb.Collection)   { r.calls = append(r.calls, "collection") }
func (r *recorder) Keep(g orb.Geometry)                      { r.kept = append(r.kept, g) }

var square = orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}

func collection(gs ...orb.Geometry) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, g := range gs {
		fc.Append(geojson.NewFeature(g))
	}
	return fc
}

func TestDispatchAllowedOnly(t *testing.T) {
	fc := collection(
		orb.Point{1, 1},
		orb.MultiPoint{{0, 0}, {1, 1}},
		orb.LineString{{0, 0}, {1, 1}},
		square,
	)
	r := &recorder{allowed: geom.MaskOf(geom.LineString, geom.Polygon)}
	Dispatcher{}.Collection(fc, r)
	assert.Equal(t, []string{"linestring", "polygon"}, r.calls)
	assert.Empty(t, r.kept)
}

func TestDispatchKeepUnsupported(t *testing.T) {
	fc := collection(
		orb.Point{1, 1},
		orb.LineString{{0, 0}, {1, 1}},
		orb.MultiPoint{{0, 0}},
	)
	r := &recorder{allowed: geom.MaskOf(geom.LineString)}
	Dispatcher{Policy: KeepUnsupported}.Collection(fc, r)
	assert.Equal(t, []string{"linestring"}, r.calls)
	assert.Equal(t, []orb.Geometry{orb.Point{1, 1}, orb.MultiPoint{{0, 0}}}, r.kept)
}

func TestDispatchCollections(t *testing.T) {
	nested := orb.Collection{
		orb.LineString{{0, 0}, {1, 1}},
		orb.Collection{orb.Point{2, 2}, square},
		orb.MultiLineString{{{0, 0}, {1, 0}}},
	}
	fc := collection(nested)

	r := &recorder{allowed: geom.AllKinds}
	Dispatcher{}.Collection(fc, r)
	assert.Equal(t, []string{"collection"}, r.calls, "allowed collections are visited as a unit")

	r = &recorder{allowed: geom.MaskOf(geom.Point, geom.LineString, geom.Polygon, geom.MultiLineString)}
	Dispatcher{}.Collection(fc, r)
	assert.Equal(t, []string{"linestring", "point", "polygon", "multilinestring"}, r.calls)
}

func TestDispatchRingAndBound(t *testing.T) {
	r := &recorder{allowed: geom.MaskOf(geom.Polygon)}
	d := Dispatcher{}
	d.Geometry(orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, r)
	d.Geometry(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, r)
	d.Geometry(nil, r)
	assert.Equal(t, []string{"polygon", "polygon"}, r.calls)
}

func TestDispatchNil(t *testing.T) {
	r := &recorder{allowed: geom.AllKinds}
	Dispatcher{}.Collection(nil, r)
	fc := geojson.NewFeatureCollection()
	fc.Features = append(fc.Features, nil, geojson.NewFeature(nil))
	Dispatcher{}.Collection(fc, r)
	assert.Empty(t, r.calls)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("Keep")
	assert.NoError(t, err)
	assert.Equal(t, KeepUnsupported, p)
	p, err = ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, DropUnsupported, p)
	_, err = ParsePolicy("sometimes")
	assert.Error(t, err)
	assert.Equal(t, "keep", KeepUnsupported.String())
}
