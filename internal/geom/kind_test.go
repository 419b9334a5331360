package geom

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
)

func TestKindMask(t *testing.T) {
	lines := MaskOf(LineString, MultiLineString)
	polys := MaskOf(Polygon, MultiPolygon)

	assert.True(t, lines.Allows(LineString))
	assert.False(t, lines.Allows(Polygon))
	assert.False(t, lines.Allows(kindCount))

	u := lines.Union(polys)
	for _, k := range []Kind{LineString, MultiLineString, Polygon, MultiPolygon} {
		assert.True(t, u.Allows(k), k.String())
	}
	assert.False(t, u.Allows(Point))

	assert.False(t, lines.Intersects(polys))
	assert.True(t, u.Intersects(MaskOf(Polygon, Point)))
	assert.False(t, KindMask(0).Intersects(AllKinds))
	assert.Equal(t, MaskOf(Polygon), u.Intersect(MaskOf(Polygon, Point)))

	assert.Equal(t, Kinds(), AllKinds.Kinds())
	assert.Equal(t, "LineString|MultiLineString", lines.String())
	assert.Equal(t, "none", KindMask(0).String())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		g    orb.Geometry
		kind Kind
	}{
		{orb.Point{1, 2}, Point},
		{orb.LineString{{0, 0}, {1, 1}}, LineString},
		{orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, Polygon},
		{orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, Polygon},
		{orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, Polygon},
		{orb.MultiPoint{{0, 0}}, MultiPoint},
		{orb.MultiLineString{{{0, 0}, {1, 1}}}, MultiLineString},
		{orb.MultiPolygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}}, MultiPolygon},
		{orb.Collection{orb.Point{0, 0}}, GeometryCollection},
	}
	for _, tt := range tests {
		k, ok := KindOf(tt.g)
		assert.True(t, ok)
		assert.Equal(t, tt.kind, k)
	}
	_, ok := KindOf(nil)
	assert.False(t, ok)
}

func TestObservedKindsAndCoordCount(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{0, 0}))
	fc.Append(geojson.NewFeature(orb.Collection{
		orb.LineString{{0, 0}, {1, 1}, {2, 2}},
		orb.Collection{orb.MultiPoint{{1, 1}, {2, 2}}},
	}))

	got := ObservedKinds(fc)
	assert.Equal(t, MaskOf(Point, LineString, MultiPoint, GeometryCollection), got)
	assert.Equal(t, 6, CoordCount(fc))
	assert.True(t, ObservedKinds(nil).Empty())
}
