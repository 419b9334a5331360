package geom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadGeoJSON(t *testing.T) {
	p := writeFile(t, "a.geojson", `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"road"},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[2,3]}}
	]}`)
	fc, err := Load(p)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "road", fc.Features[0].Properties["name"])
	assert.Equal(t, MaskOf(LineString, Point), ObservedKinds(fc))

	d := Flatten(fc)
	assert.Len(t, d.Lines, 1)
	assert.Len(t, d.Points, 3)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 2, MaxY: 3}, d.BBox)
}

func TestParseGeoJSONBareGeometry(t *testing.T) {
	fc, err := ParseGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.IsType(t, orb.Polygon{}, fc.Features[0].Geometry)

	_, err = ParseGeoJSON([]byte(`{"coordinates":[]}`))
	assert.Error(t, err)
}

func TestParseWKT(t *testing.T) {
	fc, err := ParseWKT("LINESTRING(0 0, 1 1, 2 0)")
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}, {2, 0}}, fc.Features[0].Geometry)

	_, err = ParseWKT("   ")
	assert.EqualError(t, err, "empty wkt")

	_, err = ParseWKT("CIRCLE(1 2)")
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, "pts.csv", "name,Lat,Lon\nA,10,20\nB,bad,1\nC,11,21\n")
	fc, err := Load(p)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, orb.Point{20, 10}, fc.Features[0].Geometry)
	assert.Equal(t, "C", fc.Features[1].Properties["name"])

	p = writeFile(t, "nocols.csv", "a,b\n1,2\n")
	_, err = Load(p)
	assert.EqualError(t, err, "csv: latitude/longitude columns not found")
}

func TestLoadKML(t *testing.T) {
	p := writeFile(t, "a.kml", `<kml><Document>
		<Placemark><name>one</name><Point><coordinates>1,2,0</coordinates></Point></Placemark>
		<Placemark><name>line</name></Placemark>
	</Document></kml>`)
	fc, err := Load(p)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, orb.Point{1, 2}, fc.Features[0].Geometry)
	assert.Equal(t, "one", fc.Features[0].Properties["name"])
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("x.shp")
	var ue *UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, ".shp", ue.Ext)
	assert.True(t, Supported("A.GeoJSON"))
	assert.False(t, Supported("a.txt"))
}
