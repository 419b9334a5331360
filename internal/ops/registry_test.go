package ops

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoops/internal/geom"
	"geoops/internal/simplify"
)

func names(ds []Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Name)
	}
	return out
}

func TestRegistryDefault(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{SimplifyName, VisvalingamName, BoundingRectName}, names(r.List()))

	assert.Equal(t, []string{BoundingRectName}, names(r.Available(geom.MaskOf(geom.Point, geom.MultiPoint))))
	assert.Len(t, r.Available(geom.MaskOf(geom.Point, geom.LineString)), 3)
	assert.Empty(t, r.Available(0))

	d, err := r.Lookup(VisvalingamName)
	require.NoError(t, err)
	op := d.New()
	assert.Equal(t, VisvalingamName, op.Name())
	assert.Equal(t, AwaitingParameters, op.State())

	_, err = r.Lookup("Buffer")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestRegistryInstancesAreIndependent(t *testing.T) {
	d, err := Default().Lookup(SimplifyName)
	require.NoError(t, err)
	a, b := d.New(), d.New()
	ui := NewScriptSurface()
	ui.Type("Epsilon:", "1")
	ui.Click("Execute")
	a.RenderParameters(ui, collection(wiggle))
	assert.Equal(t, Committed, a.State())
	assert.Equal(t, AwaitingParameters, b.State())
}

func TestRegistryOptions(t *testing.T) {
	r := Default(WithPolicy(KeepUnsupported), WithSeed(SimplifyName, "0.1"), WithLogger(nil))
	d, err := r.Lookup(SimplifyName)
	require.NoError(t, err)

	ui := NewScriptSurface()
	ui.Click("Execute")
	out, err := Drive(d.New(), ui, collection(orb.Point{3, 3}, wiggle), 3)
	require.NoError(t, err)
	got := single(t, out)
	require.Len(t, got, 2)
	assert.Equal(t, orb.Point{3, 3}, got[0])
}

func TestDriveNeverCommits(t *testing.T) {
	ui := NewScriptSurface()
	ui.Type("Epsilon:", "abc")
	_, err := Drive(NewSimplify(), ui, collection(wiggle), 3)
	assert.ErrorIs(t, err, ErrNotCommitted)
	assert.ErrorContains(t, err, "Invalid epsilon")
}

func TestVisvalingam(t *testing.T) {
	ui := NewScriptSurface()
	ui.Type("Area threshold:", "0.1")
	ui.Click("Execute")
	out, err := Drive(NewVisvalingam(), ui, collection(wiggle), 3)
	require.NoError(t, err)
	got := single(t, out)
	require.Len(t, got, 1)
	ls := got[0].(orb.LineString)
	assert.NotContains(t, ls, orb.Point{1, 0.01})
	assert.Equal(t, wiggle[0], ls[0])
	assert.Equal(t, wiggle[len(wiggle)-1], ls[len(ls)-1])
}

func TestVisvalingamKeepsRings(t *testing.T) {
	ring := orb.Ring{{0, 0}, {3, 0}, {6, 0.1}, {10, 0}, {10, 10}, {5, 10.1}, {0, 10}, {0, 0}}
	out, err := VisvalingamTransform(collection(orb.Polygon{ring}, orb.MultiPolygon{{ring}}), 1e9, Dispatcher{})
	require.NoError(t, err)
	for _, g := range single(t, out) {
		switch g := g.(type) {
		case orb.Polygon:
			assert.NoError(t, simplify.ValidatePolygon(g))
		case orb.MultiPolygon:
			require.Len(t, g, 1)
			assert.NoError(t, simplify.ValidatePolygon(g[0]))
		default:
			t.Fatalf("unexpected %T", g)
		}
	}

	_, err = VisvalingamTransform(collection(ring), -2, Dispatcher{})
	assert.EqualError(t, err, "threshold must not be negative")
}

func TestVisvalingamInvalidThreshold(t *testing.T) {
	op := NewVisvalingam()
	ui := NewScriptSurface()
	ui.Type("Area threshold:", "lots")
	op.RenderParameters(ui, collection(wiggle))
	assert.False(t, ui.Enabled("Execute"))
	assert.Contains(t, ui.Labels()[0], "Invalid threshold")
}

func TestBoundingRect(t *testing.T) {
	fc := collection(
		orb.Point{2, 3},
		orb.LineString{{0, 0}, {4, 1}},
		orb.Collection{},
		orb.Collection{orb.Point{0, 0}, orb.Point{1, 2}},
	)
	op := NewBoundingRect()
	ui := NewScriptSurface()
	ui.Click("Execute")
	out, err := Drive(op, ui, fc, 3)
	require.NoError(t, err)

	got := single(t, out)
	require.Len(t, got, 3)
	assert.Equal(t, orb.Bound{Min: orb.Point{2, 3}, Max: orb.Point{2, 3}}.ToPolygon(), got[0])
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{4, 1}}.ToPolygon(), got[1])
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 2}}.ToPolygon(), got[2])
	for _, g := range got {
		assert.NoError(t, simplify.ValidatePolygon(g.(orb.Polygon)))
	}

	out, err = BoundingRectTransform(fc, Dispatcher{})
	require.NoError(t, err)
	assert.Len(t, single(t, out), 3)
}

func TestActionAndStateStrings(t *testing.T) {
	assert.Equal(t, "render-ui", RenderUI.String())
	assert.Equal(t, "perform", Perform.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "preview-ready", PreviewReady.String())
	assert.Equal(t, "unknown", State(42).String())
}
