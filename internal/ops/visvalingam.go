package ops

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	orbsimplify "github.com/paulmach/orb/simplify"

	"geoops/internal/geom"
	"geoops/internal/simplify"
)

const VisvalingamName = "Simplify geometries (Visvalingam)"

// Visvalingam removes vertices whose effective triangle area is below a
// threshold. Every ring keeps at least four coordinates.
type Visvalingam struct {
	base
	text      string
	threshold float64
}

func NewVisvalingam() *Visvalingam { return newVisvalingam(defaultEnv()) }

func newVisvalingam(e env) *Visvalingam {
	return &Visvalingam{
		base: newBase(VisvalingamName, lineAndPolygonKinds, e),
		text: e.seed(VisvalingamName),
	}
}

func (v *Visvalingam) RenderParameters(ui Surface, input *geojson.FeatureCollection) {
	if v.state == Committed {
		ui.Label("Committed")
		return
	}
	v.text = ui.TextField("Area threshold:", v.text)
	t, err := parseTolerance(v.text)
	if err != nil {
		v.setParams(false)
		ui.Label("Invalid threshold: " + err.Error())
		ui.Button("Execute", false)
		return
	}
	v.threshold = t
	v.setParams(true)
	v.preview(v, v.text, input)
	v.previewCounts(ui, input)
	if ui.Button("Execute", v.acc.err == nil) {
		v.commit()
	}
}

func (v *Visvalingam) Perform(input *geojson.FeatureCollection) { v.perform(v, input) }

// run simplifies a clone of g; orb simplifies in place. Polygon rings are
// closed by the callers first.
func (v *Visvalingam) run(g orb.Geometry) orb.Geometry {
	return orbsimplify.Visvalingam(v.threshold, simplify.MinRingCoords).Simplify(orb.Clone(g))
}

func (v *Visvalingam) VisitLineString(ls orb.LineString) {
	if !v.ready(geom.LineString) {
		return
	}
	v.acc.push(v.run(ls))
}

func (v *Visvalingam) VisitMultiLineString(mls orb.MultiLineString) {
	if !v.ready(geom.MultiLineString) {
		return
	}
	v.acc.push(v.run(mls))
}

func (v *Visvalingam) VisitPolygon(p orb.Polygon) {
	if !v.ready(geom.Polygon) {
		return
	}
	out, ok := v.run(simplify.ClosePolygon(p)).(orb.Polygon)
	if !ok {
		v.acc.fail(errors.New("visvalingam: unexpected result type"))
		return
	}
	if err := checkRingsKept(p, out); err != nil {
		v.acc.fail(err)
		return
	}
	v.acc.push(out)
}

func (v *Visvalingam) VisitMultiPolygon(mp orb.MultiPolygon) {
	if !v.ready(geom.MultiPolygon) {
		return
	}
	closed := make(orb.MultiPolygon, 0, len(mp))
	for _, p := range mp {
		closed = append(closed, simplify.ClosePolygon(p))
	}
	out, ok := v.run(closed).(orb.MultiPolygon)
	if !ok || len(out) != len(mp) {
		v.acc.fail(errors.New("visvalingam: polygon count changed"))
		return
	}
	for i := range out {
		if err := checkRingsKept(mp[i], out[i]); err != nil {
			v.acc.fail(fmt.Errorf("polygon %d: %w", i, err))
			return
		}
	}
	v.acc.push(out)
}

// checkRingsKept verifies that no ring was dropped and every ring is valid.
func checkRingsKept(in, out orb.Polygon) error {
	if len(out) != len(in) {
		return fmt.Errorf("%w: %d of %d rings kept", simplify.ErrInvalidRing, len(out), len(in))
	}
	return simplify.ValidatePolygon(out)
}

// VisvalingamTransform simplifies fc without any interactive surface.
func VisvalingamTransform(fc *geojson.FeatureCollection, threshold float64, d Dispatcher) (Outcome, error) {
	if err := checkTolerance(threshold); err != nil {
		return Outcome{}, errors.New("threshold " + err.Error())
	}
	v := newVisvalingam(env{dispatcher: d})
	v.threshold = threshold
	v.valid = true
	v.pass(v, fc)
	return v.Finalize()
}
