package ops

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoops/internal/geom"
	"geoops/internal/simplify"
)

const SimplifyName = "Simplify geometries"

var lineAndPolygonKinds = geom.MaskOf(
	geom.LineString,
	geom.MultiLineString,
	geom.Polygon,
	geom.MultiPolygon,
)

// Simplify applies Douglas-Peucker simplification with a user supplied
// epsilon to lines and polygon rings.
type Simplify struct {
	base
	text    string
	epsilon float64
}

// NewSimplify returns a Simplify with an empty epsilon field and the
// default dispatcher.
func NewSimplify() *Simplify { return newSimplify(defaultEnv()) }

func newSimplify(e env) *Simplify {
	return &Simplify{
		base: newBase(SimplifyName, lineAndPolygonKinds, e),
		text: e.seed(SimplifyName),
	}
}

// parseTolerance parses a finite, non-negative real.
func parseTolerance(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	return v, checkTolerance(v)
}

func checkTolerance(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("must be finite")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func (s *Simplify) RenderParameters(ui Surface, input *geojson.FeatureCollection) {
	if s.state == Committed {
		ui.Label("Committed")
		return
	}
	s.text = ui.TextField("Epsilon:", s.text)
	eps, err := parseTolerance(s.text)
	if err != nil {
		s.setParams(false)
		ui.Label("Invalid epsilon: " + err.Error())
		ui.Button("Execute", false)
		return
	}
	s.epsilon = eps
	s.setParams(true)
	s.preview(s, s.text, input)
	s.previewCounts(ui, input)
	if ui.Button("Execute", s.acc.err == nil) {
		s.commit()
	}
}

func (s *Simplify) Perform(input *geojson.FeatureCollection) { s.perform(s, input) }

func (s *Simplify) VisitLineString(ls orb.LineString) {
	if !s.ready(geom.LineString) {
		return
	}
	s.acc.push(simplify.LineString(ls, s.epsilon))
}

func (s *Simplify) VisitMultiLineString(mls orb.MultiLineString) {
	if !s.ready(geom.MultiLineString) {
		return
	}
	s.acc.push(simplify.MultiLineString(mls, s.epsilon))
}

func (s *Simplify) VisitPolygon(p orb.Polygon) {
	if !s.ready(geom.Polygon) {
		return
	}
	out, err := simplify.Polygon(p, s.epsilon)
	if err != nil {
		s.acc.fail(err)
		return
	}
	s.acc.push(out)
}

func (s *Simplify) VisitMultiPolygon(mp orb.MultiPolygon) {
	if !s.ready(geom.MultiPolygon) {
		return
	}
	out, err := simplify.MultiPolygon(mp, s.epsilon)
	if err != nil {
		s.acc.fail(err)
		return
	}
	s.acc.push(out)
}

// SimplifyTransform simplifies fc without any interactive surface.
func SimplifyTransform(fc *geojson.FeatureCollection, epsilon float64, d Dispatcher) (Outcome, error) {
	if err := checkTolerance(epsilon); err != nil {
		return Outcome{}, errors.New("epsilon " + err.Error())
	}
	s := newSimplify(env{dispatcher: d})
	s.epsilon = epsilon
	s.valid = true
	s.pass(s, fc)
	return s.Finalize()
}
