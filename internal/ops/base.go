package ops

import (
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoops/internal/geom"
	"geoops/internal/logging"
)

// env carries the host-level settings a registry hands to every instance.
type env struct {
	dispatcher Dispatcher
	cache      bool
	log        *slog.Logger
	seeds      map[string]string
}

// seed returns the initial parameter text for the named operation.
func (e env) seed(name string) string { return e.seeds[name] }

func defaultEnv() env {
	return env{log: logging.NewNop()}
}

// accumulator is the buffer an operation appends its results to.
type accumulator struct {
	buf orb.Collection
	err error
}

func (a *accumulator) reset() {
	a.buf = nil
	a.err = nil
}

func (a *accumulator) push(g orb.Geometry) { a.buf = append(a.buf, g) }

// fail records the first error of the current pass.
func (a *accumulator) fail(err error) {
	if a.err == nil {
		a.err = err
	}
}

// drain hands out the buffer and the pass error, leaving both empty.
func (a *accumulator) drain() (orb.Collection, error) {
	buf, err := a.buf, a.err
	a.buf, a.err = nil, nil
	return buf, err
}

// stage is the AwaitingParameters -> PreviewReady -> Committed machine.
type stage struct {
	state  State
	handed bool
}

func (s *stage) State() State { return s.state }

func (s *stage) NextAction() Action {
	if s.state != Committed {
		return RenderUI
	}
	if s.handed {
		return Done
	}
	s.handed = true
	return Perform
}

// validate moves between AwaitingParameters and PreviewReady. Committed is terminal.
func (s *stage) validate(ok bool) {
	if s.state == Committed {
		return
	}
	if ok {
		s.state = PreviewReady
	} else {
		s.state = AwaitingParameters
	}
}

func (s *stage) commit() bool {
	if s.state != PreviewReady {
		return false
	}
	s.state = Committed
	return true
}

type previewKey struct {
	params string
	input  *geojson.FeatureCollection
}

// base holds what every operation shares: its name and mask, the state
// machine and the accumulation buffer. Operations embed it and override the
// visitor callbacks for the kinds they support.
type base struct {
	stage
	name    string
	allowed geom.KindMask
	env     env
	acc     accumulator
	valid   bool
	last    *previewKey
}

func newBase(name string, allowed geom.KindMask, e env) base {
	if e.log == nil {
		e.log = logging.NewNop()
	}
	return base{name: name, allowed: allowed, env: e}
}

func (b *base) Name() string { return b.name }

func (b *base) Allowed() geom.KindMask { return b.allowed }

// ready reports whether a visitor for k may act.
func (b *base) ready(k geom.Kind) bool {
	return b.valid && b.allowed.Allows(k)
}

func (b *base) VisitPoint(orb.Point)                     {}
func (b *base) VisitLineString(orb.LineString)           {}
func (b *base) VisitPolygon(orb.Polygon)                 {}
func (b *base) VisitMultiPoint(orb.MultiPoint)           {}
func (b *base) VisitMultiLineString(orb.MultiLineString) {}
func (b *base) VisitMultiPolygon(orb.MultiPolygon)       {}
func (b *base) VisitGeometryCollection(orb.Collection)   {}

func (b *base) Keep(g orb.Geometry) {
	if b.valid {
		b.acc.push(orb.Clone(g))
	}
}

// setParams records whether the current parameter text parsed.
func (b *base) setParams(ok bool) {
	b.valid = ok
	b.stage.validate(ok)
	if !ok {
		b.last = nil
	}
}

// preview recomputes the buffer for input unless the cached pass for the
// same parameters and input is still current.
func (b *base) preview(v Visitor, params string, input *geojson.FeatureCollection) {
	key := previewKey{params: params, input: input}
	if b.env.cache && b.last != nil && *b.last == key {
		b.env.log.Debug("preview cached", "op", b.name, "params", params)
		return
	}
	b.pass(v, input)
	b.last = &key
}

// pass resets the buffer and runs one full traversal.
func (b *base) pass(v Visitor, input *geojson.FeatureCollection) {
	b.acc.reset()
	b.env.dispatcher.Collection(input, v)
	b.env.log.Debug("pass done", "op", b.name, "state", b.state.String(), "nodes", len(b.acc.buf), "err", b.acc.err)
}

// perform is the authoritative pass. It always recomputes.
func (b *base) perform(v Visitor, input *geojson.FeatureCollection) {
	if b.state != Committed {
		return
	}
	b.last = nil
	b.pass(v, input)
}

func (b *base) Finalize() (Outcome, error) {
	b.last = nil
	buf, err := b.acc.drain()
	if err != nil {
		return Outcome{}, &FinalizeError{Op: b.name, Err: err}
	}
	return collectionOutcome(buf), nil
}

// previewCounts labels the coordinate counts before and after the preview.
func (b *base) previewCounts(s Surface, input *geojson.FeatureCollection) {
	s.Label(fmt.Sprintf("Previous # of nodes: %d", geom.CoordCount(input)))
	if b.acc.err != nil {
		s.Label("<encountered an error: " + b.acc.err.Error() + ">")
		return
	}
	s.Label(fmt.Sprintf("Resulting # of nodes: %d", geom.GeometryCoordCount(b.acc.buf)))
}
