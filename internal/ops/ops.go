// Package ops is the geometry operation framework: operations declare the
// geometry kinds they act on, are previewed interactively against the active
// feature collection, and produce an Outcome only after an explicit commit.
//
// Everything in this package runs on the caller's goroutine. An Operation is
// owned by a single interactive surface and is never shared.
package ops

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoops/internal/geom"
)

// Action tells the host what to do with an operation on its next cycle.
type Action int

const (
	// RenderUI asks the host to call RenderParameters again.
	RenderUI Action = iota
	// Perform is returned once, after commit: the host finalizes the operation.
	Perform
	// Done is returned after Perform was handed out. Nothing is left to do.
	Done
)

func (a Action) String() string {
	switch a {
	case RenderUI:
		return "render-ui"
	case Perform:
		return "perform"
	case Done:
		return "done"
	}
	return "unknown"
}

// State is the execution state of an operation instance.
type State int

const (
	AwaitingParameters State = iota
	PreviewReady
	Committed
)

func (s State) String() string {
	switch s {
	case AwaitingParameters:
		return "awaiting-parameters"
	case PreviewReady:
		return "preview-ready"
	case Committed:
		return "committed"
	}
	return "unknown"
}

// Surface is the interaction capability an operation draws its parameters on.
// Implementations are immediate mode: every call describes one widget for the
// current refresh cycle.
type Surface interface {
	// TextField renders a single-line text field seeded with value and
	// returns its current contents.
	TextField(label, value string) string
	// Button renders a labeled button and reports whether it was activated
	// during this cycle. Disabled buttons never report activation.
	Button(label string, enabled bool) bool
	// Label renders static text.
	Label(text string)
}

// Visitor receives the nodes of a traversal, one callback per geometry kind.
type Visitor interface {
	Allowed() geom.KindMask
	VisitPoint(orb.Point)
	VisitLineString(orb.LineString)
	VisitPolygon(orb.Polygon)
	VisitMultiPoint(orb.MultiPoint)
	VisitMultiLineString(orb.MultiLineString)
	VisitMultiPolygon(orb.MultiPolygon)
	VisitGeometryCollection(orb.Collection)
	// Keep receives nodes outside the allowed mask when the dispatcher
	// passes unsupported kinds through unchanged.
	Keep(orb.Geometry)
}

// Operation is a single, stateful invocation of a geometry operation.
type Operation interface {
	Visitor
	Name() string
	State() State
	NextAction() Action
	// RenderParameters draws the parameter fields on s and, when they are
	// valid, recomputes the preview against input. input is never modified.
	RenderParameters(s Surface, input *geojson.FeatureCollection)
	// Perform runs the authoritative pass over input. It is a no-op unless
	// the operation has been committed.
	Perform(input *geojson.FeatureCollection)
	// Finalize drains the accumulation buffer into an Outcome. A second call
	// returns an Outcome built from an empty buffer, not an error.
	Finalize() (Outcome, error)
}

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind int

const (
	OutcomeFeatureCollection OutcomeKind = iota
)

// Outcome is the result a completed operation hands back to its host.
type Outcome struct {
	Kind              OutcomeKind
	FeatureCollection *geojson.FeatureCollection
}

// collectionOutcome wraps the accumulated geometries into a single feature
// with empty properties.
func collectionOutcome(c orb.Collection) Outcome {
	if c == nil {
		c = orb.Collection{}
	}
	fc := geojson.NewFeatureCollection().Append(geojson.NewFeature(c))
	return Outcome{Kind: OutcomeFeatureCollection, FeatureCollection: fc}
}
