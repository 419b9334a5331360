// Package simplify implements Douglas-Peucker simplification for lines and
// rings. Rings keep their closing vertex and never drop below four
// coordinates, so a simplified polygon is always a valid polygon.
package simplify

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	orbsimplify "github.com/paulmach/orb/simplify"
)

// MinRingCoords is the smallest coordinate count of a valid closed ring.
const MinRingCoords = 4

// ErrInvalidRing is matched by every InvariantError.
var ErrInvalidRing = errors.New("simplify: invalid ring")

// InvariantError reports a ring that is too short or not closed.
type InvariantError struct {
	Ring   int // ring index within its polygon, 0 is the exterior
	Coords int
	Closed bool
}

func (e *InvariantError) Error() string {
	if !e.Closed {
		return fmt.Sprintf("simplify: ring %d is not closed (%d coordinates)", e.Ring, e.Coords)
	}
	return fmt.Sprintf("simplify: ring %d has %d coordinates, need at least %d", e.Ring, e.Coords, MinRingCoords)
}

func (e *InvariantError) Is(target error) bool { return target == ErrInvalidRing }

// ValidateRing checks that r is closed and has at least MinRingCoords coordinates.
func ValidateRing(r orb.Ring) error {
	closed := len(r) > 0 && r[0] == r[len(r)-1]
	if !closed || len(r) < MinRingCoords {
		return &InvariantError{Coords: len(r), Closed: closed}
	}
	return nil
}

// ValidatePolygon validates every ring of p.
func ValidatePolygon(p orb.Polygon) error {
	for i, r := range p {
		if err := ValidateRing(r); err != nil {
			var ie *InvariantError
			if errors.As(err, &ie) {
				ie.Ring = i
			}
			return err
		}
	}
	return nil
}

// LineString returns a simplified copy of ls. The endpoints are always kept,
// and a vertex survives only if it lies farther than epsilon from the chord
// of the segment being split.
func LineString(ls orb.LineString, epsilon float64) orb.LineString {
	if len(ls) < 3 {
		return ls.Clone()
	}
	return orbsimplify.DouglasPeucker(epsilon).LineString(ls.Clone())
}

// MultiLineString simplifies each component line.
func MultiLineString(mls orb.MultiLineString, epsilon float64) orb.MultiLineString {
	out := make(orb.MultiLineString, 0, len(mls))
	for _, ls := range mls {
		out = append(out, LineString(ls, epsilon))
	}
	return out
}

// CloseRing returns a copy of r whose last coordinate repeats the first.
func CloseRing(r orb.Ring) orb.Ring {
	out := r.Clone()
	if len(out) > 0 && out[0] != out[len(out)-1] {
		out = append(out, out[0])
	}
	return out
}

// ClosePolygon closes every ring of a copy of p.
func ClosePolygon(p orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, 0, len(p))
	for _, r := range p {
		out = append(out, CloseRing(r))
	}
	return out
}

// Ring returns a simplified copy of r. An open ring is closed first.
//
// The ring is split at the vertex farthest from its start and both halves
// are simplified with their endpoints fixed, which keeps the start, the split
// vertex and the closing vertex. When that leaves only three coordinates the
// dropped vertex farthest from its chord is restored.
func Ring(r orb.Ring, epsilon float64) (orb.Ring, error) {
	r = CloseRing(r)
	if err := ValidateRing(r); err != nil {
		return nil, err
	}
	n := len(r)
	if n <= MinRingCoords {
		return r, nil
	}
	split, far := 0, 0.0
	for i := 1; i < n-1; i++ {
		if d := planar.DistanceSquared(r[0], r[i]); d > far {
			split, far = i, d
		}
	}
	if split == 0 {
		// every vertex coincides with the start
		return r, nil
	}
	dp := orbsimplify.DouglasPeucker(epsilon)
	keep := make([]bool, n)
	markKept(r[:split+1], 0, dp.LineString(orb.LineString(r[:split+1]).Clone()), keep)
	markKept(r[split:], split, dp.LineString(orb.LineString(r[split:]).Clone()), keep)
	keep[0], keep[split], keep[n-1] = true, true, true
	kept := 0
	for _, k := range keep {
		if k {
			kept++
		}
	}

	for kept < MinRingCoords {
		i := farthestDropped(r, split, keep)
		if i < 0 {
			break
		}
		keep[i] = true
		kept++
	}
	out := make(orb.Ring, 0, kept)
	for i, p := range r {
		if keep[i] {
			out = append(out, p)
		}
	}
	if err := ValidateRing(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Polygon simplifies the exterior and each interior ring independently.
func Polygon(p orb.Polygon, epsilon float64) (orb.Polygon, error) {
	out := make(orb.Polygon, 0, len(p))
	for i, r := range p {
		s, err := Ring(r, epsilon)
		if err != nil {
			var ie *InvariantError
			if errors.As(err, &ie) {
				ie.Ring = i
			}
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// MultiPolygon simplifies each component polygon.
func MultiPolygon(mp orb.MultiPolygon, epsilon float64) (orb.MultiPolygon, error) {
	out := make(orb.MultiPolygon, 0, len(mp))
	for i, p := range mp {
		s, err := Polygon(p, epsilon)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// markKept flags the vertices of half that survived in simplified, matching
// in order. offset is the index of half[0] within the whole ring.
func markKept(half orb.Ring, offset int, simplified orb.LineString, keep []bool) {
	j := 0
	for i := 0; i < len(half) && j < len(simplified); i++ {
		if half[i] == simplified[j] {
			keep[offset+i] = true
			j++
		}
	}
}

// farthestDropped returns the unkept vertex with the largest distance from
// the chord of the ring half it belongs to, or -1.
func farthestDropped(pts orb.Ring, split int, keep []bool) int {
	last := len(pts) - 1
	idx, dmax := -1, -1.0
	for i := 1; i < last; i++ {
		if keep[i] {
			continue
		}
		a, b := 0, split
		if i > split {
			a, b = split, last
		}
		if d := planar.DistanceFromSegment(pts[a], pts[b], pts[i]); d > dmax {
			idx, dmax = i, d
		}
	}
	return idx
}
