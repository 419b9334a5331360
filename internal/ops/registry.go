package ops

import (
	"fmt"
	"log/slog"

	"geoops/internal/geom"
)

// Descriptor is the static metadata of an operation.
type Descriptor struct {
	Name    string
	Allowed geom.KindMask

	build func(env) Operation
	env   env
}

// New returns a fresh instance with default parameters and an empty buffer.
func (d Descriptor) New() Operation { return d.build(d.env) }

// Registry lists the operations a host can offer.
type Registry struct {
	env         env
	descriptors []Descriptor
}

type Option func(*Registry)

// WithPolicy sets how every instance treats unsupported geometry kinds.
func WithPolicy(p Policy) Option {
	return func(r *Registry) { r.env.dispatcher.Policy = p }
}

// WithPreviewCache skips preview recomputation while neither the parameter
// text nor the input collection changed.
func WithPreviewCache(on bool) Option {
	return func(r *Registry) { r.env.cache = on }
}

// WithLogger sets the logger instances write debug output to.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.env.log = l
		}
	}
}

// WithSeed sets the initial parameter text of the named operation.
func WithSeed(name, text string) Option {
	return func(r *Registry) {
		if r.env.seeds == nil {
			r.env.seeds = map[string]string{}
		}
		r.env.seeds[name] = text
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{env: defaultEnv()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Default returns a registry with the built-in operations.
func Default(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	r.register(SimplifyName, lineAndPolygonKinds, func(e env) Operation { return newSimplify(e) })
	r.register(VisvalingamName, lineAndPolygonKinds, func(e env) Operation { return newVisvalingam(e) })
	r.register(BoundingRectName, geom.AllKinds, func(e env) Operation { return newBoundingRect(e) })
	return r
}

// register appends an operation. build receives the registry settings.
func (r *Registry) register(name string, allowed geom.KindMask, build func(env) Operation) {
	r.descriptors = append(r.descriptors, Descriptor{Name: name, Allowed: allowed, build: build, env: r.env})
}

// List returns every descriptor in registration order.
func (r *Registry) List() []Descriptor {
	return append([]Descriptor(nil), r.descriptors...)
}

// Available returns the descriptors whose mask intersects the observed kinds.
func (r *Registry) Available(observed geom.KindMask) []Descriptor {
	var out []Descriptor
	for _, d := range r.descriptors {
		if d.Allowed.Intersects(observed) {
			out = append(out, d)
		}
	}
	return out
}

// Lookup finds a descriptor by name.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	for _, d := range r.descriptors {
		if d.Name == name {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
}
