// Package geomutil implements split, buffer, merge and boolean operations
// over planar geometries. Every operation accepts bare geometries or
// features and answers in the shape it was given.
package geomutil

import (
	"github.com/sirupsen/logrus"

	"geokit/internal/algebra"
)

// Engine runs geometry operations. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	alg   algebra.Algebra
	log   logrus.FieldLogger
	newID func() any
}

// Option configures an Engine.
type Option func(*Engine)

// WithAlgebra replaces the geometry primitives the engine delegates to.
func WithAlgebra(a algebra.Algebra) Option {
	return func(e *Engine) { e.alg = a }
}

// WithLogger sets the logger used for per-operation debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithIDGenerator makes the engine assign IDs to the features it returns.
// By default returned features have no ID.
func WithIDGenerator(f func() any) Option {
	return func(e *Engine) { e.newID = f }
}

// New returns an Engine backed by algebra.Planar.
func New(opts ...Option) *Engine {
	e := &Engine{
		alg: algebra.Planar{},
		log: logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) trace(op, crs string, fields logrus.Fields) {
	e.log.WithFields(logrus.Fields{"op": op, "crs": crs}).WithFields(fields).Debug("geometry operation")
}
