// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	ls "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// builder places components and wires in a new chip and keeps the first
// error.
type builder struct {
	c   *ls.Chip
	err error
}

func newBuilder(name string) *builder {
	return &builder{c: ls.NewChip(name)}
}

func (b *builder) add(cs ...*ls.Component) {
	for _, cc := range cs {
		if b.err != nil {
			return
		}
		if _, err := b.c.PushComponent(cc); err != nil {
			b.err = errors.Wrapf(err, "%s: %v at %v", b.c.Name(), cc.Kind(), cc.Position())
		}
	}
}

// wire draws a polyline through pts.
func (b *builder) wire(pts ...ls.Point) {
	for i := 1; i < len(pts) && b.err == nil; i++ {
		if _, err := b.c.PushWire(ls.NewWire(pts[i-1], pts[i])); err != nil {
			b.err = errors.Wrapf(err, "%s: wire %v-%v", b.c.Name(), pts[i-1], pts[i])
		}
	}
}

func (b *builder) chip() (*ls.Chip, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.c, nil
}
