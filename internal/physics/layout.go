package physics

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/mayhem/internal/geom"
)

// Layout is the immutable collider list of a stage. Colliders are stored in
// one backing slice partitioned into contiguous ranges per kind, in Kinds
// order: walls, then boosts, then friction tiles, then hazards. Within a
// range the input order is preserved; for walls it decides which collision
// wins a tick.
//
// A Layout is read-only after construction and may be shared by any number
// of stages, including across goroutines.
type Layout struct {
	colliders []Collider
	starts    [numKinds + 1]int
	bounds    geom.AABB
}

// NewLayout validates colliders and partitions them by kind with a stable
// sort. The input slice is not retained.
func NewLayout(colliders []Collider) (*Layout, error) {
	for i, c := range colliders {
		if !c.Kind.Valid() {
			return nil, fmt.Errorf("collider %d: %w: %d", i, ErrUnknownKind, int(c.Kind))
		}
		if !c.Box.Valid() {
			return nil, fmt.Errorf("collider %d (%s %v): %w", i, c.Kind, c.Box, ErrDegenerateCollider)
		}
	}

	sorted := slices.Clone(colliders)
	slices.SortStableFunc(sorted, func(a, b Collider) int {
		return int(a.Kind) - int(b.Kind)
	})

	l := &Layout{colliders: sorted}
	idx := 0
	for k := range numKinds {
		l.starts[k] = idx
		for idx < len(sorted) && int(sorted[idx].Kind) == k {
			idx++
		}
	}
	l.starts[numKinds] = len(sorted)

	for i, c := range sorted {
		if i == 0 {
			l.bounds = c.Box
			continue
		}
		l.bounds = l.bounds.Union(c.Box)
	}
	return l, nil
}

// Len returns the total number of colliders.
func (l *Layout) Len() int {
	return len(l.colliders)
}

// Range returns the half-open index range [start, end) holding kind k.
func (l *Layout) Range(k Kind) (start, end int) {
	return l.starts[k], l.starts[k+1]
}

// Count returns the number of colliders of kind k.
func (l *Layout) Count(k Kind) int {
	start, end := l.Range(k)
	return end - start
}

// Of returns the colliders of kind k in scan order. The slice aliases the
// layout's storage and must not be modified.
func (l *Layout) Of(k Kind) []Collider {
	start, end := l.Range(k)
	return l.colliders[start:end:end]
}

// All returns every collider in scan order. The slice must not be modified.
func (l *Layout) All() []Collider {
	return l.colliders[:len(l.colliders):len(l.colliders)]
}

// At returns the collider at index i of the backing sequence.
func (l *Layout) At(i int) Collider {
	return l.colliders[i]
}

// Bounds returns the smallest box containing every collider. It is the zero
// AABB for an empty layout.
func (l *Layout) Bounds() geom.AABB {
	return l.bounds
}
