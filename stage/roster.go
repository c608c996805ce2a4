package stage

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by Add when the id is already taken
var ErrDuplicateID = errors.New("duplicate dancer id")

// Dancer is a circular, independently draggable entity on the stage
type Dancer struct {
	ID     string
	X, Y   float64
	Radius float64
}

// Center returns the dancer's position as a Point
func (d *Dancer) Center() Point {
	return Point{X: d.X, Y: d.Y}
}

// Roster is the id-to-dancer store
// Insertion order is preserved and doubles as draw order (later = on top).
// Single-writer: mutated only on the event loop, no internal locking
type Roster struct {
	dancers map[string]*Dancer
	order   []string
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{
		dancers: make(map[string]*Dancer),
		order:   make([]string, 0, 8),
	}
}

// Add inserts a dancer, rejecting duplicate ids
func (r *Roster) Add(d *Dancer) error {
	if d.ID == "" {
		return errors.New("empty dancer id")
	}
	if _, exists := r.dancers[d.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
	}
	r.dancers[d.ID] = d
	r.order = append(r.order, d.ID)
	return nil
}

// Remove deletes a dancer by id, reporting whether it existed
func (r *Roster) Remove(id string) bool {
	if _, exists := r.dancers[id]; !exists {
		return false
	}
	delete(r.dancers, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the dancer with the given id
func (r *Roster) Get(id string) (*Dancer, bool) {
	d, ok := r.dancers[id]
	return d, ok
}

// Len returns the number of dancers
func (r *Roster) Len() int {
	return len(r.order)
}

// All returns dancers in insertion order
// The returned slice is freshly allocated; the dancers are shared
func (r *Roster) All() []*Dancer {
	out := make([]*Dancer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.dancers[id])
	}
	return out
}

// Index returns the insertion index of id, or -1
// Stable across position updates; used for palette assignment
func (r *Roster) Index(id string) int {
	for i, oid := range r.order {
		if oid == id {
			return i
		}
	}
	return -1
}

// HitTest returns the topmost dancer whose circle covers p
// Topmost means last in draw order, so iteration runs back to front
func (r *Roster) HitTest(p Point) (string, bool) {
	for i := len(r.order) - 1; i >= 0; i-- {
		d := r.dancers[r.order[i]]
		dx := p.X - d.X
		dy := p.Y - d.Y
		if dx*dx+dy*dy <= d.Radius*d.Radius {
			return d.ID, true
		}
	}
	return "", false
}
