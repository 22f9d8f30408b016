package fruitmerge

import (
	"github.com/vovakirdan/tui-fruitmerge/internal/core"
)

// contactEpsilon is the distance below which two centers are treated as
// coincident and separated along a fixed axis.
const contactEpsilon = 1e-9

// separationAxis is used when the contact normal is undefined.
// The later fruit is pushed down, the earlier one up.
var separationAxis = core.V(0, 1)

// MergeEvent describes one fusion of two equal-tier fruits.
type MergeEvent struct {
	Consumed [2]FruitID
	Created  FruitID
	Type     int // Tier of the created fruit
	Pos      core.Vec
	Points   int
}

// CheckCollision reports whether two fruits overlap.
func CheckCollision(a, b Fruit, cat *Catalog) bool {
	return a.Pos.Dist(b.Pos) < cat.Radius(a.Type)+cat.Radius(b.Type)
}

// Resolve scans pairs in index order and handles contacts. Non-mergeable
// overlapping pairs are separated and bounced. The first mergeable pair
// found is fused and the scan stops, so at most one merge happens per call.
func (w *World) Resolve(restitution float64) *MergeEvent {
	for i := 0; i < len(w.fruits); i++ {
		for j := i + 1; j < len(w.fruits); j++ {
			a, b := &w.fruits[i], &w.fruits[j]
			ra, rb := w.catalog.Radius(a.Type), w.catalog.Radius(b.Type)

			delta := b.Pos.Sub(a.Pos)
			dist := delta.Len()
			minDist := ra + rb
			if dist >= minDist {
				continue
			}

			if a.Type == b.Type && w.catalog.CanMerge(a.Type) {
				ev := w.merge(i, j)
				return &ev
			}

			bounce(a, b, delta, dist, minDist, restitution)
		}
	}
	return nil
}

// merge replaces fruits i and j with one fruit of the next tier at their
// midpoint. Both parents are removed by ID in a single pass.
func (w *World) merge(i, j int) MergeEvent {
	a, b := w.fruits[i], w.fruits[j]
	next := a.Type + 1
	pos := a.Pos.Mid(b.Pos)

	w.remove(a.ID, b.ID)
	id := w.Add(Fruit{Pos: pos, Type: next, Landed: true})

	return MergeEvent{
		Consumed: [2]FruitID{a.ID, b.ID},
		Created:  id,
		Type:     next,
		Pos:      pos,
		Points:   w.catalog.Def(next).Points,
	}
}

// bounce pushes two overlapping fruits apart symmetrically and, when they
// are approaching, exchanges a restitution-scaled impulse along the normal.
func bounce(a, b *Fruit, delta core.Vec, dist, minDist, restitution float64) {
	n := separationAxis
	if dist > contactEpsilon {
		n = delta.Scale(1 / dist)
	}

	push := n.Scale((minDist - dist) * 0.5)
	a.Pos = a.Pos.Sub(push)
	b.Pos = b.Pos.Add(push)
	a.Landed = true
	b.Landed = true

	speed := b.Vel.Sub(a.Vel).Dot(n)
	if speed > 0 {
		return // Already separating
	}
	impulse := n.Scale(speed * restitution)
	a.Vel = a.Vel.Add(impulse)
	b.Vel = b.Vel.Sub(impulse)
}
