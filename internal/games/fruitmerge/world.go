package fruitmerge

import (
	"github.com/vovakirdan/tui-fruitmerge/internal/core"
)

// FruitID identifies a fruit for its whole lifetime. IDs are never reused
// by a world, so a held ID can never alias a different fruit.
type FruitID uint64

// Fruit is a live piece in the container.
type Fruit struct {
	ID   FruitID
	Pos  core.Vec
	Vel  core.Vec
	Type int

	// Landed is set once the fruit has touched the floor or another fruit.
	// Only landed fruits can end the game.
	Landed bool
}

// Physics holds the per-tick integration constants.
type Physics struct {
	Gravity     float64
	Friction    float64
	Restitution float64
}

// Bounds is the container size in world units. The origin is the top-left
// corner and y grows downward.
type Bounds struct {
	Width  float64
	Height float64
}

// World owns the live fruit collection.
type World struct {
	catalog *Catalog
	fruits  []Fruit
	nextID  FruitID
}

// NewWorld creates an empty world for the given catalog.
func NewWorld(cat *Catalog) *World {
	return &World{
		catalog: cat,
		fruits:  make([]Fruit, 0, 64),
		nextID:  1,
	}
}

// Spawn appends a resting fruit and returns its ID.
func (w *World) Spawn(pos core.Vec, typ int) FruitID {
	id := w.nextID
	w.nextID++
	w.fruits = append(w.fruits, Fruit{ID: id, Pos: pos, Type: typ})
	return id
}

// Add appends a fully specified fruit, assigning it a fresh ID.
func (w *World) Add(f Fruit) FruitID {
	f.ID = w.nextID
	w.nextID++
	w.fruits = append(w.fruits, f)
	return f.ID
}

// Fruits returns the live collection in order. Callers must treat it as
// read-only; it is invalidated by the next tick.
func (w *World) Fruits() []Fruit {
	return w.fruits
}

// Len returns the number of live fruits.
func (w *World) Len() int {
	return len(w.fruits)
}

// Find looks up a fruit by ID.
func (w *World) Find(id FruitID) (Fruit, bool) {
	for _, f := range w.fruits {
		if f.ID == id {
			return f, true
		}
	}
	return Fruit{}, false
}

// Clear removes every fruit. IDs keep counting up.
func (w *World) Clear() {
	w.fruits = w.fruits[:0]
}

// remove drops the given IDs in a single filtering pass, preserving the
// order of the survivors.
func (w *World) remove(ids ...FruitID) {
	kept := w.fruits[:0]
	for _, f := range w.fruits {
		if !containsID(ids, f.ID) {
			kept = append(kept, f)
		}
	}
	for i := len(kept); i < len(w.fruits); i++ {
		w.fruits[i] = Fruit{}
	}
	w.fruits = kept
}

func containsID(ids []FruitID, id FruitID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// Advance integrates every fruit in the world by one tick.
func (w *World) Advance(p Physics, b Bounds) {
	Advance(w.fruits, w.catalog, p, b)
}

// Advance applies gravity, explicit Euler integration and the wall and
// floor constraints to each fruit in place. Fruits are independent here;
// contacts between them are handled by the collision pass.
func Advance(fruits []Fruit, cat *Catalog, p Physics, b Bounds) {
	for i := range fruits {
		f := &fruits[i]
		r := cat.Radius(f.Type)

		f.Vel.Y += p.Gravity
		f.Pos = f.Pos.Add(f.Vel)

		if f.Pos.X-r < 0 {
			f.Pos.X = r
			f.Vel.X = -f.Vel.X * p.Restitution
		}
		if f.Pos.X+r > b.Width {
			f.Pos.X = b.Width - r
			f.Vel.X = -f.Vel.X * p.Restitution
		}

		// Friction only acts while the fruit rests on the floor.
		if f.Pos.Y+r > b.Height {
			f.Pos.Y = b.Height - r
			f.Vel.Y = -f.Vel.Y * p.Restitution
			f.Vel.X *= p.Friction
			f.Landed = true
		}
	}
}
