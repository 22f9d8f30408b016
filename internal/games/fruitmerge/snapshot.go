package fruitmerge

import "math"

// FruitView is a read-only copy of one fruit for presentation.
type FruitView struct {
	ID     FruitID
	X, Y   float64
	Radius float64
	Type   int
}

// Snapshot is the post-tick state handed to presentation and tests.
// It shares no memory with the session.
type Snapshot struct {
	Tick        uint64
	State       State
	Score       int
	PendingType int
	DropX       float64
	DangerY     float64
	CanDrop     bool
	Fruits      []FruitView
	MaxTier     int
	Generation  uint64
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	live := s.world.Fruits()
	views := make([]FruitView, len(live))
	for i, f := range live {
		views[i] = FruitView{
			ID:     f.ID,
			X:      f.Pos.X,
			Y:      f.Pos.Y,
			Radius: s.catalog.Radius(f.Type),
			Type:   f.Type,
		}
	}

	return Snapshot{
		Tick:        s.tick,
		State:       s.state,
		Score:       s.score,
		PendingType: s.pendingType,
		DropX:       s.dropX,
		DangerY:     s.settings.DangerY,
		CanDrop:     s.CanDrop(),
		Fruits:      views,
		MaxTier:     s.maxTier,
		Generation:  s.generation,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	var h uint64 = 17
	h = h*31 + snap.Tick
	h = h*31 + uint64(snap.State)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PendingType) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.DropX)
	h = h*31 + uint64(snap.MaxTier) //#nosec G115 -- hash computation
	h = h*31 + snap.Generation

	for _, f := range snap.Fruits {
		h = h*31 + uint64(f.ID)
		h = h*31 + math.Float64bits(f.X)
		h = h*31 + math.Float64bits(f.Y)
		h = h*31 + uint64(f.Type) //#nosec G115 -- hash computation
	}
	return h
}
