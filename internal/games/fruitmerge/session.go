package fruitmerge

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-fruitmerge/internal/config"
	"github.com/vovakirdan/tui-fruitmerge/internal/core"
)

// State is the session lifecycle phase.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Settings are the resolved, tick-based rules for one session.
type Settings struct {
	Physics       Physics
	Bounds        Bounds
	DangerY       float64
	SpawnY        float64
	CooldownTicks uint64
	SpawnTiers    int
	DropStep      float64
	DropMargin    float64
}

// SettingsFromConfig converts file configuration into tick-based settings.
// The cooldown is rounded up to whole ticks and is never shorter than one.
func SettingsFromConfig(cfg config.FruitMergeConfig, tickRate int) Settings {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := uint64(math.Ceil(float64(cfg.Drop.CooldownMS) * float64(tickRate) / 1000))
	if ticks == 0 {
		ticks = 1
	}
	return Settings{
		Physics: Physics{
			Gravity:     cfg.Physics.Gravity,
			Friction:    cfg.Physics.Friction,
			Restitution: cfg.Physics.Restitution,
		},
		Bounds:        Bounds{Width: cfg.Container.Width, Height: cfg.Container.Height},
		DangerY:       cfg.Container.DangerY(),
		SpawnY:        cfg.Container.SpawnY,
		CooldownTicks: ticks,
		SpawnTiers:    cfg.Drop.SpawnTiers,
		DropStep:      cfg.Drop.Step,
		DropMargin:    cfg.Drop.Margin,
	}
}

// Session is one player's game: the world plus score, pending piece,
// drop cursor and lifecycle. It is not safe for concurrent use; the
// platform loop serializes every call.
type Session struct {
	settings Settings
	catalog  *Catalog
	world    *World
	rng      *rand.Rand

	state       State
	score       int
	maxTier     int
	pendingType int
	dropX       float64

	tick          uint64
	cooldownUntil uint64
	generation    uint64
	drops         int
	merges        int
}

// NewSession creates a session in the Menu state.
func NewSession(cat *Catalog, settings Settings, seed int64) *Session {
	s := &Session{
		settings: settings,
		catalog:  cat,
		world:    NewWorld(cat),
		rng:      rand.New(rand.NewSource(seed)),
		state:    StateMenu,
	}
	s.dropX = settings.Bounds.Width / 2
	s.pendingType = s.drawPending()
	return s
}

// Start moves Menu → Playing. Returns false if the state does not allow it.
func (s *Session) Start() bool {
	if s.state != StateMenu {
		return false
	}
	s.begin()
	return true
}

// Restart moves GameOver or Playing → Playing with a fresh run.
func (s *Session) Restart() bool {
	if s.state == StateMenu {
		return false
	}
	s.begin()
	return true
}

// begin is the single transition into Playing. Everything a run owns is
// reset here and the generation moves on.
func (s *Session) begin() {
	s.world.Clear()
	s.score = 0
	s.maxTier = 0
	s.drops = 0
	s.merges = 0
	s.cooldownUntil = s.tick
	s.dropX = s.settings.Bounds.Width / 2
	s.pendingType = s.drawPending()
	s.generation++
	s.state = StatePlaying
}

func (s *Session) drawPending() int {
	n := core.Min(s.settings.SpawnTiers, s.catalog.Len())
	if n <= 0 {
		n = 1
	}
	return s.rng.Intn(n)
}

// CanDrop reports whether a drop would be accepted now.
func (s *Session) CanDrop() bool {
	return s.state == StatePlaying && s.tick >= s.cooldownUntil
}

// Drop releases the pending piece at the current drop position.
func (s *Session) Drop() bool {
	if !s.CanDrop() {
		return false
	}

	r := s.catalog.Radius(s.pendingType)
	x := core.ClampF(s.dropX, r, s.settings.Bounds.Width-r)
	s.world.Spawn(core.V(x, s.settings.SpawnY), s.pendingType)

	s.drops++
	s.pendingType = s.drawPending()
	s.cooldownUntil = s.tick + s.settings.CooldownTicks
	return true
}

// MoveDrop nudges the drop cursor by dir steps (negative is left).
func (s *Session) MoveDrop(dir int) {
	s.SetDrop(s.dropX + float64(dir)*s.settings.DropStep)
}

// SetDrop places the drop cursor, keeping it clear of the walls.
func (s *Session) SetDrop(x float64) {
	lo := s.settings.DropMargin
	hi := s.settings.Bounds.Width - s.settings.DropMargin
	if lo > hi {
		lo, hi = s.settings.Bounds.Width/2, s.settings.Bounds.Width/2
	}
	s.dropX = core.ClampF(x, lo, hi)
}

// Tick advances the simulation one fixed step. Outside Playing it does
// nothing. It returns the merge that happened this tick, if any.
func (s *Session) Tick() *MergeEvent {
	if s.state != StatePlaying {
		return nil
	}
	s.tick++

	s.world.Advance(s.settings.Physics, s.settings.Bounds)
	ev := s.world.Resolve(s.settings.Physics.Restitution)
	if ev != nil {
		s.AddScore(ev.Points)
		s.merges++
		if ev.Type > s.maxTier {
			s.maxTier = ev.Type
		}
	}

	s.CheckTerminal()
	return ev
}

// CheckTerminal ends the run if any landed fruit is over the danger line.
func (s *Session) CheckTerminal() bool {
	if s.state != StatePlaying {
		return s.state == StateGameOver
	}
	for _, f := range s.world.Fruits() {
		if f.Landed && s.IsDangerLineViolated(f) {
			s.state = StateGameOver
			return true
		}
	}
	return false
}

// IsDangerLineViolated reports whether the fruit's top edge is above the
// danger line while it is not moving upward.
func (s *Session) IsDangerLineViolated(f Fruit) bool {
	top := f.Pos.Y - s.catalog.Radius(f.Type)
	return top < s.settings.DangerY && f.Vel.Y >= 0
}

// AddScore adds merge points. Negative amounts are ignored so the score
// never decreases during a run.
func (s *Session) AddScore(points int) {
	if points > 0 {
		s.score += points
	}
}

// State returns the lifecycle phase.
func (s *Session) State() State { return s.state }

// Score returns the current run's score.
func (s *Session) Score() int { return s.score }

// MaxTier returns the largest tier formed by a merge this run.
func (s *Session) MaxTier() int { return s.maxTier }

func (s *Session) PendingType() int { return s.pendingType }
func (s *Session) DropX() float64 { return s.dropX }
func (s *Session) Ticks() uint64 { return s.tick }
func (s *Session) Generation() uint64 { return s.generation }
func (s *Session) World() *World { return s.world }
func (s *Session) Catalog() *Catalog { return s.catalog }
func (s *Session) Settings() Settings { return s.settings }
func (s *Session) Drops() int { return s.drops }
func (s *Session) Merges() int { return s.merges }

// CooldownLeft returns the ticks remaining before the next drop is allowed.
func (s *Session) CooldownLeft() uint64 {
	return s.cooldownUntil - min(s.cooldownUntil, s.tick)
}
