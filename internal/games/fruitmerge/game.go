// Package fruitmerge implements the fruit merge puzzle: pieces fall into a
// container, equal pieces fuse into the next tier, and a run ends when the
// pile reaches the danger line.
package fruitmerge

import (
	"fmt"

	"github.com/vovakirdan/tui-fruitmerge/internal/config"
	"github.com/vovakirdan/tui-fruitmerge/internal/core"
	"github.com/vovakirdan/tui-fruitmerge/internal/registry"
)

// Package-level variables for CLI options. They are read on Reset.
var (
	configPath       string
	difficultyPreset = config.DifficultyNormal
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty applied on top of the loaded config.
func SetDifficultyPreset(p config.DifficultyPreset) {
	difficultyPreset = p
}

// Game adapts a Session to the registry.Game interface.
type Game struct {
	variant    string
	title      string
	difficulty config.DifficultyPreset // Overrides the package default when set

	cfg     config.FruitMergeConfig
	session *Session
	sprites *spriteRegistry
	layout  Layout

	tickRate int
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
	flashes  []flash
}

// flash is a short-lived "+points" label shown where a merge happened.
type flash struct {
	pos    core.Vec
	points int
	ttl    int
}

// New creates the classic variant.
func New() *Game {
	return &Game{variant: config.VariantClassic, title: "Fruit Merge"}
}

// NewMini creates the compact variant.
func NewMini() *Game {
	return &Game{variant: config.VariantMini, title: "Fruit Merge (Mini)"}
}

func init() {
	registry.Register(config.VariantClassic, func() registry.Game {
		return New()
	})
	registry.Register(config.VariantMini, func() registry.Game {
		return NewMini()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// SetDifficulty selects the preset applied on the next Reset.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	g.difficulty = p
}

// Reset loads configuration and puts a fresh session on its title card.
// An unusable config file falls back to the built-in defaults; the CLI
// validates --config before a program is started.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.Load(g.variant, configPath)
	if err != nil {
		cfg, _ = config.Load(g.variant, "")
	}
	preset := g.difficulty
	if preset == "" {
		preset = difficultyPreset
	}
	config.ApplyPreset(&cfg, preset)

	cat, err := CatalogFromConfig(cfg.Fruits)
	if err != nil {
		cfg = config.DefaultFruitMergeConfig()
		cat, _ = CatalogFromConfig(cfg.Fruits)
	}

	g.cfg = cfg
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.session = NewSession(cat, SettingsFromConfig(cfg, g.tickRate), rc.Seed)
	g.sprites = newSpriteRegistry(cat)
	g.paused = false
	g.flashes = nil
	g.Resize(rc.ScreenW, rc.ScreenH)
}

// Resize recomputes the world-to-screen mapping. The session is untouched.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.layout, g.tooSmall = computeLayout(width, height, g.session.Settings().Bounds)
}

// Session exposes the underlying session, mainly for tests.
func (g *Game) Session() *Session {
	return g.session
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch g.session.State() {
	case StateMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionDrop) {
			g.session.Start()
		}

	case StateGameOver:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.restart()
		}

	case StatePlaying:
		if in.Has(core.ActionRestart) {
			g.restart()
			break
		}
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if g.paused {
			break
		}
		g.play(in)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) restart() {
	g.session.Restart()
	g.paused = false
	g.flashes = g.flashes[:0]
}

// play applies drop input and runs one simulation tick.
func (g *Game) play(in core.InputFrame) {
	if in.HasPointer {
		g.session.SetDrop(g.layout.worldX(in.PointerCol))
	}
	if in.Has(core.ActionLeft) {
		g.session.MoveDrop(-1)
	}
	if in.Has(core.ActionRight) {
		g.session.MoveDrop(1)
	}
	if in.Has(core.ActionDrop) {
		g.session.Drop()
	}

	g.ageFlashes()
	if ev := g.session.Tick(); ev != nil {
		g.flashes = append(g.flashes, flash{pos: ev.Pos, points: ev.Points, ttl: g.tickRate / 2})
	}
}

func (g *Game) ageFlashes() {
	kept := g.flashes[:0]
	for _, f := range g.flashes {
		f.ttl--
		if f.ttl > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	return core.GameState{
		Score:    g.session.Score(),
		MaxTier:  g.session.MaxTier(),
		Started:  st != StateMenu,
		GameOver: st == StateGameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the session snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot()
}

// TierName returns the display name of a catalog tier. It works before
// Reset by reading the variant's configuration.
func (g *Game) TierName(tier int) string {
	if g.session != nil {
		return g.session.Catalog().Def(tier).Name
	}
	cfg, err := config.Load(g.variant, configPath)
	if err != nil || len(cfg.Fruits) == 0 {
		return fmt.Sprintf("tier %d", tier+1)
	}
	return cfg.Fruits[core.Clamp(tier, 0, len(cfg.Fruits)-1)].Name
}
