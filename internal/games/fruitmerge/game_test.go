package fruitmerge

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-fruitmerge/internal/config"
	"github.com/vovakirdan/tui-fruitmerge/internal/core"
	"github.com/vovakirdan/tui-fruitmerge/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func startedGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(testRuntime(seed))
	g.Step(frame(core.ActionConfirm))
	if !g.State().Started {
		t.Fatal("game did not start")
	}
	return g
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 1200)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 0:
			inputs[i].Set(core.ActionConfirm)
		case i%40 == 0:
			inputs[i].Set(core.ActionDrop)
		case i%40 < 6 && (i/40)%2 == 0:
			inputs[i].Set(core.ActionLeft)
		case i%40 < 6:
			inputs[i].Set(core.ActionRight)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(testRuntime(12345))
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if len(snap1.Fruits) == 0 {
		t.Error("expected fruits in the container")
	}
}

func TestGameResetShowsMenu(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	st := g.State()
	if st.Started || st.GameOver || st.Score != 0 {
		t.Errorf("unexpected state after reset: %+v", st)
	}

	// Menu ignores drops other than as a start key, and does not tick
	g.Step(frame(core.ActionLeft))
	if g.Session().Ticks() != 0 {
		t.Error("menu should not advance the simulation")
	}
}

func TestGameStartWithDropKey(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.Step(frame(core.ActionDrop))

	if g.Session().State() != StatePlaying {
		t.Fatalf("state = %v, want playing", g.Session().State())
	}
	// The start key press must not also release a piece
	if g.Session().World().Len() != 0 {
		t.Error("starting should not drop a fruit")
	}
}

func TestGameDropAndRestart(t *testing.T) {
	g := startedGame(t, 5)

	g.Step(frame(core.ActionDrop))
	if g.Session().World().Len() != 1 {
		t.Fatalf("fruits = %d, want 1", g.Session().World().Len())
	}

	g.Step(frame(core.ActionRestart))
	if g.Session().World().Len() != 0 {
		t.Error("restart should clear the container")
	}
	if g.Session().Generation() != 2 {
		t.Errorf("Generation = %d, want 2", g.Session().Generation())
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	g := startedGame(t, 5)
	g.Session().World().Add(Fruit{Pos: core.V(200, 60), Type: 0, Landed: true})
	g.Step(core.NewInputFrame())

	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	g.Step(frame(core.ActionRestart))
	st := g.State()
	if st.GameOver || !st.Started || st.Score != 0 {
		t.Errorf("unexpected state after restart: %+v", st)
	}
}

func TestGamePause(t *testing.T) {
	g := startedGame(t, 5)
	g.Step(frame(core.ActionDrop))

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionDrop, core.ActionLeft))
	}
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("simulation advanced while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestGamePointerAim(t *testing.T) {
	g := startedGame(t, 5)

	in := core.NewInputFrame()
	in.Point(g.layout.OriginX + 10)
	g.Step(in)

	want := 10.5 * g.layout.ColUnits
	if got := g.Session().DropX(); got != want {
		t.Errorf("DropX = %f, want %f", got, want)
	}

	// Pointer far outside the container clamps to the margin
	in.Point(0)
	g.Step(in)
	if got := g.Session().DropX(); got != 30 {
		t.Errorf("DropX = %f, want 30", got)
	}
}

func TestGameTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, TickRate: 60, Seed: 1})
	g.Step(frame(core.ActionConfirm))

	if g.State().Started {
		t.Error("game should not start while the window is too small")
	}

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected too-small message, got:\n%s", screen.String())
	}

	// Growing the window keeps the session and unblocks input
	g.Resize(80, 24)
	g.Step(frame(core.ActionConfirm))
	if !g.State().Started {
		t.Error("game should start after resize")
	}
}

func TestGameResizeKeepsSession(t *testing.T) {
	g := startedGame(t, 5)
	g.Step(frame(core.ActionDrop))
	session := g.Session()

	g.Resize(120, 40)
	if g.Session() != session || session.World().Len() != 1 {
		t.Error("resize should not reset the session")
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Press ENTER") {
		t.Errorf("menu overlay missing:\n%s", screen.String())
	}

	g.Step(frame(core.ActionConfirm))
	g.Step(frame(core.ActionDrop))
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 0", "Next:", "╌", "└", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Press ENTER") {
		t.Error("menu overlay should be gone while playing")
	}
}

func TestGameRenderGameOver(t *testing.T) {
	g := startedGame(t, 5)
	g.Session().World().Add(Fruit{Pos: core.V(200, 60), Type: 0, Landed: true})
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Final Score: 0") {
		t.Errorf("game over overlay missing:\n%s", out)
	}
}

func TestRenderFruitColors(t *testing.T) {
	g := startedGame(t, 5)
	cat := g.Session().Catalog()
	g.Session().World().Spawn(core.V(200, 400), 3)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	col, row := g.layout.Cell(200, 400)
	cell := screen.GetCell(col, row)
	if cell.Rune != cat.Def(3).Glyph {
		t.Errorf("center cell = %q, want glyph %q", cell.Rune, cat.Def(3).Glyph)
	}

	side := screen.GetCell(col+1, row)
	if side.Rune != '█' || side.Color != cat.Def(3).Color {
		t.Errorf("body cell = %+v, want colored fill", side)
	}
}

func TestSpriteRegistryFallback(t *testing.T) {
	reg := newSpriteRegistry(defaultCatalog(t))

	if _, ok := reg.lookup(99).(discSprite); !ok {
		t.Error("unknown tier should use the fallback sprite")
	}
	if _, ok := reg.lookup(10).(stripedSprite); !ok {
		t.Error("watermelon should be striped")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l, tooSmall := computeLayout(80, 24, testBounds)
	if tooSmall {
		t.Fatal("80x24 should fit")
	}
	if l.RowUnits != 2*l.ColUnits {
		t.Errorf("row units %f should be twice col units %f", l.RowUnits, l.ColUnits)
	}

	for col := l.OriginX; col < l.OriginX+l.Cols; col++ {
		x := l.worldX(col)
		if got, _ := l.Cell(x, 0); got != col {
			t.Errorf("col %d -> x %f -> col %d", col, x, got)
		}
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{config.VariantClassic, config.VariantMini} {
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
		}
	}

	g, err := registry.Create(config.VariantMini)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	g.Reset(testRuntime(1))

	mini := g.(*Game)
	if w := mini.Session().Settings().Bounds.Width; w != 300 {
		t.Errorf("mini width = %f, want 300", w)
	}
	if n := mini.Session().Catalog().Len(); n != 9 {
		t.Errorf("mini catalog = %d tiers, want 9", n)
	}
	if mini.Title() == New().Title() {
		t.Error("variants should have distinct titles")
	}
}

func TestDifficultyPreset(t *testing.T) {
	SetDifficultyPreset(config.DifficultyEasy)
	defer SetDifficultyPreset(config.DifficultyNormal)

	g := New()
	g.Reset(testRuntime(1))

	s := g.Session().Settings()
	if !approx(s.DangerY, 60) {
		t.Errorf("easy DangerY = %f, want 60", s.DangerY)
	}
	if s.CooldownTicks != 42 {
		t.Errorf("easy cooldown = %d ticks, want 42", s.CooldownTicks)
	}
}

func TestInstanceDifficultyOverridesDefault(t *testing.T) {
	g := New()
	g.SetDifficulty(config.DifficultyHard)
	g.Reset(testRuntime(1))

	if got := g.Session().Settings().CooldownTicks; got != 78 {
		t.Errorf("hard cooldown = %d ticks, want 78", got)
	}

	other := New()
	other.Reset(testRuntime(1))
	if got := other.Session().Settings().CooldownTicks; got != 60 {
		t.Errorf("default cooldown = %d ticks, want 60", got)
	}
}
