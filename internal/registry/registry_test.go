package registry

import (
	"testing"

	"github.com/vovakirdan/tui-fruitmerge/internal/core"
)

type stubGame struct {
	id    string
	steps int
}

func (g *stubGame) ID() string                   { return g.id }
func (g *stubGame) Title() string                { return "Stub " + g.id }
func (g *stubGame) Reset(cfg core.RuntimeConfig) { g.steps = 0 }
func (g *stubGame) Render(dst *core.Screen)      {}
func (g *stubGame) State() core.GameState        { return core.GameState{} }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should exist after Register")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("ID = %q, want stub_a", g.ID())
	}

	// Each Create returns a fresh instance
	g2, _ := Create("stub_a")
	g.Step(core.NewInputFrame())
	if g2.(*stubGame).steps != 0 {
		t.Error("instances should not share state")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist"); err == nil {
		t.Error("expected error for unknown game")
	}
	if Exists("does_not_exist") {
		t.Error("unknown game should not exist")
	}
}

func TestListSortedWithTitles(t *testing.T) {
	Register("stub_c", func() Game { return &stubGame{id: "stub_c"} })
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.Title != "Stub "+info.ID {
			t.Errorf("title for %s = %q", info.ID, info.Title)
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
