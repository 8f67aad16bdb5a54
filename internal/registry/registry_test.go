package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/multiplayer"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_solo", multiplayer.MatchModeSolo, func() Game { return &stubGame{id: "test_solo"} })

	if !Exists("test_solo") {
		t.Fatal("registered mode should exist")
	}

	g, err := Create("test_solo")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "test_solo" {
		t.Errorf("ID() = %q, expected test_solo", g.ID())
	}

	info, ok := Info("test_solo")
	if !ok || info.Title != "Stub test_solo" || info.Mode != multiplayer.MatchModeSolo {
		t.Errorf("Info() = %+v, %v", info, ok)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", multiplayer.MatchModeSolo, func() Game { return &stubGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate ID should panic")
		}
	}()
	Register("test_dup", multiplayer.MatchModeVsCPU, func() Game { return &stubGame{id: "test_dup"} })
}

func TestOnlineModes(t *testing.T) {
	RegisterOnline("test_online", "Stub Online", func([2]string, int64) (multiplayer.OnlineGame, error) {
		return nil, nil
	})

	if _, ok := Online("test_online"); !ok {
		t.Error("Online() should find the registered factory")
	}
	if _, ok := Online("test_missing"); ok {
		t.Error("Online() should not find an unregistered mode")
	}

	_, err := Create("test_online")
	if err == nil || !strings.Contains(err.Error(), "online mode") {
		t.Errorf("Create() on an online mode error = %v", err)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("test_nope"); err == nil {
		t.Error("Create() should fail for an unknown ID")
	}
	if Exists("test_nope") {
		t.Error("Exists() should be false for an unknown ID")
	}
}

func TestListSorted(t *testing.T) {
	Register("test_b", multiplayer.MatchModeSolo, func() Game { return &stubGame{id: "test_b"} })
	Register("test_a", multiplayer.MatchModeVsCPU, func() Game { return &stubGame{id: "test_a"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
