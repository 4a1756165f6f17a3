package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-gems/internal/core"
)

type stubGame struct {
	id, title string
}

func (s *stubGame) ID() string                           { return s.id }
func (s *stubGame) Title() string                        { return s.title }
func (s *stubGame) Reset(core.RuntimeConfig)             {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen)                  {}
func (s *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b", title: "Stub B"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a", title: "Stub A"} })

	if !Exists("zz_stub_a") {
		t.Fatal("Exists(zz_stub_a) = false")
	}

	var got []GameInfo
	for _, info := range List() {
		if info.ID == "zz_stub_a" || info.ID == "zz_stub_b" {
			got = append(got, info)
		}
	}
	want := []GameInfo{{"zz_stub_a", "Stub A"}, {"zz_stub_b", "Stub B"}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("List() = %v, want %v", got, want)
	}

	g, err := Create("zz_stub_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Stub B" {
		t.Errorf("Title() = %q, want %q", g.Title(), "Stub B")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_game")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, want ErrUnknownGame", err)
	}
	if Exists("no_such_game") {
		t.Error("Exists(no_such_game) = true")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_stub_dup", func() Game { return &stubGame{id: "zz_stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("zz_stub_dup", func() Game { return &stubGame{id: "zz_stub_dup"} })
}
