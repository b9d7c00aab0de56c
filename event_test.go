package newton

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/newton/gpucore"
)

func TestApplySetIterations(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Apply(SetIterations{Count: 100}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if cfg.Iterations != 100 {
		t.Errorf("Iterations = %d, want 100", cfg.Iterations)
	}
}

func TestApplyAddRoot(t *testing.T) {
	cfg := DefaultConfig()
	n := len(cfg.Roots)
	if err := cfg.Apply(AddRoot{}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if len(cfg.Roots) != n+1 {
		t.Fatalf("len(Roots) = %d, want %d", len(cfg.Roots), n+1)
	}
	if got := cfg.Roots[n]; got != DefaultRoot() {
		t.Errorf("appended root = %v, want %v", got, DefaultRoot())
	}
}

func TestApplyAddRootAtCapacity(t *testing.T) {
	cfg := &Config{Iterations: 1}
	for i := 0; i < gpucore.MaxRoots-1; i++ {
		if err := cfg.Apply(AddRoot{}); err != nil {
			t.Fatalf("AddRoot %d error: %v", i, err)
		}
	}
	err := cfg.Apply(AddRoot{})
	if !errors.Is(err, ErrTooManyRoots) {
		t.Errorf("AddRoot at capacity error = %v, want ErrTooManyRoots", err)
	}
	if len(cfg.Roots) != gpucore.MaxRoots-1 {
		t.Errorf("len(Roots) = %d after rejected AddRoot, want %d", len(cfg.Roots), gpucore.MaxRoots-1)
	}
}

func TestApplyRemoveRoot(t *testing.T) {
	cfg := &Config{
		Roots: []Root{
			{Position: C(1, 0)},
			{Position: C(2, 0)},
			{Position: C(3, 0)},
		},
	}
	if err := cfg.Apply(RemoveRoot{Index: 1}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	got := cfg.RootPositions()
	want := []Complex{C(1, 0), C(3, 0)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("positions after remove = %v, want %v", got, want)
	}
}

func TestApplyAddThenRemoveLastRestores(t *testing.T) {
	cfg := DefaultConfig()
	before := cfg.Clone()
	if err := cfg.Apply(AddRoot{}); err != nil {
		t.Fatalf("AddRoot error: %v", err)
	}
	if err := cfg.Apply(RemoveRoot{Index: len(cfg.Roots) - 1}); err != nil {
		t.Fatalf("RemoveRoot error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Roots, before.Roots) {
		t.Errorf("roots = %v, want %v", cfg.Roots, before.Roots)
	}
}

func TestApplySetRootPosition(t *testing.T) {
	cfg := DefaultConfig()
	origColor := cfg.Roots[1].Color
	origOther := cfg.Roots[0]
	if err := cfg.Apply(SetRootPosition{Index: 1, Position: C(0.25, -0.75)}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if cfg.Roots[1].Position != C(0.25, -0.75) {
		t.Errorf("Roots[1].Position = %v, want (0.25, -0.75)", cfg.Roots[1].Position)
	}
	if cfg.Roots[1].Color != origColor {
		t.Errorf("Roots[1].Color changed: %v", cfg.Roots[1].Color)
	}
	if cfg.Roots[0] != origOther {
		t.Errorf("Roots[0] changed: %v", cfg.Roots[0])
	}
}

func TestApplySetRootColor(t *testing.T) {
	cfg := DefaultConfig()
	origPos := cfg.Roots[0].Position
	want := RGB(1, 0.5, 0)
	if err := cfg.Apply(SetRootColor{Index: 0, Color: want}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if cfg.Roots[0].Color != want {
		t.Errorf("Roots[0].Color = %v, want %v", cfg.Roots[0].Color, want)
	}
	if cfg.Roots[0].Position != origPos {
		t.Errorf("Roots[0].Position changed: %v", cfg.Roots[0].Position)
	}
}

func TestApplyCamera(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Apply(SetCameraPosition{Position: C(1, -1)}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if err := cfg.Apply(SetCameraZoom{Zoom: 2.5}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if cfg.Camera.Position != C(1, -1) {
		t.Errorf("Camera.Position = %v, want (1, -1)", cfg.Camera.Position)
	}
	if cfg.Camera.Zoom != 2.5 {
		t.Errorf("Camera.Zoom = %v, want 2.5", cfg.Camera.Zoom)
	}
}

func TestApplyOutOfRangeLeavesConfigUnchanged(t *testing.T) {
	events := []struct {
		name string
		ev   ConfigChangeEvent
	}{
		{"remove negative", RemoveRoot{Index: -1}},
		{"remove past end", RemoveRoot{Index: 2}},
		{"position past end", SetRootPosition{Index: 5, Position: C(1, 1)}},
		{"color negative", SetRootColor{Index: -1, Color: RGB(1, 1, 1)}},
	}
	for _, tt := range events {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			before := cfg.Clone()
			err := cfg.Apply(tt.ev)
			if !errors.Is(err, ErrRootIndexOutOfRange) {
				t.Fatalf("Apply(%T) error = %v, want ErrRootIndexOutOfRange", tt.ev, err)
			}
			if !reflect.DeepEqual(cfg.Roots, before.Roots) || cfg.Iterations != before.Iterations || cfg.Camera != before.Camera {
				t.Error("config changed after rejected event")
			}
		})
	}
}
