package newton

import (
	"errors"
	"fmt"

	"github.com/gogpu/newton/gpucore"
)

// Event application errors.
var (
	// ErrTooManyRoots is returned when AddRoot would exceed the fixed
	// ABI capacity (gpucore.MaxRoots - 1 roots).
	ErrTooManyRoots = errors.New("newton: too many roots")

	// ErrRootIndexOutOfRange is returned by index-addressed events whose
	// index is not a current root.
	ErrRootIndexOutOfRange = errors.New("newton: root index out of range")
)

// ConfigChangeEvent is a discrete mutation of a Config. Events arrive one at
// a time from the UI layer and each is independently valid to apply; there
// is no batching.
//
// The interface is sealed: the variants below are the complete protocol.
type ConfigChangeEvent interface {
	isConfigChange()
}

// SetIterations replaces the Newton iteration count.
type SetIterations struct {
	Count uint32
}

// AddRoot appends a default root (origin, opaque black) at the end.
type AddRoot struct{}

// RemoveRoot deletes the root at Index; all higher indices shift down by
// one, so stale indices held elsewhere must be re-resolved.
type RemoveRoot struct {
	Index int
}

// SetRootPosition replaces the position of the root at Index.
type SetRootPosition struct {
	Index    int
	Position Complex
}

// SetRootColor replaces the basin color of the root at Index.
type SetRootColor struct {
	Index int
	Color RGBA
}

// SetCameraPosition replaces the camera position.
type SetCameraPosition struct {
	Position Complex
}

// SetCameraZoom replaces the camera zoom factor.
type SetCameraZoom struct {
	Zoom float64
}

func (SetIterations) isConfigChange()     {}
func (AddRoot) isConfigChange()           {}
func (RemoveRoot) isConfigChange()        {}
func (SetRootPosition) isConfigChange()   {}
func (SetRootColor) isConfigChange()      {}
func (SetCameraPosition) isConfigChange() {}
func (SetCameraZoom) isConfigChange()     {}

// Apply performs one atomic state transition. Validation happens before any
// mutation: on error the Config is unchanged.
//
// All invalid events are rejected uniformly with an error — an out-of-range
// index on RemoveRoot, SetRootPosition, or SetRootColor returns
// ErrRootIndexOutOfRange, and AddRoot at capacity returns ErrTooManyRoots.
func (c *Config) Apply(ev ConfigChangeEvent) error {
	switch e := ev.(type) {
	case SetIterations:
		c.Iterations = e.Count

	case AddRoot:
		if !c.canAddRoot() {
			return fmt.Errorf("%w: at most %d", ErrTooManyRoots, gpucore.MaxRoots-1)
		}
		c.Roots = append(c.Roots, DefaultRoot())

	case RemoveRoot:
		if e.Index < 0 || e.Index >= len(c.Roots) {
			return fmt.Errorf("%w: remove %d of %d", ErrRootIndexOutOfRange, e.Index, len(c.Roots))
		}
		c.Roots = append(c.Roots[:e.Index], c.Roots[e.Index+1:]...)

	case SetRootPosition:
		if e.Index < 0 || e.Index >= len(c.Roots) {
			return fmt.Errorf("%w: position %d of %d", ErrRootIndexOutOfRange, e.Index, len(c.Roots))
		}
		c.Roots[e.Index].Position = e.Position

	case SetRootColor:
		if e.Index < 0 || e.Index >= len(c.Roots) {
			return fmt.Errorf("%w: color %d of %d", ErrRootIndexOutOfRange, e.Index, len(c.Roots))
		}
		c.Roots[e.Index].Color = e.Color

	case SetCameraPosition:
		c.Camera.Position = e.Position

	case SetCameraZoom:
		c.Camera.Zoom = e.Zoom

	default:
		return fmt.Errorf("newton: unknown config change event %T", ev)
	}
	return nil
}
