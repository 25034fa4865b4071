// Package builder turns survey points and design parameters into renderable
// scene primitives: trajectory tubes and lines, dashed design lines, roadway
// extrusions, site and fracture markers, and geologic reference planes.
//
// Every builder is a pure function of its inputs and the Builder's theme.
// Partial surveys (fewer than two points) are an expected condition while a
// hole is still being drilled and yield empty primitives, not errors.
// Non-positive sizes and non-finite numbers are rejected with typed errors.
package builder

import (
	"fmt"

	"github.com/chazu/drillscene/pkg/kernel"
	"github.com/chazu/drillscene/pkg/scene"
	"github.com/chazu/drillscene/pkg/style"
)

// InvalidRadiusError reports a non-positive sphere radius.
type InvalidRadiusError struct {
	Radius float64
}

func (e *InvalidRadiusError) Error() string {
	return fmt.Sprintf("builder: radius must be positive, got %v", e.Radius)
}

// InvalidDimensionError reports a non-positive width, height, length or
// thickness.
type InvalidDimensionError struct {
	Field string
	Value float64
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("builder: %s must be positive, got %v", e.Field, e.Value)
}

// Builder builds primitives using the materials of a theme. It holds no
// mutable state and is safe for concurrent use.
type Builder struct {
	theme style.Theme
}

// New returns a Builder for the given theme.
func New(theme style.Theme) *Builder {
	return &Builder{theme: theme}
}

// Default returns a Builder using style.DefaultTheme.
func Default() *Builder {
	return New(style.DefaultTheme())
}

// Theme returns the builder's theme.
func (b *Builder) Theme() style.Theme {
	return b.theme
}

// solid wraps a generated mesh, refusing to hand out a malformed one.
func solid(name string, m *kernel.Mesh, mat style.Material) (scene.Solid, error) {
	if err := m.Validate(); err != nil {
		return scene.Solid{}, fmt.Errorf("builder: %s: %w", name, err)
	}
	return scene.Solid{Name: name, Mesh: m, Material: mat}, nil
}

func emptySolid(name string, mat style.Material) scene.Solid {
	return scene.Solid{Name: name, Mesh: &kernel.Mesh{Vertices: []float32{}, Normals: []float32{}, Indices: []uint32{}}, Material: mat}
}

// positive checks a size parameter: non-finite values are geometry input
// errors, finite non-positive values are dimension errors.
func positive(field string, v float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return &InvalidDimensionError{Field: field, Value: v}
	}
	return nil
}
