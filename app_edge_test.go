package main

import (
	"encoding/json"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// 1. Empty editor: empty string -> 0 primitives, 0 errors, non-nil slices.
// ---------------------------------------------------------------------------

func TestE2EEmptySourceExtended(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Meshes)+len(result.Lines)+len(result.Markers) != 0 {
		t.Errorf("expected no primitives for empty source, got %+v", result)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected 0 warnings for empty source, got %d", len(result.Warnings))
	}
	// Ensure slices are non-nil (JSON should serialize as [] not null).
	if result.Meshes == nil || result.Lines == nil || result.Markers == nil {
		t.Error("primitive slices should be non-nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
	if result.Warnings == nil {
		t.Error("Warnings should be non-nil empty slice, got nil")
	}
}

func TestE2EResultJSONHasNoNulls(t *testing.T) {
	app := newTestApp()

	for _, source := range []string{"", "(+ 1 2", `(site "pad" :at (vec3 0 0 0))`} {
		result := app.Evaluate(source)
		data, err := json.Marshal(result)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(data), "null") {
			t.Errorf("source %q: JSON contains null: %s", source, data)
		}
	}
}

// ---------------------------------------------------------------------------
// 2. Syntax error mid-expression: unmatched parens -> eval error, 0 meshes.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	app := newTestApp()

	// Put valid code on line 1, broken code on line 2 so line info is meaningful.
	source := "(+ 1 2)\n(site \"pad\""
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}

	e := result.Errors[0]
	if e.Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	t.Logf("syntax error: line=%d, col=%d, message=%q", e.Line, e.Col, e.Message)
}

func TestE2EUndefinedFunction(t *testing.T) {
	app := newTestApp()

	result := app.Evaluate("(tunnel \"t1\" :width 4)")
	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for undefined function")
	}
}

// ---------------------------------------------------------------------------
// 3. Dangling references are validation errors; nothing is drawn.
// ---------------------------------------------------------------------------

func TestE2EUndefinedSiteReference(t *testing.T) {
	app := newTestApp()

	source := `
(site "pad" :at (vec3 0 0 0))
(borehole "bh" :site "nonexistent" :survey (list (vec3 0 0 0) (vec3 0 -10 0)))
`
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected validation error for undefined site reference")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e.Message, "nonexistent") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected error mentioning 'nonexistent', got: %v", result.Errors)
	}
	if len(result.Meshes)+len(result.Markers) != 0 {
		t.Errorf("expected nothing drawn on error, got %d meshes and %d markers", len(result.Meshes), len(result.Markers))
	}
}

func TestE2EStageOnMissingBorehole(t *testing.T) {
	app := newTestApp()

	result := app.Evaluate(`(stage "ghost" 1)`)
	if len(result.Errors) == 0 {
		t.Fatal("expected validation error for stage on undefined borehole")
	}
	if !strings.Contains(result.Errors[0].Message, "ghost") {
		t.Errorf("expected error mentioning 'ghost', got: %v", result.Errors)
	}
}

// ---------------------------------------------------------------------------
// 4. Degenerate dimensions are rejected before any geometry is built.
// ---------------------------------------------------------------------------

func TestE2EInvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "zero roadway width",
			source: `(roadway "r" :path (list (vec3 0 0 0) (vec3 10 0 0)) :width 0 :height 3)`,
			want:   "width must be positive",
		},
		{
			name:   "negative seam thickness",
			source: `(seam :center (vec3 0 0 0) :width 10 :depth 10 :thickness -1)`,
			want:   "thickness must be positive",
		},
		{
			name:   "zero event radius",
			source: `(event :at (vec3 0 0 0) :radius 0)`,
			want:   "radius must be positive",
		},
		{
			name:   "negative design length",
			source: `(borehole "bh" :design (design :from (vec3 0 0 0) :length -5))`,
			want:   "design.length must be positive",
		},
		{
			name:   "zero planned segments",
			source: `(borehole "bh" :survey (list (vec3 0 0 0) (vec3 0 -1 0)) :segments 0)`,
			want:   "planned segments must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			result := app.Evaluate(tt.source)
			if len(result.Errors) == 0 {
				t.Fatalf("expected an error containing %q", tt.want)
			}
			found := false
			for _, e := range result.Errors {
				if strings.Contains(e.Message, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error containing %q, got %v", tt.want, result.Errors)
			}
			if len(result.Meshes) != 0 {
				t.Errorf("expected 0 meshes, got %d", len(result.Meshes))
			}
		})
	}
}

// ---------------------------------------------------------------------------
// 5. Partial survey data: warnings, empty geometry, no errors.
// ---------------------------------------------------------------------------

func TestE2EShortSurveyWarns(t *testing.T) {
	app := newTestApp()

	source := `
(borehole "bh" :survey (list (vec3 0 0 0)))
(stage "bh" 1)
`
	result := app.Evaluate(source)
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a short survey warning")
	}
	if !strings.Contains(result.Warnings[0].Message, "survey has 1 point(s)") {
		t.Errorf("unexpected warning: %v", result.Warnings)
	}

	// The tube and survey line are present but empty.
	if len(result.Meshes) != 2 {
		t.Fatalf("expected tube and stage meshes, got %d", len(result.Meshes))
	}
	for _, m := range result.Meshes {
		if m.Name == "bh" && len(m.Vertices) != 0 {
			t.Errorf("tube for a one-point survey should be empty, got %d floats", len(m.Vertices))
		}
	}
	if len(result.Lines) != 1 || len(result.Lines[0].Points) != 0 {
		t.Errorf("expected one empty survey line, got %+v", result.Lines)
	}
}

func TestE2EDesignOnlyBorehole(t *testing.T) {
	app := newTestApp()

	source := `(borehole "planned" :design (design :from (vec3 0 0 0) :length 100 :azimuth 400 :dip -120))`
	result := app.Evaluate(source)
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}

	var wrapped, clamped bool
	for _, w := range result.Warnings {
		wrapped = wrapped || strings.Contains(w.Message, "wrapped")
		clamped = clamped || strings.Contains(w.Message, "clamped")
	}
	if !wrapped || !clamped {
		t.Errorf("expected wrap and clamp warnings, got %v", result.Warnings)
	}

	var design *LineData
	for i := range result.Lines {
		if result.Lines[i].Name == "planned/design" {
			design = &result.Lines[i]
		}
	}
	if design == nil {
		t.Fatalf("missing design line in %v", result.Lines)
	}
	// Dip clamps to -90: straight down by the full length.
	end := design.Points[3:6]
	if end[0] > 1e-9 || end[0] < -1e-9 || end[1] > -100+1e-9 || end[1] < -100-1e-9 {
		t.Errorf("design end = %v, want (0, -100, 0)", end)
	}
}

// ---------------------------------------------------------------------------
// 6. Rapid evaluation (debounce simulation): no panics, no data races.
//    Run with `go test -race` to detect data races.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluation(t *testing.T) {
	// Simulates debounce: rapid sequential calls to Evaluate on the same App.
	// zygomys has internal global state that is not safe for concurrent
	// sandbox creation, so calls are sequential.
	app := newTestApp()

	sources := []string{
		`(site "a" :at (vec3 0 0 0))`,
		`(site "b" :at (vec3 10 0 0))`,
		`(+ 1 2)`,
		``,
		`(borehole "c" :survey (list (vec3 0 0 0) (vec3 0 -20 0)))`,
		`(event :at (vec3 0 -10 0) :energy 1.2)`,
		`(site "broken"`,
		`(stage "missing" 1)`,
		`;; just a comment`,
		`(undefined-func 1 2 3)`,
		`(seam :center (vec3 0 -50 0) :width 100 :depth 100 :thickness 2)`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, source, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}

	// The engine recovers cleanly after errors.
	result := app.Evaluate(`(site "last" :at (vec3 0 0 0))`)
	if len(result.Errors) != 0 || len(result.Markers) != 1 {
		t.Errorf("expected one marker after recovery, got %+v", result)
	}
}

// ---------------------------------------------------------------------------
// 7. Large coordinates: mine-grid values survive without precision blow-up.
// ---------------------------------------------------------------------------

func TestE2ELargeCoordinates(t *testing.T) {
	app := newTestApp()

	source := `
(offset (geodetic 512000 6210000 0))
(borehole "far"
  :stations (list (station 0 512000 6210000 120) (station 80 512010 6210005 40)))
`
	result := app.Evaluate(source)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Lines) != 1 {
		t.Fatalf("expected one survey line, got %d", len(result.Lines))
	}
	pts := result.Lines[0].Points
	want := []float64{0, 120, 0, 10, 40, -5}
	for i := range want {
		if d := pts[i] - want[i]; d > 1e-6 || d < -1e-6 {
			t.Errorf("point[%d] = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestE2EDesignDefaultsToCollarUnderOffset(t *testing.T) {
	app := newTestApp()

	source := `
(offset (geodetic 512000 6210000 0))
(borehole "bh"
  :stations (list (station 0 512000 6210000 0) (station 50 512000 6210000 -50))
  :design (design :length 100 :azimuth 90 :dip 0))
`
	result := app.Evaluate(source)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	var design *LineData
	for i := range result.Lines {
		if result.Lines[i].Name == "bh/design" {
			design = &result.Lines[i]
		}
	}
	if design == nil {
		t.Fatalf("no bh/design line in %+v", result.Lines)
	}
	want := []float64{0, 0, 0, 100, 0, 0}
	if len(design.Points) != len(want) {
		t.Fatalf("design has %d floats, want %d", len(design.Points), len(want))
	}
	for i := range want {
		if d := design.Points[i] - want[i]; d > 1e-6 || d < -1e-6 {
			t.Errorf("design[%d] = %v, want %v", i, design.Points[i], want[i])
		}
	}
}

// ---------------------------------------------------------------------------
// 8. Colors: explicit item colors override the theme palette.
// ---------------------------------------------------------------------------

func TestE2EExplicitColor(t *testing.T) {
	app := newTestApp()

	source := `(roadway "r" :path (list (vec3 0 0 0) (vec3 10 0 0)) :width 4 :height 3 :color "#12ab34")`
	result := app.Evaluate(source)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	if got := result.Meshes[0].Material.Color; got != "#12ab34" {
		t.Errorf("color = %q, want #12ab34", got)
	}

	def := app.Evaluate(`(roadway "r" :path (list (vec3 0 0 0) (vec3 10 0 0)) :width 4 :height 3)`)
	if got, want := def.Meshes[0].Material.Color, app.Theme().Palette.Roadway.Hex(); got != want {
		t.Errorf("default color = %q, want palette %q", got, want)
	}
}
