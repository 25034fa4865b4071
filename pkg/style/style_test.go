package style

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#4a90d9", 0x4A90D9, false},
		{"4A90D9", 0x4A90D9, false},
		{"#fff", 0xFFFFFF, false},
		{" #000000 ", 0x000000, false},
		{"#12", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %#06x, want %#06x", tt.in, uint32(got), uint32(tt.want))
			}
		})
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, c := range []Color{0, 0x00FF00, 0x4A90D9, 0xFFFFFF, 0x010203} {
		back, err := ParseColor(c.Hex())
		if err != nil {
			t.Fatalf("ParseColor(%s): %v", c.Hex(), err)
		}
		if back != c {
			t.Errorf("%s parsed back as %#06x", c.Hex(), uint32(back))
		}
	}
}

func TestColorJSON(t *testing.T) {
	b, err := json.Marshal(struct{ C Color }{0x00FF00})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"C":"#00ff00"}` {
		t.Errorf("json = %s", b)
	}
	if _, err := json.Marshal(Color(0x1000000)); err == nil {
		t.Error("expected error marshalling out-of-range color")
	}
}

func TestMaterialValidate(t *testing.T) {
	tests := []struct {
		name  string
		m     Material
		field string
	}{
		{"opacity above one", Material{Opacity: 1.5}, "opacity"},
		{"opacity NaN", Material{Opacity: math.NaN()}, "opacity"},
		{"color overflow", Material{Color: 0x1000000, Opacity: 1}, "color"},
		{"negative emissive", Material{Opacity: 1, EmissiveIntensity: -1}, "emissive intensity"},
		{"unknown blend", Material{Opacity: 1, Blend: BlendMode(9)}, "blend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var me *InvalidMaterialError
			if err := tt.m.Validate(); !errors.As(err, &me) {
				t.Fatalf("expected *InvalidMaterialError, got %v", err)
			}
			if me.Field != tt.field {
				t.Errorf("Field = %q, want %q", me.Field, tt.field)
			}
		})
	}
}

func TestDefaultThemeValid(t *testing.T) {
	th := DefaultTheme()
	if err := th.Validate(); err != nil {
		t.Fatalf("default theme invalid: %v", err)
	}
	if th.Trajectory.Opacity != 0.9 {
		t.Errorf("trajectory opacity = %v, want 0.9", th.Trajectory.Opacity)
	}
	if !th.Roadway.DoubleSided || th.Roadway.Opacity != 0.3 {
		t.Errorf("roadway material = %+v", th.Roadway)
	}
	if th.Design.Style != LineDashed || th.Design.Dash != 2 || th.Design.Gap != 1 {
		t.Errorf("design material = %+v", th.Design)
	}
	if th.FractureGlow.Blend != BlendAdditive || !th.FractureGlow.Transparent() {
		t.Errorf("fracture glow = %+v", th.FractureGlow)
	}
	if !th.Plane.Wireframe || !th.Plane.DoubleSided || th.Plane.Opacity != 0.1 {
		t.Errorf("plane material = %+v", th.Plane)
	}
}

func TestParseThemeOverridesOnlyGivenFields(t *testing.T) {
	src := []byte(`
roadway:
  opacity: 0.5
fracture_glow:
  blend: normal
palette:
  borehole: "#ff0000"
  roof: 0x112233
`)
	th, err := ParseTheme(src)
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	want := DefaultTheme()
	want.Roadway.Opacity = 0.5
	want.FractureGlow.Blend = BlendNormal
	want.Palette.Borehole = 0xFF0000
	want.Palette.Roof = 0x112233
	if diff := cmp.Diff(want, th); diff != "" {
		t.Errorf("theme mismatch (-want +got):\n%s", diff)
	}
}

func TestParseThemeRejectsInvalid(t *testing.T) {
	for name, src := range map[string]string{
		"bad opacity": "trajectory:\n  opacity: 2\n",
		"bad blend":   "site_halo:\n  blend: screen\n",
		"bad color":   "palette:\n  site: \"#zzzzzz\"\n",
		"bad dash":    "design:\n  dash: 0\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseTheme([]byte(src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("stage:\n  opacity: 0.75\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if th.Stage.Opacity != 0.75 || th.Stage.Shininess != 100 {
		t.Errorf("stage = %+v", th.Stage)
	}
	if _, err := LoadTheme(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
