package style

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Palette holds the fallback color per scene item kind, used when a script
// does not give one.
type Palette struct {
	Borehole Color `json:"borehole" yaml:"borehole"`
	Design   Color `json:"design" yaml:"design"`
	Roadway  Color `json:"roadway" yaml:"roadway"`
	Site     Color `json:"site" yaml:"site"`
	Fracture Color `json:"fracture" yaml:"fracture"`
	Event    Color `json:"event" yaml:"event"`
	Seam     Color `json:"seam" yaml:"seam"`
	Roof     Color `json:"roof" yaml:"roof"`
}

// Theme is the full set of material defaults, one record per builder role.
// Builders take the record and override only the color.
type Theme struct {
	Trajectory   Material     `json:"trajectory" yaml:"trajectory"`
	SurveyLine   LineMaterial `json:"surveyLine" yaml:"survey_line"`
	Design       LineMaterial `json:"design" yaml:"design"`
	Roadway      Material     `json:"roadway" yaml:"roadway"`
	SiteCore     Material     `json:"siteCore" yaml:"site_core"`
	SiteHalo     Material     `json:"siteHalo" yaml:"site_halo"`
	FractureCore Material     `json:"fractureCore" yaml:"fracture_core"`
	FractureGlow Material     `json:"fractureGlow" yaml:"fracture_glow"`
	Stage        Material     `json:"stage" yaml:"stage"`
	Plane        Material     `json:"plane" yaml:"plane"`
	Palette      Palette      `json:"palette" yaml:"palette"`
}

// Material defaults per builder role.
var (
	// TrajectoryMaterial is the as-drilled tube: nearly opaque and shiny.
	TrajectoryMaterial = Material{Opacity: 0.9, Shininess: 100}
	// SurveyLineMaterial is the raw survey polyline.
	SurveyLineMaterial = LineMaterial{Opacity: 1, Style: LineSolid}
	// DesignMaterial is the dashed theoretical line, dash 2 and gap 1.
	DesignMaterial = LineMaterial{Opacity: 1, Style: LineDashed, Dash: 2, Gap: 1}
	// RoadwayMaterial is see-through and double-sided so the tunnel can be
	// viewed from inside.
	RoadwayMaterial = Material{Opacity: 0.3, Shininess: 30, DoubleSided: true}
	// SiteCoreMaterial glows in its own color.
	SiteCoreMaterial = Material{Opacity: 1, EmissiveIntensity: 1, Shininess: 30}
	// SiteHaloMaterial is the faint shell around a site.
	SiteHaloMaterial = Material{Opacity: 0.2}
	// FractureCoreMaterial is the solid event core.
	FractureCoreMaterial = Material{Opacity: 1, EmissiveIntensity: 0.5, Shininess: 30}
	// FractureGlowMaterial is the additive glow around an event.
	FractureGlowMaterial = Material{Opacity: 0.2, Blend: BlendAdditive}
	// StageMaterial is the single phong sphere drawn for a fracture stage.
	StageMaterial = Material{Opacity: 0.6, Shininess: 100}
	// PlaneMaterial is the faint wireframe used for geologic reference planes.
	PlaneMaterial = Material{Opacity: 0.1, Wireframe: true, DoubleSided: true}
)

// DefaultPalette is the built-in item palette.
var DefaultPalette = Palette{
	Borehole: 0x00FF00,
	Design:   0xFFAA00,
	Roadway:  0x8A8A8A,
	Site:     0xFFCC00,
	Fracture: 0xFF4444,
	Event:    0xFF00FF,
	Seam:     0x333333,
	Roof:     0x8899AA,
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Trajectory:   TrajectoryMaterial,
		SurveyLine:   SurveyLineMaterial,
		Design:       DesignMaterial,
		Roadway:      RoadwayMaterial,
		SiteCore:     SiteCoreMaterial,
		SiteHalo:     SiteHaloMaterial,
		FractureCore: FractureCoreMaterial,
		FractureGlow: FractureGlowMaterial,
		Stage:        StageMaterial,
		Plane:        PlaneMaterial,
		Palette:      DefaultPalette,
	}
}

// Validate checks every record.
func (t Theme) Validate() error {
	mats := []struct {
		name string
		m    Material
	}{
		{"trajectory", t.Trajectory},
		{"roadway", t.Roadway},
		{"site_core", t.SiteCore},
		{"site_halo", t.SiteHalo},
		{"fracture_core", t.FractureCore},
		{"fracture_glow", t.FractureGlow},
		{"stage", t.Stage},
		{"plane", t.Plane},
	}
	for _, m := range mats {
		if err := m.m.Validate(); err != nil {
			return fmt.Errorf("theme %s: %w", m.name, err)
		}
	}
	if err := t.SurveyLine.Validate(); err != nil {
		return fmt.Errorf("theme survey_line: %w", err)
	}
	if err := t.Design.Validate(); err != nil {
		return fmt.Errorf("theme design: %w", err)
	}
	return nil
}

// ParseTheme decodes YAML over the default theme, so a file only needs the
// fields it changes.
func ParseTheme(data []byte) (Theme, error) {
	t := DefaultTheme()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("style: parse theme: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadTheme reads a YAML theme file.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("style: load theme: %w", err)
	}
	return ParseTheme(data)
}
