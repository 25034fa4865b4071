package assemble_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/chazu/drillscene/pkg/assemble"
	"github.com/chazu/drillscene/pkg/builder"
	"github.com/chazu/drillscene/pkg/geom"
	"github.com/chazu/drillscene/pkg/plan"
	"github.com/chazu/drillscene/pkg/style"
	"gonum.org/v1/gonum/floats/scalar"
)

func site() *plan.Plan {
	p := plan.New()
	p.Add("pad", plan.SiteData{Position: geom.Point3{X: 5}, Label: "Pad"})
	p.Add("bh-1", plan.BoreholeData{
		Site:            "pad",
		Survey:          []geom.Point3{{X: 5}, {X: 5, Y: -50}, {X: 10, Y: -100, Z: -20}, {X: 20, Y: -120, Z: -80}},
		Design:          &builder.DesignParameters{Start: geom.Point3{X: 5}, Length: 150, AzimuthDegrees: 0, DipDegrees: -45},
		PlannedSegments: 4,
		Diameter:        plan.DefaultBoreholeDiameter,
	})
	p.Add("bh-1/stage-2", plan.StageData{Borehole: "bh-1", Number: 2, Radius: 2})
	p.Add("main", plan.RoadwayData{Path: []geom.Point3{{X: -50, Y: -110}, {X: 50, Y: -110}}, Width: 4, Height: 3})
	p.Add("", plan.EventData{Position: geom.Point3{Y: -90}, Radius: 1.5, Energy: 3.4})
	p.Add("", plan.SeamData{Center: geom.Point3{Y: -130}, Width: 300, Depth: 300, Thickness: 4})
	p.Add("", plan.RoofData{Center: geom.Point3{Y: -130}, Width: 300, Depth: 300})
	return p
}

func TestAssembleCounts(t *testing.T) {
	c, err := assemble.Assemble(site(), style.DefaultTheme())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	// tube, stage, roadway, seam, roof
	if got := len(c.Solids); got != 5 {
		t.Errorf("solids = %d, want 5", got)
	}
	// survey line, design line
	if got := len(c.Curves); got != 2 {
		t.Errorf("curves = %d, want 2", got)
	}
	// site, event
	if got := len(c.Markers); got != 2 {
		t.Errorf("markers = %d, want 2", got)
	}
	if c.Len() != 9 {
		t.Errorf("Len = %d, want 9", c.Len())
	}
	for _, s := range c.Solids {
		if s.IsEmpty() {
			t.Errorf("solid %q is empty", s.Name)
		}
	}
}

func TestAssembleNames(t *testing.T) {
	c, err := assemble.Assemble(site(), style.DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{"bh-1" + assemble.SurveyLineSuffix: true, "bh-1" + assemble.DesignSuffix: true}
	for _, cv := range c.Curves {
		if !want[cv.Name] {
			t.Errorf("unexpected curve %q", cv.Name)
		}
	}
	if !c.Markers[0].IsSite() || c.Markers[0].Label != "Pad" {
		t.Errorf("first marker = %+v", c.Markers[0])
	}
	if c.Markers[1].Name != "event-1" {
		t.Errorf("second marker = %q", c.Markers[1].Name)
	}
	if c.Markers[0].Energy != 0 || c.Markers[1].Energy != 3.4 {
		t.Errorf("marker energies = %v, %v; want 0, 3.4", c.Markers[0].Energy, c.Markers[1].Energy)
	}
}

func TestAssemblePaletteFallback(t *testing.T) {
	theme := style.DefaultTheme()
	theme.Palette.Borehole = 0x123456
	c, err := assemble.Assemble(site(), theme)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Solids[0].Material.Color; got != 0x123456 {
		t.Errorf("tube color = %v, want palette borehole", got)
	}

	p := site()
	red := style.Color(0xFF0000)
	p.Add("bh-2", plan.BoreholeData{Survey: []geom.Point3{{}, {Y: -1}}, PlannedSegments: 1, Diameter: 0.1, Color: &red})
	c, err = assemble.Assemble(p, theme)
	if err != nil {
		t.Fatal(err)
	}
	last := c.Solids[len(c.Solids)-1]
	if last.Name != "bh-2" || last.Material.Color != red {
		t.Errorf("explicit color ignored: %q %v", last.Name, last.Material.Color)
	}
}

func TestAssembleOffset(t *testing.T) {
	p := plan.New()
	p.SetOffset(geom.Point3{X: 100, Y: -10, Z: -50})
	p.Add("pad", plan.SiteData{Position: geom.Point3{X: 100, Y: -10, Z: -50}})
	p.Add("bh", plan.BoreholeData{Survey: []geom.Point3{{X: 100}, {X: 100, Y: -20}}, PlannedSegments: 1, Diameter: 0.1})
	c, err := assemble.Assemble(p, style.DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Markers[0].Position; got != (geom.Point3{}) {
		t.Errorf("site position = %+v, want origin", got)
	}
	line := c.Curves[0]
	if line.Points[0] != (geom.Point3{Y: 10, Z: 50}) || line.Points[1] != (geom.Point3{Y: -10, Z: 50}) {
		t.Errorf("survey line = %+v", line.Points)
	}
	// The plan itself is untouched.
	if d := p.Items[0].Data.(plan.SiteData); d.Position.X != 100 {
		t.Errorf("plan mutated: %+v", d.Position)
	}
}

func TestAssembleStagePlacement(t *testing.T) {
	c, err := assemble.Assemble(site(), style.DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	var stage = c.Solids[1]
	if stage.Name != "bh-1/stage-2" {
		t.Fatalf("solid 1 = %q, want the stage", stage.Name)
	}
	// 4 survey points, 4 planned segments: stage 2 sits on survey index 2.
	bb := stage.Mesh.Bounds()
	center := bb.Min.Add(bb.Max).MulScalar(0.5)
	want := geom.Point3{X: 10, Y: -100, Z: -20}
	if !scalar.EqualWithinAbs(center.X, want.X, 1e-3) ||
		!scalar.EqualWithinAbs(center.Y, want.Y, 1e-3) ||
		!scalar.EqualWithinAbs(center.Z, want.Z, 1e-3) {
		t.Errorf("stage centre = %+v, want %+v", center, want)
	}
}

func TestAssembleDrillingBorehole(t *testing.T) {
	p := plan.New()
	p.Add("new", plan.BoreholeData{Survey: []geom.Point3{{X: 1}}, PlannedSegments: 12, Diameter: 0.1})
	p.Add("new/stage-1", plan.StageData{Borehole: "new", Number: 1, Radius: 1})
	p.Add("empty", plan.BoreholeData{Survey: []geom.Point3{}, PlannedSegments: 12, Diameter: 0.1})
	p.Add("empty/stage-1", plan.StageData{Borehole: "empty", Number: 1, Radius: 1})
	c, err := assemble.Assemble(p, style.DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	// Two empty tubes plus the stage on the single surveyed point.
	if len(c.Solids) != 3 {
		t.Fatalf("solids = %d, want 3", len(c.Solids))
	}
	if !c.Solids[0].IsEmpty() || !c.Solids[2].IsEmpty() {
		t.Error("tubes of short surveys should be empty")
	}
	if c.Solids[1].IsEmpty() {
		t.Error("stage on a one-point survey should be drawn")
	}
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name string
		data plan.ItemData
		want any
	}{
		{"zero width roadway", plan.RoadwayData{Path: []geom.Point3{{}, {X: 1}}, Height: 1}, new(*builder.InvalidDimensionError)},
		{"zero radius event", plan.EventData{}, new(*builder.InvalidRadiusError)},
		{"dangling stage", plan.StageData{Borehole: "nope", Number: 1, Radius: 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := plan.New()
			p.Add("bad", tt.data)
			c, err := assemble.Assemble(p, style.DefaultTheme())
			if err == nil {
				t.Fatal("expected error")
			}
			if c != nil {
				t.Error("partial collection returned with error")
			}
			if !strings.Contains(err.Error(), `"bad"`) {
				t.Errorf("error %q does not name the item", err)
			}
			if tt.want != nil && !errors.As(err, tt.want) {
				t.Errorf("error %v is not %T", err, tt.want)
			}
		})
	}
}

func TestAssembleNilAndEmpty(t *testing.T) {
	for _, p := range []*plan.Plan{nil, plan.New()} {
		c, err := assemble.Assemble(p, style.DefaultTheme())
		if err != nil {
			t.Fatal(err)
		}
		if c.Solids == nil || c.Curves == nil || c.Markers == nil || c.Len() != 0 {
			t.Errorf("collection = %+v", c)
		}
	}
}
