// Package assemble walks a scene plan and produces renderable primitives
// using the builders. One or more primitives are produced per item.
package assemble

import (
	"fmt"

	"github.com/chazu/drillscene/pkg/builder"
	"github.com/chazu/drillscene/pkg/geom"
	"github.com/chazu/drillscene/pkg/plan"
	"github.com/chazu/drillscene/pkg/scene"
	"github.com/chazu/drillscene/pkg/style"
	"github.com/samber/lo"
)

// Name suffixes for the secondary primitives of a borehole.
const (
	SurveyLineSuffix = "/survey"
	DesignSuffix     = "/design"
)

// assembler carries the state of one Assemble call.
type assembler struct {
	p       *plan.Plan
	b       *builder.Builder
	palette style.Palette
	offset  geom.Point3
	out     *scene.Collection
}

// Assemble walks the plan items in declaration order and builds their
// primitives with the theme's materials, subtracting the plan offset from
// every coordinate. Boreholes still being drilled yield empty solids, which
// are kept in the result. Any builder error aborts assembly.
// The assembler is read-only and never mutates the plan.
func Assemble(p *plan.Plan, theme style.Theme) (*scene.Collection, error) {
	out := scene.NewCollection()
	if p == nil {
		return out, nil
	}
	a := &assembler{
		p:       p,
		b:       builder.New(theme),
		palette: theme.Palette,
		offset:  lo.FromPtr(p.Offset),
		out:     out,
	}
	for _, it := range p.Items {
		if err := a.item(it); err != nil {
			return nil, fmt.Errorf("assemble: %s %q: %w", it.Kind, it.Name, err)
		}
	}
	return out, nil
}

func (a *assembler) align(pts []geom.Point3) []geom.Point3 {
	return geom.Align(pts, a.offset)
}

func (a *assembler) at(pt geom.Point3) geom.Point3 {
	return pt.Sub(a.offset)
}

func (a *assembler) item(it *plan.Item) error {
	switch d := it.Data.(type) {
	case plan.SiteData:
		return a.site(it, d)
	case plan.BoreholeData:
		return a.borehole(it, d)
	case plan.StageData:
		return a.stage(it, d)
	case plan.RoadwayData:
		s, err := a.b.Roadway(it.Name, a.align(d.Path), d.Width, d.Height, lo.FromPtrOr(d.Color, a.palette.Roadway))
		if err != nil {
			return err
		}
		a.out.Solids = append(a.out.Solids, s)
	case plan.EventData:
		m, err := a.b.FractureMarker(it.Name, a.at(d.Position), d.Radius, lo.FromPtrOr(d.Color, a.palette.Event))
		if err != nil {
			return err
		}
		m.Energy = d.Energy
		a.out.Markers = append(a.out.Markers, m)
	case plan.SeamData:
		s, err := a.b.CoalSeam(it.Name, a.at(d.Center), d.Width, d.Depth, d.Thickness, lo.FromPtrOr(d.Color, a.palette.Seam))
		if err != nil {
			return err
		}
		a.out.Solids = append(a.out.Solids, s)
	case plan.RoofData:
		offset := lo.FromPtrOr(d.Offset, builder.DefaultRoofOffset)
		s, err := a.b.ReferencePlane(it.Name, a.at(d.Center), d.Width, d.Depth, offset, lo.FromPtrOr(d.Color, a.palette.Roof))
		if err != nil {
			return err
		}
		a.out.Solids = append(a.out.Solids, s)
	default:
		return fmt.Errorf("unsupported item data %T", it.Data)
	}
	return nil
}

func (a *assembler) site(it *plan.Item, d plan.SiteData) error {
	label := d.Label
	if label == "" {
		label = it.Name
	}
	m, err := a.b.SiteMarker(it.Name, label, a.at(d.Position), lo.FromPtrOr(d.Color, a.palette.Site))
	if err != nil {
		return err
	}
	a.out.Markers = append(a.out.Markers, m)
	return nil
}

// borehole builds the as-drilled tube, the raw survey line and, when
// present, the dashed design line.
func (a *assembler) borehole(it *plan.Item, d plan.BoreholeData) error {
	color := lo.FromPtrOr(d.Color, a.palette.Borehole)
	survey := a.align(d.Survey)

	tube, err := a.b.Trajectory(it.Name, survey, color)
	if err != nil {
		return err
	}
	line, err := a.b.TrajectoryLine(it.Name+SurveyLineSuffix, survey, color)
	if err != nil {
		return err
	}
	a.out.Solids = append(a.out.Solids, tube)
	a.out.Curves = append(a.out.Curves, line)

	if d.Design == nil {
		return nil
	}
	design := *d.Design
	design.Start = a.at(design.Start)
	c, err := a.b.DesignTrajectory(it.Name+DesignSuffix, design, a.palette.Design)
	if err != nil {
		return err
	}
	a.out.Curves = append(a.out.Curves, c)
	return nil
}

// stage places a stage sphere along its borehole's survey. Stages of
// boreholes without survey points are skipped.
func (a *assembler) stage(it *plan.Item, d plan.StageData) error {
	ref := a.p.Lookup(d.Borehole)
	if ref == nil {
		return fmt.Errorf("borehole %q not found", d.Borehole)
	}
	bd, ok := ref.Data.(plan.BoreholeData)
	if !ok {
		return fmt.Errorf("%q is a %s, not a borehole", d.Borehole, ref.Kind)
	}
	pos, ok := geom.StagePosition(a.align(bd.Survey), d.Number, bd.PlannedSegments)
	if !ok {
		return nil
	}
	s, err := a.b.StageSphere(it.Name, pos, d.Radius, lo.FromPtrOr(d.Color, a.palette.Fracture))
	if err != nil {
		return err
	}
	a.out.Solids = append(a.out.Solids, s)
	return nil
}
