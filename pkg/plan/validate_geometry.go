package plan

import (
	"math"
	"strconv"

	"github.com/chazu/drillscene/pkg/geom"
)

// ---------------------------------------------------------------------------
// Tier 2: geometric validation (errors)
// ---------------------------------------------------------------------------

// validateGeometry checks finite coordinates and positive sizes. These are
// the conditions under which the builders would return an error.
func validateGeometry(p *Plan) []ValidationError {
	var errs []ValidationError
	if p.Offset != nil {
		if err := geom.ValidatePoint("offset", *p.Offset); err != nil {
			errs = append(errs, ValidationError{Message: err.Error(), Severity: SeverityError})
		}
	}
	for _, it := range p.Items {
		for _, err := range geometryErrors(it.Data) {
			errs = append(errs, errorAt(it, "%s", err))
		}
	}
	return errs
}

// findings collects the non-nil results of individual checks.
type findings []error

func (f *findings) add(err error) {
	if err != nil {
		*f = append(*f, err)
	}
}

type nonPositiveError struct {
	field string
	value float64
}

func (e *nonPositiveError) Error() string {
	return e.field + " must be positive, got " + formatFloat(e.value)
}

func positive(field string, v float64) error {
	if err := geom.ValidateFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return &nonPositiveError{field: field, value: v}
	}
	return nil
}

func atLeastOne(field string, n int) error {
	if n < 1 {
		return &nonPositiveError{field: field, value: float64(n)}
	}
	return nil
}

func geometryErrors(d ItemData) []error {
	var f findings
	switch d := d.(type) {
	case SiteData:
		f.add(geom.ValidatePoint("position", d.Position))
	case BoreholeData:
		f.add(geom.ValidatePoints("survey", d.Survey))
		if d.Design != nil {
			f.add(geom.ValidatePoint("design.start", d.Design.Start))
			f.add(geom.ValidateFinite("design.azimuth", d.Design.AzimuthDegrees))
			f.add(geom.ValidateFinite("design.dip", d.Design.DipDegrees))
			if err := geom.ValidateFinite("design.length", d.Design.Length); err != nil {
				f.add(err)
			} else if d.Design.Length < 0 {
				f.add(&nonPositiveError{field: "design.length", value: d.Design.Length})
			}
		}
		f.add(positive("diameter", d.Diameter))
		f.add(atLeastOne("planned segments", d.PlannedSegments))
	case StageData:
		f.add(atLeastOne("stage number", d.Number))
		f.add(positive("radius", d.Radius))
	case RoadwayData:
		f.add(geom.ValidatePoints("path", d.Path))
		f.add(positive("width", d.Width))
		f.add(positive("height", d.Height))
	case EventData:
		f.add(geom.ValidatePoint("position", d.Position))
		f.add(positive("radius", d.Radius))
		f.add(geom.ValidateFinite("energy", d.Energy))
	case SeamData:
		f.add(geom.ValidatePoint("center", d.Center))
		f.add(positive("width", d.Width))
		f.add(positive("depth", d.Depth))
		f.add(positive("thickness", d.Thickness))
	case RoofData:
		f.add(geom.ValidatePoint("center", d.Center))
		f.add(positive("width", d.Width))
		f.add(positive("depth", d.Depth))
		if d.Offset != nil {
			f.add(geom.ValidateFinite("offset", *d.Offset))
		}
	}
	return f
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ---------------------------------------------------------------------------
// Tier 3: advisory warnings
// ---------------------------------------------------------------------------

// validateAdvisory reports conditions the assembler handles but the user
// may not expect.
func validateAdvisory(p *Plan) []ValidationWarning {
	var warnings []ValidationWarning
	for _, it := range p.Items {
		switch d := it.Data.(type) {
		case BoreholeData:
			if len(d.Survey) < 2 {
				warnings = append(warnings, warningAt(it, "survey has %d point(s); the trajectory will be empty until drilling reports more", len(d.Survey)))
			}
			if d.Diameter > 0 && math.Abs(d.Diameter-DefaultBoreholeDiameter) > 1e-9 {
				warnings = append(warnings, warningAt(it, "diameter %s differs from the drawn %s m tube; it is recorded only",
					formatFloat(d.Diameter), formatFloat(DefaultBoreholeDiameter)))
			}
			if d.Design != nil {
				az, dip := d.Design.AzimuthDegrees, d.Design.DipDegrees
				if az < 0 || az >= 360 {
					warnings = append(warnings, warningAt(it, "design azimuth %s will be wrapped into [0, 360)", formatFloat(az)))
				}
				if dip < -90 || dip > 90 {
					warnings = append(warnings, warningAt(it, "design dip %s will be clamped to [-90, 90]", formatFloat(dip)))
				}
			}
		case StageData:
			bh := p.Lookup(d.Borehole)
			if bh == nil {
				continue // dangling references handled by Tier 1
			}
			bd, ok := bh.Data.(BoreholeData)
			if !ok {
				continue
			}
			if d.Number > bd.PlannedSegments && bd.PlannedSegments > 0 {
				warnings = append(warnings, warningAt(it, "stage %d exceeds %d planned segments; placed at the last survey point", d.Number, bd.PlannedSegments))
			}
			if len(bd.Survey) == 0 {
				warnings = append(warnings, warningAt(it, "borehole %q has no survey; stage is not drawn", d.Borehole))
			}
		case RoadwayData:
			if len(d.Path) < 2 {
				warnings = append(warnings, warningAt(it, "path has %d point(s); the roadway will be empty", len(d.Path)))
			}
		}
	}
	return warnings
}
