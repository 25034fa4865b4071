package builder

import (
	"errors"

	"github.com/chazu/drillscene/pkg/curve"
	"github.com/chazu/drillscene/pkg/geom"
	"github.com/chazu/drillscene/pkg/kernel"
	"github.com/chazu/drillscene/pkg/scene"
	"github.com/chazu/drillscene/pkg/style"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Trajectory tube constants. The radius is that of a 96 mm borehole.
const (
	TrajectoryRadius          = 0.048
	TrajectoryRadialSegments  = 8
	TrajectoryTubularSegments = 64
	RoadwaySteps              = 100
)

var finite = geom.ValidateFinite

// worldUp is the +Y axis of the scene.
var worldUp = v3.Vec{Y: 1}

// sweepPath fits a curve through the survey and samples positions and
// frames for extrusion. frames turns the sampled tangents into a frame per
// sample. It returns *curve.InsufficientPointsError for short surveys.
func sweepPath(survey []geom.Point3, segments int, frames func([]v3.Vec) []kernel.Frame) ([]v3.Vec, []kernel.Frame, error) {
	if err := geom.ValidatePoints("survey", survey); err != nil {
		return nil, nil, err
	}
	c, err := curve.New(survey)
	if err != nil {
		return nil, nil, err
	}
	path, err := c.Sample(segments)
	if err != nil {
		return nil, nil, err
	}
	tangents, err := c.SampleTangents(segments)
	if err != nil {
		return nil, nil, err
	}
	return path, frames(tangents), nil
}

func levelFrames(tangents []v3.Vec) []kernel.Frame {
	return kernel.UpFrames(tangents, worldUp)
}

func isShortSurvey(err error) bool {
	var ipe *curve.InsufficientPointsError
	return errors.As(err, &ipe)
}

// Trajectory builds the as-drilled tube along a survey.
func (b *Builder) Trajectory(name string, survey []geom.Point3, color style.Color) (scene.Solid, error) {
	mat := b.theme.Trajectory.WithColor(color)
	if err := mat.Validate(); err != nil {
		return scene.Solid{}, err
	}
	path, frames, err := sweepPath(survey, TrajectoryTubularSegments, kernel.ParallelTransportFrames)
	if isShortSurvey(err) {
		return emptySolid(name, mat), nil
	}
	if err != nil {
		return scene.Solid{}, err
	}
	return solid(name, kernel.Tube(path, frames, TrajectoryRadius, TrajectoryRadialSegments), mat)
}

// TrajectoryLine returns the survey as an unsmoothed polyline. Short surveys
// yield an empty curve.
func (b *Builder) TrajectoryLine(name string, survey []geom.Point3, color style.Color) (scene.Curve, error) {
	mat := b.theme.SurveyLine.WithColor(color)
	if err := mat.Validate(); err != nil {
		return scene.Curve{}, err
	}
	if err := geom.ValidatePoints("survey", survey); err != nil {
		return scene.Curve{}, err
	}
	pts := []geom.Point3{}
	if len(survey) >= curve.MinPoints {
		pts = append(pts, survey...)
	}
	return scene.Curve{Name: name, Points: pts, Material: mat}, nil
}

// Roadway sweeps a width x height rectangle along the roadway centre line.
// Width stays level and height follows world up whatever the heading.
func (b *Builder) Roadway(name string, centerline []geom.Point3, width, height float64, color style.Color) (scene.Solid, error) {
	if err := positive("width", width); err != nil {
		return scene.Solid{}, err
	}
	if err := positive("height", height); err != nil {
		return scene.Solid{}, err
	}
	mat := b.theme.Roadway.WithColor(color)
	if err := mat.Validate(); err != nil {
		return scene.Solid{}, err
	}
	path, frames, err := sweepPath(centerline, RoadwaySteps, levelFrames)
	if isShortSurvey(err) {
		return emptySolid(name, mat), nil
	}
	if err != nil {
		return scene.Solid{}, err
	}
	return solid(name, kernel.SweepRect(path, frames, width, height), mat)
}
