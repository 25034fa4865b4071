package geom

import (
	"math"
	"slices"
)

// SurveyStation is one measured station of a borehole survey in geodetic
// coordinates: easting, northing and elevation.
type SurveyStation struct {
	MeasuredDepth float64 `json:"measured_depth"`
	E             float64 `json:"coord_e"`
	N             float64 `json:"coord_n"`
	Z             float64 `json:"coord_z"`
}

// FromGeodetic maps an (easting, northing, elevation) triple into scene
// space: east is +X, elevation is +Y and north is -Z.
func FromGeodetic(e, n, z float64) Point3 {
	return Point3{X: e, Y: z, Z: -n}
}

// SurveyPoints orders stations by measured depth and maps them into scene
// space. Stations with equal depth keep their input order.
func SurveyPoints(stations []SurveyStation) []Point3 {
	sorted := slices.Clone(stations)
	slices.SortStableFunc(sorted, func(a, b SurveyStation) int {
		switch {
		case a.MeasuredDepth < b.MeasuredDepth:
			return -1
		case a.MeasuredDepth > b.MeasuredDepth:
			return 1
		}
		return 0
	})
	pts := make([]Point3, len(sorted))
	for i, s := range sorted {
		pts[i] = FromGeodetic(s.E, s.N, s.Z)
	}
	return pts
}

// DefaultPlannedSegments is the stage count assumed when a borehole does not
// declare how many fracture segments are planned.
const DefaultPlannedSegments = 12

// StageIndex returns the survey index at which fracture stage segmentNo is
// drawn: stages are spread proportionally over the survey, and anything past
// the end sits on the last station. It returns -1 for an empty survey.
func StageIndex(n, segmentNo, planned int) int {
	if n == 0 {
		return -1
	}
	if planned <= 0 {
		planned = DefaultPlannedSegments
	}
	idx := int(math.Floor(float64(segmentNo) * float64(n) / float64(planned)))
	if idx < 0 {
		idx = 0
	}
	return min(n-1, idx)
}

// StagePosition returns the scene position of fracture stage segmentNo on
// the survey. The boolean is false when the survey is empty.
func StagePosition(survey []Point3, segmentNo, planned int) (Point3, bool) {
	idx := StageIndex(len(survey), segmentNo, planned)
	if idx < 0 {
		return Point3{}, false
	}
	return survey[idx], true
}
