package plan

import (
	"github.com/chazu/drillscene/pkg/builder"
	"github.com/chazu/drillscene/pkg/geom"
	"github.com/chazu/drillscene/pkg/style"
)

// ItemKind enumerates the kinds of scene items.
type ItemKind int

const (
	ItemSite     ItemKind = iota // drilling site marker
	ItemBorehole                 // surveyed hole with optional design
	ItemStage                    // fracture stage along a borehole
	ItemRoadway                  // underground roadway
	ItemEvent                    // microseismic event
	ItemSeam                     // coal seam plane
	ItemRoof                     // roof reference plane
)

func (k ItemKind) String() string {
	switch k {
	case ItemSite:
		return "site"
	case ItemBorehole:
		return "borehole"
	case ItemStage:
		return "stage"
	case ItemRoadway:
		return "roadway"
	case ItemEvent:
		return "event"
	case ItemSeam:
		return "seam"
	case ItemRoof:
		return "roof"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Item is one entry of the plan.
type Item struct {
	ID   ItemID   `json:"id"`
	Kind ItemKind `json:"kind"`
	Name string   `json:"name"`
	Data ItemData `json:"data"`
}

// ItemData is the interface for kind-specific item payloads.
type ItemData interface {
	itemData() // marker method restricting implementations to this package
}

// SiteData is a drilling site.
type SiteData struct {
	Position geom.Point3  `json:"position"`
	Label    string       `json:"label,omitempty"`
	Color    *style.Color `json:"color,omitempty"`
}

func (SiteData) itemData() {}

// DefaultBoreholeDiameter is the nominal hole diameter in meters. The
// trajectory tube is always drawn at this size.
const DefaultBoreholeDiameter = 2 * builder.TrajectoryRadius

// BoreholeData is a hole with its as-drilled survey and, optionally, its
// planned straight design.
type BoreholeData struct {
	Site            string                    `json:"site,omitempty"`
	Survey          []geom.Point3             `json:"survey"`
	Design          *builder.DesignParameters `json:"design,omitempty"`
	PlannedSegments int                       `json:"planned_segments"`
	Diameter        float64                   `json:"diameter"`
	Color           *style.Color              `json:"color,omitempty"`
}

func (BoreholeData) itemData() {}

// StageData is a fracture stage placed along a borehole's survey by stage
// number. Numbers start at 1.
type StageData struct {
	Borehole string       `json:"borehole"`
	Number   int          `json:"number"`
	Radius   float64      `json:"radius"`
	Color    *style.Color `json:"color,omitempty"`
}

func (StageData) itemData() {}

// RoadwayData is a rectangular roadway swept along a centre line.
type RoadwayData struct {
	Path   []geom.Point3 `json:"path"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Color  *style.Color  `json:"color,omitempty"`
}

func (RoadwayData) itemData() {}

// EventData is a microseismic event.
type EventData struct {
	Position geom.Point3  `json:"position"`
	Radius   float64      `json:"radius"`
	Energy   float64      `json:"energy,omitempty"`
	Color    *style.Color `json:"color,omitempty"`
}

func (EventData) itemData() {}

// SeamData is a coal seam plane.
type SeamData struct {
	Center    geom.Point3  `json:"center"`
	Width     float64      `json:"width"`
	Depth     float64      `json:"depth"`
	Thickness float64      `json:"thickness"`
	Color     *style.Color `json:"color,omitempty"`
}

func (SeamData) itemData() {}

// RoofData is a roof reference plane. A nil Offset means
// builder.DefaultRoofOffset.
type RoofData struct {
	Center geom.Point3  `json:"center"`
	Width  float64      `json:"width"`
	Depth  float64      `json:"depth"`
	Offset *float64     `json:"offset,omitempty"`
	Color  *style.Color `json:"color,omitempty"`
}

func (RoofData) itemData() {}

// kindOf returns the item kind a payload belongs to.
func kindOf(d ItemData) (ItemKind, bool) {
	switch d.(type) {
	case SiteData:
		return ItemSite, true
	case BoreholeData:
		return ItemBorehole, true
	case StageData:
		return ItemStage, true
	case RoadwayData:
		return ItemRoadway, true
	case EventData:
		return ItemEvent, true
	case SeamData:
		return ItemSeam, true
	case RoofData:
		return ItemRoof, true
	default:
		return 0, false
	}
}
