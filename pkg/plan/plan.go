package plan

import (
	"fmt"

	"github.com/chazu/drillscene/pkg/geom"
)

// Plan is the top-level data structure produced by script evaluation.
type Plan struct {
	Items     []*Item           `json:"items"`
	NameIndex map[string]ItemID `json:"name_index"`
	Offset    *geom.Point3      `json:"offset,omitempty"`
	Version   uint64            `json:"version"`

	byID   map[ItemID]*Item
	counts map[ItemKind]int
}

// New creates an empty Plan.
func New() *Plan {
	return &Plan{
		Items:     []*Item{},
		NameIndex: make(map[string]ItemID),
		byID:      make(map[ItemID]*Item),
		counts:    make(map[ItemKind]int),
	}
}

// Add appends an item built from data, in declaration order, and returns
// it. An empty name is replaced by "<kind>-<n>". Add does not check for
// duplicate names; Validate reports them.
func (p *Plan) Add(name string, data ItemData) *Item {
	kind, _ := kindOf(data)
	p.counts[kind]++
	if name == "" {
		name = fmt.Sprintf("%s-%d", kind, p.counts[kind])
	}
	it := &Item{ID: NewItemID(kind, name), Kind: kind, Name: name, Data: data}
	p.Items = append(p.Items, it)
	p.NameIndex[name] = it.ID
	p.byID[it.ID] = it
	return it
}

// SetOffset sets the scene origin. Assembly subtracts it from every
// coordinate.
func (p *Plan) SetOffset(o geom.Point3) {
	p.Offset = &o
}

// Lookup returns the item with the given name, or nil.
func (p *Plan) Lookup(name string) *Item {
	id, ok := p.NameIndex[name]
	if !ok {
		return nil
	}
	return p.byID[id]
}

// Get returns the item with the given ID, or nil.
func (p *Plan) Get(id ItemID) *Item {
	return p.byID[id]
}

// OfKind returns the items of one kind in declaration order.
func (p *Plan) OfKind(kind ItemKind) []*Item {
	var out []*Item
	for _, it := range p.Items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of items.
func (p *Plan) Len() int {
	return len(p.Items)
}
