package starmap

import "github.com/meridian/starchart/pkg/sector"

// Edge kinds.
const (
	// EdgeKindProximity marks edges derived from the distance threshold.
	EdgeKindProximity = "proximity"
	// EdgeKindLongRange marks special long-range connectors between
	// warp-gate sectors, drawn dashed by the renderers.
	EdgeKindLongRange = "longrange"
)

// Attrs are the sector attributes carried through to map nodes unchanged.
type Attrs struct {
	Type        sector.Type `json:"type" bson:"type"`
	HazardLevel float64     `json:"hazard_level" bson:"hazard_level"`
	HasPort     bool        `json:"has_port" bson:"has_port"`
	HasPlanet   bool        `json:"has_planet" bson:"has_planet"`
	HasWarpGate bool        `json:"has_warp_gate" bson:"has_warp_gate"`
	Discovered  bool        `json:"is_discovered" bson:"is_discovered"`
	Faction     string      `json:"controlling_faction,omitempty" bson:"controlling_faction,omitempty"`
}

// Entity is a positioned sector in world coordinates, the input to Build.
type Entity struct {
	ID    int     `json:"id" bson:"id"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Attrs Attrs   `json:"attrs" bson:"attrs"`
}

// Node is an entity projected into drawing-surface coordinates. Nodes are
// immutable snapshots owned by the Graph that created them.
type Node struct {
	ID    int     `json:"id" bson:"id"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Attrs Attrs   `json:"attrs" bson:"attrs"`
}

// Edge connects two nodes by ID. Distance is the projected Euclidean
// distance between the endpoints at build time.
type Edge struct {
	Source   int     `json:"source" bson:"source"`
	Target   int     `json:"target" bson:"target"`
	Kind     string  `json:"kind" bson:"kind"`
	Distance float64 `json:"distance" bson:"distance"`
}

// Graph is the node/edge diagram handed to the rendering layer. Every Build
// call produces a fresh Graph; there is no incremental mutation.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Projection is the linear world → drawing-surface transform applied to
// entity coordinates before distances are measured.
type Projection struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// IdentityProjection leaves world coordinates unchanged.
var IdentityProjection = Projection{Scale: 1}

// Apply projects a world coordinate pair onto the drawing surface.
func (p Projection) Apply(x, y float64) (float64, float64) {
	return x*p.Scale + p.OffsetX, y*p.Scale + p.OffsetY
}

// Entities converts universe-service sector records into build input,
// preserving the human-readable sector number as the entity ID.
func Entities(sectors []sector.Sector) []Entity {
	out := make([]Entity, len(sectors))
	for i, s := range sectors {
		out[i] = Entity{
			ID: s.SectorID,
			X:  s.X,
			Y:  s.Y,
			Attrs: Attrs{
				Type:        s.Type,
				HazardLevel: s.HazardLevel,
				HasPort:     s.HasPort,
				HasPlanet:   s.HasPlanet,
				HasWarpGate: s.HasWarpGate,
				Discovered:  s.Discovered,
				Faction:     s.Faction,
			},
		}
	}
	return out
}
