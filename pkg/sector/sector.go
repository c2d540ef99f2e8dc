// Package sector defines the sector records exchanged with the universe
// service and the tagged sector-type variants used for rendering.
//
// A Sector is the wire form: world coordinates, a type tag, hazard level,
// and the boolean flags the admin map cares about (port, planet, warp gate,
// discovery). The rendering side never switches on raw type strings; it goes
// through [Type] and its exhaustive [VisualToken] table.
package sector

import "github.com/google/uuid"

// Sector is a single sector record as returned by the universe service.
// Field names follow the service's snake_case JSON.
type Sector struct {
	ID          uuid.UUID `json:"id" bson:"id"`
	SectorID    int       `json:"sector_id" bson:"sector_id"`
	Name        string    `json:"name" bson:"name"`
	Type        Type      `json:"type" bson:"type"`
	X           float64   `json:"x_coord" bson:"x_coord"`
	Y           float64   `json:"y_coord" bson:"y_coord"`
	HazardLevel float64   `json:"hazard_level" bson:"hazard_level"`
	Discovered  bool      `json:"is_discovered" bson:"is_discovered"`
	HasPort     bool      `json:"has_port" bson:"has_port"`
	HasPlanet   bool      `json:"has_planet" bson:"has_planet"`
	HasWarpGate bool      `json:"has_warp_gate" bson:"has_warp_gate"`
	Faction     string    `json:"controlling_faction,omitempty" bson:"controlling_faction,omitempty"`
}
