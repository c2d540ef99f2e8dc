package universe

import (
	"time"

	"github.com/google/uuid"

	"github.com/meridian/starchart/pkg/sector"
)

// GenerateResult is the service's response to a generation request.
type GenerateResult struct {
	GalaxyID     uuid.UUID `json:"galaxy_id" bson:"galaxy_id"`
	Name         string    `json:"name" bson:"name"`
	SectorCount  int       `json:"sector_count" bson:"sector_count"`
	WarpTunnels  int       `json:"warp_tunnels" bson:"warp_tunnels"`
	GeneratedAt  time.Time `json:"generated_at" bson:"generated_at"`
	GenerationMS int64     `json:"generation_ms" bson:"generation_ms"`
}

// SectorPage is the wire envelope for a sector listing.
type SectorPage struct {
	GalaxyID uuid.UUID       `json:"galaxy_id" bson:"galaxy_id"`
	Sectors  []sector.Sector `json:"sectors" bson:"sectors"`
	Total    int             `json:"total" bson:"total"`
}

// Status describes the service's currently active galaxy.
type Status struct {
	GalaxyID    uuid.UUID `json:"galaxy_id" bson:"galaxy_id"`
	Name        string    `json:"name" bson:"name"`
	SectorCount int       `json:"sector_count" bson:"sector_count"`
	PlayerCount int       `json:"player_count" bson:"player_count"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
