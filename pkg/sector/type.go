package sector

import (
	"encoding/json"

	"github.com/meridian/starchart/pkg/errors"
)

// Type classifies a sector. The set mirrors the universe service's
// sector_type enum; unknown wire values are rejected rather than guessed at.
type Type int

const (
	TypeStandard Type = iota
	TypeNebula
	TypeAsteroidField
	TypeBlackHole
	TypeStarCluster
	TypeVoid
	TypeIndustrial
	TypeAgricultural
	TypeForbidden
	TypeWormhole
)

// typeCount is the number of defined sector types. Lookup tables below are
// indexed by Type and sized by this constant so a missing entry is a compile
// visible gap, not a runtime default.
const typeCount = 10

// wireNames maps Type to the universe service's wire representation.
var wireNames = [typeCount]string{
	TypeStandard:      "STANDARD",
	TypeNebula:        "NEBULA",
	TypeAsteroidField: "ASTEROID_FIELD",
	TypeBlackHole:     "BLACK_HOLE",
	TypeStarCluster:   "STAR_CLUSTER",
	TypeVoid:          "VOID",
	TypeIndustrial:    "INDUSTRIAL",
	TypeAgricultural:  "AGRICULTURAL",
	TypeForbidden:     "FORBIDDEN",
	TypeWormhole:      "WORMHOLE",
}

// VisualToken is the rendering description for a sector type: a map glyph
// and a fill color. The frontend and the DOT renderer both consume these so
// the two stay in sync.
type VisualToken struct {
	Glyph string `json:"glyph"`
	Color string `json:"color"`
}

// visualTokens is the exhaustive Type → token table.
var visualTokens = [typeCount]VisualToken{
	TypeStandard:      {Glyph: "·", Color: "#9aa7b0"},
	TypeNebula:        {Glyph: "≈", Color: "#b069db"},
	TypeAsteroidField: {Glyph: "∴", Color: "#a88d5f"},
	TypeBlackHole:     {Glyph: "●", Color: "#22252a"},
	TypeStarCluster:   {Glyph: "✦", Color: "#e8d56a"},
	TypeVoid:          {Glyph: "○", Color: "#4a5560"},
	TypeIndustrial:    {Glyph: "▣", Color: "#c4713b"},
	TypeAgricultural:  {Glyph: "❀", Color: "#6fbf63"},
	TypeForbidden:     {Glyph: "✕", Color: "#d64545"},
	TypeWormhole:      {Glyph: "◎", Color: "#45b8d6"},
}

// String returns the wire name for the type.
func (t Type) String() string {
	if t < 0 || int(t) >= typeCount {
		return "UNKNOWN"
	}
	return wireNames[t]
}

// Visual returns the rendering token for the type. Out-of-range types get
// the standard token, which only happens for values that bypassed ParseType.
func (t Type) Visual() VisualToken {
	if t < 0 || int(t) >= typeCount {
		return visualTokens[TypeStandard]
	}
	return visualTokens[t]
}

// ParseType converts a wire string to a Type.
func ParseType(s string) (Type, error) {
	for t, name := range wireNames {
		if name == s {
			return Type(t), nil
		}
	}
	return TypeStandard, errors.New(errors.ErrCodeInvalidSectorType, "unknown sector type %q", s)
}

// MarshalJSON encodes the type as its wire name.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a wire name into the type.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
