package sector

import (
	"encoding/json"
	"testing"

	"github.com/meridian/starchart/pkg/errors"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"STANDARD", TypeStandard, false},
		{"NEBULA", TypeNebula, false},
		{"WORMHOLE", TypeWormhole, false},
		{"standard", TypeStandard, true}, // wire names are upper case
		{"PLASMA_STORM", TypeStandard, true},
		{"", TypeStandard, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidSectorType) {
					t.Errorf("ParseType(%q) error = %v, want INVALID_SECTOR_TYPE", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseType(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTypeRoundTrip(t *testing.T) {
	for i := 0; i < typeCount; i++ {
		typ := Type(i)
		parsed, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q) error = %v", typ.String(), err)
		}
		if parsed != typ {
			t.Errorf("round trip of %v gave %v", typ, parsed)
		}
	}
}

func TestVisualTokensAreExhaustive(t *testing.T) {
	for i := 0; i < typeCount; i++ {
		tok := Type(i).Visual()
		if tok.Glyph == "" || tok.Color == "" {
			t.Errorf("type %v has incomplete visual token %+v", Type(i), tok)
		}
	}
}

func TestSectorJSON(t *testing.T) {
	payload := `{
		"id": "7f6c3f20-3c6b-4a7e-9a3f-2f9d1a88c111",
		"sector_id": 42,
		"name": "Sector 42",
		"type": "NEBULA",
		"x_coord": 12.5,
		"y_coord": -3,
		"hazard_level": 7,
		"is_discovered": true,
		"has_port": true,
		"has_planet": false,
		"has_warp_gate": true,
		"controlling_faction": "terran_federation"
	}`

	var s Sector
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if s.SectorID != 42 || s.Type != TypeNebula || !s.HasWarpGate {
		t.Errorf("unexpected sector: %+v", s)
	}
	if s.X != 12.5 || s.Y != -3 {
		t.Errorf("coords = (%g, %g), want (12.5, -3)", s.X, s.Y)
	}

	// Unknown type strings are an error, not a silent default.
	var bad Sector
	err := json.Unmarshal([]byte(`{"type": "MYSTERY"}`), &bad)
	if err == nil {
		t.Error("Unmarshal() accepted unknown sector type")
	}
}
