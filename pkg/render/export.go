package render

import (
	"encoding/json"

	"github.com/meridian/starchart/pkg/starmap"
)

// Export is the JSON artifact consumed by the console frontend. It bundles
// the built graph with the viewport transform so the client can draw and
// position the map without recomputing either.
type Export struct {
	Graph     starmap.Graph     `json:"graph"`
	Transform starmap.Transform `json:"transform"`
}

// ToJSON serializes a star map and its fitted transform.
func ToJSON(g starmap.Graph, tr starmap.Transform) ([]byte, error) {
	return json.MarshalIndent(Export{Graph: g, Transform: tr}, "", "  ")
}
