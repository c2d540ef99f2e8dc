package starmap

import (
	"math"

	"github.com/meridian/starchart/pkg/errors"
)

// bboxEpsilon substitutes for a zero bounding-box extent so the scale
// division below never divides by zero.
const bboxEpsilon = 1e-9

// Viewport describes the fixed-size drawing surface and its fit parameters.
type Viewport struct {
	// Width and Height are the drawing surface size in pixels.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// VisibleFraction in (0, 1] is how much of the surface the fitted
	// content should span; 0.8 leaves a 10% margin on each side.
	VisibleFraction float64 `json:"visible_fraction"`

	// ScaleExtent is the [min, max] zoom bound. Fit clamps into it, and the
	// interaction layer must keep later pan/zoom inside it too.
	ScaleExtent [2]float64 `json:"scale_extent"`
}

// Validate checks the viewport parameters.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidViewport, "surface size %gx%g must be positive", v.Width, v.Height)
	}
	if v.VisibleFraction <= 0 || v.VisibleFraction > 1 {
		return errors.New(errors.ErrCodeInvalidViewport, "visible fraction %g outside (0, 1]", v.VisibleFraction)
	}
	if v.ScaleExtent[0] <= 0 || v.ScaleExtent[0] > v.ScaleExtent[1] {
		return errors.New(errors.ErrCodeInvalidViewport, "scale extent [%g, %g] is not an ordered positive range",
			v.ScaleExtent[0], v.ScaleExtent[1])
	}
	return nil
}

// Transform is the scale + translation the rendering layer applies as the
// initial camera position. It is derived data and never persisted.
type Transform struct {
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	Scale      float64 `json:"scale"`
}

// Fit computes the transform that centers the nodes' bounding box in the
// viewport at the largest scale that keeps it within the visible fraction,
// clamped to the viewport's scale extent.
//
// An empty node set or a degenerate (single point) bounding box falls back
// to a centered identity transform; that is an expected state right after a
// galaxy reset, not an error.
//
// Fit is pure and idempotent: identical inputs return bit-identical
// transforms, and nodes are never mutated.
func Fit(nodes []Node, vp Viewport) Transform {
	fallback := Transform{
		TranslateX: vp.Width / 2,
		TranslateY: vp.Height / 2,
		Scale:      1,
	}
	if len(nodes) == 0 {
		return fallback
	}

	minX, maxX := nodes[0].X, nodes[0].X
	minY, maxY := nodes[0].Y, nodes[0].Y
	for _, n := range nodes[1:] {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minY = math.Min(minY, n.Y)
		maxY = math.Max(maxY, n.Y)
	}

	bboxW, bboxH := maxX-minX, maxY-minY
	if bboxW == 0 && bboxH == 0 {
		return fallback
	}
	bboxW = math.Max(bboxW, bboxEpsilon)
	bboxH = math.Max(bboxH, bboxEpsilon)

	rawScale := vp.VisibleFraction / math.Max(bboxW/vp.Width, bboxH/vp.Height)
	scale := math.Min(math.Max(rawScale, vp.ScaleExtent[0]), vp.ScaleExtent[1])

	centerX := (minX + maxX) / 2
	centerY := (minY + maxY) / 2

	return Transform{
		TranslateX: vp.Width/2 - scale*centerX,
		TranslateY: vp.Height/2 - scale*centerY,
		Scale:      scale,
	}
}
