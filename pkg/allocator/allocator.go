// Package allocator maintains groups of labeled percentage shares that must
// sum to a fixed total.
//
// The admin console uses a Group to model the galaxy region distribution
// (federation / border / frontier percentages). When an operator drags one
// slider, SetShare rebalances the remaining shares proportionally so the
// group keeps summing to the total.
//
// # Usage
//
//	g, err := allocator.NewPercent([]allocator.Share{
//	    {Label: "federation", Value: 40},
//	    {Label: "border", Value: 35},
//	    {Label: "frontier", Value: 25},
//	})
//	if err != nil {
//	    return err
//	}
//	_ = g.SetShare("federation", 60)
//	// border ≈ 23.33, frontier ≈ 16.67
//
// A Group is a plain value with no I/O; callers own persistence and must
// serialize concurrent SetShare calls themselves.
package allocator

import (
	"math"

	"github.com/meridian/starchart/pkg/errors"
)

// SumEpsilon is the tolerance used when checking that initial shares sum to
// the group total. Rebalancing keeps the running sum within this bound except
// for the documented all-others-zero case.
const SumEpsilon = 1e-6

// Share is a single labeled value within a Group.
type Share struct {
	Label string  `json:"label" bson:"label"`
	Value float64 `json:"value" bson:"value"`
}

// Group is an ordered set of shares constrained to sum to a fixed total.
// The zero value is not usable; construct groups with New or NewPercent.
//
// Group is not safe for concurrent mutation without external synchronization.
type Group struct {
	total  float64
	shares []Share
}

// New creates a Group with the given total. The shares must already sum to
// total within SumEpsilon; mismatches are rejected rather than silently
// corrected, so a bad saved configuration surfaces immediately.
func New(total float64, shares []Share) (*Group, error) {
	if total <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDistribution, "total must be positive, got %g", total)
	}
	for _, s := range shares {
		if err := errors.ValidateName(s.Label); err != nil {
			return nil, err
		}
		if s.Value < 0 || s.Value > total {
			return nil, errors.New(errors.ErrCodeInvalidDistribution,
				"share %q value %g outside [0, %g]", s.Label, s.Value, total)
		}
	}
	seen := make(map[string]bool, len(shares))
	for _, s := range shares {
		if seen[s.Label] {
			return nil, errors.New(errors.ErrCodeInvalidDistribution, "duplicate share label %q", s.Label)
		}
		seen[s.Label] = true
	}

	sum := 0.0
	for _, s := range shares {
		sum += s.Value
	}
	if math.Abs(sum-total) > SumEpsilon {
		return nil, errors.New(errors.ErrCodeInvalidDistribution,
			"shares sum to %g, want %g", sum, total)
	}

	g := &Group{total: total, shares: make([]Share, len(shares))}
	copy(g.shares, shares)
	return g, nil
}

// NewPercent creates a Group with a total of 100, the usual form for region
// distribution sliders.
func NewPercent(shares []Share) (*Group, error) {
	return New(100, shares)
}

// Total returns the fixed total the group sums to.
func (g *Group) Total() float64 { return g.total }

// Shares returns a copy of the shares in insertion order.
func (g *Group) Shares() []Share {
	out := make([]Share, len(g.shares))
	copy(out, g.shares)
	return out
}

// Value returns the current value for label and whether the label exists.
func (g *Group) Value(label string) (float64, bool) {
	for _, s := range g.shares {
		if s.Label == label {
			return s.Value, true
		}
	}
	return 0, false
}

// Sum returns the current sum of all share values. It equals Total after any
// SetShare call in which at least one other share was non-zero; see SetShare
// for the exception.
func (g *Group) Sum() float64 {
	sum := 0.0
	for _, s := range g.shares {
		sum += s.Value
	}
	return sum
}

// SetShare sets the share for label to value and rebalances the rest.
//
// The requested value is clamped into [0, Total], never rejected: sliders
// routinely overshoot and the correction policy is deliberate. The remaining
// shares absorb the change proportionally to their current weights, each
// clamped into [0, Total]. Any residual left by clamping is added to the
// first other share and clamped again.
//
// When every other share is zero there is nothing to take the delta from and
// no redistribution occurs; the group total then drifts by the delta. Callers
// that care should check Sum afterwards.
//
// Returns ErrCodeShareNotFound if the label is not in the group.
func (g *Group) SetShare(label string, value float64) error {
	idx := -1
	for i, s := range g.shares {
		if s.Label == label {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.New(errors.ErrCodeShareNotFound, "no share named %q", label)
	}

	value = clamp(value, 0, g.total)
	delta := value - g.shares[idx].Value

	othersSum := 0.0
	for i, s := range g.shares {
		if i != idx {
			othersSum += s.Value
		}
	}

	if othersSum > 0 {
		for i := range g.shares {
			if i == idx {
				continue
			}
			weight := g.shares[i].Value / othersSum
			g.shares[i].Value = clamp(g.shares[i].Value-delta*weight, 0, g.total)
		}
	}

	g.shares[idx].Value = value

	// Clamping can strand a residual; push it onto the first other share.
	// If that share is itself pinned at a bound the sum stays off, which is
	// the documented drift rather than an error.
	if residual := g.total - g.Sum(); residual != 0 {
		for i := range g.shares {
			if i == idx {
				continue
			}
			g.shares[i].Value = clamp(g.shares[i].Value+residual, 0, g.total)
			break
		}
	}

	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
