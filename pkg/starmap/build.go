// Package starmap turns sector records into the node/edge diagram behind the
// admin console's galaxy map, and fits the result to a drawing surface.
//
// The two entry points are pure data transformations:
//
//   - [Build] projects entities onto the drawing surface and connects pairs
//     closer than a distance threshold.
//   - [Fit] computes the scale + translation that centers a node set inside
//     a viewport.
//
// Neither performs I/O. Randomness for long-range connectors is injected and
// seeded, so identical options always produce identical graphs.
package starmap

import (
	"math"
	"math/rand/v2"
)

// DefaultLongRangeChance is the probability that a qualifying warp-gate pair
// gets a long-range connector on top of any proximity edge.
const DefaultLongRangeChance = 0.05

// Options configures a Build call.
type Options struct {
	// LinkThreshold is the projected distance below which a proximity edge
	// is emitted. Zero yields no proximity edges; math.Inf(1) yields the
	// complete graph on distinct positions.
	LinkThreshold float64

	// Projection maps world coordinates onto the drawing surface.
	// The zero value is replaced by IdentityProjection.
	Projection Projection

	// LongRangeChance is the per-pair probability of a long-range connector
	// between two warp-gate sectors. Zero disables them unless Rand is set.
	LongRangeChance float64

	// Seed seeds the pseudo-random source for long-range connectors.
	// Identical seeds produce identical graphs.
	Seed uint64

	// Rand overrides the seeded source; it reports whether a qualifying
	// pair receives a long-range connector. Mainly for tests.
	Rand func() bool
}

// linkFn returns the long-range decision function for these options.
func (o Options) linkFn() func() bool {
	if o.Rand != nil {
		return o.Rand
	}
	if o.LongRangeChance <= 0 {
		return func() bool { return false }
	}
	chance := math.Min(o.LongRangeChance, 1)
	rng := rand.New(rand.NewPCG(o.Seed, o.Seed^0xdeadbeef))
	return func() bool { return rng.Float64() < chance }
}

// Build converts entities into a Graph. One node is produced per entity with
// its coordinates projected and attributes preserved. Every unordered pair
// closer than opts.LinkThreshold is connected by a proximity edge; pairs of
// warp-gate sectors may additionally get a long-range connector.
//
// Pair scanning is O(n²), fine for the bounded sector counts the admin
// console works with. Empty input yields an empty graph, never an error.
func Build(entities []Entity, opts Options) Graph {
	if opts.Projection == (Projection{}) {
		opts.Projection = IdentityProjection
	}
	link := opts.linkFn()

	g := Graph{Nodes: make([]Node, len(entities)), Edges: []Edge{}}
	for i, e := range entities {
		x, y := opts.Projection.Apply(e.X, e.Y)
		g.Nodes[i] = Node{ID: e.ID, X: x, Y: y, Attrs: e.Attrs}
	}

	for i := 0; i < len(g.Nodes); i++ {
		for j := i + 1; j < len(g.Nodes); j++ {
			a, b := g.Nodes[i], g.Nodes[j]
			d := math.Hypot(b.X-a.X, b.Y-a.Y)

			if d < opts.LinkThreshold {
				g.Edges = append(g.Edges, Edge{
					Source:   a.ID,
					Target:   b.ID,
					Kind:     EdgeKindProximity,
					Distance: d,
				})
			}

			if a.Attrs.HasWarpGate && b.Attrs.HasWarpGate && link() {
				g.Edges = append(g.Edges, Edge{
					Source:   a.ID,
					Target:   b.ID,
					Kind:     EdgeKindLongRange,
					Distance: d,
				})
			}
		}
	}

	return g
}
