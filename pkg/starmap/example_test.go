package starmap_test

import (
	"fmt"

	"github.com/meridian/starchart/pkg/starmap"
)

func ExampleBuild() {
	entities := []starmap.Entity{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 5, Y: 5},
		{ID: 2, X: 100, Y: 100},
	}

	g := starmap.Build(entities, starmap.Options{LinkThreshold: 10})

	fmt.Println("nodes:", len(g.Nodes))
	for _, e := range g.Edges {
		fmt.Printf("edge %d→%d (%s, %.2f)\n", e.Source, e.Target, e.Kind, e.Distance)
	}
	// Output:
	// nodes: 3
	// edge 0→1 (proximity, 7.07)
}

func ExampleFit() {
	nodes := []starmap.Node{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 2400, Y: 1600},
	}
	vp := starmap.Viewport{
		Width:           1200,
		Height:          800,
		VisibleFraction: 0.8,
		ScaleExtent:     [2]float64{0.3, 5},
	}

	tr := starmap.Fit(nodes, vp)
	fmt.Printf("scale=%.2f translate=(%.0f, %.0f)\n", tr.Scale, tr.TranslateX, tr.TranslateY)
	// Output:
	// scale=0.40 translate=(120, 80)
}
