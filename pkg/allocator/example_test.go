package allocator_test

import (
	"fmt"

	"github.com/meridian/starchart/pkg/allocator"
)

func ExampleGroup_SetShare() {
	// Region distribution sliders for a new galaxy.
	g, _ := allocator.NewPercent([]allocator.Share{
		{Label: "federation", Value: 40},
		{Label: "border", Value: 35},
		{Label: "frontier", Value: 25},
	})

	// The operator drags federation up to 60; the rest rebalances.
	_ = g.SetShare("federation", 60)

	for _, s := range g.Shares() {
		fmt.Printf("%s: %.2f\n", s.Label, s.Value)
	}
	fmt.Printf("sum: %.0f\n", g.Sum())
	// Output:
	// federation: 60.00
	// border: 23.33
	// frontier: 16.67
	// sum: 100
}

func ExampleNew_rejectsMismatch() {
	_, err := allocator.NewPercent([]allocator.Share{
		{Label: "federation", Value: 50},
		{Label: "border", Value: 30},
	})
	fmt.Println(err != nil)
	// Output:
	// true
}
