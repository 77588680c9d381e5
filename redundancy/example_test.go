package redundancy_test

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/network"
	"github.com/katalvlaran/una/redundancy"
)

// ExampleIndex finds the parallel street inside a budget of twice the
// shortest route, while the spur stays out.
func ExampleIndex() {
	n := network.New()
	// Two parallel streets between x=0 and x=100, the upper one 20% longer.
	_, _ = n.AddConnection(r3.Vec{X: 0}, r3.Vec{X: 100}, nil, 100)
	_, _ = n.AddConnection(r3.Vec{X: 0}, r3.Vec{X: 100}, []r3.Vec{{X: 0}, {X: 50, Y: 33}, {X: 100}}, 120)
	// A spur that no route within budget uses.
	_, _ = n.AddConnection(r3.Vec{X: 100}, r3.Vec{X: 100, Y: 80}, nil, network.AutoLength)

	locs, _ := network.NewLocations(
		network.Location{ID: 1, EdgeID: 0, T: 0.1},
		network.Location{ID: 2, EdgeID: 0, T: 0.9},
	)
	res, ok, err := redundancy.Index(n, locs, 1, 2, redundancy.WithCoefficient(2))
	if err != nil || !ok {
		fmt.Println("no result", err)
		return
	}
	fmt.Printf("d0=%.0f index=%.2f segments=%v\n", res.Distance, res.Index, res.UniqueSegments)
	// Output:
	// d0=80 index=2.75 segments=[0 1]
}
