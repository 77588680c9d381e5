package builder_test

import (
	"fmt"

	"github.com/katalvlaran/una/builder"
)

// ExampleBuildNetwork lays out a 3×3 block grid with 50 m spacing.
func ExampleBuildNetwork() {
	n, err := builder.BuildNetwork(nil,
		[]builder.BuilderOption{builder.WithSpacing(50), builder.WithStreetNames("Street ")},
		builder.Grid(3, 3),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	e := n.Edge(0)
	fmt.Printf("nodes=%d edges=%d first=%q length=%.0f\n", n.NodeCount(), len(n.Edges()), e.Name, e.Length)
	// Output:
	// nodes=9 edges=12 first="Street 0" length=50
}
