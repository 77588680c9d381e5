// Package dijkstra_test provides runnable examples of the shortest-path engine.
package dijkstra_test

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/dijkstra"
	"github.com/katalvlaran/una/network"
)

// ExampleShortestPath routes across a triangle where the detour is shorter
// than the direct street.
func ExampleShortestPath() {
	// 1) Three junctions; the direct A–C street is slow (length 5).
	n := network.New()
	a, b, c := r3.Vec{X: 0}, r3.Vec{X: 1}, r3.Vec{X: 2}
	_, _ = n.AddConnection(a, b, nil, 1)
	_, _ = n.AddConnection(b, c, nil, 2)
	_, _ = n.AddConnection(a, c, nil, 5)

	// 2) Query A→C.
	src, _ := n.NodeAt(a)
	dst, _ := n.NodeAt(c)
	p, err := dijkstra.ShortestPath(n, src, dst)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("length=%.0f nodes=%v\n", p.Length, p.Nodes)
	// Output: length=3 nodes=[0 1 2]
}

// ExampleShortestPathTree shows a radius-bounded single-source tree.
func ExampleShortestPathTree() {
	n := network.New()
	for i := 0; i < 5; i++ {
		_, _ = n.AddConnection(r3.Vec{X: float64(i)}, r3.Vec{X: float64(i + 1)}, nil, 1)
	}
	tree, _ := dijkstra.ShortestPathTree(n, 0, dijkstra.WithMaxDistance(2.5))
	fmt.Println("reached:", len(tree.Dist), "path to 2:", tree.PathTo(2))
	// Output: reached: 3 path to 2: [0 1]
}
