package netio_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/una/netio"
)

// ExampleLoad decodes a two-street document and writes it back out.
func ExampleLoad() {
	const in = `
edges:
  - name: High St
    points: [[0, 0], [30, 40]]
  - points: [[30, 40], [30, 100]]
locations:
  - {id: 1, edge: 0, t: 0.5, origin: true, destination: true}
`
	doc, err := netio.Load(strings.NewReader(in))
	if err != nil {
		fmt.Println(err)
		return
	}
	n, locs, err := doc.Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("nodes=%d edges=%d locations=%d length=%.0f\n",
		n.NodeCount(), len(n.Edges()), locs.Len(), n.Edge(0).Length)

	out := netio.FromNetwork(n, nil)
	out.Edges = out.Edges[:1]
	if err := netio.Encode(os.Stdout, out); err != nil {
		fmt.Println(err)
	}
	// Output:
	// nodes=3 edges=2 locations=1 length=50
	// tolerance: 0.001
	// edges:
	//   - id: 0
	//     name: High St
	//     length: 50
	//     points: [[0, 0], [30, 40]]
}
