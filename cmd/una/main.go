// Command una runs centrality, redundancy and path analyses over a street
// network document, and generates synthetic networks for testing.
//
//	una centrality --network city.yaml --metrics reach,betweenness --radius 800 -o out.csv
//	una redundancy --network city.yaml --coefficient 1.3 -o redundancy.csv
//	una paths --network city.yaml --origin 1 --destinations 2,3 -o paths.geojson
//	una generate grid --rows 20 --cols 20 -o grid.yaml
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/katalvlaran/una/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Error("una failed", "error", err)
		stop()
		os.Exit(1)
	}
}
