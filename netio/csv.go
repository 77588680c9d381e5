package netio

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/una/network"
	"github.com/katalvlaran/una/paths"
	"github.com/katalvlaran/una/redundancy"
)

// WriteRedundancyCSV writes one line per origin of a redundancy batch, in
// ascending origin order: count, mean, standard deviation, min, max and
// the space-separated unique segment IDs.
func WriteRedundancyCSV(w io.Writer, summaries map[int64]redundancy.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"origin", "n", "mean", "stdev", "min", "max", "segments"}); err != nil {
		return err
	}
	origins := make([]int64, 0, len(summaries))
	for o := range summaries {
		origins = append(origins, o)
	}
	slices.Sort(origins)
	for _, o := range origins {
		s := summaries[o]
		rec := []string{
			strconv.FormatInt(o, 10),
			strconv.Itoa(s.N),
			formatFloat(s.Mean),
			formatFloat(s.StdDev),
			formatFloat(s.Min),
			formatFloat(s.Max),
			joinIDs(s.UniqueSegments),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WritePathsCSV writes one line per pair of a path batch. The wayfinding
// column is empty when it was not requested.
func WritePathsCSV(w io.Writer, tbl *paths.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"origin", "destination", "paths", "redundancy", "wayfinding"}); err != nil {
		return err
	}
	for _, r := range tbl.Rows {
		way := ""
		if r.HasWayfinding {
			way = formatFloat(r.Wayfinding)
		}
		rec := []string{
			strconv.FormatInt(r.Origin, 10),
			strconv.FormatInt(r.Destination, 10),
			strconv.Itoa(r.NumPaths),
			formatFloat(r.Redundancy),
			way,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteSegmentCountsCSV writes edge, count lines by ascending edge ID.
func WriteSegmentCountsCSV(w io.Writer, counts map[network.EdgeID]int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"edge", "count"}); err != nil {
		return err
	}
	for _, eid := range sortedEdges(counts) {
		if err := cw.Write([]string{strconv.FormatInt(int64(eid), 10), strconv.Itoa(counts[eid])}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func sortedEdges(counts map[network.EdgeID]int) []network.EdgeID {
	ids := make([]network.EdgeID, 0, len(counts))
	for eid := range counts {
		ids = append(ids, eid)
	}
	slices.Sort(ids)

	return ids
}

func joinIDs(ids []network.EdgeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}

	return strings.Join(parts, " ")
}
