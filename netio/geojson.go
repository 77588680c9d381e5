package netio

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/network"
	"github.com/katalvlaran/una/paths"
)

func lineString(pts []r3.Vec) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = orb.Point{p.X, p.Y}
	}

	return ls
}

// PathsGeoJSON returns one LineString feature per enumerated path with its
// origin, destination, length, probability and segment IDs as properties.
func PathsGeoJSON(res *paths.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, p := range res.Paths {
		f := geojson.NewFeature(lineString(p.Points))
		f.ID = i
		f.Properties["origin"] = res.Origin
		f.Properties["destination"] = res.Destination
		f.Properties["length"] = p.Length
		f.Properties["probability"] = p.Probability
		segs := make([]int64, len(p.Segments))
		for j, s := range p.Segments {
			segs[j] = int64(s)
		}
		f.Properties["segments"] = segs
		fc.Append(f)
	}

	return fc
}

// SegmentsGeoJSON returns the geometry of the listed original edges, in the
// given order, each carrying its id and name. Unknown IDs are skipped.
func SegmentsGeoJSON(net *network.Network, ids []network.EdgeID) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, eid := range ids {
		if f := segmentFeature(net, eid); f != nil {
			fc.Append(f)
		}
	}

	return fc
}

// SegmentCountsGeoJSON is SegmentsGeoJSON over the keys of counts, in
// ascending ID order, with a count property.
func SegmentCountsGeoJSON(net *network.Network, counts map[network.EdgeID]int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, eid := range sortedEdges(counts) {
		if f := segmentFeature(net, eid); f != nil {
			f.Properties["count"] = counts[eid]
			fc.Append(f)
		}
	}

	return fc
}

func segmentFeature(net *network.Network, eid network.EdgeID) *geojson.Feature {
	e := net.Edge(eid)
	if e == nil {
		return nil
	}
	f := geojson.NewFeature(lineString(e.Points))
	f.ID = int64(eid)
	f.Properties["id"] = int64(eid)
	if e.Name != "" {
		f.Properties["name"] = e.Name
	}

	return f
}

// NodesGeoJSON returns one Point feature per located node in ids (nil
// means every original node) with the requested fields as properties.
//
// Errors: ErrUnknownField.
func NodesGeoJSON(net *network.Network, ids []network.NodeID, fields []string) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	sink := &featureSink{net: net, fc: fc, byID: make(map[network.NodeID]*geojson.Feature)}
	if err := WriteMetrics(net, ids, sink, fields); err != nil {
		return nil, err
	}

	return fc, nil
}

// featureSink is a FieldSetter that creates a Point feature on first write.
type featureSink struct {
	net  *network.Network
	fc   *geojson.FeatureCollection
	byID map[network.NodeID]*geojson.Feature
}

func (s *featureSink) SetField(id network.NodeID, field string, value float64) error {
	f, ok := s.byID[id]
	if !ok {
		nd := s.net.Node(id)
		if !nd.HasPoint {
			return nil
		}
		f = geojson.NewFeature(orb.Point{nd.Point.X, nd.Point.Y})
		f.ID = int64(id)
		f.Properties["node"] = int64(id)
		s.byID[id] = f
		s.fc.Append(f)
	}
	f.Properties[field] = value

	return nil
}
