// Package netio is the file boundary of una: it loads network documents,
// writes analysis results back through a field-setter contract and exports
// tables and map layers.
//
// Overview:
//
//   - Load / LoadFile decode a YAML or JSON Document (strict keys);
//     Document.Build creates the network.Network and network.Locations.
//   - FromNetwork, Encode, EncodeJSON and WriteFile go the other way, used
//     by the generate command.
//   - WriteMetrics pushes node metrics into any FieldSetter; Table is the
//     in-memory one with WriteCSV.
//   - WriteRedundancyCSV, WritePathsCSV and WriteSegmentCountsCSV export
//     the batch results.
//   - PathsGeoJSON, SegmentsGeoJSON, SegmentCountsGeoJSON and NodesGeoJSON
//     build GeoJSON feature collections (paulmach/orb).
//
// Coordinates are read as [x, y] or [x, y, z]; GeoJSON output drops Z.
package netio
