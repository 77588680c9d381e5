package netio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/una/network"
)

// Load decodes a YAML or JSON document. Unknown keys are rejected so that a
// misspelled field does not silently fall back to its default.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("netio: decode document: %w", err)
	}

	return &doc, nil
}

// LoadFile opens path and decodes it with Load.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netio: open document: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Encode writes doc as YAML.
func Encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("netio: encode document: %w", err)
	}

	return enc.Close()
}

// EncodeJSON writes doc as indented JSON.
func EncodeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("netio: encode document: %w", err)
	}

	return nil
}

// WriteFile encodes doc to path, as JSON when the extension is .json and
// as YAML otherwise.
func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("netio: create document: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = EncodeJSON(f, doc)
	} else {
		err = Encode(f, doc)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return err
}

// Build creates the network and the location index described by doc.
//
// Node attributes are applied first, so they bind to the junctions the
// edges snap onto. Node IDs are renumbered densely before returning.
// Errors name the offending entry by position.
func (doc *Document) Build() (*network.Network, *network.Locations, error) {
	// 1) Network with the requested tolerance.
	var opts []network.Option
	if doc.Tolerance != 0 {
		if !positive(doc.Tolerance) {
			return nil, nil, fmt.Errorf("%w: tolerance %v", ErrBadNumber, doc.Tolerance)
		}
		opts = append(opts, network.WithTolerance(doc.Tolerance))
	}
	n := network.New(opts...)

	// 2) Junction attributes.
	for i, nd := range doc.Nodes {
		p, err := nd.Point.Vec()
		if err != nil {
			return nil, nil, fmt.Errorf("netio: nodes[%d]: %w", i, err)
		}
		var nopts []network.NodeOption
		if nd.Weight != nil {
			if !nonNegative(*nd.Weight) {
				return nil, nil, fmt.Errorf("netio: nodes[%d]: %w: weight %v", i, ErrBadNumber, *nd.Weight)
			}
			nopts = append(nopts, network.WithWeight(*nd.Weight))
		}
		if nd.Located != nil && !*nd.Located {
			nopts = append(nopts, network.WithoutPoint())
		}
		if _, err := n.AddNode(p, nopts...); err != nil {
			return nil, nil, fmt.Errorf("netio: nodes[%d]: %w", i, err)
		}
	}

	// 3) Streets.
	for i, ed := range doc.Edges {
		if len(ed.Points) < 2 {
			return nil, nil, fmt.Errorf("netio: edges[%d]: %w", i, ErrBadGeometry)
		}
		pts := make([]r3.Vec, len(ed.Points))
		for j, p := range ed.Points {
			v, err := p.Vec()
			if err != nil {
				return nil, nil, fmt.Errorf("netio: edges[%d].points[%d]: %w", i, j, err)
			}
			pts[j] = v
		}
		length := network.AutoLength
		if ed.Length != nil {
			if !nonNegative(*ed.Length) {
				return nil, nil, fmt.Errorf("netio: edges[%d]: %w: length %v", i, ErrBadNumber, *ed.Length)
			}
			length = *ed.Length
		}
		for name, v := range ed.Costs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, fmt.Errorf("netio: edges[%d]: %w: cost %s=%v", i, ErrBadNumber, name, v)
			}
		}
		var eopts []network.EdgeOption
		if ed.ID != nil {
			eopts = append(eopts, network.WithEdgeID(network.EdgeID(*ed.ID)))
		}
		if ed.Name != "" {
			eopts = append(eopts, network.WithName(ed.Name))
		}
		if len(ed.Costs) > 0 {
			eopts = append(eopts, network.WithCosts(ed.Costs))
		}
		if _, err := n.AddConnection(pts[0], pts[len(pts)-1], pts, length, eopts...); err != nil {
			return nil, nil, fmt.Errorf("netio: edges[%d]: %w", i, err)
		}
	}

	// 4) Dense node IDs once bulk construction is done.
	if err := n.Remap(); err != nil {
		return nil, nil, err
	}

	// 5) Locations.
	locs, err := network.NewLocations()
	if err != nil {
		return nil, nil, err
	}
	for i, ld := range doc.Locations {
		eid := network.EdgeID(ld.Edge)
		if n.Edge(eid) == nil {
			return nil, nil, fmt.Errorf("netio: locations[%d]: %w: %d", i, network.ErrEdgeNotFound, ld.Edge)
		}
		loc := network.Location{
			ID:          ld.ID,
			EdgeID:      eid,
			T:           ld.T,
			Weight:      1,
			Origin:      ld.Origin,
			Destination: ld.Destination,
		}
		if ld.Weight != nil {
			if !nonNegative(*ld.Weight) {
				return nil, nil, fmt.Errorf("netio: locations[%d]: %w: weight %v", i, ErrBadNumber, *ld.Weight)
			}
			loc.Weight = *ld.Weight
		}
		if len(ld.Point) > 0 {
			p, err := ld.Point.Vec()
			if err != nil {
				return nil, nil, fmt.Errorf("netio: locations[%d]: %w", i, err)
			}
			loc.Point, loc.HasPoint = p, true
		}
		if err := locs.Add(loc); err != nil {
			return nil, nil, fmt.Errorf("netio: locations[%d]: %w", i, err)
		}
	}

	return n, locs, nil
}

func nonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 1) }

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

// FromNetwork serializes the original (non-pseudo) content of net and
// locs. Edges and locations are listed by ascending ID; a node entry is
// written only for junctions whose weight differs from 1 or that have no
// location. locs may be nil.
func FromNetwork(net *network.Network, locs *network.Locations) *Document {
	doc := &Document{Tolerance: net.Tolerance()}

	for _, id := range net.NodeIDs() {
		if net.IsPseudoNode(id) {
			continue
		}
		nd := net.Node(id)
		if nd.Weight == 1 && nd.HasPoint {
			continue
		}
		entry := NodeDoc{Point: pointOf(nd.Point)}
		if nd.Weight != 1 {
			w := nd.Weight
			entry.Weight = &w
		}
		if !nd.HasPoint {
			located := false
			entry.Located = &located
		}
		doc.Nodes = append(doc.Nodes, entry)
	}

	for _, eid := range net.EdgeIDs() {
		if net.IsPseudoEdge(eid) {
			continue
		}
		e := net.Edge(eid)
		id, length := int64(e.ID), e.Length
		entry := EdgeDoc{ID: &id, Name: e.Name, Length: &length, Costs: e.Costs}
		for _, p := range e.Points {
			entry.Points = append(entry.Points, pointOf(p))
		}
		doc.Edges = append(doc.Edges, entry)
	}

	if locs == nil {
		return doc
	}
	for _, id := range locs.IDs() {
		loc, _ := locs.Get(id)
		w := loc.Weight
		entry := LocationDoc{
			ID:          loc.ID,
			Edge:        int64(loc.EdgeID),
			T:           loc.T,
			Weight:      &w,
			Origin:      loc.Origin,
			Destination: loc.Destination,
		}
		if loc.HasPoint {
			entry.Point = pointOf(loc.Point)
		}
		doc.Locations = append(doc.Locations, entry)
	}

	return doc
}
