package netio

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/katalvlaran/una/network"
)

// FieldSetter receives per-node output values. Implementations decide
// where they go: a table, a feature attribute, a database row.
type FieldSetter interface {
	SetField(id network.NodeID, field string, value float64) error
}

// WriteMetrics copies fields of every node in ids into setter. A nil ids
// means every original node in ascending order. Field names are the
// network.Field* constants or accumulator names.
//
// Errors: ErrUnknownField, network.ErrNodeNotFound, or the setter's error.
func WriteMetrics(net *network.Network, ids []network.NodeID, setter FieldSetter, fields []string) error {
	if ids == nil {
		for _, id := range net.NodeIDs() {
			if !net.IsPseudoNode(id) {
				ids = append(ids, id)
			}
		}
	}
	for _, id := range ids {
		nd := net.Node(id)
		if nd == nil {
			return fmt.Errorf("netio: %w: %d", network.ErrNodeNotFound, id)
		}
		for _, f := range fields {
			v, ok := nd.Metrics.Field(f)
			if !ok {
				return fmt.Errorf("%w: %q on node %d", ErrUnknownField, f, id)
			}
			if err := setter.SetField(id, f, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// Table is an in-memory FieldSetter keeping rows in first-write order and
// columns in the order given to NewTable. Nodes with a location get their
// coordinates as x, y columns when net is set.
type Table struct {
	net    *network.Network
	fields []string
	col    map[string]int
	order  []network.NodeID
	rows   map[network.NodeID][]float64
}

// NewTable creates a table with the given columns. net may be nil to omit
// coordinates.
func NewTable(net *network.Network, fields ...string) *Table {
	t := &Table{
		net:    net,
		fields: slices.Clone(fields),
		col:    make(map[string]int, len(fields)),
		rows:   make(map[network.NodeID][]float64),
	}
	for i, f := range fields {
		t.col[f] = i
	}

	return t
}

// SetField implements FieldSetter.
func (t *Table) SetField(id network.NodeID, field string, value float64) error {
	i, ok := t.col[field]
	if !ok {
		return fmt.Errorf("%w: %q is not a table column", ErrUnknownField, field)
	}
	row, ok := t.rows[id]
	if !ok {
		row = make([]float64, len(t.fields))
		t.rows[id] = row
		t.order = append(t.order, id)
	}
	row[i] = value

	return nil
}

// Value returns a cell.
func (t *Table) Value(id network.NodeID, field string) (float64, bool) {
	row, ok := t.rows[id]
	if !ok {
		return 0, false
	}
	i, ok := t.col[field]
	if !ok {
		return 0, false
	}

	return row[i], true
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.order) }

// WriteCSV writes a header line followed by one line per row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"node"}
	if t.net != nil {
		header = append(header, "x", "y")
	}
	if err := cw.Write(append(header, t.fields...)); err != nil {
		return err
	}
	for _, id := range t.order {
		rec := []string{strconv.FormatInt(int64(id), 10)}
		if t.net != nil {
			x, y := "", ""
			if nd := t.net.Node(id); nd != nil && nd.HasPoint {
				x, y = formatFloat(nd.Point.X), formatFloat(nd.Point.Y)
			}
			rec = append(rec, x, y)
		}
		for _, v := range t.rows[id] {
			rec = append(rec, formatFloat(v))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
