package assemble

import (
	"github.com/colstream/parquet/schema"
	"github.com/hexbee-net/errors"
)

// RowFormat selects the shape BuildRows produces.
type RowFormat int

const (
	// RowFormatArray produces a positional tuple over the requested columns.
	RowFormatArray RowFormat = iota
	// RowFormatObject produces a map keyed by the schema's field names,
	// nesting groups and ordering REPEATED groups as slices.
	RowFormatObject
)

// ColumnSet pairs a leaf column with its replayed values, ready for
// assembly into rows.
type ColumnSet struct {
	Column *schema.Column
	Values *ColumnValues
}

// BuildRows walks cols in lockstep, pulling one logical record per column
// per row, for count rows. root is the schema's message-level node: for
// RowFormatObject it drives the cross-leaf synchronization a Machine needs
// to zip sibling leaves under a shared repeated ancestor into one ordered
// sequence of objects rather than one array per leaf.
func BuildRows(root *schema.Column, cols []ColumnSet, count int, format RowFormat) ([]interface{}, error) {
	rows := make([]interface{}, count)

	var machine *Machine
	if format == RowFormatObject {
		machine = NewMachine(root, cols)
	}

	for i := 0; i < count; i++ {
		row, err := buildRow(machine, cols, format)
		if err != nil {
			return nil, errors.WithFields(err, errors.Fields{"row": i})
		}

		rows[i] = row
	}

	return rows, nil
}

func buildRow(machine *Machine, cols []ColumnSet, format RowFormat) (interface{}, error) {
	switch format {
	case RowFormatArray:
		row := make([]interface{}, len(cols))

		for i, cs := range cols {
			v, err := cs.Values.Get()
			if err != nil {
				return nil, errors.WithFields(
					errors.Wrap(err, "failed to read column value"),
					errors.Fields{"column": cs.Column.FlatName()})
			}

			row[i] = v
		}

		return row, nil

	case RowFormatObject:
		row, err := machine.BuildObject()
		if err != nil {
			return nil, errors.Wrap(err, "failed to assemble object row")
		}

		return row, nil

	default:
		return nil, errors.WithFields(errors.New("unknown row format"), errors.Fields{"format": format})
	}
}
