package assemble

import (
	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/schema"
	"github.com/hexbee-net/errors"
)

// Machine reassembles one row group's worth of nested records from
// independently-decoded leaf column streams. Sibling leaves that share a
// repeated or optional ancestor are read in lockstep off that ancestor's
// repetition/definition level transitions, so a REPEATED group comes back
// as one ordered sequence of objects rather than one array per leaf.
//
// The recursion rests on the Dremel invariant that every leaf beneath a
// given schema node observes identical repetition/definition transitions
// at that node's own depth, regardless of what happens further down each
// leaf's own branch: it is always safe to peek any one selected
// descendant leaf to decide whether a node is present, or whether a
// REPEATED node has another element.
type Machine struct {
	root   *schema.Column
	byPath map[string]*ColumnValues
}

// NewMachine builds a Machine over root's schema tree, resolving each
// entry in cols to its ColumnValues by flat name. Leaves absent from cols
// are treated as unselected: their subtrees are omitted from the
// assembled object entirely.
func NewMachine(root *schema.Column, cols []ColumnSet) *Machine {
	byPath := make(map[string]*ColumnValues, len(cols))
	for _, cs := range cols {
		byPath[cs.Column.FlatName()] = cs.Values
	}

	return &Machine{root: root, byPath: byPath}
}

// BuildObject assembles one top-level record as a keyed map, nesting
// groups as maps and REPEATED nodes as ordered slices.
func (m *Machine) BuildObject() (map[string]interface{}, error) {
	return m.buildFields(m.root)
}

// buildFields assembles node's selected children into a keyed map. node
// itself is assumed already present; presence of each child is decided
// individually by buildValue.
func (m *Machine) buildFields(node *schema.Column) (map[string]interface{}, error) {
	row := make(map[string]interface{})

	for _, child := range node.Children() {
		if !m.hasSelected(child) {
			continue
		}

		v, err := m.buildValue(child)
		if err != nil {
			return nil, errors.WithFields(err, errors.Fields{"field": child.Name()})
		}

		row[child.Name()] = v
	}

	return row, nil
}

// buildValue consumes exactly one occurrence of node, and everything
// beneath it, from every selected leaf under node.
func (m *Machine) buildValue(node *schema.Column) (interface{}, error) {
	if node.RepetitionType() == format.FieldRepetitionType_REPEATED {
		return m.buildRepeated(node)
	}

	if node.IsLeaf() {
		return m.consumeLeaf(node)
	}

	present, err := m.present(node)
	if err != nil {
		return nil, err
	}

	if !present {
		if err := m.skip(node); err != nil {
			return nil, err
		}

		return nil, nil
	}

	return m.buildFields(node)
}

// buildRepeated assembles a REPEATED leaf or group into an ordered slice,
// looping while the representative leaf's next repetition level stays at
// or above node's own, per the level-pair inspection rule.
func (m *Machine) buildRepeated(node *schema.Column) ([]interface{}, error) {
	present, err := m.present(node)
	if err != nil {
		return nil, err
	}

	out := []interface{}{}

	if !present {
		return out, m.skip(node)
	}

	for {
		var elem interface{}

		if node.IsLeaf() {
			elem, err = m.consumeLeaf(node)
		} else {
			elem, err = m.buildFields(node)
		}

		if err != nil {
			return nil, err
		}

		out = append(out, elem)

		r, ok, err := m.peekRepetition(node)
		if err != nil {
			return nil, err
		}

		if !ok || r < int32(node.MaxRepetitionLevel()) {
			return out, nil
		}
	}
}

func (m *Machine) consumeLeaf(node *schema.Column) (interface{}, error) {
	cv := m.byPath[node.FlatName()]

	v, present, err := cv.consumeSlot()
	if err != nil {
		return nil, err
	}

	if !present {
		return nil, nil
	}

	return v, nil
}

// present peeks node's representative leaf to decide whether node (and
// everything above it that hasn't already been confirmed present by the
// caller) is present for the record currently being assembled.
func (m *Machine) present(node *schema.Column) (bool, error) {
	leaf := m.representative(node)
	if leaf == nil {
		return false, errors.WithFields(errors.New("no selected leaf under node"), errors.Fields{"node": node.FlatName()})
	}

	_, d, ok := m.byPath[leaf.FlatName()].PeekLevels()
	if !ok {
		return false, errors.WithFields(errors.New("column ran out of levels"), errors.Fields{"column": leaf.FlatName()})
	}

	return d >= int32(node.MaxDefinitionLevel()), nil
}

func (m *Machine) peekRepetition(node *schema.Column) (rLevel int32, ok bool, err error) {
	leaf := m.representative(node)
	if leaf == nil {
		return 0, false, errors.WithFields(errors.New("no selected leaf under node"), errors.Fields{"node": node.FlatName()})
	}

	r, _, ok := m.byPath[leaf.FlatName()].PeekLevels()

	return r, ok, nil
}

// skip discards one absent occurrence's placeholder slot from every
// selected leaf beneath node.
func (m *Machine) skip(node *schema.Column) error {
	if node.IsLeaf() {
		cv, ok := m.byPath[node.FlatName()]
		if !ok {
			return nil
		}

		_, _, err := cv.consumeSlot()

		return err
	}

	for _, child := range node.Children() {
		if err := m.skip(child); err != nil {
			return err
		}
	}

	return nil
}

// hasSelected reports whether node or any of its descendants is a
// selected leaf.
func (m *Machine) hasSelected(node *schema.Column) bool {
	return m.representative(node) != nil
}

// representative returns the first selected leaf under node in schema
// order, or nil if node has none.
func (m *Machine) representative(node *schema.Column) *schema.Column {
	if node.IsLeaf() {
		if _, ok := m.byPath[node.FlatName()]; ok {
			return node
		}

		return nil
	}

	for _, child := range node.Children() {
		if r := m.representative(child); r != nil {
			return r
		}
	}

	return nil
}
