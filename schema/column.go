// Package schema builds the read-only column tree out of a FileMetaData's
// flat SchemaElement list, computing each leaf's maximum repetition and
// definition level along the way.
package schema

import (
	"github.com/colstream/parquet/format"
	"github.com/hexbee-net/errors"
)

// Column is one node of the schema tree: either a group with children or a
// leaf holding a physical type.
type Column struct {
	index    int
	name     string
	flatName string
	path     []string

	children []*Column

	rep  format.FieldRepetitionType
	maxR uint16
	maxD uint16

	element *format.SchemaElement

	typ        *format.Type
	typeLength int32
}

// Children returns the column's child columns. Empty for a leaf.
func (c *Column) Children() []*Column {
	return c.children
}

// MaxDefinitionLevel returns the maximum definition level for this column.
func (c *Column) MaxDefinitionLevel() uint16 {
	return c.maxD
}

// MaxRepetitionLevel returns the maximum repetition level for this column.
func (c *Column) MaxRepetitionLevel() uint16 {
	return c.maxR
}

// FlatName returns the column's dotted path, e.g. "address.city".
func (c *Column) FlatName() string {
	return c.flatName
}

// Path returns the column's path as individual segments.
func (c *Column) Path() []string {
	return c.path
}

// Name returns the column's own (unqualified) name.
func (c *Column) Name() string {
	return c.name
}

// Index returns the column's zero-based position among leaf columns.
func (c *Column) Index() int {
	return c.index
}

// Element returns the raw SchemaElement this column was built from.
func (c *Column) Element() *format.SchemaElement {
	return c.element
}

// Type returns the column's physical type, or nil for a group.
func (c *Column) Type() *format.Type {
	return c.typ
}

// TypeLength returns the element width for FIXED_LEN_BYTE_ARRAY columns.
func (c *Column) TypeLength() int32 {
	return c.typeLength
}

// RepetitionType returns the column's repetition type.
func (c *Column) RepetitionType() format.FieldRepetitionType {
	return c.rep
}

// IsLeaf reports whether the column holds values directly, as opposed to
// being a group of children.
func (c *Column) IsLeaf() bool {
	return c.typ != nil
}

func (c *Column) readGroupSchema(elems []*format.SchemaElement, name string, idx int, dLevel, rLevel uint16, path []string) (newIndex int, err error) {
	if len(elems) <= idx {
		return 0, errors.WithFields(errors.New("schema index out of bound"), errors.Fields{"index": idx, "size": len(elems)})
	}

	s := elems[idx]

	if s.Type != nil {
		return 0, errors.WithFields(errors.New("field type is not nil for group"), errors.Fields{"index": idx})
	}

	if s.NumChildren == nil || *s.NumChildren <= 0 {
		return 0, errors.WithFields(errors.New("field NumChildren is invalid"), errors.Fields{"index": idx})
	}

	l := int(*s.NumChildren)

	if len(elems) <= idx+l {
		return 0, errors.WithFields(errors.New("not enough elements in schema list"), errors.Fields{"index": idx})
	}

	if s.RepetitionType != nil && *s.RepetitionType != format.FieldRepetitionType_REQUIRED {
		dLevel++
	}

	if s.RepetitionType != nil && *s.RepetitionType == format.FieldRepetitionType_REPEATED {
		rLevel++
	}

	c.maxD = dLevel
	c.maxR = rLevel

	if name == "" {
		name = s.Name
	} else {
		name += "." + s.Name
	}

	c.flatName = name
	c.name = s.Name
	c.path = append(append([]string{}, path...), s.Name)
	c.element = s
	c.children = make([]*Column, 0, l)

	if s.RepetitionType != nil {
		c.rep = *s.RepetitionType
	}

	idx++

	for i := 0; i < l; i++ {
		child := &Column{}

		if elems[idx].Type == nil {
			idx, err = child.readGroupSchema(elems, name, idx, dLevel, rLevel, c.path)
		} else {
			idx, err = child.readColumnSchema(elems, name, idx, dLevel, rLevel, c.path)
		}

		if err != nil {
			return 0, err
		}

		c.children = append(c.children, child)
	}

	return idx, nil
}

func (c *Column) readColumnSchema(elems []*format.SchemaElement, name string, idx int, dLevel, rLevel uint16, path []string) (newIndex int, err error) {
	s := elems[idx]

	if s.Name == "" {
		return 0, errors.WithFields(errors.New("name in schema is empty"), errors.Fields{"index": idx})
	}

	if s.RepetitionType == nil {
		return 0, errors.WithFields(errors.New("field RepetitionType is nil"), errors.Fields{"index": idx})
	}

	if *s.RepetitionType != format.FieldRepetitionType_REQUIRED {
		dLevel++
	}

	if *s.RepetitionType == format.FieldRepetitionType_REPEATED {
		rLevel++
	}

	c.element = s
	c.maxR = rLevel
	c.maxD = dLevel
	c.rep = *s.RepetitionType
	c.name = s.Name
	c.path = append(append([]string{}, path...), s.Name)

	if name == "" {
		c.flatName = s.Name
	} else {
		c.flatName = name + "." + s.Name
	}

	if s.Type == nil {
		return 0, errors.WithFields(errors.New("leaf field has no physical type"), errors.Fields{"index": idx})
	}

	c.typ = s.Type

	if s.TypeLength != nil {
		c.typeLength = *s.TypeLength
	}

	return idx + 1, nil
}
