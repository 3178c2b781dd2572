package schema

import (
	"strings"

	"github.com/colstream/parquet/format"
	"github.com/hexbee-net/errors"
)

// Schema is the read-only column tree parsed from a file's FileMetaData.
type Schema struct {
	root *Column
}

// LoadSchema builds a Schema from a FileMetaData's flat SchemaElement list,
// the first element being the message root.
func LoadSchema(elems []*format.SchemaElement) (*Schema, error) {
	if len(elems) == 0 {
		return nil, errors.New("empty schema")
	}

	root := elems[0]
	rest := elems[1:]

	s := &Schema{
		root: &Column{
			name:     root.Name,
			flatName: "",
			element:  root,
			children: make([]*Column, 0, len(rest)),
		},
	}

	for idx := 0; idx < len(rest); {
		c := &Column{}

		var err error
		if rest[idx].Type == nil {
			idx, err = c.readGroupSchema(rest, "", idx, 0, 0, nil)
		} else {
			idx, err = c.readColumnSchema(rest, "", idx, 0, 0, nil)
		}

		if err != nil {
			return nil, errors.WithStack(err)
		}

		s.root.children = append(s.root.children, c)
	}

	s.sortIndex()

	return s, nil
}

// Root returns the schema tree's message-level root node.
func (s *Schema) Root() *Column {
	return s.root
}

// Columns flattens the tree into its leaf (data) columns, in on-disk order.
func (s *Schema) Columns() []*Column {
	var ret []*Column

	var walk func([]*Column)
	walk = func(cols []*Column) {
		for _, c := range cols {
			if c.IsLeaf() {
				ret = append(ret, c)
			} else {
				walk(c.children)
			}
		}
	}

	walk(s.root.children)

	return ret
}

// GetColumnByName looks up a leaf column by its dotted flat name.
func (s *Schema) GetColumnByName(path string) *Column {
	for _, c := range s.Columns() {
		if c.flatName == path {
			return c
		}
	}

	return nil
}

// IsSelected reports whether colPath is covered by one of the requested
// column patterns: an exact match, or colPath nested under a selected
// group (pattern is a dotted prefix of colPath).
func IsSelected(colPath string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}

	for _, pattern := range selected {
		if pattern == colPath {
			return true
		}

		if strings.HasPrefix(colPath, pattern+".") {
			return true
		}
	}

	return false
}

func (s *Schema) sortIndex() {
	idx := 0

	var walk func([]*Column)
	walk = func(cols []*Column) {
		for _, c := range cols {
			if c.IsLeaf() {
				c.index = idx
				idx++
			} else {
				walk(c.children)
			}
		}
	}

	walk(s.root.children)
}
