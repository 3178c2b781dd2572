package schema

import (
	"testing"

	"github.com/colstream/parquet/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrType(t format.Type) *format.Type                             { return &t }
func ptrRep(r format.FieldRepetitionType) *format.FieldRepetitionType { return &r }
func ptrInt32(v int32) *int32                                         { return &v }

func TestLoadSchema_FlatMessage(t *testing.T) {
	elems := []*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(2)},
		{Name: "id", Type: ptrType(format.Type_INT64), RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED)},
		{Name: "name", Type: ptrType(format.Type_BYTE_ARRAY), RepetitionType: ptrRep(format.FieldRepetitionType_OPTIONAL)},
	}

	s, err := LoadSchema(elems)
	require.NoError(t, err)

	cols := s.Columns()
	require.Len(t, cols, 2)

	assert.Equal(t, "id", cols[0].FlatName())
	assert.Equal(t, uint16(0), cols[0].MaxDefinitionLevel())
	assert.Equal(t, uint16(0), cols[0].MaxRepetitionLevel())

	assert.Equal(t, "name", cols[1].FlatName())
	assert.Equal(t, uint16(1), cols[1].MaxDefinitionLevel())

	assert.Same(t, cols[1], s.GetColumnByName("name"))
	assert.Nil(t, s.GetColumnByName("missing"))
}

func TestLoadSchema_NestedGroupLevels(t *testing.T) {
	elems := []*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(1)},
		{Name: "address", RepetitionType: ptrRep(format.FieldRepetitionType_OPTIONAL), NumChildren: ptrInt32(1)},
		{Name: "tags", Type: ptrType(format.Type_BYTE_ARRAY), RepetitionType: ptrRep(format.FieldRepetitionType_REPEATED)},
	}

	s, err := LoadSchema(elems)
	require.NoError(t, err)

	cols := s.Columns()
	require.Len(t, cols, 1)

	assert.Equal(t, "address.tags", cols[0].FlatName())
	assert.Equal(t, uint16(2), cols[0].MaxDefinitionLevel())
	assert.Equal(t, uint16(1), cols[0].MaxRepetitionLevel())
	assert.Equal(t, []string{"address", "tags"}, cols[0].Path())
}

func TestIsSelected(t *testing.T) {
	assert.True(t, IsSelected("a.b", nil))
	assert.True(t, IsSelected("a.b", []string{"a.b"}))
	assert.True(t, IsSelected("a.b.c", []string{"a.b"}))
	assert.False(t, IsSelected("a.c", []string{"a.b"}))
}
