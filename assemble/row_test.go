package assemble

import (
	"testing"

	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrType(t format.Type) *format.Type                             { return &t }
func ptrRep(r format.FieldRepetitionType) *format.FieldRepetitionType { return &r }
func ptrInt32(v int32) *int32                                         { return &v }

func flatSchema(t *testing.T) *schema.Schema {
	t.Helper()

	s, err := schema.LoadSchema([]*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(2)},
		{Name: "a", Type: ptrType(format.Type_INT32), RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED)},
		{Name: "b", Type: ptrType(format.Type_BYTE_ARRAY), RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED)},
	})
	require.NoError(t, err)

	return s
}

func nestedSchema(t *testing.T) *schema.Schema {
	t.Helper()

	s, err := schema.LoadSchema([]*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(1)},
		{Name: "address", RepetitionType: ptrRep(format.FieldRepetitionType_OPTIONAL), NumChildren: ptrInt32(1)},
		{Name: "street", Type: ptrType(format.Type_BYTE_ARRAY), RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED)},
	})
	require.NoError(t, err)

	return s
}

func TestBuildRows_ArrayFormat(t *testing.T) {
	s := flatSchema(t)

	a := s.GetColumnByName("a")
	b := s.GetColumnByName("b")
	require.NotNil(t, a)
	require.NotNil(t, b)

	av := NewColumnValues(a.MaxDefinitionLevel(), a.MaxRepetitionLevel())
	require.NoError(t, av.Append(packed(0, 0, 0), packed(0, 0, 0), []interface{}{1, 2}, 2))

	bv := NewColumnValues(b.MaxDefinitionLevel(), b.MaxRepetitionLevel())
	require.NoError(t, bv.Append(packed(0, 0, 0), packed(0, 0, 0), []interface{}{"x", "y"}, 2))

	rows, err := BuildRows(s.Root(), []ColumnSet{{Column: a, Values: av}, {Column: b, Values: bv}}, 2, RowFormatArray)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []interface{}{1, "x"}, rows[0])
	assert.Equal(t, []interface{}{2, "y"}, rows[1])
}

func TestBuildRows_ObjectFormatNested(t *testing.T) {
	s := nestedSchema(t)

	street := s.GetColumnByName("address.street")
	require.NotNil(t, street)

	sv := NewColumnValues(street.MaxDefinitionLevel(), street.MaxRepetitionLevel())
	require.NoError(t, sv.Append(packed(0, 0), packed(1, int32(street.MaxDefinitionLevel())), []interface{}{"Main St"}, 1))

	rows, err := BuildRows(s.Root(), []ColumnSet{{Column: street, Values: sv}}, 1, RowFormatObject)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row, ok := rows[0].(map[string]interface{})
	require.True(t, ok)

	address, ok := row["address"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Main St", address["street"])
}

// repeatedGroupSchema models `repeated group phoneNumbers { required
// int64 number; optional binary type; }`, the shape a struct-of-arrays
// merge-by-path gets wrong: sibling leaves under the same REPEATED
// ancestor must be zipped into one ordered sequence of objects.
func repeatedGroupSchema(t *testing.T) *schema.Schema {
	t.Helper()

	s, err := schema.LoadSchema([]*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(1)},
		{Name: "phoneNumbers", RepetitionType: ptrRep(format.FieldRepetitionType_REPEATED), NumChildren: ptrInt32(2)},
		{Name: "number", Type: ptrType(format.Type_INT64), RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED)},
		{Name: "type", Type: ptrType(format.Type_BYTE_ARRAY), RepetitionType: ptrRep(format.FieldRepetitionType_OPTIONAL)},
	})
	require.NoError(t, err)

	return s
}

func TestBuildRows_ObjectFormatRepeatedGroupMultiLeaf(t *testing.T) {
	s := repeatedGroupSchema(t)

	number := s.GetColumnByName("phoneNumbers.number")
	typ := s.GetColumnByName("phoneNumbers.type")
	require.NotNil(t, number)
	require.NotNil(t, typ)

	// record 0: [{number:555,type:"home"}, {number:556,type:nil}]
	// record 1: phoneNumbers absent (empty list)
	nv := NewColumnValues(number.MaxDefinitionLevel(), number.MaxRepetitionLevel())
	require.NoError(t, nv.Append(packed(1, 0, 1, 0), packed(1, 1, 1, 0), []interface{}{int64(555), int64(556)}, 2))

	tv := NewColumnValues(typ.MaxDefinitionLevel(), typ.MaxRepetitionLevel())
	require.NoError(t, tv.Append(packed(1, 0, 1, 0), packed(2, 2, 1, 0), []interface{}{"home"}, 1))

	rows, err := BuildRows(s.Root(), []ColumnSet{{Column: number, Values: nv}, {Column: typ, Values: tv}}, 2, RowFormatObject)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row0, ok := rows[0].(map[string]interface{})
	require.True(t, ok)
	phones, ok := row0["phoneNumbers"].([]interface{})
	require.True(t, ok)
	require.Len(t, phones, 2)
	assert.Equal(t, map[string]interface{}{"number": int64(555), "type": "home"}, phones[0])
	assert.Equal(t, map[string]interface{}{"number": int64(556), "type": nil}, phones[1])

	row1, ok := rows[1].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{}, row1["phoneNumbers"])
}
