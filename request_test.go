package parquet

import (
	"context"
	"testing"

	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/schema"
	"github.com/colstream/parquet/source/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrType(t format.Type) *format.Type                             { return &t }
func ptrRep(r format.FieldRepetitionType) *format.FieldRepetitionType { return &r }
func ptrInt32(v int32) *int32                                         { return &v }

func flatMeta(t *testing.T) *format.FileMetaData {
	t.Helper()

	return &format.FileMetaData{
		NumRows: 0,
		Schema: []*format.SchemaElement{
			{Name: "schema", NumChildren: ptrInt32(2)},
			{Name: "a", Type: ptrType(format.Type_INT32), RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED)},
			{Name: "b", Type: ptrType(format.Type_BYTE_ARRAY), RepetitionType: ptrRep(format.FieldRepetitionType_OPTIONAL)},
		},
	}
}

func TestRequest_RowRange_ZeroValueMeansWholeFile(t *testing.T) {
	req := &Request{}

	start, end := req.rowRange()
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(-1), end)
}

func TestRequest_RowRange_ExplicitBoundsPreserved(t *testing.T) {
	req := &Request{RowStart: 10, RowEnd: 20}

	start, end := req.rowRange()
	assert.Equal(t, int64(10), start)
	assert.Equal(t, int64(20), end)
}

func TestNewRequest_Defaults(t *testing.T) {
	src := memory.NewSource(nil)
	req := NewRequest(src)

	assert.True(t, req.UTF8)
	assert.Equal(t, int64(-1), req.RowEnd)
	assert.Same(t, src, req.Source.(*memory.Source))
}

func TestRequest_SingleColumn_RequiresExactlyOne(t *testing.T) {
	req := &Request{Metadata: flatMeta(t), Columns: []string{"a", "b"}}

	_, _, _, err := req.singleColumn(context.Background())
	require.Error(t, err)

	kind, ok := Kind(err)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidRequest, kind)
}

func TestRequest_SingleColumn_MissingColumnFails(t *testing.T) {
	req := &Request{Metadata: flatMeta(t), Columns: []string{"nonexistent"}}

	_, _, _, err := req.singleColumn(context.Background())
	require.Error(t, err)

	kind, ok := Kind(err)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidRequest, kind)
	assert.Contains(t, err.Error(), "Column 'nonexistent' not found")
}

func TestRequest_SingleColumn_ResolvesLeaf(t *testing.T) {
	req := &Request{Metadata: flatMeta(t), Columns: []string{"a"}}

	_, _, col, err := req.singleColumn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", col.FlatName())
}

func stringColumn(t *testing.T) *schema.Column {
	t.Helper()

	s, err := schema.LoadSchema([]*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(1)},
		{
			Name:           "s",
			Type:           ptrType(format.Type_BYTE_ARRAY),
			RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED),
			ConvertedType:  func() *format.ConvertedType { c := format.ConvertedType_UTF8; return &c }(),
		},
	})
	require.NoError(t, err)

	return s.GetColumnByName("s")
}

func TestRequest_ConvertValues_DefaultUTF8DecodesStrings(t *testing.T) {
	req := &Request{UTF8: true}
	col := stringColumn(t)

	values := []interface{}{[]byte("hello"), nil, []byte("world")}
	require.NoError(t, req.convertValues(col, values))

	assert.Equal(t, "hello", values[0])
	assert.Nil(t, values[1])
	assert.Equal(t, "world", values[2])
}

func TestRequest_ConvertValues_UTF8DisabledLeavesBytes(t *testing.T) {
	req := &Request{UTF8: false}
	col := stringColumn(t)

	values := []interface{}{[]byte("hello")}
	require.NoError(t, req.convertValues(col, values))

	assert.Equal(t, []byte("hello"), values[0])
}

func TestRequest_ConvertValues_RawDictionarySkipsConversion(t *testing.T) {
	req := &Request{UTF8: true, RawDictionary: true}
	col := stringColumn(t)

	values := []interface{}{int32(3)}
	require.NoError(t, req.convertValues(col, values))

	assert.Equal(t, int32(3), values[0])
}

func TestRequest_ConvertDictionaryValues_IgnoresRawDictionaryFlag(t *testing.T) {
	req := &Request{UTF8: true, RawDictionary: true}
	col := stringColumn(t)

	values := []interface{}{[]byte("hello")}
	require.NoError(t, req.convertDictionaryValues(col, values))

	assert.Equal(t, "hello", values[0])
}
