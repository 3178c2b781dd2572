package layout

import (
	"context"
	"testing"

	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrType(t format.Type) *format.Type                             { return &t }
func ptrRep(r format.FieldRepetitionType) *format.FieldRepetitionType { return &r }
func ptrInt32(v int32) *int32                                         { return &v }
func ptrString(s string) *string                                     { return &s }

func int32Column(t *testing.T) *schema.Column {
	t.Helper()

	s, err := schema.LoadSchema([]*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(1)},
		{Name: "a", Type: ptrType(format.Type_INT32), RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED)},
	})
	require.NoError(t, err)

	return s.GetColumnByName("a")
}

func TestChunkReader_ReadChunk_RejectsExternalFile(t *testing.T) {
	col := int32Column(t)

	chunk := &format.ColumnChunk{
		FilePath: ptrString("other.parquet"),
		MetaData: &format.ColumnMetaData{Type: format.Type_INT32},
	}

	_, err := NewChunkReader().ReadChunk(context.Background(), nil, col, chunk)
	assert.Error(t, err)
}

func TestChunkReader_ReadChunk_RejectsMissingMetaData(t *testing.T) {
	col := int32Column(t)

	_, err := NewChunkReader().ReadChunk(context.Background(), nil, col, &format.ColumnChunk{})
	assert.Error(t, err)
}

func TestChunkReader_ReadChunk_RejectsTypeMismatch(t *testing.T) {
	col := int32Column(t)

	chunk := &format.ColumnChunk{MetaData: &format.ColumnMetaData{Type: format.Type_BYTE_ARRAY}}

	_, err := NewChunkReader().ReadChunk(context.Background(), nil, col, chunk)
	assert.Error(t, err)
}

func TestChunkReader_ReadDictionaryPage_AbsentWhenNoOffset(t *testing.T) {
	col := int32Column(t)

	chunk := &format.ColumnChunk{MetaData: &format.ColumnMetaData{Type: format.Type_INT32}}

	values, ok, err := NewChunkReader().ReadDictionaryPage(context.Background(), nil, col, chunk)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, values)
}

func TestChunkReader_ReadDictionaryPageHeader_AbsentWhenNoOffset(t *testing.T) {
	chunk := &format.ColumnChunk{MetaData: &format.ColumnMetaData{Type: format.Type_INT32}}

	header, ok, err := NewChunkReader().ReadDictionaryPageHeader(context.Background(), nil, chunk)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, header)
}
