package planner

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

func testSchema(t *testing.T) *schema.Schema {
	elems := []*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(2)},
		{Name: "id", Type: ptrType(format.Type_INT64), RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED)},
		{Name: "name", Type: ptrType(format.Type_BYTE_ARRAY), RepetitionType: ptrRep(format.FieldRepetitionType_OPTIONAL)},
	}

	s, err := schema.LoadSchema(elems)
	require.NoError(t, err)

	return s
}

func testMeta() *format.FileMetaData {
	chunk := func() *format.ColumnChunk { return &format.ColumnChunk{MetaData: &format.ColumnMetaData{}} }

	return &format.FileMetaData{
		NumRows: 250,
		RowGroups: []*format.RowGroup{
			{NumRows: 100, Columns: []*format.ColumnChunk{chunk(), chunk()}},
			{NumRows: 100, Columns: []*format.ColumnChunk{chunk(), chunk()}},
			{NumRows: 50, Columns: []*format.ColumnChunk{chunk(), chunk()}},
		},
	}
}

func TestBuild_WholeFile(t *testing.T) {
	plan, err := Build(testMeta(), testSchema(t), 0, -1, nil)
	require.NoError(t, err)
	require.Len(t, plan.RowGroups, 3)

	for _, rg := range plan.RowGroups {
		assert.Equal(t, int64(0), rg.SkipRows)
		assert.Equal(t, rg.NumRows, rg.TakeRows)
		assert.Len(t, rg.Columns, 2)
	}
}

func TestBuild_RowRangeSpanningTwoGroups(t *testing.T) {
	plan, err := Build(testMeta(), testSchema(t), 50, 150, nil)
	require.NoError(t, err)
	require.Len(t, plan.RowGroups, 2)

	assert.Equal(t, 0, plan.RowGroups[0].Index)
	assert.Equal(t, int64(50), plan.RowGroups[0].SkipRows)
	assert.Equal(t, int64(50), plan.RowGroups[0].TakeRows)

	assert.Equal(t, 1, plan.RowGroups[1].Index)
	assert.Equal(t, int64(0), plan.RowGroups[1].SkipRows)
	assert.Equal(t, int64(50), plan.RowGroups[1].TakeRows)
}

func TestBuild_ColumnSelection(t *testing.T) {
	plan, err := Build(testMeta(), testSchema(t), 0, -1, []string{"id"})
	require.NoError(t, err)

	for _, rg := range plan.RowGroups {
		require.Len(t, rg.Columns, 1)
		assert.Equal(t, "id", rg.Columns[0].Column.FlatName())
	}
}

func TestBuild_InvalidRange(t *testing.T) {
	_, err := Build(testMeta(), testSchema(t), 10, 5, nil)
	assert.Error(t, err)

	_, err = Build(testMeta(), testSchema(t), -1, 5, nil)
	assert.Error(t, err)
}
