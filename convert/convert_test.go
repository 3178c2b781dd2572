package convert

import (
	"testing"
	"time"

	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrType(t format.Type) *format.Type                             { return &t }
func ptrRep(r format.FieldRepetitionType) *format.FieldRepetitionType { return &r }
func ptrInt32(v int32) *int32                                         { return &v }
func ptrConv(c format.ConvertedType) *format.ConvertedType            { return &c }

func columnWithConverted(t *testing.T, typ format.Type, conv format.ConvertedType, scale int32) *schema.Column {
	t.Helper()

	elem := &format.SchemaElement{
		Name:           "a",
		Type:           ptrType(typ),
		RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED),
		ConvertedType:  ptrConv(conv),
	}
	if conv == format.ConvertedType_DECIMAL {
		elem.Scale = &scale
	}

	s, err := schema.LoadSchema([]*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(1)},
		elem,
	})
	require.NoError(t, err)

	return s.GetColumnByName("a")
}

func columnWithLogical(t *testing.T, typ format.Type, lt *format.LogicalType) *schema.Column {
	t.Helper()

	s, err := schema.LoadSchema([]*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(1)},
		{
			Name:           "a",
			Type:           ptrType(typ),
			RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED),
			LogicalType:    lt,
		},
	})
	require.NoError(t, err)

	return s.GetColumnByName("a")
}

func TestTable_ForColumn_StringDefault(t *testing.T) {
	col := columnWithConverted(t, format.Type_BYTE_ARRAY, format.ConvertedType_UTF8, 0)

	table := NewTable(Options{UTF8: true})
	conv, kind, ok := table.ForColumn(col)
	require.True(t, ok)
	assert.Equal(t, KindString, kind)

	out, err := conv([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestTable_ForColumn_StringUTF8Disabled(t *testing.T) {
	col := columnWithConverted(t, format.Type_BYTE_ARRAY, format.ConvertedType_UTF8, 0)

	table := NewTable(Options{UTF8: false})
	conv, _, ok := table.ForColumn(col)
	require.True(t, ok)

	out, err := conv([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out)
}

func TestTable_ForColumn_DecimalBytes(t *testing.T) {
	col := columnWithConverted(t, format.Type_FIXED_LEN_BYTE_ARRAY, format.ConvertedType_DECIMAL, 2)

	table := NewTable(Options{})
	conv, kind, ok := table.ForColumn(col)
	require.True(t, ok)
	assert.Equal(t, KindDecimal, kind)

	out, err := conv([]byte{0x01, 0x00})
	require.NoError(t, err)

	dec, ok := out.(Decimal)
	require.True(t, ok)
	assert.EqualValues(t, 256, dec.Unscaled.Int64())
	assert.EqualValues(t, 2, dec.Scale)
}

func TestTable_ForColumn_DecimalNegativeBytes(t *testing.T) {
	col := columnWithConverted(t, format.Type_FIXED_LEN_BYTE_ARRAY, format.ConvertedType_DECIMAL, 0)

	table := NewTable(Options{})
	conv, _, _ := table.ForColumn(col)

	out, err := conv([]byte{0xff, 0xff})
	require.NoError(t, err)

	dec := out.(Decimal)
	assert.EqualValues(t, -1, dec.Unscaled.Int64())
}

func TestTable_ForColumn_DecimalInt32(t *testing.T) {
	col := columnWithConverted(t, format.Type_INT32, format.ConvertedType_DECIMAL, 3)

	table := NewTable(Options{})
	conv, _, _ := table.ForColumn(col)

	out, err := conv(int32(-42))
	require.NoError(t, err)

	dec := out.(Decimal)
	assert.EqualValues(t, -42, dec.Unscaled.Int64())
	assert.EqualValues(t, 3, dec.Scale)
}

func TestTable_ForColumn_Date(t *testing.T) {
	col := columnWithConverted(t, format.Type_INT32, format.ConvertedType_DATE, 0)

	table := NewTable(Options{})
	conv, kind, ok := table.ForColumn(col)
	require.True(t, ok)
	assert.Equal(t, KindDate, kind)

	out, err := conv(int32(0))
	require.NoError(t, err)
	assert.Equal(t, epoch, out)
}

func TestTable_ForColumn_TimestampMillisLogical(t *testing.T) {
	col := columnWithLogical(t, format.Type_INT64, &format.LogicalType{
		TIMESTAMP: &format.TimestampType{Unit: &format.TimeUnit{Millis: &struct{}{}}},
	})

	table := NewTable(Options{})
	conv, kind, ok := table.ForColumn(col)
	require.True(t, ok)
	assert.Equal(t, KindTimestampMillis, kind)

	out, err := conv(int64(1000))
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1, 0).UTC(), out)
}

func TestTable_ForColumn_TimestampMicrosLogical(t *testing.T) {
	col := columnWithLogical(t, format.Type_INT64, &format.LogicalType{
		TIMESTAMP: &format.TimestampType{Unit: &format.TimeUnit{Micros: &struct{}{}}},
	})

	table := NewTable(Options{})
	conv, kind, ok := table.ForColumn(col)
	require.True(t, ok)
	assert.Equal(t, KindTimestampMicros, kind)

	out, err := conv(int64(1_000_000))
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1, 0).UTC(), out)
}

func TestTable_ForColumn_Int96TimestampDefault(t *testing.T) {
	s, err := schema.LoadSchema([]*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(1)},
		{Name: "a", Type: ptrType(format.Type_INT96), RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED)},
	})
	require.NoError(t, err)

	table := NewTable(Options{})
	conv, kind, ok := table.ForColumn(s.GetColumnByName("a"))
	require.True(t, ok)
	assert.Equal(t, KindInt96Timestamp, kind)

	var raw [12]byte
	julianDay := uint32(julianUnixEpochDay)
	raw[8] = byte(julianDay)
	raw[9] = byte(julianDay >> 8)
	raw[10] = byte(julianDay >> 16)

	out, err := conv(raw)
	require.NoError(t, err)
	assert.Equal(t, epoch, out)
}

func TestTable_ForColumn_Float16(t *testing.T) {
	col := columnWithLogical(t, format.Type_FIXED_LEN_BYTE_ARRAY, &format.LogicalType{FLOAT16: &struct{}{}})

	table := NewTable(Options{})
	conv, kind, ok := table.ForColumn(col)
	require.True(t, ok)
	assert.Equal(t, KindFloat16, kind)

	out, err := conv(uint16(0x3c00)) // 1.0 in float16
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.(float32), 0.0001)
}

func TestTable_ForColumn_IntervalNoDefault(t *testing.T) {
	col := columnWithConverted(t, format.Type_FIXED_LEN_BYTE_ARRAY, format.ConvertedType_INTERVAL, 0)

	table := NewTable(Options{})
	_, kind, ok := table.ForColumn(col)
	assert.False(t, ok)
	assert.Equal(t, KindInterval, kind)
}

func TestTable_ForColumn_Override(t *testing.T) {
	col := columnWithConverted(t, format.Type_INT32, format.ConvertedType_DATE, 0)

	called := false
	table := NewTable(Options{Overrides: map[Kind]Converter{
		KindDate: func(v interface{}) (interface{}, error) {
			called = true

			return "overridden", nil
		},
	}})

	conv, _, ok := table.ForColumn(col)
	require.True(t, ok)

	out, err := conv(int32(0))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "overridden", out)
}

func TestTable_ForColumn_NoLogicalType(t *testing.T) {
	s, err := schema.LoadSchema([]*format.SchemaElement{
		{Name: "schema", NumChildren: ptrInt32(1)},
		{Name: "a", Type: ptrType(format.Type_INT32), RepetitionType: ptrRep(format.FieldRepetitionType_REQUIRED)},
	})
	require.NoError(t, err)

	table := NewTable(Options{})
	_, _, ok := table.ForColumn(s.GetColumnByName("a"))
	assert.False(t, ok)
}
