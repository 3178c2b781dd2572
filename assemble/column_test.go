package assemble

import (
	"testing"

	"github.com/colstream/parquet/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packed(bitWidth int, vs ...int32) *levels.PackedArray {
	a := &levels.PackedArray{}
	a.Reset(bitWidth)

	for _, v := range vs {
		a.AppendSingle(v)
	}

	return a
}

func TestColumnValues_RequiredScalar(t *testing.T) {
	c := NewColumnValues(0, 0)

	require.NoError(t, c.Append(packed(0, 0, 0, 0), packed(0, 0, 0, 0), []interface{}{"a", "b", "c"}, 3))

	for _, want := range []interface{}{"a", "b", "c"} {
		v, err := c.Get()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	assert.Equal(t, 0, c.Remaining())
}

func TestColumnValues_OptionalWithNulls(t *testing.T) {
	c := NewColumnValues(1, 0)

	// definition levels: present, null, present
	require.NoError(t, c.Append(packed(0, 0, 0, 0), packed(1, 1, 0, 1), []interface{}{"x", "y"}, 2))

	v, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	v, err = c.Get()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, "y", v)
}

func TestColumnValues_RepeatedGroupsElements(t *testing.T) {
	c := NewColumnValues(1, 1)

	// two records: first has [1,2,3], second has [4]
	rLevels := packed(1, 0, 1, 1, 0)
	dLevels := packed(1, 1, 1, 1, 1)

	require.NoError(t, c.Append(rLevels, dLevels, []interface{}{1, 2, 3, 4}, 4))

	v, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{1, 2, 3}, v)

	v, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{4}, v)

	assert.Equal(t, 0, c.Remaining())
}

func TestColumnValues_AppendAcrossPages(t *testing.T) {
	c := NewColumnValues(0, 0)

	require.NoError(t, c.Append(packed(0, 0), packed(0, 0), []interface{}{"a"}, 1))
	require.NoError(t, c.Append(packed(0, 0), packed(0, 0), []interface{}{"b"}, 1))

	assert.Equal(t, 2, c.Remaining())

	v, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestColumnValues_Skip(t *testing.T) {
	c := NewColumnValues(0, 0)

	require.NoError(t, c.Append(packed(0, 0, 0, 0), packed(0, 0, 0, 0), []interface{}{"a", "b", "c"}, 3))

	require.NoError(t, c.Skip(2))
	assert.Equal(t, 1, c.Remaining())

	v, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}

func TestColumnValues_MismatchedLevelCounts(t *testing.T) {
	c := NewColumnValues(1, 0)

	err := c.Append(packed(0, 0, 0), packed(1, 0), []interface{}{"a"}, 1)
	assert.Error(t, err)
}
