package parquet

import (
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_ResolvesWrappedSentinel(t *testing.T) {
	err := errors.WithFields(ErrCorruptPage, errors.Fields{"reason": "bad header"})

	kind, ok := Kind(err)
	require.True(t, ok)
	assert.Equal(t, ErrCorruptPage, kind)
}

func TestKind_UnknownErrorIsNotAKind(t *testing.T) {
	kind, ok := Kind(errors.New("something else"))
	assert.False(t, ok)
	assert.Nil(t, kind)
}

func TestKind_NilIsNotAKind(t *testing.T) {
	kind, ok := Kind(nil)
	assert.False(t, ok)
	assert.Nil(t, kind)
}
