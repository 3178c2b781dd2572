package parquet

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/colstream/parquet/source/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMetadata_TooSmall(t *testing.T) {
	src := memory.NewSource([]byte("PAR1"))

	_, err := ReadMetadata(context.Background(), src)
	require.Error(t, err)

	kind, ok := Kind(err)
	require.True(t, ok)
	assert.Equal(t, ErrCorruptMetadata, kind)
}

func TestReadMetadata_MissingTrailingMagic(t *testing.T) {
	buf := make([]byte, 0, 32)
	buf = append(buf, []byte("PAR1")...)
	buf = append(buf, make([]byte, 12)...)

	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, 12)
	buf = append(buf, lenBuf...)
	buf = append(buf, []byte("XXXX")...)

	src := memory.NewSource(buf)

	_, err := ReadMetadata(context.Background(), src)
	require.Error(t, err)

	kind, ok := Kind(err)
	require.True(t, ok)
	assert.Equal(t, ErrCorruptMetadata, kind)
}

func TestReadMetadata_MissingLeadingMagic(t *testing.T) {
	buf := make([]byte, 0, 32)
	buf = append(buf, []byte("XXXX")...)
	buf = append(buf, make([]byte, 12)...)

	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, 12)
	buf = append(buf, lenBuf...)
	buf = append(buf, []byte("PAR1")...)

	src := memory.NewSource(buf)

	_, err := ReadMetadata(context.Background(), src)
	require.Error(t, err)

	kind, ok := Kind(err)
	require.True(t, ok)
	assert.Equal(t, ErrCorruptMetadata, kind)
}

func TestReadMetadata_InvalidFooterLength(t *testing.T) {
	buf := make([]byte, 0, 16)
	buf = append(buf, []byte("PAR1")...)

	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, 0)
	buf = append(buf, lenBuf...)
	buf = append(buf, []byte("PAR1")...)

	src := memory.NewSource(buf)

	_, err := ReadMetadata(context.Background(), src)
	require.Error(t, err)

	kind, ok := Kind(err)
	require.True(t, ok)
	assert.Equal(t, ErrCorruptMetadata, kind)
}
