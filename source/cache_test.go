package source

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	data  []byte
	fetch int32
}

func (s *countingSource) Slice(_ context.Context, start, end int64) ([]byte, error) {
	atomic.AddInt32(&s.fetch, 1)

	return s.data[start:end], nil
}

func (s *countingSource) Size(context.Context) (int64, error) {
	return int64(len(s.data)), nil
}

func TestPrefetchCache_CoalescesAdjacentRanges(t *testing.T) {
	src := &countingSource{data: make([]byte, 1<<20)}

	cache := NewPrefetchCache(src, Range{Start: 0, End: 100}, Range{Start: 100, End: 200})

	_, err := cache.Slice(context.Background(), 0, 100)
	require.NoError(t, err)

	_, err = cache.Slice(context.Background(), 100, 200)
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(&src.fetch))
}

func TestPrefetchCache_SeparatesDistantRanges(t *testing.T) {
	src := &countingSource{data: make([]byte, 1<<20)}

	cache := NewPrefetchCache(src, Range{Start: 0, End: 10}, Range{Start: CoalesceGap*2 + 100, End: CoalesceGap*2 + 200})

	_, err := cache.Slice(context.Background(), 0, 10)
	require.NoError(t, err)

	_, err = cache.Slice(context.Background(), CoalesceGap*2+100, CoalesceGap*2+200)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&src.fetch))
}

func TestPrefetchCache_UnplannedRangeFallsThrough(t *testing.T) {
	src := &countingSource{data: []byte("hello world")}

	cache := NewPrefetchCache(src)

	got, err := cache.Slice(context.Background(), 0, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestPrefetchCache_Size(t *testing.T) {
	src := &countingSource{data: make([]byte, 42)}

	cache := NewPrefetchCache(src)

	size, err := cache.Size(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 42, size)
}
