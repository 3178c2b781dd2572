package source

import (
	"context"
	"sort"
	"sync"

	"github.com/hexbee-net/errors"
)

// CoalesceGap bounds the gap between two planned byte ranges that still
// get merged into one prefetch segment and fetched with a single Slice
// call against the underlying source.
const CoalesceGap = 32 * 1024

// Range is a half-open byte range [Start, End) a caller intends to read.
type Range struct {
	Start, End int64
}

// segment is a merged run of one or more planned ranges, fetched once and
// shared by every Slice call it covers.
type segment struct {
	start, end int64

	once sync.Once
	buf  []byte
	err  error
}

// PrefetchCache wraps a Source. Given the union of byte ranges a caller
// intends to read, it merges overlapping or near-adjacent ranges into
// segments and fetches each segment at most once, the first time any of
// its sub-ranges is requested; concurrent requests for the same segment
// share that one fetch.
type PrefetchCache struct {
	src Source

	segments []*segment

	mu    sync.Mutex
	size  int64
	known bool
}

// NewPrefetchCache wraps src, planning to serve the given ranges from
// coalesced segments. Slice calls outside every planned range fall through
// to src directly, uncached.
func NewPrefetchCache(src Source, ranges ...Range) *PrefetchCache {
	return &PrefetchCache{src: src, segments: coalesce(ranges)}
}

func coalesce(ranges []Range) []*segment {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	segments := make([]*segment, 0, len(sorted))
	cur := sorted[0]

	for _, r := range sorted[1:] {
		if r.Start <= cur.End+CoalesceGap {
			if r.End > cur.End {
				cur.End = r.End
			}

			continue
		}

		segments = append(segments, &segment{start: cur.Start, end: cur.End})
		cur = r
	}

	return append(segments, &segment{start: cur.Start, end: cur.End})
}

func (c *PrefetchCache) find(start, end int64) *segment {
	for _, s := range c.segments {
		if start >= s.start && end <= s.end {
			return s
		}
	}

	return nil
}

// Slice fetches [start, end). When the range falls inside a planned
// segment, the segment is fetched at most once and this call serves a
// copy of its slice; otherwise it delegates straight to the source.
func (c *PrefetchCache) Slice(ctx context.Context, start, end int64) ([]byte, error) {
	seg := c.find(start, end)
	if seg == nil {
		return c.src.Slice(ctx, start, end)
	}

	seg.once.Do(func() {
		seg.buf, seg.err = c.src.Slice(ctx, seg.start, seg.end)
	})

	if seg.err != nil {
		return nil, seg.err
	}

	lo, hi := start-seg.start, end-seg.start
	if lo < 0 || hi > int64(len(seg.buf)) {
		return nil, errors.WithFields(
			errors.New("slice falls outside its prefetch segment"),
			errors.Fields{"start": start, "end": end, "segment-start": seg.start, "segment-end": seg.end})
	}

	out := make([]byte, hi-lo)
	copy(out, seg.buf[lo:hi])

	return out, nil
}

// Size returns the file's total size, fetched once and cached.
func (c *PrefetchCache) Size(ctx context.Context) (int64, error) {
	c.mu.Lock()
	if c.known {
		size := c.size
		c.mu.Unlock()

		return size, nil
	}
	c.mu.Unlock()

	size, err := c.src.Size(ctx)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.size, c.known = size, true
	c.mu.Unlock()

	return size, nil
}
