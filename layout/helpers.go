package layout

import (
	"bytes"
	"math/bits"

	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/levels"
	"github.com/hexbee-net/errors"
)

// offsetReader wraps a column chunk's bytes, already fetched in full from
// the byte source, tracking how many bytes have been consumed so readPages
// knows when it has walked past the chunk's last page.
type offsetReader struct {
	*bytes.Reader
}

func newOffsetReader(chunk []byte) *offsetReader {
	return &offsetReader{Reader: bytes.NewReader(chunk)}
}

func (r *offsetReader) Count() int64 {
	return r.Size() - int64(r.Len())
}

func decodePackedArray(d levelDecoder, count int) (*levels.PackedArray, int, error) {
	array := &levels.PackedArray{}
	array.Reset(bits.Len16(d.maxLevel()))

	notNull := 0 // Counting not nulls only makes sense for definition levels.

	for i := 0; i < count; i++ {
		u, err := d.Next()
		if err != nil {
			return nil, 0, errors.WithStack(err)
		}

		array.AppendSingle(u)

		if u == int32(d.maxLevel()) {
			notNull++
		}
	}

	return array, notNull, nil
}

func readPageHeader(r *offsetReader) (*format.PageHeader, error) {
	h := &format.PageHeader{}
	if err := format.ReadThrift(h, r); err != nil {
		return nil, errors.Wrap(err, "failed to read page header")
	}

	return h, nil
}
