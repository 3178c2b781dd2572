package encval

import (
	"io"

	"github.com/colstream/parquet/levels"
	"github.com/hexbee-net/errors"
)

// DictDecoder resolves RLE-coded indices against Values, a dictionary page
// decoded once per column chunk and shared across that chunk's data pages.
// When Raw is set, DecodeValues yields the indices themselves instead of
// resolving them, for a request's rawDictionary option.
type DictDecoder struct {
	Values []interface{}
	Raw    bool
	keys   levels.Decoder
}

func (d *DictDecoder) Init(reader io.Reader) error {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return errors.WithStack(err)
	}

	w := int(buf[0])
	if w < 0 || w > 32 {
		return errors.WithFields(errors.New("invalid bit-width"), errors.Fields{"bit-width": w})
	}

	d.keys = levels.NewHybridDecoder(w, false)

	return d.keys.Init(reader)
}

func (d *DictDecoder) SetValues(values []interface{}) {
	d.Values = values
}

// SetRaw toggles raw-index mode: DecodeValues returns int32 dictionary
// indices instead of resolving them against Values.
func (d *DictDecoder) SetRaw(raw bool) {
	d.Raw = raw
}

func (d *DictDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	if d.keys == nil {
		return 0, errors.New("no value is inside dictionary")
	}

	size := int32(len(d.Values))

	for i := range dest {
		key, err := d.keys.Next()
		if err != nil {
			return i, err
		}

		if d.Raw {
			dest[i] = key
			continue
		}

		if key < 0 || key >= size {
			return 0, errors.WithFields(
				errors.New("invalid index"),
				errors.Fields{"index": key, "values-count": size})
		}

		dest[i] = d.Values[key]
	}

	return len(dest), nil
}
