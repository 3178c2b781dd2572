package encval

import (
	"github.com/colstream/parquet/levels"
)

func decodeInt32(d levels.Decoder, data []int32) error {
	for i := range data {
		u, err := d.Next()
		if err != nil {
			return err
		}

		data[i] = u
	}

	return nil
}

// prefix returns the length of the common prefix of b1 and b2.
func prefix(b1, b2 []byte) int {
	l := len(b1)
	if l2 := len(b2); l > l2 {
		l = l2
	}

	for i := 0; i < l; i++ {
		if b1[i] != b2[i] {
			return i
		}
	}

	return l
}
