package layout

import (
	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/levels"
)

// levelDecoder pairs a level-stream decoder with the column's max level, so
// decodePackedArray can tell a "present" level apart from a null one.
type levelDecoder interface {
	levels.Decoder

	maxLevel() uint16
}

type levelDecoderWrapper struct {
	levels.Decoder
	max uint16
}

func (l *levelDecoderWrapper) maxLevel() uint16 {
	return l.max
}

type getLevelDecoderFn func(format.Encoding) (levelDecoder, error)
