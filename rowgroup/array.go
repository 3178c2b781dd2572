package rowgroup

import "github.com/colstream/parquet/levels"

// Array is one decoded page's worth of a single column: values alongside
// the repetition/definition levels that place them in the record stream,
// and the absolute row index its first level pair belongs to.
type Array struct {
	Values   []interface{}
	Defs     *levels.PackedArray
	Reps     *levels.PackedArray
	StartRow int64
}
