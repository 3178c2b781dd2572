// Package assemble reconstructs logical rows from a leaf column's flat
// stream of repetition levels, definition levels, and values, using the
// Dremel encoding rules: a definition level below the column's max means
// null at that nesting depth, and a repetition level below the column's
// max repetition marks the start of a new enclosing record.
package assemble

import (
	"math/bits"

	"github.com/colstream/parquet/levels"
	"github.com/hexbee-net/errors"
)

// ColumnValues accumulates one column's decoded pages into a single
// sequential stream and replays it one logical record at a time via Get.
type ColumnValues struct {
	maxD, maxR uint16

	rLevels *levels.PackedArray
	dLevels *levels.PackedArray

	values   []interface{}
	valuePos int
	levelPos int
}

// NewColumnValues builds an empty accumulator for a column with the given
// maximum definition and repetition levels.
func NewColumnValues(maxD, maxR uint16) *ColumnValues {
	rLevels := &levels.PackedArray{}
	rLevels.Reset(bits.Len16(maxR))

	dLevels := &levels.PackedArray{}
	dLevels.Reset(bits.Len16(maxD))

	return &ColumnValues{maxD: maxD, maxR: maxR, rLevels: rLevels, dLevels: dLevels}
}

// Append adds one page's worth of decoded levels and values. values must
// hold exactly notNull decoded values, in the same order as the non-null
// positions of dLevel/rLevel.
func (c *ColumnValues) Append(rLevel, dLevel *levels.PackedArray, values []interface{}, notNull int) error {
	if rLevel.Len() != dLevel.Len() {
		return errors.WithFields(
			errors.New("repetition and definition level counts differ"),
			errors.Fields{"repetition": rLevel.Len(), "definition": dLevel.Len()})
	}

	if err := c.rLevels.AppendArray(rLevel); err != nil {
		return errors.WithStack(err)
	}

	if err := c.dLevels.AppendArray(dLevel); err != nil {
		return errors.WithStack(err)
	}

	c.values = append(c.values, values[:notNull]...)

	return nil
}

// Remaining reports how many logical records are still unread.
func (c *ColumnValues) Remaining() int {
	return c.rLevels.Len() - c.levelPos
}

// Skip discards n logical records without returning them, for bounding a
// row group's leading rows out of a requested range.
func (c *ColumnValues) Skip(n int) error {
	for i := 0; i < n; i++ {
		if _, err := c.Get(); err != nil {
			return err
		}
	}

	return nil
}

func (c *ColumnValues) levelAt(pos int) (rLevel, dLevel int32, last bool) {
	if pos >= c.rLevels.Len() || pos >= c.dLevels.Len() {
		return 0, 0, true
	}

	rLevel, err := c.rLevels.At(pos)
	if err != nil {
		return 0, 0, true
	}

	dLevel, err = c.dLevels.At(pos)
	if err != nil {
		return 0, 0, true
	}

	return rLevel, dLevel, false
}

func (c *ColumnValues) nextValue() (interface{}, error) {
	if c.valuePos >= len(c.values) {
		return nil, errors.New("ran out of decoded values")
	}

	v := c.values[c.valuePos]
	c.valuePos++

	return v, nil
}

// PeekLevels reports the repetition/definition level pair at the read
// cursor without advancing it. ok is false once every decoded level has
// been consumed.
func (c *ColumnValues) PeekLevels() (rLevel, dLevel int32, ok bool) {
	r, d, last := c.levelAt(c.levelPos)
	return r, d, !last
}

// consumeSlot advances the cursor by one level pair, resolving it against
// the value stream: present is false for a null (no value consumed), true
// otherwise with value holding the next decoded value.
func (c *ColumnValues) consumeSlot() (value interface{}, present bool, err error) {
	_, dl, last := c.levelAt(c.levelPos)
	if last {
		return nil, false, errors.New("column is exhausted")
	}

	c.levelPos++

	if dl < int32(c.maxD) {
		return nil, false, nil
	}

	v, err := c.nextValue()
	if err != nil {
		return nil, false, err
	}

	return v, true, nil
}

// Get returns the next logical record for this column: nil for a null, a
// scalar leaf value, or []interface{} whenever the column's path carries a
// repeated ancestor (maxR > 0) and the record's first slot is present, even
// if it holds a single value. An element of that slice is itself nil where
// the leaf is null within an otherwise-present repetition.
func (c *ColumnValues) Get() (value interface{}, err error) {
	if c.Remaining() <= 0 {
		return nil, errors.New("column is exhausted")
	}

	v, present, err := c.consumeSlot()
	if err != nil {
		return nil, err
	}

	if !present {
		return nil, nil
	}

	if c.maxR == 0 {
		return v, nil
	}

	ret := []interface{}{v}

	for {
		rl, _, ok := c.PeekLevels()
		if !ok || rl < int32(c.maxR) {
			return ret, nil
		}

		v, present, err := c.consumeSlot()
		if err != nil {
			return nil, err
		}

		if present {
			ret = append(ret, v)
		} else {
			ret = append(ret, nil)
		}
	}
}
