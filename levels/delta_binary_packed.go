package levels

import (
	"io"

	"github.com/hexbee-net/errors"
)

// deltaBinaryPackDecoder implements the block/miniblock state machine
// shared by DeltaBinaryPackDecoder32 and DeltaBinaryPackDecoder64: a block
// header names the block and miniblock sizes and total value count, each
// miniblock header carries a zigzag min-delta plus one bit-width per
// miniblock, and the body packs deltas at that bit-width.
type deltaBinaryPackDecoder struct {
	r io.Reader

	blockSize                int32
	miniblockCount           int32
	ValuesCount              int32
	miniBlockValueCount      int32
	miniBlockBitWidth        []uint8
	currentMiniBlock         int32
	currentMiniBlockBitWidth uint8
	miniBlockPosition        int32
	position                 int32

	unpackMiniBlock  func(buf []byte)
	setPreviousValue func() error
	readMinDelta     func() error
}

func (d *deltaBinaryPackDecoder) readBlockHeader() (err error) {
	if d.blockSize, err = readUVarInt32(d.r); err != nil {
		return errors.Wrap(err, "failed to read block size")
	}

	if d.blockSize <= 0 || d.blockSize%128 != 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidBlockSize),
			errors.Fields{"block-size": d.blockSize})
	}

	if d.miniblockCount, err = readUVarInt32(d.r); err != nil {
		return errors.Wrap(err, "failed to read number of mini blocks")
	}

	if d.miniblockCount <= 0 || d.blockSize%d.miniblockCount != 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidMiniblockCount),
			errors.Fields{"miniblock-count": d.miniblockCount})
	}

	d.miniBlockValueCount = d.blockSize / d.miniblockCount

	if d.ValuesCount, err = readUVarInt32(d.r); err != nil {
		return errors.Wrapf(err, "failed to read total value count")
	}

	if d.ValuesCount == 0 {
		return nil
	}

	return d.setPreviousValue()
}

func (d *deltaBinaryPackDecoder) readMiniBlockHeader() error {
	if err := d.readMinDelta(); err != nil {
		return err
	}

	d.miniBlockBitWidth = make([]uint8, d.miniblockCount)
	if _, err := io.ReadFull(d.r, d.miniBlockBitWidth); err != nil {
		return errors.Wrap(err, "not enough data to read all miniblock bit widths")
	}

	for i := range d.miniBlockBitWidth {
		const maxMiniblockBitWidth = 64
		if d.miniBlockBitWidth[i] > maxMiniblockBitWidth {
			return errors.WithFields(
				errors.New("invalid miniblock bit-width"),
				errors.Fields{"miniblock-index": i, "bit-width": d.miniBlockBitWidth[i]})
		}
	}

	d.currentMiniBlock = 0

	return nil
}

func (d *deltaBinaryPackDecoder) next() error {
	if d.position >= d.ValuesCount {
		return io.EOF
	}

	if d.position%8 == 0 {
		if err := d.advanceBlock(); err != nil {
			return err
		}

		bw := int32(d.currentMiniBlockBitWidth)

		buf := make([]byte, bw)
		if _, err := io.ReadFull(d.r, buf); err != nil {
			return err
		}

		d.unpackMiniBlock(buf)
		d.miniBlockPosition += bw

		if err := d.readPadding(bw); err != nil {
			return err
		}
	}

	return nil
}

func (d *deltaBinaryPackDecoder) advanceBlock() error {
	if d.position%d.miniBlockValueCount == 0 {
		if d.currentMiniBlock >= d.miniblockCount {
			if err := d.readMiniBlockHeader(); err != nil {
				return err
			}
		}

		d.currentMiniBlockBitWidth = d.miniBlockBitWidth[d.currentMiniBlock]
		d.miniBlockPosition = 0
		d.currentMiniBlock++
	}

	return nil
}

// readPadding discards the bytes of the current and subsequent miniblocks
// in the last big block once fewer than 8 values remain: the encoder still
// pads every miniblock to a fixed byte count.
func (d *deltaBinaryPackDecoder) readPadding(w int32) error {
	if d.position+8 >= d.ValuesCount {
		l := (d.miniBlockValueCount/8)*w - d.miniBlockPosition
		if l < 0 {
			return errors.New("invalid stream")
		}

		remaining := make([]byte, l)
		_, _ = io.ReadFull(d.r, remaining)

		for i := d.currentMiniBlock; i < d.miniblockCount; i++ {
			bw := int32(d.miniBlockBitWidth[i])
			if bw != 0 {
				pad := make([]byte, (d.miniBlockValueCount/8)*bw)
				_, _ = io.ReadFull(d.r, pad)
			}
		}
	}

	return nil
}

// DeltaBinaryPackDecoder32 decodes DELTA_BINARY_PACKED INT32 streams.
type DeltaBinaryPackDecoder32 struct {
	deltaBinaryPackDecoder

	previousValue int32
	minDelta      int32

	miniBlockInt32 [8]int32
}

func (d *DeltaBinaryPackDecoder32) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.r = reader
	d.unpackMiniBlock = d.unpackMiniBlock32
	d.setPreviousValue = d.setPreviousValue32
	d.readMinDelta = d.readMinDelta32

	if err := d.readBlockHeader(); err != nil {
		return err
	}

	if d.ValuesCount == 0 {
		return nil
	}

	return d.readMiniBlockHeader()
}

func (d *DeltaBinaryPackDecoder32) InitSize(reader io.Reader) error {
	return d.Init(reader)
}

func (d *DeltaBinaryPackDecoder32) Next() (int32, error) {
	if err := d.deltaBinaryPackDecoder.next(); err != nil {
		return 0, err
	}

	ret := d.previousValue
	d.previousValue += d.miniBlockInt32[d.position%8] + d.minDelta
	d.position++

	return ret, nil
}

func (d *DeltaBinaryPackDecoder32) unpackMiniBlock32(buf []byte) {
	d.miniBlockInt32 = unpack8Int32FuncByWidth[int(d.currentMiniBlockBitWidth)](buf)
}

func (d *DeltaBinaryPackDecoder32) setPreviousValue32() (err error) {
	if d.previousValue, err = readVarInt32(d.r); err != nil {
		return errors.Wrap(err, "failed to read first value")
	}

	return nil
}

func (d *DeltaBinaryPackDecoder32) readMinDelta32() (err error) {
	if d.minDelta, err = readVarInt32(d.r); err != nil {
		return errors.Wrap(err, "failed to read min delta")
	}

	return nil
}

// DeltaBinaryPackDecoder64 decodes DELTA_BINARY_PACKED INT64 streams.
type DeltaBinaryPackDecoder64 struct {
	deltaBinaryPackDecoder

	previousValue int64
	minDelta      int64

	miniBlockInt64 [8]int64
}

func (d *DeltaBinaryPackDecoder64) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.r = reader
	d.unpackMiniBlock = d.unpackMiniBlock64
	d.setPreviousValue = d.setPreviousValue64
	d.readMinDelta = d.readMinDelta64

	if err := d.readBlockHeader(); err != nil {
		return err
	}

	if d.ValuesCount == 0 {
		return nil
	}

	return d.readMiniBlockHeader()
}

func (d *DeltaBinaryPackDecoder64) InitSize(reader io.Reader) error {
	return d.Init(reader)
}

func (d *DeltaBinaryPackDecoder64) Next() (int64, error) {
	if err := d.deltaBinaryPackDecoder.next(); err != nil {
		return 0, err
	}

	ret := d.previousValue
	d.previousValue += d.miniBlockInt64[d.position%8] + d.minDelta
	d.position++

	return ret, nil
}

func (d *DeltaBinaryPackDecoder64) unpackMiniBlock64(buf []byte) {
	d.miniBlockInt64 = unpack8Int64FuncByWidth[int(d.currentMiniBlockBitWidth)](buf)
}

func (d *DeltaBinaryPackDecoder64) setPreviousValue64() (err error) {
	if d.previousValue, err = readVarInt64(d.r); err != nil {
		return errors.Wrap(err, "failed to read first value")
	}

	return nil
}

func (d *DeltaBinaryPackDecoder64) readMinDelta64() (err error) {
	if d.minDelta, err = readVarInt64(d.r); err != nil {
		return errors.Wrap(err, "failed to read min delta")
	}

	return nil
}
