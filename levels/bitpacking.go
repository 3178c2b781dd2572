package levels

// pack8int32Func packs 8 values, each masked to a fixed bit width, into
// exactly width bytes. unpack8int32Func/unpack8int64Func reverse that.
type pack8int32Func func(values [8]int32) []byte
type unpack8int32Func func(data []byte) [8]int32
type unpack8int64Func func(data []byte) [8]int64

var (
	pack8Int32FuncByWidth   [33]pack8int32Func
	unpack8Int32FuncByWidth [33]unpack8int32Func
	unpack8Int64FuncByWidth [65]unpack8int64Func
)

func init() {
	for w := 0; w <= 32; w++ {
		width := w
		pack8Int32FuncByWidth[w] = func(values [8]int32) []byte {
			return packBits32(width, values)
		}
		unpack8Int32FuncByWidth[w] = func(data []byte) [8]int32 {
			return unpackBits32(width, data)
		}
	}

	for w := 0; w <= 64; w++ {
		width := w
		unpack8Int64FuncByWidth[w] = func(data []byte) [8]int64 {
			return unpackBits64(width, data)
		}
	}
}

// packBits32 packs 8 values of width bits each, LSB-first, into width
// bytes: 8 values * width bits == width * 8 bits == width bytes.
func packBits32(width int, values [8]int32) []byte {
	if width == 0 {
		return nil
	}

	out := make([]byte, width)

	var bitBuf uint64
	var bitCount, byteIdx int

	mask := uint64(1)<<uint(width) - 1

	for i := 0; i < 8; i++ {
		bitBuf |= (uint64(values[i]) & mask) << uint(bitCount)
		bitCount += width

		for bitCount >= 8 {
			out[byteIdx] = byte(bitBuf)
			bitBuf >>= 8
			byteIdx++
			bitCount -= 8
		}
	}

	return out
}

func unpackBits32(width int, data []byte) [8]int32 {
	var out [8]int32

	if width == 0 {
		return out
	}

	var bitBuf uint64
	var bitCount, byteIdx int

	mask := uint64(1)<<uint(width) - 1

	for i := 0; i < 8; i++ {
		for bitCount < width {
			bitBuf |= uint64(data[byteIdx]) << uint(bitCount)
			byteIdx++
			bitCount += 8
		}

		out[i] = int32(bitBuf & mask)
		bitBuf >>= uint(width)
		bitCount -= width
	}

	return out
}

func unpackBits64(width int, data []byte) [8]int64 {
	var out [8]int64

	if width == 0 {
		return out
	}

	var bitBuf uint64
	var bitCount, byteIdx int

	var mask uint64
	if width == 64 {
		mask = ^uint64(0)
	} else {
		mask = uint64(1)<<uint(width) - 1
	}

	for i := 0; i < 8; i++ {
		for bitCount < width {
			bitBuf |= uint64(data[byteIdx]) << uint(bitCount)
			byteIdx++
			bitCount += 8
		}

		out[i] = int64(bitBuf & mask)

		if width == 64 {
			bitBuf = 0
			bitCount = 0
		} else {
			bitBuf >>= uint(width)
			bitCount -= width
		}
	}

	return out
}
