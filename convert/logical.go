package convert

import (
	"math"
	"math/big"
	"time"

	"github.com/colstream/parquet/format"
	"github.com/hexbee-net/errors"
)

// Decimal is a DECIMAL value: Unscaled * 10^-Scale.
type Decimal struct {
	Unscaled *big.Int
	Scale    int32
}

func decimalConverter(elem *format.SchemaElement) Converter {
	scale := int32(0)
	if elem.Scale != nil {
		scale = *elem.Scale
	}

	return func(v interface{}) (interface{}, error) {
		unscaled, err := decimalUnscaled(v)
		if err != nil {
			return nil, err
		}

		return Decimal{Unscaled: unscaled, Scale: scale}, nil
	}
}

func decimalUnscaled(v interface{}) (*big.Int, error) {
	switch t := v.(type) {
	case []byte:
		n := new(big.Int).SetBytes(t)

		if len(t) > 0 && t[0]&0x80 != 0 {
			n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(t)*8)))
		}

		return n, nil
	case int32:
		return big.NewInt(int64(t)), nil
	case int64:
		return big.NewInt(t), nil
	default:
		return nil, errors.WithFields(
			errors.New("unsupported physical type for DECIMAL"),
			errors.Fields{"type": formatTypeName(v)})
	}
}

// epoch is the Parquet DATE reference point, 1970-01-01 UTC.
var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// DateToTime converts a DATE value (INT32 days since the Unix epoch) to a
// UTC time.Time at midnight of that day.
func DateToTime(v interface{}) (interface{}, error) {
	days, ok := v.(int32)
	if !ok {
		return nil, errors.WithFields(errors.New("DATE value is not INT32"), errors.Fields{"type": formatTypeName(v)})
	}

	return epoch.AddDate(0, 0, int(days)), nil
}

func timeOfDayConverter(micros bool) Converter {
	return func(v interface{}) (interface{}, error) {
		n, err := asInt64(v)
		if err != nil {
			return nil, errors.Wrap(err, "TIME value")
		}

		unit := time.Millisecond
		if micros {
			unit = time.Microsecond
		}

		return time.Duration(n) * unit, nil
	}
}

func timestampConverter(micros bool) Converter {
	return func(v interface{}) (interface{}, error) {
		n, err := asInt64(v)
		if err != nil {
			return nil, errors.Wrap(err, "TIMESTAMP value")
		}

		if micros {
			return time.UnixMicro(n).UTC(), nil
		}

		return time.UnixMilli(n).UTC(), nil
	}
}

func asInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case uint64:
		return int64(t), nil
	case int32:
		return int64(t), nil
	default:
		return 0, errors.WithFields(errors.New("not an integer"), errors.Fields{"type": formatTypeName(v)})
	}
}

// julianUnixEpochDay is the Julian day number of the Unix epoch.
const julianUnixEpochDay = 2440588

// INT96ToTime converts a legacy INT96 timestamp (8-byte nanoseconds-of-day,
// little-endian, followed by a 4-byte little-endian Julian day number) to a
// UTC time.Time.
func INT96ToTime(v interface{}) (interface{}, error) {
	raw, ok := v.([12]byte)
	if !ok {
		return nil, errors.WithFields(errors.New("INT96 value is not a 12-byte array"), errors.Fields{"type": formatTypeName(v)})
	}

	nanosOfDay := int64(0)
	for i := 7; i >= 0; i-- {
		nanosOfDay = nanosOfDay<<8 | int64(raw[i])
	}

	julianDay := int32(0)
	for i := 11; i >= 8; i-- {
		julianDay = julianDay<<8 | int32(raw[i])
	}

	days := int64(julianDay) - julianUnixEpochDay

	return epoch.AddDate(0, 0, int(days)).Add(time.Duration(nanosOfDay)), nil
}

// Float16ToFloat32 widens an IEEE-754 half-precision value, carried as its
// raw 16-bit pattern, to a float32.
func Float16ToFloat32(v interface{}) (interface{}, error) {
	bits, ok := v.(uint16)
	if !ok {
		return nil, errors.WithFields(errors.New("FLOAT16 value is not uint16"), errors.Fields{"type": formatTypeName(v)})
	}

	sign := uint32(bits>>15) & 0x1
	exp := uint32(bits>>10) & 0x1f
	frac := uint32(bits) & 0x3ff

	var f32 uint32

	switch {
	case exp == 0:
		if frac == 0 {
			f32 = sign << 31
		} else {
			// subnormal half -> normalize into a float32
			for frac&0x400 == 0 {
				frac <<= 1
				exp--
			}

			exp++
			frac &= 0x3ff
			f32 = sign<<31 | (exp+112)<<23 | frac<<13
		}
	case exp == 0x1f:
		f32 = sign<<31 | 0xff<<23 | frac<<13
	default:
		f32 = sign<<31 | (exp+112)<<23 | frac<<13
	}

	return math.Float32frombits(f32), nil
}

func formatTypeName(v interface{}) string {
	if v == nil {
		return "<nil>"
	}

	switch v.(type) {
	case []byte:
		return "[]byte"
	case int32:
		return "int32"
	case int64:
		return "int64"
	case uint64:
		return "uint64"
	case uint16:
		return "uint16"
	case [12]byte:
		return "[12]byte"
	default:
		return "unknown"
	}
}
