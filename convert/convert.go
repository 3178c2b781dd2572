// Package convert rewrites physically-decoded Parquet values into their
// logical representation: UTF-8 strings, dates, timestamps, decimals, and
// so on, as declared by a column's ConvertedType/LogicalType metadata.
package convert

import (
	"github.com/colstream/parquet/format"
)

// Kind names a logical type a Converter can be registered against, keyed
// the same way a caller's parser override map is.
type Kind string

const (
	KindString          Kind = "STRING"
	KindDecimal         Kind = "DECIMAL"
	KindDate            Kind = "DATE"
	KindTimeMillis      Kind = "TIME_MILLIS"
	KindTimeMicros      Kind = "TIME_MICROS"
	KindTimestampMillis Kind = "TIMESTAMP_MILLIS"
	KindTimestampMicros Kind = "TIMESTAMP_MICROS"
	KindInt96Timestamp  Kind = "INT96_TIMESTAMP"
	KindInterval        Kind = "INTERVAL"
	KindUUID            Kind = "UUID"
	KindFloat16         Kind = "FLOAT16"
	KindJSON            Kind = "JSON"
	KindBSON            Kind = "BSON"
)

// Converter rewrites one physically-decoded value into its logical form.
type Converter func(value interface{}) (interface{}, error)

// Options configures the defaults and overrides a Table is built with.
type Options struct {
	// UTF8 gates the STRING default: true decodes BYTE_ARRAY to string,
	// false leaves it as []byte.
	UTF8 bool

	// Overrides replaces or adds a Converter for a Kind, taking priority
	// over the built-in default. A Kind absent from both Overrides and the
	// built-in defaults (INTERVAL, JSON, BSON) passes its value through
	// unconverted.
	Overrides map[Kind]Converter
}

// Table resolves a schema column's logical type to the Converter that
// should rewrite its decoded values.
type Table struct {
	opts Options
}

// NewTable builds a Table from opts.
func NewTable(opts Options) *Table {
	return &Table{opts: opts}
}

// ForColumn resolves the Converter for col's logical type. ok is false when
// the column carries no logical type the table recognizes, or one with no
// built-in converter and no override (INTERVAL, JSON, BSON; kind is still
// set then), meaning decoded values pass through unchanged.
func (t *Table) ForColumn(col logicalColumn) (conv Converter, kind Kind, ok bool) {
	kind, ok = kindOf(col)
	if !ok {
		return nil, "", false
	}

	if override, has := t.opts.Overrides[kind]; has {
		return override, kind, true
	}

	switch kind {
	case KindString:
		return t.stringConverter(), kind, true
	case KindDecimal:
		return decimalConverter(col.Element()), kind, true
	case KindDate:
		return DateToTime, kind, true
	case KindTimeMillis:
		return timeOfDayConverter(false), kind, true
	case KindTimeMicros:
		return timeOfDayConverter(true), kind, true
	case KindTimestampMillis:
		return timestampConverter(false), kind, true
	case KindTimestampMicros:
		return timestampConverter(true), kind, true
	case KindInt96Timestamp:
		return INT96ToTime, kind, true
	case KindUUID:
		return passthrough, kind, true
	case KindFloat16:
		return Float16ToFloat32, kind, true
	default:
		// INTERVAL, JSON, BSON: no built-in default, raw bytes pass through.
		return nil, kind, false
	}
}

func passthrough(v interface{}) (interface{}, error) {
	return v, nil
}

func (t *Table) stringConverter() Converter {
	if !t.opts.UTF8 {
		return passthrough
	}

	return func(v interface{}) (interface{}, error) {
		b, ok := v.([]byte)
		if !ok {
			return v, nil
		}

		return string(b), nil
	}
}

// logicalColumn is the subset of schema.Column convert needs, kept narrow
// so this package never imports schema directly.
type logicalColumn interface {
	Type() *format.Type
	Element() *format.SchemaElement
}

func kindOf(col logicalColumn) (Kind, bool) {
	elem := col.Element()
	if elem == nil {
		return "", false
	}

	if lt := elem.LogicalType; lt != nil {
		switch {
		case lt.STRING != nil:
			return KindString, true
		case lt.DECIMAL != nil:
			return KindDecimal, true
		case lt.DATE != nil:
			return KindDate, true
		case lt.TIME != nil:
			if lt.TIME.Unit != nil && lt.TIME.Unit.Micros != nil {
				return KindTimeMicros, true
			}

			return KindTimeMillis, true
		case lt.TIMESTAMP != nil:
			if lt.TIMESTAMP.Unit != nil && lt.TIMESTAMP.Unit.Micros != nil {
				return KindTimestampMicros, true
			}

			return KindTimestampMillis, true
		case lt.UUID != nil:
			return KindUUID, true
		case lt.FLOAT16 != nil:
			return KindFloat16, true
		case lt.JSON != nil:
			return KindJSON, true
		case lt.BSON != nil:
			return KindBSON, true
		}
	}

	if elem.ConvertedType == nil {
		if col.Type() != nil && *col.Type() == format.Type_INT96 {
			return KindInt96Timestamp, true
		}

		return "", false
	}

	switch *elem.ConvertedType {
	case format.ConvertedType_UTF8:
		return KindString, true
	case format.ConvertedType_DECIMAL:
		return KindDecimal, true
	case format.ConvertedType_DATE:
		return KindDate, true
	case format.ConvertedType_TIME_MILLIS:
		return KindTimeMillis, true
	case format.ConvertedType_TIME_MICROS:
		return KindTimeMicros, true
	case format.ConvertedType_TIMESTAMP_MILLIS:
		return KindTimestampMillis, true
	case format.ConvertedType_TIMESTAMP_MICROS:
		return KindTimestampMicros, true
	case format.ConvertedType_INTERVAL:
		return KindInterval, true
	case format.ConvertedType_JSON:
		return KindJSON, true
	case format.ConvertedType_BSON:
		return KindBSON, true
	default:
		return "", false
	}
}
