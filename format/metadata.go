package format

import (
	"github.com/apache/thrift/lib/go/thrift"
	"github.com/hexbee-net/errors"
)

// TimeUnit is the thrift union selecting the granularity of a TIME/TIMESTAMP
// LogicalType. Exactly one of the three fields is set.
type TimeUnit struct {
	Millis *struct{}
	Micros *struct{}
	Nanos  *struct{}
}

func (u *TimeUnit) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}

	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}

		switch fieldID {
		case 1:
			u.Millis = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 2:
			u.Micros = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 3:
			u.Nanos = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}

		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}

	return iprot.ReadStructEnd()
}

func readEmptyStruct(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, _, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		if err := iprot.Skip(fieldTypeID); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

// DecimalType carries the LogicalType DECIMAL scale/precision.
type DecimalType struct {
	Scale     int32
	Precision int32
}

// TimeType carries the LogicalType TIME unit and UTC-adjustment flag.
type TimeType struct {
	IsAdjustedToUTC bool
	Unit            *TimeUnit
}

// TimestampType carries the LogicalType TIMESTAMP unit and UTC-adjustment flag.
type TimestampType struct {
	IsAdjustedToUTC bool
	Unit            *TimeUnit
}

// IntType carries the LogicalType INTEGER bit width and signedness.
type IntType struct {
	BitWidth int8
	IsSigned bool
}

// LogicalType is the thrift union describing a leaf's logical type. Exactly
// one field is populated by the wire format; the rest stay nil/zero.
type LogicalType struct {
	STRING    *struct{}
	MAP       *struct{}
	LIST      *struct{}
	ENUM      *struct{}
	DECIMAL   *DecimalType
	DATE      *struct{}
	TIME      *TimeType
	TIMESTAMP *TimestampType
	INTEGER   *IntType
	UNKNOWN   *struct{}
	JSON      *struct{}
	BSON      *struct{}
	UUID      *struct{}
	FLOAT16   *struct{}
}

func (l *LogicalType) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}

	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}

		switch fieldID {
		case 1:
			l.STRING = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 2:
			l.MAP = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 3:
			l.LIST = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 4:
			l.ENUM = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 5:
			l.DECIMAL = &DecimalType{}
			if err := readDecimalType(iprot, l.DECIMAL); err != nil {
				return err
			}
		case 6:
			l.DATE = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 7:
			l.TIME = &TimeType{}
			if err := readTimeType(iprot, l.TIME); err != nil {
				return err
			}
		case 8:
			l.TIMESTAMP = &TimestampType{}
			if err := readTimestampType(iprot, l.TIMESTAMP); err != nil {
				return err
			}
		case 10:
			l.INTEGER = &IntType{}
			if err := readIntType(iprot, l.INTEGER); err != nil {
				return err
			}
		case 11:
			l.UNKNOWN = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 12:
			l.JSON = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 13:
			l.BSON = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 14:
			l.UUID = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 15:
			l.FLOAT16 = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}

		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}

	return iprot.ReadStructEnd()
}

func readDecimalType(iprot thrift.TProtocol, d *DecimalType) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			d.Scale = v
		case 2:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			d.Precision = v
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

func readTimeType(iprot thrift.TProtocol, t *TimeType) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadBool()
			if err != nil {
				return err
			}
			t.IsAdjustedToUTC = v
		case 2:
			t.Unit = &TimeUnit{}
			if err := t.Unit.Read(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

func readTimestampType(iprot thrift.TProtocol, t *TimestampType) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadBool()
			if err != nil {
				return err
			}
			t.IsAdjustedToUTC = v
		case 2:
			t.Unit = &TimeUnit{}
			if err := t.Unit.Read(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

func readIntType(iprot thrift.TProtocol, t *IntType) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadByte()
			if err != nil {
				return err
			}
			t.BitWidth = v
		case 2:
			v, err := iprot.ReadBool()
			if err != nil {
				return err
			}
			t.IsSigned = v
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

// Statistics holds the per-column-chunk / per-page statistics block. The
// read pipeline does not consume any of its fields; it is decoded so
// callers inspecting ColumnMetaData see the full shape.
type Statistics struct {
	Max          []byte
	Min          []byte
	NullCount    *int64
	DistinctCount *int64
	MaxValue     []byte
	MinValue     []byte
}

func (s *Statistics) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadBinary()
			if err != nil {
				return err
			}
			s.Max = v
		case 2:
			v, err := iprot.ReadBinary()
			if err != nil {
				return err
			}
			s.Min = v
		case 3:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			s.NullCount = &v
		case 4:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			s.DistinctCount = &v
		case 5:
			v, err := iprot.ReadBinary()
			if err != nil {
				return err
			}
			s.MaxValue = v
		case 6:
			v, err := iprot.ReadBinary()
			if err != nil {
				return err
			}
			s.MinValue = v
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

// SchemaElement is one node (leaf or group) of the flattened schema tree
// carried in FileMetaData.Schema.
type SchemaElement struct {
	Type           *Type
	TypeLength     *int32
	RepetitionType *FieldRepetitionType
	Name           string
	NumChildren    *int32
	ConvertedType  *ConvertedType
	Scale          *int32
	Precision      *int32
	FieldID        *int32
	LogicalType    *LogicalType
}

func (s *SchemaElement) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			t := Type(v)
			s.Type = &t
		case 2:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			s.TypeLength = &v
		case 3:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			r := FieldRepetitionType(v)
			s.RepetitionType = &r
		case 4:
			v, err := iprot.ReadString()
			if err != nil {
				return err
			}
			s.Name = v
		case 5:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			s.NumChildren = &v
		case 6:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			c := ConvertedType(v)
			s.ConvertedType = &c
		case 7:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			s.Scale = &v
		case 8:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			s.Precision = &v
		case 9:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			s.FieldID = &v
		case 10:
			s.LogicalType = &LogicalType{}
			if err := s.LogicalType.Read(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

// KeyValue is a single entry of a KeyValueMetadata list.
type KeyValue struct {
	Key   string
	Value *string
}

func (kv *KeyValue) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadString()
			if err != nil {
				return err
			}
			kv.Key = v
		case 2:
			v, err := iprot.ReadString()
			if err != nil {
				return err
			}
			kv.Value = &v
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

// ColumnMetaData is the ColumnChunk.MetaData block described in spec.md §6.
type ColumnMetaData struct {
	Type                 Type
	Encodings            []Encoding
	PathInSchema         []string
	Codec                CompressionCodec
	NumValues            int64
	TotalUncompressedSize int64
	TotalCompressedSize  int64
	KeyValueMetadata     []*KeyValue
	DataPageOffset       int64
	IndexPageOffset      *int64
	DictionaryPageOffset *int64
	Statistics           *Statistics
}

func (c *ColumnMetaData) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			c.Type = Type(v)
		case 2:
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			c.Encodings = make([]Encoding, 0, size)
			for i := 0; i < size; i++ {
				v, err := iprot.ReadI32()
				if err != nil {
					return err
				}
				c.Encodings = append(c.Encodings, Encoding(v))
			}
			if err := iprot.ReadListEnd(); err != nil {
				return err
			}
		case 3:
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			c.PathInSchema = make([]string, 0, size)
			for i := 0; i < size; i++ {
				v, err := iprot.ReadString()
				if err != nil {
					return err
				}
				c.PathInSchema = append(c.PathInSchema, v)
			}
			if err := iprot.ReadListEnd(); err != nil {
				return err
			}
		case 4:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			c.Codec = CompressionCodec(v)
		case 5:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			c.NumValues = v
		case 6:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			c.TotalUncompressedSize = v
		case 7:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			c.TotalCompressedSize = v
		case 8:
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			c.KeyValueMetadata = make([]*KeyValue, 0, size)
			for i := 0; i < size; i++ {
				kv := &KeyValue{}
				if err := kv.Read(iprot); err != nil {
					return err
				}
				c.KeyValueMetadata = append(c.KeyValueMetadata, kv)
			}
			if err := iprot.ReadListEnd(); err != nil {
				return err
			}
		case 9:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			c.DataPageOffset = v
		case 10:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			c.IndexPageOffset = &v
		case 11:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			c.DictionaryPageOffset = &v
		case 12:
			c.Statistics = &Statistics{}
			if err := c.Statistics.Read(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

// ColumnChunk locates one column's data within a row group.
type ColumnChunk struct {
	FilePath   *string
	FileOffset int64
	MetaData   *ColumnMetaData
}

func (c *ColumnChunk) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadString()
			if err != nil {
				return err
			}
			c.FilePath = &v
		case 2:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			c.FileOffset = v
		case 3:
			c.MetaData = &ColumnMetaData{}
			if err := c.MetaData.Read(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

// RowGroup is an ordered set of column chunks sharing a row count.
type RowGroup struct {
	Columns      []*ColumnChunk
	TotalByteSize int64
	NumRows      int64
}

func (r *RowGroup) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			r.Columns = make([]*ColumnChunk, 0, size)
			for i := 0; i < size; i++ {
				cc := &ColumnChunk{}
				if err := cc.Read(iprot); err != nil {
					return err
				}
				r.Columns = append(r.Columns, cc)
			}
			if err := iprot.ReadListEnd(); err != nil {
				return err
			}
		case 2:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			r.TotalByteSize = v
		case 3:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			r.NumRows = v
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

// FileMetaData is the parsed footer: schema tree plus one RowGroup per
// horizontal partition of the file.
type FileMetaData struct {
	Version          int32
	Schema           []*SchemaElement
	NumRows          int64
	RowGroups        []*RowGroup
	KeyValueMetadata []*KeyValue
	CreatedBy        *string
}

func (f *FileMetaData) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return errors.Wrap(err, "failed to read FileMetaData struct header")
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			f.Version = v
		case 2:
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			f.Schema = make([]*SchemaElement, 0, size)
			for i := 0; i < size; i++ {
				se := &SchemaElement{}
				if err := se.Read(iprot); err != nil {
					return err
				}
				f.Schema = append(f.Schema, se)
			}
			if err := iprot.ReadListEnd(); err != nil {
				return err
			}
		case 3:
			v, err := iprot.ReadI64()
			if err != nil {
				return err
			}
			f.NumRows = v
		case 4:
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			f.RowGroups = make([]*RowGroup, 0, size)
			for i := 0; i < size; i++ {
				rg := &RowGroup{}
				if err := rg.Read(iprot); err != nil {
					return err
				}
				f.RowGroups = append(f.RowGroups, rg)
			}
			if err := iprot.ReadListEnd(); err != nil {
				return err
			}
		case 5:
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			f.KeyValueMetadata = make([]*KeyValue, 0, size)
			for i := 0; i < size; i++ {
				kv := &KeyValue{}
				if err := kv.Read(iprot); err != nil {
					return err
				}
				f.KeyValueMetadata = append(f.KeyValueMetadata, kv)
			}
			if err := iprot.ReadListEnd(); err != nil {
				return err
			}
		case 6:
			v, err := iprot.ReadString()
			if err != nil {
				return err
			}
			f.CreatedBy = &v
		default:
			if err := iprot.Skip(fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}
