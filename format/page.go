package format

import "github.com/apache/thrift/lib/go/thrift"

// DataPageHeader describes a DATA_PAGE (v1) page body: levels and values
// interleaved ahead of decompression, see layout.dataPageReaderV1.
type DataPageHeader struct {
	NumValues               int32
	Encoding                Encoding
	DefinitionLevelEncoding Encoding
	RepetitionLevelEncoding Encoding
	Statistics              *Statistics
}

func (h *DataPageHeader) Read(iprot thrift.TProtocol) error {
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
			h.NumValues = v
		case 2:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.Encoding = Encoding(v)
		case 3:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.DefinitionLevelEncoding = Encoding(v)
		case 4:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.RepetitionLevelEncoding = Encoding(v)
		case 5:
			h.Statistics = &Statistics{}
			if err := h.Statistics.Read(iprot); err != nil {
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

// DataPageHeaderV2 describes a DATA_PAGE_V2 body: uncompressed level streams
// sized exactly by ByteLength fields, followed by the (possibly compressed)
// value stream. See layout.dataPageReaderV2.
type DataPageHeaderV2 struct {
	NumValues                 int32
	NumNulls                  int32
	NumRows                   int32
	Encoding                  Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed              bool
	Statistics                *Statistics
}

func (h *DataPageHeaderV2) Read(iprot thrift.TProtocol) error {
	h.IsCompressed = true // thrift default when the field is absent

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
			h.NumValues = v
		case 2:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.NumNulls = v
		case 3:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.NumRows = v
		case 4:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.Encoding = Encoding(v)
		case 5:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.DefinitionLevelsByteLength = v
		case 6:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.RepetitionLevelsByteLength = v
		case 7:
			v, err := iprot.ReadBool()
			if err != nil {
				return err
			}
			h.IsCompressed = v
		case 8:
			h.Statistics = &Statistics{}
			if err := h.Statistics.Read(iprot); err != nil {
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

// DictionaryPageHeader describes a DICTIONARY_PAGE body.
type DictionaryPageHeader struct {
	NumValues int32
	Encoding  Encoding
	IsSorted  *bool
}

func (h *DictionaryPageHeader) Read(iprot thrift.TProtocol) error {
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
			h.NumValues = v
		case 2:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.Encoding = Encoding(v)
		case 3:
			v, err := iprot.ReadBool()
			if err != nil {
				return err
			}
			h.IsSorted = &v
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

// PageHeader precedes every page body in a column chunk. Exactly one of
// DataPageHeader, IndexPageHeader, DictionaryPageHeader, DataPageHeaderV2 is
// set, selected by Type.
type PageHeader struct {
	Type                 PageType
	UncompressedPageSize int32
	CompressedPageSize   int32
	CRC                  *int32
	DataPageHeader       *DataPageHeader
	IndexPageHeader      *struct{}
	DictionaryPageHeader *DictionaryPageHeader
	DataPageHeaderV2     *DataPageHeaderV2
}

func (h *PageHeader) Read(iprot thrift.TProtocol) error {
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
			h.Type = PageType(v)
		case 2:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.UncompressedPageSize = v
		case 3:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.CompressedPageSize = v
		case 4:
			v, err := iprot.ReadI32()
			if err != nil {
				return err
			}
			h.CRC = &v
		case 5:
			h.DataPageHeader = &DataPageHeader{}
			if err := h.DataPageHeader.Read(iprot); err != nil {
				return err
			}
		case 6:
			h.IndexPageHeader = &struct{}{}
			if err := readEmptyStruct(iprot); err != nil {
				return err
			}
		case 7:
			h.DictionaryPageHeader = &DictionaryPageHeader{}
			if err := h.DictionaryPageHeader.Read(iprot); err != nil {
				return err
			}
		case 8:
			h.DataPageHeaderV2 = &DataPageHeaderV2{}
			if err := h.DataPageHeaderV2.Read(iprot); err != nil {
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
