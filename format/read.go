package format

import (
	"io"

	"github.com/apache/thrift/lib/go/thrift"
)

type thriftReader interface {
	Read(thrift.TProtocol) error
}

// ReadThrift decodes a single compact-protocol Thrift struct from r. r must
// not be a buffered reader: the compact protocol reads exactly as many bytes
// as the struct needs, and a bufio.Reader would pull ahead past the struct's
// end.
func ReadThrift(tr thriftReader, r io.Reader) error {
	transport := &thrift.StreamTransport{Reader: r}
	proto := thrift.NewTCompactProtocol(transport)

	return tr.Read(proto)
}
