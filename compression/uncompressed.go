package compression

// Uncompressed passes block bodies through unchanged, for the UNCOMPRESSED
// codec.
type Uncompressed struct{}

func (c Uncompressed) DecompressBlock(block []byte, uncompressedSize int32) ([]byte, error) {
	return block, nil
}
