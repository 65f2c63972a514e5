package nbt

import "github.com/tagwire/nbt/envelope"

// Decode parses a complete NBT document: the compression envelope is
// detected and removed, then the tag stream is read. Returns the root
// Compound.
func Decode(data []byte) (*Tag, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	plain, err := envelope.Decompress(data)
	if err != nil {
		return nil, err
	}
	return Read(plain)
}

// Encode serializes the root Compound and wraps it in a gzip
// envelope, the conventional on-disk form.
func Encode(root *Tag) ([]byte, error) {
	return EncodeWith(root, envelope.Gzip)
}

// EncodeWith serializes the root Compound with the given compression
// method.
func EncodeWith(root *Tag, method envelope.Method) ([]byte, error) {
	raw, err := Write(root)
	if err != nil {
		return nil, err
	}
	return envelope.Compress(raw, method)
}
