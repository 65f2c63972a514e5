// Package envelope detects, decodes, and encodes the stream
// compression wrapper around an NBT document.
//
// The tag stream itself is self-describing; the envelope is an
// optional outer gzip or zlib layer identified by magic bytes:
// gzip starts 1F 8B, zlib starts 78 followed by 01, 5E, 9C, or DA.
// Anything else is treated as uncompressed.
package envelope

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Method identifies the compression algorithm wrapping a document.
type Method uint8

const (
	None Method = iota
	Gzip
	Zlib
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// ParseMethod parses a method from its string representation.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "none":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	default:
		return 0, fmt.Errorf("envelope: unknown compression method %q", s)
	}
}

// ErrEmptyInput is returned when Detect or Decompress is given an
// empty buffer.
var ErrEmptyInput = errors.New("envelope: empty input")

// DecompressionError wraps the underlying decoder error when bytes
// identified as compressed fail to decode.
type DecompressionError struct {
	Method Method
	Err    error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("envelope: %s decompress: %v", e.Method, e.Err)
}

func (e *DecompressionError) Unwrap() error {
	return e.Err
}

// Detect inspects the leading magic bytes and returns the compression
// method. Unrecognized leading bytes mean uncompressed data, never an
// error; only empty input fails.
func Detect(data []byte) (Method, error) {
	if len(data) == 0 {
		return None, ErrEmptyInput
	}
	if len(data) >= 2 && data[0] == 0x1F && data[1] == 0x8B {
		return Gzip, nil
	}
	if len(data) >= 2 && data[0] == 0x78 {
		switch data[1] {
		case 0x01, 0x5E, 0x9C, 0xDA:
			return Zlib, nil
		}
	}
	return None, nil
}

// Decompress detects the compression method and applies its inverse.
// Uncompressed input is returned unchanged (no copy). Corrupt or
// misidentified compressed bytes fail with a DecompressionError.
func Decompress(data []byte) ([]byte, error) {
	method, err := Detect(data)
	if err != nil {
		return nil, err
	}

	switch method {
	case None:
		return data, nil

	case Gzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, &DecompressionError{Method: Gzip, Err: err}
		}
		defer zr.Close()
		plain, err := io.ReadAll(zr)
		if err != nil {
			return nil, &DecompressionError{Method: Gzip, Err: err}
		}
		return plain, nil

	case Zlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, &DecompressionError{Method: Zlib, Err: err}
		}
		defer zr.Close()
		plain, err := io.ReadAll(zr)
		if err != nil {
			return nil, &DecompressionError{Method: Zlib, Err: err}
		}
		return plain, nil

	default:
		return nil, fmt.Errorf("envelope: unsupported method %s", method)
	}
}

// Compress wraps data with the given method. No detection is
// performed in this direction; None returns the input unchanged.
func Compress(data []byte, method Method) ([]byte, error) {
	switch method {
	case None:
		return data, nil

	case Gzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("envelope: gzip compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("envelope: gzip compress: %w", err)
		}
		return buf.Bytes(), nil

	case Zlib:
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("envelope: zlib compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("envelope: zlib compress: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("envelope: unsupported method %s", method)
	}
}
