package nbt

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a zero-length buffer is given to
// Decode or Read.
var ErrEmptyInput = errors.New("nbt: empty input")

// UnexpectedEOFError is returned when the buffer is exhausted in the
// middle of a read. Offset is the cursor position at the failed read,
// Want the number of bytes that read required.
type UnexpectedEOFError struct {
	Offset int
	Want   int
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("nbt: unexpected end of data: need %d bytes at offset %d", e.Want, e.Offset)
}

// MalformedLengthError is returned when a declared length, count, or
// size is negative.
type MalformedLengthError struct {
	Offset int
	Length int64
	What   string // "string length", "list size", "array size", ...
}

func (e *MalformedLengthError) Error() string {
	return fmt.Sprintf("nbt: negative %s %d at offset %d", e.What, e.Length, e.Offset)
}

// InvalidDiscriminantError is returned when a kind byte is not one of
// the 13 defined tag types.
type InvalidDiscriminantError struct {
	Offset int
	Value  byte
}

func (e *InvalidDiscriminantError) Error() string {
	return fmt.Sprintf("nbt: invalid tag type 0x%02x at offset %d", e.Value, e.Offset)
}

// StructuralViolationError is returned when the tag stream is
// well-formed byte-wise but violates the format's structural rules:
// a non-Compound root, an End marker as root, or a non-empty list
// declaring End as its element kind.
type StructuralViolationError struct {
	Offset int
	Reason string
}

func (e *StructuralViolationError) Error() string {
	return fmt.Sprintf("nbt: %s at offset %d", e.Reason, e.Offset)
}

// ValueRangeError is returned when a numeric constructor receives a
// value outside the tag kind's legal range, or a string exceeds the
// 16-bit length prefix.
type ValueRangeError struct {
	Type     TagType
	Value    int64
	Min, Max int64
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("nbt: %s value %d out of range [%d, %d]", e.Type, e.Value, e.Min, e.Max)
}

// InvariantViolationError is returned when construction would break a
// structural invariant: mixed element kinds in a list, or duplicate
// member names while decoding a compound.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return "nbt: " + e.Reason
}

// DepthLimitError is returned when nesting exceeds MaxDepth during
// read or write. The limit guards against stack exhaustion from
// pathological list-of-list / compound-of-compound input.
type DepthLimitError struct {
	Offset int // byte offset for reads, -1 for writes
	Limit  int
}

func (e *DepthLimitError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("nbt: nesting depth exceeds %d at offset %d", e.Limit, e.Offset)
	}
	return fmt.Sprintf("nbt: nesting depth exceeds %d", e.Limit)
}

// SNBTError is returned for syntax errors in SNBT text.
type SNBTError struct {
	Offset  int
	Message string
}

func (e *SNBTError) Error() string {
	return fmt.Sprintf("snbt: %s at offset %d", e.Message, e.Offset)
}
