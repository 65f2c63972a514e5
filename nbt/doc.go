// Package nbt implements the NBT (Named Binary Tag) codec.
//
// NBT is a tree-structured, strongly-typed binary serialization format:
// a tagged tree of typed values written big-endian with length-prefixed
// strings and arrays, recursive lists and compounds, optionally wrapped
// in a gzip or zlib compression envelope.
//
// # Data Model
//
// Scalars:    Byte, Short, Int, Long, Float, Double, String
// Arrays:     ByteArray, IntArray, LongArray
// Containers: List (homogeneous, unnamed elements), Compound (named,
// ordered, uniquely-keyed members)
//
// The root of every encoded document is a Compound.
//
// # Wire Format
//
// Each tag stream unit is:
//
//	[1-byte kind][2-byte BE name length][name UTF-8 bytes][payload]
//
// Name fields are omitted for the End marker and for list elements.
// All multi-byte integers are big-endian two's-complement; Float and
// Double are IEEE-754.
//
// # Entry Points
//
// Decode and Encode handle whole documents including the compression
// envelope. Read and Write operate on the raw uncompressed tag stream.
// ParseSNBT and EmitSNBT convert to and from the stringified text form,
// FromJSON and ToJSON bridge to JSON.
//
// # Errors
//
// Malformed input is rejected at the earliest point of violation and
// never yields a partial tree. Each failure mode has a concrete error
// type (UnexpectedEOFError, MalformedLengthError, and so on) matchable
// with errors.As.
package nbt
