package nbt

import (
	"errors"
	"testing"
)

// buildStream concatenates byte fragments into a tag stream.
func buildStream(fragments ...[]byte) []byte {
	var out []byte
	for _, f := range fragments {
		out = append(out, f...)
	}
	return out
}

// A minimal valid document: root compound named "" holding Int "x"=5.
var validDoc = []byte{
	0x0A, 0x00, 0x00, // Compound, name ""
	0x03, 0x00, 0x01, 'x', // Int, name "x"
	0x00, 0x00, 0x00, 0x05, // 5
	0x00, // End
}

func TestRead_ValidDocument(t *testing.T) {
	root, err := Read(validDoc)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if root.Type() != TypeCompound {
		t.Fatalf("root type = %s", root.Type())
	}
	if got, err := root.Get("x").AsInt(); err != nil || got != 5 {
		t.Errorf("x = %d, %v; want 5", got, err)
	}
}

func TestRead_RootName(t *testing.T) {
	data := []byte{
		0x0A, 0x00, 0x04, 'r', 'o', 'o', 't',
		0x00,
	}
	root, err := Read(data)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if root.Name() != "root" {
		t.Errorf("root name = %q, want root", root.Name())
	}
}

// ============================================================
// Malformed Input
// ============================================================

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want any // pointer to the expected error type, or sentinel
	}{
		{
			name: "empty input",
			data: nil,
			want: ErrEmptyInput,
		},
		{
			name: "root is End",
			data: []byte{0x00},
			want: &StructuralViolationError{},
		},
		{
			name: "root is Byte",
			data: []byte{0x01, 0x00, 0x00, 0x07},
			want: &StructuralViolationError{},
		},
		{
			name: "unknown root discriminator",
			data: []byte{0xFF},
			want: &InvalidDiscriminantError{},
		},
		{
			name: "unknown member discriminator",
			data: []byte{0x0A, 0x00, 0x00, 0x63},
			want: &InvalidDiscriminantError{},
		},
		{
			name: "truncated name length",
			data: []byte{0x0A, 0x00},
			want: &UnexpectedEOFError{},
		},
		{
			name: "truncated name bytes",
			data: []byte{0x0A, 0x00, 0x05, 'a', 'b'},
			want: &UnexpectedEOFError{},
		},
		{
			name: "compound missing terminating End",
			data: []byte{
				0x0A, 0x00, 0x00,
				0x01, 0x00, 0x01, 'b', 0x07,
				// no End marker
			},
			want: &UnexpectedEOFError{},
		},
		{
			name: "truncated Int payload",
			data: []byte{
				0x0A, 0x00, 0x00,
				0x03, 0x00, 0x01, 'x',
				0x00, 0x00, // 2 of 4 bytes
			},
			want: &UnexpectedEOFError{},
		},
		{
			name: "truncated String content",
			data: []byte{
				0x0A, 0x00, 0x00,
				0x08, 0x00, 0x01, 's',
				0x00, 0x04, 'h', 'i',
			},
			want: &UnexpectedEOFError{},
		},
		{
			name: "negative list size",
			data: []byte{
				0x0A, 0x00, 0x00,
				0x09, 0x00, 0x01, 'l',
				0x01,                   // element kind Byte
				0xFF, 0xFF, 0xFF, 0xFF, // -1
			},
			want: &MalformedLengthError{},
		},
		{
			name: "non-empty list with End element kind",
			data: []byte{
				0x0A, 0x00, 0x00,
				0x09, 0x00, 0x01, 'l',
				0x00,                   // element kind End
				0x00, 0x00, 0x00, 0x01, // size 1
			},
			want: &StructuralViolationError{},
		},
		{
			name: "list size exceeds available bytes",
			data: []byte{
				0x0A, 0x00, 0x00,
				0x09, 0x00, 0x01, 'l',
				0x01,                   // element kind Byte
				0x00, 0x00, 0x00, 0x0A, // size 10
				0x01, 0x02, // only 2 element bytes
			},
			want: &UnexpectedEOFError{},
		},
		{
			name: "negative byte array size",
			data: []byte{
				0x0A, 0x00, 0x00,
				0x07, 0x00, 0x01, 'a',
				0x80, 0x00, 0x00, 0x00,
			},
			want: &MalformedLengthError{},
		},
		{
			name: "negative int array size",
			data: []byte{
				0x0A, 0x00, 0x00,
				0x0B, 0x00, 0x01, 'a',
				0xFF, 0xFF, 0xFF, 0xFE,
			},
			want: &MalformedLengthError{},
		},
		{
			name: "int array count exceeds available bytes",
			data: []byte{
				0x0A, 0x00, 0x00,
				0x0B, 0x00, 0x01, 'a',
				0x00, 0x00, 0x00, 0x03, // 3 ints = 12 bytes
				0x00, 0x00, 0x00, 0x01, // only 1 present
			},
			want: &UnexpectedEOFError{},
		},
		{
			name: "duplicate compound member names",
			data: []byte{
				0x0A, 0x00, 0x00,
				0x01, 0x00, 0x01, 'a', 0x01,
				0x01, 0x00, 0x01, 'a', 0x02,
				0x00,
			},
			want: &InvariantViolationError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Read(tt.data)
			if err == nil {
				t.Fatal("Read succeeded on malformed input")
			}
			if root != nil {
				t.Error("Read returned a partial tree alongside an error")
			}
			switch want := tt.want.(type) {
			case error:
				if !errors.Is(err, want) {
					assertErrType(t, err, want)
				}
			}
		})
	}
}

// assertErrType checks err matches the type of want via errors.As.
func assertErrType(t *testing.T, err error, want error) {
	t.Helper()
	switch want.(type) {
	case *StructuralViolationError:
		var e *StructuralViolationError
		if !errors.As(err, &e) {
			t.Fatalf("expected StructuralViolationError, got %T: %v", err, err)
		}
	case *UnexpectedEOFError:
		var e *UnexpectedEOFError
		if !errors.As(err, &e) {
			t.Fatalf("expected UnexpectedEOFError, got %T: %v", err, err)
		}
	case *MalformedLengthError:
		var e *MalformedLengthError
		if !errors.As(err, &e) {
			t.Fatalf("expected MalformedLengthError, got %T: %v", err, err)
		}
	case *InvalidDiscriminantError:
		var e *InvalidDiscriminantError
		if !errors.As(err, &e) {
			t.Fatalf("expected InvalidDiscriminantError, got %T: %v", err, err)
		}
	case *InvariantViolationError:
		var e *InvariantViolationError
		if !errors.As(err, &e) {
			t.Fatalf("expected InvariantViolationError, got %T: %v", err, err)
		}
	default:
		t.Fatalf("expected %T, got %T: %v", want, err, err)
	}
}

func TestRead_EOFErrorCarriesContext(t *testing.T) {
	// Truncated Int payload: 2 of 4 bytes present at offset 7.
	data := []byte{
		0x0A, 0x00, 0x00,
		0x03, 0x00, 0x01, 'x',
		0x00, 0x00,
	}
	_, err := Read(data)
	var eof *UnexpectedEOFError
	if !errors.As(err, &eof) {
		t.Fatalf("expected UnexpectedEOFError, got %v", err)
	}
	if eof.Want != 4 {
		t.Errorf("Want = %d, want 4", eof.Want)
	}
	if eof.Offset != 7 {
		t.Errorf("Offset = %d, want 7", eof.Offset)
	}
}

func TestRead_DiscriminantErrorCarriesByte(t *testing.T) {
	_, err := Read([]byte{0xFF})
	var disc *InvalidDiscriminantError
	if !errors.As(err, &disc) {
		t.Fatalf("expected InvalidDiscriminantError, got %v", err)
	}
	if disc.Value != 0xFF || disc.Offset != 0 {
		t.Errorf("got value 0x%02x at %d, want 0xFF at 0", disc.Value, disc.Offset)
	}
}

// ============================================================
// Depth Limit
// ============================================================

func TestRead_DepthLimit(t *testing.T) {
	// Root compound holding a list nested past MaxDepth.
	data := buildStream(
		[]byte{0x0A, 0x00, 0x00},
		[]byte{0x09, 0x00, 0x01, 'd'},
	)
	for i := 0; i < MaxDepth+8; i++ {
		data = append(data, 0x09, 0x00, 0x00, 0x00, 0x01) // list of 1 list
	}
	data = append(data, 0x00, 0x00, 0x00, 0x00, 0x00) // innermost empty list
	data = append(data, 0x00)                         // compound End

	_, err := Read(data)
	var depth *DepthLimitError
	if !errors.As(err, &depth) {
		t.Fatalf("expected DepthLimitError, got %v", err)
	}
	if depth.Limit != MaxDepth {
		t.Errorf("Limit = %d, want %d", depth.Limit, MaxDepth)
	}
}

func TestRead_NestedWithinLimit(t *testing.T) {
	data := buildStream(
		[]byte{0x0A, 0x00, 0x00},
		[]byte{0x09, 0x00, 0x01, 'd'},
	)
	const levels = 32
	for i := 0; i < levels; i++ {
		data = append(data, 0x09, 0x00, 0x00, 0x00, 0x01)
	}
	data = append(data, 0x00, 0x00, 0x00, 0x00, 0x00)
	data = append(data, 0x00)

	if _, err := Read(data); err != nil {
		t.Fatalf("nesting of %d should succeed: %v", levels, err)
	}
}

// ============================================================
// Empty List Normalization
// ============================================================

func TestRead_EmptyListKindNormalized(t *testing.T) {
	// Wire declares Int as the element kind of an empty list; the
	// in-memory form normalizes it to End.
	data := []byte{
		0x0A, 0x00, 0x00,
		0x09, 0x00, 0x01, 'l',
		0x03,                   // element kind Int
		0x00, 0x00, 0x00, 0x00, // size 0
		0x00,
	}
	root, err := Read(data)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := root.Get("l").ElemType(); got != TypeEnd {
		t.Errorf("empty list element kind = %s, want End", got)
	}
}
