package nbt

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxDepth is the nesting depth limit enforced during both read and
// write. Recursion is bounded by the input's structural depth, so
// pathological list-of-list input is rejected instead of exhausting
// the stack.
const MaxDepth = 512

// Read parses an uncompressed tag stream and returns the root
// Compound. The stream must start with a named Compound tag; any
// other root kind fails. Decoding is all-or-nothing: on error no
// partial tree is returned.
func Read(data []byte) (*Tag, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	r := &reader{data: data}
	return r.readRoot()
}

// reader is a cursor over an immutable byte buffer. Every primitive
// read verifies the remaining length before consuming bytes.
type reader struct {
	data  []byte
	off   int
	depth int
}

func (r *reader) readRoot() (*Tag, error) {
	typ, err := r.readType()
	if err != nil {
		return nil, err
	}
	if typ == TypeEnd {
		return nil, &StructuralViolationError{Offset: 0, Reason: "root tag is End"}
	}
	if typ != TypeCompound {
		return nil, &StructuralViolationError{Offset: 0, Reason: fmt.Sprintf("root tag is %s, must be Compound", typ)}
	}
	name, err := r.readString()
	if err != nil {
		return nil, err
	}
	root, err := r.readPayload(typ)
	if err != nil {
		return nil, err
	}
	root.name = name
	return root, nil
}

// need verifies that n more bytes are available at the cursor.
func (r *reader) need(n int) error {
	if n > len(r.data)-r.off {
		return &UnexpectedEOFError{Offset: r.off, Want: n}
	}
	return nil
}

// readType reads and validates a kind discriminator byte.
func (r *reader) readType() (TagType, error) {
	if err := r.need(1); err != nil {
		return TypeEnd, err
	}
	b := r.data[r.off]
	r.off++
	typ := TagType(b)
	if !typ.valid() {
		return TypeEnd, &InvalidDiscriminantError{Offset: r.off - 1, Value: b}
	}
	return typ, nil
}

func (r *reader) readU16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) readI32() (int32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.BigEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v, nil
}

func (r *reader) readI64() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := int64(binary.BigEndian.Uint64(r.data[r.off:]))
	r.off += 8
	return v, nil
}

// readString reads a 16-bit unsigned length prefix and that many
// UTF-8 bytes. Used for both tag names and String payloads.
func (r *reader) readString() (string, error) {
	n, err := r.readU16()
	if err != nil {
		return "", err
	}
	if err := r.need(int(n)); err != nil {
		return "", err
	}
	s := string(r.data[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}

// readCount reads a signed 32-bit element count and rejects negative
// values before any payload bytes are consumed.
func (r *reader) readCount(what string) (int, error) {
	at := r.off
	n, err := r.readI32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &MalformedLengthError{Offset: at, Length: int64(n), What: what}
	}
	return int(n), nil
}

func (r *reader) push() error {
	r.depth++
	if r.depth > MaxDepth {
		return &DepthLimitError{Offset: r.off, Limit: MaxDepth}
	}
	return nil
}

func (r *reader) pop() {
	r.depth--
}

// readPayload reads the kind-specific payload of an already
// identified tag. The returned tag is unnamed; the caller attaches
// the name when reading in compound context.
func (r *reader) readPayload(typ TagType) (*Tag, error) {
	switch typ {
	case TypeByte:
		if err := r.need(1); err != nil {
			return nil, err
		}
		v := int8(r.data[r.off])
		r.off++
		return &Tag{typ: TypeByte, byteVal: v}, nil

	case TypeShort:
		v, err := r.readU16()
		if err != nil {
			return nil, err
		}
		return &Tag{typ: TypeShort, shortVal: int16(v)}, nil

	case TypeInt:
		v, err := r.readI32()
		if err != nil {
			return nil, err
		}
		return &Tag{typ: TypeInt, intVal: v}, nil

	case TypeLong:
		v, err := r.readI64()
		if err != nil {
			return nil, err
		}
		return &Tag{typ: TypeLong, longVal: v}, nil

	case TypeFloat:
		if err := r.need(4); err != nil {
			return nil, err
		}
		v := math.Float32frombits(binary.BigEndian.Uint32(r.data[r.off:]))
		r.off += 4
		return &Tag{typ: TypeFloat, floatVal: v}, nil

	case TypeDouble:
		if err := r.need(8); err != nil {
			return nil, err
		}
		v := math.Float64frombits(binary.BigEndian.Uint64(r.data[r.off:]))
		r.off += 8
		return &Tag{typ: TypeDouble, doubleVal: v}, nil

	case TypeString:
		s, err := r.readString()
		if err != nil {
			return nil, err
		}
		return &Tag{typ: TypeString, strVal: s}, nil

	case TypeByteArray:
		n, err := r.readCount("array size")
		if err != nil {
			return nil, err
		}
		if err := r.need(n); err != nil {
			return nil, err
		}
		arr := make([]int8, n)
		for i := 0; i < n; i++ {
			arr[i] = int8(r.data[r.off+i])
		}
		r.off += n
		return &Tag{typ: TypeByteArray, byteArr: arr}, nil

	case TypeIntArray:
		n, err := r.readCount("array size")
		if err != nil {
			return nil, err
		}
		if err := r.need(4 * n); err != nil {
			return nil, err
		}
		arr := make([]int32, n)
		for i := 0; i < n; i++ {
			arr[i] = int32(binary.BigEndian.Uint32(r.data[r.off+4*i:]))
		}
		r.off += 4 * n
		return &Tag{typ: TypeIntArray, intArr: arr}, nil

	case TypeLongArray:
		n, err := r.readCount("array size")
		if err != nil {
			return nil, err
		}
		if err := r.need(8 * n); err != nil {
			return nil, err
		}
		arr := make([]int64, n)
		for i := 0; i < n; i++ {
			arr[i] = int64(binary.BigEndian.Uint64(r.data[r.off+8*i:]))
		}
		r.off += 8 * n
		return &Tag{typ: TypeLongArray, longArr: arr}, nil

	case TypeList:
		return r.readList()

	case TypeCompound:
		return r.readCompound()

	default:
		// readType already rejected unknown discriminators; End has
		// no payload and never reaches here.
		return nil, &InvalidDiscriminantError{Offset: r.off, Value: byte(typ)}
	}
}

func (r *reader) readList() (*Tag, error) {
	elem, err := r.readType()
	if err != nil {
		return nil, err
	}
	count, err := r.readCount("list size")
	if err != nil {
		return nil, err
	}
	if count > 0 && elem == TypeEnd {
		return nil, &StructuralViolationError{Offset: r.off, Reason: "non-empty list declares End element kind"}
	}
	// Every element payload is at least one byte, so a count larger
	// than the remaining buffer can never be satisfied. Checking up
	// front keeps a hostile count from driving a huge allocation.
	if count > len(r.data)-r.off {
		return nil, &UnexpectedEOFError{Offset: r.off, Want: count}
	}
	if err := r.push(); err != nil {
		return nil, err
	}
	defer r.pop()

	if count == 0 {
		// An empty list's element kind is End regardless of what the
		// stream declared, matching the constructor's normalization.
		t, _ := List(TypeEnd)
		return t, nil
	}
	elems := make([]*Tag, 0, count)
	for i := 0; i < count; i++ {
		e, err := r.readPayload(elem)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return &Tag{typ: TypeList, elemType: elem, listVal: elems}, nil
}

func (r *reader) readCompound() (*Tag, error) {
	if err := r.push(); err != nil {
		return nil, err
	}
	defer r.pop()

	c := NewCompound()
	for {
		typ, err := r.readType()
		if err != nil {
			return nil, err
		}
		if typ == TypeEnd {
			return c, nil
		}
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		if _, exists := c.members.Get(name); exists {
			return nil, &InvariantViolationError{Reason: fmt.Sprintf("duplicate compound member %q", name)}
		}
		child, err := r.readPayload(typ)
		if err != nil {
			return nil, err
		}
		child.name = name
		c.members.Set(name, child)
	}
}
