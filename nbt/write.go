package nbt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Write serializes the root Compound into the uncompressed tag
// stream. A validly constructed tree always has exactly one encoding,
// so Write fails only on contract violations: a non-Compound root or
// nesting beyond MaxDepth.
func Write(root *Tag) ([]byte, error) {
	if root == nil || root.typ != TypeCompound {
		return nil, &StructuralViolationError{Offset: 0, Reason: fmt.Sprintf("root tag is %s, must be Compound", root.Type())}
	}
	w := &writer{}
	w.writeType(TypeCompound)
	w.writeString(root.name)
	if err := w.writePayload(root); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type writer struct {
	buf     bytes.Buffer
	scratch [8]byte
	depth   int
}

func (w *writer) writeType(t TagType) {
	w.buf.WriteByte(byte(t))
}

func (w *writer) writeU16(v uint16) {
	binary.BigEndian.PutUint16(w.scratch[:2], v)
	w.buf.Write(w.scratch[:2])
}

func (w *writer) writeI32(v int32) {
	binary.BigEndian.PutUint32(w.scratch[:4], uint32(v))
	w.buf.Write(w.scratch[:4])
}

func (w *writer) writeI64(v int64) {
	binary.BigEndian.PutUint64(w.scratch[:8], uint64(v))
	w.buf.Write(w.scratch[:8])
}

// writeString writes the 16-bit length prefix and the UTF-8 bytes.
// Construction already capped the length at MaxStringLen.
func (w *writer) writeString(s string) {
	w.writeU16(uint16(len(s)))
	w.buf.WriteString(s)
}

func (w *writer) push() error {
	w.depth++
	if w.depth > MaxDepth {
		return &DepthLimitError{Offset: -1, Limit: MaxDepth}
	}
	return nil
}

func (w *writer) pop() {
	w.depth--
}

func (w *writer) writePayload(t *Tag) error {
	switch t.typ {
	case TypeByte:
		w.buf.WriteByte(byte(t.byteVal))
	case TypeShort:
		w.writeU16(uint16(t.shortVal))
	case TypeInt:
		w.writeI32(t.intVal)
	case TypeLong:
		w.writeI64(t.longVal)
	case TypeFloat:
		binary.BigEndian.PutUint32(w.scratch[:4], math.Float32bits(t.floatVal))
		w.buf.Write(w.scratch[:4])
	case TypeDouble:
		binary.BigEndian.PutUint64(w.scratch[:8], math.Float64bits(t.doubleVal))
		w.buf.Write(w.scratch[:8])
	case TypeString:
		w.writeString(t.strVal)
	case TypeByteArray:
		w.writeI32(int32(len(t.byteArr)))
		for _, b := range t.byteArr {
			w.buf.WriteByte(byte(b))
		}
	case TypeIntArray:
		w.writeI32(int32(len(t.intArr)))
		for _, v := range t.intArr {
			w.writeI32(v)
		}
	case TypeLongArray:
		w.writeI32(int32(len(t.longArr)))
		for _, v := range t.longArr {
			w.writeI64(v)
		}
	case TypeList:
		return w.writeList(t)
	case TypeCompound:
		return w.writeCompound(t)
	default:
		return fmt.Errorf("nbt: cannot serialize %s tag", t.typ)
	}
	return nil
}

func (w *writer) writeList(t *Tag) error {
	if err := w.push(); err != nil {
		return err
	}
	defer w.pop()

	w.writeType(t.elemType)
	w.writeI32(int32(len(t.listVal)))
	for _, e := range t.listVal {
		if err := w.writePayload(e); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeCompound(t *Tag) error {
	if err := w.push(); err != nil {
		return err
	}
	defer w.pop()

	for pair := t.members.Oldest(); pair != nil; pair = pair.Next() {
		child := pair.Value
		w.writeType(child.typ)
		w.writeString(pair.Key)
		if err := w.writePayload(child); err != nil {
			return err
		}
	}
	w.writeType(TypeEnd)
	return nil
}
