package nbt

import (
	"fmt"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TagType identifies one of the 13 NBT tag kinds. The numeric values
// are wire-format constants and must not change.
type TagType uint8

const (
	TypeEnd TagType = iota
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeByteArray
	TypeString
	TypeList
	TypeCompound
	TypeIntArray
	TypeLongArray
)

// String returns the tag type name.
func (t TagType) String() string {
	switch t {
	case TypeEnd:
		return "End"
	case TypeByte:
		return "Byte"
	case TypeShort:
		return "Short"
	case TypeInt:
		return "Int"
	case TypeLong:
		return "Long"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeByteArray:
		return "ByteArray"
	case TypeString:
		return "String"
	case TypeList:
		return "List"
	case TypeCompound:
		return "Compound"
	case TypeIntArray:
		return "IntArray"
	case TypeLongArray:
		return "LongArray"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// valid reports whether t is a defined tag type.
func (t TagType) valid() bool {
	return t <= TypeLongArray
}

// MaxStringLen is the maximum byte length of a String payload or tag
// name. The wire format prefixes both with a 16-bit unsigned length.
const MaxStringLen = 65535

// Tag is one node of the value tree: a (kind, optional name, value)
// triple. Names are carried only by direct members of a Compound;
// inserting a tag into a List clears its name.
type Tag struct {
	typ  TagType
	name string

	// Scalar values (only one valid based on typ)
	byteVal   int8
	shortVal  int16
	intVal    int32
	longVal   int64
	floatVal  float32
	doubleVal float64
	strVal    string

	// Array values
	byteArr []int8
	intArr  []int32
	longArr []int64

	// Containers
	elemType TagType // declared element kind of a list (End when empty)
	listVal  []*Tag
	members  *orderedmap.OrderedMap[string, *Tag]
}

// ============================================================
// Constructors
// ============================================================

// Byte creates a Byte tag. Values outside [-128, 127] are rejected.
func Byte(v int64) (*Tag, error) {
	if v < math.MinInt8 || v > math.MaxInt8 {
		return nil, &ValueRangeError{Type: TypeByte, Value: v, Min: math.MinInt8, Max: math.MaxInt8}
	}
	return &Tag{typ: TypeByte, byteVal: int8(v)}, nil
}

// Short creates a Short tag. Values outside [-32768, 32767] are rejected.
func Short(v int64) (*Tag, error) {
	if v < math.MinInt16 || v > math.MaxInt16 {
		return nil, &ValueRangeError{Type: TypeShort, Value: v, Min: math.MinInt16, Max: math.MaxInt16}
	}
	return &Tag{typ: TypeShort, shortVal: int16(v)}, nil
}

// Int creates an Int tag. Values outside the signed 32-bit range are
// rejected.
func Int(v int64) (*Tag, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return nil, &ValueRangeError{Type: TypeInt, Value: v, Min: math.MinInt32, Max: math.MaxInt32}
	}
	return &Tag{typ: TypeInt, intVal: int32(v)}, nil
}

// Long creates a Long tag.
func Long(v int64) *Tag {
	return &Tag{typ: TypeLong, longVal: v}
}

// Float creates a Float tag. Any bit pattern is legal, including NaN
// and the infinities.
func Float(v float32) *Tag {
	return &Tag{typ: TypeFloat, floatVal: v}
}

// Double creates a Double tag.
func Double(v float64) *Tag {
	return &Tag{typ: TypeDouble, doubleVal: v}
}

// String creates a String tag. The UTF-8 byte length must fit the
// format's 16-bit length prefix.
func String(s string) (*Tag, error) {
	if len(s) > MaxStringLen {
		return nil, &ValueRangeError{Type: TypeString, Value: int64(len(s)), Min: 0, Max: MaxStringLen}
	}
	return &Tag{typ: TypeString, strVal: s}, nil
}

// ByteArray creates a ByteArray tag.
func ByteArray(v []int8) *Tag {
	return &Tag{typ: TypeByteArray, byteArr: v}
}

// IntArray creates an IntArray tag.
func IntArray(v []int32) *Tag {
	return &Tag{typ: TypeIntArray, intArr: v}
}

// LongArray creates a LongArray tag.
func LongArray(v []int64) *Tag {
	return &Tag{typ: TypeLongArray, longArr: v}
}

// List creates a List tag with the declared element kind. Every
// element must be of that kind; element names are cleared, since list
// elements are unnamed on the wire. An empty list may declare TypeEnd
// as its element kind; a non-empty one may not.
func List(elem TagType, elems ...*Tag) (*Tag, error) {
	if !elem.valid() {
		return nil, &InvariantViolationError{Reason: fmt.Sprintf("list element kind %s is not a tag type", elem)}
	}
	if elem == TypeEnd && len(elems) > 0 {
		return nil, &InvariantViolationError{Reason: "non-empty list cannot declare End element kind"}
	}
	for i, e := range elems {
		if e == nil {
			return nil, &InvariantViolationError{Reason: fmt.Sprintf("list element %d is nil", i)}
		}
		if e.typ != elem {
			return nil, &InvariantViolationError{
				Reason: fmt.Sprintf("list element %d is %s, list declares %s", i, e.typ, elem),
			}
		}
		e.name = ""
	}
	// An empty list's declared element kind is End; normalizing here
	// keeps the encoding canonical.
	if len(elems) == 0 {
		elem = TypeEnd
	}
	return &Tag{typ: TypeList, elemType: elem, listVal: elems}, nil
}

// NewCompound creates an empty Compound tag.
func NewCompound() *Tag {
	return &Tag{typ: TypeCompound, members: orderedmap.New[string, *Tag]()}
}

// ============================================================
// Accessors
// ============================================================

// Type returns the tag kind.
func (t *Tag) Type() TagType {
	if t == nil {
		return TypeEnd
	}
	return t.typ
}

// Name returns the tag's name. List elements and freshly constructed
// tags have the empty name.
func (t *Tag) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// AsByte returns the Byte value.
func (t *Tag) AsByte() (int8, error) {
	if err := t.check(TypeByte); err != nil {
		return 0, err
	}
	return t.byteVal, nil
}

// AsShort returns the Short value.
func (t *Tag) AsShort() (int16, error) {
	if err := t.check(TypeShort); err != nil {
		return 0, err
	}
	return t.shortVal, nil
}

// AsInt returns the Int value.
func (t *Tag) AsInt() (int32, error) {
	if err := t.check(TypeInt); err != nil {
		return 0, err
	}
	return t.intVal, nil
}

// AsLong returns the Long value.
func (t *Tag) AsLong() (int64, error) {
	if err := t.check(TypeLong); err != nil {
		return 0, err
	}
	return t.longVal, nil
}

// AsFloat returns the Float value.
func (t *Tag) AsFloat() (float32, error) {
	if err := t.check(TypeFloat); err != nil {
		return 0, err
	}
	return t.floatVal, nil
}

// AsDouble returns the Double value.
func (t *Tag) AsDouble() (float64, error) {
	if err := t.check(TypeDouble); err != nil {
		return 0, err
	}
	return t.doubleVal, nil
}

// AsString returns the String value.
func (t *Tag) AsString() (string, error) {
	if err := t.check(TypeString); err != nil {
		return "", err
	}
	return t.strVal, nil
}

// AsByteArray returns the ByteArray elements.
func (t *Tag) AsByteArray() ([]int8, error) {
	if err := t.check(TypeByteArray); err != nil {
		return nil, err
	}
	return t.byteArr, nil
}

// AsIntArray returns the IntArray elements.
func (t *Tag) AsIntArray() ([]int32, error) {
	if err := t.check(TypeIntArray); err != nil {
		return nil, err
	}
	return t.intArr, nil
}

// AsLongArray returns the LongArray elements.
func (t *Tag) AsLongArray() ([]int64, error) {
	if err := t.check(TypeLongArray); err != nil {
		return nil, err
	}
	return t.longArr, nil
}

// AsList returns the List elements.
func (t *Tag) AsList() ([]*Tag, error) {
	if err := t.check(TypeList); err != nil {
		return nil, err
	}
	return t.listVal, nil
}

// ElemType returns the declared element kind of a List. TypeEnd for
// non-list tags and for empty lists.
func (t *Tag) ElemType() TagType {
	if t == nil || t.typ != TypeList {
		return TypeEnd
	}
	return t.elemType
}

// Len returns the number of elements of a list, array, or compound,
// or the byte length of a string. Zero for scalar tags.
func (t *Tag) Len() int {
	if t == nil {
		return 0
	}
	switch t.typ {
	case TypeList:
		return len(t.listVal)
	case TypeCompound:
		return t.members.Len()
	case TypeByteArray:
		return len(t.byteArr)
	case TypeIntArray:
		return len(t.intArr)
	case TypeLongArray:
		return len(t.longArr)
	case TypeString:
		return len(t.strVal)
	default:
		return 0
	}
}

func (t *Tag) check(want TagType) error {
	if t == nil {
		return fmt.Errorf("nbt: nil tag")
	}
	if t.typ != want {
		return fmt.Errorf("nbt: expected %s, got %s", want, t.typ)
	}
	return nil
}
