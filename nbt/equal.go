package nbt

import "math"

// Equal reports structural equality. Compound comparison is
// order-independent; List comparison is order-sensitive and includes
// the declared element kind. Float and Double compare by bit pattern
// with any NaN matching any NaN, so the sign of infinities and of
// zero is significant.
func (t *Tag) Equal(other *Tag) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.typ != other.typ || t.name != other.name {
		return false
	}

	switch t.typ {
	case TypeEnd:
		return true
	case TypeByte:
		return t.byteVal == other.byteVal
	case TypeShort:
		return t.shortVal == other.shortVal
	case TypeInt:
		return t.intVal == other.intVal
	case TypeLong:
		return t.longVal == other.longVal
	case TypeFloat:
		return float32Match(t.floatVal, other.floatVal)
	case TypeDouble:
		return float64Match(t.doubleVal, other.doubleVal)
	case TypeString:
		return t.strVal == other.strVal
	case TypeByteArray:
		if len(t.byteArr) != len(other.byteArr) {
			return false
		}
		for i := range t.byteArr {
			if t.byteArr[i] != other.byteArr[i] {
				return false
			}
		}
		return true
	case TypeIntArray:
		if len(t.intArr) != len(other.intArr) {
			return false
		}
		for i := range t.intArr {
			if t.intArr[i] != other.intArr[i] {
				return false
			}
		}
		return true
	case TypeLongArray:
		if len(t.longArr) != len(other.longArr) {
			return false
		}
		for i := range t.longArr {
			if t.longArr[i] != other.longArr[i] {
				return false
			}
		}
		return true
	case TypeList:
		if t.elemType != other.elemType || len(t.listVal) != len(other.listVal) {
			return false
		}
		for i := range t.listVal {
			if !t.listVal[i].Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	case TypeCompound:
		if t.members.Len() != other.members.Len() {
			return false
		}
		for pair := t.members.Oldest(); pair != nil; pair = pair.Next() {
			match, ok := other.members.Get(pair.Key)
			if !ok || !pair.Value.Equal(match) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func float32Match(a, b float32) bool {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return math.IsNaN(float64(a)) && math.IsNaN(float64(b))
	}
	return math.Float32bits(a) == math.Float32bits(b)
}

func float64Match(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Float64bits(a) == math.Float64bits(b)
}
