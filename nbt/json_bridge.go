package nbt

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// JSON bridge: converts between JSON and the tag tree for
// interchange with systems that do not speak NBT. The mapping is
// faithful for values but lossy for types — JSON has no byte/short
// distinction and no typed arrays — so FromJSON(ToJSON(t)) does not
// in general reproduce t's tag kinds.

// ToJSON converts a tag to JSON text. Compound members keep their
// insertion order. Non-finite Float/Double values have no JSON
// representation and fail.
func ToJSON(t *Tag) ([]byte, error) {
	var sb strings.Builder
	if err := writeJSONValue(&sb, t); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func writeJSONValue(sb *strings.Builder, t *Tag) error {
	if t == nil {
		sb.WriteString("null")
		return nil
	}

	switch t.typ {
	case TypeByte:
		sb.WriteString(strconv.FormatInt(int64(t.byteVal), 10))
	case TypeShort:
		sb.WriteString(strconv.FormatInt(int64(t.shortVal), 10))
	case TypeInt:
		sb.WriteString(strconv.FormatInt(int64(t.intVal), 10))
	case TypeLong:
		sb.WriteString(strconv.FormatInt(t.longVal, 10))
	case TypeFloat:
		return writeJSONFloat(sb, float64(t.floatVal), 32)
	case TypeDouble:
		return writeJSONFloat(sb, t.doubleVal, 64)
	case TypeString:
		return writeJSONString(sb, t.strVal)
	case TypeByteArray:
		sb.WriteByte('[')
		for i, v := range t.byteArr {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatInt(int64(v), 10))
		}
		sb.WriteByte(']')
	case TypeIntArray:
		sb.WriteByte('[')
		for i, v := range t.intArr {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatInt(int64(v), 10))
		}
		sb.WriteByte(']')
	case TypeLongArray:
		sb.WriteByte('[')
		for i, v := range t.longArr {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatInt(v, 10))
		}
		sb.WriteByte(']')
	case TypeList:
		sb.WriteByte('[')
		for i, e := range t.listVal {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSONValue(sb, e); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case TypeCompound:
		sb.WriteByte('{')
		i := 0
		for pair := t.members.Oldest(); pair != nil; pair = pair.Next() {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSONString(sb, pair.Key); err != nil {
				return err
			}
			sb.WriteByte(':')
			if err := writeJSONValue(sb, pair.Value); err != nil {
				return err
			}
			i++
		}
		sb.WriteByte('}')
	default:
		return fmt.Errorf("nbt: %s tag has no JSON representation", t.typ)
	}
	return nil
}

func writeJSONFloat(sb *strings.Builder, f float64, bits int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("nbt: non-finite %v has no JSON representation", f)
	}
	sb.WriteString(strconv.FormatFloat(f, 'g', -1, bits))
	return nil
}

func writeJSONString(sb *strings.Builder, s string) error {
	quoted, err := json.Marshal(s)
	if err != nil {
		return err
	}
	sb.Write(quoted)
	return nil
}

// FromJSON converts JSON text to a tag tree. Objects become
// Compounds with key order preserved, arrays become Lists, integers
// become Int (or Long when outside 32-bit range), other numbers
// become Double, booleans become Byte 0/1. JSON null and
// mixed-kind arrays have no tag representation and fail.
func FromJSON(data []byte) (*Tag, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	t, err := fromJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("nbt: trailing data after JSON value")
	}
	return t, nil
}

func fromJSONValue(dec *json.Decoder) (*Tag, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("nbt: JSON parse: %w", err)
	}
	return fromJSONToken(dec, tok)
}

func fromJSONToken(dec *json.Decoder, tok json.Token) (*Tag, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			c := NewCompound()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("nbt: JSON parse: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("nbt: JSON object key is %T", keyTok)
				}
				child, err := fromJSONValue(dec)
				if err != nil {
					return nil, err
				}
				if err := c.Set(key, child); err != nil {
					return nil, err
				}
			}
			if _, err := dec.Token(); err != nil { // closing }
				return nil, fmt.Errorf("nbt: JSON parse: %w", err)
			}
			return c, nil

		case '[':
			var elems []*Tag
			for dec.More() {
				e, err := fromJSONValue(dec)
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return nil, fmt.Errorf("nbt: JSON parse: %w", err)
			}
			if len(elems) == 0 {
				return List(TypeEnd)
			}
			return List(elems[0].Type(), elems...)

		default:
			return nil, fmt.Errorf("nbt: unexpected JSON delimiter %v", v)
		}

	case bool:
		if v {
			return Byte(1)
		}
		return Byte(0)

	case json.Number:
		if i, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			if i >= math.MinInt32 && i <= math.MaxInt32 {
				return Int(i)
			}
			return Long(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("nbt: JSON number %q: %w", v.String(), err)
		}
		return Double(f), nil

	case string:
		return String(v)

	case nil:
		return nil, fmt.Errorf("nbt: JSON null has no tag representation")

	default:
		return nil, fmt.Errorf("nbt: unexpected JSON token %T", tok)
	}
}
