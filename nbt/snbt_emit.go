package nbt

import (
	"math"
	"strconv"
	"strings"
)

// SNBT is the stringified text form of NBT: compounds as
// {name:value}, lists as [v,v], typed numeric suffixes (1b, 2s, 3l,
// 4.5f), and B;/I;/L; prefixed arrays. It is a human-readable bridge,
// not part of the wire format.

// SNBTOptions configures the SNBT emitter.
type SNBTOptions struct {
	// Pretty adds newlines and indentation.
	Pretty bool

	// Indent string for pretty mode (default: "  ")
	Indent string
}

// EmitSNBT converts a tag to compact SNBT text.
func EmitSNBT(t *Tag) string {
	return EmitSNBTWithOptions(t, SNBTOptions{})
}

// EmitSNBTWithOptions converts a tag to SNBT text with custom options.
func EmitSNBTWithOptions(t *Tag, opts SNBTOptions) string {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	e := &snbtEmitter{opts: opts}
	e.emit(t, 0)
	return e.sb.String()
}

type snbtEmitter struct {
	sb   strings.Builder
	opts SNBTOptions
}

func (e *snbtEmitter) emit(t *Tag, depth int) {
	if t == nil {
		e.sb.WriteString("{}")
		return
	}

	switch t.typ {
	case TypeByte:
		e.sb.WriteString(strconv.FormatInt(int64(t.byteVal), 10))
		e.sb.WriteByte('b')

	case TypeShort:
		e.sb.WriteString(strconv.FormatInt(int64(t.shortVal), 10))
		e.sb.WriteByte('s')

	case TypeInt:
		e.sb.WriteString(strconv.FormatInt(int64(t.intVal), 10))

	case TypeLong:
		e.sb.WriteString(strconv.FormatInt(t.longVal, 10))
		e.sb.WriteByte('l')

	case TypeFloat:
		e.emitFloat(float64(t.floatVal), 32)
		e.sb.WriteByte('f')

	case TypeDouble:
		e.emitFloat(t.doubleVal, 64)
		e.sb.WriteByte('d')

	case TypeString:
		e.emitString(t.strVal)

	case TypeByteArray:
		e.sb.WriteString("[B;")
		for i, v := range t.byteArr {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteString(strconv.FormatInt(int64(v), 10))
			e.sb.WriteByte('b')
		}
		e.sb.WriteByte(']')

	case TypeIntArray:
		e.sb.WriteString("[I;")
		for i, v := range t.intArr {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteString(strconv.FormatInt(int64(v), 10))
		}
		e.sb.WriteByte(']')

	case TypeLongArray:
		e.sb.WriteString("[L;")
		for i, v := range t.longArr {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteString(strconv.FormatInt(v, 10))
			e.sb.WriteByte('l')
		}
		e.sb.WriteByte(']')

	case TypeList:
		e.emitList(t, depth)

	case TypeCompound:
		e.emitCompound(t, depth)
	}
}

func (e *snbtEmitter) emitFloat(f float64, bits int) {
	switch {
	case math.IsNaN(f):
		e.sb.WriteString("NaN")
	case math.IsInf(f, 1):
		e.sb.WriteString("Infinity")
	case math.IsInf(f, -1):
		e.sb.WriteString("-Infinity")
	default:
		s := strconv.FormatFloat(f, 'f', -1, bits)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		e.sb.WriteString(s)
	}
}

func (e *snbtEmitter) emitString(s string) {
	if isBareSNBTString(s) {
		e.sb.WriteString(s)
		return
	}
	e.sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			e.sb.WriteString(`\"`)
		case '\\':
			e.sb.WriteString(`\\`)
		default:
			e.sb.WriteByte(s[i])
		}
	}
	e.sb.WriteByte('"')
}

func (e *snbtEmitter) emitList(t *Tag, depth int) {
	e.sb.WriteByte('[')
	for i, elem := range t.listVal {
		if i > 0 {
			e.sb.WriteByte(',')
		}
		if e.opts.Pretty {
			e.sb.WriteByte('\n')
			e.writeIndent(depth + 1)
		}
		e.emit(elem, depth+1)
	}
	if e.opts.Pretty && len(t.listVal) > 0 {
		e.sb.WriteByte('\n')
		e.writeIndent(depth)
	}
	e.sb.WriteByte(']')
}

func (e *snbtEmitter) emitCompound(t *Tag, depth int) {
	e.sb.WriteByte('{')
	i := 0
	for pair := t.members.Oldest(); pair != nil; pair = pair.Next() {
		if i > 0 {
			e.sb.WriteByte(',')
		}
		if e.opts.Pretty {
			e.sb.WriteByte('\n')
			e.writeIndent(depth + 1)
		}
		e.emitString(pair.Key)
		e.sb.WriteByte(':')
		if e.opts.Pretty {
			e.sb.WriteByte(' ')
		}
		e.emit(pair.Value, depth+1)
		i++
	}
	if e.opts.Pretty && i > 0 {
		e.sb.WriteByte('\n')
		e.writeIndent(depth)
	}
	e.sb.WriteByte('}')
}

func (e *snbtEmitter) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		e.sb.WriteString(e.opts.Indent)
	}
}

// isBareSNBTString reports whether s can be emitted without quotes.
// Bare strings are limited to [A-Za-z0-9_.+-] and must not be empty
// or parse back as a number or boolean.
func isBareSNBTString(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '_' || c == '.' || c == '+' || c == '-') {
			return false
		}
	}
	// Anything that classifies as a numeric or non-finite literal must
	// be quoted to survive a round trip as a string.
	if isNonFiniteLiteral(s) {
		return false
	}
	return !looksNumeric(s)
}

// isNonFiniteLiteral matches the NaN and Infinity spellings, with an
// optional f/F/d/D suffix, that the parser turns back into Float or
// Double values.
func isNonFiniteLiteral(s string) bool {
	if n := len(s); n > 1 {
		switch s[n-1] {
		case 'f', 'F', 'd', 'D':
			s = s[:n-1]
		}
	}
	switch s {
	case "NaN", "Infinity", "-Infinity":
		return true
	}
	return false
}

func looksNumeric(s string) bool {
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	// Optional type suffix.
	if i < len(s) {
		switch s[i] {
		case 'b', 'B', 's', 'S', 'l', 'L', 'f', 'F', 'd', 'D':
			i++
		}
	}
	return i == len(s)
}
