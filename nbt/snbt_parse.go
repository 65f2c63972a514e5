package nbt

import (
	"math"
	"strconv"
	"strings"
)

// ParseSNBT parses SNBT text into a tag. The result may be any tag
// kind; callers that need a document root should check for a
// Compound. Construction invariants apply during parsing, so mixed
// list elements or out-of-range suffixed numbers fail with the same
// errors as direct construction.
func ParseSNBT(input string) (*Tag, error) {
	p := &snbtParser{input: input}
	p.skipWhitespace()
	t, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.pos < len(p.input) {
		return nil, &SNBTError{Offset: p.pos, Message: "trailing characters after value"}
	}
	return t, nil
}

type snbtParser struct {
	input string
	pos   int
	depth int
}

func (p *snbtParser) parseValue() (*Tag, error) {
	if p.pos >= len(p.input) {
		return nil, &SNBTError{Offset: p.pos, Message: "unexpected end of input"}
	}

	switch c := p.input[p.pos]; {
	case c == '{':
		return p.parseCompound()
	case c == '[':
		return p.parseListOrArray()
	case c == '"' || c == '\'':
		s, err := p.parseQuotedString()
		if err != nil {
			return nil, err
		}
		return String(s)
	default:
		return p.parseBareToken()
	}
}

func (p *snbtParser) push() error {
	p.depth++
	if p.depth > MaxDepth {
		return &DepthLimitError{Offset: p.pos, Limit: MaxDepth}
	}
	return nil
}

func (p *snbtParser) pop() {
	p.depth--
}

func (p *snbtParser) parseCompound() (*Tag, error) {
	p.pos++ // consume {
	if err := p.push(); err != nil {
		return nil, err
	}
	defer p.pop()

	c := NewCompound()
	p.skipWhitespace()
	if p.peek() == '}' {
		p.pos++
		return c, nil
	}

	for {
		p.skipWhitespace()
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		if !p.expect(':') {
			return nil, &SNBTError{Offset: p.pos, Message: "expected ':' after compound key"}
		}
		p.skipWhitespace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := c.Set(key, val); err != nil {
			return nil, err
		}

		p.skipWhitespace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return c, nil
		default:
			return nil, &SNBTError{Offset: p.pos, Message: "expected ',' or '}' in compound"}
		}
	}
}

func (p *snbtParser) parseKey() (string, error) {
	c := p.peek()
	if c == '"' || c == '\'' {
		return p.parseQuotedString()
	}
	start := p.pos
	for p.pos < len(p.input) && isBareChar(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", &SNBTError{Offset: p.pos, Message: "expected compound key"}
	}
	return p.input[start:p.pos], nil
}

func (p *snbtParser) parseListOrArray() (*Tag, error) {
	// Array headers: [B; [I; [L;
	if p.pos+2 < len(p.input) && p.input[p.pos+2] == ';' {
		switch p.input[p.pos+1] {
		case 'B':
			return p.parseArray(TypeByteArray)
		case 'I':
			return p.parseArray(TypeIntArray)
		case 'L':
			return p.parseArray(TypeLongArray)
		}
	}
	return p.parseList()
}

func (p *snbtParser) parseList() (*Tag, error) {
	p.pos++ // consume [
	if err := p.push(); err != nil {
		return nil, err
	}
	defer p.pop()

	var elems []*Tag
	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
		return List(TypeEnd)
	}

	for {
		p.skipWhitespace()
		e, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)

		p.skipWhitespace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return List(elems[0].typ, elems...)
		default:
			return nil, &SNBTError{Offset: p.pos, Message: "expected ',' or ']' in list"}
		}
	}
}

func (p *snbtParser) parseArray(typ TagType) (*Tag, error) {
	p.pos += 3 // consume [X;

	var bytes []int8
	var ints []int32
	var longs []int64

	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
	} else {
		for {
			p.skipWhitespace()
			v, err := p.parseArrayElement(typ)
			if err != nil {
				return nil, err
			}
			switch typ {
			case TypeByteArray:
				if v < math.MinInt8 || v > math.MaxInt8 {
					return nil, &ValueRangeError{Type: TypeByte, Value: v, Min: math.MinInt8, Max: math.MaxInt8}
				}
				bytes = append(bytes, int8(v))
			case TypeIntArray:
				if v < math.MinInt32 || v > math.MaxInt32 {
					return nil, &ValueRangeError{Type: TypeInt, Value: v, Min: math.MinInt32, Max: math.MaxInt32}
				}
				ints = append(ints, int32(v))
			case TypeLongArray:
				longs = append(longs, v)
			}

			p.skipWhitespace()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			if p.peek() == ']' {
				p.pos++
				break
			}
			return nil, &SNBTError{Offset: p.pos, Message: "expected ',' or ']' in array"}
		}
	}

	switch typ {
	case TypeByteArray:
		return ByteArray(bytes), nil
	case TypeIntArray:
		return IntArray(ints), nil
	default:
		return LongArray(longs), nil
	}
}

func (p *snbtParser) parseArrayElement(typ TagType) (int64, error) {
	start := p.pos
	for p.pos < len(p.input) && isBareChar(p.input[p.pos]) {
		p.pos++
	}
	tok := p.input[start:p.pos]
	if tok == "" {
		return 0, &SNBTError{Offset: start, Message: "expected array element"}
	}
	// Elements may carry the matching type suffix.
	switch typ {
	case TypeByteArray:
		tok = strings.TrimSuffix(strings.TrimSuffix(tok, "b"), "B")
	case TypeLongArray:
		tok = strings.TrimSuffix(strings.TrimSuffix(tok, "l"), "L")
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, &SNBTError{Offset: start, Message: "invalid array element " + strconv.Quote(tok)}
	}
	return v, nil
}

func (p *snbtParser) parseQuotedString() (string, error) {
	quote := p.input[p.pos]
	p.pos++

	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == quote {
			p.pos++
			return sb.String(), nil
		}
		if c == '\\' && p.pos+1 < len(p.input) {
			p.pos++
			sb.WriteByte(p.input[p.pos])
		} else {
			sb.WriteByte(c)
		}
		p.pos++
	}
	return "", &SNBTError{Offset: p.pos, Message: "unterminated string"}
}

// parseBareToken reads an unquoted token and classifies it as a
// boolean, a suffixed or plain number, or a bare string.
func (p *snbtParser) parseBareToken() (*Tag, error) {
	start := p.pos
	for p.pos < len(p.input) && isBareChar(p.input[p.pos]) {
		p.pos++
	}
	tok := p.input[start:p.pos]
	if tok == "" {
		return nil, &SNBTError{Offset: start, Message: "unexpected character " + strconv.Quote(string(p.input[start]))}
	}

	switch tok {
	case "true":
		return Byte(1)
	case "false":
		return Byte(0)
	}

	if t, ok, err := classifyNonFinite(tok); ok || err != nil {
		return t, err
	}

	if looksNumeric(tok) {
		return parseNumericToken(tok, start)
	}

	return String(tok)
}

// classifyNonFinite handles NaN, Infinity, and -Infinity with an
// optional f/d suffix. SNBT has no official spelling for these, but
// the emitter produces them and the parser must invert it.
func classifyNonFinite(tok string) (*Tag, bool, error) {
	body := tok
	suffix := byte('d')
	if n := len(tok); n > 0 {
		switch tok[n-1] {
		case 'f', 'F', 'd', 'D':
			body = tok[:n-1]
			suffix = tok[n-1] | 0x20
		}
	}

	var v float64
	switch body {
	case "NaN":
		v = math.NaN()
	case "Infinity":
		v = math.Inf(1)
	case "-Infinity":
		v = math.Inf(-1)
	default:
		return nil, false, nil
	}

	if suffix == 'f' {
		return Float(float32(v)), true, nil
	}
	return Double(v), true, nil
}

func parseNumericToken(tok string, offset int) (*Tag, error) {
	last := tok[len(tok)-1]
	body := tok[:len(tok)-1]

	switch last {
	case 'b', 'B':
		v, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return nil, &SNBTError{Offset: offset, Message: "invalid byte literal " + strconv.Quote(tok)}
		}
		return Byte(v)
	case 's', 'S':
		v, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return nil, &SNBTError{Offset: offset, Message: "invalid short literal " + strconv.Quote(tok)}
		}
		return Short(v)
	case 'l', 'L':
		v, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return nil, &SNBTError{Offset: offset, Message: "invalid long literal " + strconv.Quote(tok)}
		}
		return Long(v), nil
	case 'f', 'F':
		v, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return nil, &SNBTError{Offset: offset, Message: "invalid float literal " + strconv.Quote(tok)}
		}
		return Float(float32(v)), nil
	case 'd', 'D':
		v, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return nil, &SNBTError{Offset: offset, Message: "invalid double literal " + strconv.Quote(tok)}
		}
		return Double(v), nil
	}

	if strings.Contains(tok, ".") {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &SNBTError{Offset: offset, Message: "invalid double literal " + strconv.Quote(tok)}
		}
		return Double(v), nil
	}

	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return nil, &SNBTError{Offset: offset, Message: "invalid int literal " + strconv.Quote(tok)}
	}
	return Int(v)
}

func (p *snbtParser) skipWhitespace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *snbtParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *snbtParser) expect(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func isBareChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '.' || c == '+' || c == '-'
}
