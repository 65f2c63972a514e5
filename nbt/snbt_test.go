package nbt

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// ============================================================
// SNBT Parsing
// ============================================================

func TestParseSNBT_Scalars(t *testing.T) {
	tests := []struct {
		input string
		want  TagType
	}{
		{"1b", TypeByte},
		{"-128b", TypeByte},
		{"true", TypeByte},
		{"false", TypeByte},
		{"300s", TypeShort},
		{"12345", TypeInt},
		{"-7", TypeInt},
		{"900000000000l", TypeLong},
		{"1.5f", TypeFloat},
		{"1.5", TypeDouble},
		{"2.5d", TypeDouble},
		{"3d", TypeDouble},
		{`"quoted"`, TypeString},
		{"'single'", TypeString},
		{"bare_string", TypeString},
		{"NaNd", TypeDouble},
		{"Infinityf", TypeFloat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tag, err := ParseSNBT(tt.input)
			if err != nil {
				t.Fatalf("ParseSNBT failed: %v", err)
			}
			if tag.Type() != tt.want {
				t.Errorf("type = %s, want %s", tag.Type(), tt.want)
			}
		})
	}
}

func TestParseSNBT_BoolIsByte(t *testing.T) {
	tag, err := ParseSNBT("true")
	if err != nil {
		t.Fatalf("ParseSNBT failed: %v", err)
	}
	if v, _ := tag.AsByte(); v != 1 {
		t.Errorf("true = %d, want 1", v)
	}
}

func TestParseSNBT_Containers(t *testing.T) {
	tag, err := ParseSNBT(`{name:"abc", scores:[1,2,3], nested:{flag:1b}, bytes:[B;1b,-2b], longs:[L;5l]}`)
	if err != nil {
		t.Fatalf("ParseSNBT failed: %v", err)
	}
	if tag.Type() != TypeCompound {
		t.Fatalf("type = %s, want Compound", tag.Type())
	}
	if v, _ := tag.Get("name").AsString(); v != "abc" {
		t.Errorf("name = %q", v)
	}
	scores := tag.Get("scores")
	if scores.ElemType() != TypeInt || scores.Len() != 3 {
		t.Errorf("scores = %s x%d, want Int x3", scores.ElemType(), scores.Len())
	}
	if v, _ := tag.Get("nested").Get("flag").AsByte(); v != 1 {
		t.Errorf("nested flag = %d", v)
	}
	if arr, _ := tag.Get("bytes").AsByteArray(); len(arr) != 2 || arr[1] != -2 {
		t.Errorf("bytes = %v", arr)
	}
	if arr, _ := tag.Get("longs").AsLongArray(); len(arr) != 1 || arr[0] != 5 {
		t.Errorf("longs = %v", arr)
	}
}

func TestParseSNBT_EmptyContainers(t *testing.T) {
	c, err := ParseSNBT("{}")
	if err != nil || c.Type() != TypeCompound || c.Len() != 0 {
		t.Fatalf("empty compound: %v %v", c, err)
	}
	l, err := ParseSNBT("[]")
	if err != nil || l.Type() != TypeList || l.ElemType() != TypeEnd {
		t.Fatalf("empty list: %v %v", l, err)
	}
	a, err := ParseSNBT("[I;]")
	if err != nil || a.Type() != TypeIntArray || a.Len() != 0 {
		t.Fatalf("empty int array: %v %v", a, err)
	}
}

func TestParseSNBT_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"mixed list", "[1,2b]", &InvariantViolationError{}},
		{"byte out of range", "128b", &ValueRangeError{}},
		{"short out of range", "40000s", &ValueRangeError{}},
		{"unterminated compound", "{a:1", &SNBTError{}},
		{"unterminated string", `"abc`, &SNBTError{}},
		{"missing colon", "{a 1}", &SNBTError{}},
		{"trailing garbage", "1b junk", &SNBTError{}},
		{"bad array element", "[B;x]", &SNBTError{}},
		{"empty input", "", &SNBTError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSNBT(tt.input)
			if err == nil {
				t.Fatal("ParseSNBT succeeded on malformed input")
			}
			switch tt.want.(type) {
			case *InvariantViolationError:
				var e *InvariantViolationError
				if !errors.As(err, &e) {
					t.Fatalf("expected InvariantViolationError, got %T: %v", err, err)
				}
			case *ValueRangeError:
				var e *ValueRangeError
				if !errors.As(err, &e) {
					t.Fatalf("expected ValueRangeError, got %T: %v", err, err)
				}
			case *SNBTError:
				var e *SNBTError
				if !errors.As(err, &e) {
					t.Fatalf("expected SNBTError, got %T: %v", err, err)
				}
			}
		})
	}
}

func TestParseSNBT_DepthLimit(t *testing.T) {
	input := strings.Repeat("[", MaxDepth+8) + strings.Repeat("]", MaxDepth+8)
	_, err := ParseSNBT(input)
	var depth *DepthLimitError
	if !errors.As(err, &depth) {
		t.Fatalf("expected DepthLimitError, got %v", err)
	}
}

// ============================================================
// SNBT Emission
// ============================================================

func TestEmitSNBT_Scalars(t *testing.T) {
	tests := []struct {
		name string
		tag  *Tag
		want string
	}{
		{"byte", mustTag(Byte(-7)), "-7b"},
		{"short", mustTag(Short(300)), "300s"},
		{"int", mustTag(Int(42)), "42"},
		{"long", Long(5), "5l"},
		{"float", Float(1.5), "1.5f"},
		{"double", Double(2.5), "2.5d"},
		{"double whole", Double(3), "3.0d"},
		{"bare string", mustTag(String("plain_text")), "plain_text"},
		{"quoted string", mustTag(String("has space")), `"has space"`},
		{"numeric-looking string", mustTag(String("12b")), `"12b"`},
		{"boolean-looking string", mustTag(String("true")), `"true"`},
		{"escapes", mustTag(String(`a"b\c`)), `"a\"b\\c"`},
		{"nan double", Double(math.NaN()), "NaNd"},
		{"neg inf float", Float(float32(math.Inf(-1))), "-Infinityf"},
		{"nan-looking string", mustTag(String("NaN")), `"NaN"`},
		{"infinity-looking string", mustTag(String("-Infinity")), `"-Infinity"`},
		{"suffixed nan-looking string", mustTag(String("NaNf")), `"NaNf"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EmitSNBT(tt.tag); got != tt.want {
				t.Errorf("EmitSNBT = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmitSNBT_Containers(t *testing.T) {
	root := NewCompound()
	root.Set("id", mustTag(Int(7)))
	root.Set("tags", mustTag(List(TypeString,
		mustTag(String("a")), mustTag(String("b")))))
	root.Set("data", ByteArray([]int8{1, 2}))

	want := `{id:7,tags:[a,b],data:[B;1b,2b]}`
	if got := EmitSNBT(root); got != want {
		t.Errorf("EmitSNBT = %q, want %q", got, want)
	}
}

func TestEmitSNBT_Pretty(t *testing.T) {
	root := NewCompound()
	root.Set("a", mustTag(Int(1)))

	got := EmitSNBTWithOptions(root, SNBTOptions{Pretty: true})
	want := "{\n  a: 1\n}"
	if got != want {
		t.Errorf("pretty output = %q, want %q", got, want)
	}
}

func TestSNBT_NonFiniteStringsStayStrings(t *testing.T) {
	for _, s := range []string{"NaN", "Infinity", "-Infinity", "NaNf", "Infinityd"} {
		root := NewCompound()
		root.Set("v", mustTag(String(s)))
		back, err := ParseSNBT(EmitSNBT(root))
		if err != nil {
			t.Fatalf("ParseSNBT failed for %q: %v", s, err)
		}
		got := back.Get("v")
		if got == nil || got.Type() != TypeString {
			t.Fatalf("value for %q came back as %s", s, got.Type())
		}
		if v, _ := got.AsString(); v != s {
			t.Errorf("value for %q came back as %q", s, v)
		}
	}
}

func TestSNBT_RoundTrip(t *testing.T) {
	root := NewCompound()
	root.Set("title", mustTag(String("round trip")))
	root.Set("level", mustTag(Byte(3)))
	root.Set("pos", mustTag(List(TypeDouble, Double(1.5), Double(-2.25))))
	root.Set("blocks", IntArray([]int32{-5, 0, 5}))
	inner := NewCompound()
	inner.Set("seed", Long(1<<40))
	root.Set("world", inner)

	back, err := ParseSNBT(EmitSNBT(root))
	if err != nil {
		t.Fatalf("ParseSNBT failed: %v", err)
	}
	if !root.Equal(back) {
		t.Errorf("round-tripped tree differs:\n emit: %s\n back: %s", EmitSNBT(root), EmitSNBT(back))
	}
}
