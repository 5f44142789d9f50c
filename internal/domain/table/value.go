package table

import "strconv"

// Kind discriminates the cell variants.
type Kind int

const (
	// KindAbsent marks a cell that has no value at all. It is distinct from
	// an empty string, and the distinction is carried through grouping.
	KindAbsent Kind = iota
	// KindString holds free text, including the empty string.
	KindString
	// KindNumber holds a numeric measure.
	KindNumber
)

// Value is a tagged variant for a single cell.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// None returns the absent value.
func None() Value {
	return Value{kind: KindAbsent}
}

// Str wraps a string cell.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Num wraps a numeric cell.
func Num(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Kind reports the variant of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the cell holds no value.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Text renders the value as a string. Absent renders as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Float returns the numeric payload and whether the value is numeric.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Export converts the value for spreadsheet writers. Absent exports as nil.
func (v Value) Export() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	default:
		return nil
	}
}

// GroupToken renders a kind-tagged token so that composite grouping keys
// never conflate an absent cell with an empty string or a numeric cell whose
// text happens to match.
func (v Value) GroupToken() string {
	switch v.kind {
	case KindString:
		return "s:" + v.str
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return "a:"
	}
}
