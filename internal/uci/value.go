package uci

// Value is a normalized option value. The underlying store represents
// options either as a scalar or as a list; at this boundary both become a
// list, a scalar being a list of one.
type Value []string

// Scalar builds a single-element Value.
func Scalar(s string) Value {
	return Value{s}
}

// First returns the first element, or "" when the value is empty. Options
// that are scalars by convention (name, type, proto) are read through this.
func (v Value) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// Contains reports whether the value contains the given element.
func (v Value) Contains(s string) bool {
	for _, e := range v {
		if e == s {
			return true
		}
	}
	return false
}

// Without returns a copy of the value with every occurrence of s removed.
func (v Value) Without(s string) Value {
	var out Value
	for _, e := range v {
		if e != s {
			out = append(out, e)
		}
	}
	return out
}

// With returns the value with s appended, unless already present.
func (v Value) With(s string) Value {
	if v.Contains(s) {
		return v
	}
	return append(append(Value{}, v...), s)
}
