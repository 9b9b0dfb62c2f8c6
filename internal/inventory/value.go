package inventory

// Value is an inventory scalar. The zero value is NoValue, which is distinct
// from the empty string.
type Value struct {
	s   string
	set bool
}

// NoValue marks a host that has no extra attributes.
var NoValue = Value{}

// String wraps a string value. String("") is not NoValue.
func String(s string) Value {
	return Value{s: s, set: true}
}

// IsNull reports whether v is NoValue.
func (v Value) IsNull() bool {
	return !v.set
}

func (v Value) String() string {
	return v.s
}
