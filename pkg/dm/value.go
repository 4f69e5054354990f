package dm

import "strconv"

// ValueType is the wire type of a resource value.
type ValueType string

const (
	TypeNone  ValueType = ""
	TypeInt32 ValueType = "int32"
	TypeInt64 ValueType = "int64"
)

// Value is a typed integer resource value.
type Value struct {
	Type ValueType
	Int  int64
}

// Int32 wraps v as a 32-bit value.
func Int32(v int32) Value { return Value{Type: TypeInt32, Int: int64(v)} }

// Int64 wraps v as a 64-bit value.
func Int64(v int64) Value { return Value{Type: TypeInt64, Int: v} }

func (v Value) String() string {
	return strconv.FormatInt(v.Int, 10) + ":" + string(v.Type)
}
