package core

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Uint64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	StringerType
	AnyType
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType, ErrorType:
		return f.Str
	default:
		return string(f.AppendValue(nil))
	}
}

// AppendValue appends the textual form of the value to dst. Numeric
// types never allocate beyond growing dst.
func (f Field) AppendValue(dst []byte) []byte {
	switch f.Type {
	case StringType, ErrorType:
		return append(dst, f.Str...)
	case IntType, Int64Type:
		return strconv.AppendInt(dst, f.Int64, 10)
	case Uint64Type:
		return strconv.AppendUint(dst, uint64(f.Int64), 10)
	case Float64Type:
		return strconv.AppendFloat(dst, f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.AppendBool(dst, f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).UTC().AppendFormat(dst, time.RFC3339)
	case DurationType:
		return append(dst, time.Duration(f.Int64).String()...)
	case StringerType:
		return appendStringer(dst, f.Any)
	case AnyType:
		return fmt.Appendf(dst, "%v", f.Any)
	default:
		return dst
	}
}

// appendStringer renders v.String(). Nil values, including typed nil
// pointers, render as "<nil>"; a panicking String renders as
// "<PANIC=...>".
func appendStringer(dst []byte, v interface{}) (out []byte) {
	s, ok := v.(fmt.Stringer)
	if !ok || s == nil {
		return append(dst, "<nil>"...)
	}
	if rv := reflect.ValueOf(s); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return append(dst, "<nil>"...)
	}
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Appendf(dst, "<PANIC=%v>", r)
		}
	}()
	return append(dst, s.String()...)
}
