package node

import (
	"fmt"
	"math"
	"strconv"
)

// ParamType is a semantic type of parameter.
type ParamType int

// Parameter types.
const (
	Float ParamType = iota
	Int
	Bool
	Path
)

func (t ParamType) String() string {
	switch t {
	case Float:
		return "float"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Path:
		return "path"
	}
	return "unknown"
}

// Value is a typed parameter value.
type Value struct {
	typ ParamType
	f   float64
	i   int
	b   bool
	s   string
}

// FloatValue returns float parameter value.
func FloatValue(f float64) Value { return Value{typ: Float, f: f} }

// IntValue returns int parameter value.
func IntValue(i int) Value { return Value{typ: Int, i: i} }

// BoolValue returns bool parameter value.
func BoolValue(b bool) Value { return Value{typ: Bool, b: b} }

// PathValue returns file path parameter value.
func PathValue(s string) Value { return Value{typ: Path, s: s} }

// Type returns value type.
func (v Value) Type() ParamType { return v.typ }

// Float returns float value.
func (v Value) Float() float64 { return v.f }

// Int returns int value.
func (v Value) Int() int { return v.i }

// Bool returns bool value.
func (v Value) Bool() bool { return v.b }

// Path returns file path value.
func (v Value) Path() string { return v.s }

// Interface returns underlying value as float64, int, bool or string.
func (v Value) Interface() interface{} {
	switch v.typ {
	case Float:
		return v.f
	case Int:
		return v.i
	case Bool:
		return v.b
	}
	return v.s
}

func (v Value) String() string {
	switch v.typ {
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Int:
		return strconv.Itoa(v.i)
	case Bool:
		return strconv.FormatBool(v.b)
	}
	return strconv.Quote(v.s)
}

// ParamDef defines a node parameter. Bounds are editing hints only, they
// are never applied when a node is resolved. Hard bounds are Min and Max,
// soft bounds limit slider ranges.
type ParamDef struct {
	Name    string
	Label   string
	Type    ParamType
	Default Value
	Min     *float64
	Max     *float64
	SoftMin *float64
	SoftMax *float64
}

func bound(v float64) *float64 {
	return &v
}

// Clamp limits v to hard bounds.
func (p ParamDef) Clamp(v float64) float64 {
	if p.Min != nil {
		v = math.Max(v, *p.Min)
	}
	if p.Max != nil {
		v = math.Min(v, *p.Max)
	}
	return v
}

// InSoftRange reports if v is within soft bounds.
func (p ParamDef) InSoftRange(v float64) bool {
	if p.SoftMin != nil && v < *p.SoftMin {
		return false
	}
	if p.SoftMax != nil && v > *p.SoftMax {
		return false
	}
	return true
}

// Convert converts v to a value of this parameter type. Integers are
// accepted for float parameters and integral floats for int parameters.
func (p ParamDef) Convert(v interface{}) (Value, error) {
	switch p.Type {
	case Float:
		switch v := v.(type) {
		case float64:
			return FloatValue(v), nil
		case float32:
			return FloatValue(float64(v)), nil
		case int:
			return FloatValue(float64(v)), nil
		}
	case Int:
		switch v := v.(type) {
		case int:
			return IntValue(v), nil
		case float64:
			if v == math.Trunc(v) {
				return IntValue(int(v)), nil
			}
		}
	case Bool:
		if b, ok := v.(bool); ok {
			return BoolValue(b), nil
		}
	case Path:
		if s, ok := v.(string); ok {
			return PathValue(s), nil
		}
	}
	return Value{}, fmt.Errorf("%w: %s expects %v, got %T", ErrParamType, p.Name, p.Type, v)
}
