// Package runtime implements Tea's value/type system and
// its namespace/context machinery.
package runtime

import (
	"strconv"
)

// DataType is a named classifier with an optional parent, forming the
// type lattice rooted at ANY. Types are
// process-wide singletons: equality is pointer identity, never by name.
type DataType struct {
	Name   string
	Parent *DataType
	Cast   func(v *Value) (*Value, error)
}

// KindOf reports whether t is target or a descendant of target, walking
// up the parent chain.
func (t *DataType) KindOf(target *DataType) bool {
	for d := t; d != nil; d = d.Parent {
		if d == target {
			return true
		}
	}
	return false
}

// Value is a (DataType, payload, optional name) triple. Payload holds the Go representation appropriate to Type:
// int64, float64, bool, string, *List, *Set, *Map, *Function, or an
// opaque handle for OBJECT.
type Value struct {
	Type    *DataType
	Payload interface{}
	Name    string
}

func (v *Value) idEntry() {}

func NewValue(t *DataType, payload interface{}) *Value {
	return &Value{Type: t, Payload: payload}
}

// Named returns a copy of v carrying the given binding name; Values
// stored in a namespace are named after the identifier they are bound
// to, but the payload and type are shared.
func (v *Value) Named(name string) *Value {
	return &Value{Type: v.Type, Payload: v.Payload, Name: name}
}

// Equal compares (DataType, payload), ignoring Name.
func (v *Value) Equal(other *Value) bool {
	if other == nil || v.Type != other.Type {
		return false
	}
	return payloadEqual(v.Payload, other.Payload)
}

func payloadEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case *List:
		bv, ok := b.(*List)
		return ok && av.Equal(bv)
	case *Set:
		bv, ok := b.(*Set)
		return ok && av.Equal(bv)
	case *Map:
		bv, ok := b.(*Map)
		return ok && av.Equal(bv)
	case *Function:
		return a == b
	default:
		return a == b
	}
}

// Built-in types, forming a lattice: ANY is the universal root; NUMBER
// is an internal abstract parent of INTEGER and FLOAT, used only for
// signature matching.
var (
	Any     = &DataType{Name: "*any"}
	Number  = &DataType{Name: "*number", Parent: Any}
	Null    = &DataType{Name: "null", Parent: Any}
	Integer = &DataType{Name: "int", Parent: Number}
	Float   = &DataType{Name: "float", Parent: Number}
	Boolean = &DataType{Name: "bool", Parent: Any}
	String  = &DataType{Name: "string", Parent: Any}
	ListT   = &DataType{Name: "list", Parent: Any}
	SetT    = &DataType{Name: "set", Parent: Any}
	MapT    = &DataType{Name: "map", Parent: Any}
	Object  = &DataType{Name: "object", Parent: Any}
	Func    = &DataType{Name: "func", Parent: Any}
)

func init() {
	Integer.Cast = castInteger
	Float.Cast = castFloat
	String.Cast = castString
	Boolean.Cast = castBoolean
	ListT.Cast = castList
	SetT.Cast = castSet
	MapT.Cast = castMap
	Func.Cast = castFunc
	Object.Cast = castObject
	// Null and Number are never cast targets: Null has no listed
	// conversions, and Number is an internal abstract parent used only
	// for kind_of matching.
}

// BuiltinTypes lists every concrete type exported to stdlib loading
// (plus the internal *any/*number/null).
func BuiltinTypes() []*DataType {
	return []*DataType{
		Any, Number, Null,
		Integer, Float, Boolean, String, ListT, SetT, MapT, Object, Func,
	}
}

// CastErr is returned by a failed cast; the evaluator's explicit cast
// paths (Cast nodes and a Call naming a type) report it as
// errors.CastError, other paths return it as is (runtime stays error-taxonomy-agnostic
// to avoid importing the errors package into the hot path).
type CastErr struct {
	Value  *Value
	Target *DataType
}

func (e *CastErr) Error() string {
	return displayString(e.Value) + " not parseable to " + e.Target.Name
}

func displayString(v *Value) string {
	s, err := castString(v)
	if err != nil {
		return "<" + v.Type.Name + ">"
	}
	return s.Payload.(string)
}

func castInteger(v *Value) (*Value, error) {
	switch v.Type {
	case Integer:
		return NewValue(Integer, v.Payload.(int64)), nil
	case Float:
		return NewValue(Integer, int64(v.Payload.(float64))), nil
	case Boolean:
		if v.Payload.(bool) {
			return NewValue(Integer, int64(1)), nil
		}
		return NewValue(Integer, int64(0)), nil
	case Null:
		return NewValue(Integer, int64(0)), nil
	}
	return nil, &CastErr{Value: v, Target: Integer}
}

func castFloat(v *Value) (*Value, error) {
	switch v.Type {
	case Float:
		return NewValue(Float, v.Payload.(float64)), nil
	case Integer:
		return NewValue(Float, float64(v.Payload.(int64))), nil
	case Null:
		return NewValue(Float, float64(0)), nil
	}
	return nil, &CastErr{Value: v, Target: Float}
}

func castString(v *Value) (*Value, error) {
	switch v.Type {
	case Integer:
		return NewValue(String, strconv.FormatInt(v.Payload.(int64), 10)), nil
	case Float:
		return NewValue(String, strconv.FormatFloat(v.Payload.(float64), 'g', -1, 64)), nil
	case String:
		return NewValue(String, v.Payload.(string)), nil
	case Boolean:
		if v.Payload.(bool) {
			return NewValue(String, "true"), nil
		}
		return NewValue(String, "false"), nil
	case Null:
		return NewValue(String, "null"), nil
	}
	return nil, &CastErr{Value: v, Target: String}
}

func castBoolean(v *Value) (*Value, error) {
	switch v.Type {
	case Integer:
		return NewValue(Boolean, v.Payload.(int64) > 0), nil
	case Boolean:
		return NewValue(Boolean, v.Payload.(bool)), nil
	case Null:
		return NewValue(Boolean, false), nil
	}
	return nil, &CastErr{Value: v, Target: Boolean}
}

func castList(v *Value) (*Value, error) {
	switch v.Type {
	case ListT:
		return NewValue(ListT, v.Payload.(*List).Copy()), nil
	case String:
		s := v.Payload.(string)
		items := make([]*Value, 0, len(s))
		for _, r := range s {
			items = append(items, NewValue(String, string(r)))
		}
		return NewValue(ListT, &List{Items: items}), nil
	case Null:
		return NewValue(ListT, &List{}), nil
	}
	return nil, &CastErr{Value: v, Target: ListT}
}

func castSet(v *Value) (*Value, error) {
	switch v.Type {
	case SetT:
		return NewValue(SetT, v.Payload.(*Set).Copy()), nil
	case ListT:
		return NewValue(SetT, NewSetFromList(v.Payload.(*List))), nil
	case Null:
		return NewValue(SetT, &Set{}), nil
	}
	return nil, &CastErr{Value: v, Target: SetT}
}

func castMap(v *Value) (*Value, error) {
	switch v.Type {
	case MapT:
		return NewValue(MapT, v.Payload.(*Map).Copy()), nil
	case Null:
		return NewValue(MapT, NewMap()), nil
	}
	return nil, &CastErr{Value: v, Target: MapT}
}

func castFunc(v *Value) (*Value, error) {
	switch v.Type {
	case Func:
		return NewValue(Func, v.Payload), nil
	case Null:
		return NewValue(Func, nil), nil
	}
	return nil, &CastErr{Value: v, Target: Func}
}

// castObject wraps any value.
func castObject(v *Value) (*Value, error) {
	return NewValue(Object, v.Payload), nil
}
