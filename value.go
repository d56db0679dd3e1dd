package jsondec

import "github.com/iancoleman/orderedmap"

// ValueType identifies the kind of a decoded JSON value.
//
// Integer and float are separate kinds on purpose: the distinction is fixed
// by the literal syntax during decoding and is not re-derived from the value
// later.
type ValueType uint8

// Kinds of decoded JSON values.
const (
	TypeNull ValueType = iota
	TypeBoolean
	TypeInteger
	TypeFloat
	TypeString
	TypeArray
	TypeObject
)

// String implements fmt.Stringer.
func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	}

	return "unknown"
}

// Value is a decoded JSON value.
//
// Type selects the payload field that is in use, the remaining fields keep
// their zero values. Object fields preserve document order, see Fields.
type Value struct {
	// Type is the kind of the value.
	Type ValueType

	// Boolean is the payload of a TypeBoolean value.
	Boolean bool

	// Int is the payload of a TypeInteger value.
	Int int64

	// Float is the payload of a TypeFloat value.
	Float float64

	// Str is the payload of a TypeString value.
	Str string

	// Items is the payload of a TypeArray value.
	Items []Value

	// Fields is the payload of a TypeObject value, holding Value entries in
	// document order. A duplicated key keeps the position of its first
	// occurrence and the value of its last.
	Fields *orderedmap.OrderedMap
}

// IsNumber reports whether the value is an integer or a float.
func (v Value) IsNumber() bool {
	return v.Type == TypeInteger || v.Type == TypeFloat
}

// Number returns the numeric payload regardless of integer or float kind.
// It returns 0 for non-numeric values.
func (v Value) Number() float64 {
	switch v.Type {
	case TypeInteger:
		return float64(v.Int)
	case TypeFloat:
		return v.Float
	}

	return 0
}

// Keys returns object field names in document order, nil for non-objects.
func (v Value) Keys() []string {
	if v.Type != TypeObject || v.Fields == nil {
		return nil
	}

	return v.Fields.Keys()
}

// Get returns an object field by name.
func (v Value) Get(key string) (Value, bool) {
	if v.Type != TypeObject || v.Fields == nil {
		return Value{}, false
	}

	raw, ok := v.Fields.Get(key)
	if !ok {
		return Value{}, false
	}

	val, ok := raw.(Value)

	return val, ok
}

// Interface lowers the value tree to plain Go values: nil, bool, int64,
// float64, string, []interface{} and map[string]interface{}.
//
// The map form does not preserve field order, it exists for comparison with
// reference decoders. Use Fields when order matters.
func (v Value) Interface() interface{} {
	switch v.Type {
	case TypeBoolean:
		return v.Boolean
	case TypeInteger:
		return v.Int
	case TypeFloat:
		return v.Float
	case TypeString:
		return v.Str
	case TypeArray:
		items := make([]interface{}, 0, len(v.Items))

		for _, item := range v.Items {
			items = append(items, item.Interface())
		}

		return items
	case TypeObject:
		keys := v.Keys()
		fields := make(map[string]interface{}, len(keys))

		for _, key := range keys {
			field, _ := v.Get(key)
			fields[key] = field.Interface()
		}

		return fields
	}

	return nil
}
