// Package jsonvalue models decoded JSON as a closed set of variants so that
// traversals switch over every case instead of probing interface{} values.
//
// A nil Value means the member is absent. Absent object members are dropped
// on serialization and absent array elements are written as null.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is one of *Object, Array, String, Number, Bool or Null.
type Value interface {
	json.Marshaler
	Kind() Kind
	isValue()
}

type (
	// String is a JSON string.
	String string
	// Number keeps the literal text of a JSON number so 14 stays 14.
	Number json.Number
	// Bool is a JSON boolean.
	Bool bool
	// Null is the JSON null literal.
	Null struct{}
	// Array is a JSON array. Nil elements serialize as null.
	Array []Value
)

func (String) Kind() Kind  { return KindString }
func (Number) Kind() Kind  { return KindNumber }
func (Bool) Kind() Kind    { return KindBool }
func (Null) Kind() Kind    { return KindNull }
func (Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind { return KindObject }

func (String) isValue()  {}
func (Number) isValue()  {}
func (Bool) isValue()    {}
func (Null) isValue()    {}
func (Array) isValue()   {}
func (*Object) isValue() {}

func (s String) MarshalJSON() ([]byte, error) {
	return marshalString(string(s))
}

// marshalString quotes s without HTML escaping, as JSON.stringify does.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}
	return []byte(n), nil
}

// Float64 returns the numeric value of n.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

func (b Bool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (a Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if item == nil {
			buf.WriteString("null")
			continue
		}
		data, err := item.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Object is a JSON object that remembers member insertion order.
type Object struct {
	fields *orderedmap.OrderedMap[string, Value]
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{fields: orderedmap.New[string, Value]()}
}

// Get returns the member stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil || o.fields == nil {
		return nil, false
	}
	return o.fields.Get(key)
}

// Set stores v under key. Setting an absent (nil) value is a no-op, which
// mirrors how undefined members disappear from serialized JSON.
func (o *Object) Set(key string, v Value) {
	if v == nil {
		return
	}
	if o.fields == nil {
		o.fields = orderedmap.New[string, Value]()
	}
	o.fields.Set(key, v)
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if o == nil || o.fields == nil {
		return false
	}
	_, ok := o.fields.Delete(key)
	return ok
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil || o.fields == nil {
		return 0
	}
	return o.fields.Len()
}

// Keys returns member names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.Range(func(key string, _ Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Range calls fn for each member in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	if o == nil || o.fields == nil {
		return
	}
	for pair := o.fields.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	o.Range(func(key string, v Value) bool {
		var keyData, valData []byte
		if keyData, err = marshalString(key); err != nil {
			return false
		}
		if valData, err = v.MarshalJSON(); err != nil {
			err = fmt.Errorf("member %q: %w", key, err)
			return false
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(keyData)
		buf.WriteByte(':')
		buf.Write(valData)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AsObject returns v as an object, or nil when v is not one.
func AsObject(v Value) *Object {
	obj, _ := v.(*Object)
	return obj
}

// Lookup walks object members along path. It returns nil as soon as a
// segment is missing or the current value is not an object.
func Lookup(v Value, path ...string) Value {
	current := v
	for _, segment := range path {
		obj := AsObject(current)
		if obj == nil {
			return nil
		}
		next, ok := obj.Get(segment)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// Clone returns a deep copy of v. Scalars are immutable and returned as is.
func Clone(v Value) Value {
	switch node := v.(type) {
	case *Object:
		if node == nil {
			return nil
		}
		out := NewObject()
		node.Range(func(key string, child Value) bool {
			out.Set(key, Clone(child))
			return true
		})
		return out
	case Array:
		if node == nil {
			return Array(nil)
		}
		out := make(Array, len(node))
		for i, item := range node {
			out[i] = Clone(item)
		}
		return out
	default:
		return v
	}
}

// Equal reports whether a and b are deeply equal. Numbers compare by value
// and object member order is ignored.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch left := a.(type) {
	case *Object:
		right := b.(*Object)
		if left.Len() != right.Len() {
			return false
		}
		equal := true
		left.Range(func(key string, v Value) bool {
			other, ok := right.Get(key)
			equal = ok && Equal(v, other)
			return equal
		})
		return equal
	case Array:
		right := b.(Array)
		if len(left) != len(right) {
			return false
		}
		for i := range left {
			if !Equal(left[i], right[i]) {
				return false
			}
		}
		return true
	case Number:
		right := b.(Number)
		if left == right {
			return true
		}
		lf, lerr := left.Float64()
		rf, rerr := right.Float64()
		return lerr == nil && rerr == nil && lf == rf
	default:
		return a == b
	}
}

// FromAny converts plain Go values (as produced by encoding/json or written
// in tests) into a Value. Map keys are sorted to keep the result stable.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case float64:
		return Number(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case float32:
		return Number(strconv.FormatFloat(float64(t), 'f', -1, 32)), nil
	case int:
		return Number(strconv.Itoa(t)), nil
	case int64:
		return Number(strconv.FormatInt(t, 10)), nil
	case int32:
		return Number(strconv.FormatInt(int64(t), 10)), nil
	case []any:
		out := make(Array, len(t))
		for i, item := range t {
			converted, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = converted
		}
		return out, nil
	case []string:
		out := make(Array, len(t))
		for i, item := range t {
			out[i] = String(item)
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewObject()
		for _, k := range keys {
			converted, err := FromAny(t[k])
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", k, err)
			}
			out.Set(k, converted)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// MustFromAny is FromAny for literals known to be convertible.
func MustFromAny(v any) Value {
	out, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return out
}

// ToAny converts v back into plain Go values. Numbers become json.Number.
func ToAny(v Value) any {
	switch node := v.(type) {
	case nil:
		return nil
	case *Object:
		out := make(map[string]any, node.Len())
		node.Range(func(key string, child Value) bool {
			out[key] = ToAny(child)
			return true
		})
		return out
	case Array:
		out := make([]any, len(node))
		for i, item := range node {
			out[i] = ToAny(item)
		}
		return out
	case String:
		return string(node)
	case Number:
		return json.Number(node)
	case Bool:
		return bool(node)
	case Null:
		return nil
	default:
		return nil
	}
}
