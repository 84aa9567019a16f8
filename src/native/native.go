// Package native reads loosely typed exchange payloads. Every accessor is
// total: a missing key or a value of the wrong shape yields the zero value.
package native

import (
	"encoding/json"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// Object is a decoded JSON object as delivered by the exchange.
type Object = map[string]interface{}

var codec = jsoniter.Config{UseNumber: true, EscapeHTML: false}.Froze()

// Decode parses raw JSON keeping numbers as json.Number so no precision is lost.
func Decode(raw []byte) (interface{}, error) {
	var v interface{}
	if err := codec.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeObject parses raw JSON that must be an object.
func DecodeObject(raw []byte) (Object, error) {
	var v Object
	if err := codec.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode renders v as compact JSON.
func Encode(v interface{}) ([]byte, error) {
	return codec.Marshal(v)
}

// ToString stringifies scalars; objects and lists give "".
func ToString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case decimal.Decimal:
		return t.String()
	case interface{ String() string }:
		return t.String()
	default:
		return ""
	}
}

// String returns the first non-empty value among keys.
func String(obj Object, keys ...string) string {
	for _, k := range keys {
		if s := ToString(obj[k]); s != "" {
			return s
		}
	}
	return ""
}

// Number returns the first value among keys that parses as a decimal, in its
// normalized string form.
func Number(obj Object, keys ...string) string {
	for _, k := range keys {
		s := strings.TrimSpace(ToString(obj[k]))
		if s == "" {
			continue
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return d.String()
		}
	}
	return ""
}

// Decimal is Number lifted into an optional decimal.
func Decimal(obj Object, keys ...string) decimal.NullDecimal {
	return ToDecimal(Number(obj, keys...))
}

// ToDecimal converts a decimal string; "" and malformed input are undefined.
func ToDecimal(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// FromDecimal is the inverse of ToDecimal.
func FromDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// Int64 returns the first integral value among keys, 0 when none.
func Int64(obj Object, keys ...string) int64 {
	for _, k := range keys {
		s := ToString(obj[k])
		if s == "" {
			continue
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return d.IntPart()
		}
	}
	return 0
}

// Bool returns the first boolean-like value among keys and whether one was found.
func Bool(obj Object, keys ...string) (bool, bool) {
	for _, k := range keys {
		switch t := obj[k].(type) {
		case bool:
			return t, true
		case string:
			if b, err := strconv.ParseBool(t); err == nil {
				return b, true
			}
		}
	}
	return false, false
}

// Obj returns a nested object.
func Obj(obj Object, key string) Object {
	if o, ok := obj[key].(map[string]interface{}); ok {
		return o
	}
	return nil
}

// List returns a nested array.
func List(obj Object, key string) []interface{} {
	if l, ok := obj[key].([]interface{}); ok {
		return l
	}
	return nil
}

// Objects keeps the object entries of a decoded array.
func Objects(v interface{}) []Object {
	list, ok := v.([]interface{})
	if !ok {
		if o, ok := v.(map[string]interface{}); ok {
			return []Object{o}
		}
		return nil
	}
	out := make([]Object, 0, len(list))
	for _, item := range list {
		if o, ok := item.(map[string]interface{}); ok {
			out = append(out, o)
		}
	}
	return out
}

// Extend merges objects left to right into a new object.
func Extend(objs ...Object) Object {
	out := Object{}
	for _, o := range objs {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// Omit copies obj without keys.
func Omit(obj Object, keys ...string) Object {
	out := make(Object, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
