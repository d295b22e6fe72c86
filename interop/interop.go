// Package interop converts between jsonvalue trees and the generic Go JSON
// representation (nil, bool, float64, string, []any, map[string]any) used by
// encoding/json and json-iterator.
//
// Go strings cannot carry lone surrogates, so conversion to the generic form
// can fail. Conversion from it fails for non-finite numbers, invalid UTF-8
// text and unsupported Go types.
package interop

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/lattice-substrate/json-wtf/jsonvalue"
)

// ErrUnsupportedType is returned by FromAny for Go values that have no JSON
// counterpart.
var ErrUnsupportedType = errors.New("interop: unsupported Go type")

// api is the json-iterator configuration used by Decode and Encode. Numbers
// decode as json.Number so no precision is lost before FromAny sees them.
var api = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

// ToAny converts v to its generic Go form. It fails with an error wrapping
// *jsonvalue.InvalidUnicodeError when a string or key holds a lone surrogate.
func ToAny(v jsonvalue.Value) (any, error) {
	switch v.Kind() {
	case jsonvalue.KindNull:
		return nil, nil
	case jsonvalue.KindBool:
		b, _ := v.AsBool()
		return b, nil
	case jsonvalue.KindNumber:
		n, _ := v.AsNumber()
		return n.Float64(), nil
	case jsonvalue.KindString:
		s, _ := v.AsString()
		text, err := s.Text()
		if err != nil {
			return nil, fmt.Errorf("interop: string: %w", err)
		}
		return text, nil
	case jsonvalue.KindArray:
		a, _ := v.AsArray()
		out := make([]any, 0, a.Len())
		for i, e := range a.All() {
			x, err := ToAny(e)
			if err != nil {
				return nil, fmt.Errorf("interop: index %d: %w", i, err)
			}
			out = append(out, x)
		}
		return out, nil
	case jsonvalue.KindObject:
		o, _ := v.AsObject()
		out := make(map[string]any, o.Len())
		for k, e := range o.All() {
			key, err := k.Text()
			if err != nil {
				return nil, fmt.Errorf("interop: key: %w", err)
			}
			x, err := ToAny(e)
			if err != nil {
				return nil, fmt.Errorf("interop: key %q: %w", key, err)
			}
			out[key] = x
		}
		return out, nil
	}
	return nil, fmt.Errorf("interop: unknown value kind %s", v.Kind())
}

// FromAny converts a generic Go value to a jsonvalue tree. Besides the
// generic forms it accepts json.Number, jsonvalue.Value, the sized integer
// and float types, []jsonvalue.Value and map[string]string.
func FromAny(x any) (jsonvalue.Value, error) {
	switch t := x.(type) {
	case nil:
		return jsonvalue.Null(), nil
	case jsonvalue.Value:
		return t, nil
	case bool:
		return jsonvalue.BoolValue(t), nil
	case string:
		v, err := jsonvalue.Text(t)
		if err != nil {
			return jsonvalue.Value{}, fmt.Errorf("interop: %w", err)
		}
		return v, nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return jsonvalue.Value{}, fmt.Errorf("interop: number %q: %w", t.String(), err)
		}
		return floatValue(f)
	case float64:
		return floatValue(t)
	case float32:
		return floatValue(float64(t))
	case int:
		return intValue(int64(t)), nil
	case int8:
		return intValue(int64(t)), nil
	case int16:
		return intValue(int64(t)), nil
	case int32:
		return intValue(int64(t)), nil
	case int64:
		return intValue(t), nil
	case uint:
		return floatValue(float64(t))
	case uint8:
		return intValue(int64(t)), nil
	case uint16:
		return intValue(int64(t)), nil
	case uint32:
		return intValue(int64(t)), nil
	case uint64:
		return floatValue(float64(t))
	case []any:
		elems := make([]jsonvalue.Value, 0, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return jsonvalue.Value{}, fmt.Errorf("interop: index %d: %w", i, err)
			}
			elems = append(elems, v)
		}
		return jsonvalue.ArrayValue(jsonvalue.WrapArray(elems)), nil
	case []jsonvalue.Value:
		return jsonvalue.List(t...), nil
	case map[string]any:
		members := make([]jsonvalue.Member, 0, len(t))
		for k, e := range t {
			key, err := jsonvalue.FromText(k)
			if err != nil {
				return jsonvalue.Value{}, fmt.Errorf("interop: key: %w", err)
			}
			v, err := FromAny(e)
			if err != nil {
				return jsonvalue.Value{}, fmt.Errorf("interop: key %q: %w", k, err)
			}
			members = append(members, jsonvalue.Member{Key: key, Value: v})
		}
		return jsonvalue.ObjectValue(jsonvalue.WrapObject(members)), nil
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return FromAny(m)
	}
	return jsonvalue.Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
}

func floatValue(f float64) (jsonvalue.Value, error) {
	v, err := jsonvalue.Float(f)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("interop: %w", err)
	}
	return v, nil
}

func intValue(i int64) jsonvalue.Value {
	return jsonvalue.NumberValue(jsonvalue.IntNumber(i))
}

// Decode parses data with json-iterator and converts the result. It is the
// lenient path for input produced by other Go JSON code; use jsontoken for
// strict parsing and lone-surrogate preservation.
func Decode(data []byte) (jsonvalue.Value, error) {
	var x any
	if err := api.Unmarshal(data, &x); err != nil {
		return jsonvalue.Value{}, fmt.Errorf("interop: decode: %w", err)
	}
	return FromAny(x)
}

// Encode converts v with ToAny and marshals it with json-iterator, map keys
// sorted. The number formatting is json-iterator's; use jsoncanon for
// canonical text.
func Encode(v jsonvalue.Value) ([]byte, error) {
	x, err := ToAny(v)
	if err != nil {
		return nil, err
	}
	out, err := api.Marshal(x)
	if err != nil {
		return nil, fmt.Errorf("interop: encode: %w", err)
	}
	return out, nil
}
