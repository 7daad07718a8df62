package hook

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Values is an insertion-ordered mapping from keys to scalars or scalar
// slices. It backs both query strings and url-encoded form bodies.
//
// Scalars are strings, bools, integers and floats. Slices of those produce
// one key=value pair per element.
type Values struct {
	keys []string
	vals map[string]any
}

// NewValues creates an empty Values.
func NewValues() *Values {
	return &Values{vals: make(map[string]any)}
}

// ValuesOf builds Values from alternating key-value pairs. Pairs whose key
// is not a string are ignored.
//
//	hook.ValuesOf("name", "testing", "page", 2, "tags", []string{"a", "b"})
func ValuesOf(kvs ...any) *Values {
	v := NewValues()
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			v.Set(key, kvs[i+1])
		}
	}
	return v
}

// ValuesFromMap builds Values from a map. Keys are taken in sorted order
// because Go maps carry no insertion order.
func ValuesFromMap[V any](m map[string]V) *Values {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	v := NewValues()
	for _, k := range keys {
		v.Set(k, m[k])
	}
	return v
}

// Set assigns value to key. A new key is appended to the order; an existing
// key keeps its position.
func (v *Values) Set(key string, value any) *Values {
	if v.vals == nil {
		v.vals = make(map[string]any)
	}
	if _, exists := v.vals[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.vals[key] = value
	return v
}

// Get returns the raw value stored for key.
func (v *Values) Get(key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	val, ok := v.vals[key]
	return val, ok
}

// Keys returns the keys in insertion order.
func (v *Values) Keys() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Len returns the number of keys.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// Pairs flattens the values into ordered key/value string pairs. Slices
// expand to one pair per element, in order. Falsy scalars (empty string,
// zero, NaN, false, nil) are dropped; slice elements are kept even when
// falsy, except nil.
func (v *Values) Pairs() [][2]string {
	if v == nil {
		return nil
	}
	pairs := make([][2]string, 0, len(v.keys))
	for _, key := range v.keys {
		val := v.vals[key]
		if elems, ok := sliceElems(val); ok {
			for _, el := range elems {
				if el == nil {
					continue
				}
				pairs = append(pairs, [2]string{key, stringify(el)})
			}
			continue
		}
		if truthy(val) {
			pairs = append(pairs, [2]string{key, stringify(val)})
		}
	}
	return pairs
}

// Encode returns the url-encoded form ("a=1&b=x+y") in insertion order.
// It returns "" when no pair survives.
func (v *Values) Encode() string {
	var buf strings.Builder
	for _, p := range v.Pairs() {
		if buf.Len() > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(formEscape(p[0]))
		buf.WriteByte('=')
		buf.WriteString(formEscape(p[1]))
	}
	return buf.String()
}

// url.QueryEscape keeps '~' and escapes '*'; the form-urlencoded set does
// the opposite.
var formFixup = strings.NewReplacer("~", "%7E", "%2A", "*")

func formEscape(s string) string {
	return formFixup.Replace(url.QueryEscape(s))
}

// QueryString returns "?" followed by the encoded values, or "" when the
// encoding is empty.
func (v *Values) QueryString() string {
	enc := v.Encode()
	if enc == "" {
		return ""
	}
	return "?" + enc
}

// sliceElems returns the elements of a slice or array value. []byte is
// treated as a scalar string.
func sliceElems(val any) ([]any, bool) {
	if val == nil {
		return nil, false
	}
	if _, isBytes := val.([]byte); isBytes {
		return nil, false
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func truthy(val any) bool {
	switch x := val.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case []byte:
		return len(x) > 0
	case bool:
		return x
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.String:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

func stringify(val any) string {
	switch x := val.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	}
	return fmt.Sprint(val)
}
