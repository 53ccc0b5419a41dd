// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ORDERED JSON OBJECT
// =============================================================================

// Object is a JSON object that remembers the order of its keys. Backend
// tables are rows of flat objects whose key order is the column order, which
// a Go map would lose.
//
// Values are kept raw and decoded on access, so a field of an unexpected type
// only affects the reader that asks for it.
type Object struct {
	Keys   []string
	Values map[string]json.RawMessage
}

// NewObject builds an Object from alternating key/value pairs. Values are
// JSON-encoded; encoding failures store null.
func NewObject(pairs ...any) Object {
	o := Object{Values: make(map[string]json.RawMessage, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		key := fmt.Sprint(pairs[i])
		raw, err := json.Marshal(pairs[i+1])
		if err != nil {
			raw = json.RawMessage("null")
		}
		o.Set(key, raw)
	}
	return o
}

// Set stores raw under key, appending key if it is new.
func (o *Object) Set(key string, raw json.RawMessage) {
	if o.Values == nil {
		o.Values = make(map[string]json.RawMessage)
	}
	if _, seen := o.Values[key]; !seen {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = raw
}

// Len returns the number of keys.
func (o Object) Len() int { return len(o.Keys) }

// Has reports whether key is present, even with a null value.
func (o Object) Has(key string) bool {
	_, ok := o.Values[key]
	return ok
}

// Raw returns the undecoded value for key.
func (o Object) Raw(key string) (json.RawMessage, bool) {
	raw, ok := o.Values[key]
	return raw, ok
}

// Value decodes key into a generic value. Numbers decode as json.Number.
// Missing keys and undecodable values return nil.
func (o Object) Value(key string) any {
	raw, ok := o.Values[key]
	if !ok {
		return nil
	}
	return decodeAny(raw)
}

// String returns key's value when it is a JSON string, otherwise "".
func (o Object) String(key string) string {
	s, _ := o.Value(key).(string)
	return s
}

// Object returns key's value when it is a JSON object.
func (o Object) Object(key string) (Object, bool) {
	raw, ok := o.Values[key]
	if !ok || !isKind(raw, '{') {
		return Object{}, false
	}
	var sub Object
	if err := json.Unmarshal(raw, &sub); err != nil {
		return Object{}, false
	}
	return sub, true
}

// Objects returns key's value when it is an array, keeping only the elements
// that are objects.
func (o Object) Objects(key string) []Object {
	raw, ok := o.Values[key]
	if !ok {
		return nil
	}
	return decodeObjects(raw)
}

// Array returns key's value when it is an array, decoding each element as
// with Value.
func (o Object) Array(key string) ([]any, bool) {
	raw, ok := o.Values[key]
	if !ok || !isKind(raw, '[') {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	out := make([]any, len(elems))
	for i, e := range elems {
		out[i] = decodeAny(e)
	}
	return out, true
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = Object{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("api: expected JSON object, got %v", tok)
	}

	out := Object{Values: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("api: unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		out.Set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

// MarshalJSON implements json.Marshaler, writing keys in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		raw := o.Values[k]
		if len(raw) == 0 {
			raw = json.RawMessage("null")
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// =============================================================================
// VALUE HELPERS
// =============================================================================

func decodeAny(raw json.RawMessage) any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func decodeObjects(raw json.RawMessage) []Object {
	if !isKind(raw, '[') {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	out := make([]Object, 0, len(elems))
	for _, e := range elems {
		if !isKind(e, '{') {
			continue
		}
		var o Object
		if err := json.Unmarshal(e, &o); err == nil {
			out = append(out, o)
		}
	}
	return out
}

func isKind(raw json.RawMessage, delim byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == delim
}

// Float converts a decoded JSON value to a float. Numeric strings count;
// anything else reports false.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// IsNumber reports whether v is a JSON number, as opposed to a numeric string.
func IsNumber(v any) bool {
	switch v.(type) {
	case json.Number, float64, int, int64:
		return true
	default:
		return false
	}
}

// Text renders a decoded JSON value the way it is shown in a table cell:
// strings verbatim, null as "", objects and arrays as compact JSON.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
