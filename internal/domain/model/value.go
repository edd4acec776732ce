package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is a self-describing JSON value used for free-form fields such as
// match statistics and prediction features. It keeps the raw encoding so
// round-trips are lossless, while offering typed accessors for the kinds
// the service actually inspects.
type Value struct {
	raw json.RawMessage
}

// Number builds a numeric Value.
func Number(f float64) Value {
	return Value{raw: json.RawMessage(strconv.FormatFloat(f, 'g', -1, 64))}
}

// Text builds a string Value.
func Text(s string) Value {
	b, _ := json.Marshal(s)
	return Value{raw: b}
}

// Boolean builds a boolean Value.
func Boolean(b bool) Value {
	if b {
		return Value{raw: json.RawMessage("true")}
	}
	return Value{raw: json.RawMessage("false")}
}

// MarshalJSON emits the value exactly as it was received or constructed.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// UnmarshalJSON captures the raw encoding without interpreting it.
func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(v.raw[:0], b...)
	return nil
}

// Float64 reports the value as a number when it is one.
func (v Value) Float64() (float64, bool) {
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(v.raw)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// String reports the value as a string when it is one.
func (v Value) String() (string, bool) {
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Bool reports the value as a boolean when it is one.
func (v Value) Bool() (bool, bool) {
	switch string(bytes.TrimSpace(v.raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// IsZero reports whether the value was never set.
func (v Value) IsZero() bool {
	return len(v.raw) == 0
}

// Map is a string-keyed collection of free-form values.
type Map map[string]Value
