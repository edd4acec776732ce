package contract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/abeldarick/ASDM-PRONO/internal/domain/model"
)

// Kind names the primitive kind a declared field must carry.
type Kind string

// Field kinds supported by the contract.
const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindMap     Kind = "map"
)

// Field declares a single named field of a payload shape.
type Field struct {
	Name     string
	Kind     Kind
	Required bool

	// Enum restricts a string field to a closed set of literals.
	Enum []string
}

// Shape declares the set of fields an input or output payload carries.
type Shape struct {
	Name   string
	Fields []Field
}

// NewShape builds a named shape from its field list.
func NewShape(name string, fields ...Field) *Shape {
	return &Shape{Name: name, Fields: fields}
}

// Required declares a mandatory field of the given kind.
func Required(name string, kind Kind) Field {
	return Field{Name: name, Kind: kind, Required: true}
}

// Optional declares a field that may be absent.
func Optional(name string, kind Kind) Field {
	return Field{Name: name, Kind: kind}
}

// Literals declares a mandatory string field restricted to the given values.
func Literals(name string, values ...string) Field {
	return Field{Name: name, Kind: KindString, Required: true, Enum: values}
}

// Validate checks a decoded JSON payload against the shape. Required fields
// must be present, present fields must match their declared kind, and enum
// fields must carry one of the declared literals. The first offending field
// is reported as a FieldError.
func (s *Shape) Validate(payload model.Map) error {
	for _, f := range s.Fields {
		v, ok := payload[f.Name]
		if !ok || v.IsZero() {
			if f.Required {
				return &FieldError{Field: f.Name, Reason: "required field is missing"}
			}
			continue
		}
		if err := f.check(v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStrings checks string-transported values (query parameters and
// path parameters) against the shape, coercing numbers and booleans from
// their textual form.
func (s *Shape) ValidateStrings(values map[string]string) error {
	for _, f := range s.Fields {
		v, ok := values[f.Name]
		if !ok || strings.TrimSpace(v) == "" {
			if f.Required {
				return &FieldError{Field: f.Name, Reason: "required field is missing"}
			}
			continue
		}
		switch f.Kind {
		case KindNumber:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return &FieldError{Field: f.Name, Reason: "must be a number"}
			}
		case KindBoolean:
			if _, err := strconv.ParseBool(v); err != nil {
				return &FieldError{Field: f.Name, Reason: "must be a boolean"}
			}
		case KindString, KindMap:
			// Strings pass as-is; maps cannot arrive via query or path.
		}
		if len(f.Enum) > 0 && !contains(f.Enum, v) {
			return &FieldError{Field: f.Name, Reason: enumReason(f.Enum)}
		}
	}
	return nil
}

func (f Field) check(v model.Value) error {
	switch f.Kind {
	case KindString:
		s, ok := v.String()
		if !ok {
			return &FieldError{Field: f.Name, Reason: "must be a string"}
		}
		if f.Required && strings.TrimSpace(s) == "" {
			return &FieldError{Field: f.Name, Reason: "must not be empty"}
		}
		if len(f.Enum) > 0 && !contains(f.Enum, s) {
			return &FieldError{Field: f.Name, Reason: enumReason(f.Enum)}
		}
	case KindNumber:
		if _, ok := v.Float64(); !ok {
			return &FieldError{Field: f.Name, Reason: "must be a number"}
		}
	case KindBoolean:
		if _, ok := v.Bool(); !ok {
			return &FieldError{Field: f.Name, Reason: "must be a boolean"}
		}
	case KindMap:
		var m model.Map
		b, _ := v.MarshalJSON()
		if err := unmarshalMap(b, &m); err != nil {
			return &FieldError{Field: f.Name, Reason: "must be an object"}
		}
	}
	return nil
}

func unmarshalMap(b []byte, m *model.Map) error {
	return json.Unmarshal(b, m)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func enumReason(set []string) string {
	return fmt.Sprintf("must be one of %s", strings.Join(set, ", "))
}
