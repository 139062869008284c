// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Kind tags the shape held by a Value.
type Kind int

const (
	// KindScalar is a leaf: string, number, bool or null.
	KindScalar Kind = iota
	// KindRecord is a nested record with ordered, named fields.
	KindRecord
	// KindList is an ordered list of values.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is free-form equipment detail data. The zero Value is a null scalar.
type Value struct {
	Kind   Kind
	Scalar any
	Fields []Field
	Items  []Value
}

// Field is one named entry of a record Value.
type Field struct {
	Name  string
	Value Value
}

// Scalar returns a leaf Value.
func Scalar(v any) Value {
	return Value{Kind: KindScalar, Scalar: v}
}

// Record returns a record Value with fields in the given order.
func Record(fields ...Field) Value {
	return Value{Kind: KindRecord, Fields: fields}
}

// List returns a list Value.
func List(items ...Value) Value {
	return Value{Kind: KindList, Items: items}
}

// IsNull reports whether v is an absent or null leaf.
func (v Value) IsNull() bool {
	return v.Kind == KindScalar && v.Scalar == nil
}

// Get returns the first field of a record named name.
func (v Value) Get(name string) (Value, bool) {
	if v.Kind != KindRecord {
		return Value{}, false
	}
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Interface converts v to plain Go values: map[string]any for records, []any
// for lists and the raw scalar otherwise. Record field order is lost.
func (v Value) Interface() any {
	switch v.Kind {
	case KindRecord:
		m := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			m[f.Name] = f.Value.Interface()
		}
		return m
	case KindList:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.Interface()
		}
		return items
	default:
		return v.Scalar
	}
}

// FromInterface builds a Value from decoded YAML or JSON data. Ordered maps
// keep their key order; plain maps are accepted but have no defined order.
func FromInterface(raw any) Value {
	switch t := raw.(type) {
	case yaml.MapSlice:
		fields := make([]Field, 0, len(t))
		for _, item := range t {
			fields = append(fields, Field{Name: fmt.Sprint(item.Key), Value: FromInterface(item.Value)})
		}
		return Record(fields...)
	case map[string]any:
		fields := make([]Field, 0, len(t))
		for k, val := range t {
			fields = append(fields, Field{Name: k, Value: FromInterface(val)})
		}
		return Record(fields...)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromInterface(item)
		}
		return List(items...)
	default:
		return Scalar(t)
	}
}

// UnmarshalYAML decodes v keeping record field order.
func (v *Value) UnmarshalYAML(data []byte) error {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return err
	}
	*v = FromInterface(raw)
	return nil
}

// MarshalYAML encodes records as ordered mappings.
func (v Value) MarshalYAML() (any, error) {
	return v.ordered(), nil
}

func (v Value) ordered() any {
	switch v.Kind {
	case KindRecord:
		ms := make(yaml.MapSlice, 0, len(v.Fields))
		for _, f := range v.Fields {
			ms = append(ms, yaml.MapItem{Key: f.Name, Value: f.Value.ordered()})
		}
		return ms
	case KindList:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.ordered()
		}
		return items
	default:
		return v.Scalar
	}
}

// MarshalJSON encodes records as JSON objects in field order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.Kind {
	case KindRecord:
		buf.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := f.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		b, err := json.Marshal(v.Scalar)
		if err != nil {
			return fmt.Errorf("encode scalar: %w", err)
		}
		buf.Write(b)
	}
	return nil
}
