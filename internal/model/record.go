// Package model defines the core domain models used throughout the application.
package model

import (
	"strconv"
	"strings"
)

// ValueKind identifies which variant a Value holds.
type ValueKind int

// Value kinds.
const (
	KindEmpty ValueKind = iota
	KindText
	KindNumber
	KindBool
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "empty"
	}
}

// Value is a single cell of a loaded table.
type Value struct {
	text   string
	number float64
	kind   ValueKind
	flag   bool
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Empty returns the empty value. The zero Value is also empty.
func Empty() Value { return Value{} }

// Kind reports the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// String coerces the value to text. Numbers use the shortest
// representation that round-trips, booleans become "true"/"false"
// and empty values become "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// Field is a named value inside a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is one row of an input table: an ordered mapping from field
// name to value. Records are treated as immutable once loaded.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord builds a record from fields in order. A repeated name keeps
// its first position and takes the last value.
func NewRecord(fields ...Field) Record {
	r := Record{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if i, ok := r.index[f.Name]; ok {
			r.fields[i].Value = f.Value
			continue
		}
		r.index[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// Get returns the value stored under name and whether it exists.
func (r Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Has reports whether the record carries the named field.
func (r Record) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Text returns the named field coerced to text; missing fields yield "".
func (r Record) Text(name string) string {
	v, _ := r.Get(name)
	return v.String()
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// FieldSelector names the customer and reference fields of a record set.
type FieldSelector struct {
	CustomerField  string
	ReferenceField string
}

// Validate reports whether both field names are present.
func (s FieldSelector) Validate() bool {
	return strings.TrimSpace(s.CustomerField) != "" && strings.TrimSpace(s.ReferenceField) != ""
}
