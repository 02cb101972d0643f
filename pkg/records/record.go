package records

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Record is one logical input entity's field-value data. Fields keep the
// order they appeared in the source, which matters because flattening and
// identifier discovery are specified to walk fields in input order. The
// field set is not fixed across records; heterogeneous schemas are allowed.
//
// Values are restricted to a small closed set of variants: string, int64,
// float64, json.Number, bool, nil, nested *Record, and sequence []any.
// Loaders construct Records once; they are treated as immutable afterwards.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty Record ready for loader population.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores a field value. Setting an existing key overwrites the value
// while keeping the key's original position.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns a field value and whether the field is present.
func (r *Record) Get(key string) (any, bool) {
	if r == nil || r.values == nil {
		return nil, false
	}
	value, ok := r.values[key]
	return value, ok
}

// Has reports whether the record contains the exact field name.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the field names in insertion order. The slice is a copy.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// StringField stringifies a field value, returning empty when absent. This
// is the lookup used for auxiliary payload fields like totals and customer
// names, where missing data degrades to empty rather than failing.
func (r *Record) StringField(key string) string {
	value, ok := r.Get(key)
	if !ok {
		return ""
	}
	return FormatValue(value)
}

// MarshalJSON encodes the record as a JSON object preserving field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FormatValue stringifies a record value for identifier keys, template
// substitution, and payload assembly. Nil renders empty so missing data
// never surfaces as a literal null. Nested records and sequences render as
// compact JSON.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case *Record, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
