package schema

import (
	"errors"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field names eligible for identifier-based lookup. The fetch registry is
// keyed by these but accepts any name, so the set is configuration, not
// engine logic.
const (
	FieldDOI    = "doi"
	FieldEprint = "eprint"
	FieldISBN   = "isbn"
)

// SupportedFields returns the default set of identifier fields, in lookup order.
func SupportedFields() []string { return []string{FieldDOI, FieldEprint, FieldISBN} }

// internalNames are bookkeeping fields managed by the store, never by a merge.
var internalNames = map[string]bool{
	"owner":     true,
	"timestamp": true,
	"groups":    true,
}

// IsInternalField reports whether a field name is system-managed. Internal
// fields survive a merge even when the merged record omits them.
func IsInternalField(name string) bool {
	return strings.HasPrefix(name, "__") || internalNames[name]
}

// Record is a typed key-value bibliographic entry. Field names are unique and
// compared exactly; the type is compared case-insensitively.
type Record struct {
	ID     string
	Type   string
	fields map[string]string
}

// NewRecord returns an empty record of the given type.
func NewRecord(typ string) *Record {
	return &Record{Type: typ, fields: map[string]string{}}
}

// Field returns the value for name and whether it is set. Empty values are
// treated as unset.
func (r *Record) Field(name string) (string, bool) {
	v, ok := r.fields[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// HasField reports whether name carries a value.
func (r *Record) HasField(name string) bool {
	_, ok := r.Field(name)
	return ok
}

// SetField sets name to value. Setting an empty value clears the field.
func (r *Record) SetField(name, value string) {
	if value == "" {
		r.ClearField(name)
		return
	}
	if r.fields == nil {
		r.fields = map[string]string{}
	}
	r.fields[name] = value
}

// ClearField removes name from the record.
func (r *Record) ClearField(name string) {
	delete(r.fields, name)
}

// FieldNames returns the names of all set fields in lexicographic order.
func (r *Record) FieldNames() []string {
	out := make([]string, 0, len(r.fields))
	for k, v := range r.fields {
		if v != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := &Record{ID: r.ID, Type: r.Type, fields: make(map[string]string, len(r.fields))}
	for k, v := range r.fields {
		c.fields[k] = v
	}
	return c
}

// SameType compares two entry types case-insensitively.
func SameType(a, b string) bool { return strings.EqualFold(a, b) }

// EqualFields reports whether both records carry identical field content.
func (r *Record) EqualFields(o *Record) bool {
	names := r.FieldNames()
	other := o.FieldNames()
	if len(names) != len(other) {
		return false
	}
	for _, n := range names {
		a, _ := r.Field(n)
		b, ok := o.Field(n)
		if !ok || a != b {
			return false
		}
	}
	return true
}

// Validate applies the minimal rules a stored record must satisfy.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(r.Type) == "" {
		return errors.New("type is required")
	}
	return nil
}

// recordYAML is the on-disk shape: {id, type, fields: {...}}.
type recordYAML struct {
	ID     string            `yaml:"id"`
	Type   string            `yaml:"type"`
	Fields map[string]string `yaml:"fields,omitempty"`
}

// MarshalYAML renders the record as a mapping with a nested fields map.
func (r Record) MarshalYAML() (any, error) {
	out := recordYAML{ID: r.ID, Type: r.Type}
	if len(r.fields) > 0 {
		out.Fields = make(map[string]string, len(r.fields))
		for k, v := range r.fields {
			if v != "" {
				out.Fields[k] = v
			}
		}
	}
	return out, nil
}

func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return nil
	}
	var raw recordYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	r.ID = raw.ID
	r.Type = raw.Type
	r.fields = map[string]string{}
	for k, v := range raw.Fields {
		if strings.TrimSpace(v) != "" {
			r.fields[k] = v
		}
	}
	return nil
}
