// Package merge computes the difference between two bibliographic records as
// an ordered, reversible composite edit.
package merge

import (
	"sort"

	"bibmerge/src/internal/schema"
)

// FieldEdit is a single reversible change to one field. New == nil clears the
// field; Old == nil means the field did not exist before.
type FieldEdit struct {
	Field string
	Old   *string
	New   *string
}

// SetField builds an edit that writes value to field. old is nil for a
// brand-new field.
func SetField(field string, old *string, value string) FieldEdit {
	v := value
	return FieldEdit{Field: field, Old: old, New: &v}
}

// ClearField builds an edit that removes field, remembering its prior value.
func ClearField(field, old string) FieldEdit {
	o := old
	return FieldEdit{Field: field, Old: &o}
}

// TypeChange records a change of the record's entry type.
type TypeChange struct {
	Old string
	New string
}

// CompositeEdit is the ordered bundle of changes produced by one merge
// decision. Applying the field edits in order turns the original record into
// the approved merged record; reverting them in reverse order restores the
// original exactly.
type CompositeEdit struct {
	Label  string
	Type   *TypeChange
	Fields []FieldEdit
}

// Empty reports whether the edit changes nothing.
func (e CompositeEdit) Empty() bool { return e.Type == nil && len(e.Fields) == 0 }

// Apply performs every edit against rec, type change first.
func (e CompositeEdit) Apply(rec *schema.Record) {
	if e.Type != nil {
		rec.Type = e.Type.New
	}
	for _, f := range e.Fields {
		if f.New == nil {
			rec.ClearField(f.Field)
		} else {
			rec.SetField(f.Field, *f.New)
		}
	}
}

// Revert undoes every edit against rec in reverse order.
func (e CompositeEdit) Revert(rec *schema.Record) {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		f := e.Fields[i]
		if f.Old == nil {
			rec.ClearField(f.Field)
		} else {
			rec.SetField(f.Field, *f.Old)
		}
	}
	if e.Type != nil {
		rec.Type = e.Type.Old
	}
}

// Compute diffs original against the user-approved merged record and returns
// the composite edit that turns the former into the latter. reserved guards
// system-managed fields: they are never cleared, even when merged omits them.
// Compute never mutates its inputs and is deterministic; the result is empty
// iff the records agree on type (case-insensitively) and on all non-reserved
// field content.
func Compute(original, merged *schema.Record, label string, reserved func(string) bool) CompositeEdit {
	if reserved == nil {
		reserved = func(string) bool { return false }
	}
	edit := CompositeEdit{Label: label}

	if !schema.SameType(original.Type, merged.Type) {
		edit.Type = &TypeChange{Old: original.Type, New: merged.Type}
	}

	seen := map[string]bool{}
	var joint []string
	for _, n := range original.FieldNames() {
		if !seen[n] {
			seen[n] = true
			joint = append(joint, n)
		}
	}
	for _, n := range merged.FieldNames() {
		if !seen[n] {
			seen[n] = true
			joint = append(joint, n)
		}
	}
	sort.Strings(joint)

	for _, name := range joint {
		oldVal, hadOld := original.Field(name)
		newVal, hasNew := merged.Field(name)
		switch {
		case hasNew && (!hadOld || oldVal != newVal):
			var old *string
			if hadOld {
				o := oldVal
				old = &o
			}
			edit.Fields = append(edit.Fields, SetField(name, old, newVal))
		case !hasNew && hadOld && !reserved(name):
			edit.Fields = append(edit.Fields, ClearField(name, oldVal))
		}
	}
	return edit
}
