package undo

import (
	"testing"

	"bibmerge/src/internal/merge"
	"bibmerge/src/internal/schema"
)

func TestUndoRedo(t *testing.T) {
	rec := schema.NewRecord("article")
	rec.SetField("title", "A")

	merged := rec.Clone()
	merged.SetField("year", "2020")
	edit := merge.Compute(rec, merged, "add year", schema.IsInternalField)
	edit.Apply(rec)

	s := NewStack()
	s.Append(rec, edit)
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}

	label, ok := s.Undo()
	if !ok || label != "add year" {
		t.Fatalf("undo: %q %v", label, ok)
	}
	if rec.HasField("year") {
		t.Fatalf("undo did not revert year")
	}

	label, ok = s.Redo()
	if !ok || label != "add year" {
		t.Fatalf("redo: %q %v", label, ok)
	}
	if v, _ := rec.Field("year"); v != "2020" {
		t.Fatalf("redo value: %q", v)
	}
}

func TestAppendClearsRedoAndSkipsEmpty(t *testing.T) {
	rec := schema.NewRecord("article")
	rec.SetField("title", "A")

	s := NewStack()
	s.Append(rec, merge.CompositeEdit{Label: "noop"})
	if s.Len() != 0 {
		t.Fatalf("empty edit was stored")
	}

	m1 := rec.Clone()
	m1.SetField("year", "2020")
	e1 := merge.Compute(rec, m1, "one", nil)
	e1.Apply(rec)
	s.Append(rec, e1)

	if _, ok := s.Undo(); !ok {
		t.Fatalf("undo failed")
	}

	m2 := rec.Clone()
	m2.SetField("pages", "1-5")
	e2 := merge.Compute(rec, m2, "two", nil)
	e2.Apply(rec)
	s.Append(rec, e2)

	if _, ok := s.Redo(); ok {
		t.Fatalf("redo should be empty after a new append")
	}
}
