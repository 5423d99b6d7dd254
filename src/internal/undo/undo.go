// Package undo keeps an in-memory stack of applied composite edits so merges
// can be rolled back and replayed within a session.
package undo

import (
	"sync"

	"bibmerge/src/internal/merge"
	"bibmerge/src/internal/schema"
)

type entry struct {
	rec  *schema.Record
	edit merge.CompositeEdit
}

// Stack stores (record, edit) pairs in application order. The edit is assumed
// to be already applied when pushed; Undo reverts the newest one, Redo
// re-applies the newest reverted one. A new push discards the redo history.
type Stack struct {
	mu   sync.Mutex
	done []entry
	redo []entry
}

// NewStack returns an empty undo stack.
func NewStack() *Stack { return &Stack{} }

// Append records an applied edit against its target record.
func (s *Stack) Append(rec *schema.Record, edit merge.CompositeEdit) {
	if edit.Empty() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = append(s.done, entry{rec: rec, edit: edit})
	s.redo = nil
}

// Len returns the number of undoable edits.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.done)
}

// Undo reverts the most recent edit and returns its label. ok is false when
// there is nothing to undo.
func (s *Stack) Undo() (label string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.done) == 0 {
		return "", false
	}
	e := s.done[len(s.done)-1]
	s.done = s.done[:len(s.done)-1]
	e.edit.Revert(e.rec)
	s.redo = append(s.redo, e)
	return e.edit.Label, true
}

// Redo re-applies the most recently undone edit and returns its label.
func (s *Stack) Redo() (label string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return "", false
	}
	e := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	e.edit.Apply(e.rec)
	s.done = append(s.done, e)
	return e.edit.Label, true
}
