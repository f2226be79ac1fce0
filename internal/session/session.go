package session

import "expenses/internal/core"

// Session owns the list index and the id of the record loaded for editing.
type Session struct {
	index     Index
	editingID int64
	editing   bool
}

func New() *Session {
	return &Session{}
}

// Rebuild refreshes the index from a freshly listed set of records.
func (s *Session) Rebuild(records []core.Expense) {
	s.index.Rebuild(records)
}

// Resolve maps a rank to an id through the current index.
func (s *Session) Resolve(rank int) (int64, error) {
	return s.index.Resolve(rank)
}

// Invalidate drops the index after a mutation.
func (s *Session) Invalidate() {
	s.index.Clear()
}

// Len is the number of ranks the current index can resolve.
func (s *Session) Len() int {
	return s.index.Len()
}

func (s *Session) BeginEdit(id int64) {
	s.editingID = id
	s.editing = true
}

func (s *Session) EditingID() (int64, bool) {
	return s.editingID, s.editing
}

func (s *Session) EndEdit() {
	s.editingID = 0
	s.editing = false
}

// Reset clears both the index and any edit in progress.
func (s *Session) Reset() {
	s.Invalidate()
	s.EndEdit()
}
