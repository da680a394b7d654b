package tasks

import (
	"iter"
	"time"
)

// Direction is a selection step
type Direction int

const (
	Up Direction = iota
	Down
)

// Scroll window constants for the sticky-middle policy
const (
	// ScrollLookahead is how far the selection may move below the top of
	// the window before the window starts following it.
	ScrollLookahead = 5
	// ScrollEndMargin stops the window from following once the selection
	// is this close to the last row.
	ScrollEndMargin = 2
)

// maxDrawAttempts bounds how often the store asks the generator for a
// fresh identifier before probing for a free one itself.
const maxDrawAttempts = 64

// Store owns the tasks of a session, their display order and the highlight.
//
// The order slice and the index map are only mutated together, so every
// identifier in order has exactly one entry in index and vice versa.
type Store struct {
	order []ID
	index map[ID]*Task

	selected    int
	hasSelected bool
	scroll      int

	ids IDGenerator
	now func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for Updated stamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store seeded with tasks in display order.
// Seed entries whose identifier repeats an earlier one are dropped.
func NewStore(ids IDGenerator, seed []Task, opts ...Option) *Store {
	if ids == nil {
		ids = NewRandomIDs(uint64(time.Now().UnixNano()))
	}
	s := &Store{
		order: make([]ID, 0, len(seed)),
		index: make(map[ID]*Task, len(seed)),
		ids:   ids,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	obs, _ := ids.(observer)
	for i := range seed {
		t := seed[i]
		if _, dup := s.index[t.ID]; dup {
			continue
		}
		s.order = append(s.order, t.ID)
		s.index[t.ID] = &t
		if obs != nil {
			obs.Observe(t.ID)
		}
	}
	return s
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.order)
}

// Add inserts a new task at the front of the order.
// Blank descriptions are ignored and reported with ok=false.
func (s *Store) Add(description string) (Task, bool) {
	if IsBlank(description) {
		return Task{}, false
	}

	t := &Task{
		ID:          s.freshID(),
		Description: description,
		Updated:     s.now(),
	}
	s.order = append([]ID{t.ID}, s.order...)
	s.index[t.ID] = t
	return *t, true
}

// freshID draws identifiers until one is not live
func (s *Store) freshID() ID {
	for range maxDrawAttempts {
		id := s.ids.NextID()
		if _, live := s.index[id]; !live {
			return id
		}
	}

	// The generator keeps colliding; pick the first free identifier above the largest live one
	var highest ID
	for _, id := range s.order {
		if id > highest {
			highest = id
		}
	}
	id := highest + 1
	for {
		if _, live := s.index[id]; !live {
			return id
		}
		id++
	}
}

// Remove deletes the task with the given identifier and reports whether it existed
func (s *Store) Remove(id ID) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.clamp()
	return true
}

// RemoveAt deletes the task at a display position; out of range is a no-op
func (s *Store) RemoveAt(index int) bool {
	id, ok := s.idAt(index)
	if !ok {
		return false
	}
	return s.Remove(id)
}

// Toggle flips the completion flag of a task.
// It returns the new flag and whether the task was found.
func (s *Store) Toggle(id ID) (completed bool, found bool) {
	t, ok := s.index[id]
	if !ok {
		return false, false
	}
	t.Completed = !t.Completed
	t.Updated = s.now()
	return t.Completed, true
}

// ToggleAt flips the completion flag of the task at a display position
func (s *Store) ToggleAt(index int) (completed bool, found bool) {
	id, ok := s.idAt(index)
	if !ok {
		return false, false
	}
	return s.Toggle(id)
}

// Get returns a copy of the task with the given identifier
func (s *Store) Get(id ID) (Task, bool) {
	t, ok := s.index[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// At returns a copy of the task at a display position
func (s *Store) At(index int) (Task, bool) {
	id, ok := s.idAt(index)
	if !ok {
		return Task{}, false
	}
	return s.Get(id)
}

// All yields the tasks newest first.
// Each call starts a new pass over the current contents.
func (s *Store) All() iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		for i, id := range s.order {
			if !yield(i, *s.index[id]) {
				return
			}
		}
	}
}

// Tasks returns a copy of all tasks in display order
func (s *Store) Tasks() []Task {
	out := make([]Task, 0, len(s.order))
	for _, t := range s.All() {
		out = append(out, t)
	}
	return out
}

// Selected returns the highlighted position, if any
func (s *Store) Selected() (int, bool) {
	return s.selected, s.hasSelected
}

// Scroll returns the index of the first row of the visible window
func (s *Store) Scroll() int {
	return s.scroll
}

// Select highlights a position; out of range is a no-op
func (s *Store) Select(index int) bool {
	if index < 0 || index >= len(s.order) {
		return false
	}
	s.selected = index
	s.hasSelected = true
	s.clamp()
	return true
}

// ClearSelection removes the highlight and resets the window
func (s *Store) ClearSelection() {
	s.selected = 0
	s.hasSelected = false
	s.scroll = 0
}

// ResetSelection highlights the newest task and scrolls to the top
func (s *Store) ResetSelection() {
	s.ClearSelection()
	if len(s.order) > 0 {
		s.hasSelected = true
	}
}

// MoveSelection moves the highlight one row.
// Without a highlight the first row is selected whatever the direction.
// On an empty store nothing happens.
func (s *Store) MoveSelection(dir Direction) {
	n := len(s.order)
	if n == 0 {
		return
	}
	if !s.hasSelected {
		s.selected = 0
		s.hasSelected = true
		return
	}

	switch dir {
	case Down:
		if s.selected >= n-1 {
			return
		}
		s.selected++
		if s.selected-s.scroll > ScrollLookahead && s.selected < n-ScrollEndMargin {
			s.scroll++
		}
	case Up:
		if s.selected == 0 {
			return
		}
		s.selected--
		if s.scroll > 0 {
			s.scroll--
		}
	}
}

// idAt resolves a display position to an identifier
func (s *Store) idAt(index int) (ID, bool) {
	if index < 0 || index >= len(s.order) {
		return 0, false
	}
	return s.order[index], true
}

// clamp restores the selection and scroll invariants after the order changed
func (s *Store) clamp() {
	n := len(s.order)
	if n == 0 {
		s.ClearSelection()
		return
	}
	if s.hasSelected && s.selected >= n {
		s.selected = n - 1
	}
	if s.scroll > n-1 {
		s.scroll = n - 1
	}
	if s.hasSelected && s.scroll > s.selected {
		s.scroll = s.selected
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}
