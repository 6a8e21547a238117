package annot

// HistoryDepth bounds the undo and redo stacks. Exceeding it silently drops
// the oldest entry.
const HistoryDepth = 50

// Store holds the live annotation list plus snapshot-stack history.
//
// Discrete mutations (Add, Remove) snapshot themselves. Continuous gestures
// use the two-message protocol: one BeginTransaction, then any number of
// cheap Update calls, so a whole drag undoes in a single step.
type Store struct {
	current []Annotation
	past    [][]Annotation
	future  [][]Annotation
}

func NewStore() *Store {
	return &Store{}
}

// Len reports the number of live annotations.
func (s *Store) Len() int { return len(s.current) }

// Get returns the live annotation with the given id, or nil.
func (s *Store) Get(id string) Annotation {
	for _, a := range s.current {
		if a.ID() == id {
			return a
		}
	}
	return nil
}

// All returns the live list in placement order. The slice is fresh but the
// elements are the live objects; callers must not hold them across history
// operations.
func (s *Store) All() []Annotation {
	return append([]Annotation(nil), s.current...)
}

// Snapshot deep-copies the live list, for export while editing continues.
func (s *Store) Snapshot() []Annotation {
	return cloneList(s.current)
}

// Add appends an annotation as a new undoable step.
func (s *Store) Add(a Annotation) {
	s.snapshot()
	s.current = append(s.current, a)
}

// Remove deletes the annotation with the given id as a new undoable step.
// An unknown id leaves both the list and the history untouched.
func (s *Store) Remove(id string) bool {
	idx := -1
	for i, a := range s.current {
		if a.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.snapshot()
	s.current = append(s.current[:idx], s.current[idx+1:]...)
	return true
}

// Update applies mutate to the annotation with the given id, in place and
// without touching history. It is issued on every pointer-move sample of a
// gesture and must stay cheap. Unknown ids are ignored.
func (s *Store) Update(id string, mutate func(Annotation)) {
	if a := s.Get(id); a != nil {
		mutate(a)
	}
}

// BeginTransaction snapshots the current state without changing it. Call it
// exactly once, immediately before the first Update of a drag or resize, so
// one Undo restores the pre-gesture state.
func (s *Store) BeginTransaction() {
	s.snapshot()
}

// CanUndo reports whether an Undo would change state.
func (s *Store) CanUndo() bool { return len(s.past) > 0 }

// CanRedo reports whether a Redo would change state.
func (s *Store) CanRedo() bool { return len(s.future) > 0 }

// Undo restores the most recent snapshot. It reports false if there is none.
func (s *Store) Undo() bool {
	if len(s.past) == 0 {
		return false
	}
	redo := cloneList(s.current)
	s.current = s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append([][]Annotation{redo}, s.future...)
	if len(s.future) > HistoryDepth {
		s.future = s.future[:HistoryDepth]
	}
	return true
}

// Redo reapplies the most recently undone state. False if nothing to redo.
func (s *Store) Redo() bool {
	if len(s.future) == 0 {
		return false
	}
	s.past = append(s.past, cloneList(s.current))
	if len(s.past) > HistoryDepth {
		s.past = s.past[1:]
	}
	s.current = s.future[0]
	s.future = s.future[1:]
	return true
}

func (s *Store) snapshot() {
	s.past = append(s.past, cloneList(s.current))
	if len(s.past) > HistoryDepth {
		s.past = s.past[1:]
	}
	s.future = nil
}

func cloneList(in []Annotation) []Annotation {
	out := make([]Annotation, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

// RemovePageAnnotations drops every annotation on the deleted page and
// shifts higher page indices down by one. The remap runs over history
// snapshots as well so undo never resurrects a reference to a page that no
// longer exists; it is not itself an undoable step.
func (s *Store) RemovePageAnnotations(page int) {
	s.current = deletePage(s.current, page)
	for i := range s.past {
		s.past[i] = deletePage(s.past[i], page)
	}
	for i := range s.future {
		s.future[i] = deletePage(s.future[i], page)
	}
}

// RemapMove rewrites page indices for a page move, over the live list and
// all history snapshots.
func (s *Store) RemapMove(from, to int) {
	movePage(s.current, from, to)
	for _, l := range s.past {
		movePage(l, from, to)
	}
	for _, l := range s.future {
		movePage(l, from, to)
	}
}

func deletePage(list []Annotation, page int) []Annotation {
	out := list[:0]
	for _, a := range list {
		switch {
		case a.Page() == page:
			// dropped with the page
		case a.Page() > page:
			a.setPage(a.Page() - 1)
			out = append(out, a)
		default:
			out = append(out, a)
		}
	}
	return out
}

func movePage(list []Annotation, from, to int) {
	for _, a := range list {
		p := a.Page()
		switch {
		case p == from:
			a.setPage(to)
		case from < to && p > from && p <= to:
			a.setPage(p - 1)
		case from > to && p >= to && p < from:
			a.setPage(p + 1)
		}
	}
}
