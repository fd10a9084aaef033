package gfsm

// stack holds the active states. Index 0 is the top.
// Internally the slice is stored bottom first so push and pop are amortised O(1).
type stack[V comparable] struct {
	items []V
}

func (s *stack[V]) push(v V) {
	s.items = append(s.items, v)
}

func (s *stack[V]) pop() (V, bool) {
	var zero V
	if len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	v := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return v, true
}

func (s *stack[V]) peek() (V, bool) {
	return s.at(0)
}

// at returns the entry at distance i from the top.
func (s *stack[V]) at(i int) (V, bool) {
	var zero V
	if i < 0 || i >= len(s.items) {
		return zero, false
	}
	return s.items[len(s.items)-1-i], true
}

func (s *stack[V]) depth() int {
	return len(s.items)
}

// indexOf returns the distance of v from the top, or -1 when v is absent.
// The scan is linear in the stack depth.
func (s *stack[V]) indexOf(v V) int {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i] == v {
			return len(s.items) - 1 - i
		}
	}
	return -1
}

// drop removes the top k entries.
func (s *stack[V]) drop(k int) {
	for ; k > 0; k-- {
		if _, ok := s.pop(); !ok {
			return
		}
	}
}

func (s *stack[V]) clear() {
	s.drop(len(s.items))
}

// snapshot returns a copy of the entries, top first.
func (s *stack[V]) snapshot() []V {
	out := make([]V, len(s.items))
	for i := range s.items {
		out[i] = s.items[len(s.items)-1-i]
	}
	return out
}
