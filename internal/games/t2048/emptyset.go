package t2048

// emptySet indexes the linear coordinates (row*size+col) of empty cells.
// Members live in a dense slice so a uniform random pick is O(1); pos maps a
// coordinate back to its slot (-1 when absent) for O(1) add and remove.
type emptySet struct {
	cells []int
	pos   []int
}

// newEmptySet returns a set over [0, n) holding every coordinate.
func newEmptySet(n int) *emptySet {
	s := &emptySet{
		cells: make([]int, n),
		pos:   make([]int, n),
	}
	for i := range n {
		s.cells[i] = i
		s.pos[i] = i
	}
	return s
}

func (s *emptySet) len() int {
	return len(s.cells)
}

func (s *emptySet) contains(idx int) bool {
	return s.pos[idx] >= 0
}

// at returns the i-th member in slot order.
func (s *emptySet) at(i int) int {
	return s.cells[i]
}

func (s *emptySet) add(idx int) {
	if s.contains(idx) {
		return
	}
	s.pos[idx] = len(s.cells)
	s.cells = append(s.cells, idx)
}

func (s *emptySet) remove(idx int) {
	if !s.contains(idx) {
		return
	}
	slot := s.pos[idx]
	last := len(s.cells) - 1
	moved := s.cells[last]
	s.cells[slot] = moved
	s.pos[moved] = slot
	s.cells = s.cells[:last]
	s.pos[idx] = -1
}

func (s *emptySet) clone() *emptySet {
	return &emptySet{
		cells: append([]int(nil), s.cells...),
		pos:   append([]int(nil), s.pos...),
	}
}
