package engine

// tileSet is an insertion-ordered set of tile references.
// Order keeps scoring and event emission deterministic.
type tileSet struct {
	order []*Tile
	index map[*Tile]struct{}
}

func newTileSet() tileSet {
	return tileSet{index: make(map[*Tile]struct{})}
}

// add inserts t if absent and reports whether it was inserted.
func (s *tileSet) add(t *Tile) bool {
	if _, ok := s.index[t]; ok {
		return false
	}
	s.index[t] = struct{}{}
	s.order = append(s.order, t)
	return true
}

func (s *tileSet) has(t *Tile) bool {
	_, ok := s.index[t]
	return ok
}

// remove deletes t, preserving the order of the remaining members.
func (s *tileSet) remove(t *Tile) {
	if _, ok := s.index[t]; !ok {
		return
	}
	delete(s.index, t)
	for i, m := range s.order {
		if m == t {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *tileSet) len() int {
	return len(s.order)
}

func (s *tileSet) clear() {
	s.order = s.order[:0]
	clear(s.index)
}

// list returns a copy of the members in insertion order.
func (s *tileSet) list() []*Tile {
	out := make([]*Tile, len(s.order))
	copy(out, s.order)
	return out
}
