package probe

// FlagSet is an insertion-ordered set of configuration macro names
type FlagSet struct {
	names []string
	index map[string]struct{}
}

// NewFlagSet returns a set holding names, duplicates dropped
func NewFlagSet(names ...string) *FlagSet {
	s := &FlagSet{index: make(map[string]struct{})}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name unless already present and reports whether it was new
func (s *FlagSet) Add(name string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

// Has reports membership
func (s *FlagSet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of distinct flags
func (s *FlagSet) Len() int {
	return len(s.names)
}

// Names returns the flags in first-seen order
func (s *FlagSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
