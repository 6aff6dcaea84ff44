package scan

// NameSet accumulates the distinct tagged names observed across one run.
// Insertion is idempotent and order is insignificant; canonical ordering is
// applied later, at emission.
type NameSet map[string]struct{}

// NewNameSet returns an empty name set
func NewNameSet() NameSet {
	return make(NameSet)
}

// Insert adds a name. Inserting an existing name is a no-op.
func (s NameSet) Insert(name string) {
	s[name] = struct{}{}
}

// Has reports whether the set contains name
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of distinct names
func (s NameSet) Len() int {
	return len(s)
}

// Names returns the member names in unspecified order
func (s NameSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}
