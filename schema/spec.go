package schema

import "sort"

// Spec is the parsed document: every top-level schema apigen will render,
// partitioned by ownership.
type Spec struct {
	// Managed holds the schemas whose names matched the prefix whitelist.
	// The generator owns rendering these.
	Managed map[string]Node

	// Unmanaged holds non-whitelisted schemas retained only because a
	// managed schema (transitively) references them.
	Unmanaged map[string]Node
}

// NewSpec returns an empty Spec with both partitions allocated.
func NewSpec() *Spec {
	return &Spec{
		Managed:   make(map[string]Node),
		Unmanaged: make(map[string]Node),
	}
}

// Lookup returns the schema with the given name from either partition.
func (s *Spec) Lookup(name string) (Node, bool) {
	if n, ok := s.Managed[name]; ok {
		return n, true
	}
	n, ok := s.Unmanaged[name]
	return n, ok
}

// Names returns every schema name in both partitions, sorted
// lexicographically. Renderers iterate this order so output is reproducible.
func (s *Spec) Names() []string {
	names := make([]string, 0, len(s.Managed)+len(s.Unmanaged))
	for name := range s.Managed {
		names = append(names, name)
	}
	for name := range s.Unmanaged {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
