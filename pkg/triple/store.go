package triple

// Store is the working graph for one evaluation: a deduplicated set of
// triples that remembers insertion order so that queries and projections
// are deterministic across runs.
//
// The forward-chaining phase only inserts (monotonic). Retract exists for
// exactly one caller, the risk hierarchy resolver, which prunes redundant
// risk-level assertions after fixpoint.
//
// A Store is not safe for concurrent mutation. Concurrent evaluations each
// own their working Store; the shared background graph is merged in as an
// immutable snapshot at assembly time.
type Store struct {
	set   map[string]Triple
	order []string
}

// NewStore returns an empty working graph.
func NewStore() *Store {
	return &Store{set: make(map[string]Triple)}
}

// FromTriples builds a store containing the given triples in order.
func FromTriples(ts []Triple) *Store {
	s := NewStore()
	for _, t := range ts {
		s.Insert(t)
	}
	return s
}

// Insert adds a triple and reports whether it was new. Inserting an
// existing triple is a no-op, which is what makes re-running the engine to
// fixpoint idempotent.
func (s *Store) Insert(t Triple) bool {
	k := t.Key()
	if _, ok := s.set[k]; ok {
		return false
	}
	s.set[k] = t
	s.order = append(s.order, k)
	return true
}

// Contains reports whether the exact triple is present.
func (s *Store) Contains(t Triple) bool {
	_, ok := s.set[t.Key()]
	return ok
}

// Retract removes a triple and reports whether it was present. Only the
// risk hierarchy resolver may call this; the chaining phase is monotonic.
func (s *Store) Retract(t Triple) bool {
	k := t.Key()
	if _, ok := s.set[k]; !ok {
		return false
	}
	delete(s.set, k)
	for i, key := range s.order {
		if key == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of live triples.
func (s *Store) Len() int { return len(s.set) }

// Triples returns the live triples in insertion order.
func (s *Store) Triples() []Triple {
	out := make([]Triple, 0, len(s.set))
	for _, k := range s.order {
		if t, ok := s.set[k]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Merge inserts every triple from src, preserving src's order for triples
// not already present. Returns the number of new triples.
func (s *Store) Merge(src *Store) int {
	n := 0
	for _, t := range src.Triples() {
		if s.Insert(t) {
			n++
		}
	}
	return n
}

// Snapshot returns an independent copy of the store. Triples are immutable
// values, so the copy shares them safely.
func (s *Store) Snapshot() *Store {
	cp := &Store{
		set:   make(map[string]Triple, len(s.set)),
		order: make([]string, len(s.order)),
	}
	for k, v := range s.set {
		cp.set[k] = v
	}
	copy(cp.order, s.order)
	return cp
}

// Subjects returns the distinct subject entities in insertion order.
func (s *Store) Subjects() []EntityID {
	seen := make(map[EntityID]bool)
	var out []EntityID
	for _, t := range s.Triples() {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			out = append(out, t.Subject)
		}
	}
	return out
}

// Objects returns the objects of every live (subject, predicate) fact, in
// insertion order.
func (s *Store) Objects(subject EntityID, predicate PredicateID) []Object {
	var out []Object
	for _, t := range s.Triples() {
		if t.Subject == subject && t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

// Entities returns every entity mentioned in subject or object position.
func (s *Store) Entities() map[EntityID]bool {
	out := make(map[EntityID]bool)
	for _, t := range s.Triples() {
		out[t.Subject] = true
		if e, ok := t.Object.(EntityID); ok {
			out[e] = true
		}
	}
	return out
}
