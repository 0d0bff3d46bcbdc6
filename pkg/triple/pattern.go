package triple

import "fmt"

// Var is a pattern variable. Variables shared between body atoms of a rule
// express joins; variables reused in the head carry matched values into the
// derived triple.
type Var string

func (Var) isTerm() {}

// Pattern is a triple template with variables allowed in the subject and
// object positions. Predicates are always concrete: the rule catalog never
// quantifies over edge labels.
type Pattern struct {
	Subject   Term
	Predicate PredicateID
	Object    Term
}

// P is a convenience constructor for a pattern.
func P(s Term, p PredicateID, o Term) Pattern {
	return Pattern{Subject: s, Predicate: p, Object: o}
}

// Binding maps variables to the concrete values they matched.
type Binding map[Var]Object

// clone returns a copy of the binding with one additional entry.
func (b Binding) clone(v Var, o Object) Binding {
	cp := make(Binding, len(b)+1)
	for k, val := range b {
		cp[k] = val
	}
	cp[v] = o
	return cp
}

// Match evaluates a single pattern against the store under an existing
// binding and returns every extended binding, in insertion order of the
// matched triples. A nil binding is treated as empty.
func (s *Store) Match(p Pattern, b Binding) []Binding {
	if b == nil {
		b = Binding{}
	}
	var out []Binding
	for _, t := range s.Triples() {
		if t.Predicate != p.Predicate {
			continue
		}
		nb, ok := matchTriple(p, t, b)
		if ok {
			out = append(out, nb)
		}
	}
	return out
}

// matchTriple unifies one pattern with one triple under b.
func matchTriple(p Pattern, t Triple, b Binding) (Binding, bool) {
	nb := b
	switch term := p.Subject.(type) {
	case EntityID:
		if term != t.Subject {
			return nil, false
		}
	case Var:
		if bound, ok := nb[term]; ok {
			if bound.Key() != t.Subject.Key() {
				return nil, false
			}
		} else {
			nb = nb.clone(term, t.Subject)
		}
	default:
		return nil, false
	}

	switch term := p.Object.(type) {
	case Var:
		if bound, ok := nb[term]; ok {
			if bound.Key() != t.Object.Key() {
				return nil, false
			}
		} else {
			nb = nb.clone(term, t.Object)
		}
	case Object:
		if term.Key() != t.Object.Key() {
			return nil, false
		}
	default:
		return nil, false
	}

	return nb, true
}

// Instantiate resolves a head pattern into a concrete triple under b.
// An unbound variable in a head is a catalog defect, not a skippable
// condition, so it is reported as an error.
func (p Pattern) Instantiate(b Binding) (Triple, error) {
	var subj EntityID
	switch term := p.Subject.(type) {
	case EntityID:
		subj = term
	case Var:
		bound, ok := b[term]
		if !ok {
			return Triple{}, fmt.Errorf("unbound head variable ?%s in subject position", term)
		}
		e, ok := bound.(EntityID)
		if !ok {
			return Triple{}, fmt.Errorf("head variable ?%s bound to a literal in subject position", term)
		}
		subj = e
	default:
		return Triple{}, fmt.Errorf("invalid subject term %T in head", p.Subject)
	}

	var obj Object
	switch term := p.Object.(type) {
	case Var:
		bound, ok := b[term]
		if !ok {
			return Triple{}, fmt.Errorf("unbound head variable ?%s in object position", term)
		}
		obj = bound
	case Object:
		obj = term
	default:
		return Triple{}, fmt.Errorf("invalid object term %T in head", p.Object)
	}

	return Triple{Subject: subj, Predicate: p.Predicate, Object: obj}, nil
}

// Vars returns the variables appearing in the pattern.
func (p Pattern) Vars() []Var {
	var out []Var
	if v, ok := p.Subject.(Var); ok {
		out = append(out, v)
	}
	if v, ok := p.Object.(Var); ok {
		out = append(out, v)
	}
	return out
}
