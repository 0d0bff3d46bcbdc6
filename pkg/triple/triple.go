// Package triple implements the fact representation and the working graph
// used by the compliance inference engine. Part of the aicomply Semantic
// Compliance Oracle (SCO).
//
// A fact is a (subject, predicate, object) triple. Subjects are always
// entities; objects are either entities or literals (string, int, bool).
// Triples are immutable values: the mutable piece is the Store, a
// deduplicated, insertion-ordered set of triples.
package triple

import (
	"fmt"
	"strconv"
)

// EntityID identifies an entity node in the knowledge graph.
// Examples: "sys-001", "CriterionRealTimeBiometric", "RiskHigh".
type EntityID string

// PredicateID identifies an edge label.
// Examples: "hasPurpose", "assignsRiskLevel", "notificationDeadlineDays".
type PredicateID string

// Term is anything that can appear in the subject or object position of a
// pattern: a concrete entity, a literal, or a variable.
type Term interface {
	isTerm()
}

// Object is a concrete value in the object position of a triple: an entity
// reference or a literal. Every Object has a stable key used for set
// membership, sorting and deterministic serialization.
type Object interface {
	Term
	Key() string
}

func (EntityID) isTerm() {}

// Key returns the set-membership key for an entity object.
func (e EntityID) Key() string { return "e:" + string(e) }

// Str is a string literal object.
type Str string

func (Str) isTerm() {}

// Key returns the set-membership key for a string literal.
func (s Str) Key() string { return "s:" + string(s) }

// Int is an integer literal object.
type Int int

func (Int) isTerm() {}

// Key returns the set-membership key for an integer literal.
func (i Int) Key() string { return "i:" + strconv.Itoa(int(i)) }

// Bool is a boolean literal object.
type Bool bool

func (Bool) isTerm() {}

// Key returns the set-membership key for a boolean literal.
func (b Bool) Key() string { return "b:" + strconv.FormatBool(bool(b)) }

// Triple is an immutable (subject, predicate, object) fact.
type Triple struct {
	Subject   EntityID
	Predicate PredicateID
	Object    Object
}

// T is a convenience constructor for a triple.
func T(s EntityID, p PredicateID, o Object) Triple {
	return Triple{Subject: s, Predicate: p, Object: o}
}

// Key returns the deduplication key for the triple.
func (t Triple) Key() string {
	return string(t.Subject) + "|" + string(t.Predicate) + "|" + t.Object.Key()
}

// String renders the triple for logs and error messages.
func (t Triple) String() string {
	return fmt.Sprintf("(%s %s %s)", t.Subject, t.Predicate, ObjectString(t.Object))
}

// ObjectString renders an object without its kind prefix.
func ObjectString(o Object) string {
	switch v := o.(type) {
	case EntityID:
		return string(v)
	case Str:
		return strconv.Quote(string(v))
	case Int:
		return strconv.Itoa(int(v))
	case Bool:
		return strconv.FormatBool(bool(v))
	default:
		return o.Key()
	}
}
