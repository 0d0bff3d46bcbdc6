package inference

import (
	"fmt"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

// ScopePolicy names the predicates the scope resolver reads.
type ScopePolicy struct {
	// PotentialExclusion holds exclusions derived from purposes.
	PotentialExclusion triple.PredicateID
	// InScope is asserted when an override context defeats an exclusion.
	InScope triple.PredicateID
}

// ScopeDecision is the resolver's answer. It is reported alongside the
// derived facts, never merged into the triple set.
type ScopeDecision struct {
	InScope bool   `json:"in_scope"`
	Reason  string `json:"reason"`
}

// ResolveScope answers whether the system falls under regulatory scope.
// Exclusion is defeasible: a potential exclusion only takes the system out
// of scope when no override was derived. This is a negation-as-failure
// query over the fixpoint, not a chained rule, because default semantics
// cannot be expressed monotonically.
func ResolveScope(store *triple.Store, system triple.EntityID, p ScopePolicy) ScopeDecision {
	exclusions := store.Objects(system, p.PotentialExclusion)
	if len(exclusions) == 0 {
		return ScopeDecision{InScope: true, Reason: "no exclusion applies"}
	}
	if store.Contains(triple.T(system, p.InScope, triple.Bool(true))) {
		return ScopeDecision{InScope: true, Reason: "override"}
	}
	return ScopeDecision{
		InScope: false,
		Reason:  fmt.Sprintf("excluded by %s", triple.ObjectString(exclusions[0])),
	}
}
