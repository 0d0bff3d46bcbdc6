package inference

import (
	"fmt"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

// RiskPolicy names the predicates and entities the risk hierarchy resolver
// operates on, plus the explicit severity order. Keeping the order as data
// lets the resolver be tested independent of any rule catalog.
type RiskPolicy struct {
	// RiskLevel is the predicate holding candidate classifications.
	RiskLevel triple.PredicateID
	// Severity lists the risk tiers from most to least severe.
	Severity []triple.EntityID
	// ExceptionApplies is the marker predicate asserted by the
	// exception rule during chaining.
	ExceptionApplies triple.PredicateID
	// ExceptionFlag is asserted on the system when the downgrade fires.
	ExceptionFlag triple.PredicateID
	// Terminal is the tier subject to the exception downgrade.
	Terminal triple.EntityID
	// Downgrade is the tier the Terminal classification falls to.
	Downgrade triple.EntityID
}

// severityRank returns the position of a tier in the order, or an error
// for a tier the policy does not know. An unknown tier in the working
// graph means the background graph and the policy disagree.
func (p RiskPolicy) severityRank(level triple.EntityID) (int, error) {
	for i, l := range p.Severity {
		if l == level {
			return i, nil
		}
	}
	return 0, fmt.Errorf("risk level %s not in severity order", level)
}

// ResolveRisk runs once, after fixpoint. It applies the legal-exception
// downgrade when the marker fact is present, then prunes the candidate set
// down to the single most severe tier. This is the engine's only
// non-monotonic step: it is the sole caller of Store.Retract.
//
// Post-condition: exactly one risk-level triple remains for the system.
func ResolveRisk(store *triple.Store, system triple.EntityID, p RiskPolicy) (triple.EntityID, bool, error) {
	held := heldLevels(store, system, p)
	if len(held) == 0 {
		return "", false, fmt.Errorf("system %s: %w", system, ErrMissingRiskLevel)
	}

	article5 := false
	exception := store.Contains(triple.T(system, p.ExceptionApplies, triple.Bool(true)))
	if exception && contains(held, p.Terminal) {
		store.Retract(triple.T(system, p.RiskLevel, p.Terminal))
		store.Insert(triple.T(system, p.RiskLevel, p.Downgrade))
		store.Insert(triple.T(system, p.ExceptionFlag, triple.Bool(true)))
		article5 = true
		held = heldLevels(store, system, p)
	}

	best := held[0]
	bestRank, err := p.severityRank(best)
	if err != nil {
		return "", false, err
	}
	for _, level := range held[1:] {
		rank, err := p.severityRank(level)
		if err != nil {
			return "", false, err
		}
		if rank < bestRank {
			best, bestRank = level, rank
		}
	}

	for _, level := range held {
		if level != best {
			store.Retract(triple.T(system, p.RiskLevel, level))
		}
	}
	return best, article5, nil
}

func heldLevels(store *triple.Store, system triple.EntityID, p RiskPolicy) []triple.EntityID {
	var out []triple.EntityID
	for _, o := range store.Objects(system, p.RiskLevel) {
		if e, ok := o.(triple.EntityID); ok {
			out = append(out, e)
		}
	}
	return out
}

func contains(levels []triple.EntityID, level triple.EntityID) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}
