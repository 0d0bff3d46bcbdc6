package report

import (
	"strconv"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

// Projection names the predicates the projector lifts into dedicated
// result fields. Everything else about the system lands in the grouped
// fact projection untouched.
type Projection struct {
	RiskLevel            triple.PredicateID
	Criteria             triple.PredicateID
	Requirement          triple.PredicateID
	Article5Exception    triple.PredicateID
	RequiresNotification triple.PredicateID
	NotificationDeadline triple.PredicateID
}

// Project reads the resolved working graph into an EvaluationResult.
// This is a pure read: the resolvers have already run, so the store holds
// exactly one risk level and the scope decision is final.
func Project(
	store *triple.Store,
	background *triple.Store,
	systemFacts []triple.Triple,
	system triple.EntityID,
	scope inference.ScopeDecision,
	passes int,
	proj Projection,
) (*EvaluationResult, error) {
	r := &EvaluationResult{
		SystemID:     string(system),
		Scope:        scope,
		Criteria:     []string{},
		Requirements: []string{},
		Facts:        []PredicateGroup{},
		Graph:        store.Triples(),
		Passes:       passes,
	}

	for _, o := range store.Objects(system, proj.RiskLevel) {
		r.RiskLevel = renderObject(o)
	}
	for _, o := range store.Objects(system, proj.Criteria) {
		r.Criteria = append(r.Criteria, renderObject(o))
	}
	for _, o := range store.Objects(system, proj.Requirement) {
		r.Requirements = append(r.Requirements, renderObject(o))
	}
	r.Article5Exception = store.Contains(triple.T(system, proj.Article5Exception, triple.Bool(true)))
	r.RequiresNotification = store.Contains(triple.T(system, proj.RequiresNotification, triple.Bool(true)))
	for _, o := range store.Objects(system, proj.NotificationDeadline) {
		if days, ok := o.(triple.Int); ok {
			r.NotificationDeadlineDays = int(days)
		}
	}

	r.Facts = groupFacts(store, system)
	r.UnresolvedEntities = unresolved(background, systemFacts, system)

	if err := r.finalize(); err != nil {
		return nil, err
	}
	return r, nil
}

// groupFacts groups every triple about the system by predicate, keeping
// first-insertion order for both predicates and objects.
func groupFacts(store *triple.Store, system triple.EntityID) []PredicateGroup {
	index := make(map[triple.PredicateID]int)
	groups := []PredicateGroup{}
	for _, t := range store.Triples() {
		if t.Subject != system {
			continue
		}
		i, ok := index[t.Predicate]
		if !ok {
			i = len(groups)
			index[t.Predicate] = i
			groups = append(groups, PredicateGroup{Predicate: string(t.Predicate)})
		}
		groups[i].Objects = append(groups[i].Objects, renderObject(t.Object))
	}
	return groups
}

// unresolved flags entity ids the caller referenced that the background
// graph has never heard of. Unknown facts are inert, not rejected (rules
// simply fail to match them), but the caller should see which ids went
// nowhere.
func unresolved(background *triple.Store, systemFacts []triple.Triple, system triple.EntityID) []string {
	known := background.Entities()
	seen := make(map[triple.EntityID]bool)
	var out []string
	for _, t := range systemFacts {
		e, ok := t.Object.(triple.EntityID)
		if !ok || e == system || known[e] || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, string(e))
	}
	return out
}

func renderObject(o triple.Object) string {
	switch v := o.(type) {
	case triple.EntityID:
		return string(v)
	case triple.Str:
		return string(v)
	case triple.Int:
		return strconv.Itoa(int(v))
	case triple.Bool:
		return strconv.FormatBool(bool(v))
	default:
		return o.Key()
	}
}
