package euact

import (
	"github.com/cartesiosson/ai-act-project-sub003/pkg/catalog"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

// CatalogVersion identifies the shipped default catalog.
const CatalogVersion = "2024.1689.1"

// DefaultCatalog returns the shipped rule catalog: the declarative form of
// the AI Act classification logic. The caller validates it (compiling
// guards) before handing it to the engine.
func DefaultCatalog() *catalog.Catalog {
	var (
		s   = triple.Var("S")
		p   = triple.Var("P")
		c   = triple.Var("C")
		r   = triple.Var("R")
		req = triple.Var("Req")
		f   = triple.Var("F")
		ctx = triple.Var("Ctx")
		x   = triple.Var("X")
		e   = triple.Var("E")
		t   = triple.Var("T")
		d   = triple.Var("D")
	)

	return &catalog.Catalog{
		Version:   CatalogVersion,
		MinEngine: "1.0.0",
		Rules: []*catalog.Rule{
			// Group 1: purpose/context/data-type activation. Purposes
			// activate criteria directly; contexts trigger them; data
			// types signal them. All three land in hasCriteria, but the
			// distinct source predicates are kept for audit reporting.
			{
				ID:    "activate-criterion-by-purpose",
				Group: catalog.GroupActivation,
				Body: []triple.Pattern{
					triple.P(s, PredHasPurpose, p),
					triple.P(p, PredActivatesCriterion, c),
				},
				Head: []triple.Pattern{triple.P(s, PredHasCriteria, c)},
			},
			{
				ID:    "trigger-criterion-by-context",
				Group: catalog.GroupActivation,
				Body: []triple.Pattern{
					triple.P(s, PredHasDeploymentContext, ctx),
					triple.P(ctx, PredTriggersCriterion, c),
				},
				Head: []triple.Pattern{triple.P(s, PredHasCriteria, c)},
			},
			{
				ID:    "signal-criterion-by-data-type",
				Group: catalog.GroupActivation,
				Body: []triple.Pattern{
					triple.P(s, PredHasDataType, d),
					triple.P(d, PredSignalsCriterion, c),
				},
				Head: []triple.Pattern{triple.P(s, PredHasCriteria, c)},
			},
			{
				ID:    "catch-all-criterion",
				Group: catalog.GroupActivation,
				Body: []triple.Pattern{
					triple.P(s, PredIsAISystem, triple.Bool(true)),
				},
				Head: []triple.Pattern{triple.P(s, PredHasCriteria, CriterionCatchAll)},
			},

			// Group 2: fold Art. 5 absolute prohibitions into the same
			// criterion space so one risk rule covers everything.
			{
				ID:    "prohibited-practice-criterion",
				Group: catalog.GroupProhibited,
				Body: []triple.Pattern{
					triple.P(s, PredHasProhibitedPractice, c),
				},
				Head: []triple.Pattern{triple.P(s, PredHasCriteria, c)},
			},

			// Group 3: risk assignment. Several criteria may imply
			// different tiers for the same system; expected, resolved
			// after fixpoint by the risk hierarchy resolver.
			{
				ID:    "assign-risk-level",
				Group: catalog.GroupRisk,
				Body: []triple.Pattern{
					triple.P(s, PredHasCriteria, c),
					triple.P(c, PredAssignsRiskLevel, r),
				},
				Head: []triple.Pattern{triple.P(s, PredHasRiskLevel, r)},
			},

			// Group 4: requirement derivation, flat and chained. The
			// chain (criterion → normative flag → requirement) is why
			// the engine forward-chains instead of doing one flat join.
			{
				ID:    "derive-requirement",
				Group: catalog.GroupRequirement,
				Body: []triple.Pattern{
					triple.P(s, PredHasCriteria, c),
					triple.P(c, PredActivatesRequirement, req),
				},
				Head: []triple.Pattern{triple.P(s, PredHasRequirement, req)},
			},
			{
				ID:    "derive-normative-flag",
				Group: catalog.GroupRequirement,
				Body: []triple.Pattern{
					triple.P(s, PredHasCriteria, c),
					triple.P(c, PredImpliesNormativeFlag, f),
				},
				Head: []triple.Pattern{triple.P(s, PredHasNormativeFlag, f)},
			},
			{
				ID:    "derive-flag-requirement",
				Group: catalog.GroupRequirement,
				Body: []triple.Pattern{
					triple.P(s, PredHasNormativeFlag, f),
					triple.P(f, PredFlagActivatesRequirement, req),
				},
				Head: []triple.Pattern{triple.P(s, PredHasRequirement, req)},
			},

			// Group 5: Art. 5 exception marker. Asserts only the marker;
			// the actual downgrade is the resolver's non-monotonic step,
			// keeping the chaining phase purely additive.
			{
				ID:    "exception-marker",
				Group: catalog.GroupException,
				Body: []triple.Pattern{
					triple.P(s, PredHasProhibitedPractice, c),
					triple.P(s, PredHasLegalException, e),
					triple.P(c, PredAdmitsException, e),
					triple.P(s, PredHasJudicialAuth, triple.Bool(true)),
				},
				Head: []triple.Pattern{
					triple.P(s, PredHasExceptionApplies, triple.Bool(true)),
				},
			},

			// Group 6: scope. The final decision is computed by the
			// scope resolver; these rules only derive the material.
			{
				ID:    "potential-scope-exclusion",
				Group: catalog.GroupScope,
				Body: []triple.Pattern{
					triple.P(s, PredHasPurpose, p),
					triple.P(p, PredMayBeExcludedBy, x),
				},
				Head: []triple.Pattern{triple.P(s, PredHasPotentialExclusion, x)},
			},
			{
				ID:    "exclusion-override",
				Group: catalog.GroupScope,
				Body: []triple.Pattern{
					triple.P(s, PredHasPotentialExclusion, x),
					triple.P(s, PredHasDeploymentContext, ctx),
					triple.P(ctx, PredOverridesExclusion, x),
				},
				Head: []triple.Pattern{triple.P(s, PredIsInScope, triple.Bool(true))},
			},

			// Group 7: incident notification. The deadline literal is
			// copied from the incident type; the guard rejects a
			// non-positive deadline as a background-graph defect.
			{
				ID:    "incident-notification",
				Group: catalog.GroupIncident,
				Body: []triple.Pattern{
					triple.P(s, PredHasIncidentType, t),
					triple.P(t, PredTriggersNotification, triple.Bool(true)),
					triple.P(t, PredNotificationDeadlineDs, d),
				},
				Head: []triple.Pattern{
					triple.P(s, PredRequiresNotification, triple.Bool(true)),
					triple.P(s, PredNotificationDeadlineDs, d),
				},
				Guard: "D > 0",
			},
		},
	}
}
