package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

func testProjection() Projection {
	return Projection{
		RiskLevel:            "hasRiskLevel",
		Criteria:             "hasCriteria",
		Requirement:          "hasRequirement",
		Article5Exception:    "hasArticle5Exception",
		RequiresNotification: "requiresNotification",
		NotificationDeadline: "notificationDeadlineDays",
	}
}

func resolvedStore() *triple.Store {
	s := triple.NewStore()
	s.Insert(triple.T("sys-1", "isAISystem", triple.Bool(true)))
	s.Insert(triple.T("sys-1", "hasCriteria", triple.EntityID("CriterionMedicalDevice")))
	s.Insert(triple.T("sys-1", "hasCriteria", triple.EntityID("CriterionCatchAll")))
	s.Insert(triple.T("sys-1", "hasRiskLevel", triple.EntityID("RiskHigh")))
	s.Insert(triple.T("sys-1", "hasRequirement", triple.EntityID("ReqHumanOversight")))
	s.Insert(triple.T("sys-1", "hasRequirement", triple.EntityID("ReqRiskManagementSystem")))
	s.Insert(triple.T("sys-1", "requiresNotification", triple.Bool(true)))
	s.Insert(triple.T("sys-1", "notificationDeadlineDays", triple.Int(15)))
	return s
}

func TestProjectLiftsFields(t *testing.T) {
	store := resolvedStore()
	scope := inference.ScopeDecision{InScope: true, Reason: "no exclusion applies"}

	r, err := Project(store, triple.NewStore(), nil, "sys-1", scope, 3, testProjection())
	require.NoError(t, err)

	require.Equal(t, "sys-1", r.SystemID)
	require.Equal(t, "RiskHigh", r.RiskLevel)
	require.Equal(t, scope, r.Scope)
	require.False(t, r.Article5Exception)
	require.True(t, r.RequiresNotification)
	require.Equal(t, 15, r.NotificationDeadlineDays)
	require.Equal(t, []string{"CriterionMedicalDevice", "CriterionCatchAll"}, r.Criteria)
	require.Equal(t, []string{"ReqHumanOversight", "ReqRiskManagementSystem"}, r.Requirements)
	require.Equal(t, 3, r.Passes)
	require.NotEmpty(t, r.GraphHash)
	require.NotEmpty(t, r.ResultHash)
}

func TestProjectGroupsFactsInInsertionOrder(t *testing.T) {
	store := resolvedStore()
	scope := inference.ScopeDecision{InScope: true, Reason: "no exclusion applies"}

	r, err := Project(store, triple.NewStore(), nil, "sys-1", scope, 1, testProjection())
	require.NoError(t, err)

	var predicates []string
	for _, g := range r.Facts {
		predicates = append(predicates, g.Predicate)
	}
	require.Equal(t, []string{
		"isAISystem",
		"hasCriteria",
		"hasRiskLevel",
		"hasRequirement",
		"requiresNotification",
		"notificationDeadlineDays",
	}, predicates)

	require.Equal(t, []string{"CriterionMedicalDevice", "CriterionCatchAll"}, r.Facts[1].Objects)
	require.Equal(t, []string{"true"}, r.Facts[4].Objects)
	require.Equal(t, []string{"15"}, r.Facts[5].Objects)
}

func TestProjectUnresolvedEntities(t *testing.T) {
	bg := triple.NewStore()
	bg.Insert(triple.T("PurposeMedicalDiagnosis", "activatesCriterion", triple.EntityID("CriterionMedicalDevice")))

	facts := []triple.Triple{
		triple.T("sys-1", "hasPurpose", triple.EntityID("PurposeMedicalDiagnosis")),
		triple.T("sys-1", "hasPurpose", triple.EntityID("PurposeTimeTravel")),
		triple.T("sys-1", "hasPurpose", triple.EntityID("PurposeTimeTravel")),
		triple.T("sys-1", "hasLabel", triple.Str("PurposeTeleportation")),
	}

	store := resolvedStore()
	scope := inference.ScopeDecision{InScope: true, Reason: "no exclusion applies"}
	r, err := Project(store, bg, facts, "sys-1", scope, 1, testProjection())
	require.NoError(t, err)

	// Known entities and string literals are not flagged; unknown entity
	// references are, once each.
	require.Equal(t, []string{"PurposeTimeTravel"}, r.UnresolvedEntities)
}

func TestProjectDeterministicHashes(t *testing.T) {
	scope := inference.ScopeDecision{InScope: true, Reason: "no exclusion applies"}

	a, err := Project(resolvedStore(), triple.NewStore(), nil, "sys-1", scope, 2, testProjection())
	require.NoError(t, err)
	b, err := Project(resolvedStore(), triple.NewStore(), nil, "sys-1", scope, 2, testProjection())
	require.NoError(t, err)

	require.Equal(t, a.GraphHash, b.GraphHash)
	require.Equal(t, a.ResultHash, b.ResultHash)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	require.Equal(t, ja, jb)
}

func TestResultHashReproducibleFromRecord(t *testing.T) {
	scope := inference.ScopeDecision{InScope: false, Reason: "excluded by ExclusionMilitaryDefence"}
	r, err := Project(resolvedStore(), triple.NewStore(), nil, "sys-1", scope, 2, testProjection())
	require.NoError(t, err)

	// Recomputing over the stored result with its hash field blanked
	// yields the stored hash.
	want := r.ResultHash
	r.ResultHash = ""
	got, err := canonicalHash(r)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
