package evaluation

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/euact"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/ledger"
)

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	svc, err := New(cfg)
	require.NoError(t, err)
	return svc
}

func entityFact(predicate string, entity string) Fact {
	raw, _ := json.Marshal(entity)
	return Fact{Predicate: predicate, Kind: "entity", Value: raw}
}

func boolFact(predicate string, v bool) Fact {
	raw, _ := json.Marshal(v)
	return Fact{Predicate: predicate, Kind: "bool", Value: raw}
}

func TestEvaluate_ProhibitedPractice(t *testing.T) {
	svc := newTestService(t, Config{})

	eval, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-biometric",
		Facts: []Fact{
			entityFact(string(euact.PredHasPurpose), string(euact.PurposeBiometricIdentification)),
			entityFact(string(euact.PredHasDeploymentContext), string(euact.ContextPublicSpace)),
			entityFact(string(euact.PredHasProhibitedPractice), string(euact.CriterionRealTimeBiometric)),
		},
	})
	require.NoError(t, err)

	r := eval.Result
	require.Equal(t, string(euact.RiskUnacceptable), r.RiskLevel)
	require.False(t, r.Article5Exception)
	require.Empty(t, r.Requirements, "prohibited practices bypass ordinary obligations")
	require.Contains(t, r.Criteria, string(euact.CriterionRealTimeBiometric))
	require.True(t, r.Scope.InScope)
}

func TestEvaluate_ExceptionDowngrade(t *testing.T) {
	svc := newTestService(t, Config{})

	eval, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-lawful-search",
		Facts: []Fact{
			entityFact(string(euact.PredHasProhibitedPractice), string(euact.CriterionRealTimeBiometric)),
			entityFact(string(euact.PredHasLegalException), string(euact.ExceptionJudicialSearch)),
			boolFact(string(euact.PredHasJudicialAuth), true),
		},
	})
	require.NoError(t, err)

	r := eval.Result
	require.Equal(t, string(euact.RiskHigh), r.RiskLevel)
	require.True(t, r.Article5Exception)
}

func TestEvaluate_ExceptionWithoutAuthorization(t *testing.T) {
	svc := newTestService(t, Config{})

	eval, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-unauthorized",
		Facts: []Fact{
			entityFact(string(euact.PredHasProhibitedPractice), string(euact.CriterionRealTimeBiometric)),
			entityFact(string(euact.PredHasLegalException), string(euact.ExceptionJudicialSearch)),
		},
	})
	require.NoError(t, err)
	require.Equal(t, string(euact.RiskUnacceptable), eval.Result.RiskLevel)
	require.False(t, eval.Result.Article5Exception)
}

func TestEvaluate_AmbiguousAuthorization(t *testing.T) {
	svc := newTestService(t, Config{})

	_, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-contradiction",
		Facts: []Fact{
			entityFact(string(euact.PredHasLegalException), string(euact.ExceptionJudicialSearch)),
			boolFact(string(euact.PredHasJudicialAuth), true),
			boolFact(string(euact.PredHasJudicialAuth), false),
		},
	})
	require.ErrorIs(t, err, inference.ErrAmbiguousException)
}

func TestEvaluate_ChainedParentalConsent(t *testing.T) {
	svc := newTestService(t, Config{})

	eval, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-edu",
		Facts: []Fact{
			entityFact(string(euact.PredHasPurpose), string(euact.PurposeEducationAccess)),
			entityFact(string(euact.PredHasDeploymentContext), string(euact.ContextEducation)),
		},
	})
	require.NoError(t, err)

	r := eval.Result
	require.Equal(t, string(euact.RiskHigh), r.RiskLevel)
	require.Contains(t, r.Requirements, string(euact.ReqParentalConsent))
	require.Contains(t, r.Requirements, string(euact.ReqRiskManagement))
	// At least one deriving pass plus the empty closing pass.
	require.GreaterOrEqual(t, r.Passes, 2)
}

func TestEvaluate_IncidentNotification(t *testing.T) {
	svc := newTestService(t, Config{})

	eval, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-incident",
		Facts: []Fact{
			entityFact(string(euact.PredHasIncidentType), string(euact.IncidentFundamentalRights)),
		},
	})
	require.NoError(t, err)
	require.True(t, eval.Result.RequiresNotification)
	require.Equal(t, 15, eval.Result.NotificationDeadlineDays)
}

func TestEvaluate_MinorMalfunctionNoNotification(t *testing.T) {
	svc := newTestService(t, Config{})

	eval, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-glitch",
		Facts: []Fact{
			entityFact(string(euact.PredHasIncidentType), string(euact.IncidentMinorMalfunction)),
		},
	})
	require.NoError(t, err)
	require.False(t, eval.Result.RequiresNotification)
	require.Zero(t, eval.Result.NotificationDeadlineDays)
}

func TestEvaluate_CatchAllMinimal(t *testing.T) {
	svc := newTestService(t, Config{})

	eval, err := svc.Evaluate(context.Background(), Request{SystemID: "sys-plain"})
	require.NoError(t, err)
	require.Equal(t, string(euact.RiskMinimal), eval.Result.RiskLevel)
	require.Contains(t, eval.Result.Criteria, string(euact.CriterionCatchAll))
}

func TestEvaluate_ScopeExclusionAndOverride(t *testing.T) {
	svc := newTestService(t, Config{})

	excluded, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-defence",
		Facts: []Fact{
			entityFact(string(euact.PredHasPurpose), string(euact.PurposeMilitaryDefence)),
		},
	})
	require.NoError(t, err)
	require.False(t, excluded.Result.Scope.InScope)
	require.Contains(t, excluded.Result.Scope.Reason, string(euact.ExclusionMilitaryDefence))

	overridden, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-dual-use",
		Facts: []Fact{
			entityFact(string(euact.PredHasPurpose), string(euact.PurposeMilitaryDefence)),
			entityFact(string(euact.PredHasDeploymentContext), string(euact.ContextCivilianUse)),
		},
	})
	require.NoError(t, err)
	require.True(t, overridden.Result.Scope.InScope)
}

func TestEvaluate_Deterministic(t *testing.T) {
	svc := newTestService(t, Config{})
	req := Request{
		SystemID: "sys-repeat",
		Facts: []Fact{
			entityFact(string(euact.PredHasPurpose), string(euact.PurposeCreditScoring)),
		},
	}

	a, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Evaluate(context.Background(), req)
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, a.Result.ResultHash, b.Result.ResultHash)

	ja, err := json.Marshal(a.Result)
	require.NoError(t, err)
	jb, err := json.Marshal(b.Result)
	require.NoError(t, err)
	require.Equal(t, ja, jb)
}

func TestEvaluate_ParallelMatchesSequential(t *testing.T) {
	seq := newTestService(t, Config{})
	par := newTestService(t, Config{
		Engine: inference.Config{MaxPasses: 100, Parallel: true, Workers: 4},
	})
	req := Request{
		SystemID: "sys-modes",
		Facts: []Fact{
			entityFact(string(euact.PredHasPurpose), string(euact.PurposeEducationAccess)),
			entityFact(string(euact.PredHasDeploymentContext), string(euact.ContextWorkplace)),
			entityFact(string(euact.PredHasDataType), string(euact.DataTypeBiometric)),
		},
	}

	a, err := seq.Evaluate(context.Background(), req)
	require.NoError(t, err)
	b, err := par.Evaluate(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, a.Result.GraphHash, b.Result.GraphHash)
	require.Equal(t, a.Result.ResultHash, b.Result.ResultHash)
}

func TestEvaluate_NormalizesSystemID(t *testing.T) {
	svc := newTestService(t, Config{})

	// Precomposed grave vs combining sequence.
	a, err := svc.Evaluate(context.Background(), Request{SystemID: "système"})
	require.NoError(t, err)
	b, err := svc.Evaluate(context.Background(), Request{SystemID: "système"})
	require.NoError(t, err)
	require.Equal(t, a.Result.SystemID, b.Result.SystemID)
	require.Equal(t, a.Result.ResultHash, b.Result.ResultHash)
}

func TestEvaluate_EmptySystemID(t *testing.T) {
	svc := newTestService(t, Config{})
	_, err := svc.Evaluate(context.Background(), Request{SystemID: "   "})
	require.ErrorIs(t, err, ErrEmptySystemID)
}

func TestEvaluate_UnknownFactKind(t *testing.T) {
	svc := newTestService(t, Config{})
	_, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-bad",
		Facts:    []Fact{{Predicate: "hasPurpose", Kind: "float", Value: []byte(`1.5`)}},
	})
	require.ErrorIs(t, err, ErrInvalidFact)
}

func TestEvaluate_EmptyFactPredicate(t *testing.T) {
	svc := newTestService(t, Config{})
	_, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-bad",
		Facts:    []Fact{{Predicate: "", Kind: "bool", Value: []byte(`true`)}},
	})
	require.ErrorIs(t, err, ErrInvalidFact)
}

func TestEvaluate_PersistsToLedger(t *testing.T) {
	store := ledger.NewMemoryStore()
	svc := newTestService(t, Config{Ledger: store})

	eval, err := svc.Evaluate(context.Background(), Request{SystemID: "sys-durable"})
	require.NoError(t, err)

	rec, err := store.Get(context.Background(), eval.ID)
	require.NoError(t, err)
	require.Equal(t, "sys-durable", rec.SystemID)
	require.Equal(t, eval.Result.ResultHash, rec.ResultHash)
	require.Equal(t, euact.CatalogVersion, rec.CatalogVersion)

	var stored map[string]any
	require.NoError(t, json.Unmarshal(rec.Result, &stored))
	require.Equal(t, eval.Result.RiskLevel, stored["risk_level"])
}

func TestEvaluate_UnresolvedEntitiesSurface(t *testing.T) {
	svc := newTestService(t, Config{})

	eval, err := svc.Evaluate(context.Background(), Request{
		SystemID: "sys-typo",
		Facts: []Fact{
			entityFact(string(euact.PredHasPurpose), "purpose:definitely-not-in-graph"),
		},
	})
	require.NoError(t, err)
	require.Contains(t, eval.Result.UnresolvedEntities, "purpose:definitely-not-in-graph")
	// Unknown references never abort: the system still classifies.
	require.Equal(t, string(euact.RiskMinimal), eval.Result.RiskLevel)
}
