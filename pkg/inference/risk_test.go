package inference

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

func testRiskPolicy() RiskPolicy {
	return RiskPolicy{
		RiskLevel:        "hasRiskLevel",
		Severity:         []triple.EntityID{"RiskUnacceptable", "RiskHigh", "RiskLimited", "RiskMinimal"},
		ExceptionApplies: "hasExceptionApplies",
		ExceptionFlag:    "hasArticle5Exception",
		Terminal:         "RiskUnacceptable",
		Downgrade:        "RiskHigh",
	}
}

func TestResolveRiskMostSevereWins(t *testing.T) {
	store := triple.NewStore()
	store.Insert(triple.T("sys-1", "hasRiskLevel", triple.EntityID("RiskMinimal")))
	store.Insert(triple.T("sys-1", "hasRiskLevel", triple.EntityID("RiskHigh")))
	store.Insert(triple.T("sys-1", "hasRiskLevel", triple.EntityID("RiskLimited")))

	level, article5, err := ResolveRisk(store, "sys-1", testRiskPolicy())
	require.NoError(t, err)
	require.Equal(t, triple.EntityID("RiskHigh"), level)
	require.False(t, article5)

	// Losing candidates are pruned: exactly one level remains.
	require.Len(t, store.Objects("sys-1", "hasRiskLevel"), 1)
	require.True(t, store.Contains(triple.T("sys-1", "hasRiskLevel", triple.EntityID("RiskHigh"))))
}

func TestResolveRiskExceptionDowngrade(t *testing.T) {
	store := triple.NewStore()
	store.Insert(triple.T("sys-1", "hasRiskLevel", triple.EntityID("RiskUnacceptable")))
	store.Insert(triple.T("sys-1", "hasExceptionApplies", triple.Bool(true)))

	level, article5, err := ResolveRisk(store, "sys-1", testRiskPolicy())
	require.NoError(t, err)
	require.Equal(t, triple.EntityID("RiskHigh"), level)
	require.True(t, article5)

	require.False(t, store.Contains(triple.T("sys-1", "hasRiskLevel", triple.EntityID("RiskUnacceptable"))))
	require.True(t, store.Contains(triple.T("sys-1", "hasRiskLevel", triple.EntityID("RiskHigh"))))
	require.True(t, store.Contains(triple.T("sys-1", "hasArticle5Exception", triple.Bool(true))))
}

func TestResolveRiskExceptionWithoutTerminalLevel(t *testing.T) {
	store := triple.NewStore()
	store.Insert(triple.T("sys-1", "hasRiskLevel", triple.EntityID("RiskLimited")))
	store.Insert(triple.T("sys-1", "hasExceptionApplies", triple.Bool(true)))

	level, article5, err := ResolveRisk(store, "sys-1", testRiskPolicy())
	require.NoError(t, err)
	require.Equal(t, triple.EntityID("RiskLimited"), level)
	require.False(t, article5)
	require.False(t, store.Contains(triple.T("sys-1", "hasArticle5Exception", triple.Bool(true))))
}

func TestResolveRiskNoLevels(t *testing.T) {
	store := triple.NewStore()
	_, _, err := ResolveRisk(store, "sys-1", testRiskPolicy())
	require.ErrorIs(t, err, ErrMissingRiskLevel)
}

func TestResolveRiskUnknownTier(t *testing.T) {
	store := triple.NewStore()
	store.Insert(triple.T("sys-1", "hasRiskLevel", triple.EntityID("RiskExperimental")))

	_, _, err := ResolveRisk(store, "sys-1", testRiskPolicy())
	require.Error(t, err)
	require.ErrorContains(t, err, "not in severity order")
}
