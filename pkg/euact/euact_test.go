package euact

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

func TestDefaultCatalogValidates(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())
	require.Equal(t, CatalogVersion, c.Version)
	require.NoError(t, c.CheckEngine(inference.Version))
}

func TestDefaultCatalogRuleGroups(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range DefaultCatalog().Rules {
		require.False(t, seen[r.ID], "duplicate rule id %s", r.ID)
		seen[r.ID] = true
	}
	require.True(t, seen["catch-all-criterion"])
	require.True(t, seen["assign-risk-level"])
	require.True(t, seen["incident-notification"])
}

func TestDefaultBackgroundTiers(t *testing.T) {
	bg := DefaultBackground()

	// Every prohibited practice carries the top tier.
	for _, c := range []triple.EntityID{
		CriterionRealTimeBiometric,
		CriterionSocialScoring,
		CriterionSubliminalManipulation,
	} {
		require.True(t, bg.Contains(triple.T(c, PredAssignsRiskLevel, RiskUnacceptable)), "%s", c)
	}

	// Prohibited practices activate no obligations.
	require.Empty(t, bg.Objects(CriterionRealTimeBiometric, PredActivatesRequirement))

	// Biometric identification is high risk via Annex III listing but
	// carries its obligations through sector rules, not this table.
	require.True(t, bg.Contains(triple.T(CriterionBiometricIdentification, PredAssignsRiskLevel, RiskHigh)))
	require.Empty(t, bg.Objects(CriterionBiometricIdentification, PredActivatesRequirement))

	// Each high-risk criterion with obligations carries the full set.
	require.Len(t, bg.Objects(CriterionMedicalDevice, PredActivatesRequirement), 7)
}

func TestDefaultBackgroundIncidents(t *testing.T) {
	bg := DefaultBackground()

	cases := map[triple.EntityID]int{
		IncidentFundamentalRights:      15,
		IncidentDeathOrSeriousHarm:     10,
		IncidentCriticalInfrastructure: 2,
	}
	for incident, days := range cases {
		require.True(t, bg.Contains(triple.T(incident, PredTriggersNotification, triple.Bool(true))))
		require.True(t, bg.Contains(triple.T(incident, PredNotificationDeadlineDs, triple.Int(days))))
	}

	require.True(t, bg.Contains(triple.T(IncidentMinorMalfunction, PredTriggersNotification, triple.Bool(false))))
	require.Empty(t, bg.Objects(IncidentMinorMalfunction, PredNotificationDeadlineDs))
}

// End-to-end chaining over the shipped catalog and background graph.
func TestEducationAccessDerivesParentalConsent(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())

	store := triple.NewStore()
	store.Merge(DefaultBackground())
	store.Insert(triple.T("sys-edu", PredIsAISystem, triple.Bool(true)))
	store.Insert(triple.T("sys-edu", PredHasPurpose, PurposeEducationAccess))

	eng := inference.New(c, inference.DefaultConfig())
	_, err := eng.Run(store)
	require.NoError(t, err)

	require.True(t, store.Contains(triple.T("sys-edu", PredHasCriteria, CriterionEducationAccess)))
	require.True(t, store.Contains(triple.T("sys-edu", PredHasNormativeFlag, FlagProtectionOfMinors)))
	require.True(t, store.Contains(triple.T("sys-edu", PredHasRequirement, ReqParentalConsent)))

	level, article5, err := inference.ResolveRisk(store, "sys-edu", DefaultRiskPolicy())
	require.NoError(t, err)
	require.Equal(t, RiskHigh, level)
	require.False(t, article5)
}

func TestSeverityOrderMatchesRiskPolicy(t *testing.T) {
	p := DefaultRiskPolicy()
	require.Equal(t, SeverityOrder(), p.Severity)
	require.Equal(t, RiskUnacceptable, p.Terminal)
	require.Equal(t, RiskHigh, p.Downgrade)
}
