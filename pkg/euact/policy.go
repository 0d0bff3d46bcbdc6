package euact

import (
	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/report"
)

// DefaultRiskPolicy wires the resolver to the AI Act vocabulary: the
// four-tier severity order and the Art. 5 downgrade (Unacceptable → High
// when a judicially authorized exception applies).
func DefaultRiskPolicy() inference.RiskPolicy {
	return inference.RiskPolicy{
		RiskLevel:        PredHasRiskLevel,
		Severity:         SeverityOrder(),
		ExceptionApplies: PredHasExceptionApplies,
		ExceptionFlag:    PredHasArticle5Exception,
		Terminal:         RiskUnacceptable,
		Downgrade:        RiskHigh,
	}
}

// DefaultScopePolicy wires the scope resolver to the AI Act vocabulary.
func DefaultScopePolicy() inference.ScopePolicy {
	return inference.ScopePolicy{
		PotentialExclusion: PredHasPotentialExclusion,
		InScope:            PredIsInScope,
	}
}

// DefaultExceptionPolicy wires the input ambiguity check.
func DefaultExceptionPolicy() inference.ExceptionPolicy {
	return inference.ExceptionPolicy{
		LegalException:        PredHasLegalException,
		JudicialAuthorization: PredHasJudicialAuth,
	}
}

// DefaultProjection wires the result projector to the AI Act vocabulary.
func DefaultProjection() report.Projection {
	return report.Projection{
		RiskLevel:            PredHasRiskLevel,
		Criteria:             PredHasCriteria,
		Requirement:          PredHasRequirement,
		Article5Exception:    PredHasArticle5Exception,
		RequiresNotification: PredRequiresNotification,
		NotificationDeadline: PredNotificationDeadlineDs,
	}
}
