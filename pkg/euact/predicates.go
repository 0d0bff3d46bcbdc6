// Package euact ships the default EU AI Act vocabulary, background
// knowledge graph and rule catalog interpreted by the inference engine.
// Part of the aicomply Semantic Compliance Oracle (SCO).
//
// Everything here is data. The engine knows nothing about the AI Act;
// regulation changes land in this package, not in pkg/inference.
package euact

import "github.com/cartesiosson/ai-act-project-sub003/pkg/triple"

// Predicates asserted about a system by the caller (manual entry or the
// LLM fact extractor).
const (
	PredIsAISystem            triple.PredicateID = "isAISystem"
	PredHasPurpose            triple.PredicateID = "hasPurpose"
	PredHasDeploymentContext  triple.PredicateID = "hasDeploymentContext"
	PredHasDataType           triple.PredicateID = "hasDataType"
	PredHasProhibitedPractice triple.PredicateID = "hasProhibitedPractice"
	PredHasLegalException     triple.PredicateID = "hasLegalException"
	PredHasJudicialAuth       triple.PredicateID = "hasJudicialAuthorization"
	PredHasIncidentType       triple.PredicateID = "hasIncidentType"
)

// Predicates derived by the engine.
const (
	PredHasCriteria            triple.PredicateID = "hasCriteria"
	PredHasRiskLevel           triple.PredicateID = "hasRiskLevel"
	PredHasRequirement         triple.PredicateID = "hasRequirement"
	PredHasNormativeFlag       triple.PredicateID = "hasNormativeFlag"
	PredHasExceptionApplies    triple.PredicateID = "hasExceptionApplies"
	PredHasArticle5Exception   triple.PredicateID = "hasArticle5Exception"
	PredHasPotentialExclusion  triple.PredicateID = "hasPotentialScopeExclusion"
	PredIsInScope              triple.PredicateID = "isInScope"
	PredRequiresNotification   triple.PredicateID = "requiresNotification"
	PredNotificationDeadlineDs triple.PredicateID = "notificationDeadlineDays"
)

// Predicates of the static background graph.
const (
	PredActivatesCriterion       triple.PredicateID = "activatesCriterion"
	PredTriggersCriterion        triple.PredicateID = "triggersCriterion"
	PredSignalsCriterion         triple.PredicateID = "signalsCriterion"
	PredAssignsRiskLevel         triple.PredicateID = "assignsRiskLevel"
	PredActivatesRequirement     triple.PredicateID = "activatesRequirement"
	PredImpliesNormativeFlag     triple.PredicateID = "impliesNormativeFlag"
	PredFlagActivatesRequirement triple.PredicateID = "flagActivatesRequirement"
	PredAdmitsException          triple.PredicateID = "admitsException"
	PredMayBeExcludedBy          triple.PredicateID = "mayBeExcludedBy"
	PredOverridesExclusion       triple.PredicateID = "overridesExclusion"
	PredTriggersNotification     triple.PredicateID = "triggersNotification"
)
