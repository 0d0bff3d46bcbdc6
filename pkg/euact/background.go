package euact

import "github.com/cartesiosson/ai-act-project-sub003/pkg/triple"

// DefaultBackground returns the static EU AI Act background graph: which
// purposes, contexts and data types activate which criteria, which tier
// and obligations each criterion carries, the Art. 5 exception edge, the
// scope exclusion/override pairs, and the incident notification table.
//
// The graph is assembled fresh per call; callers treat the result as an
// immutable snapshot shared across evaluations.
func DefaultBackground() *triple.Store {
	s := triple.NewStore()

	e := func(sub triple.EntityID, p triple.PredicateID, obj triple.Object) {
		s.Insert(triple.T(sub, p, obj))
	}

	// Purpose activation.
	e(PurposeBiometricIdentification, PredActivatesCriterion, CriterionBiometricIdentification)
	e(PurposeEducationAccess, PredActivatesCriterion, CriterionEducationAccess)
	e(PurposeCreditScoring, PredActivatesCriterion, CriterionCreditScoring)
	e(PurposeMedicalDiagnosis, PredActivatesCriterion, CriterionMedicalDevice)
	e(PurposeEmotionRecognition, PredActivatesCriterion, CriterionEmotionRecognition)
	e(PurposeConversationalAgent, PredActivatesCriterion, CriterionChatbotTransparency)

	// Context triggering.
	e(ContextEducation, PredTriggersCriterion, CriterionEducationAccess)
	e(ContextWorkplace, PredTriggersCriterion, CriterionWorkplaceMonitoring)

	// Data-type signalling.
	e(DataTypeBiometric, PredSignalsCriterion, CriterionBiometricIdentification)
	e(DataTypeHealth, PredSignalsCriterion, CriterionMedicalDevice)

	// Risk tier per criterion. Prohibited-practice criteria always carry
	// the top tier.
	e(CriterionRealTimeBiometric, PredAssignsRiskLevel, RiskUnacceptable)
	e(CriterionSocialScoring, PredAssignsRiskLevel, RiskUnacceptable)
	e(CriterionSubliminalManipulation, PredAssignsRiskLevel, RiskUnacceptable)
	e(CriterionBiometricIdentification, PredAssignsRiskLevel, RiskHigh)
	e(CriterionEducationAccess, PredAssignsRiskLevel, RiskHigh)
	e(CriterionCreditScoring, PredAssignsRiskLevel, RiskHigh)
	e(CriterionMedicalDevice, PredAssignsRiskLevel, RiskHigh)
	e(CriterionWorkplaceMonitoring, PredAssignsRiskLevel, RiskHigh)
	e(CriterionEmotionRecognition, PredAssignsRiskLevel, RiskLimited)
	e(CriterionChatbotTransparency, PredAssignsRiskLevel, RiskLimited)
	e(CriterionCatchAll, PredAssignsRiskLevel, RiskMinimal)

	// Obligations per criterion. Prohibited criteria activate none:
	// a banned practice has nothing to document, only to stop.
	highRisk := []triple.EntityID{
		CriterionEducationAccess,
		CriterionCreditScoring,
		CriterionMedicalDevice,
		CriterionWorkplaceMonitoring,
	}
	for _, c := range highRisk {
		e(c, PredActivatesRequirement, ReqRiskManagement)
		e(c, PredActivatesRequirement, ReqDataGovernance)
		e(c, PredActivatesRequirement, ReqTechnicalDocumentation)
		e(c, PredActivatesRequirement, ReqHumanOversight)
		e(c, PredActivatesRequirement, ReqAccuracyRobustness)
		e(c, PredActivatesRequirement, ReqConformityAssessment)
		e(c, PredActivatesRequirement, ReqRegistration)
	}
	e(CriterionEmotionRecognition, PredActivatesRequirement, ReqTransparencyNotice)
	e(CriterionChatbotTransparency, PredActivatesRequirement, ReqTransparencyNotice)

	// Requirement chain: education access implies the minors-protection
	// flag, which in turn implies parental consent. Deriving the consent
	// obligation takes two chained rule applications.
	e(CriterionEducationAccess, PredImpliesNormativeFlag, FlagProtectionOfMinors)
	e(FlagProtectionOfMinors, PredFlagActivatesRequirement, ReqParentalConsent)

	// Art. 5 exception: only real-time biometric identification admits
	// one, and only with judicial authorization.
	e(CriterionRealTimeBiometric, PredAdmitsException, ExceptionJudicialSearch)

	// Scope exclusions and overrides. Exclusion is defeasible: a
	// military or research purpose takes the system out of scope unless
	// a deployment context brings it back.
	e(PurposeMilitaryDefence, PredMayBeExcludedBy, ExclusionMilitaryDefence)
	e(PurposeScientificResearch, PredMayBeExcludedBy, ExclusionScientificResearch)
	e(ContextCivilianUse, PredOverridesExclusion, ExclusionMilitaryDefence)
	e(ContextCommercial, PredOverridesExclusion, ExclusionScientificResearch)

	// Incident notification table (Art. 73 deadlines, in days).
	e(IncidentFundamentalRights, PredTriggersNotification, triple.Bool(true))
	e(IncidentFundamentalRights, PredNotificationDeadlineDs, triple.Int(15))
	e(IncidentDeathOrSeriousHarm, PredTriggersNotification, triple.Bool(true))
	e(IncidentDeathOrSeriousHarm, PredNotificationDeadlineDs, triple.Int(10))
	e(IncidentCriticalInfrastructure, PredTriggersNotification, triple.Bool(true))
	e(IncidentCriticalInfrastructure, PredNotificationDeadlineDs, triple.Int(2))
	e(IncidentMinorMalfunction, PredTriggersNotification, triple.Bool(false))

	return s
}
