package euact

import "github.com/cartesiosson/ai-act-project-sub003/pkg/triple"

// Risk tiers, ordered Unacceptable > High > Limited > Minimal.
const (
	RiskUnacceptable triple.EntityID = "RiskUnacceptable"
	RiskHigh         triple.EntityID = "RiskHigh"
	RiskLimited      triple.EntityID = "RiskLimited"
	RiskMinimal      triple.EntityID = "RiskMinimal"
)

// SeverityOrder lists the tiers from most to least severe. The risk
// hierarchy resolver keeps exactly one tier following this order.
func SeverityOrder() []triple.EntityID {
	return []triple.EntityID{RiskUnacceptable, RiskHigh, RiskLimited, RiskMinimal}
}

// Declared purposes.
const (
	PurposeBiometricIdentification triple.EntityID = "PurposeBiometricIdentification"
	PurposeEducationAccess         triple.EntityID = "PurposeEducationAccess"
	PurposeCreditScoring           triple.EntityID = "PurposeCreditScoring"
	PurposeMedicalDiagnosis        triple.EntityID = "PurposeMedicalDiagnosis"
	PurposeEmotionRecognition      triple.EntityID = "PurposeEmotionRecognition"
	PurposeConversationalAgent     triple.EntityID = "PurposeConversationalAgent"
	PurposeMilitaryDefence         triple.EntityID = "PurposeMilitaryDefence"
	PurposeScientificResearch      triple.EntityID = "PurposeScientificResearch"
)

// Deployment contexts.
const (
	ContextPublicSpace    triple.EntityID = "ContextPublicSpace"
	ContextEducation      triple.EntityID = "ContextEducation"
	ContextWorkplace      triple.EntityID = "ContextWorkplace"
	ContextLawEnforcement triple.EntityID = "ContextLawEnforcement"
	ContextCommercial     triple.EntityID = "ContextCommercial"
	ContextCivilianUse    triple.EntityID = "ContextCivilianUse"
)

// Data types.
const (
	DataTypeBiometric triple.EntityID = "DataTypeBiometric"
	DataTypeHealth    triple.EntityID = "DataTypeHealth"
	DataTypePersonal  triple.EntityID = "DataTypePersonal"
)

// Prohibited-practice criteria (Art. 5). These always assign the
// Unacceptable tier and carry no ordinary obligations: prohibited
// practices bypass the high-risk requirement set.
const (
	CriterionRealTimeBiometric      triple.EntityID = "CriterionRealTimeBiometricIdentification"
	CriterionSocialScoring          triple.EntityID = "CriterionSocialScoring"
	CriterionSubliminalManipulation triple.EntityID = "CriterionSubliminalManipulation"
)

// Ordinary criteria.
const (
	CriterionBiometricIdentification triple.EntityID = "CriterionBiometricIdentification"
	CriterionEducationAccess         triple.EntityID = "CriterionEducationAccess"
	CriterionCreditScoring           triple.EntityID = "CriterionCreditScoring"
	CriterionMedicalDevice           triple.EntityID = "CriterionMedicalDevice"
	CriterionEmotionRecognition      triple.EntityID = "CriterionEmotionRecognition"
	CriterionChatbotTransparency     triple.EntityID = "CriterionChatbotTransparency"
	CriterionWorkplaceMonitoring     triple.EntityID = "CriterionWorkplaceMonitoring"

	// CriterionCatchAll classifies systems no other criterion reaches.
	// It exists so every evaluated system resolves to at least Minimal;
	// without it an unmatched system would be an engine defect
	// (ErrMissingRiskLevel), not a legitimate outcome.
	CriterionCatchAll triple.EntityID = "CriterionCatchAll"
)

// Requirements (Title III, Chapter 2 style obligations).
const (
	ReqRiskManagement         triple.EntityID = "ReqRiskManagementSystem"
	ReqDataGovernance         triple.EntityID = "ReqDataGovernance"
	ReqTechnicalDocumentation triple.EntityID = "ReqTechnicalDocumentation"
	ReqHumanOversight         triple.EntityID = "ReqHumanOversight"
	ReqAccuracyRobustness     triple.EntityID = "ReqAccuracyRobustness"
	ReqConformityAssessment   triple.EntityID = "ReqConformityAssessment"
	ReqRegistration           triple.EntityID = "ReqEUDatabaseRegistration"
	ReqTransparencyNotice     triple.EntityID = "ReqTransparencyNotice"
	ReqParentalConsent        triple.EntityID = "ReqParentalConsent"
)

// Normative flags: intermediate derivations between a criterion and the
// requirement it ultimately implies.
const (
	FlagProtectionOfMinors triple.EntityID = "FlagProtectionOfMinors"
)

// Legal exceptions (Art. 5(1)(h): targeted judicial search).
const (
	ExceptionJudicialSearch triple.EntityID = "ExceptionTargetedJudicialSearch"
)

// Scope exclusions and the contexts that override them.
const (
	ExclusionMilitaryDefence    triple.EntityID = "ExclusionMilitaryDefence"
	ExclusionScientificResearch triple.EntityID = "ExclusionScientificResearch"
)

// Incident types (Art. 73 serious-incident reporting).
const (
	IncidentFundamentalRights      triple.EntityID = "IncidentFundamentalRightsInfringement"
	IncidentDeathOrSeriousHarm     triple.EntityID = "IncidentDeathOrSeriousHarm"
	IncidentCriticalInfrastructure triple.EntityID = "IncidentCriticalInfrastructureDisruption"
	IncidentMinorMalfunction       triple.EntityID = "IncidentMinorMalfunction"
)
