// Package inference implements the forward-chaining engine, the risk
// hierarchy resolver and the scope resolver. Part of the aicomply Semantic
// Compliance Oracle (SCO).
package inference

import "errors"

// Version is the engine version checked against a catalog's min_engine
// constraint.
const Version = "1.2.0"

var (
	// ErrInferenceDiverged reports that the fixpoint loop hit its
	// iteration ceiling. A catalog that cannot reach fixpoint within the
	// ceiling is a configuration defect, never a legitimate outcome.
	ErrInferenceDiverged = errors.New("inference diverged: iteration ceiling exceeded")

	// ErrMissingRiskLevel reports that fixpoint produced zero risk-level
	// facts for the system, which means the background graph lacks a
	// catch-all criterion.
	ErrMissingRiskLevel = errors.New("no risk level derived: background graph is incomplete")

	// ErrAmbiguousException reports conflicting judicial-authorization
	// facts alongside a legal exception. Resolving this needs legal
	// judgment, so it is surfaced to the caller, never auto-resolved.
	ErrAmbiguousException = errors.New("ambiguous legal exception: conflicting authorization facts")
)
