// Package report projects the augmented working graph into the structured
// evaluation result consumed by the API, the report generator and the
// evidence planner. Part of the aicomply Semantic Compliance Oracle (SCO).
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

// PredicateGroup is one row of the grouped fact projection: a predicate
// and its object values, both in first-insertion order.
type PredicateGroup struct {
	Predicate string   `json:"predicate"`
	Objects   []string `json:"objects"`
}

// EvaluationResult is the complete, deterministic outcome of one
// evaluation. Two runs over identical inputs marshal to identical bytes;
// volatile fields (request id, timestamps) live on the surrounding ledger
// record, not here.
type EvaluationResult struct {
	SystemID                 string                `json:"system_id"`
	RiskLevel                string                `json:"risk_level"`
	Scope                    inference.ScopeDecision `json:"scope"`
	Article5Exception        bool                  `json:"article5_exception"`
	RequiresNotification     bool                  `json:"requires_notification"`
	NotificationDeadlineDays int                   `json:"notification_deadline_days,omitempty"`
	Criteria                 []string              `json:"criteria"`
	Requirements             []string              `json:"requirements"`
	Facts                    []PredicateGroup      `json:"facts"`
	UnresolvedEntities       []string              `json:"unresolved_entities,omitempty"`
	Graph                    []triple.Triple       `json:"graph"`
	Passes                   int                   `json:"passes"`
	GraphHash                string                `json:"graph_hash"`
	ResultHash               string                `json:"result_hash"`
}

// finalize computes the canonical hashes. The result hash covers the
// RFC 8785 canonical form of the result with its own hash field blank, so
// it is reproducible from the stored record.
func (r *EvaluationResult) finalize() error {
	graphHash, err := canonicalHash(r.Graph)
	if err != nil {
		return fmt.Errorf("graph hash: %w", err)
	}
	r.GraphHash = graphHash

	r.ResultHash = ""
	resultHash, err := canonicalHash(r)
	if err != nil {
		return fmt.Errorf("result hash: %w", err)
	}
	r.ResultHash = resultHash
	return nil
}

// canonicalHash returns the SHA-256 hex digest of the RFC 8785 canonical
// JSON form of v.
func canonicalHash(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
