// Package evaluation orchestrates one compliance evaluation: it assembles
// the working graph from the background knowledge and the client-supplied
// system facts, runs the forward-chaining engine to fixpoint, applies the
// risk and scope resolvers, and projects the result.
package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/unicode/norm"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/audit"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/catalog"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/euact"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/ledger"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/observability"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/report"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

// ErrEmptySystemID is returned when a request names no system.
var ErrEmptySystemID = errors.New("empty system id")

// ErrInvalidFact is returned when a client-supplied fact cannot be decoded.
var ErrInvalidFact = errors.New("invalid fact")

// Fact is one client-supplied statement about the system under evaluation.
// Kind selects the object encoding: "entity", "string", "int" or "bool".
type Fact struct {
	Predicate string          `json:"predicate"`
	Kind      string          `json:"kind"`
	Value     json.RawMessage `json:"value"`
}

// Request describes one system to classify.
type Request struct {
	SystemID string `json:"system_id"`
	Facts    []Fact `json:"facts"`
}

// Evaluation wraps a deterministic result with request-scoped identity.
// The result itself carries no volatile fields, so re-evaluating the same
// facts yields a byte-identical Result under a fresh ID.
type Evaluation struct {
	ID             string                   `json:"id"`
	Timestamp      time.Time                `json:"timestamp"`
	CatalogVersion string                   `json:"catalog_version"`
	EngineVersion  string                   `json:"engine_version"`
	Result         *report.EvaluationResult `json:"result"`
}

// Config assembles a Service. Zero-value fields fall back to the built-in
// EU AI Act catalog, background knowledge and policies.
type Config struct {
	Catalog    *catalog.Catalog
	Background *triple.Store
	Engine     inference.Config
	Risk       inference.RiskPolicy
	Scope      inference.ScopePolicy
	Exception  inference.ExceptionPolicy
	Projection report.Projection

	Ledger ledger.Store             // optional; evaluations are not persisted when nil
	Audit  audit.Logger             // optional; defaults to a no-op logger
	Obs    *observability.Provider  // optional
	Logger *slog.Logger
}

// Service evaluates systems against a fixed catalog and background graph.
// It is safe for concurrent use: every evaluation works on its own store.
type Service struct {
	catalog    *catalog.Catalog
	background *triple.Store
	engine     *inference.Engine
	risk       inference.RiskPolicy
	scope      inference.ScopePolicy
	exception  inference.ExceptionPolicy
	projection report.Projection

	ledger ledger.Store
	audit  audit.Logger
	obs    *observability.Provider
	logger *slog.Logger
}

// New validates the catalog against the running engine version and returns
// a ready Service.
func New(cfg Config) (*Service, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = euact.DefaultCatalog()
	}
	if cfg.Background == nil {
		cfg.Background = euact.DefaultBackground()
	}
	if cfg.Risk.RiskLevel == "" {
		cfg.Risk = euact.DefaultRiskPolicy()
	}
	if cfg.Scope.PotentialExclusion == "" {
		cfg.Scope = euact.DefaultScopePolicy()
	}
	if cfg.Exception.LegalException == "" {
		cfg.Exception = euact.DefaultExceptionPolicy()
	}
	if cfg.Projection.RiskLevel == "" {
		cfg.Projection = euact.DefaultProjection()
	}
	if cfg.Engine.MaxPasses == 0 {
		cfg.Engine = inference.DefaultConfig()
	}
	if cfg.Audit == nil {
		cfg.Audit = audit.Nop()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if err := cfg.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if err := cfg.Catalog.CheckEngine(inference.Version); err != nil {
		return nil, err
	}

	return &Service{
		catalog:    cfg.Catalog,
		background: cfg.Background,
		engine:     inference.New(cfg.Catalog, cfg.Engine),
		risk:       cfg.Risk,
		scope:      cfg.Scope,
		exception:  cfg.Exception,
		projection: cfg.Projection,
		ledger:     cfg.Ledger,
		audit:      cfg.Audit,
		obs:        cfg.Obs,
		logger:     cfg.Logger.With("component", "evaluation"),
	}, nil
}

// Catalog returns the catalog the service evaluates against.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Evaluate classifies one system. The working graph is assembled fresh
// (background + normalized facts + the implicit is-AI-system seed), chained
// to fixpoint, resolved, and projected into a deterministic result.
func (s *Service) Evaluate(ctx context.Context, req Request) (eval *Evaluation, err error) {
	systemID := norm.NFC.String(strings.TrimSpace(req.SystemID))
	if systemID == "" {
		return nil, ErrEmptySystemID
	}
	system := triple.EntityID(systemID)

	if s.obs != nil {
		var done func(error)
		ctx, done = s.obs.TrackEvaluation(ctx, "evaluation.evaluate",
			attribute.String("system.id", systemID),
			attribute.String("catalog.version", s.catalog.Version),
		)
		defer func() { done(err) }()
	}

	facts, err := decodeFacts(system, req.Facts)
	if err != nil {
		return nil, err
	}

	working := triple.NewStore()
	working.Merge(s.background)
	for _, f := range facts {
		working.Insert(f)
	}
	// Every evaluated subject is an AI system. The seed fires the
	// catch-all criterion so a fact set matching nothing still lands on
	// the minimal tier.
	working.Insert(triple.T(system, euact.PredIsAISystem, triple.Bool(true)))

	if err = inference.CheckExceptionAmbiguity(working, system, s.exception); err != nil {
		return nil, err
	}

	stats, err := s.engine.Run(working)
	if err != nil {
		return nil, err
	}

	riskLevel, article5, err := inference.ResolveRisk(working, system, s.risk)
	if err != nil {
		return nil, err
	}
	scope := inference.ResolveScope(working, system, s.scope)

	result, err := report.Project(working, s.background, facts, system, scope, stats.Passes, s.projection)
	if err != nil {
		return nil, err
	}

	eval = &Evaluation{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		CatalogVersion: s.catalog.Version,
		EngineVersion:  inference.Version,
		Result:         result,
	}

	s.logger.InfoContext(ctx, "evaluation complete",
		"evaluation_id", eval.ID,
		"system_id", systemID,
		"risk_level", string(riskLevel),
		"article5_exception", article5,
		"in_scope", scope.InScope,
		"passes", stats.Passes,
		"derived", stats.Derived,
	)
	if s.obs != nil {
		s.obs.RecordEvaluation(ctx, stats.Passes,
			attribute.String("risk.level", string(riskLevel)),
		)
	}
	_ = s.audit.Record(ctx, audit.EventEvaluation, "evaluate", systemID, map[string]any{
		"evaluation_id": eval.ID,
		"risk_level":    string(riskLevel),
		"result_hash":   result.ResultHash,
	})

	if s.ledger != nil {
		if err := s.persist(ctx, eval); err != nil {
			return nil, err
		}
	}

	return eval, nil
}

func (s *Service) persist(ctx context.Context, eval *Evaluation) error {
	payload, err := json.Marshal(eval.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	rec := ledger.Record{
		ID:             eval.ID,
		SystemID:       eval.Result.SystemID,
		CatalogVersion: eval.CatalogVersion,
		EngineVersion:  eval.EngineVersion,
		ResultHash:     eval.Result.ResultHash,
		CreatedAt:      eval.Timestamp,
		Result:         payload,
	}
	if err := s.ledger.Append(ctx, rec); err != nil {
		return fmt.Errorf("persist evaluation %s: %w", eval.ID, err)
	}
	return nil
}

// decodeFacts turns wire facts into triples about the system. Entity and
// string objects are NFC-normalized so visually identical inputs unify.
func decodeFacts(system triple.EntityID, facts []Fact) ([]triple.Triple, error) {
	out := make([]triple.Triple, 0, len(facts))
	for i, f := range facts {
		if f.Predicate == "" {
			return nil, fmt.Errorf("%w %d: empty predicate", ErrInvalidFact, i)
		}
		obj, err := triple.DecodeObject(f.Kind, f.Value)
		if err != nil {
			return nil, fmt.Errorf("%w %d (%s): %v", ErrInvalidFact, i, f.Predicate, err)
		}
		switch o := obj.(type) {
		case triple.EntityID:
			obj = triple.EntityID(norm.NFC.String(string(o)))
		case triple.Str:
			obj = triple.Str(norm.NFC.String(string(o)))
		}
		out = append(out, triple.T(system, triple.PredicateID(f.Predicate), obj))
	}
	return out, nil
}
