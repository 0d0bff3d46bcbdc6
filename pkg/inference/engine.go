package inference

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/catalog"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

// Config tunes the forward-chaining engine.
type Config struct {
	// MaxPasses is the fixpoint iteration ceiling. Exceeding it aborts
	// the evaluation with ErrInferenceDiverged.
	MaxPasses int

	// Parallel switches a pass to concurrent rule-body matching against
	// a per-pass snapshot, with derived triples buffered and merged
	// serially at the end of the pass. The rule set is confluent (all
	// rules are purely additive), so both modes reach the same fixpoint.
	Parallel bool

	// Workers bounds the matcher goroutines in parallel mode.
	Workers int
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{MaxPasses: 100, Parallel: false, Workers: 4}
}

// Stats reports what a run did.
type Stats struct {
	Passes  int `json:"passes"`
	Derived int `json:"derived"`
}

// Engine applies a rule catalog to a working graph until fixpoint.
// It is stateless between runs and safe to share across evaluations as
// long as each evaluation owns its working store.
type Engine struct {
	catalog *catalog.Catalog
	cfg     Config
	logger  *slog.Logger
}

// New creates an engine for a validated catalog.
func New(c *catalog.Catalog, cfg Config) *Engine {
	if cfg.MaxPasses <= 0 {
		cfg.MaxPasses = DefaultConfig().MaxPasses
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	return &Engine{
		catalog: c,
		cfg:     cfg,
		logger:  slog.Default().With("component", "inference"),
	}
}

// Run chains the catalog over the store until a full pass derives nothing
// new, or fails with ErrInferenceDiverged once the ceiling is hit.
func (e *Engine) Run(store *triple.Store) (Stats, error) {
	var stats Stats
	for pass := 1; pass <= e.cfg.MaxPasses; pass++ {
		derived, err := e.Pass(store)
		if err != nil {
			return stats, fmt.Errorf("pass %d: %w", pass, err)
		}
		stats.Passes = pass
		stats.Derived += derived
		if derived == 0 {
			e.logger.Debug("fixpoint reached", "passes", stats.Passes, "derived", stats.Derived)
			return stats, nil
		}
	}
	return stats, fmt.Errorf("%w after %d passes", ErrInferenceDiverged, e.cfg.MaxPasses)
}

// Pass evaluates every rule once and returns the number of newly inserted
// triples. Exposed so tests can verify that an extra pass after fixpoint
// inserts nothing.
func (e *Engine) Pass(store *triple.Store) (int, error) {
	if e.cfg.Parallel {
		return e.parallelPass(store)
	}
	return e.sequentialPass(store)
}

// sequentialPass inserts derivations immediately, so every insertion is
// visible to the rules evaluated after it within the same pass.
func (e *Engine) sequentialPass(store *triple.Store) (int, error) {
	inserted := 0
	for _, rule := range e.catalog.Rules {
		derived, err := deriveRule(rule, store)
		if err != nil {
			return inserted, err
		}
		for _, t := range derived {
			if store.Insert(t) {
				inserted++
			}
		}
	}
	return inserted, nil
}

// parallelPass matches every rule against the same immutable snapshot and
// merges the buffered derivations serially, in catalog order, so every
// rule in the pass sees identical input and no update is lost.
func (e *Engine) parallelPass(store *triple.Store) (int, error) {
	snap := store.Snapshot()
	results := make([][]triple.Triple, len(e.catalog.Rules))
	errs := make([]error, len(e.catalog.Rules))

	sem := make(chan struct{}, e.cfg.Workers)
	var wg sync.WaitGroup
	for i, rule := range e.catalog.Rules {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, rule *catalog.Rule) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = deriveRule(rule, snap)
		}(i, rule)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return 0, fmt.Errorf("rule %s: %w", e.catalog.Rules[i].ID, err)
		}
	}

	inserted := 0
	for _, derived := range results {
		for _, t := range derived {
			if store.Insert(t) {
				inserted++
			}
		}
	}
	return inserted, nil
}

// deriveRule materializes every head instance of one rule against a store.
// A guard or head instantiation failure aborts the run; rules are never
// silently skipped.
func deriveRule(rule *catalog.Rule, store *triple.Store) ([]triple.Triple, error) {
	bindings := matchBody(rule.Body, store)
	var out []triple.Triple
	for _, b := range bindings {
		allowed, err := rule.GuardAllows(b)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
		if !allowed {
			continue
		}
		for _, h := range rule.Head {
			t, err := h.Instantiate(b)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
			}
			out = append(out, t)
		}
	}
	return out, nil
}

// matchBody joins the body atoms left to right, threading bindings.
func matchBody(body []triple.Pattern, store *triple.Store) []triple.Binding {
	bindings := []triple.Binding{{}}
	for _, p := range body {
		var next []triple.Binding
		for _, b := range bindings {
			next = append(next, store.Match(p, b)...)
		}
		if len(next) == 0 {
			return nil
		}
		bindings = next
	}
	return bindings
}
