// Package catalog defines the declarative rule catalog interpreted by the
// forward-chaining engine. Part of the aicomply Semantic Compliance Oracle
// (SCO).
//
// A rule is pure data: a conjunction of triple patterns (the body) and one
// or more triples to assert (the head). The engine never special-cases a
// rule. Adding regulation logic means adding rows here, not touching
// engine code.
package catalog

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/google/cel-go/cel"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

// Group labels the conceptual layer a rule belongs to. Groups document
// intent and structure reports; the engine itself is order-independent
// across groups.
type Group string

const (
	GroupActivation  Group = "activation"  // purpose/context → criterion
	GroupProhibited  Group = "prohibited"  // prohibited practice → criterion
	GroupRisk        Group = "risk"        // criterion → risk level
	GroupRequirement Group = "requirement" // criterion/flag → requirement chains
	GroupException   Group = "exception"   // Art. 5 exception marker
	GroupScope       Group = "scope"       // exclusion / override derivation
	GroupIncident    Group = "incident"    // incident → notification duty
)

// Rule is one declarative inference rule.
type Rule struct {
	ID    string
	Group Group
	Body  []triple.Pattern
	Head  []triple.Pattern

	// Guard is an optional CEL expression over the body's bindings.
	// A false guard suppresses the head for that binding; a guard
	// evaluation error aborts the whole run (rules are never silently
	// skipped).
	Guard string

	program cel.Program
}

// Catalog is an ordered list of rules plus versioning metadata.
type Catalog struct {
	Version   string
	MinEngine string
	Rules     []*Rule
}

// Validate checks structural soundness and compiles guards. It must be
// called once before the catalog is handed to the engine; malformed
// catalogs are configuration errors caught here, at load time.
func (c *Catalog) Validate() error {
	if len(c.Rules) == 0 {
		return fmt.Errorf("catalog has no rules")
	}
	seen := make(map[string]bool, len(c.Rules))
	for _, r := range c.Rules {
		if r.ID == "" {
			return fmt.Errorf("rule with empty id")
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true
		if len(r.Body) == 0 {
			return fmt.Errorf("rule %s: empty body", r.ID)
		}
		if len(r.Head) == 0 {
			return fmt.Errorf("rule %s: empty head", r.ID)
		}
		if err := r.checkHeadVars(); err != nil {
			return fmt.Errorf("rule %s: %w", r.ID, err)
		}
		if err := r.compileGuard(); err != nil {
			return fmt.Errorf("rule %s: guard: %w", r.ID, err)
		}
	}
	return nil
}

// CheckEngine verifies the running engine satisfies the catalog's
// min_engine constraint.
func (c *Catalog) CheckEngine(engineVersion string) error {
	if c.MinEngine == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(">= " + c.MinEngine)
	if err != nil {
		return fmt.Errorf("invalid min_engine %q: %w", c.MinEngine, err)
	}
	v, err := semver.NewVersion(engineVersion)
	if err != nil {
		return fmt.Errorf("invalid engine version %q: %w", engineVersion, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("catalog requires engine >= %s, running %s", c.MinEngine, engineVersion)
	}
	return nil
}

// BodyVars returns the distinct variables bound by the rule body.
func (r *Rule) BodyVars() []triple.Var {
	seen := make(map[triple.Var]bool)
	var out []triple.Var
	for _, p := range r.Body {
		for _, v := range p.Vars() {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

func (r *Rule) checkHeadVars() error {
	bound := make(map[triple.Var]bool)
	for _, v := range r.BodyVars() {
		bound[v] = true
	}
	for _, h := range r.Head {
		for _, v := range h.Vars() {
			if !bound[v] {
				return fmt.Errorf("head variable ?%s not bound by body", v)
			}
		}
	}
	return nil
}

// compileGuard compiles the guard expression, declaring every body
// variable as a dynamic CEL variable.
func (r *Rule) compileGuard() error {
	if r.Guard == "" {
		return nil
	}
	opts := make([]cel.EnvOption, 0, len(r.BodyVars()))
	for _, v := range r.BodyVars() {
		opts = append(opts, cel.Variable(string(v), cel.DynType))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return fmt.Errorf("cel environment: %w", err)
	}
	ast, issues := env.Compile(r.Guard)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("compile %q: %w", r.Guard, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return fmt.Errorf("program %q: %w", r.Guard, err)
	}
	r.program = prg
	return nil
}

// GuardAllows evaluates the guard under a binding. Rules without a guard
// always pass.
func (r *Rule) GuardAllows(b triple.Binding) (bool, error) {
	if r.program == nil {
		return true, nil
	}
	input := make(map[string]any, len(b))
	for v, o := range b {
		input[string(v)] = celValue(o)
	}
	out, _, err := r.program.Eval(input)
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", r.Guard, err)
	}
	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("guard %q is not boolean", r.Guard)
	}
	return allowed, nil
}

func celValue(o triple.Object) any {
	switch v := o.(type) {
	case triple.EntityID:
		return string(v)
	case triple.Str:
		return string(v)
	case triple.Int:
		return int64(v)
	case triple.Bool:
		return bool(v)
	default:
		return o.Key()
	}
}
