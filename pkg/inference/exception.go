package inference

import (
	"fmt"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/triple"
)

// ExceptionPolicy names the predicates involved in the Art. 5 legal
// exception check.
type ExceptionPolicy struct {
	LegalException        triple.PredicateID
	JudicialAuthorization triple.PredicateID
}

// CheckExceptionAmbiguity validates the asserted exception facts before
// chaining starts. A system that asserts a legal exception together with
// both a true and a false judicial-authorization fact is ambiguous input:
// the engine cannot know which one the extractor meant, and guessing would
// be a legal judgment. Surfaced as ErrAmbiguousException for the caller to
// disambiguate.
func CheckExceptionAmbiguity(store *triple.Store, system triple.EntityID, p ExceptionPolicy) error {
	if len(store.Objects(system, p.LegalException)) == 0 {
		return nil
	}
	sawTrue, sawFalse := false, false
	for _, o := range store.Objects(system, p.JudicialAuthorization) {
		if b, ok := o.(triple.Bool); ok {
			if bool(b) {
				sawTrue = true
			} else {
				sawFalse = true
			}
		}
	}
	if sawTrue && sawFalse {
		return fmt.Errorf("system %s: %w", system, ErrAmbiguousException)
	}
	return nil
}
