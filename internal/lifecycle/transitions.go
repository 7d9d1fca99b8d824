// Package lifecycle defines the state machine for job alert matches.
//
// Valid status graph:
//
//	new ──► viewed ──► applied
//	 │         │
//	 └─────────┴─────► dismissed
//
// applied and dismissed are terminal states.
package lifecycle

import (
	"fmt"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[model.MatchStatus][]model.MatchStatus{
	model.MatchNew:    {model.MatchViewed, model.MatchDismissed},
	model.MatchViewed: {model.MatchApplied, model.MatchDismissed},
	// applied and dismissed are terminal, no outgoing transitions
}

// ParseStatus converts a raw string to a MatchStatus, returning an error for
// unknown values.
func ParseStatus(s string) (model.MatchStatus, error) {
	st := model.MatchStatus(s)
	switch st {
	case model.MatchNew, model.MatchViewed, model.MatchApplied, model.MatchDismissed:
		return st, nil
	}
	return "", fmt.Errorf("unknown match status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to model.MatchStatus) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true when no further transition can leave status.
func IsTerminal(status model.MatchStatus) bool {
	_, ok := validTransitions[status]
	return !ok
}
