package loader

import "github.com/KovyD20/Video-games-database-project/internal/catalog"

// State is the loader state.
type State int

const (
	// StateIdle accepts the next Trigger.
	StateIdle State = iota
	// StateLoading means a request is in flight.
	StateLoading
	// StateExhausted is terminal: the source returned an empty page.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Outcome reports what a Trigger call did.
type Outcome int

const (
	// OutcomeSkipped means no request was issued.
	OutcomeSkipped Outcome = iota
	// OutcomeAdvanced means a non-empty page was merged.
	OutcomeAdvanced
	// OutcomeExhausted means the page was empty and loading stopped.
	OutcomeExhausted
	// OutcomeFailed means the request failed and nothing changed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the catalog state.
type Snapshot struct {
	Items    []catalog.Item
	NextPage int
	Loading  bool
	HasMore  bool
	State    State
}
