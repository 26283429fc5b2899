package engine

import (
	"time"

	"github.com/Veraticus/rplmatch/internal/fuzzy"
	"github.com/Veraticus/rplmatch/internal/model"
	"github.com/google/uuid"
)

// State is the lifecycle position of a Session.
type State int

// Session states. A session moves Idle -> Running -> Completed or Failed
// and is never reused.
const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session carries everything one batch run reads and produces. It replaces
// any shared application state: callers build one, hand it to Matcher.Run and
// read the outcome from it. A Session is not safe for concurrent use.
type Session struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Err        error
	Candidates *fuzzy.CandidateSet
	Selector   model.FieldSelector
	ID         string
	Records    []model.Record
	Results    []model.MatchResult
	Progress   int
	state      State
}

// NewSession prepares an idle session for records.
func NewSession(records []model.Record, selector model.FieldSelector) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Records:  records,
		Selector: selector,
	}
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.state
}

// Duration returns how long the run took, or zero if it has not finished.
func (s *Session) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

func (s *Session) start() {
	s.state = StateRunning
	s.StartedAt = time.Now()
}

func (s *Session) complete(results []model.MatchResult) {
	s.state = StateCompleted
	s.Results = results
	s.FinishedAt = time.Now()
}

func (s *Session) fail(err error) error {
	s.state = StateFailed
	s.Results = nil
	s.Err = err
	s.FinishedAt = time.Now()
	return err
}
