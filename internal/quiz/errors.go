package quiz

import "errors"

var (
	// ErrExhaustedQuestions means no eligible question remains even after
	// widening the candidate pool. The caller must finalize the round.
	ErrExhaustedQuestions = errors.New("no questions remaining")

	// ErrNoActiveQuestion means an answer was submitted or an advance was
	// requested with no unanswered question loaded. This is an ordering
	// error by the host; session state is unaffected.
	ErrNoActiveQuestion = errors.New("no active question")

	// ErrSessionNotFinished means a summary was requested before the
	// session reached its terminal state.
	ErrSessionNotFinished = errors.New("session not finished")

	// ErrNoWeakAreas means a weak-area round was requested with no
	// candidate clusters. The host should offer a normal round instead.
	ErrNoWeakAreas = errors.New("no weak areas recorded")

	// ErrInvalidConfig means the session configuration is unusable
	// (non-positive question target or unknown subject).
	ErrInvalidConfig = errors.New("invalid session configuration")
)
