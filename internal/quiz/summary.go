package quiz

import "github.com/eduline/eduline/internal/cluster"

// Summary is the record of a finished round, ready for persistence.
// WeakTopics resolves each missed cluster to its topic label.
type Summary struct {
	Subject        string
	Mode           Mode
	Score          int
	TotalQuestions int
	ProgressRatio  float64 // questions completed / question target
	WeakTopics     map[string]int
}

// Summary extracts the round's result. Only valid once the session has
// finished; earlier calls return ErrSessionNotFinished.
func (s *Session) Summary() (*Summary, error) {
	if s.state != PhaseFinished {
		return nil, ErrSessionNotFinished
	}

	// Weak-only rounds pre-seed their candidates at zero; those entries
	// are kept so the host can see which areas were cleanly retried.
	topics := make(map[string]int)
	for c, misses := range s.tally {
		topics[cluster.TopicLabel(c, s.subject)] += misses
	}

	return &Summary{
		Subject:        s.subject,
		Mode:           s.mode,
		Score:          s.score,
		TotalQuestions: s.totalQuestions,
		ProgressRatio:  s.Progress(),
		WeakTopics:     topics,
	}, nil
}
