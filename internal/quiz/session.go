// Package quiz implements the adaptive question-selection and
// difficulty-progression engine. A Session owns one learner's round:
// it picks each question's difficulty cluster from answer correctness,
// records per-cluster miss counts, and supports a weak-area-only retry
// mode that draws exclusively from previously missed clusters.
package quiz

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/eduline/eduline/internal/bank"
	"github.com/eduline/eduline/internal/cluster"
)

// Mode selects the question-targeting strategy for a round.
type Mode string

const (
	// ModeNormal adapts difficulty: +1 cluster on a correct answer,
	// -1 on a wrong one, clamped to the subject's range.
	ModeNormal Mode = "normal"

	// ModeWeakOnly draws only from a fixed candidate cluster list and
	// never adapts difficulty on answers.
	ModeWeakOnly Mode = "weak_only"
)

// Phase is the session's position in its answer cycle.
type Phase int

const (
	PhaseAwaitingQuestion Phase = iota // no question loaded
	PhaseAwaitingAnswer                // question loaded, unanswered
	PhaseAnswered                      // feedback available, awaiting advance
	PhaseFinished                      // terminal
)

// QuestionSource supplies filtered question candidates. *bank.Bank
// satisfies it; tests may supply a fixture.
type QuestionSource interface {
	HasSubject(subject string) bool
	QuestionsFor(subject string) []bank.Question
	QuestionsForCluster(subject string, cluster int) []bank.Question
}

// Feedback describes the outcome of one submitted answer.
type Feedback struct {
	Correct    bool
	CorrectKey string // key of the correct option
	CorrectAns string // text of the correct option
}

// Config configures a new Session.
type Config struct {
	Subject        string
	TotalQuestions int
	Mode           Mode  // defaults to ModeNormal
	WeakCandidates []int // required for ModeWeakOnly
	Rand           *rand.Rand
}

// Session is one learner's in-progress round. It is owned exclusively
// by that round and is never mutated concurrently; every operation runs
// to completion before the next is invoked.
type Session struct {
	src   QuestionSource
	rng   *rand.Rand
	state Phase

	subject        string
	mode           Mode
	totalQuestions int

	cluster    int
	index      int // questions advanced past, 0-based
	score      int
	used       map[int]bool
	current    *bank.Question
	feedback   *Feedback
	tally      map[int]int // cluster → miss count
	candidates []int       // fixed for ModeWeakOnly
}

// NewSession validates cfg and creates a fresh Session positioned at
// the subject's starting cluster.
func NewSession(src QuestionSource, cfg Config) (*Session, error) {
	if cfg.TotalQuestions < 1 {
		return nil, fmt.Errorf("%w: total questions %d, need at least 1", ErrInvalidConfig, cfg.TotalQuestions)
	}
	if !src.HasSubject(cfg.Subject) {
		return nil, fmt.Errorf("%w: unknown subject %q", ErrInvalidConfig, cfg.Subject)
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeNormal
	}

	tally := make(map[int]int)
	var candidates []int
	if mode == ModeWeakOnly {
		if len(cfg.WeakCandidates) == 0 {
			return nil, ErrNoWeakAreas
		}
		candidates = make([]int, len(cfg.WeakCandidates))
		copy(candidates, cfg.WeakCandidates)
		for _, c := range candidates {
			tally[c] = 0
		}
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Session{
		src:            src,
		rng:            rng,
		state:          PhaseAwaitingQuestion,
		subject:        cfg.Subject,
		mode:           mode,
		totalQuestions: cfg.TotalQuestions,
		cluster:        cluster.StartCluster(cfg.Subject, candidates),
		used:           make(map[int]bool),
		tally:          tally,
		candidates:     candidates,
	}, nil
}

// NextQuestion selects the next question for the current target cluster,
// marks it used, and loads it as the current question. If the target
// cluster has no unused questions left, the pool widens — to the weak
// candidate clusters in weak-only mode, otherwise to the whole subject.
// Returns ErrExhaustedQuestions when even the widened pool is empty;
// the caller must then finalize the round.
func (s *Session) NextQuestion() (*bank.Question, error) {
	switch s.state {
	case PhaseAwaitingAnswer:
		return s.current, nil // already loaded
	case PhaseAnswered:
		return nil, ErrNoActiveQuestion
	case PhaseFinished:
		return nil, ErrExhaustedQuestions
	}

	target := s.cluster
	if s.mode == ModeWeakOnly && !containsInt(s.candidates, target) {
		target = s.candidates[s.rng.Intn(len(s.candidates))]
		s.cluster = target
	}

	pool := s.unused(s.src.QuestionsForCluster(s.subject, target))
	if len(pool) == 0 {
		if s.mode == ModeWeakOnly {
			for _, c := range s.candidates {
				pool = append(pool, s.unused(s.src.QuestionsForCluster(s.subject, c))...)
			}
		} else {
			pool = s.unused(s.src.QuestionsFor(s.subject))
		}
	}
	if len(pool) == 0 {
		return nil, ErrExhaustedQuestions
	}

	q := pool[s.rng.Intn(len(pool))]
	s.used[q.ID] = true
	s.current = &q
	s.feedback = nil
	s.state = PhaseAwaitingAnswer
	return s.current, nil
}

// SubmitAnswer grades the chosen option against the current question.
// A correct answer raises the cluster by one in normal mode; a wrong
// answer lowers it and charges a miss to the cluster the question was
// presented at. Weak-only mode never moves the cluster.
func (s *Session) SubmitAnswer(chosenKey string) (Feedback, error) {
	if s.state != PhaseAwaitingAnswer || s.current == nil {
		return Feedback{}, ErrNoActiveQuestion
	}

	q := s.current
	presentedAt := s.cluster
	correct := strings.EqualFold(strings.TrimSpace(chosenKey), q.Answer)

	if correct {
		s.score++
		if s.mode == ModeNormal {
			s.cluster = cluster.Clamp(s.subject, s.cluster+1)
		}
	} else {
		if s.mode == ModeNormal {
			s.cluster = cluster.Clamp(s.subject, s.cluster-1)
		}
		s.tally[presentedAt]++
	}

	fb := Feedback{
		Correct:    correct,
		CorrectKey: q.Answer,
		CorrectAns: optionText(q, q.Answer),
	}
	s.feedback = &fb
	s.state = PhaseAnswered
	return fb, nil
}

// Advance moves past the answered question. When the question target is
// reached the session finishes; otherwise it awaits the next selection.
func (s *Session) Advance() error {
	if s.state != PhaseAnswered {
		return ErrNoActiveQuestion
	}
	s.index++
	s.current = nil
	s.feedback = nil
	if s.index >= s.totalQuestions {
		s.state = PhaseFinished
	} else {
		s.state = PhaseAwaitingQuestion
	}
	return nil
}

// ForceFinish ends the round immediately, preserving the score and miss
// tally accumulated so far. Used for quit and time expiry. Safe to call
// in any state.
func (s *Session) ForceFinish() {
	s.state = PhaseFinished
	s.current = nil
	s.feedback = nil
}

// Finished reports whether the session reached its terminal state.
func (s *Session) Finished() bool { return s.state == PhaseFinished }

// Phase returns the session's current phase.
func (s *Session) Phase() Phase { return s.state }

// Subject returns the session's fixed subject.
func (s *Session) Subject() string { return s.subject }

// Mode returns the session's mode.
func (s *Session) Mode() Mode { return s.mode }

// Cluster returns the current difficulty cluster.
func (s *Session) Cluster() int { return s.cluster }

// Score returns the count of correct answers so far.
func (s *Session) Score() int { return s.score }

// Index returns the count of questions advanced past (0-based).
func (s *Session) Index() int { return s.index }

// TotalQuestions returns the round's question target.
func (s *Session) TotalQuestions() int { return s.totalQuestions }

// Current returns the loaded question, or nil between advance and the
// next selection.
func (s *Session) Current() *bank.Question { return s.current }

// Feedback returns grading feedback for the answered question, or nil
// if none is pending.
func (s *Session) Feedback() *Feedback { return s.feedback }

// Progress returns the fraction of the round completed, in [0, 1].
func (s *Session) Progress() float64 {
	return float64(s.index) / float64(s.totalQuestions)
}

// MissedClusters returns the clusters charged with at least one miss,
// ascending. The result seeds a weak-area retry round.
func (s *Session) MissedClusters() []int {
	var out []int
	for c, misses := range s.tally {
		if misses > 0 {
			out = append(out, c)
		}
	}
	sort.Ints(out)
	return out
}

// unused filters already-used questions out of candidates.
func (s *Session) unused(candidates []bank.Question) []bank.Question {
	var out []bank.Question
	for _, q := range candidates {
		if !s.used[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

func optionText(q *bank.Question, key string) string {
	for _, opt := range q.Options {
		if opt.Key == key {
			return opt.Text
		}
	}
	return ""
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
