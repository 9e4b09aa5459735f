package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/eduline/eduline/internal/bank"
)

// testBank builds a bank with n questions per cluster for the subject.
// Every question's correct answer is "A".
func testBank(subject string, clusters []int, perCluster int) *bank.Bank {
	var questions []bank.Question
	for _, c := range clusters {
		for i := 0; i < perCluster; i++ {
			questions = append(questions, bank.Question{
				Subject: subject,
				Cluster: c,
				Prompt:  fmt.Sprintf("%s cluster %d question %d", subject, c, i),
				Options: []bank.Option{
					{Key: "A", Text: "right"},
					{Key: "B", Text: "wrong 1"},
					{Key: "C", Text: "wrong 2"},
					{Key: "D", Text: "wrong 3"},
				},
				Answer: "A",
			})
		}
	}
	return bank.New(questions)
}

func mathBank() *bank.Bank {
	return testBank("Mathematics", []int{1, 2, 3, 4, 5, 6, 7, 8}, 4)
}

func newTestSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	s, err := NewSession(mathBank(), cfg)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// answer runs one full select-submit-advance cycle. correct controls
// whether the right or a wrong option is chosen.
func answer(t *testing.T, s *Session, correct bool) Feedback {
	t.Helper()
	if _, err := s.NextQuestion(); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	key := "A"
	if !correct {
		key = "B"
	}
	fb, err := s.SubmitAnswer(key)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	return fb
}

func TestNewSession_StartsAtMidpoint(t *testing.T) {
	s := newTestSession(t, Config{Subject: "Mathematics", TotalQuestions: 5})
	if s.Cluster() != 4 {
		t.Errorf("start cluster = %d, want 4 (midpoint of 1-8)", s.Cluster())
	}
	if s.Mode() != ModeNormal {
		t.Errorf("mode = %q, want %q", s.Mode(), ModeNormal)
	}
}

func TestNewSession_WeakOnlyStartsAtFirstCandidate(t *testing.T) {
	s := newTestSession(t, Config{
		Subject:        "Mathematics",
		TotalQuestions: 5,
		Mode:           ModeWeakOnly,
		WeakCandidates: []int{6, 2},
	})
	if s.Cluster() != 6 {
		t.Errorf("start cluster = %d, want first candidate 6", s.Cluster())
	}
}

func TestNewSession_Validation(t *testing.T) {
	b := mathBank()

	_, err := NewSession(b, Config{Subject: "Mathematics", TotalQuestions: 0})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero questions: err = %v, want ErrInvalidConfig", err)
	}

	_, err = NewSession(b, Config{Subject: "Chemistry", TotalQuestions: 5})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown subject: err = %v, want ErrInvalidConfig", err)
	}

	_, err = NewSession(b, Config{Subject: "Mathematics", TotalQuestions: 5, Mode: ModeWeakOnly})
	if !errors.Is(err, ErrNoWeakAreas) {
		t.Errorf("weak-only without candidates: err = %v, want ErrNoWeakAreas", err)
	}
}

func TestNormalMode_ClusterNonDecreasingOnCorrect(t *testing.T) {
	s := newTestSession(t, Config{Subject: "Mathematics", TotalQuestions: 10})
	prev := s.Cluster()
	for i := 0; i < 10; i++ {
		answer(t, s, true)
		if s.Finished() {
			break
		}
		if s.Cluster() < prev {
			t.Fatalf("cluster decreased on correct answer: %d -> %d", prev, s.Cluster())
		}
		if s.Cluster() > 8 {
			t.Fatalf("cluster %d exceeds subject maximum 8", s.Cluster())
		}
		prev = s.Cluster()
	}
}

func TestNormalMode_ClusterNonIncreasingOnWrong(t *testing.T) {
	s := newTestSession(t, Config{Subject: "Mathematics", TotalQuestions: 10})
	prev := s.Cluster()
	for i := 0; i < 10; i++ {
		answer(t, s, false)
		if s.Finished() {
			break
		}
		if s.Cluster() > prev {
			t.Fatalf("cluster increased on wrong answer: %d -> %d", prev, s.Cluster())
		}
		if s.Cluster() < 1 {
			t.Fatalf("cluster %d fell below subject minimum 1", s.Cluster())
		}
		prev = s.Cluster()
	}
}

func TestNoQuestionRepeatsWithinSession(t *testing.T) {
	s := newTestSession(t, Config{Subject: "Mathematics", TotalQuestions: 20})
	seen := make(map[int]bool)
	for i := 0; i < 20; i++ {
		q, err := s.NextQuestion()
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if seen[q.ID] {
			t.Fatalf("question %d selected twice", q.ID)
		}
		seen[q.ID] = true
		// Alternate answers to exercise both cluster directions.
		key := "A"
		if i%2 == 1 {
			key = "C"
		}
		if _, err := s.SubmitAnswer(key); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if !s.Finished() {
		t.Error("expected session to finish after reaching the question target")
	}
}

func TestWeakOnly_AnswersNeverMoveCluster(t *testing.T) {
	s := newTestSession(t, Config{
		Subject:        "Mathematics",
		TotalQuestions: 8,
		Mode:           ModeWeakOnly,
		WeakCandidates: []int{2, 5},
	})
	for i := 0; i < 8; i++ {
		if _, err := s.NextQuestion(); err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		before := s.Cluster()
		key := "A"
		if i%2 == 0 {
			key = "D"
		}
		if _, err := s.SubmitAnswer(key); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if s.Cluster() != before {
			t.Fatalf("submit moved cluster %d -> %d in weak-only mode", before, s.Cluster())
		}
		if before != 2 && before != 5 {
			t.Fatalf("cluster %d outside weak candidates", before)
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
}

func TestScoreAndIndexCounting(t *testing.T) {
	s := newTestSession(t, Config{Subject: "Mathematics", TotalQuestions: 6})
	results := []bool{true, false, true, true, false, true}
	wantScore := 0
	for i, correct := range results {
		answer(t, s, correct)
		if correct {
			wantScore++
		}
		if s.Score() != wantScore {
			t.Errorf("after answer %d: score = %d, want %d", i+1, s.Score(), wantScore)
		}
		if s.Index() != i+1 {
			t.Errorf("after answer %d: index = %d, want %d", i+1, s.Index(), i+1)
		}
	}
}

func TestSubmitWithoutQuestion(t *testing.T) {
	s := newTestSession(t, Config{Subject: "Mathematics", TotalQuestions: 3})
	if _, err := s.SubmitAnswer("A"); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("err = %v, want ErrNoActiveQuestion", err)
	}

	// Double submit is also an ordering error.
	if _, err := s.NextQuestion(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitAnswer("A"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitAnswer("A"); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("double submit: err = %v, want ErrNoActiveQuestion", err)
	}
}

func TestAnswerNormalization(t *testing.T) {
	s := newTestSession(t, Config{Subject: "Mathematics", TotalQuestions: 2})
	if _, err := s.NextQuestion(); err != nil {
		t.Fatal(err)
	}
	fb, err := s.SubmitAnswer("  a ")
	if err != nil {
		t.Fatal(err)
	}
	if !fb.Correct {
		t.Error("expected lowercase padded key to match the correct answer")
	}
}

func TestSummary_BeforeFinished(t *testing.T) {
	s := newTestSession(t, Config{Subject: "Mathematics", TotalQuestions: 3})
	if _, err := s.Summary(); !errors.Is(err, ErrSessionNotFinished) {
		t.Errorf("err = %v, want ErrSessionNotFinished", err)
	}
	answer(t, s, true)
	if _, err := s.Summary(); !errors.Is(err, ErrSessionNotFinished) {
		t.Errorf("mid-round: err = %v, want ErrSessionNotFinished", err)
	}
}

func TestForceFinish_PreservesProgress(t *testing.T) {
	s := newTestSession(t, Config{Subject: "Mathematics", TotalQuestions: 4})
	answer(t, s, true)
	answer(t, s, false)
	s.ForceFinish()

	if !s.Finished() {
		t.Fatal("expected finished state after ForceFinish")
	}
	sum, err := s.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Score != 1 {
		t.Errorf("score = %d, want 1", sum.Score)
	}
	if sum.ProgressRatio != 0.5 {
		t.Errorf("progress = %v, want 0.5", sum.ProgressRatio)
	}
	if len(sum.WeakTopics) != 1 {
		t.Errorf("weak topics = %v, want one entry", sum.WeakTopics)
	}
}

func TestAdaptiveRound_Scenario(t *testing.T) {
	s := newTestSession(t, Config{Subject: "Mathematics", TotalQuestions: 3})
	if s.Cluster() != 4 {
		t.Fatalf("start cluster = %d, want 4", s.Cluster())
	}

	answer(t, s, true)
	if s.Cluster() != 5 || s.Score() != 1 {
		t.Fatalf("after correct: cluster = %d score = %d, want 5 and 1", s.Cluster(), s.Score())
	}

	answer(t, s, false)
	if s.Cluster() != 4 {
		t.Fatalf("after wrong: cluster = %d, want 4", s.Cluster())
	}

	answer(t, s, true)
	if s.Cluster() != 5 || s.Score() != 2 {
		t.Fatalf("after correct: cluster = %d score = %d, want 5 and 2", s.Cluster(), s.Score())
	}

	if !s.Finished() {
		t.Fatal("expected finished after three advances")
	}
	sum, err := s.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Score != 2 || sum.TotalQuestions != 3 || sum.ProgressRatio != 1.0 {
		t.Errorf("summary = %+v, want score 2, total 3, progress 1.0", sum)
	}
	// The miss was charged to cluster 5, where the question was presented.
	if got := sum.WeakTopics["Simple Calculations"]; got != 1 {
		t.Errorf("weak topics = %v, want 1 miss on the cluster 5 topic", sum.WeakTopics)
	}
	if got := s.MissedClusters(); len(got) != 1 || got[0] != 5 {
		t.Errorf("missed clusters = %v, want [5]", got)
	}
}

func TestPoolWidening_NormalMode(t *testing.T) {
	// Only clusters 1 and 8 have content; the midpoint cluster 4 is empty,
	// so selection must widen to the whole subject instead of failing.
	b := testBank("Mathematics", []int{1, 8}, 2)
	s, err := NewSession(b, Config{
		Subject:        "Mathematics",
		TotalQuestions: 4,
		Rand:           rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatal(err)
	}
	q, err := s.NextQuestion()
	if err != nil {
		t.Fatalf("expected widened pool to serve a question, got %v", err)
	}
	if q.Cluster != 1 && q.Cluster != 8 {
		t.Errorf("question cluster = %d, want 1 or 8", q.Cluster)
	}
}

func TestPoolWidening_WeakOnlyStaysInCandidates(t *testing.T) {
	b := testBank("Mathematics", []int{2, 3, 6}, 2)
	s, err := NewSession(b, Config{
		Subject:        "Mathematics",
		TotalQuestions: 4,
		Mode:           ModeWeakOnly,
		WeakCandidates: []int{2, 3},
		Rand:           rand.New(rand.NewSource(3)),
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		q, err := s.NextQuestion()
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if q.Cluster != 2 && q.Cluster != 3 {
			t.Fatalf("question %d drawn from cluster %d, outside candidates", i, q.Cluster)
		}
		if _, err := s.SubmitAnswer("A"); err != nil {
			t.Fatal(err)
		}
		if err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExhaustedQuestions(t *testing.T) {
	// Two questions total; the third selection has nothing left even
	// after widening.
	b := testBank("Mathematics", []int{4}, 2)
	s, err := NewSession(b, Config{
		Subject:        "Mathematics",
		TotalQuestions: 5,
		Rand:           rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := s.NextQuestion(); err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if _, err := s.SubmitAnswer("A"); err != nil {
			t.Fatal(err)
		}
		if err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.NextQuestion(); !errors.Is(err, ErrExhaustedQuestions) {
		t.Errorf("err = %v, want ErrExhaustedQuestions", err)
	}

	// The session stays inspectable; the host finalizes.
	s.ForceFinish()
	if _, err := s.Summary(); err != nil {
		t.Errorf("Summary after force finish: %v", err)
	}
}
