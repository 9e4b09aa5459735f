package bank

import "sort"

// Option is a single labeled answer choice.
type Option struct {
	Key  string // "A".."D"
	Text string
}

// Question is one quiz question. Immutable once loaded.
type Question struct {
	ID      int // stable row index within the bank
	Subject string
	Cluster int
	Prompt  string
	Options []Option
	Answer  string // key of the correct option
}

// Bank is an immutable, indexed collection of questions.
// It is safe for concurrent reads once built.
type Bank struct {
	questions []Question
	bySubject map[string][]Question
}

// New builds a Bank from a slice of questions, assigning IDs by position.
func New(questions []Question) *Bank {
	b := &Bank{
		questions: make([]Question, len(questions)),
		bySubject: make(map[string][]Question),
	}
	for i, q := range questions {
		q.ID = i
		b.questions[i] = q
		b.bySubject[q.Subject] = append(b.bySubject[q.Subject], q)
	}
	return b
}

// Len returns the total number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Subjects returns the distinct subjects in the bank, sorted.
func (b *Bank) Subjects() []string {
	subjects := make([]string, 0, len(b.bySubject))
	for s := range b.bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}

// HasSubject reports whether the bank holds any questions for subject.
func (b *Bank) HasSubject(subject string) bool {
	return len(b.bySubject[subject]) > 0
}

// QuestionsFor returns all questions for a subject, in load order.
func (b *Bank) QuestionsFor(subject string) []Question {
	return b.bySubject[subject]
}

// QuestionsForCluster returns the subject's questions in a single cluster.
func (b *Bank) QuestionsForCluster(subject string, cluster int) []Question {
	var out []Question
	for _, q := range b.bySubject[subject] {
		if q.Cluster == cluster {
			out = append(out, q)
		}
	}
	return out
}
