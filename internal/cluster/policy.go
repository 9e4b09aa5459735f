// Package cluster maps subjects to their difficulty-cluster ranges and
// clusters to human-readable topic labels. All functions are pure and
// total: unknown inputs fall back to defined defaults rather than failing.
package cluster

import "fmt"

// MinCluster is the lowest difficulty cluster for every subject.
const MinCluster = 1

// defaultMax is the cluster ceiling for subjects without an explicit limit.
const defaultMax = 6

// maxBySubject holds per-subject cluster ceilings.
var maxBySubject = map[string]int{
	"English":     7,
	"Mathematics": 8,
}

// topics maps cluster → subject → topic label.
var topics = map[int]map[string]string{
	0: {"English": "Verb Tenses, Sentence Completion", "Mathematics": "Basic Arithmetic, Word Problems"},
	1: {"English": "Spelling, Vocabulary", "Mathematics": "Number Properties"},
	2: {"English": "Grammar (Sentence Structure)", "Mathematics": "Equations, Expressions"},
	3: {"English": "Parts of Speech (Adjectives, Nouns)", "Mathematics": "Geometry Basics"},
	4: {"English": "Synonyms, Antonyms, Vocabulary", "Mathematics": "Basic Operations"},
	5: {"English": "Passive Voice, Opposites", "Mathematics": "Simple Calculations"},
	6: {"English": "Prepositions, Conjunctions", "Mathematics": "Fractions, Decimals"},
	7: {"English": "Minor Grammar", "Mathematics": "Ratios, Word Problems"},
	8: {"Mathematics": "Algebra, Fractions, Equations"},
}

// Range returns the inclusive cluster interval for a subject.
func Range(subject string) (min, max int) {
	max, ok := maxBySubject[subject]
	if !ok {
		max = defaultMax
	}
	return MinCluster, max
}

// Clamp constrains cluster into the subject's range.
func Clamp(subject string, c int) int {
	min, max := Range(subject)
	if c < min {
		return min
	}
	if c > max {
		return max
	}
	return c
}

// StartCluster picks the opening cluster for a round. Weak-area rounds
// pass their candidate list and start at its first cluster; a round
// without candidates starts at the midpoint of the subject's range.
func StartCluster(subject string, candidates []int) int {
	if len(candidates) > 0 {
		return candidates[0]
	}
	_, max := Range(subject)
	return max / 2
}

// TopicLabel returns the topic name for a (cluster, subject) pair.
// Unmapped pairs get a generated placeholder label; labeling never fails.
func TopicLabel(c int, subject string) string {
	if bySubject, ok := topics[c]; ok {
		if label, ok := bySubject[subject]; ok {
			return label
		}
	}
	return fmt.Sprintf("Topic %d", c)
}
