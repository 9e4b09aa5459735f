package round

import "time"

// tickMsg is sent every second to drive the countdown.
type tickMsg time.Time

// endRoundMsg triggers the round-end flow (target reached, pool
// exhausted, quit confirmed, or time expired).
type endRoundMsg struct {
	timedOut bool
}

// FinishedMsg is emitted when the learner leaves the summary screen,
// so the subject screen can offer a weak-area retry for this round.
type FinishedMsg struct {
	Subject        string
	MissedClusters []int
}
