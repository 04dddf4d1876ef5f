package round

import (
	"sort"
)

// Outcome is the resolution of a round's votes
type Outcome struct {
	// WinnerID is the candidate with the strictly highest count, empty on a tie
	WinnerID string

	// Tie is true when two or more candidates share the highest count, or nobody received a vote
	Tie bool

	// TopVotes is the highest count
	TopVotes int

	// Counts is a copy of the votes per candidate
	Counts map[string]int
}

// Tally accumulates the votes of the current round
type Tally struct {
	counts map[string]int
}

// NewTally creates an empty tally
func NewTally() *Tally {
	return &Tally{
		counts: make(map[string]int),
	}
}

// Add records one vote for candidateID
func (t *Tally) Add(candidateID string) {
	t.counts[candidateID]++
}

// Count returns the votes received by candidateID
func (t *Tally) Count(candidateID string) int {
	return t.counts[candidateID]
}

// Total returns the number of votes recorded
func (t *Tally) Total() int {
	total := 0
	for _, count := range t.counts {
		total += count
	}
	return total
}

// Counts returns a copy of the votes per candidate
func (t *Tally) Counts() map[string]int {
	counts := make(map[string]int, len(t.counts))
	for id, count := range t.counts {
		counts[id] = count
	}
	return counts
}

// Resolve finds the unique top candidate. Candidates are visited in sorted
// order so the result does not depend on map iteration.
func (t *Tally) Resolve() Outcome {
	candidates := make([]string, 0, len(t.counts))
	for id := range t.counts {
		candidates = append(candidates, id)
	}
	sort.Strings(candidates)

	outcome := Outcome{
		Counts: t.Counts(),
	}

	leaders := 0
	for _, id := range candidates {
		count := t.counts[id]
		switch {
		case count > outcome.TopVotes:
			outcome.TopVotes = count
			outcome.WinnerID = id
			leaders = 1
		case count == outcome.TopVotes:
			leaders++
		}
	}

	if leaders != 1 || outcome.TopVotes == 0 {
		outcome.WinnerID = ""
		outcome.Tie = true
	}

	return outcome
}

// Clear removes every vote
func (t *Tally) Clear() {
	t.counts = make(map[string]int)
}
