package fsrs

import "time"

// Card holds the scheduling state of one item. Stability and Difficulty are
// meaningless until the first review (State == New).
type Card struct {
	State         State      `json:"state"`
	Step          int        `json:"step"` // index into the learning/relearning steps
	Stability     float64    `json:"stability"`
	Difficulty    float64    `json:"difficulty"`
	ElapsedDays   int        `json:"elapsed_days"`
	ScheduledDays int        `json:"scheduled_days"`
	Reps          int        `json:"reps"`
	Lapses        int        `json:"lapses"`
	Due           time.Time  `json:"due"`
	LastReview    *time.Time `json:"last_review,omitempty"`
}

// NewCard returns a fresh card due immediately at the given instant.
func NewCard(now time.Time) Card {
	return Card{
		State: New,
		Due:   now,
	}
}

// clone returns a deep copy of the card.
func (c Card) clone() Card {
	out := c
	if c.LastReview != nil {
		t := *c.LastReview
		out.LastReview = &t
	}
	return out
}
