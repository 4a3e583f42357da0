package models

import "time"

// Algorithm identifies which scheduling algorithm owns a schedule's state.
type Algorithm string

const (
	AlgorithmSM2  Algorithm = "sm2"
	AlgorithmFSRS Algorithm = "fsrs"
)

// IsValid reports whether a is a known algorithm tag.
func (a Algorithm) IsValid() bool {
	return a == AlgorithmSM2 || a == AlgorithmFSRS
}

// ScheduleCategory is the SM-2-only learning phase marker. It only ever moves
// forward: initial → graduated → spaced.
type ScheduleCategory string

const (
	CategoryInitial   ScheduleCategory = "initial"
	CategoryGraduated ScheduleCategory = "graduated"
	CategorySpaced    ScheduleCategory = "spaced"
)

// CardState mirrors the FSRS card lifecycle for persistence.
type CardState string

const (
	CardStateNew        CardState = "new"
	CardStateLearning   CardState = "learning"
	CardStateReview     CardState = "review"
	CardStateRelearning CardState = "relearning"
)

// SM2State holds the SM-2 half of the schedule union.
type SM2State struct {
	Ease            int              `json:"ease"` // ease factor ×100, never below 130
	Interval        int              `json:"interval"`
	RepetitionCount int              `json:"repetition_count"`
	Consecutive     int              `json:"consecutive"`
	Category        ScheduleCategory `json:"category"`
}

// FSRSState holds the FSRS half of the schedule union.
type FSRSState struct {
	Stability     float64    `json:"stability"`
	Difficulty    float64    `json:"difficulty"`
	ElapsedDays   int        `json:"elapsed_days"`
	ScheduledDays int        `json:"scheduled_days"`
	Reps          int        `json:"reps"`
	Lapses        int        `json:"lapses"`
	State         CardState  `json:"state"`
	Step          int        `json:"step"`
	LastReview    *time.Time `json:"last_review,omitempty"`
}

// ReviewSchedule is the per-note scheduling record. It is a tagged union:
// exactly one of SM2 and FSRS is non-nil, selected by Algorithm. Use
// NewSM2Schedule / NewFSRSSchedule to construct valid records.
type ReviewSchedule struct {
	NoteID         string     `json:"note_id"`
	Algorithm      Algorithm  `json:"algorithm"`
	ReviewCount    int        `json:"review_count"`
	LastReviewDate time.Time  `json:"last_review_date"`
	NextReviewDate time.Time  `json:"next_review_date"`
	SM2            *SM2State  `json:"sm2,omitempty"`
	FSRS           *FSRSState `json:"fsrs,omitempty"`
}

// NewSM2Schedule constructs an SM-2 schedule, clearing any FSRS state.
func NewSM2Schedule(noteID string, state SM2State, next time.Time) ReviewSchedule {
	return ReviewSchedule{
		NoteID:         noteID,
		Algorithm:      AlgorithmSM2,
		NextReviewDate: next,
		SM2:            &state,
	}
}

// NewFSRSSchedule constructs an FSRS schedule, clearing any SM-2 state.
func NewFSRSSchedule(noteID string, state FSRSState, next time.Time) ReviewSchedule {
	return ReviewSchedule{
		NoteID:         noteID,
		Algorithm:      AlgorithmFSRS,
		NextReviewDate: next,
		FSRS:           &state,
	}
}

// Clone returns a deep copy of the schedule.
func (s ReviewSchedule) Clone() ReviewSchedule {
	out := s
	if s.SM2 != nil {
		v := *s.SM2
		out.SM2 = &v
	}
	if s.FSRS != nil {
		v := *s.FSRS
		if s.FSRS.LastReview != nil {
			t := *s.FSRS.LastReview
			v.LastReview = &t
		}
		out.FSRS = &v
	}
	return out
}
