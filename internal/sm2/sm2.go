// Package sm2 implements the ease-factor scheduling algorithm (SuperMemo-2
// family) extended with a configurable initial learning phase, lateness and
// skip penalties, and load-balancing jitter.
//
// All functions are pure: configuration is passed explicitly and no global
// state is read, so results are deterministic for a given config, input, and
// random source.
package sm2

import (
	"math"
	"math/rand"

	"github.com/reciteapp/recite/internal/models"
)

// MinEase is the floor for the ease factor, stored ×100 (1.3).
const MinEase = 130

// Config holds every setting the algorithm reads.
type Config struct {
	BaseEase           int   // default ease ×100 for new items
	MaximumInterval    int   // interval cap in days
	LoadBalance        bool  // jitter intervals longer than a week
	UseInitialSchedule bool  // walk InitialIntervals before the formula takes over
	InitialIntervals   []int // fixed interval ladder in days
}

// ReviewInput is the full context of one review, handed in by the caller.
type ReviewInput struct {
	Ease            int // ×100
	Interval        int // days
	RepetitionCount int
	Consecutive     int
	Category        models.ScheduleCategory
	Quality         int // 0–5
	DaysLate        int
	Skipped         bool
}

// ComputeInitialSchedule returns the state for a newly scheduled item.
// With the initial phase enabled the first interval comes from the ladder
// unless daysFromNow overrides it; otherwise the item starts spaced with
// interval = daysFromNow.
func ComputeInitialSchedule(cfg Config, daysFromNow int) models.SM2State {
	st := models.SM2State{
		Ease:     cfg.BaseEase,
		Category: models.CategorySpaced,
		Interval: daysFromNow,
	}
	if cfg.UseInitialSchedule && len(cfg.InitialIntervals) > 0 {
		st.Category = models.CategoryInitial
		if daysFromNow <= 0 {
			st.Interval = cfg.InitialIntervals[0]
		}
	}
	return st
}

// RecordReview computes the post-review state. rng is only consulted for
// load-balancing jitter and may be nil when LoadBalance is off.
//
// Interval growth uses the ease as it stood before this review; the ease
// update lands afterwards. The first successful repetition leaves the ease
// untouched, which keeps the documented 1, 6, interval·ease ladder.
func RecordReview(cfg Config, in ReviewInput, rng *rand.Rand) models.SM2State {
	quality := clampQuality(in.Quality)
	penalized := in.Skipped || in.DaysLate > 0

	effective := quality
	if in.Skipped {
		effective = max(0, quality-1)
	} else if in.DaysLate > 0 {
		effective = 0
	}

	st := models.SM2State{
		Ease:     in.Ease,
		Category: in.Category,
	}
	if st.Ease == 0 {
		st.Ease = cfg.BaseEase
	}
	if st.Category == "" {
		st.Category = models.CategorySpaced
	}
	// graduated is a one-review transition marker; any further review puts
	// the item in the full spaced regime.
	if st.Category == models.CategoryGraduated {
		st.Category = models.CategorySpaced
	}

	if quality >= 3 && !penalized {
		st.Consecutive = in.Consecutive + 1
	}

	switch {
	case penalized:
		// Late or skipped items are forced back into circulation instead of
		// drifting arbitrarily far into the backlog.
		st.Ease = nextEase(st.Ease, effective)
		st.RepetitionCount = 1
		st.Interval = 1

	case quality < 3:
		st.Ease = nextEase(st.Ease, quality)
		st.RepetitionCount = 0
		st.Interval = 1

	case st.Category == models.CategoryInitial:
		st.RepetitionCount = in.RepetitionCount + 1
		if st.RepetitionCount < len(cfg.InitialIntervals) {
			st.Interval = cfg.InitialIntervals[st.RepetitionCount]
			st.Ease = nextEase(st.Ease, quality)
		} else {
			// Ladder exhausted: graduate, then run one spaced computation
			// with the repetition progress reset.
			st.Category = models.CategoryGraduated
			st.RepetitionCount = 1
			st.Interval = 1
		}

	default:
		st.RepetitionCount = in.RepetitionCount + 1
		switch st.RepetitionCount {
		case 1:
			st.Interval = 1
		case 2:
			st.Interval = 6
			st.Ease = nextEase(st.Ease, quality)
		default:
			st.Interval = int(float64(in.Interval) * float64(st.Ease) / 100)
			st.Ease = nextEase(st.Ease, quality)
			if cfg.LoadBalance && st.Interval > 7 && rng != nil {
				fuzz := min(3, st.Interval*5/100)
				st.Interval += rng.Intn(2*fuzz+1) - fuzz
			}
		}
	}

	st.Interval = clampInterval(st.Interval, cfg.MaximumInterval)
	return st
}

// nextEase applies the SM-2 ease delta for the given quality and clamps to
// the 1.3 floor. Ease is kept ×100 and rounded.
func nextEase(ease, quality int) int {
	q := float64(quality)
	delta := 0.1 - (5-q)*(0.08+(5-q)*0.02)
	e := float64(ease) + 100*delta
	if e < MinEase {
		e = MinEase
	}
	return int(math.Round(e))
}

func clampQuality(q int) int {
	if q < 0 {
		return 0
	}
	if q > 5 {
		return 5
	}
	return q
}

func clampInterval(interval, maximum int) int {
	if interval < 1 {
		return 1
	}
	if maximum > 0 && interval > maximum {
		return maximum
	}
	return interval
}
