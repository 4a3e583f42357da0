// Package fsrs implements the FSRS-5 memory-model scheduler: card stability
// and difficulty are updated from each review outcome, and the next due date
// follows from the stability and the requested retention target.
package fsrs

import (
	"fmt"
	"math/rand"
	"time"
)

// Config configures a Scheduler. Zero values produce sensible defaults.
type Config struct {
	Weights          []float64       // nil → DefaultWeights; 17-entry vectors are padded
	RequestRetention float64         // zero → 0.9
	MaximumInterval  int             // zero → 36500
	LearningSteps    []time.Duration // nil → [1m, 10m]; empty → no steps
	RelearningSteps  []time.Duration // nil → [10m]; empty → no steps
	EnableFuzz       bool
	EnableShortTerm  bool // false → sub-day learning steps are skipped entirely
}

// Scheduler schedules card reviews. It is a pure function over the card
// handed to it apart from the fuzz random source.
type Scheduler struct {
	algo             algo
	requestRetention float64
	maximumInterval  int
	learningSteps    []time.Duration
	relearningSteps  []time.Duration
	enableFuzz       bool
	enableShortTerm  bool
	rng              *rand.Rand
}

// NewScheduler creates a Scheduler from the given config.
func NewScheduler(cfg Config) (*Scheduler, error) {
	w, err := ResolveWeights(cfg.Weights)
	if err != nil {
		return nil, err
	}

	retention := cfg.RequestRetention
	if retention == 0 {
		retention = 0.9
	}
	if retention < 0 || retention > 1 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidRetention, retention)
	}

	maxIvl := cfg.MaximumInterval
	if maxIvl == 0 {
		maxIvl = 36500
	}
	if maxIvl < 0 {
		return nil, fmt.Errorf("fsrs: maximum interval %d must be positive", maxIvl)
	}

	learning := cfg.LearningSteps
	if learning == nil {
		learning = []time.Duration{time.Minute, 10 * time.Minute}
	}
	relearning := cfg.RelearningSteps
	if relearning == nil {
		relearning = []time.Duration{10 * time.Minute}
	}

	return &Scheduler{
		algo:             algo{w: w},
		requestRetention: retention,
		maximumInterval:  maxIvl,
		learningSteps:    learning,
		relearningSteps:  relearning,
		enableFuzz:       cfg.EnableFuzz,
		enableShortTerm:  cfg.EnableShortTerm,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// ReviewCard processes a review at the given instant and returns the updated
// card. The input card is not mutated.
func (s *Scheduler) ReviewCard(card Card, rating Rating, now time.Time) Card {
	c := card.clone()
	c.Reps++

	elapsed := 0
	if c.LastReview != nil {
		elapsed = int(now.Sub(*c.LastReview).Hours() / 24)
	}
	c.ElapsedDays = elapsed

	s.updateMemory(&c, rating, elapsed)

	var interval time.Duration
	switch c.State {
	case Review:
		interval = s.transitionReview(&c, rating)
	default:
		interval = s.transitionLearning(&c, rating)
	}

	if s.enableFuzz && c.State == Review {
		if days := int(interval.Hours() / 24); days > 0 {
			interval = time.Duration(applyFuzz(days, s.maximumInterval, s.rng)) * 24 * time.Hour
		}
	}

	c.ScheduledDays = int(interval.Hours() / 24)
	c.Due = now.Add(interval)
	c.LastReview = &now
	return c
}

// Retrievability returns the estimated recall probability at the given
// instant, or 0 for a card that has never been reviewed.
func (s *Scheduler) Retrievability(card Card, now time.Time) float64 {
	if card.LastReview == nil || card.State == New {
		return 0
	}
	elapsed := int(now.Sub(*card.LastReview).Hours() / 24)
	if elapsed < 0 {
		elapsed = 0
	}
	return s.algo.retrievability(elapsed, card.Stability)
}

// updateMemory updates stability and difficulty for the review.
func (s *Scheduler) updateMemory(c *Card, rating Rating, elapsedDays int) {
	if c.State == New || c.LastReview == nil {
		c.Stability = s.algo.initStability(rating)
		c.Difficulty = s.algo.initDifficulty(rating, true)
		return
	}

	if s.enableShortTerm && elapsedDays < 1 {
		c.Stability = s.algo.shortTermStability(c.Stability, rating)
		c.Difficulty = s.algo.nextDifficulty(c.Difficulty, rating)
		return
	}

	// Stability formulas use the pre-update difficulty.
	preD := c.Difficulty
	r := s.algo.retrievability(max(1, elapsedDays), c.Stability)
	if rating == Again {
		c.Stability = s.algo.nextForgetStability(c.Stability, preD, r)
	} else {
		c.Stability = s.algo.nextRecallStability(c.Stability, preD, r, rating)
	}
	c.Difficulty = s.algo.nextDifficulty(preD, rating)
}

// stepsFor returns the step ladder for the given state. Short-term scheduling
// disabled means no ladder at all: cards graduate straight to Review.
func (s *Scheduler) stepsFor(state State) []time.Duration {
	if !s.enableShortTerm {
		return nil
	}
	if state == Relearning {
		return s.relearningSteps
	}
	return s.learningSteps
}

// transitionLearning handles New, Learning and Relearning cards.
func (s *Scheduler) transitionLearning(c *Card, rating Rating) time.Duration {
	steps := s.stepsFor(c.State)
	if len(steps) == 0 || (c.Step >= len(steps) && rating != Again) {
		return s.graduate(c)
	}

	if c.State == New {
		c.State = Learning
	}

	switch rating {
	case Again:
		c.Step = 0
		return steps[0]

	case Hard:
		if c.Step == 0 && len(steps) == 1 {
			return time.Duration(float64(steps[0]) * 1.5)
		}
		if c.Step == 0 && len(steps) >= 2 {
			return (steps[0] + steps[1]) / 2
		}
		return steps[min(c.Step, len(steps)-1)]

	case Good:
		next := c.Step + 1
		if next >= len(steps) {
			return s.graduate(c)
		}
		c.Step = next
		return steps[next]

	default: // Easy
		return s.graduate(c)
	}
}

// transitionReview handles cards in the long-term review cycle.
func (s *Scheduler) transitionReview(c *Card, rating Rating) time.Duration {
	if rating == Again {
		c.Lapses++
		if steps := s.stepsFor(Relearning); len(steps) > 0 {
			c.State = Relearning
			c.Step = 0
			return steps[0]
		}
		// No relearning steps: stay in Review on the post-lapse stability.
	}
	c.Step = 0
	days := s.algo.nextInterval(c.Stability, s.requestRetention, s.maximumInterval)
	return time.Duration(days) * 24 * time.Hour
}

// graduate moves a card into the Review state.
func (s *Scheduler) graduate(c *Card) time.Duration {
	c.State = Review
	c.Step = 0
	days := s.algo.nextInterval(c.Stability, s.requestRetention, s.maximumInterval)
	return time.Duration(days) * 24 * time.Hour
}
