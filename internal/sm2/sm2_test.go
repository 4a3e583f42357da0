package sm2

import (
	"math/rand"
	"testing"

	"github.com/reciteapp/recite/internal/models"
)

func defaultConfig() Config {
	return Config{
		BaseEase:        250,
		MaximumInterval: 36525,
	}
}

func review(t *testing.T, cfg Config, st models.SM2State, quality int) models.SM2State {
	t.Helper()
	return RecordReview(cfg, ReviewInput{
		Ease:            st.Ease,
		Interval:        st.Interval,
		RepetitionCount: st.RepetitionCount,
		Consecutive:     st.Consecutive,
		Category:        st.Category,
		Quality:         quality,
	}, nil)
}

func TestSpacedLadder(t *testing.T) {
	cfg := defaultConfig()
	st := ComputeInitialSchedule(cfg, 0)

	st = review(t, cfg, st, 4)
	if st.Interval != 1 || st.RepetitionCount != 1 {
		t.Fatalf("first review: interval=%d rep=%d, want 1/1", st.Interval, st.RepetitionCount)
	}
	if st.Ease != 250 {
		t.Errorf("first review changed ease to %d, want 250", st.Ease)
	}

	st = review(t, cfg, st, 4)
	if st.Interval != 6 {
		t.Fatalf("second review: interval=%d, want 6", st.Interval)
	}

	st = review(t, cfg, st, 4)
	if st.Interval != 15 {
		t.Errorf("third review: interval=%d, want 15", st.Interval)
	}
}

func TestIntervalUsesPreUpdateEase(t *testing.T) {
	// Quality 5 raises the ease on the second review; the third interval must
	// still truncate 6 × 2.60 = 15.6 down to 15.
	cfg := defaultConfig()
	st := ComputeInitialSchedule(cfg, 0)

	st = review(t, cfg, st, 5)
	st = review(t, cfg, st, 5)
	if st.Ease != 260 {
		t.Fatalf("ease after second q=5 review = %d, want 260", st.Ease)
	}

	st = review(t, cfg, st, 5)
	if st.Interval != 15 {
		t.Errorf("third review: interval=%d, want 15", st.Interval)
	}
	if st.Ease != 270 {
		t.Errorf("ease after third q=5 review = %d, want 270", st.Ease)
	}
}

func TestEaseFloor(t *testing.T) {
	cfg := defaultConfig()
	st := models.SM2State{Ease: 130, Interval: 6, RepetitionCount: 2, Category: models.CategorySpaced}

	for i := 0; i < 5; i++ {
		st = review(t, cfg, st, 3)
		if st.Ease < MinEase {
			t.Fatalf("ease dropped below floor: %d", st.Ease)
		}
	}
	if st.Ease != MinEase {
		t.Errorf("ease = %d, want pinned at %d", st.Ease, MinEase)
	}
}

func TestFailureResetsRepetitions(t *testing.T) {
	cfg := defaultConfig()
	st := models.SM2State{Ease: 250, Interval: 15, RepetitionCount: 3, Consecutive: 3, Category: models.CategorySpaced}

	st = review(t, cfg, st, 2)
	if st.RepetitionCount != 0 {
		t.Errorf("repetition count = %d, want 0", st.RepetitionCount)
	}
	if st.Interval != 1 {
		t.Errorf("interval = %d, want 1", st.Interval)
	}
	if st.Ease != 218 {
		t.Errorf("ease = %d, want 218", st.Ease)
	}
	if st.Consecutive != 0 {
		t.Errorf("consecutive = %d, want streak reset to 0", st.Consecutive)
	}
}

func TestLateReviewPenalty(t *testing.T) {
	cfg := defaultConfig()
	out := RecordReview(cfg, ReviewInput{
		Ease:            250,
		Interval:        15,
		RepetitionCount: 3,
		Category:        models.CategorySpaced,
		Quality:         5,
		DaysLate:        4,
	}, nil)

	if out.Interval != 1 || out.RepetitionCount != 1 {
		t.Errorf("late review: interval=%d rep=%d, want 1/1", out.Interval, out.RepetitionCount)
	}
	// Lateness grades as a blackout regardless of the reported quality.
	if out.Ease != 170 {
		t.Errorf("late review ease = %d, want 170", out.Ease)
	}
	if out.Consecutive != 0 {
		t.Errorf("late review consecutive = %d, want 0", out.Consecutive)
	}
}

func TestSkipPenalty(t *testing.T) {
	cfg := defaultConfig()
	out := RecordReview(cfg, ReviewInput{
		Ease:            250,
		Interval:        15,
		RepetitionCount: 3,
		Category:        models.CategorySpaced,
		Quality:         4,
		Skipped:         true,
	}, nil)

	if out.Interval != 1 || out.RepetitionCount != 1 {
		t.Errorf("skip: interval=%d rep=%d, want 1/1", out.Interval, out.RepetitionCount)
	}
	// Skip drops the quality one notch: effective 3 gives a -0.14 delta.
	if out.Ease != 236 {
		t.Errorf("skip ease = %d, want 236", out.Ease)
	}
}

func TestInitialScheduleLadder(t *testing.T) {
	cfg := defaultConfig()
	cfg.UseInitialSchedule = true
	cfg.InitialIntervals = []int{0, 3, 7, 14, 30}

	st := ComputeInitialSchedule(cfg, 0)
	if st.Category != models.CategoryInitial {
		t.Fatalf("category = %s, want initial", st.Category)
	}
	if st.Interval != 0 {
		t.Fatalf("initial interval = %d, want 0", st.Interval)
	}

	wantIntervals := []int{3, 7, 14, 30}
	for i, want := range wantIntervals {
		st = review(t, cfg, st, 4)
		if st.Interval != want {
			t.Fatalf("ladder step %d: interval=%d, want %d", i+1, st.Interval, want)
		}
		if st.Category != models.CategoryInitial {
			t.Fatalf("ladder step %d: category=%s, want initial", i+1, st.Category)
		}
	}

	// Fifth success exhausts the ladder and graduates.
	st = review(t, cfg, st, 4)
	if st.Category != models.CategoryGraduated {
		t.Fatalf("category after ladder = %s, want graduated", st.Category)
	}
	if st.Interval != 1 || st.RepetitionCount != 1 {
		t.Errorf("graduation: interval=%d rep=%d, want 1/1", st.Interval, st.RepetitionCount)
	}

	// The next review flips graduated to spaced and resumes the formula.
	st = review(t, cfg, st, 4)
	if st.Category != models.CategorySpaced {
		t.Errorf("category = %s, want spaced", st.Category)
	}
	if st.Interval != 6 {
		t.Errorf("interval = %d, want 6", st.Interval)
	}
}

func TestInitialScheduleFailureRestartsLadder(t *testing.T) {
	cfg := defaultConfig()
	cfg.UseInitialSchedule = true
	cfg.InitialIntervals = []int{0, 3, 7}

	st := ComputeInitialSchedule(cfg, 0)
	st = review(t, cfg, st, 4)
	st = review(t, cfg, st, 1)
	if st.RepetitionCount != 0 {
		t.Errorf("repetition count after failure = %d, want 0", st.RepetitionCount)
	}
	if st.Category != models.CategoryInitial {
		t.Errorf("category after failure = %s, want still initial", st.Category)
	}

	st = review(t, cfg, st, 4)
	if st.Interval != 3 {
		t.Errorf("ladder restart interval = %d, want 3", st.Interval)
	}
}

func TestDaysFromNowOverridesFirstInterval(t *testing.T) {
	cfg := defaultConfig()
	cfg.UseInitialSchedule = true
	cfg.InitialIntervals = []int{0, 3, 7}

	st := ComputeInitialSchedule(cfg, 5)
	if st.Interval != 5 {
		t.Errorf("interval = %d, want override 5", st.Interval)
	}
	if st.Category != models.CategoryInitial {
		t.Errorf("category = %s, want initial", st.Category)
	}
}

func TestLoadBalanceJitterBounds(t *testing.T) {
	cfg := defaultConfig()
	cfg.LoadBalance = true
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		out := RecordReview(cfg, ReviewInput{
			Ease:            250,
			Interval:        20,
			RepetitionCount: 4,
			Category:        models.CategorySpaced,
			Quality:         4,
		}, rng)

		// Base interval is int(20 × 2.50) = 50; fuzz is min(3, 50·5%) = 2.
		if out.Interval < 48 || out.Interval > 52 {
			t.Fatalf("jittered interval %d outside [48, 52]", out.Interval)
		}
	}
}

func TestShortIntervalsNeverJittered(t *testing.T) {
	cfg := defaultConfig()
	cfg.LoadBalance = true
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		out := RecordReview(cfg, ReviewInput{
			Ease:            250,
			RepetitionCount: 1,
			Category:        models.CategorySpaced,
			Quality:         4,
		}, rng)
		if out.Interval != 6 {
			t.Fatalf("second-review interval = %d, want exactly 6", out.Interval)
		}
	}
}

func TestMaximumIntervalClamp(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaximumInterval = 30

	out := RecordReview(cfg, ReviewInput{
		Ease:            250,
		Interval:        20,
		RepetitionCount: 4,
		Category:        models.CategorySpaced,
		Quality:         4,
	}, nil)
	if out.Interval != 30 {
		t.Errorf("interval = %d, want clamped to 30", out.Interval)
	}
}

func TestQualityClamped(t *testing.T) {
	cfg := defaultConfig()
	out := RecordReview(cfg, ReviewInput{
		Ease:            250,
		Category:        models.CategorySpaced,
		Quality:         9,
	}, nil)
	if out.Interval != 1 || out.RepetitionCount != 1 {
		t.Errorf("clamped quality: interval=%d rep=%d, want 1/1", out.Interval, out.RepetitionCount)
	}
}
