package review

import (
	"testing"
	"time"

	"github.com/reciteapp/recite/internal/constants"
	"github.com/reciteapp/recite/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func testSettings() models.Settings {
	s := models.DefaultSettings()
	s.LoadBalance = false
	s.FSRSEnableFuzz = false
	return s
}

func newTestScheduler(settings models.Settings, clock *fakeClock) *Scheduler {
	return New(Config{
		Clock:    clock,
		Settings: SettingsFunc(func() models.Settings { return settings }),
		Seed:     1,
	})
}

var baseTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestScheduleNoteForReview(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)

	if !s.ScheduleNoteForReview("a", 0) {
		t.Fatal("first schedule should succeed")
	}
	if s.ScheduleNoteForReview("a", 0) {
		t.Error("rescheduling an existing note should fail")
	}
	if s.ScheduleNoteForReview("", 0) {
		t.Error("empty id should fail")
	}

	sched, ok := s.Schedule("a")
	if !ok {
		t.Fatal("schedule not found")
	}
	if sched.Algorithm != models.AlgorithmSM2 {
		t.Errorf("algorithm = %s, want sm2 default", sched.Algorithm)
	}
	if sched.SM2 == nil || sched.FSRS != nil {
		t.Error("sm2 schedule must carry exactly the SM2 union half")
	}
	wantDue := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !sched.NextReviewDate.Equal(wantDue) {
		t.Errorf("due = %v, want %v", sched.NextReviewDate, wantDue)
	}
}

func TestScheduleNoteUnknownNoteRefused(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := New(Config{
		Clock:      clock,
		Settings:   SettingsFunc(testSettings),
		NoteExists: func(id string) bool { return id == "known" },
		Seed:       1,
	})

	if s.ScheduleNoteForReview("ghost", 0) {
		t.Error("unknown note should be refused")
	}
	if !s.ScheduleNoteForReview("known", 2) {
		t.Error("known note should be scheduled")
	}
}

func TestScheduleNoteFSRSDefault(t *testing.T) {
	settings := testSettings()
	settings.DefaultAlgorithm = models.AlgorithmFSRS
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(settings, clock)

	s.ScheduleNoteForReview("a", 0)
	sched, _ := s.Schedule("a")
	if sched.Algorithm != models.AlgorithmFSRS {
		t.Fatalf("algorithm = %s, want fsrs", sched.Algorithm)
	}
	if sched.FSRS == nil || sched.SM2 != nil {
		t.Error("fsrs schedule must carry exactly the FSRS union half")
	}
	if sched.FSRS.State != models.CardStateNew {
		t.Errorf("card state = %s, want new", sched.FSRS.State)
	}
	if !sched.NextReviewDate.Equal(baseTime) {
		t.Errorf("due = %v, want immediately at %v", sched.NextReviewDate, baseTime)
	}
}

func TestEarlyReviewIsStrictNoop(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("a", 5)

	before, _ := s.Schedule("a")
	for i := 0; i < 3; i++ {
		if s.RecordReview("a", 4, time.Time{}) {
			t.Fatal("reviewing an undue note must return false")
		}
	}
	after, _ := s.Schedule("a")

	if !after.NextReviewDate.Equal(before.NextReviewDate) || after.ReviewCount != before.ReviewCount {
		t.Error("preview mutated the schedule")
	}
	if len(s.History()) != 0 {
		t.Errorf("preview appended %d history entries", len(s.History()))
	}
}

func TestRecordReviewSM2(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("a", 0)

	if !s.RecordReview("a", 4, baseTime) {
		t.Fatal("due review should succeed")
	}

	sched, _ := s.Schedule("a")
	if sched.ReviewCount != 1 {
		t.Errorf("review count = %d, want 1", sched.ReviewCount)
	}
	wantNext := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if !sched.NextReviewDate.Equal(wantNext) {
		t.Errorf("next = %v, want %v", sched.NextReviewDate, wantNext)
	}
	if sched.SM2.RepetitionCount != 1 {
		t.Errorf("repetition count = %d, want 1", sched.SM2.RepetitionCount)
	}

	history := s.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	entry := history[0]
	if entry.NoteID != "a" || entry.Response != 4 || entry.Skipped {
		t.Errorf("unexpected history entry: %+v", entry)
	}
	// The entry records the state as it stood before the review.
	if entry.Ease != 250 || entry.IntervalDays != 0 {
		t.Errorf("entry ease/interval = %d/%d, want pre-review 250/0", entry.Ease, entry.IntervalDays)
	}
}

func TestSkipBypassesDueGate(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("a", 10)

	if !s.SkipNote("a", DefaultSkipResponse, baseTime) {
		t.Fatal("skip should work on an undue note")
	}

	sched, _ := s.Schedule("a")
	if sched.ReviewCount != 0 {
		t.Errorf("skip incremented the review count to %d", sched.ReviewCount)
	}
	if sched.SM2.Interval != 1 {
		t.Errorf("interval after skip = %d, want forced 1", sched.SM2.Interval)
	}
	wantNext := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if !sched.NextReviewDate.Equal(wantNext) {
		t.Errorf("next = %v, want %v", sched.NextReviewDate, wantNext)
	}

	history := s.History()
	if len(history) != 1 || !history[0].Skipped {
		t.Fatalf("expected one skipped history entry, got %+v", history)
	}
}

func TestLateReviewPenalized(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("a", 0)

	// Review five days after the due date; a perfect response still resets.
	late := baseTime.AddDate(0, 0, 5)
	clock.now = late
	if !s.RecordReview("a", 5, late) {
		t.Fatal("late review should succeed")
	}

	sched, _ := s.Schedule("a")
	if sched.SM2.Interval != 1 {
		t.Errorf("interval = %d, want penalty-forced 1", sched.SM2.Interval)
	}
	if sched.SM2.Ease >= 250 {
		t.Errorf("ease = %d, want dropped below 250", sched.SM2.Ease)
	}
}

func TestDueNotesOrdering(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("b", 0)
	s.ScheduleNoteForReview("a", 0)
	s.ScheduleNoteForReview("c", 1)
	s.ScheduleNoteForReview("later", 7)

	due := s.DueNotes(baseTime, false, false)
	if len(due) != 2 {
		t.Fatalf("due today = %d notes, want 2", len(due))
	}
	if due[0].NoteID != "a" || due[1].NoteID != "b" {
		t.Errorf("order = %s,%s, want a,b (id tiebreak)", due[0].NoteID, due[1].NoteID)
	}

	// Tomorrow both today's backlog and c are due; exact match sees only c.
	tomorrow := baseTime.AddDate(0, 0, 1)
	if due := s.DueNotes(tomorrow, false, false); len(due) != 3 {
		t.Errorf("due tomorrow = %d notes, want 3 including backlog", len(due))
	}
	exact := s.DueNotes(tomorrow, false, true)
	if len(exact) != 1 || exact[0].NoteID != "c" {
		t.Errorf("exact tomorrow = %+v, want only c", exact)
	}
}

func TestDueNotesCustomOrder(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("a", 0)
	s.ScheduleNoteForReview("b", 0)
	s.ScheduleNoteForReview("c", 0)
	s.UpdateCustomNoteOrder([]string{"c", "a"})

	due := s.DueNotes(baseTime, true, false)
	if len(due) != 3 {
		t.Fatalf("due = %d notes, want 3", len(due))
	}
	want := []string{"c", "a", "b"}
	for i, id := range want {
		if due[i].NoteID != id {
			t.Fatalf("position %d = %s, want %s", i, due[i].NoteID, id)
		}
	}
}

func TestRemoveFromReview(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("a", 0)
	s.ScheduleNoteForReview("b", 0)
	s.UpdateCustomNoteOrder([]string{"a", "b"})
	s.RecordReview("a", 4, baseTime)

	if !s.RemoveFromReview("a") {
		t.Fatal("removal should succeed")
	}
	if s.RemoveFromReview("a") {
		t.Error("second removal should fail")
	}
	if _, ok := s.Schedule("a"); ok {
		t.Error("schedule still present after removal")
	}
	if order := s.CustomOrder(); len(order) != 1 || order[0] != "b" {
		t.Errorf("custom order = %v, want [b]", order)
	}
	if len(s.History()) != 1 {
		t.Error("removal must not erase history")
	}
}

func TestPostponeNote(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("a", 0)

	if !s.PostponeNote("a", 0) {
		t.Fatal("postpone should succeed")
	}
	sched, _ := s.Schedule("a")
	want := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if !sched.NextReviewDate.Equal(want) {
		t.Errorf("postpone by 0 gave %v, want minimum one day %v", sched.NextReviewDate, want)
	}

	s.PostponeNote("a", 6)
	sched, _ = s.Schedule("a")
	if !sched.NextReviewDate.Equal(want.AddDate(0, 0, 6)) {
		t.Errorf("next = %v, want %v", sched.NextReviewDate, want.AddDate(0, 0, 6))
	}
}

func TestAdvanceNote(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("today", 0)
	s.ScheduleNoteForReview("soon", 2)

	if s.AdvanceNote("today") {
		t.Error("advancing a note already due today should fail")
	}

	if !s.AdvanceNote("soon") {
		t.Fatal("advance should succeed")
	}
	sched, _ := s.Schedule("soon")
	want := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	if !sched.NextReviewDate.Equal(want) {
		t.Errorf("next = %v, want %v", sched.NextReviewDate, want)
	}

	if !s.AdvanceNote("soon") {
		t.Fatal("second advance should succeed")
	}
	sched, _ = s.Schedule("soon")
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !sched.NextReviewDate.Equal(today) {
		t.Errorf("next = %v, want floored at today %v", sched.NextReviewDate, today)
	}

	if s.AdvanceNote("soon") {
		t.Error("advancing past today should fail")
	}
}

func TestConvertRoundTrip(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("a", 0)
	s.RecordReview("a", 4, baseTime)

	if n := s.ConvertAllSm2ToFsrs(); n != 1 {
		t.Fatalf("converted %d schedules, want 1", n)
	}
	sched, _ := s.Schedule("a")
	if sched.Algorithm != models.AlgorithmFSRS || sched.FSRS == nil || sched.SM2 != nil {
		t.Fatalf("conversion left inconsistent union: %+v", sched)
	}
	if sched.ReviewCount != 1 {
		t.Errorf("review count = %d, want preserved 1", sched.ReviewCount)
	}
	if sched.FSRS.State != models.CardStateNew {
		t.Errorf("converted card state = %s, want reset to new", sched.FSRS.State)
	}

	if n := s.ConvertAllFsrsToSm2(); n != 1 {
		t.Fatalf("converted back %d schedules, want 1", n)
	}
	sched, _ = s.Schedule("a")
	if sched.Algorithm != models.AlgorithmSM2 || sched.SM2 == nil || sched.FSRS != nil {
		t.Fatalf("reverse conversion left inconsistent union: %+v", sched)
	}
	if sched.SM2.Ease != 250 {
		t.Errorf("ease = %d, want reset to base 250", sched.SM2.Ease)
	}
	if sched.ReviewCount != 1 {
		t.Errorf("review count = %d, want preserved 1", sched.ReviewCount)
	}

	if n := s.ConvertAllFsrsToSm2(); n != 0 {
		t.Errorf("converting with no fsrs schedules touched %d", n)
	}
}

func TestUnknownIDsAreTotal(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)

	if s.RecordReview("ghost", 4, baseTime) {
		t.Error("RecordReview on unknown id should be false")
	}
	if s.SkipNote("ghost", 3, baseTime) {
		t.Error("SkipNote on unknown id should be false")
	}
	if s.PostponeNote("ghost", 1) {
		t.Error("PostponeNote on unknown id should be false")
	}
	if s.AdvanceNote("ghost") {
		t.Error("AdvanceNote on unknown id should be false")
	}
	if s.RemoveFromReview("ghost") {
		t.Error("RemoveFromReview on unknown id should be false")
	}
	if r := s.Retrievability("ghost", baseTime); r != 0 {
		t.Errorf("Retrievability on unknown id = %v, want 0", r)
	}
}

func TestFSRSReviewAndRetrievability(t *testing.T) {
	settings := testSettings()
	settings.DefaultAlgorithm = models.AlgorithmFSRS
	settings.FSRSEnableShortTerm = false
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(settings, clock)
	s.ScheduleNoteForReview("a", 0)

	if !s.RecordReview("a", 4, baseTime) {
		t.Fatal("due fsrs review should succeed")
	}
	sched, _ := s.Schedule("a")
	if sched.FSRS.State != models.CardStateReview {
		t.Errorf("state = %s, want review (no short-term steps)", sched.FSRS.State)
	}
	if !sched.NextReviewDate.After(baseTime) {
		t.Errorf("next = %v, want after review moment", sched.NextReviewDate)
	}

	if r := s.Retrievability("a", baseTime); r < 0.99 {
		t.Errorf("retrievability right after review = %v, want ~1", r)
	}
	later := baseTime.AddDate(0, 1, 0)
	if r := s.Retrievability("a", later); r <= 0 || r >= 1 {
		t.Errorf("retrievability a month out = %v, want within (0, 1)", r)
	}
}

func TestFSRSCorruptStateSelfHeals(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.Restore([]models.ReviewSchedule{{
		NoteID:         "a",
		Algorithm:      models.AlgorithmFSRS,
		NextReviewDate: baseTime,
		FSRS:           &models.FSRSState{State: "garbled"},
	}}, nil, nil)

	if !s.RecordReview("a", 4, baseTime) {
		t.Fatal("review over corrupt state should still succeed")
	}
	sched, _ := s.Schedule("a")
	if sched.FSRS == nil || sched.FSRS.State == "garbled" {
		t.Errorf("corrupt state not rebuilt: %+v", sched.FSRS)
	}
}

func TestSkipRatesFSRSAgain(t *testing.T) {
	settings := testSettings()
	settings.DefaultAlgorithm = models.AlgorithmFSRS
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(settings, clock)
	s.ScheduleNoteForReview("a", 0)

	if !s.SkipNote("a", 5, baseTime) {
		t.Fatal("skip should succeed")
	}
	history := s.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	// Skips always grade Again, which normalizes to quality 0.
	if history[0].Response != 0 {
		t.Errorf("skip response = %d, want 0", history[0].Response)
	}
	sched, _ := s.Schedule("a")
	if sched.FSRS.State != models.CardStateLearning {
		t.Errorf("state = %s, want learning after Again on a new card", sched.FSRS.State)
	}
}

func TestHistoryBound(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)

	big := make([]models.HistoryItem, constants.MaxHistoryItems+25)
	for i := range big {
		big[i] = models.HistoryItem{ID: "h", NoteID: "a", Timestamp: baseTime.Add(time.Duration(i) * time.Minute)}
	}
	s.Restore(nil, big, nil)

	history := s.History()
	if len(history) != constants.MaxHistoryItems {
		t.Fatalf("history length = %d, want cap %d", len(history), constants.MaxHistoryItems)
	}
	// The oldest entries are the ones dropped.
	if !history[0].Timestamp.Equal(big[25].Timestamp) {
		t.Errorf("first kept entry = %v, want %v", history[0].Timestamp, big[25].Timestamp)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	s := newTestScheduler(testSettings(), clock)
	s.ScheduleNoteForReview("a", 0)
	s.RecordReview("a", 4, baseTime)
	s.UpdateCustomNoteOrder([]string{"a"})

	restored := newTestScheduler(testSettings(), clock)
	restored.Restore(s.Schedules(), s.History(), s.CustomOrder())

	a, _ := s.Schedule("a")
	b, ok := restored.Schedule("a")
	if !ok {
		t.Fatal("restored scheduler lost the schedule")
	}
	if !b.NextReviewDate.Equal(a.NextReviewDate) || b.SM2 == nil || b.SM2.Ease != a.SM2.Ease {
		t.Errorf("restored schedule differs: %+v vs %+v", b, a)
	}
	if len(restored.History()) != 1 || len(restored.CustomOrder()) != 1 {
		t.Error("restored history or custom order differs")
	}
}
