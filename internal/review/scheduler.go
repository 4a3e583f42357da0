// Package review orchestrates per-note review scheduling. It owns the
// schedule map, the bounded history log, and the user's custom review order,
// and dispatches each review to the SM-2 or FSRS engine selected by the
// note's algorithm tag.
//
// Every operation is total over its input domain: unknown ids and malformed
// input resolve to a false/empty result, and corrupt FSRS state is replaced
// with a fresh default card rather than surfacing an error.
package review

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/reciteapp/recite/internal/constants"
	"github.com/reciteapp/recite/internal/dateutil"
	"github.com/reciteapp/recite/internal/fsrs"
	"github.com/reciteapp/recite/internal/logger"
	"github.com/reciteapp/recite/internal/models"
	"github.com/reciteapp/recite/internal/sm2"
)

// DefaultSkipResponse is the quality assumed for a skipped review when the
// caller does not grade it. The engine applies its own skip penalty on top.
const DefaultSkipResponse = 3

// Clock supplies the current time; injectable for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock used outside tests.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// SettingsProvider hands the scheduler its configuration bundle. It is read
// once per operation so settings changes apply to the next call, never
// mid-call.
type SettingsProvider interface {
	ReviewSettings() models.Settings
}

// SettingsFunc adapts a function to the SettingsProvider interface.
type SettingsFunc func() models.Settings

func (f SettingsFunc) ReviewSettings() models.Settings { return f() }

// Config wires the scheduler's external collaborators.
type Config struct {
	Clock      Clock                // nil → SystemClock
	Settings   SettingsProvider     // nil → defaults
	NoteExists func(id string) bool // nil → every id is valid
	Seed       int64                // SM-2 jitter seed; zero → time-based
}

// Scheduler is the single owner of all scheduling state. Operations run to
// completion synchronously; each mutating call either fully succeeds or
// leaves the record at its pre-call value.
type Scheduler struct {
	clock      Clock
	settings   SettingsProvider
	noteExists func(id string) bool
	rng        *rand.Rand

	schedules   map[string]*models.ReviewSchedule
	history     []models.HistoryItem
	customOrder []string
}

// New creates a Scheduler with empty state.
func New(cfg Config) *Scheduler {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	settings := cfg.Settings
	if settings == nil {
		settings = SettingsFunc(models.DefaultSettings)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Scheduler{
		clock:      clock,
		settings:   settings,
		noteExists: cfg.NoteExists,
		rng:        rand.New(rand.NewSource(seed)),
		schedules:  make(map[string]*models.ReviewSchedule),
	}
}

// Restore loads previously persisted state into the scheduler.
func (s *Scheduler) Restore(schedules []models.ReviewSchedule, history []models.HistoryItem, customOrder []string) {
	s.schedules = make(map[string]*models.ReviewSchedule, len(schedules))
	for _, sched := range schedules {
		c := sched.Clone()
		s.schedules[sched.NoteID] = &c
	}
	s.history = append([]models.HistoryItem(nil), history...)
	s.trimHistory()
	s.customOrder = append([]string(nil), customOrder...)
}

// Schedules returns every schedule, sorted by note id.
func (s *Scheduler) Schedules() []models.ReviewSchedule {
	out := make([]models.ReviewSchedule, 0, len(s.schedules))
	for _, sched := range s.schedules {
		out = append(out, sched.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NoteID < out[j].NoteID })
	return out
}

// Schedule returns the schedule for one note.
func (s *Scheduler) Schedule(id string) (models.ReviewSchedule, bool) {
	sched, ok := s.schedules[id]
	if !ok {
		return models.ReviewSchedule{}, false
	}
	return sched.Clone(), true
}

// History returns the bounded review history, oldest first.
func (s *Scheduler) History() []models.HistoryItem {
	return append([]models.HistoryItem(nil), s.history...)
}

// CustomOrder returns the user-defined review sequence.
func (s *Scheduler) CustomOrder() []string {
	return append([]string(nil), s.customOrder...)
}

// ScheduleNoteForReview creates a schedule for the note using the configured
// default algorithm. It is a no-op returning false when the note is already
// scheduled or does not exist.
func (s *Scheduler) ScheduleNoteForReview(id string, daysFromNow int) bool {
	if id == "" {
		return false
	}
	if _, exists := s.schedules[id]; exists {
		return false
	}
	if s.noteExists != nil && !s.noteExists(id) {
		logger.Debug("refusing to schedule unknown note", "note", id)
		return false
	}

	settings := s.currentSettings()
	now := s.clock.Now()

	var sched models.ReviewSchedule
	if settings.DefaultAlgorithm == models.AlgorithmFSRS {
		card := fsrs.NewCard(now)
		if daysFromNow > 0 {
			card.Due = dateutil.StartOfUTCDay(now).AddDate(0, 0, daysFromNow)
		}
		sched = models.NewFSRSSchedule(id, stateFromCard(card), card.Due)
	} else {
		st := sm2.ComputeInitialSchedule(sm2Config(settings), daysFromNow)
		next := dateutil.StartOfUTCDay(now).AddDate(0, 0, st.Interval)
		sched = models.NewSM2Schedule(id, st, next)
	}

	s.schedules[id] = &sched
	logger.Debug("scheduled note for review", "note", id, "algorithm", sched.Algorithm, "due", sched.NextReviewDate)
	return true
}

// RemoveFromReview drops the note's schedule and its custom-order slot.
// History entries are kept; the log is append-only.
func (s *Scheduler) RemoveFromReview(id string) bool {
	if _, ok := s.schedules[id]; !ok {
		return false
	}
	delete(s.schedules, id)
	for i, ordered := range s.customOrder {
		if ordered == id {
			s.customOrder = append(s.customOrder[:i], s.customOrder[i+1:]...)
			break
		}
	}
	return true
}

// UpdateCustomNoteOrder replaces the user-defined review sequence.
func (s *Scheduler) UpdateCustomNoteOrder(ids []string) {
	s.customOrder = append([]string(nil), ids...)
}

// DueNotes returns the schedules due on or before the given date: those with
// nextReviewDate <= end of the date's UTC day, or, with matchExactDate, only
// those falling within that day. Results are ordered by due date ascending;
// with useCustomOrder the user-defined sequence takes precedence and
// unordered notes are appended in due-date order.
func (s *Scheduler) DueNotes(date time.Time, useCustomOrder, matchExactDate bool) []models.ReviewSchedule {
	dayStart := dateutil.StartOfUTCDay(date)
	dayEnd := dateutil.EndOfUTCDay(date)

	var due []models.ReviewSchedule
	for _, sched := range s.schedules {
		next := sched.NextReviewDate
		if next.After(dayEnd) {
			continue
		}
		if matchExactDate && next.Before(dayStart) {
			continue
		}
		due = append(due, sched.Clone())
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewDate.Equal(due[j].NextReviewDate) {
			return due[i].NextReviewDate.Before(due[j].NextReviewDate)
		}
		return due[i].NoteID < due[j].NoteID
	})

	if !useCustomOrder || len(s.customOrder) == 0 {
		return due
	}

	byID := make(map[string]models.ReviewSchedule, len(due))
	for _, sched := range due {
		byID[sched.NoteID] = sched
	}

	ordered := make([]models.ReviewSchedule, 0, len(due))
	for _, id := range s.customOrder {
		if sched, ok := byID[id]; ok {
			ordered = append(ordered, sched)
			delete(byID, id)
		}
	}
	for _, sched := range due {
		if _, remains := byID[sched.NoteID]; remains {
			ordered = append(ordered, sched)
		}
	}
	return ordered
}

// RecordReview grades a due note and reschedules it. A review of a note that
// is not yet due is a preview: a strict no-op returning false, repeatable
// without side effects. moment may be zero to use the current time.
func (s *Scheduler) RecordReview(id string, response int, moment time.Time) bool {
	return s.recordReview(id, response, false, moment)
}

// SkipNote records a penalized review regardless of due-ness: SM-2 drops the
// quality by one and forces a 1-day interval, FSRS rates the card Again.
func (s *Scheduler) SkipNote(id string, response int, moment time.Time) bool {
	return s.recordReview(id, response, true, moment)
}

func (s *Scheduler) recordReview(id string, response int, skipped bool, moment time.Time) bool {
	sched, ok := s.schedules[id]
	if !ok {
		return false
	}

	now := moment
	if now.IsZero() {
		now = s.clock.Now()
	}

	// Due-ness gate: reviewing early is a preview, never an error. Skips
	// bypass the gate; they are an explicit user decision to punt the note.
	if !skipped && sched.NextReviewDate.After(dateutil.EndOfUTCDay(now)) {
		return false
	}

	response = ClampQuality(response)
	settings := s.currentSettings()
	updated := sched.Clone()

	var entry models.HistoryItem
	if sched.Algorithm == models.AlgorithmFSRS {
		entry = s.reviewFSRS(&updated, settings, response, skipped, now)
	} else {
		entry = s.reviewSM2(&updated, settings, response, skipped, now)
	}

	if !skipped {
		updated.ReviewCount++
	}

	// Commit point: nothing above mutated shared state.
	s.schedules[id] = &updated
	s.appendHistory(entry)
	logger.Debug("recorded review", "note", id, "response", response, "skipped", skipped, "due", updated.NextReviewDate)
	return true
}

// reviewSM2 runs the SM-2 engine over the cloned schedule and returns the
// history entry describing the state at review time.
func (s *Scheduler) reviewSM2(sched *models.ReviewSchedule, settings models.Settings, response int, skipped bool, now time.Time) models.HistoryItem {
	cfg := sm2Config(settings)

	st := sched.SM2
	if st == nil {
		// Missing union half: rebuild from defaults rather than failing.
		fresh := sm2.ComputeInitialSchedule(cfg, 0)
		st = &fresh
	}

	entry := models.HistoryItem{
		ID:           uuid.NewString(),
		NoteID:       sched.NoteID,
		Timestamp:    now,
		Response:     response,
		IntervalDays: st.Interval,
		Ease:         st.Ease,
		Skipped:      skipped,
	}

	out := sm2.RecordReview(cfg, sm2.ReviewInput{
		Ease:            st.Ease,
		Interval:        st.Interval,
		RepetitionCount: st.RepetitionCount,
		Consecutive:     st.Consecutive,
		Category:        st.Category,
		Quality:         response,
		DaysLate:        dateutil.DaysLate(sched.NextReviewDate, now),
		Skipped:         skipped,
	}, s.rng)

	day := dateutil.StartOfUTCDay(now)
	sched.SM2 = &out
	sched.FSRS = nil
	sched.LastReviewDate = day
	sched.NextReviewDate = day.AddDate(0, 0, out.Interval)
	return entry
}

// reviewFSRS runs the FSRS engine over the cloned schedule, synthesizing a
// fresh default card when the stored state is missing or corrupt.
func (s *Scheduler) reviewFSRS(sched *models.ReviewSchedule, settings models.Settings, response int, skipped bool, now time.Time) models.HistoryItem {
	card, ok := cardFromState(sched.FSRS, sched.NextReviewDate)
	if !ok {
		logger.Warn("rebuilding corrupt scheduling state", "note", sched.NoteID)
		card = fsrs.NewCard(now)
	}

	rating := RatingFromQuality(response)
	if skipped {
		rating = fsrs.Again
	}

	entry := models.HistoryItem{
		ID:           uuid.NewString(),
		NoteID:       sched.NoteID,
		Timestamp:    now,
		Response:     QualityFromRating(rating),
		IntervalDays: card.ScheduledDays,
		Skipped:      skipped,
	}

	next := fsrsEngine(settings).ReviewCard(card, rating, now)

	st := stateFromCard(next)
	sched.FSRS = &st
	sched.SM2 = nil
	sched.LastReviewDate = now
	sched.NextReviewDate = next.Due
	return entry
}

// PostponeNote shifts the note's due date forward without touching any
// algorithm state. days below 1 is treated as 1.
func (s *Scheduler) PostponeNote(id string, days int) bool {
	sched, ok := s.schedules[id]
	if !ok {
		return false
	}
	if days < 1 {
		days = 1
	}
	sched.NextReviewDate = sched.NextReviewDate.AddDate(0, 0, days)
	return true
}

// AdvanceNote pulls the due date back one day, never earlier than the start
// of the current UTC day. Notes not scheduled beyond today are left alone.
func (s *Scheduler) AdvanceNote(id string) bool {
	sched, ok := s.schedules[id]
	if !ok {
		return false
	}

	today := dateutil.StartOfUTCDay(s.clock.Now())
	if !dateutil.StartOfUTCDay(sched.NextReviewDate).After(today) {
		return false
	}

	next := sched.NextReviewDate.AddDate(0, 0, -1)
	if next.Before(today) {
		next = today
	}
	sched.NextReviewDate = next
	return true
}

// ConvertAllSm2ToFsrs reinitializes every SM-2 schedule as a fresh FSRS card
// anchored at its last-known review instant. The conversion is deliberately
// lossy: ease and repetition progress do not translate into stability and
// difficulty, so this is a reset, not a state migration.
func (s *Scheduler) ConvertAllSm2ToFsrs() int {
	converted := 0
	for id, sched := range s.schedules {
		if sched.Algorithm != models.AlgorithmSM2 {
			continue
		}
		anchor := sched.LastReviewDate
		if anchor.IsZero() {
			anchor = s.clock.Now()
		}
		card := fsrs.NewCard(anchor)
		fresh := models.NewFSRSSchedule(id, stateFromCard(card), card.Due)
		fresh.ReviewCount = sched.ReviewCount
		fresh.LastReviewDate = sched.LastReviewDate
		s.schedules[id] = &fresh
		converted++
	}
	logger.Info("converted schedules to fsrs", "count", converted)
	return converted
}

// ConvertAllFsrsToSm2 reinitializes every FSRS schedule with fresh SM-2 state
// at the configured base ease, anchored at its last-known review instant.
// Like the reverse direction this is a documented lossy reset.
func (s *Scheduler) ConvertAllFsrsToSm2() int {
	settings := s.currentSettings()
	cfg := sm2Config(settings)

	converted := 0
	for id, sched := range s.schedules {
		if sched.Algorithm != models.AlgorithmFSRS {
			continue
		}
		anchor := sched.LastReviewDate
		if anchor.IsZero() {
			anchor = s.clock.Now()
		}
		st := sm2.ComputeInitialSchedule(cfg, 0)
		next := dateutil.StartOfUTCDay(anchor).AddDate(0, 0, st.Interval)
		fresh := models.NewSM2Schedule(id, st, next)
		fresh.ReviewCount = sched.ReviewCount
		fresh.LastReviewDate = sched.LastReviewDate
		s.schedules[id] = &fresh
		converted++
	}
	logger.Info("converted schedules to sm2", "count", converted)
	return converted
}

// Retrievability reports the estimated recall probability of an FSRS note at
// the given instant; SM-2 notes and unknown ids report 0.
func (s *Scheduler) Retrievability(id string, moment time.Time) float64 {
	sched, ok := s.schedules[id]
	if !ok || sched.Algorithm != models.AlgorithmFSRS {
		return 0
	}
	card, ok := cardFromState(sched.FSRS, sched.NextReviewDate)
	if !ok {
		return 0
	}
	if moment.IsZero() {
		moment = s.clock.Now()
	}
	return fsrsEngine(s.currentSettings()).Retrievability(card, moment)
}

func (s *Scheduler) currentSettings() models.Settings {
	settings := s.settings.ReviewSettings()
	models.ApplyDefaultSettings(&settings)
	return settings
}

func (s *Scheduler) appendHistory(entry models.HistoryItem) {
	s.history = append(s.history, entry)
	s.trimHistory()
}

func (s *Scheduler) trimHistory() {
	if excess := len(s.history) - constants.MaxHistoryItems; excess > 0 {
		s.history = append([]models.HistoryItem(nil), s.history[excess:]...)
	}
}

// sm2Config projects the settings bundle onto the SM-2 engine config.
func sm2Config(settings models.Settings) sm2.Config {
	return sm2.Config{
		BaseEase:           settings.BaseEase,
		MaximumInterval:    settings.MaximumInterval,
		LoadBalance:        settings.LoadBalance,
		UseInitialSchedule: settings.UseInitialSchedule,
		InitialIntervals:   settings.InitialIntervals,
	}
}

// fsrsEngine builds an FSRS scheduler from the settings bundle. Invalid
// configuration degrades to engine defaults; scheduling must stay total.
func fsrsEngine(settings models.Settings) *fsrs.Scheduler {
	eng, err := fsrs.NewScheduler(fsrs.Config{
		Weights:          settings.FSRSWeights,
		RequestRetention: settings.FSRSRequestRetention,
		MaximumInterval:  settings.FSRSMaximumInterval,
		LearningSteps:    minutesToDurations(settings.FSRSLearningSteps),
		RelearningSteps:  minutesToDurations(settings.FSRSRelearningSteps),
		EnableFuzz:       settings.FSRSEnableFuzz,
		EnableShortTerm:  settings.FSRSEnableShortTerm,
	})
	if err != nil {
		logger.Warn("invalid fsrs configuration, using defaults", "error", err)
		eng, _ = fsrs.NewScheduler(fsrs.Config{
			EnableFuzz:      settings.FSRSEnableFuzz,
			EnableShortTerm: settings.FSRSEnableShortTerm,
		})
	}
	return eng
}

func minutesToDurations(minutes []int) []time.Duration {
	if minutes == nil {
		return nil
	}
	out := make([]time.Duration, len(minutes))
	for i, m := range minutes {
		out[i] = time.Duration(m) * time.Minute
	}
	return out
}
