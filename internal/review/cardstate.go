package review

import (
	"time"

	"github.com/reciteapp/recite/internal/fsrs"
	"github.com/reciteapp/recite/internal/models"
)

var cardStateByModel = map[models.CardState]fsrs.State{
	models.CardStateNew:        fsrs.New,
	models.CardStateLearning:   fsrs.Learning,
	models.CardStateReview:     fsrs.Review,
	models.CardStateRelearning: fsrs.Relearning,
}

var modelByCardState = map[fsrs.State]models.CardState{
	fsrs.New:        models.CardStateNew,
	fsrs.Learning:   models.CardStateLearning,
	fsrs.Review:     models.CardStateReview,
	fsrs.Relearning: models.CardStateRelearning,
}

// cardFromState rebuilds an engine card from the persisted union half.
// The bool result is false when the stored state is unusable and the caller
// should synthesize a fresh card instead.
func cardFromState(st *models.FSRSState, due time.Time) (fsrs.Card, bool) {
	if st == nil {
		return fsrs.Card{}, false
	}
	state, ok := cardStateByModel[st.State]
	if !ok {
		return fsrs.Card{}, false
	}
	card := fsrs.Card{
		State:         state,
		Step:          st.Step,
		Stability:     st.Stability,
		Difficulty:    st.Difficulty,
		ElapsedDays:   st.ElapsedDays,
		ScheduledDays: st.ScheduledDays,
		Reps:          st.Reps,
		Lapses:        st.Lapses,
		Due:           due,
	}
	if st.LastReview != nil {
		t := *st.LastReview
		card.LastReview = &t
	}
	return card, true
}

// stateFromCard converts an engine card into the persisted union half.
func stateFromCard(card fsrs.Card) models.FSRSState {
	st := models.FSRSState{
		State:         modelByCardState[card.State],
		Step:          card.Step,
		Stability:     card.Stability,
		Difficulty:    card.Difficulty,
		ElapsedDays:   card.ElapsedDays,
		ScheduledDays: card.ScheduledDays,
		Reps:          card.Reps,
		Lapses:        card.Lapses,
	}
	if card.LastReview != nil {
		t := *card.LastReview
		st.LastReview = &t
	}
	return st
}
