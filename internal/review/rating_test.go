package review

import (
	"testing"

	"github.com/reciteapp/recite/internal/fsrs"
)

func TestRatingFromQuality(t *testing.T) {
	cases := []struct {
		quality int
		want    fsrs.Rating
	}{
		{5, fsrs.Easy},
		{4, fsrs.Good},
		{3, fsrs.Good},
		{2, fsrs.Hard},
		{1, fsrs.Again},
		{0, fsrs.Again},
	}
	for _, c := range cases {
		if got := RatingFromQuality(c.quality); got != c.want {
			t.Errorf("RatingFromQuality(%d) = %v, want %v", c.quality, got, c.want)
		}
	}
}

func TestRatingFromScore(t *testing.T) {
	cases := []struct {
		score float64
		want  fsrs.Rating
	}{
		{1.0, fsrs.Easy},
		{0.90, fsrs.Easy},
		{0.89, fsrs.Good},
		{0.70, fsrs.Good},
		{0.60, fsrs.Hard},
		{0.50, fsrs.Hard},
		{0.49, fsrs.Again},
		{0, fsrs.Again},
	}
	for _, c := range cases {
		if got := RatingFromScore(c.score); got != c.want {
			t.Errorf("RatingFromScore(%v) = %v, want %v", c.score, got, c.want)
		}
	}
}

func TestQualityFromRating(t *testing.T) {
	cases := []struct {
		rating fsrs.Rating
		want   int
	}{
		{fsrs.Easy, 5},
		{fsrs.Good, 4},
		{fsrs.Hard, 3},
		{fsrs.Again, 0},
	}
	for _, c := range cases {
		if got := QualityFromRating(c.rating); got != c.want {
			t.Errorf("QualityFromRating(%v) = %d, want %d", c.rating, got, c.want)
		}
	}
}
