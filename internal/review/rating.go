package review

import "github.com/reciteapp/recite/internal/fsrs"

// Every rating-scale coercion in the engine goes through this file so all
// call sites share identical semantics: the 0–5 SM-2 quality scale, the
// 4-point FSRS rating scale, and the continuous [0,1] score used by
// free-form response grading.

// Score thresholds for mapping a continuous [0,1] grade onto FSRS ratings.
const (
	ScoreEasy = 0.90
	ScoreGood = 0.70
	ScoreHard = 0.50
)

// RatingFromScore maps a continuous score in [0,1] to an FSRS rating.
func RatingFromScore(score float64) fsrs.Rating {
	switch {
	case score >= ScoreEasy:
		return fsrs.Easy
	case score >= ScoreGood:
		return fsrs.Good
	case score >= ScoreHard:
		return fsrs.Hard
	default:
		return fsrs.Again
	}
}

// RatingFromQuality maps a 0–5 SM-2 quality rating to an FSRS rating.
func RatingFromQuality(quality int) fsrs.Rating {
	switch {
	case quality >= 5:
		return fsrs.Easy
	case quality >= 3:
		return fsrs.Good
	case quality == 2:
		return fsrs.Hard
	default:
		return fsrs.Again
	}
}

// QualityFromRating maps an FSRS rating back onto the 0–5 quality scale used
// for normalized history entries.
func QualityFromRating(r fsrs.Rating) int {
	switch r {
	case fsrs.Easy:
		return 5
	case fsrs.Good:
		return 4
	case fsrs.Hard:
		return 3
	default:
		return 0
	}
}

// ClampQuality bounds a caller-supplied response to the 0–5 scale.
func ClampQuality(quality int) int {
	if quality < 0 {
		return 0
	}
	if quality > 5 {
		return 5
	}
	return quality
}
