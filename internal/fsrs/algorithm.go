package fsrs

import "math"

// MinStability is the floor for stability values.
const MinStability = 0.1

// algo holds the weight vector behind the FSRS-5 formulas.
type algo struct {
	w [WeightCount]float64
}

// retrievability computes R(t, S) = (1 + t/(9S))^-1.
func (a *algo) retrievability(elapsedDays int, stability float64) float64 {
	if stability <= 0 {
		return 0
	}
	return math.Pow(1+float64(elapsedDays)/(9*stability), -1)
}

// nextInterval converts stability and requested retention to days:
// I(S, r) = round(9S(1/r - 1)), clamped to [1, maxIvl].
func (a *algo) nextInterval(stability, requestRetention float64, maxIvl int) int {
	if requestRetention <= 0 || requestRetention >= 1 {
		return 1
	}
	ivl := int(math.Round(9 * stability * (1/requestRetention - 1)))
	if ivl < 1 {
		ivl = 1
	}
	if ivl > maxIvl {
		ivl = maxIvl
	}
	return ivl
}

// initStability returns S₀(G) = max(w[G-1], MinStability).
func (a *algo) initStability(r Rating) float64 {
	return math.Max(MinStability, a.w[r-1])
}

// initDifficulty returns D₀(G) = w4 - e^(w5*(G-1)) + 1, clamped to [1, 10]
// unless clamp is false (the mean-reversion target uses the raw value).
func (a *algo) initDifficulty(r Rating, clamp bool) float64 {
	d := a.w[4] - math.Exp(a.w[5]*float64(r-1)) + 1
	if clamp {
		return clampD(d)
	}
	return d
}

// nextDifficulty applies the per-rating delta with mean reversion toward
// D₀(Easy): D' = w7*D₀(4) + (1-w7)*(D - w6*(G-3)).
func (a *algo) nextDifficulty(d float64, r Rating) float64 {
	reverted := a.w[7]*a.initDifficulty(Easy, false) + (1-a.w[7])*(d-a.w[6]*(float64(r)-3))
	return clampD(reverted)
}

// nextRecallStability computes stability after a successful recall:
// S'ᵣ = S * (1 + e^w8 * (11-D) * S^(-w9) * (e^(w10*(1-R)) - 1) * hardPenalty * easyBonus).
func (a *algo) nextRecallStability(s, d, r float64, rating Rating) float64 {
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = a.w[15]
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = a.w[16]
	}
	newS := s * (1 + math.Exp(a.w[8])*
		(11-d)*
		math.Pow(s, -a.w[9])*
		(math.Exp(a.w[10]*(1-r))-1)*
		hardPenalty*easyBonus)
	return math.Max(MinStability, newS)
}

// nextForgetStability computes post-lapse stability, capped so a lapse can
// never leave the card more stable than S/e^(w17*w18):
// S'f = w11 * D^(-w12) * ((S+1)^w13 - 1) * e^(w14*(1-R)).
func (a *algo) nextForgetStability(s, d, r float64) float64 {
	forget := a.w[11] *
		math.Pow(d, -a.w[12]) *
		(math.Pow(s+1, a.w[13]) - 1) *
		math.Exp(a.w[14]*(1-r))
	ceiling := s / math.Exp(a.w[17]*a.w[18])
	return math.Max(MinStability, math.Min(forget, ceiling))
}

// shortTermStability handles same-day reviews: S' = S * e^(w17*(G-3+w18)).
func (a *algo) shortTermStability(s float64, rating Rating) float64 {
	return math.Max(MinStability, s*math.Exp(a.w[17]*(float64(rating)-3+a.w[18])))
}

// clampD constrains difficulty to [1, 10].
func clampD(d float64) float64 {
	return math.Min(math.Max(d, 1), 10)
}
