package fsrs

import (
	"fmt"
	"math"
)

// WeightCount is the size of the full model weight vector (FSRS-5).
const WeightCount = 19

// legacyWeightCount is the FSRS-4.5 vector length; such vectors are accepted
// and padded with the default short-term weights w[17] and w[18].
const legacyWeightCount = 17

// DefaultWeights are the default FSRS-5 model weights w[0]..w[18].
var DefaultWeights = [WeightCount]float64{
	0.4072,  // w0  initial stability for Again
	1.1829,  // w1  initial stability for Hard
	3.1262,  // w2  initial stability for Good
	15.4722, // w3  initial stability for Easy
	7.2102,  // w4  initial difficulty offset
	0.5316,  // w5  initial difficulty slope
	1.0651,  // w6  difficulty delta per rating
	0.0046,  // w7  difficulty mean-reversion weight
	1.5418,  // w8  recall stability: exp(w8)
	0.1594,  // w9  recall stability: S^(-w9)
	1.01,    // w10 recall stability: exp(w10*(1-R)) - 1
	2.1791,  // w11 forget stability multiplier
	0.0292,  // w12 forget stability: D^(-w12)
	0.2788,  // w13 forget stability: (S+1)^w13 - 1
	0.2229,  // w14 forget stability: exp(w14*(1-R))
	0.2604,  // w15 hard penalty
	3.3928,  // w16 easy bonus
	0.2223,  // w17 short-term stability factor
	0.6744,  // w18 short-term stability offset
}

// ResolveWeights validates and normalizes a configured weight vector.
// nil means "use the defaults"; a 17-entry vector is padded with the default
// short-term weights; a 19-entry vector is used as-is.
func ResolveWeights(ws []float64) ([WeightCount]float64, error) {
	switch len(ws) {
	case 0:
		return DefaultWeights, nil
	case legacyWeightCount, WeightCount:
	default:
		return [WeightCount]float64{}, fmt.Errorf("%w: got %d weights, want %d or %d",
			ErrInvalidWeights, len(ws), legacyWeightCount, WeightCount)
	}

	w := DefaultWeights
	copy(w[:], ws)
	if err := validateWeights(w); err != nil {
		return [WeightCount]float64{}, err
	}
	return w, nil
}

// validateWeights checks that all weights are finite and the initial
// stabilities are positive.
func validateWeights(w [WeightCount]float64) error {
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: w[%d] = %v", ErrInvalidWeights, i, v)
		}
	}
	for i := 0; i < 4; i++ {
		if w[i] <= 0 {
			return fmt.Errorf("%w: initial stability w[%d] = %v must be positive", ErrInvalidWeights, i, w[i])
		}
	}
	return nil
}
