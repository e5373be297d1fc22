// 9 Oct 2026

package pwm

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Combine makes one matrix from several, as the weighted average
//
//	combined[c][i] = sum_k pwms[k][c][i] * weights[k] / sum(weights)
//
// Each matrix is normalised first, so counts and frequencies can be
// mixed and the weights alone say how much each one contributes.
// All matrices must have the same length and alphabet and there must be
// one weight per matrix. Weights may not be negative and must not sum
// to zero. Only the ratios of the weights matter.
func Combine(pwms []*PWM, weights []float64) (*PWM, error) {
	if len(pwms) == 0 {
		return nil, errors.New("combine: no weight matrices")
	}
	if len(weights) != len(pwms) {
		return nil, errors.Errorf("combine: %d weights for %d matrices", len(weights), len(pwms))
	}
	length := pwms[0].Len()
	alphabet := pwms[0].Alphabet()
	for i, p := range pwms {
		if p.Len() != length {
			return nil, errors.Errorf("combine: matrix %d has length %d, matrix 0 has %d", i, p.Len(), length)
		}
		if p.Alphabet() != alphabet {
			return nil, errors.Errorf("combine: matrix %d alphabet %q, matrix 0 has %q", i, p.Alphabet(), alphabet)
		}
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, errors.Errorf("combine: weight %d is %g", i, w)
		}
	}
	total := floats.Sum(weights)
	if total == 0 {
		return nil, errors.New("combine: weights sum to zero")
	}

	r, c := pwms[0].mat.Dims()
	combined := mat.NewDense(r, c, nil)
	var scaled mat.Dense
	for k, p := range pwms {
		scaled.Scale(weights[k]/total, p.Normalize().mat)
		combined.Add(combined, &scaled)
	}
	return &PWM{alphabet: alphabet, mat: combined}, nil
}
