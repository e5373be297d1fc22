// 16 Oct 2026

package pwm

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// sameShape is checked before comparing two matrices column by column.
func sameShape(p, q *PWM) error {
	if p.alphabet != q.alphabet {
		return errors.Errorf("alphabets differ, %q and %q", p.alphabet, q.alphabet)
	}
	if p.Len() != q.Len() {
		return errors.Errorf("lengths differ, %d and %d", p.Len(), q.Len())
	}
	return nil
}

// KL returns the Kullback-Leibler divergence D(p||q) of each column in
// bits, after normalising both matrices. When one of the distributions
// goes to zero, divergence goes to infinity. Where q is zero and p is
// not, q is replaced by eps, a pseudo-count. eps of 1/(N+1) is
// reasonable for q counted from N sites.
func KL(p, q *PWM, eps float64) ([]float64, error) {
	if err := sameShape(p, q); err != nil {
		return nil, err
	}
	if !(eps > 0) {
		return nil, errors.Errorf("kl pseudo-count %g", eps)
	}
	pn, qn := p.Normalize(), q.Normalize()
	kl := make([]float64, p.Len())
	for icol := range kl { //                     icol position in motif
		pcol, qcol := pn.Column(icol), qn.Column(icol)
		for irow, pf := range pcol { //             irow is symbol
			if pf == 0 {
				continue
			}
			qf := qcol[irow]
			if qf == 0 {
				qf = eps
			}
			kl[icol] += pf * math.Log2(pf/qf)
		}
	}
	return kl, nil
}

// CosSim returns the cosine of the angle between each pair of columns.
// A column of zeros has no direction and gives zero.
func CosSim(p, q *PWM) ([]float64, error) {
	if err := sameShape(p, q); err != nil {
		return nil, err
	}
	cos := make([]float64, p.Len())
	for i := range cos {
		pv, qv := p.Column(i), q.Column(i)
		np, nq := floats.Norm(pv, 2), floats.Norm(qv, 2)
		if np == 0 || nq == 0 {
			continue
		}
		cos[i] = floats.Dot(pv, qv) / (np * nq)
	}
	return cos, nil
}
