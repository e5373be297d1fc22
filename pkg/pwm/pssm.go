// 9 Oct 2026

package pwm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PSSM is a position specific scoring matrix, log2 of the ratio of the
// weight matrix to the background.
type PSSM struct {
	alphabet Alphabet
	mat      *mat.Dense // [symbol][position]
}

// Len is the number of positions.
func (s *PSSM) Len() int {
	_, c := s.mat.Dims()
	return c
}

// Alphabet returns the alphabet of the matrix.
func (s *PSSM) Alphabet() Alphabet { return s.alphabet }

// At returns the score for symbol c at position pos. It panics if c is
// not in the alphabet.
func (s *PSSM) At(c byte, pos int) float64 {
	i := s.alphabet.Index(c)
	if i < 0 {
		panic(fmt.Sprintf("symbol %q not in alphabet %q", c, s.alphabet))
	}
	return s.mat.At(i, pos)
}

// Lookup is At for callers who would rather not recover from a panic.
func (s *PSSM) Lookup(c byte, pos int) (float64, bool) {
	i := s.alphabet.Index(c)
	if i < 0 || pos < 0 || pos >= s.Len() {
		return 0, false
	}
	return s.mat.At(i, pos), true
}

// Column returns a copy of the scores at position pos.
func (s *PSSM) Column(pos int) []float64 {
	return mat.Col(nil, pos, s.mat)
}

// Mean is the average over every entry in the matrix, all positions and
// all symbols. A single -Inf entry makes it -Inf.
func (s *PSSM) Mean() float64 {
	r, c := s.mat.Dims()
	return mat.Sum(s.mat) / float64(r*c)
}

// Max is the highest score any sequence can get, the sum of the best
// entry in each column. Min is the lowest finite score. Entries of -Inf
// are ignored, since a sequence that hits one is never interesting.
func (s *PSSM) Max() float64 { return s.colSum(floats.Max) }

// Min is described with Max.
func (s *PSSM) Min() float64 { return s.colSum(floats.Min) }

func (s *PSSM) colSum(f func([]float64) float64) float64 {
	var total float64
	for j := 0; j < s.Len(); j++ {
		col := finite(s.Column(j))
		if len(col) == 0 {
			continue
		}
		total += f(col)
	}
	return total
}

// finite filters out the infinite and NaN entries, in place.
func finite(x []float64) []float64 {
	r := x[:0]
	for _, v := range x {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			r = append(r, v)
		}
	}
	return r
}

// ExpectedScore is the mean score of sequences drawn from the motif,
// sum over positions and symbols of p * log2 (p / b), where
// p = b * 2**score. It is the relative entropy of the motif against the
// background in bits.
func (s *PSSM) ExpectedScore(bg Background) float64 {
	var sx float64
	r, c := s.mat.Dims()
	for i := 0; i < r; i++ {
		b := bg[s.alphabet[i]]
		for j := 0; j < c; j++ {
			lo := s.mat.At(i, j)
			if math.IsNaN(lo) || math.IsInf(lo, -1) {
				continue
			}
			p := b * math.Exp2(lo)
			sx += p * lo
		}
	}
	return sx
}

// String prints one line per symbol.
func (s *PSSM) String() string { return matString(s.alphabet, s.mat) }
