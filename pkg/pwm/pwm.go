// 9 Oct 2026

// Package pwm holds position weight matrices, the log-odds scoring
// matrices derived from them and the distribution of scores a scoring
// matrix gives.
//
// A matrix has one row for each symbol of its alphabet and one column
// for each position in the motif. Rows and columns are indexed from zero.
package pwm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PWM is a position weight matrix. The values are frequencies or counts
// of each symbol at each position of an aligned set of sites.
// A PWM is not changed after it has been made.
type PWM struct {
	alphabet Alphabet
	mat      *mat.Dense // [symbol][position]
}

// New makes a weight matrix from a map of symbol to the values at each
// position. Every symbol of the alphabet must be present and all rows
// must have the same, non-zero length.
func New(a Alphabet, vals map[byte][]float64) (*PWM, error) {
	if a.Len() == 0 {
		return nil, errors.New("empty alphabet")
	}
	length := -1
	for i := 0; i < a.Len(); i++ {
		row, ok := vals[a[i]]
		if !ok {
			return nil, errors.Errorf("no values for symbol %c", a[i])
		}
		if length == -1 {
			length = len(row)
		}
		if len(row) != length {
			return nil, errors.Errorf("symbol %c has %d positions, wanted %d", a[i], len(row), length)
		}
	}
	if length == 0 {
		return nil, errors.New("weight matrix with zero positions")
	}
	if len(vals) != a.Len() {
		return nil, errors.Errorf("%d symbols given for alphabet %q", len(vals), a)
	}
	m := mat.NewDense(a.Len(), length, nil)
	for i := 0; i < a.Len(); i++ {
		m.SetRow(i, vals[a[i]])
	}
	return fromDense(a, m)
}

// FromRows makes a matrix from a slice of rows in alphabet order.
func FromRows(a Alphabet, rows [][]float64) (*PWM, error) {
	if len(rows) != a.Len() {
		return nil, errors.Errorf("%d rows for alphabet %q", len(rows), a)
	}
	vals := make(map[byte][]float64, a.Len())
	for i, r := range rows {
		vals[a[i]] = r
	}
	return New(a, vals)
}

// fromDense takes ownership of m after checking the values.
func fromDense(a Alphabet, m *mat.Dense) (*PWM, error) {
	r, c := m.Dims()
	if r != a.Len() {
		return nil, errors.Errorf("matrix has %d rows for alphabet %q", r, a)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v < 0 || math.IsNaN(v) {
				return nil, errors.Errorf("weight %g for %c at position %d", v, a[i], j)
			}
		}
	}
	return &PWM{alphabet: a, mat: m}, nil
}

// Len is the number of positions.
func (p *PWM) Len() int {
	_, c := p.mat.Dims()
	return c
}

// Alphabet returns the alphabet of the matrix.
func (p *PWM) Alphabet() Alphabet { return p.alphabet }

// At returns the value for symbol c at position pos. It panics if c is
// not in the alphabet, like any other index out of range.
func (p *PWM) At(c byte, pos int) float64 {
	i := p.alphabet.Index(c)
	if i < 0 {
		panic(fmt.Sprintf("symbol %q not in alphabet %q", c, p.alphabet))
	}
	return p.mat.At(i, pos)
}

// Column returns a copy of the values at position pos in alphabet order.
func (p *PWM) Column(pos int) []float64 {
	return mat.Col(nil, pos, p.mat)
}

// Normalize returns a copy of p in which each column sums to one.
// A column of zeros stays zero.
func (p *PWM) Normalize() *PWM {
	r, c := p.mat.Dims()
	m := mat.NewDense(r, c, nil)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, p.mat)
		if s := floats.Sum(col); s != 0 {
			floats.Scale(1/s, col)
		}
		m.SetCol(j, col)
	}
	return &PWM{alphabet: p.alphabet, mat: m}
}

// LogOdds converts the matrix to log-odds scores against the background,
// log2 (pwm / background). A zero in the matrix gives -Inf. A zero in
// the background gives +Inf or NaN. Neither is caught, the caller gets
// what the arithmetic gives.
func (p *PWM) LogOdds(bg Background) (*PSSM, error) {
	if err := bg.Check(p.alphabet); err != nil {
		return nil, errors.Wrap(err, "log odds")
	}
	r, c := p.mat.Dims()
	m := mat.NewDense(r, c, nil)
	m.Apply(func(i, j int, v float64) float64 {
		return math.Log2(v / bg[p.alphabet[i]])
	}, p.mat)
	return &PSSM{alphabet: p.alphabet, mat: m}, nil
}

// Entropy returns the Shannon entropy in bits of each column of the
// normalised matrix. Zero entries do not contribute.
func (p *PWM) Entropy() []float64 {
	n := p.Normalize()
	ncol := n.Len()
	entropy := make([]float64, ncol)
	for icol := 0; icol < ncol; icol++ {
		total := 0.0
		for _, f := range n.Column(icol) {
			if f == 0 {
				continue
			}
			total += f * math.Log2(f)
		}
		entropy[icol] = -total
	}
	return entropy
}

// String prints one line per symbol, for debugging.
func (p *PWM) String() string { return matString(p.alphabet, p.mat) }

func matString(a Alphabet, m *mat.Dense) string {
	var sb strings.Builder
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		sb.WriteByte(a[i])
		for j := 0; j < c; j++ {
			fmt.Fprintf(&sb, " %7.3f", m.At(i, j))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatFloat(x float64) string { return strconv.FormatFloat(x, 'g', 4, 64) }
