// 10 Oct 2026

package pwm_test

import (
	"math"
	"testing"

	. "github.com/andrew-torda/tfbind/pkg/pwm"
)

func approxEqual(x, y float64) bool {
	const eps = 1e-9
	d := x - y
	return d < eps && d > -eps
}

// uniform makes a matrix with 0.25 everywhere
func uniform(t *testing.T, length int) *PWM {
	row := make([]float64, length)
	for i := range row {
		row[i] = 0.25
	}
	p, err := FromRows(DNA, [][]float64{row, row, row, row})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustRows(t *testing.T, rows [][]float64) *PWM {
	p, err := FromRows(DNA, rows)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// two motifs of length 3
var (
	rowsP = [][]float64{
		{0.7, 0.1, 0.0},
		{0.1, 0.7, 0.2},
		{0.1, 0.1, 0.1},
		{0.1, 0.1, 0.7},
	}
	rowsQ = [][]float64{
		{0.1, 0.25, 0.4},
		{0.1, 0.25, 0.4},
		{0.4, 0.25, 0.1},
		{0.4, 0.25, 0.1},
	}
)

func samePWM(t *testing.T, p, q *PWM) {
	t.Helper()
	if p.Len() != q.Len() || p.Alphabet() != q.Alphabet() {
		t.Fatalf("shapes differ %d %q vs %d %q", p.Len(), p.Alphabet(), q.Len(), q.Alphabet())
	}
	for i := 0; i < p.Len(); i++ {
		for _, c := range []byte(p.Alphabet()) {
			if !approxEqual(p.At(c, i), q.At(c, i)) {
				t.Fatalf("%c pos %d: %g vs %g", c, i, p.At(c, i), q.At(c, i))
			}
		}
	}
}

func TestCombineUniform(t *testing.T) {
	c, err := Combine([]*PWM{uniform(t, 4), uniform(t, 4)}, []float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	samePWM(t, c, uniform(t, 4))
	pssm, err := c.LogOdds(Uniform(DNA))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		for _, s := range []byte("ACGT") {
			if v := pssm.At(s, i); v != 0 {
				t.Fatalf("uniform pssm %c %d got %g", s, i, v)
			}
		}
	}
	if m := pssm.Mean(); m != 0 {
		t.Fatal("information content of uniform matrix", m)
	}
}

func TestCombineWeighted(t *testing.T) {
	p, q := mustRows(t, rowsP), mustRows(t, rowsQ)
	c, err := Combine([]*PWM{p, q}, []float64{3, 1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for _, s := range []byte("ACGT") {
			want := 0.75*p.At(s, i) + 0.25*q.At(s, i)
			if got := c.At(s, i); !approxEqual(got, want) {
				t.Fatalf("%c %d got %g want %g", s, i, got, want)
			}
		}
	}

	equal, _ := Combine([]*PWM{p, q}, []float64{1, 1})
	for i := 0; i < 3; i++ {
		for _, s := range []byte("ACGT") {
			if got, want := equal.At(s, i), (p.At(s, i)+q.At(s, i))/2; !approxEqual(got, want) {
				t.Fatalf("equal weights %c %d got %g want %g", s, i, got, want)
			}
		}
	}
}

// TestScaleWeights checks only the ratio of weights matters.
func TestScaleWeights(t *testing.T) {
	p, q := mustRows(t, rowsP), mustRows(t, rowsQ)
	a, err := Combine([]*PWM{p, q}, []float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Combine([]*PWM{p, q}, []float64{10, 10})
	if err != nil {
		t.Fatal(err)
	}
	samePWM(t, a, b)
}

// TestSelfCombine mixing a matrix with itself should give it back.
func TestSelfCombine(t *testing.T) {
	p := mustRows(t, rowsP)
	for _, w := range [][]float64{{1, 1}, {0.2, 5}, {0, 3}, {1e-3, 1e3}} {
		c, err := Combine([]*PWM{p, p}, w)
		if err != nil {
			t.Fatal(err)
		}
		samePWM(t, c, p)
	}
}

func TestCombineErrors(t *testing.T) {
	p, q := mustRows(t, rowsP), mustRows(t, rowsQ)
	short := uniform(t, 2)
	rna, err := FromRows(Alphabet("ACGU"), rowsP)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name    string
		pwms    []*PWM
		weights []float64
	}{
		{"empty", nil, nil},
		{"length", []*PWM{p, short}, []float64{1, 1}},
		{"alphabet", []*PWM{p, rna}, []float64{1, 1}},
		{"nweights", []*PWM{p, q}, []float64{1}},
		{"zero sum", []*PWM{p, q}, []float64{0, 0}},
		{"negative", []*PWM{p, q}, []float64{-1, 2}},
		{"nan", []*PWM{p, q}, []float64{math.NaN(), 2}},
	}
	for _, c := range cases {
		if _, err := Combine(c.pwms, c.weights); err == nil {
			t.Errorf("%s: combine should have failed", c.name)
		}
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := FromRows(DNA, rowsP[:3]); err == nil {
		t.Error("three rows for four symbols")
	}
	if _, err := FromRows(DNA, [][]float64{{1}, {1, 2}, {1}, {1}}); err == nil {
		t.Error("ragged rows")
	}
	if _, err := FromRows(DNA, [][]float64{{}, {}, {}, {}}); err == nil {
		t.Error("zero length")
	}
	if _, err := FromRows(DNA, [][]float64{{-1}, {1}, {1}, {1}}); err == nil {
		t.Error("negative weight")
	}
	if _, err := New(DNA, map[byte][]float64{'A': {1}, 'C': {1}, 'G': {1}}); err == nil {
		t.Error("missing symbol")
	}
}

func TestLogOdds(t *testing.T) {
	p := mustRows(t, rowsQ)
	bg := Background{'A': 0.3, 'C': 0.2, 'G': 0.2, 'T': 0.3}
	pssm, err := p.LogOdds(bg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < p.Len(); i++ {
		for _, s := range []byte("ACGT") {
			want := math.Log2(p.At(s, i) / bg[s])
			if got := pssm.At(s, i); !approxEqual(got, want) {
				t.Fatalf("%c %d got %g want %g", s, i, got, want)
			}
		}
	}
	// lower case symbols go to the same row
	if pssm.At('a', 0) != pssm.At('A', 0) {
		t.Fatal("lower case lookup")
	}
}

// TestLogOddsZero shows a zero weight turns into -Inf and is not caught.
func TestLogOddsZero(t *testing.T) {
	p := mustRows(t, rowsP)
	pssm, err := p.LogOdds(Uniform(DNA))
	if err != nil {
		t.Fatal(err)
	}
	if v := pssm.At('A', 2); !math.IsInf(v, -1) {
		t.Fatal("wanted -Inf, got", v)
	}
	if m := pssm.Mean(); !math.IsInf(m, -1) {
		t.Fatal("mean with -Inf entry got", m)
	}
	if _, ok := pssm.Lookup('N', 0); ok {
		t.Fatal("lookup of N should fail")
	}
}

func TestBackgroundCheck(t *testing.T) {
	bad := []Background{
		{'A': 0.5, 'C': 0.5},
		{'A': 0.5, 'C': 0.5, 'G': 0.5, 'T': 0.5},
		{'A': -0.5, 'C': 0.5, 'G': 0.5, 'T': 0.5},
		{'A': 0.25, 'C': 0.25, 'G': 0.25, 'T': 0.25, 'N': 0},
	}
	for _, bg := range bad {
		if err := bg.Check(DNA); err == nil {
			t.Errorf("background %v should fail", bg)
		}
	}
	if err := Uniform(DNA).Check(DNA); err != nil {
		t.Fatal(err)
	}
}

func TestEntropy(t *testing.T) {
	p := mustRows(t, [][]float64{
		{1, 0.25, 2},
		{0, 0.25, 2},
		{0, 0.25, 0},
		{0, 0.25, 0},
	})
	want := []float64{0, 2, 1}
	for i, e := range p.Entropy() {
		if !approxEqual(e, want[i]) {
			t.Fatalf("entropy col %d got %g want %g", i, e, want[i])
		}
	}
}

func TestNormalize(t *testing.T) {
	p := mustRows(t, [][]float64{{2, 0}, {2, 0}, {4, 0}, {0, 0}})
	n := p.Normalize()
	want := []float64{0.25, 0.25, 0.5, 0}
	for i, v := range n.Column(0) {
		if !approxEqual(v, want[i]) {
			t.Fatal("normalize got", n.Column(0))
		}
	}
	for _, v := range n.Column(1) {
		if v != 0 {
			t.Fatal("zero column changed", n.Column(1))
		}
	}
	if p.At('A', 0) != 2 {
		t.Fatal("Normalize changed the original")
	}
}

// TestCombineCounts mixes a matrix of counts with one of frequencies.
func TestCombineCounts(t *testing.T) {
	five := [][]float64{{5, 5}, {5, 5}, {5, 5}, {5, 5}}
	counts := mustRows(t, five)
	c, err := Combine([]*PWM{counts}, []float64{1})
	if err != nil {
		t.Fatal(err)
	}
	samePWM(t, c, uniform(t, 2))
	pssm, err := c.LogOdds(Uniform(DNA))
	if err != nil {
		t.Fatal(err)
	}
	if m := pssm.Mean(); m != 0 {
		t.Fatal("information content of counts", m)
	}

	p := mustRows(t, [][]float64{{0.7, 0.1}, {0.1, 0.7}, {0.1, 0.1}, {0.1, 0.1}})
	mixed, err := Combine([]*PWM{counts, p}, []float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		sum := 0.0
		for _, s := range []byte("ACGT") {
			want := (0.25 + p.At(s, i)) / 2
			if got := mixed.At(s, i); !approxEqual(got, want) {
				t.Errorf("%c %d got %g want %g", s, i, got, want)
			}
			sum += mixed.At(s, i)
		}
		if !approxEqual(sum, 1) {
			t.Errorf("column %d sums to %g", i, sum)
		}
	}
}
