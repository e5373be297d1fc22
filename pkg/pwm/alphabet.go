// 9 Oct 2026

package pwm

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Alphabet is the ordered set of symbols a matrix has rows for.
// Row i of a matrix belongs to symbol Alphabet[i].
type Alphabet string

// DNA is the only alphabet we really use.
const DNA Alphabet = "ACGT"

// Len is the number of symbols.
func (a Alphabet) Len() int { return len(a) }

// Index returns the row for symbol c, or -1 if c is not in the
// alphabet. Lower case letters are folded to upper case.
func (a Alphabet) Index(c byte) int {
	if 'a' <= c && c <= 'z' {
		c -= 'a' - 'A'
	}
	return strings.IndexByte(string(a), c)
}

// Background is the probability of each symbol in sequence that does
// not bind anything.
type Background map[byte]float64

// Uniform gives every symbol of a the same probability.
func Uniform(a Alphabet) Background {
	bg := make(Background, a.Len())
	for i := 0; i < a.Len(); i++ {
		bg[a[i]] = 1 / float64(a.Len())
	}
	return bg
}

// Copy returns a new map with the same contents, so callers cannot
// change a background that somebody else is holding.
func (bg Background) Copy() Background {
	r := make(Background, len(bg))
	for k, v := range bg {
		r[k] = v
	}
	return r
}

// Check returns an error unless bg has an entry for every symbol in a,
// no negative entries and sums to one.
func (bg Background) Check(a Alphabet) error {
	const eps = 1e-6
	var sum float64
	for i := 0; i < a.Len(); i++ {
		p, ok := bg[a[i]]
		if !ok {
			return errors.Errorf("background has no entry for %c", a[i])
		}
		if p < 0 || math.IsNaN(p) {
			return errors.Errorf("background probability for %c is %g", a[i], p)
		}
		sum += p
	}
	if len(bg) != a.Len() {
		return errors.Errorf("background has %d symbols, alphabet %q has %d", len(bg), a, a.Len())
	}
	if math.Abs(sum-1) > eps {
		return errors.Errorf("background sums to %g, not 1", sum)
	}
	return nil
}

// String prints the background in a fixed order, handy for logging.
func (bg Background) String() string {
	keys := make([]int, 0, len(bg))
	for k := range bg {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(k))
		sb.WriteByte(':')
		sb.WriteString(formatFloat(bg[byte(k)]))
	}
	return sb.String()
}
