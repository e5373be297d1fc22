// 12 Oct 2026

package model

import (
	"context"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/tfbind/pkg/dna"
	"github.com/andrew-torda/tfbind/pkg/pwm"
)

// LogAdd2 returns log2(2**a + 2**b) without overflowing. It is a soft
// version of max(a, b).
func LogAdd2(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	if math.IsInf(a, -1) {
		return a
	}
	return a + math.Log1p(math.Exp2(b-a))/math.Ln2
}

// ScoreSeq scores both strands of seq. At each position the scores of
// the two strands are combined with LogAdd2 and the results are summed.
// seq must be exactly as long as the model.
func (m *BindingModel) ScoreSeq(seq string) (float64, error) {
	return m.scoreSeq(m.PSSM(), seq)
}

func (m *BindingModel) scoreSeq(pssm *pwm.PSSM, seq string) (float64, error) {
	if len(seq) != pssm.Len() {
		return 0, errors.Errorf("sequence %q has length %d, model has %d", seq, len(seq), pssm.Len())
	}
	var other string
	var err error
	switch m.strand {
	case RevCompStrand:
		other, err = dna.RevComp(seq)
	case ComplementStrand:
		other, err = dna.Complement(seq)
	}
	if err != nil {
		return 0, err
	}
	var total float64
	for i := 0; i < len(seq); i++ {
		a, ok := pssm.Lookup(seq[i], i)
		b, ok2 := pssm.Lookup(other[i], i)
		if !ok || !ok2 {
			return 0, errors.Errorf("cannot score %q at position %d", seq, i)
		}
		total += LogAdd2(a, b)
	}
	return total, nil
}

// SelfScore scores every site of the model's collections, in the order
// of Sites().
func (m *BindingModel) SelfScore() ([]float64, error) {
	return m.ScoreSeqs(context.Background(), m.Sites())
}

// ScoreSeqs scores many sequences, spread over a few goroutines.
// Results are in the same order as seqs. The first error stops the work.
func (m *BindingModel) ScoreSeqs(ctx context.Context, seqs []string) ([]float64, error) {
	pssm := m.PSSM()
	scores := make([]float64, len(seqs))
	nworker := runtime.GOMAXPROCS(0)
	chunk := (len(seqs) + nworker - 1) / nworker
	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(seqs); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(seqs))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				s, err := m.scoreSeq(pssm, seqs[i])
				if err != nil {
					return errors.Wrapf(err, "sequence %d", i)
				}
				scores[i] = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
