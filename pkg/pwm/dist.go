// 10 Oct 2026

package pwm

import (
	"math"

	"github.com/pkg/errors"
)

// DefaultPrecision is the number of bins per motif position used when
// discretising scores.
const DefaultPrecision = 1000

// ScoreDist is the distribution of PSSM scores, once for sequences drawn
// from the motif and once for sequences drawn from the background.
// Scores are put into precision * length bins spanning [Min, Max] of the
// scoring matrix. The distributions are built by convolving one position
// at a time. Sequences that hit a -Inf entry are dropped, so the
// background density may sum to less than one.
type ScoreDist struct {
	min       float64
	step      float64
	ic        float64
	moDensity []float64
	bgDensity []float64
}

// NewScoreDist calculates the score distributions for s against bg.
func NewScoreDist(s *PSSM, bg Background, precision int) (*ScoreDist, error) {
	if precision < 1 {
		return nil, errors.Errorf("score distribution precision %d", precision)
	}
	if err := bg.Check(s.alphabet); err != nil {
		return nil, errors.Wrap(err, "score distribution")
	}
	npoints := precision * s.Len()
	d := &ScoreDist{
		min:       s.Min(),
		ic:        s.ExpectedScore(bg),
		moDensity: make([]float64, npoints),
		bgDensity: make([]float64, npoints),
	}
	if interval := s.Max() - d.min; npoints > 1 && interval > 0 {
		d.step = interval / float64(npoints-1)
	}
	start := d.add(0, -d.indexDiff(d.min))
	d.moDensity[start] = 1
	d.bgDensity[start] = 1

	moNew := make([]float64, npoints)
	bgNew := make([]float64, npoints)
	for pos := 0; pos < s.Len(); pos++ {
		clear(moNew)
		clear(bgNew)
		for irow := 0; irow < s.alphabet.Len(); irow++ {
			score := s.mat.At(irow, pos)
			if math.IsInf(score, -1) || math.IsNaN(score) {
				continue
			}
			b := bg[s.alphabet[irow]]
			m := math.Exp2(score) * b
			diff := d.indexDiff(score)
			for i := range d.moDensity {
				mo, bgv := d.moDensity[i], d.bgDensity[i]
				if mo == 0 && bgv == 0 {
					continue
				}
				j := d.add(i, diff)
				moNew[j] += mo * m
				bgNew[j] += bgv * b
			}
		}
		d.moDensity, moNew = moNew, d.moDensity
		d.bgDensity, bgNew = bgNew, d.bgDensity
	}
	return d, nil
}

// indexDiff is the number of bins a score of x moves us.
func (d *ScoreDist) indexDiff(x float64) int {
	if d.step == 0 {
		return 0
	}
	return int(math.Floor((x + 0.5*d.step) / d.step))
}

// add moves i by j bins, without falling off either end.
func (d *ScoreDist) add(i, j int) int {
	return max(0, min(len(d.moDensity)-1, i+j))
}

func (d *ScoreDist) score(i int) float64 { return d.min + float64(i)*d.step }

// IC is the information content used for the patser threshold, the
// expected score of motif sequences in bits.
func (d *ScoreDist) IC() float64 { return d.ic }

// ThresholdFPR returns the lowest score at which the fraction of
// background sequences scoring at least as high is fpr or more.
// An fpr of zero or less gives the highest score.
func (d *ScoreDist) ThresholdFPR(fpr float64) float64 {
	i := len(d.bgDensity)
	prob := 0.0
	for prob < fpr && i > 0 {
		i--
		prob += d.bgDensity[i]
	}
	return d.score(min(i, len(d.bgDensity)-1))
}

// ThresholdFNR returns the score below which a fraction fnr of motif
// sequences fall.
func (d *ScoreDist) ThresholdFNR(fnr float64) float64 {
	i := -1
	prob := 0.0
	for prob < fnr && i < len(d.moDensity)-1 {
		i++
		prob += d.moDensity[i]
	}
	return d.score(max(i, 0))
}

// ThresholdBalanced returns the score where the false positive rate,
// multiplied by rateProportion, first reaches the false negative rate.
// It also returns the false positive rate at that score.
func (d *ScoreDist) ThresholdBalanced(rateProportion float64) (float64, float64) {
	i := len(d.bgDensity)
	fpr, fnr := 0.0, 1.0
	for fpr*rateProportion < fnr && i > 0 {
		i--
		fpr += d.bgDensity[i]
		fnr -= d.moDensity[i]
	}
	return d.score(i), fpr
}

// ThresholdPatser is the threshold of Hertz and Stormo (1999), where
// -log2 of the false positive rate equals the information content.
func (d *ScoreDist) ThresholdPatser() float64 {
	return d.ThresholdFPR(math.Exp2(-d.ic))
}
