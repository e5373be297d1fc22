// 13 Oct 2026

package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultAlpha is the fraction of motif-like scores assumed to be hiding
// in a background sample.
const DefaultAlpha = 1.0 / 350

// Estimator gives the probability that a set of scores comes from a real
// binding site. Scores of real sites are taken as Normal(MuM, StdM),
// background scores as Normal(MuG, StdG). The null model is a mixture,
// a fraction Alpha of site scores in the background.
// The zero value is not useful. Get one from NewEstimator or
// BindingModel.BayesianEstimator.
type Estimator struct {
	MuM, StdM float64 // fitted to the scores of known sites
	MuG, StdG float64 // fitted to background scores
	Alpha     float64 // mixing ratio
	PriorM    float64 // prior probability of a real site
}

// BayesianEstimator fits an Estimator to the model's own sites and to
// bgScores, the scores of background sequences.
func (m *BindingModel) BayesianEstimator(bgScores []float64, priorM, alpha float64) (*Estimator, error) {
	siteScores, err := m.SelfScore()
	if err != nil {
		return nil, errors.Wrap(err, "scoring sites")
	}
	return NewEstimator(siteScores, bgScores, priorM, alpha)
}

// NewEstimator fits the two normal distributions with the population
// mean and standard deviation of each sample.
func NewEstimator(siteScores, bgScores []float64, priorM, alpha float64) (*Estimator, error) {
	if !(priorM > 0 && priorM < 1) {
		return nil, errors.Errorf("prior %g not in (0, 1)", priorM)
	}
	if !(alpha >= 0 && alpha <= 1) {
		return nil, errors.Errorf("alpha %g not in [0, 1]", alpha)
	}
	muM, stdM, err := fit(siteScores, "site")
	if err != nil {
		return nil, err
	}
	muG, stdG, err := fit(bgScores, "background")
	if err != nil {
		return nil, err
	}
	return &Estimator{MuM: muM, StdM: stdM, MuG: muG, StdG: stdG, Alpha: alpha, PriorM: priorM}, nil
}

func fit(x []float64, what string) (mu, std float64, err error) {
	if len(x) == 0 {
		return 0, 0, errors.Errorf("no %s scores", what)
	}
	mu, std = stat.PopMeanStdDev(x, nil)
	if !(std > 0) || math.IsInf(mu, 0) || math.IsNaN(mu) {
		return 0, 0, errors.Errorf("cannot fit %s scores, mean %g std %g", what, mu, std)
	}
	return mu, std, nil
}

// LogRatio is the log of the likelihood ratio of background to the
// mixture, summed over all the scores.
func (e *Estimator) LogRatio(scores ...float64) float64 {
	pdfM := distuv.Normal{Mu: e.MuM, Sigma: e.StdM}
	pdfG := distuv.Normal{Mu: e.MuG, Sigma: e.StdG}
	logAlpha, log1mAlpha := math.Log(e.Alpha), math.Log1p(-e.Alpha)
	var pair [2]float64
	var lr float64
	for _, s := range scores {
		lg := pdfG.LogProb(s)
		pair[0] = logAlpha + pdfM.LogProb(s)
		pair[1] = log1mAlpha + lg
		lr += lg - floats.LogSumExp(pair[:])
	}
	return lr
}

// Prob returns the posterior probability that the scores come from a
// real site. All the scores are taken together, so Prob(a, b) is not
// the same as combining Prob(a) and Prob(b). With no scores, it returns
// the prior.
func (e *Estimator) Prob(scores ...float64) float64 {
	priorG := 1 - e.PriorM
	logOdds := e.LogRatio(scores...) + math.Log(priorG) - math.Log(e.PriorM)
	return 1 / (1 + math.Exp(logOdds))
}
