// 12 Oct 2026

// Package model combines the weight matrices of several collections of
// binding sites into one binding model, scores DNA against it and builds
// Bayesian estimators of the probability that a sequence is a real site.
//
// A BindingModel does not change after New returns, so it can be shared
// between goroutines.
package model

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/andrew-torda/tfbind/pkg/pwm"
)

// Collection is a group of aligned binding sites and the weight matrix
// made from them.
type Collection interface {
	PWM() *pwm.PWM
	Sites() []string
}

// Strand says how the second strand is lined up with the scoring matrix.
type Strand int

const (
	// RevCompStrand reads the reverse complement of the sequence against
	// the matrix, the other strand in its own 5' to 3' direction.
	RevCompStrand Strand = iota
	// ComplementStrand uses the complement of each base at the same
	// position, without reversing.
	ComplementStrand
)

func (s Strand) String() string {
	switch s {
	case RevCompStrand:
		return "revcomp"
	case ComplementStrand:
		return "complement"
	}
	return "unknown"
}

// ParseStrand is the inverse of String. An empty string gives the default.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "", "revcomp":
		return RevCompStrand, nil
	case "complement":
		return ComplementStrand, nil
	}
	return 0, errors.Errorf("unknown strand convention %q", s)
}

// Options are the optional settings for a model. A nil *Options or zero
// values give a uniform background and reverse complement scoring.
type Options struct {
	Background pwm.Background
	Strand     Strand
	Precision  int // bins per position for the patser threshold
}

// BindingModel is a combined weight matrix plus what is needed to score
// against it.
type BindingModel struct {
	background  pwm.Background
	pwm         *pwm.PWM
	collections []Collection
	strand      Strand
	precision   int
}

// New combines the weight matrices of the collections, weighted by
// weights. Weights are normalised, so only their ratios matter.
func New(collections []Collection, weights []float64, opts *Options) (*BindingModel, error) {
	if opts == nil {
		opts = &Options{}
	}
	bg := pwm.Uniform(pwm.DNA)
	if opts.Background != nil {
		bg = opts.Background.Copy()
	}
	if opts.Strand != RevCompStrand && opts.Strand != ComplementStrand {
		return nil, errors.Errorf("strand convention %d", opts.Strand)
	}
	precision := opts.Precision
	if precision == 0 {
		precision = pwm.DefaultPrecision
	}
	if precision < 0 {
		return nil, errors.Errorf("precision %d", precision)
	}

	pwms := make([]*pwm.PWM, len(collections))
	for i, c := range collections {
		if pwms[i] = c.PWM(); pwms[i] == nil {
			return nil, errors.Errorf("collection %d has no weight matrix", i)
		}
	}
	combined, err := pwm.Combine(pwms, weights)
	if err != nil {
		return nil, errors.Wrap(err, "binding model")
	}
	if err := bg.Check(combined.Alphabet()); err != nil {
		return nil, errors.Wrap(err, "binding model")
	}
	log.Debug().Int("ncollection", len(collections)).Int("len", combined.Len()).
		Str("background", bg.String()).Stringer("strand", opts.Strand).
		Msg("combined weight matrices")

	return &BindingModel{
		background:  bg,
		pwm:         combined,
		collections: append([]Collection(nil), collections...),
		strand:      opts.Strand,
		precision:   precision,
	}, nil
}

// PWM returns the combined weight matrix.
func (m *BindingModel) PWM() *pwm.PWM { return m.pwm }

// Len is the length of the combined matrix.
func (m *BindingModel) Len() int { return m.pwm.Len() }

// Background returns a copy of the background distribution.
func (m *BindingModel) Background() pwm.Background { return m.background.Copy() }

// Strand returns the strand convention used by ScoreSeq.
func (m *BindingModel) Strand() Strand { return m.strand }

// Collections returns the collections the model was built from.
func (m *BindingModel) Collections() []Collection {
	return append([]Collection(nil), m.collections...)
}

// PSSM returns the log-odds scoring matrix. It is calculated on every
// call. The background was checked in New, so LogOdds cannot fail here.
func (m *BindingModel) PSSM() *pwm.PSSM {
	pssm, err := m.pwm.LogOdds(m.background)
	if err != nil {
		panic("program bug " + err.Error())
	}
	return pssm
}

// IC is the information content, taken as the mean of every entry of
// the scoring matrix.
func (m *BindingModel) IC() float64 { return m.PSSM().Mean() }

// PatserThreshold is the threshold of Hertz and Stormo (1999), the score
// at which -log2 of the false positive rate equals the information
// content of the motif. The score distribution uses the precision the
// model was built with.
func (m *BindingModel) PatserThreshold() (float64, error) {
	return m.PatserThresholdPrec(m.precision)
}

// PatserThresholdPrec is PatserThreshold with an explicit number of bins
// per position.
func (m *BindingModel) PatserThresholdPrec(precision int) (float64, error) {
	dist, err := m.ScoreDist(precision)
	if err != nil {
		return 0, err
	}
	return dist.ThresholdPatser(), nil
}

// ScoreDist returns the distribution of scores for motif and background
// sequences.
func (m *BindingModel) ScoreDist(precision int) (*pwm.ScoreDist, error) {
	return pwm.NewScoreDist(m.PSSM(), m.background, precision)
}

// Sites returns the sites of every collection, collection by collection.
// Duplicates are kept.
func (m *BindingModel) Sites() []string {
	var sites []string
	for _, c := range m.collections {
		sites = append(sites, c.Sites()...)
	}
	return sites
}
