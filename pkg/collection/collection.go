// 11 Oct 2026

// Package collection turns a set of aligned binding sites into a
// collection: the sites themselves and the weight matrix counted from
// them.
package collection

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/andrew-torda/tfbind/pkg/pwm"
	"github.com/andrew-torda/tfbind/pkg/seq"
)

// SiteSet is a group of aligned binding sites of one length and the
// frequency matrix counted from them.
type SiteSet struct {
	name  string
	sites []string
	pwm   *pwm.PWM
}

// PWM returns the frequency matrix. Each column sums to one.
func (s *SiteSet) PWM() *pwm.PWM { return s.pwm }

// Sites returns the sites in the order they were given.
func (s *SiteSet) Sites() []string { return append([]string(nil), s.sites...) }

// Name is whatever the collection was called, usually a file name.
func (s *SiteSet) Name() string { return s.name }

// Len is the site length.
func (s *SiteSet) Len() int { return s.pwm.Len() }

// New counts the sites and makes a collection. pseudo is added to every
// count before normalising. Lower case sites are accepted and stored in
// upper case.
func New(name string, sites []string, pseudo float64) (*SiteSet, error) {
	return FromSeqGrp(name, seq.Str2SeqGrp(sites), pseudo)
}

// FromSeqGrp does the work for New and Readfile.
func FromSeqGrp(name string, seqgrp *seq.SeqGrp, pseudo float64) (*SiteSet, error) {
	if seqgrp.NSeq() == 0 {
		return nil, errors.Errorf("collection %s has no sites", name)
	}
	if err := seqgrp.Upper(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	switch seqgrp.GetType() {
	case seq.Protein:
		return nil, errors.Errorf("collection %s looks like protein, not DNA", name)
	case seq.RNA:
		return nil, errors.Errorf("collection %s looks like RNA, not DNA", name)
	}
	frac, err := seqgrp.UsageFrac(string(pwm.DNA), float32(pseudo))
	if err != nil {
		return nil, errors.Wrapf(err, "collection %s", name)
	}
	rows := make([][]float64, len(frac.Mat))
	for i, r := range frac.Mat {
		rows[i] = make([]float64, len(r))
		for j, x := range r {
			rows[i][j] = float64(x)
		}
	}
	p, err := pwm.FromRows(pwm.DNA, rows)
	if err != nil {
		return nil, errors.Wrapf(err, "collection %s", name)
	}
	log.Debug().Str("collection", name).Int("nsites", seqgrp.NSeq()).
		Int("len", p.Len()).Msg("counted sites")
	return &SiteSet{name: name, sites: seqgrp.Strings(), pwm: p}, nil
}

// Readfile reads aligned sites in fasta format.
func Readfile(fname string, pseudo float64) (*SiteSet, error) {
	seqgrp, err := seq.Readfile(fname, &seq.Options{})
	if err != nil {
		return nil, err
	}
	return FromSeqGrp(fname, seqgrp, pseudo)
}
