// 6 Apr 2020
// seqcalc does simple, common calculations on a set of sequences.
// The functions have to live in this package, since they
// need access to the internals of a sequence

package seq

import (
	"strings"

	"github.com/andrew-torda/matrix"
	"github.com/pkg/errors"
)

// SetSymUsed fills out the bool slice which says whether or not a
// symbol was used.
func (seqgrp *SeqGrp) SetSymUsed() {
	for _, ss := range seqgrp.seqs {
		for _, c := range ss.seq {
			if c < MaxSym {
				seqgrp.symUsed[c] = true
			}
		}
	}
	seqgrp.usedKnwn = true
}

// GetType looks at a set of sequences and returns its best guess
// as to the type of file. Call Upper() first.
func (seqgrp *SeqGrp) GetType() SeqType {
	if seqgrp.stype != Unchecked { // If the sequence type has been
		return seqgrp.stype //      set, just return it.
	}

	if !seqgrp.usedKnwn {
		seqgrp.SetSymUsed()
	}
	protType := []byte{
		'D', 'E', 'F', 'H', 'I', 'K', 'L', 'M',
		'N', 'P', 'Q', 'R', 'S', 'V', 'W', 'Y'}

	used := seqgrp.symUsed
	seqgrp.stype = Unknown
	for _, c := range protType { // If we see an amino acid code,
		if used[c] { //          just return protein type.
			seqgrp.stype = Protein
			return seqgrp.stype
		}
	}

	switch {
	case used['T'] && used['U']:
		seqgrp.stype = Ntide
	case used['A'] && used['C'] && used['G'] && !used['T'] && !used['U']:
		seqgrp.stype = Ntide // could be either
	case used['T']:
		seqgrp.stype = DNA
	case used['U']:
		seqgrp.stype = RNA
	}
	return seqgrp.stype
}

// UsageSite counts how many of each symbol appear at each site in the
// alignment. Row i of the result belongs to alphabet[i], so
// counts.Mat looks like [len(alphabet)][length_of_seq].
// We store it as a float32, since it will later usually be normalised
// and converted to a fraction.
// A symbol not in the alphabet is an error. Call Upper() first if the
// alphabet is upper case.
func (seqgrp *SeqGrp) UsageSite(alphabet string) (*matrix.FMatrix2d, error) {
	const badsym = "sequence %d (%s) has %q at position %d, not in %q"
	if seqgrp.NSeq() == 0 {
		return nil, errors.New("no sequences to count")
	}
	if err := seqgrp.checkLengths(); err != nil {
		return nil, err
	}
	var mapping [256]int
	for i := range mapping {
		mapping[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		mapping[alphabet[i]] = i
	}
	counts := matrix.NewFMatrix2d(len(alphabet), seqgrp.GetLen())
	for iseq, ss := range seqgrp.seqs {
		for i, c := range ss.seq {
			irow := mapping[c]
			if irow < 0 {
				return nil, errors.Errorf(badsym, iseq, trimStr(ss.cmmt, 40), c, i, alphabet)
			}
			counts.Mat[irow][i] += 1
		}
	}
	return counts, nil
}

// UsageFrac converts counts to normalised frequencies. If letter 'A'
// occurs 2 times in five sequences, its entry will be 2/5 = 0.4.
// pseudo is added to every count first, so with pseudo of 1 and four
// symbols, the same 'A' becomes 3/9.
func (seqgrp *SeqGrp) UsageFrac(alphabet string, pseudo float32) (*matrix.FMatrix2d, error) {
	if pseudo < 0 {
		return nil, errors.Errorf("negative pseudocount %g", pseudo)
	}
	counts, err := seqgrp.UsageSite(alphabet)
	if err != nil {
		return nil, err
	}
	nrow, ncol := counts.Size()
	for icol := 0; icol < ncol; icol++ {
		var total float32
		for irow := 0; irow < nrow; irow++ {
			counts.Mat[irow][icol] += pseudo
			total += counts.Mat[irow][icol]
		}
		if total == 0 {
			continue
		}
		for irow := 0; irow < nrow; irow++ {
			counts.Mat[irow][icol] /= total
		}
	}
	return counts, nil
}

// Consensus returns the most frequent symbol at each position. Ties go
// to the symbol earliest in the alphabet.
func (seqgrp *SeqGrp) Consensus(alphabet string) (string, error) {
	counts, err := seqgrp.UsageSite(alphabet)
	if err != nil {
		return "", err
	}
	nrow, ncol := counts.Size()
	var sb strings.Builder
	for icol := 0; icol < ncol; icol++ {
		best := 0
		for irow := 1; irow < nrow; irow++ {
			if counts.Mat[irow][icol] > counts.Mat[best][icol] {
				best = irow
			}
		}
		sb.WriteByte(alphabet[best])
	}
	return sb.String(), nil
}
