// 20 Dec 2017

// Package seq reads sequences, which usually begin their lives in fasta
// format, and keeps them as a group. Binding sites are short aligned
// sequences, so a group can also count the symbols at each position.
package seq

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// seq is a single sequence and its comment.
type seq struct {
	cmmt string
	seq  []byte
}

// A marker to say what type of sequence we have, protein, DNA, ...
type SeqType byte

const (
	Unchecked SeqType = iota // Has not been looked at yet
	Unknown                  // Really unknown, not a protein or nucleotide
	Protein                  //
	DNA                      //
	RNA                      //
	Ntide                    // Nucleotide
)

// We only read ascii characters, so anything bigger than this is not
// valid.
const (
	MaxSym uint8 = 127
)

// Options contains all the choices passed in from the caller.
type Options struct {
	DiffLenSeq bool // false, unless we expect sequences to be different lengths
}

// SeqGrp is a group of sequences, with some additional information
// such as what type (protein, nucleotide) and which symbols have been
// used.
type SeqGrp struct {
	symUsed  [MaxSym]bool // which symbols are actually used
	seqs     []seq
	stype    SeqType
	usedKnwn bool // Do we know how many symbols are used ?
}

// GetSeq returns the sequence as the original byte slice
func (s seq) GetSeq() []byte { return s.seq }

// Cmmt returns the comment, without the leading ">"
func (s seq) Cmmt() string { return s.cmmt }

// Len is the length of the sequence
func (s seq) Len() int { return len(s.seq) }

// Name returns the first word of the comment, which is usually
// an identifier.
func (s seq) Name() string {
	f := strings.Fields(s.cmmt)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Upper changes a sequence to upper case, in place.
// It only works with bytes, not runes.
// It can return an error if it encounters a symbol it does
// not like (value higher than 127).
func (s *seq) Upper() error {
	const diff = 'a' - 'A'
	const symerr = "bad sym \"%c\" at position %d starting \"%s\""
	for i, c := range s.seq {
		if c >= MaxSym {
			return fmt.Errorf(symerr, c, i, trimStr(s.cmmt, 40))
		}
		if 'a' <= c && c <= 'z' {
			s.seq[i] -= diff
		}
	}
	return nil
}

// String returns a sequence, with its comment at the start as
// a single string
func (s seq) String() string {
	return fmt.Sprintf("%c%s\n%s", cmmtChar, s.cmmt, s.seq)
}

// GetLen returns the length of the first sequence.
// If we are reading aligned sites, this should be the length
// of all sequences.
func (seqgrp *SeqGrp) GetLen() int {
	if len(seqgrp.seqs) == 0 {
		return 0
	}
	return len(seqgrp.seqs[0].seq)
}

// NSeq returns the number of sequences
func (seqgrp *SeqGrp) NSeq() int { return len(seqgrp.seqs) }

// SeqSlc returns the slice of sequences
func (seqgrp *SeqGrp) SeqSlc() []seq { return seqgrp.seqs }

// Strings returns each sequence as a string, in order.
func (seqgrp *SeqGrp) Strings() []string {
	r := make([]string, len(seqgrp.seqs))
	for i, s := range seqgrp.seqs {
		r[i] = string(s.seq)
	}
	return r
}

// Upper uppercases all the members of a group of sequences.
func (seqgrp *SeqGrp) Upper() error {
	for i := range seqgrp.seqs {
		if err := seqgrp.seqs[i].Upper(); err != nil {
			return err
		}
	}
	return nil
}

// checkLengths is called unless sequences are allowed to have
// different lengths. Aligned sites must all be the same length.
func (seqgrp *SeqGrp) checkLengths() error {
	const msg = "sequence lengths differ. First sequence length %d, but sequence %d length %d, comment %s"
	iwant := seqgrp.GetLen()
	for i, s := range seqgrp.seqs {
		if ilen := len(s.seq); ilen != iwant {
			return errors.Errorf(msg, iwant, i, ilen, trimStr(s.cmmt, 40))
		}
	}
	return nil
}

// Readfile takes a filename and reads sequences from it. A named file is
// memory mapped. An empty name means standard input.
func Readfile(fname string, s_opts *Options) (*SeqGrp, error) {
	seqgrp := new(SeqGrp)
	if fname == "" {
		if err := ReadFasta(os.Stdin, seqgrp, s_opts); err != nil {
			return nil, errors.Wrap(err, "stdin")
		}
		return seqgrp, nil
	}

	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 { // mmap refuses empty files
		return nil, errors.Errorf("%s: empty file", fname)
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "mapping %s", fname)
	}
	defer mm.Unmap()

	if err := ReadFasta(bytes.NewReader(mm), seqgrp, s_opts); err != nil {
		return nil, errors.Wrap(err, fname)
	}
	return seqgrp, nil
}

// WriteFasta writes one sequence with its comment, width characters
// per line. A width of zero or less puts the whole sequence on one line.
func WriteFasta(w io.Writer, cmmt string, s []byte, width int) error {
	if _, err := fmt.Fprintf(w, "%c%s\n", cmmtChar, cmmt); err != nil {
		return err
	}
	if width > 0 {
		for ; len(s) > width; s = s[width:] {
			if _, err := fmt.Fprintf(w, "%s\n", s[:width]); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%s\n", s)
	return err
}

// Str2SeqGrp takes some strings and returns them as a seqgrp.
// sIn is a slice of strings which are the sequences.
// prefix is an optional argument. Sequences need names/comments. If
// prefix is not given, sequences will be called "s0", "s1", ...
func Str2SeqGrp(sIn []string, prefix ...string) *SeqGrp {
	base := "s"
	if prefix != nil {
		base = prefix[0]
	}
	seqgrp := new(SeqGrp)
	for i, s := range sIn {
		f := seq{cmmt: fmt.Sprint(base, i), seq: []byte(s)}
		seqgrp.seqs = append(seqgrp.seqs, f)
	}
	return seqgrp
}
