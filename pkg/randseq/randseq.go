// 31 July 2020
// 14 Oct 2026 draw bases from a background distribution

// Package randseq makes random DNA. The bases are drawn independently
// from a background distribution. It is used for background samples,
// when there is no real background sequence, and for exercising the
// fasta reader.
package randseq

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/andrew-torda/tfbind/pkg/pwm"
	"github.com/andrew-torda/tfbind/pkg/seq"
)

const (
	nPadWhite  = 9  // For padding for adding whitespace to sequences
	fastaWidth = 60 // line length of tidy output
)

// sampler turns a uniform random number into a base.
type sampler struct {
	cumul   []float64
	letters []byte
}

// newSampler builds the cumulative table. Symbols are in alphabet order,
// so a given seed always gives the same sequences.
func newSampler(bg pwm.Background) (*sampler, error) {
	if bg == nil {
		bg = pwm.Uniform(pwm.DNA)
	}
	if err := bg.Check(pwm.DNA); err != nil {
		return nil, errors.Wrap(err, "random sequence")
	}
	s := &sampler{letters: []byte(pwm.DNA)}
	probs := make([]float64, len(s.letters))
	for i, c := range s.letters {
		probs[i] = bg[c]
	}
	s.cumul = floats.CumSum(make([]float64, len(probs)), probs)
	return s, nil
}

func (s *sampler) base(rnd *rand.Rand) byte {
	i := sort.SearchFloat64s(s.cumul, rnd.Float64()*s.cumul[len(s.cumul)-1])
	for i < len(s.cumul)-1 && s.cumul[i] == 0 { // never pick a zero probability base
		i++
	}
	return s.letters[min(i, len(s.letters)-1)]
}

// getseq returns a byte slice with a random sequence in it. There is
// spare capacity for white space.
func (s *sampler) getseq(seqlen int, rnd *rand.Rand) []byte {
	space := seqlen + (seqlen / nPadWhite) // about 10% rubbish white space
	ret := make([]byte, seqlen, space)
	for i := range ret {
		ret[i] = s.base(rnd)
	}
	return ret
}

// RandSeqs returns n random sequences of length seqlen.
func RandSeqs(n, seqlen int, bg pwm.Background, iseed int64) ([]string, error) {
	if n < 0 || seqlen < 1 {
		return nil, errors.Errorf("cannot make %d sequences of length %d", n, seqlen)
	}
	s, err := newSampler(bg)
	if err != nil {
		return nil, err
	}
	rnd := rand.New(rand.NewSource(iseed))
	seqs := make([]string, n)
	for i := range seqs {
		seqs[i] = string(s.getseq(seqlen, rnd))
	}
	return seqs, nil
}

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed      int64          // random number seed
	Wrtr       io.Writer      // where we write to
	Cmmt       string         // Comment for the sequences
	Nseq       int            // number of sequences
	Len        int            // Length of sequences
	Background pwm.Background // nil means uniform
	Messy      bool           // sprinkle spaces and newlines in sequences
}

// addInner is used by addspace to add a space or newline
func addInner(s []byte, n int, c byte, spacernd *rand.Rand) []byte {
	for i := 0; i < n; i++ {
		s = append(s, 0)
		pos := spacernd.Intn(len(s))
		copy(s[pos+1:], s[pos:])
		s[pos] = c
	}
	return s
}

// addspace is given a byte array and adds white characters at random
// positions. We work out how much space is to be used. We flip a coin.
// Heads we don't add a newline. Tails we make about 1/10 (integer 1/9)
// of the spaces to be newlines.
func addspace(s []byte, spacernd *rand.Rand) []byte {
	toAdd := cap(s) - len(s)
	nNL := 0 // Number of new lines to add
	if spacernd.Intn(2) == 0 {
		nNL = toAdd / 9
	}
	s = addInner(s, toAdd-nNL, ' ', spacernd)
	return addInner(s, nNL, '\n', spacernd)
}

// writeseq takes our sequences, adds a comment and writes them. The
// comment lines look like "> something 1", "> something 2"...
// After an error, it keeps draining the channel so the sender does not
// block.
func writeseq(sChan <-chan []byte, args *RandSeqArgs, wg *sync.WaitGroup, err *error) {
	defer wg.Done()

	width := len(fmt.Sprintf("%d", args.Nseq))
	spacernd := rand.New(rand.NewSource(args.Iseed + 1))
	var i int
	for s := range sChan {
		i++
		if *err != nil {
			continue
		}
		lineLen := fastaWidth
		if args.Messy {
			s = addspace(s, spacernd)
			lineLen = 0 // the newlines are already in
		}
		cmmt := fmt.Sprintf(" %s %[2]*d", args.Cmmt, width, i)
		if e := seq.WriteFasta(args.Wrtr, cmmt, s, lineLen); e != nil {
			*err = errors.Wrap(e, "writing random sequences")
		}
	}
}

// RandSeqMain writes random sequences in fasta format to an io.Writer.
func RandSeqMain(args *RandSeqArgs) error {
	if args.Nseq < 0 || args.Len < 1 {
		return errors.Errorf("cannot make %d sequences of length %d", args.Nseq, args.Len)
	}
	s, err := newSampler(args.Background)
	if err != nil {
		return err
	}
	var wg sync.WaitGroup
	var wrtErr error
	rnd := rand.New(rand.NewSource(args.Iseed))
	sChan := make(chan []byte)
	wg.Add(1)
	go writeseq(sChan, args, &wg, &wrtErr)
	for i := 0; i < args.Nseq; i++ {
		sChan <- s.getseq(args.Len, rnd)
	}
	close(sChan)
	wg.Wait()
	return wrtErr
}
