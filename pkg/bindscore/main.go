// 15 Oct 2026

// Package bindscore is the work behind the bindscore command. It builds
// a binding model from a config file, fits an estimator against
// background sequence and writes scores and probabilities as csv.
package bindscore

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/andrew-torda/tfbind/pkg/collection"
	"github.com/andrew-torda/tfbind/pkg/config"
	"github.com/andrew-torda/tfbind/pkg/dna"
	"github.com/andrew-torda/tfbind/pkg/model"
	"github.com/andrew-torda/tfbind/pkg/pwm"
	"github.com/andrew-torda/tfbind/pkg/randseq"
	"github.com/andrew-torda/tfbind/pkg/seq"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	BgFile string // fasta file of background sequence
	NRand  int    // number of random background sequences without BgFile
	Iseed  int64  // random number seed
	Time   bool   // do we want to print out run time ?
}

// DefaultNRand is the size of the random background sample.
const DefaultNRand = 10000

// readCollections reads the site files in parallel. The order of the
// result follows the config.
func readCollections(ctx context.Context, cfg *config.Config) ([]model.Collection, error) {
	colls := make([]model.Collection, len(cfg.Collections))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range cfg.Collections {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seqgrp, err := seq.Readfile(src.File, &seq.Options{})
			if err != nil {
				return errors.Wrap(err, "reading sites")
			}
			c, err := collection.FromSeqGrp(src.Name, seqgrp, cfg.Pseudocount)
			if err != nil {
				return err
			}
			colls[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return colls, nil
}

// window is a stretch of sequence as long as the model.
type window struct {
	name string
	pos  int // from 1
	s    string
}

// windows cuts every sequence into all the pieces of length n. Pieces
// with anything other than ACGT are dropped. Sequences shorter than n
// give nothing.
func windows(seqgrp *seq.SeqGrp, n int) []window {
	var w []window
	for _, ss := range seqgrp.SeqSlc() {
		s := dna.Upper(string(ss.GetSeq()))
		for i := 0; i+n <= len(s); i++ {
			if piece := s[i : i+n]; dna.Valid(piece) {
				w = append(w, window{name: ss.Name(), pos: i + 1, s: piece})
			}
		}
	}
	return w
}

func windowSeqs(w []window) []string {
	s := make([]string, len(w))
	for i := range w {
		s[i] = w[i].s
	}
	return s
}

// bgSample returns the sequences used to fit the background. They come
// from a file if there is one, otherwise they are random.
func bgSample(flags *CmdFlag, m *model.BindingModel) ([]string, error) {
	if flags.BgFile == "" {
		nrand := flags.NRand
		if nrand == 0 {
			nrand = DefaultNRand
		}
		log.Debug().Int("n", nrand).Int64("seed", flags.Iseed).Msg("random background")
		return randseq.RandSeqs(nrand, m.Len(), m.Background(), flags.Iseed)
	}
	seqgrp, err := seq.Readfile(flags.BgFile, &seq.Options{DiffLenSeq: true})
	if err != nil {
		return nil, errors.Wrap(err, "background")
	}
	w := windowSeqs(windows(seqgrp, m.Len()))
	if len(w) == 0 {
		return nil, errors.Errorf("no background windows of length %d in %s", m.Len(), flags.BgFile)
	}
	log.Debug().Str("file", flags.BgFile).Int("nwindow", len(w)).Msg("background")
	return w, nil
}

// targets are the sequences to be scored. Without a file, these are the
// model's own sites.
func targets(seqfile string, m *model.BindingModel) ([]window, error) {
	if seqfile == "" {
		sites := m.Sites()
		w := make([]window, len(sites))
		for i, s := range sites {
			w[i] = window{name: fmt.Sprintf("site%d", i+1), pos: 1, s: s}
		}
		return w, nil
	}
	seqgrp, err := seq.Readfile(seqfile, &seq.Options{DiffLenSeq: true})
	if err != nil {
		return nil, errors.Wrap(err, "sequences to score")
	}
	return windows(seqgrp, m.Len()), nil
}

// agreement is how far one collection is from the combined matrix.
type agreement struct {
	name   string
	kl     float64 // mean over positions, bits
	cosSim float64 // mean over positions
}

// compare measures each collection against the combined matrix. The
// pseudo-count for zeros is 1/(N+1) for N sites in the model.
func compare(m *model.BindingModel) ([]agreement, error) {
	eps := 1 / float64(len(m.Sites())+1)
	var agree []agreement
	for i, c := range m.Collections() {
		name := fmt.Sprintf("collection%d", i+1)
		if named, ok := c.(interface{ Name() string }); ok {
			name = named.Name()
		}
		kl, err := pwm.KL(c.PWM(), m.PWM(), eps)
		if err != nil {
			return nil, err
		}
		cos, err := pwm.CosSim(c.PWM(), m.PWM())
		if err != nil {
			return nil, err
		}
		agree = append(agree, agreement{name: name, kl: stat.Mean(kl, nil), cosSim: stat.Mean(cos, nil)})
	}
	return agree, nil
}

// consensus is the most common base at each position of the model's
// sites.
func consensus(m *model.BindingModel) (string, error) {
	seqgrp := seq.Str2SeqGrp(m.Sites(), "site")
	if err := seqgrp.Upper(); err != nil {
		return "", err
	}
	return seqgrp.Consensus(string(pwm.DNA))
}

// results holds everything written out.
type results struct {
	m         *model.BindingModel
	agree     []agreement
	consensus string
	est       *model.Estimator
	patser    float64
	windows   []window
	scores    []float64
}

// writeResults writes some model statistics as comment lines, then one
// csv line per window.
func writeResults(fp io.Writer, r *results) error {
	e := r.est
	entropy := make([]string, 0, r.m.Len())
	for _, h := range r.m.PWM().Entropy() {
		entropy = append(entropy, strconv.FormatFloat(h, 'f', 2, 64))
	}
	header := []string{
		fmt.Sprintf("length %d", r.m.Len()),
		"consensus " + r.consensus,
		"entropy " + strings.Join(entropy, " "),
		fmt.Sprintf("ic %.4f", r.m.IC()),
		fmt.Sprintf("patser threshold %.4f", r.patser),
		fmt.Sprintf("sites mean %.4f std %.4f", e.MuM, e.StdM),
		fmt.Sprintf("background mean %.4f std %.4f", e.MuG, e.StdG),
		fmt.Sprintf("alpha %g prior %g strand %s", e.Alpha, e.PriorM, r.m.Strand()),
	}
	for _, a := range r.agree {
		header = append(header, fmt.Sprintf("collection %s kl %.3f cos %.3f", a.name, a.kl, a.cosSim))
	}
	for _, h := range header {
		if _, err := fmt.Fprintln(fp, "#", h); err != nil {
			return errors.Wrap(err, "writing results")
		}
	}
	if _, err := fmt.Fprintln(fp, `"name","pos","seq","score","prob"`); err != nil {
		return errors.Wrap(err, "writing results")
	}
	for i, w := range r.windows {
		s := r.scores[i]
		if _, err := fmt.Fprintf(fp, "%q,%d,%s,%.4f,%.4g\n", w.name, w.pos, w.s, s, e.Prob(s)); err != nil {
			return errors.Wrap(err, "writing results")
		}
	}
	return nil
}

// Mymain builds the model described by cfgfile, scores the sequences in
// seqfile and writes to outfile. An empty seqfile means score the model's
// own sites. An empty outfile or "-" means standard output.
func Mymain(flags *CmdFlag, cfgfile, seqfile, outfile string) (err error) {
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			fmt.Fprintln(os.Stderr, "finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	ctx := context.Background()
	cfg, err := config.Load(cfgfile)
	if err != nil {
		return err
	}
	colls, err := readCollections(ctx, cfg)
	if err != nil {
		return err
	}
	m, err := model.New(colls, cfg.Weights(), cfg.Options())
	if err != nil {
		return err
	}
	r := &results{m: m}
	if r.agree, err = compare(m); err != nil {
		return err
	}
	if r.consensus, err = consensus(m); err != nil {
		return err
	}
	if r.patser, err = m.PatserThreshold(); err != nil {
		return err
	}

	bgSeqs, err := bgSample(flags, m)
	if err != nil {
		return err
	}
	bgScores, err := m.ScoreSeqs(ctx, bgSeqs)
	if err != nil {
		return errors.Wrap(err, "scoring background")
	}
	if r.est, err = m.BayesianEstimator(bgScores, cfg.Prior, *cfg.Alpha); err != nil {
		return err
	}
	if r.windows, err = targets(seqfile, m); err != nil {
		return err
	}
	if r.scores, err = m.ScoreSeqs(ctx, windowSeqs(r.windows)); err != nil {
		return err
	}

	fp := io.Writer(os.Stdout)
	if outfile != "" && outfile != "-" {
		ft, cerr := os.Create(outfile)
		if cerr != nil {
			return errors.Wrapf(cerr, "output file %v", outfile)
		}
		defer func() {
			if cerr := ft.Close(); cerr != nil && err == nil {
				err = errors.Wrapf(cerr, "closing %v", outfile)
			}
		}()
		fp = ft
	}
	return writeResults(fp, r)
}
