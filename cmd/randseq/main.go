// 31 July 2020

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/andrew-torda/tfbind/pkg/pwm"
	"github.com/andrew-torda/tfbind/pkg/randseq"
	. "github.com/andrew-torda/tfbind/pkg/seq/common"
)

// parseBg reads four comma separated probabilities in ACGT order.
func parseBg(s string) (pwm.Background, error) {
	f := strings.Split(s, ",")
	if len(f) != pwm.DNA.Len() {
		return nil, fmt.Errorf("want %d probabilities, got %q", pwm.DNA.Len(), s)
	}
	bg := make(pwm.Background)
	for i, x := range f {
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, fmt.Errorf("background probability: %w", err)
		}
		bg[pwm.DNA[i]] = p
	}
	return bg, nil
}

func main() {
	f := flag.NewFlagSet("randseq", flag.ExitOnError)
	const iseed int64 = 1637
	var args randseq.RandSeqArgs
	var bgStr string

	f.BoolVar(&args.Messy, "m", false, "put white space in sequences")
	f.Int64Var(&args.Iseed, "r", iseed, "random number seed")
	f.StringVar(&bgStr, "p", "", "base probabilities, A,C,G,T")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(f.Output(), err)
		os.Exit(ExitUsageError)
	}
	if f.NArg() != 3 {
		fmt.Fprintln(f.Output(), "Too few args\nrandseq [..] file nseq length")
		f.Usage()
		os.Exit(ExitUsageError)
	}
	if bgStr != "" {
		bg, err := parseBg(bgStr)
		if err != nil {
			log.Error().Err(err).Msg("randseq")
			os.Exit(ExitUsageError)
		}
		args.Background = bg
	}

	const emsg = "Failed converting %s to positive integer"
	if nseq, err := strconv.ParseUint(f.Args()[1], 10, 32); err != nil {
		log.Error().Msgf(emsg, f.Args()[1])
		os.Exit(ExitFailure)
	} else {
		args.Nseq = int(nseq)
	}
	if nlen, err := strconv.ParseUint(f.Args()[2], 10, 32); err != nil {
		log.Error().Msgf(emsg, f.Args()[2])
		os.Exit(ExitFailure)
	} else {
		args.Len = int(nlen)
	}

	args.Cmmt = "random"
	fname := f.Args()[0]
	if fname == "-" || fname == "" {
		args.Wrtr = os.Stdout
	} else {
		ft, err := os.Create(fname)
		if err != nil {
			log.Error().Err(err).Msg("File for output")
			os.Exit(ExitFailure)
		}
		defer ft.Close()
		args.Wrtr = ft
	}
	if err := randseq.RandSeqMain(&args); err != nil {
		log.Error().Err(err).Msg("randseq")
		os.Exit(ExitFailure)
	}
}
