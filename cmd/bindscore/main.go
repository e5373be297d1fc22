// 15 Oct 2026

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/andrew-torda/tfbind/pkg/bindscore"
	. "github.com/andrew-torda/tfbind/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[options] config.yaml [seqs.fa]")
	flag.PrintDefaults()
}

func main() {
	var flags bindscore.CmdFlag
	var outfile, level string
	const iseed int64 = 1637

	flag.StringVar(&flags.BgFile, "b", "", "fasta file of background sequences")
	flag.IntVar(&flags.NRand, "n", bindscore.DefaultNRand, "number of random background sequences")
	flag.Int64Var(&flags.Iseed, "s", iseed, "random number seed")
	flag.StringVar(&outfile, "o", "", "output csv file")
	flag.StringVar(&level, "v", "info", "log level")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.Usage = usage
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Error().Err(err).Msg("log level")
		os.Exit(ExitUsageError)
	}
	zerolog.SetGlobalLevel(lvl)

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
		os.Exit(ExitUsageError)
	}
	var seqfile string
	if flag.NArg() > 1 {
		seqfile = flag.Arg(1)
	}
	if err := bindscore.Mymain(&flags, flag.Arg(0), seqfile, outfile); err != nil {
		log.Error().Err(err).Msg("bindscore")
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
