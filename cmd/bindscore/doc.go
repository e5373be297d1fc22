// 15 Oct 2026

/*
Bindscore builds a binding model for a transcription factor from
collections of aligned binding sites and scores DNA against it.
Usage:

	bindscore [options] config.yaml [seqs.fa]

The config file lists the site files and their weights, see pkg/config.
Every window of seqs.fa as long as the model is scored on both strands.
Without seqs.fa, the model's own sites are scored.
The output is csv with a few lines of statistics as # comments, and for
each window the name, position, sequence, score and the posterior
probability that it is a real site.

The probability needs a background sample. Give one with -b, or random
sequences are made from the background distribution of the config.

Flags:

	-b
		fasta file of background sequence
	-n
		number of random background sequences (default 10000)
	-s
		random number seed
	-o
		output file, default standard output
	-v
		log level, one of debug, info, warn, error
	-t
		print timing information
*/
package main
