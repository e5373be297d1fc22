// 31 July 2020

/*
Randseq makes random DNA sequences for testing, and for background
samples when there is no real background sequence.
Usage:

	randseq [options] fname nseq length

will generate nseq sequences of length length and write them to fname.
A file name of "-" means standard output.

Flags:

	-m
		messy output. Spaces and newlines are sprinkled through the
		sequences, which the fasta reader has to cope with.
	-r
		random number seed
	-p
		base probabilities as four numbers for A, C, G and T,
		like 0.3,0.2,0.2,0.3. Uniform by default.
*/
package main
