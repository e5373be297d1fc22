// 20 April 2020

package seq_test

import (
	"fmt"
	"os"
	"strings"

	. "github.com/andrew-torda/tfbind/pkg/seq"
)

var set1 = `>s1
ACGaac
>s2
CCGTat
> s3
CCTaag`

func ExampleSeqGrp_UsageSite() {
	var seqgrp SeqGrp
	if err := ReadFasta(strings.NewReader(set1), &seqgrp, &Options{}); err != nil {
		fmt.Println(err)
		return
	}
	seqgrp.Upper()
	counts, err := seqgrp.UsageSite("ACGT")
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, row := range counts.Mat {
		fmt.Printf("%c", "ACGT"[i])
		for _, x := range row {
			fmt.Printf("%5.0f", x)
		}
		fmt.Println()
	}
	// Output:
	// A    1    0    0    2    3    0
	// C    2    3    0    0    0    1
	// G    0    0    2    0    0    1
	// T    0    0    1    1    0    1
}

func ExampleWriteFasta() {
	seqgrp := Str2SeqGrp([]string{"ACGTACGTAC", "TTTT"}, "site ")
	for _, ss := range seqgrp.SeqSlc() {
		if err := WriteFasta(os.Stdout, ss.Cmmt(), ss.GetSeq(), 4); err != nil {
			fmt.Println(err)
		}
	}
	// Output:
	// >site 0
	// ACGT
	// ACGT
	// AC
	// >site 1
	// TTTT
}
