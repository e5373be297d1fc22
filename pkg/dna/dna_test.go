// 9 Oct 2026

package dna_test

import (
	"testing"

	. "github.com/andrew-torda/tfbind/pkg/dna"
)

func TestComplement(t *testing.T) {
	cases := []struct{ in, comp, rc string }{
		{"AACG", "TTGC", "CGTT"},
		{"ACGT", "TGCA", "ACGT"},
		{"acgT", "tgcA", "Acgt"},
		{"", "", ""},
		{"G", "C", "C"},
	}
	for _, c := range cases {
		got, err := Complement(c.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.comp {
			t.Errorf("Complement(%s) = %s, want %s", c.in, got, c.comp)
		}
		got, err = RevComp(c.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.rc {
			t.Errorf("RevComp(%s) = %s, want %s", c.in, got, c.rc)
		}
	}
}

// TestTwice checks that doing it twice gets you back where you started.
func TestTwice(t *testing.T) {
	for _, s := range []string{"GATTACA", "TTTT", "CAGGT"} {
		c, _ := Complement(s)
		if cc, _ := Complement(c); cc != s {
			t.Errorf("complement twice of %s gave %s", s, cc)
		}
		r, _ := RevComp(s)
		if rr, _ := RevComp(r); rr != s {
			t.Errorf("revcomp twice of %s gave %s", s, rr)
		}
	}
}

func TestBadBase(t *testing.T) {
	for _, s := range []string{"ACNT", "AC-T", "RYS"} {
		if _, err := Complement(s); err == nil {
			t.Errorf("Complement(%s) should fail", s)
		}
		if _, err := RevComp(s); err == nil {
			t.Errorf("RevComp(%s) should fail", s)
		}
		if Valid(s) {
			t.Errorf("Valid(%s) said true", s)
		}
	}
	if !Valid("acgtACGT") {
		t.Error("Valid broke on good bases")
	}
}

func TestUpper(t *testing.T) {
	if got := Upper("acgtN-x"); got != "ACGTN-X" {
		t.Fatal("Upper got", got)
	}
}
