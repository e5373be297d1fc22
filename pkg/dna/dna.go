// 9 Oct 2026

// Package dna has the few nucleotide utilities the scoring code needs.
// Only the four unambiguous bases are understood. Anything else is an
// error, since a weight matrix has no row for it.
package dna

import (
	"github.com/pkg/errors"
)

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['a'] = 't'
	complement['c'] = 'g'
	complement['g'] = 'c'
	complement['t'] = 'a'
}

const badBase = "bad base %q at position %d in %q"

// Comp returns the complement of a single base and false if
// c is not one of ACGT (either case).
func Comp(c byte) (byte, bool) {
	r := complement[c]
	return r, r != 0
}

// Complement returns the base by base complement of s. The order is
// not changed, so "AACG" gives "TTGC".
func Complement(s string) (string, error) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c, ok := Comp(s[i])
		if !ok {
			return "", errors.Errorf(badBase, s[i], i, s)
		}
		out[i] = c
	}
	return string(out), nil
}

// RevComp returns the reverse complement of s, the other strand read
// 5' to 3'. "AACG" gives "CGTT".
func RevComp(s string) (string, error) {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c, ok := Comp(s[n-1-i])
		if !ok {
			return "", errors.Errorf(badBase, s[n-1-i], n-1-i, s)
		}
		out[i] = c
	}
	return string(out), nil
}

// Upper folds the lower case bases of s to upper case. Other bytes are
// left alone.
func Upper(s string) string {
	const diff = 'a' - 'A'
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - diff
		}
	}
	return string(b)
}

// Valid says whether every byte in s is one of ACGT, in either case.
func Valid(s string) bool {
	for i := 0; i < len(s); i++ {
		if complement[s[i]] == 0 {
			return false
		}
	}
	return true
}
