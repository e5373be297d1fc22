// Reader for fasta format files.

package seq

import (
	"bufio"
	"bytes"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/andrew-torda/tfbind/pkg/white"
)

// An item is terminated by a newline if we are in a comment or a comment
// character ">" if we are in a sequence.
const (
	NL       = '\n'
	cmmtChar = '>'
)

type item struct {
	data     []byte
	complete bool
}

type lexer struct {
	ichan    chan *item
	seqgrp   *SeqGrp
	rdr      io.Reader
	itempool sync.Pool
	cmmt     string // partial comment
	seq      []byte // partial string
	term     byte   // only touched by next()
	rdErr    error  // set by next() before it closes ichan
	err      error
}

const defaultReadSize = 512

var rdsize int = defaultReadSize

// setFastaRdSize is only used during testing and benchmarking
func setFastaRdSize(i int) {
	if i <= 2 {
		panic("setFastaRdSize given buffer length of 2 or less")
	}
	rdsize = i
}

func newItem() interface{} { return new(item) }

// next reads from the input and sends items to channel, ichan.
// An item is terminated by l.term, a full buffer or the end of input.
// The terminator flips between newline and ">" each time one is found.
func (l *lexer) next() {
	defer close(l.ichan)
	rdr := bufio.NewReaderSize(l.rdr, rdsize)
	for {
		item := l.itempool.Get().(*item)
		data, err := rdr.ReadSlice(l.term)
		item.data = append(item.data[:0], data...)
		switch err {
		case nil:
			item.data = item.data[:len(item.data)-1] // drop the terminator
			item.complete = true
			if l.term == NL {
				l.term = cmmtChar
			} else {
				l.term = NL
			}
		case bufio.ErrBufferFull:
			item.complete = false
		case io.EOF:
			item.complete = true
			l.ichan <- item
			return
		default:
			l.rdErr = err
			return
		}
		l.ichan <- item
	}
}

type stateFn func(*lexer) stateFn

// We are reading a sequence
func gseq(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil {
		l.err = errors.New("no sequence after comment " + l.cmmt)
		return nil
	}
	defer l.itempool.Put(item)

	white.Remove(&item.data)
	l.seq = append(l.seq, item.data...)
	if item.complete {
		if len(l.seq) == 0 {
			l.err = errors.New("zero length sequence after " + l.cmmt)
			return nil
		}
		l.seqgrp.seqs = append(l.seqgrp.seqs, seq{cmmt: l.cmmt, seq: l.seq})
		l.cmmt = ""
		l.seq = nil
		return gcmmt
	}
	return gseq
}

// We are reading a comment. The very first comment still has its ">".
func gcmmt(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil {
		return nil
	}
	defer l.itempool.Put(item)

	data := item.data
	if len(l.seqgrp.seqs) == 0 && l.cmmt == "" {
		data = bytes.TrimLeft(data, " \t\r\n")
		if len(data) == 0 { // blank lines before the first comment
			return gcmmt
		}
		if data[0] != cmmtChar {
			l.err = errors.New("input does not start with \">\", not fasta")
			return nil
		}
		data = data[1:]
	}
	l.cmmt += string(bytes.TrimRight(data, "\r"))
	if item.complete {
		return gseq
	}
	return gcmmt
}

// drain empties the channel so next() can finish if we stopped early.
func (l *lexer) drain() {
	for range l.ichan {
	}
}

// ReadFasta reads fasta formatted files. Unless s_opts says otherwise,
// all sequences must have the same length.
func ReadFasta(rdr io.Reader, seqgrp *SeqGrp, s_opts *Options) error {
	l := lexer{rdr: rdr, ichan: make(chan *item, 2), seqgrp: seqgrp, term: NL}
	l.itempool.New = newItem

	go l.next()
	for state := gcmmt; state != nil; {
		state = state(&l)
	}
	l.drain()
	switch {
	case l.rdErr != nil:
		return l.rdErr
	case l.err != nil:
		return l.err
	case seqgrp.NSeq() == 0:
		return errors.New("no sequences found")
	}
	if s_opts == nil || !s_opts.DiffLenSeq {
		return seqgrp.checkLengths()
	}
	return nil
}
