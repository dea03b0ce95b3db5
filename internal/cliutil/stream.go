// Package cliutil holds small CLI support helpers shared across
// famdb subcommands: stream setup, path expansion and table/number
// formatting. Grounded on the teacher's unikmer/cmd/util-io.go and
// unikmer/cmd/info.go idioms.
package cliutil

import (
	"bufio"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
)

// OutStream opens file ("-" for stdout) for writing, optionally
// wrapping it in a gzip writer, the same shape as the teacher's
// outStream helper.
func OutStream(file string, gzipped bool) (*bufio.Writer, io.WriteCloser, *os.File, error) {
	var w *os.File
	var err error
	if file == "-" || file == "" {
		w = os.Stdout
	} else {
		w, err = os.Create(file)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	if gzipped {
		gw := gzip.NewWriter(w)
		return bufio.NewWriterSize(gw, os.Getpagesize()), gw, w, nil
	}
	return bufio.NewWriterSize(w, os.Getpagesize()), nil, w, nil
}

// InStream opens file ("-" for stdin) for reading, transparently
// decompressing gzip content.
func InStream(file string) (*bufio.Reader, *os.File, error) {
	var r *os.File
	var err error
	if file == "-" || file == "" {
		r = os.Stdin
	} else {
		r, err = os.Open(file)
		if err != nil {
			return nil, nil, err
		}
	}

	br := bufio.NewReaderSize(r, os.Getpagesize())
	if gzipped, err := isGzip(br); err != nil {
		return nil, r, err
	} else if gzipped {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, r, err
		}
		br = bufio.NewReaderSize(gr, os.Getpagesize())
	}
	return br, r, nil
}

func isGzip(b *bufio.Reader) (bool, error) {
	magic, err := b.Peek(2)
	if err != nil {
		// Empty or too-short stream: treat as not gzipped rather
		// than erroring, callers see EOF on the first real read.
		return false, nil
	}
	return magic[0] == 0x1f && magic[1] == 0x8b, nil
}

// IsBrokenPipe reports whether err is the result of the reader on the
// other end of stdout going away (spec.md §5 cancellation rule). It
// matches on the OS-provided error text rather than syscall.EPIPE so
// the check stays portable across platforms.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	if err == io.ErrClosedPipe {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
