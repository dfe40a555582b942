// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package trace records generated calls as text lines, one call per line.
// Files with the .xz suffix are compressed.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sockgen/sockgen/pkg/osutil"
	"github.com/ulikunitz/xz"
)

const headerPrefix = "# sockgen run "

// Writer is safe for concurrent use by multiple workers.
type Writer struct {
	mu     sync.Mutex
	buf    *bufio.Writer
	closer []io.Closer
	err    error
}

// Create creates (or truncates) the trace file.
func Create(filename, runID string) (*Writer, error) {
	f, err := osutil.CreateFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	w, err := NewWriter(f, strings.HasSuffix(filename, ".xz"), runID)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = append(w.closer, f)
	return w, nil
}

// NewWriter writes the trace to out. The caller owns out.
func NewWriter(out io.Writer, compress bool, runID string) (*Writer, error) {
	w := &Writer{}
	if compress {
		xzw, err := xz.NewWriter(out)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		w.closer = append(w.closer, xzw)
		out = xzw
	}
	w.buf = bufio.NewWriter(out)
	if _, err := fmt.Fprintf(w.buf, "%v%v\n", headerPrefix, runID); err != nil {
		return nil, err
	}
	return w, nil
}

// Logf appends a line for worker proc.
func (w *Writer) Logf(proc int, msg string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.buf, "%v: "+msg+"\n", append([]any{proc}, args...)...)
}

// Close flushes buffered lines and closes the underlying streams.
// It returns the first write error, if any.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	errs := []error{w.err, w.buf.Flush()}
	for _, c := range w.closer {
		errs = append(errs, c.Close())
	}
	if w.err == nil {
		w.err = errors.New("trace writer is closed")
	}
	return errors.Join(errs...)
}

// Trace is a parsed trace file.
type Trace struct {
	RunID string
	Lines []string
}

// ReadFile parses a trace produced by Create.
func ReadFile(filename string) (*Trace, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, strings.HasSuffix(filename, ".xz"))
}

func Read(in io.Reader, compressed bool) (*Trace, error) {
	if compressed {
		xzr, err := xz.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		in = xzr
	}
	s := bufio.NewScanner(in)
	s.Buffer(nil, 1<<20)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("empty trace")
	}
	runID, ok := strings.CutPrefix(s.Text(), headerPrefix)
	if !ok {
		return nil, fmt.Errorf("bad trace header %q", s.Text())
	}
	tr := &Trace{RunID: runID}
	for s.Scan() {
		tr.Lines = append(tr.Lines, s.Text())
	}
	return tr, s.Err()
}
