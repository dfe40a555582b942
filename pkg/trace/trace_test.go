// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package trace

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"calls.txt", "calls.xz"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), name)
			runID := uuid.NewString()
			w, err := Create(file, runID)
			require.NoError(t, err)
			w.Logf(0, "socket(%v, %v, %v)", 2, 1, 6)
			w.Logf(3, "close")
			require.NoError(t, w.Close())

			tr, err := ReadFile(file)
			require.NoError(t, err)
			assert.Equal(t, runID, tr.RunID)
			assert.Equal(t, []string{"0: socket(2, 1, 6)", "3: close"}, tr.Lines)
		})
	}
}

func TestConcurrentWriters(t *testing.T) {
	buf := new(bytes.Buffer)
	w, err := NewWriter(buf, true, "run")
	require.NoError(t, err)
	var wg sync.WaitGroup
	for proc := 0; proc < 4; proc++ {
		proc := proc
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				w.Logf(proc, "call %v", i)
			}
		}()
	}
	wg.Wait()
	require.NoError(t, w.Close())
	tr, err := Read(buf, true)
	require.NoError(t, err)
	assert.Len(t, tr.Lines, 400)
	assert.Contains(t, tr.Lines, fmt.Sprintf("%v: call %v", 2, 99))
}

func TestBadHeader(t *testing.T) {
	_, err := Read(bytes.NewBufferString("garbage\n"), false)
	assert.Error(t, err)
	_, err = Read(new(bytes.Buffer), false)
	assert.Error(t, err)
}

func TestWriteAfterClose(t *testing.T) {
	buf := new(bytes.Buffer)
	w, err := NewWriter(buf, false, "run")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	w.Logf(0, "dropped")
	tr, err := Read(buf, false)
	require.NoError(t, err)
	assert.Empty(t, tr.Lines)
}
