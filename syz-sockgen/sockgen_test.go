// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sockgen/sockgen/pkg/argmem"
	"github.com/sockgen/sockgen/pkg/config"
	"github.com/sockgen/sockgen/pkg/maps"
	"github.com/sockgen/sockgen/pkg/net/inetaddr"
	"github.com/sockgen/sockgen/pkg/rnd"
	"github.com/sockgen/sockgen/pkg/sockcfg"
	"github.com/sockgen/sockgen/pkg/syscalls"
	"github.com/sockgen/sockgen/pkg/testutil"
	"github.com/sockgen/sockgen/pkg/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorker(t *testing.T, tr *trace.Writer) *worker {
	cfg := sockcfg.Default()
	w, err := newWorker(0, cfg, false, testutil.RandSource(t).Int63(), tr)
	require.NoError(t, err)
	t.Cleanup(w.close)
	return w
}

func mapAt(t *testing.T, pool *maps.Pool, addr uint64) *maps.Map {
	for _, m := range pool.Maps() {
		if m.Addr == addr {
			return m
		}
	}
	t.Fatalf("address 0x%x is not a region start", addr)
	return nil
}

func TestGenerate(t *testing.T) {
	w := testWorker(t, nil)
	names := []string{"socket", "bind", "setsockopt", "getsockopt", "writev"}
	for i := 0; i < testutil.IterCount()/10; i++ {
		p, err := w.generate()
		require.NoError(t, err)
		require.Len(t, p.calls, len(names))
		for j, rec := range p.calls {
			name := names[j]
			if j == 1 && p.connect {
				name = "connect"
			}
			assert.Equal(t, name, syscalls.Lookup(rec.NR).Name)
		}
		socket, addr, set, get, writev := p.calls[0], p.calls[1], p.calls[2], p.calls[3], p.calls[4]
		assert.Equal(t, uint64(p.sock.Family), socket.Args[0])

		m := mapAt(t, w.pool, addr.Args[1])
		assert.Equal(t, maps.ProtRW, m.Prot)
		if addr.Args[1] != set.Args[3] && addr.Args[1] != writev.Args[1] {
			// Later calls may reuse the region.
			assert.Equal(t, p.addr.Bytes(), m.Data()[:addr.Args[2]])
		}

		assert.Equal(t, uint64(p.opt.Len), set.Args[4])
		assert.Equal(t, set.Args[3], get.Args[3])

		assert.Equal(t, uint64(len(p.iov)), writev.Args[2])
		assert.LessOrEqual(t, len(p.iov), maxIOVecs)
		m = mapAt(t, w.pool, writev.Args[1])
		assert.Equal(t, marshalIOVec(p.iov), m.Data()[:len(p.iov)*sizeofIovec])
		require.NoError(t, w.pool.Reset())
	}
}

func TestLoopTrace(t *testing.T) {
	buf := new(bytes.Buffer)
	tr, err := trace.NewWriter(buf, false, "test")
	require.NoError(t, err)
	w := testWorker(t, tr)
	require.NoError(t, w.loop(context.Background(), 20))
	require.NoError(t, tr.Close())
	res, err := trace.Read(buf, false)
	require.NoError(t, err)
	assert.Len(t, res.Lines, 20*5)
	assert.True(t, strings.HasPrefix(res.Lines[0], "0: socket["), res.Lines[0])
}

func TestLoopCanceled(t *testing.T) {
	w := testWorker(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.loop(ctx, 0))
}

func TestRun(t *testing.T) {
	cfg := sockcfg.Default()
	cfg.Procs = 3
	cfg.Iterations = 10
	cfg.Heartbeat = 0
	cfg.Seed = 1
	cfg.Privileged = sockcfg.PrivilegedNo
	cfg.Trace = filepath.Join(t.TempDir(), "calls.xz")
	require.NoError(t, run(context.Background(), cfg, "run-id"))
	res, err := trace.ReadFile(cfg.Trace)
	require.NoError(t, err)
	assert.Equal(t, "run-id", res.RunID)
	assert.Len(t, res.Lines, 3*10*5)

	saved := new(sockcfg.Config)
	require.NoError(t, config.LoadFile(traceConfigFile(cfg.Trace), saved))
	if diff := cmp.Diff(cfg, saved); diff != "" {
		t.Fatal(diff)
	}
}

func TestNewWorkersFailure(t *testing.T) {
	var created []*worker
	_, err := newWorkers(4, func(proc int) (*worker, error) {
		if proc == 2 {
			return nil, errors.New("no memory")
		}
		w, err := newWorker(proc, sockcfg.Default(), false, int64(proc), nil)
		if err == nil {
			created = append(created, w)
		}
		return w, err
	})
	require.EqualError(t, err, "no memory")
	require.Len(t, created, 2)
	for _, w := range created {
		m := w.pool.Maps()[0]
		assert.ErrorIs(t, w.pool.Protect(m, maps.ProtRW), maps.ErrClosed)
	}
}

// smallRegions hands out regions too small for any call argument.
type smallRegions struct{}

func (smallRegions) Get(r rnd.Source) *maps.Map { return &maps.Map{Addr: 0x1000, Size: 8} }
func (smallRegions) Protect(m *maps.Map, prot maps.Prot) error { return nil }

func TestLoopNoRegion(t *testing.T) {
	cfg := sockcfg.Default()
	cfg.MapPages = []int{1}
	cfg.MaxRetries = 2
	w, err := newWorker(0, cfg, false, testutil.RandSource(t).Int63(), nil)
	require.NoError(t, err)
	t.Cleanup(w.close)
	w.mem = argmem.NewHelper(smallRegions{}, w.net.Rand, cfg.MaxRetries)

	failed, programs := statGenFailed.Val(), statPrograms.Val()
	require.NoError(t, w.loop(context.Background(), 10))
	assert.Equal(t, failed+10, statGenFailed.Val())
	assert.Equal(t, programs, statPrograms.Val())
}

func TestProgramString(t *testing.T) {
	w := testWorker(t, nil)
	p, err := w.generate()
	require.NoError(t, err)
	p.addr = &inetaddr.Sockaddr{Port: 80, Addr: inetaddr.Loopback}
	assert.Contains(t, p.String(), "addr=127.0.0.1:80(loopback)")
	assert.Empty(t, addrClass(nil))
}

func TestMarshalIOVec(t *testing.T) {
	buf := marshalIOVec([]argmem.IOVec{{Base: 0x1000, Len: 3}, {Base: 0x2000}})
	require.Len(t, buf, 2*sizeofIovec)
	assert.Equal(t, uint64(0x1000), binary.NativeEndian.Uint64(buf[0:]))
	assert.Equal(t, uint64(3), binary.NativeEndian.Uint64(buf[8:]))
	assert.Equal(t, uint64(0x2000), binary.NativeEndian.Uint64(buf[16:]))
	assert.Zero(t, binary.NativeEndian.Uint64(buf[24:]))
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(httpHandler())
	defer srv.Close()
	for _, path := range []string{"/metrics", "/stats", "/log"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
