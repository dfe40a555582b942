// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/sockgen/sockgen/pkg/argmem"
	"github.com/sockgen/sockgen/pkg/log"
	"github.com/sockgen/sockgen/pkg/maps"
	"github.com/sockgen/sockgen/pkg/net"
	"github.com/sockgen/sockgen/pkg/net/inetaddr"
	"github.com/sockgen/sockgen/pkg/rnd"
	"github.com/sockgen/sockgen/pkg/sockcfg"
	"github.com/sockgen/sockgen/pkg/stat"
	"github.com/sockgen/sockgen/pkg/syscalls"
	"github.com/sockgen/sockgen/pkg/trace"
)

var (
	statPrograms = stat.New("programs", "Generated call sequences",
		stat.Console, stat.Rate{}, stat.Prometheus("sockgen_programs"))
	statGenFailed = stat.New("gen failed", "Call sequences dropped because of missing memory",
		stat.Console, stat.Prometheus("sockgen_gen_failed"))
)

// sizeofIovec is sizeof(struct iovec) on 64-bit targets.
const sizeofIovec = 16

// maxIOVecs bounds the number of writev elements per call.
const maxIOVecs = 8

type worker struct {
	proc    int
	net     *net.Worker
	protos  []*net.Proto
	pool    *maps.Pool
	mem     *argmem.Helper
	trace   *trace.Writer
	execute bool
}

func newWorker(proc int, cfg *sockcfg.Config, privileged bool, seed int64, tr *trace.Writer) (*worker, error) {
	r := rnd.New(rand.NewSource(seed))
	var protos []*net.Proto
	for _, name := range cfg.Families {
		p, err := net.GetProto(name)
		if err != nil {
			return nil, err
		}
		protos = append(protos, p)
	}
	pool, err := maps.NewPool(r, cfg.MapPages)
	if err != nil {
		return nil, fmt.Errorf("proc %v: %w", proc, err)
	}
	return &worker{
		proc:    proc,
		net:     net.NewWorker(r, privileged),
		protos:  protos,
		pool:    pool,
		mem:     argmem.NewHelper(pool, r, cfg.MaxRetries),
		trace:   tr,
		execute: cfg.Execute,
	}, nil
}

func (w *worker) close() {
	if err := w.pool.Close(); err != nil {
		log.Errorf("proc %v: failed to release maps: %v", w.proc, err)
	}
}

func (w *worker) loop(ctx context.Context, iterations int) error {
	for i := 0; iterations == 0 || i < iterations; i++ {
		if ctx.Err() != nil {
			return nil
		}
		p, err := w.generate()
		if err != nil {
			if !errors.Is(err, argmem.ErrNoRegion) {
				return err
			}
			statGenFailed.Add(1)
		} else {
			statPrograms.Add(1)
			w.record(p)
			if w.execute {
				execute(w.proc, p)
			}
		}
		if err := w.pool.Reset(); err != nil {
			return fmt.Errorf("proc %v: %w", w.proc, err)
		}
	}
	return nil
}

// program is a sequence of calls on a single socket.
type program struct {
	sock    net.Triplet
	addr    net.SockAddr
	connect bool
	opt     *net.SockOpt
	iov     []argmem.IOVec
	calls   []syscalls.Record
}

func (w *worker) generate() (*program, error) {
	r := w.net.Rand
	proto := rnd.Choose(r, w.protos)
	p := &program{
		sock:    net.PickTriplet(w.net, proto),
		addr:    proto.GenSockAddr(w.net),
		connect: r.Bin(),
	}
	p.call("socket", uint64(p.sock.Family), uint64(p.sock.Type), uint64(p.sock.Protocol))

	addrPtr, err := w.place(p.addr.Bytes())
	if err != nil {
		return nil, err
	}
	addrCall := "bind"
	if p.connect {
		addrCall = "connect"
	}
	p.call(addrCall, 0, addrPtr, uint64(len(p.addr.Bytes())))

	p.opt = net.GenSetSockOpt(w.net, proto, p.sock)
	optPtr, err := w.place(p.opt.Bytes())
	if err != nil {
		return nil, err
	}
	set := p.call("setsockopt", 0, uint64(p.opt.Level), uint64(p.opt.Name), optPtr, uint64(p.opt.Len))
	// Read the option back into the buffer it was set from.
	lenPtr, err := w.mem.Address()
	if err != nil {
		return nil, err
	}
	p.call("getsockopt", 0, uint64(p.opt.Level), uint64(p.opt.Name),
		argmem.FindPreviousArgAddress(set, 5), lenPtr)

	p.iov = w.mem.AllocIOVec(1 + r.Rand(maxIOVecs))
	iovPtr, err := w.place(marshalIOVec(p.iov))
	if err != nil {
		return nil, err
	}
	p.call("writev", 0, iovPtr, uint64(len(p.iov)))
	return p, nil
}

// place copies data into a writable region and returns its address.
func (w *worker) place(data []byte) (uint64, error) {
	m, err := w.mem.WritableRegion(len(data))
	if err != nil {
		return 0, err
	}
	copy(m.Data(), data)
	return m.Addr, nil
}

func marshalIOVec(iov []argmem.IOVec) []byte {
	buf := make([]byte, len(iov)*sizeofIovec)
	for i, v := range iov {
		binary.NativeEndian.PutUint64(buf[i*sizeofIovec:], v.Base)
		binary.NativeEndian.PutUint64(buf[i*sizeofIovec+8:], v.Len)
	}
	return buf
}

func (p *program) call(name string, args ...uint64) *syscalls.Record {
	rec := syscalls.Record{NR: syscalls.MustNR(name)}
	copy(rec.Args[:], args)
	p.calls = append(p.calls, rec)
	return &p.calls[len(p.calls)-1]
}

func (p *program) String() string {
	return fmt.Sprintf("%v addr=%v%v connect=%v %v iov=%v",
		p.sock, p.addr, addrClass(p.addr), p.connect, p.opt, len(p.iov))
}

// addrClass names the address class of IPv4 addresses, e.g. "(loopback)".
func addrClass(addr net.SockAddr) string {
	sa, ok := addr.(*inetaddr.Sockaddr)
	if !ok {
		return ""
	}
	class, ok := inetaddr.ClassOf(sa.Addr)
	if !ok {
		return ""
	}
	return "(" + class.Name + ")"
}

func (w *worker) record(p *program) {
	log.Logf(1, "proc %v: %v", w.proc, p)
	if w.trace == nil && !log.V(2) {
		return
	}
	for i := range p.calls {
		if log.V(2) {
			log.Logf(2, "proc %v: %v", w.proc, &p.calls[i])
		}
		if w.trace != nil {
			w.trace.Logf(w.proc, "%v", &p.calls[i])
		}
	}
}
