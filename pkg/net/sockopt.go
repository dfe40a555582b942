// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package net

import (
	"fmt"

	"github.com/sockgen/sockgen/pkg/rnd"
	"github.com/sockgen/sockgen/pkg/stat"
)

const (
	// uioMaxIOV is UIO_MAXIOV.
	uioMaxIOV = 1024
	// OptMemMax approximates net.core.optmem_max (sizeof(long)*(2*UIO_MAXIOV+512)).
	// The real limit is a sysctl, it is not queried.
	OptMemMax = 8 * (2*uioMaxIOV + 512)
	// MaxOptLen is the capacity of setsockopt value buffers,
	// enough for the largest computed filter length.
	MaxOptLen = OptMemMax
	// ScalarOptLen is the length used for options without a declared payload size.
	ScalarOptLen = 4
)

// SockOpt is a single setsockopt request.
// Val has fixed capacity and is pre-filled with random bytes,
// generators then shape the first Len bytes.
type SockOpt struct {
	Level   int
	Name    int
	Val     []byte
	Len     int
	Payload Payload
}

// Payload is a structured option value.
type Payload interface {
	Size() int
	// Marshal writes the kernel binary layout into buf, len(buf) >= Size().
	Marshal(buf []byte)
	String() string
}

// SockOptGenerator fills a setsockopt request for one protocol.
type SockOptGenerator interface {
	GenSockOpt(w *Worker, so *SockOpt, t Triplet)
}

// SockOptFunc adapts a function to SockOptGenerator.
type SockOptFunc func(w *Worker, so *SockOpt, t Triplet)

func (f SockOptFunc) GenSockOpt(w *Worker, so *SockOpt, t Triplet) {
	f(w, so, t)
}

// OptionDesc is a catalog entry: an option name and its payload length,
// zero meaning a scalar option.
type OptionDesc struct {
	Name int
	Len  int
}

// DefaultOptLen returns the payload length for a catalog entry.
func DefaultOptLen(declared int) int {
	if declared == 0 {
		return ScalarOptLen
	}
	return declared
}

func NewSockOpt(capacity int) *SockOpt {
	return &SockOpt{
		Val: make([]byte, capacity),
	}
}

// SetLen sets the option length, never exceeding the buffer capacity.
func (so *SockOpt) SetLen(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(so.Val) {
		statClamped.Add(1)
		n = len(so.Val)
	}
	so.Len = n
}

// SetPayload writes a structured value into the buffer and sets the length to its size.
func (so *SockOpt) SetPayload(p Payload) {
	if p.Size() > len(so.Val) {
		panic(fmt.Sprintf("payload %v does not fit into %v bytes", p, len(so.Val)))
	}
	p.Marshal(so.Val)
	so.Payload = p
	so.Len = p.Size()
}

// Bytes returns the option value as it is passed to the kernel.
func (so *SockOpt) Bytes() []byte {
	return so.Val[:so.Len]
}

func (so *SockOpt) String() string {
	if so.Payload != nil {
		return fmt.Sprintf("setsockopt(level=%v, name=%v, %v, len=%v)", so.Level, so.Name, so.Payload, so.Len)
	}
	return fmt.Sprintf("setsockopt(level=%v, name=%v, len=%v)", so.Level, so.Name, so.Len)
}

// ApplyDesc selects the option and sets its default length.
func (so *SockOpt) ApplyDesc(desc OptionDesc) {
	so.Name = desc.Name
	so.Payload = nil
	so.SetLen(DefaultOptLen(desc.Len))
}

// GenSetSockOpt creates a request with a randomly pre-filled buffer
// and lets the family generator fill it.
func GenSetSockOpt(w *Worker, p *Proto, t Triplet) *SockOpt {
	so := NewSockOpt(MaxOptLen)
	rnd.Fill(w.Rand, so.Val)
	p.SetSockOpt(w, so, t)
	statOptLen.Add(so.Len)
	return so
}

var (
	statOptLen = stat.New("sockopt len", "Distribution of generated setsockopt lengths",
		stat.Distribution{})
	statClamped = stat.New("sockopt clamped", "Option lengths clamped to the buffer capacity",
		stat.Prometheus("sockgen_sockopt_clamped"))
)

// PickOption selects a uniformly random catalog entry and applies it to the request.
func PickOption(w *Worker, so *SockOpt, catalog []OptionDesc) OptionDesc {
	desc := rnd.Choose(w.Rand, catalog)
	so.ApplyDesc(desc)
	return desc
}
