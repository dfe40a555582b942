// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package argmem produces pointer arguments that point into pool regions.
package argmem

import (
	"errors"
	"fmt"

	"github.com/sockgen/sockgen/pkg/log"
	"github.com/sockgen/sockgen/pkg/maps"
	"github.com/sockgen/sockgen/pkg/rnd"
	"github.com/sockgen/sockgen/pkg/stat"
	"github.com/sockgen/sockgen/pkg/syscalls"
)

// ErrNoRegion is returned when no region of the requested size was found.
var ErrNoRegion = errors.New("no sufficiently large region")

// DefaultMaxRetries bounds the number of regions tried by WritableAddress.
const DefaultMaxRetries = 64

var (
	statRetries = stat.New("region retries", "Regions rejected as too small for an argument",
		stat.Prometheus("sockgen_region_retries"))
	statNoRegion = stat.New("region failures", "Arguments for which no large enough region was found",
		stat.Console, stat.Prometheus("sockgen_region_failures"))
)

// Helper is per-worker state for address generation.
type Helper struct {
	Maps       maps.Allocator
	Rand       rnd.Source
	MaxRetries int
}

func NewHelper(alloc maps.Allocator, r rnd.Source, maxRetries int) *Helper {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Helper{
		Maps:       alloc,
		Rand:       r,
		MaxRetries: maxRetries,
	}
}

// WritableRegion returns a read-write region of at least size bytes.
func (h *Helper) WritableRegion(size int) (*maps.Map, error) {
	for i := 0; i < h.MaxRetries; i++ {
		m := h.Maps.Get(h.Rand)
		if m.Size < size {
			statRetries.Add(1)
			continue
		}
		if err := h.Maps.Protect(m, maps.ProtRW); err != nil {
			return nil, err
		}
		return m, nil
	}
	statNoRegion.Add(1)
	log.Logf(0, "no region of %v bytes after %v attempts", size, h.MaxRetries)
	return nil, fmt.Errorf("%w: size %v", ErrNoRegion, size)
}

// WritableAddress returns the base of a read-write region of at least size bytes.
func (h *Helper) WritableAddress(size int) (uint64, error) {
	m, err := h.WritableRegion(size)
	if err != nil {
		return 0, err
	}
	return m.Addr, nil
}

// NonNullAddress returns a writable address with at least a page behind it.
func (h *Helper) NonNullAddress() (uint64, error) {
	return h.WritableAddress(maps.PageSize)
}

// Address is NonNullAddress that occasionally returns 0.
func (h *Helper) Address() (uint64, error) {
	if h.Rand.OneOf(100) {
		return 0, nil
	}
	return h.NonNullAddress()
}

// IOVec is a single scatter/gather element.
type IOVec struct {
	Base uint64
	Len  uint64

	buf []byte
}

// Bytes returns the memory described by the element.
func (v IOVec) Bytes() []byte {
	return v.buf[:v.Len]
}

// AllocIOVec builds n elements, each pointing to the start of a random region.
// The regions are left with whatever protection they have.
func (h *Helper) AllocIOVec(n int) []IOVec {
	iov := make([]IOVec, n)
	for i := range iov {
		m := h.Maps.Get(h.Rand)
		iov[i] = IOVec{
			Base: m.Addr,
			Len:  uint64(h.Rand.Rand(m.Size)),
			buf:  m.Data(),
		}
	}
	return iov
}

// Buffers returns the vector in the form accepted by unix.Writev.
func Buffers(iov []IOVec) [][]byte {
	res := make([][]byte, len(iov))
	for i, v := range iov {
		res[i] = v.Bytes()
	}
	return res
}

// FindPreviousArgAddress returns the value of the last address argument
// of rec that precedes argument argnum (1-based), or 0.
func FindPreviousArgAddress(rec *syscalls.Record, argnum int) uint64 {
	entry := syscalls.Lookup(rec.NR)
	if entry == nil {
		return 0
	}
	var addr uint64
	for i := 1; i < syscalls.MaxArgs; i++ {
		if argnum <= i {
			break
		}
		if entry.Args[i-1].IsAddress() {
			addr = rec.Args[i-1]
		}
	}
	return addr
}
