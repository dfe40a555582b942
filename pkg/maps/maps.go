// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package maps manages the pool of memory regions that generated pointer
// arguments point into.
package maps

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/sockgen/sockgen/pkg/rnd"
	"github.com/sockgen/sockgen/pkg/stat"
)

type Prot int

const (
	ProtNone  Prot = 0
	ProtRead  Prot = 1 << 0
	ProtWrite Prot = 1 << 1
	ProtExec  Prot = 1 << 2

	ProtRW = ProtRead | ProtWrite
)

func (p Prot) String() string {
	if p == ProtNone {
		return "---"
	}
	var b strings.Builder
	for _, f := range []struct {
		bit Prot
		c   byte
	}{{ProtRead, 'r'}, {ProtWrite, 'w'}, {ProtExec, 'x'}} {
		if p&f.bit != 0 {
			b.WriteByte(f.c)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Map is a single region. Addr is the address of the first byte of Data.
type Map struct {
	Addr uint64
	Size int
	Prot Prot
	Name string

	data []byte
}

// Data returns the backing memory of the region.
func (m *Map) Data() []byte {
	return m.data
}

func (m *Map) String() string {
	return fmt.Sprintf("%v[0x%x+0x%x %v]", m.Name, m.Addr, m.Size, m.Prot)
}

// Allocator hands out regions and changes their protection.
type Allocator interface {
	Get(r rnd.Source) *Map
	Protect(m *Map, prot Prot) error
}

// PageSize is the granularity of all regions.
const PageSize = 4 << 10

// DefaultPages lists region sizes in pages used when none are configured.
var DefaultPages = []int{1, 2, 4, 16, 256, 512, 1024}

var ErrClosed = errors.New("map pool is closed")

var (
	statMapGets = stat.New("map gets", "Regions handed out by the map pool",
		stat.Rate{}, stat.Prometheus("sockgen_map_gets"))
	statProtects = stat.New("map protects", "Protection changes of pool regions",
		stat.Prometheus("sockgen_map_protects"))
)

// Pool is an Allocator over a fixed set of regions.
// A Pool is owned by a single worker.
type Pool struct {
	maps    []*Map
	initial []Prot
	mem     memory
	closed  bool
}

// memory abstracts where region bytes come from.
type memory interface {
	alloc(size int) ([]byte, error)
	protect(data []byte, prot Prot) error
	free(data []byte) error
}

// NewPool allocates one region per entry of pages (sizes in pages).
// Regions start with a random protection so that WritableAddress style
// callers have to reprotect them before use.
func NewPool(r rnd.Source, pages []int) (*Pool, error) {
	return newPool(r, pages, newMemory())
}

// NewHeapPool is like NewPool but regions live in the Go heap and
// protection changes are only recorded.
func NewHeapPool(r rnd.Source, pages []int) (*Pool, error) {
	return newPool(r, pages, heapMemory{})
}

func newPool(r rnd.Source, pages []int, mem memory) (*Pool, error) {
	if len(pages) == 0 {
		pages = DefaultPages
	}
	p := &Pool{mem: mem}
	for i, n := range pages {
		if n <= 0 {
			p.Close()
			return nil, fmt.Errorf("bad region size %v pages", n)
		}
		data, err := mem.alloc(n * PageSize)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to allocate region of %v pages: %w", n, err)
		}
		m := &Map{
			Addr: uint64(uintptr(unsafe.Pointer(&data[0]))),
			Size: len(data),
			Prot: ProtRW,
			Name: fmt.Sprintf("map%v", i),
			data: data,
		}
		p.maps = append(p.maps, m)
		prot := randProt(r)
		if err := p.Protect(m, prot); err != nil {
			p.Close()
			return nil, err
		}
		p.initial = append(p.initial, prot)
	}
	return p, nil
}

func randProt(r rnd.Source) Prot {
	return rnd.Choose(r, []Prot{ProtNone, ProtRead, ProtWrite, ProtRW, ProtRead | ProtExec})
}

// Maps returns all regions of the pool.
func (p *Pool) Maps() []*Map {
	return p.maps
}

func (p *Pool) Get(r rnd.Source) *Map {
	statMapGets.Add(1)
	return p.maps[r.Rand(len(p.maps))]
}

func (p *Pool) Protect(m *Map, prot Prot) error {
	if p.closed {
		return ErrClosed
	}
	if m.Prot == prot {
		return nil
	}
	if err := p.mem.protect(m.data, prot); err != nil {
		return fmt.Errorf("failed to protect %v as %v: %w", m, prot, err)
	}
	m.Prot = prot
	statProtects.Add(1)
	return nil
}

// Reset restores the protection every region had after creation.
func (p *Pool) Reset() error {
	for i, m := range p.maps {
		if err := p.Protect(m, p.initial[i]); err != nil {
			return err
		}
	}
	return nil
}

// Close releases all regions. The pool is unusable afterwards.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	var errs []error
	for _, m := range p.maps {
		if err := p.mem.free(m.data); err != nil {
			errs = append(errs, err)
		}
		m.data = nil
	}
	return errors.Join(errs...)
}

type heapMemory struct{}

func (heapMemory) alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (heapMemory) protect(data []byte, prot Prot) error {
	return nil
}

func (heapMemory) free(data []byte) error {
	return nil
}
