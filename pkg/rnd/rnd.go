// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package rnd provides the random decisions used by argument generators.
// Generators depend on the Source interface so that tests can script the exact
// sequence of decisions, while fuzzing workers use Rand backed by math/rand.
package rnd

import (
	"fmt"
	"math/rand"
)

// Source is the set of random primitives generators are allowed to use.
type Source interface {
	// Rand returns a uniformly distributed value in [0, n).
	Rand(n int) int
	// Rand32 returns a uniformly distributed 32-bit value.
	Rand32() uint32
	// OneOf returns true with probability 1/n.
	OneOf(n int) bool
	// Bin is a fair coin flip.
	Bin() bool
}

// Gen is the default Source, one per worker (it is not safe for concurrent use).
type Gen struct {
	r *rand.Rand
}

func New(rs rand.Source) *Gen {
	return &Gen{r: rand.New(rs)}
}

func (g *Gen) Rand(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("rnd: bad range %v", n))
	}
	return g.r.Intn(n)
}

func (g *Gen) Rand32() uint32 {
	return g.r.Uint32()
}

func (g *Gen) OneOf(n int) bool {
	return g.r.Intn(n) == 0
}

func (g *Gen) Bin() bool {
	return g.r.Intn(2) == 0
}

// Choose returns a uniformly selected element of a non-empty slice.
func Choose[T any](r Source, vals []T) T {
	return vals[r.Rand(len(vals))]
}

// Fill overwrites buf with random bytes.
func Fill(r Source, buf []byte) {
	for i := 0; i < len(buf); i += 4 {
		v := r.Rand32()
		for j := 0; j < 4 && i+j < len(buf); j++ {
			buf[i+j] = byte(v >> (8 * j))
		}
	}
}
