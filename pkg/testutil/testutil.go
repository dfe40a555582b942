// Copyright 2022 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package testutil

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/sockgen/sockgen/pkg/rnd"
)

func IterCount() int {
	iters := 10000
	if testing.Short() {
		iters /= 10
	}
	return iters
}

func RandSource(t testing.TB) rand.Source {
	seed := time.Now().UnixNano()
	if fixed := os.Getenv("SYZ_SEED"); fixed != "" {
		seed, _ = strconv.ParseInt(fixed, 0, 64)
	}
	if os.Getenv("CI") != "" {
		seed = 0 // required for deterministic coverage reports
	}
	t.Logf("seed=%v", seed)
	return rand.NewSource(seed)
}

// Rand returns a seeded generator that logs its seed so that failures can be reproduced.
func Rand(t testing.TB) *rnd.Gen {
	return rnd.New(RandSource(t))
}

// Script is a rnd.Source that replays a fixed sequence of decisions.
// Rand and Rand32 consume Ints, OneOf and Bin consume Bools.
// When a sequence is exhausted the test fails.
type Script struct {
	T     testing.TB
	Ints  []uint32
	Bools []bool
}

func (s *Script) Rand(n int) int {
	v := s.nextInt()
	if int(v) >= n {
		s.T.Fatalf("scripted value %v is out of range [0, %v)", v, n)
	}
	return int(v)
}

func (s *Script) Rand32() uint32 {
	return s.nextInt()
}

func (s *Script) OneOf(n int) bool {
	return s.nextBool()
}

func (s *Script) Bin() bool {
	return s.nextBool()
}

func (s *Script) nextInt() uint32 {
	s.T.Helper()
	if len(s.Ints) == 0 {
		s.T.Fatalf("script ran out of ints")
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v
}

func (s *Script) nextBool() bool {
	s.T.Helper()
	if len(s.Bools) == 0 {
		s.T.Fatalf("script ran out of bools")
	}
	v := s.Bools[0]
	s.Bools = s.Bools[1:]
	return v
}

// Writer forwards output to the test log.
type Writer struct {
	testing.TB
}

func (w *Writer) Write(data []byte) (int, error) {
	w.TB.Logf("%s", data)
	return len(data), nil
}
