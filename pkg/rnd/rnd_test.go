// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package rnd_test

import (
	"math/rand"
	"testing"

	"github.com/sockgen/sockgen/pkg/rnd"
	"github.com/sockgen/sockgen/pkg/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	r := testutil.Rand(t)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := r.Rand(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
		seen[v] = true
	}
	assert.Len(t, seen, 5)
	assert.Panics(t, func() { r.Rand(0) })
}

func TestChoose(t *testing.T) {
	vals := []string{"a", "b", "c"}
	s := &testutil.Script{T: t, Ints: []uint32{2, 0}}
	assert.Equal(t, "c", rnd.Choose(s, vals))
	assert.Equal(t, "a", rnd.Choose(s, vals))
}

func TestFill(t *testing.T) {
	r := rnd.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 3, 4, 7, 64} {
		buf := make([]byte, n)
		rnd.Fill(r, buf)
		assert.Len(t, buf, n)
	}
	s := &testutil.Script{T: t, Ints: []uint32{0x44332211, 0x00000055}}
	buf := make([]byte, 5)
	rnd.Fill(s, buf)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44, 0x55}, buf)
}
