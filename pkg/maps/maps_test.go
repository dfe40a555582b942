// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package maps

import (
	"testing"

	"github.com/sockgen/sockgen/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	for name, ctor := range map[string]func(t *testing.T, pages []int) (*Pool, error){
		"heap": func(t *testing.T, pages []int) (*Pool, error) { return NewHeapPool(testutil.Rand(t), pages) },
		"os":   func(t *testing.T, pages []int) (*Pool, error) { return NewPool(testutil.Rand(t), pages) },
	} {
		t.Run(name, func(t *testing.T) {
			p, err := ctor(t, []int{1, 3, 8})
			require.NoError(t, err)
			defer p.Close()
			require.Len(t, p.Maps(), 3)
			initial := make([]Prot, 3)
			for i, m := range p.Maps() {
				assert.Equal(t, []int{1, 3, 8}[i]*PageSize, m.Size)
				assert.Len(t, m.Data(), m.Size)
				assert.NotZero(t, m.Addr)
				initial[i] = m.Prot
			}
			r := testutil.Rand(t)
			for i := 0; i < 100; i++ {
				m := p.Get(r)
				require.NoError(t, p.Protect(m, ProtRW))
				assert.Equal(t, ProtRW, m.Prot)
				m.Data()[m.Size-1] = 0xab
			}
			require.NoError(t, p.Reset())
			for i, m := range p.Maps() {
				assert.Equal(t, initial[i], m.Prot)
			}
			require.NoError(t, p.Close())
			assert.ErrorIs(t, p.Protect(p.Maps()[0], ProtRead), ErrClosed)
		})
	}
}

func TestPoolDefaultPages(t *testing.T) {
	p, err := NewHeapPool(testutil.Rand(t), nil)
	require.NoError(t, err)
	assert.Len(t, p.Maps(), len(DefaultPages))
}

func TestPoolBadSize(t *testing.T) {
	_, err := NewHeapPool(testutil.Rand(t), []int{1, 0})
	assert.Error(t, err)
}

func TestProtString(t *testing.T) {
	assert.Equal(t, "---", ProtNone.String())
	assert.Equal(t, "rw-", ProtRW.String())
	assert.Equal(t, "r-x", (ProtRead | ProtExec).String())
}
