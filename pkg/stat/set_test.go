// Copyright 2024 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	a := assert.New(t)
	set := newSet(false)
	a.Empty(set.Collect(All))

	v0 := set.New("v0", "desc0")
	a.Equal(0, v0.Val())
	v0.Add(1)
	v0.Add(1)
	a.Equal(2, v0.Val())

	vv1 := 0
	v1 := set.New("v1", "desc1", Console, func() int { return vv1 })
	a.Equal(0, v1.Val())
	vv1 = 11
	a.Equal(11, v1.Val())
	a.Panics(func() { v1.Add(1) })

	v2 := set.New("v2", "desc2", Distribution{})
	a.Equal(0, v2.Val())
	v2.Add(10)
	v2.Add(20)
	a.Equal(15, v2.Val())
	a.InDelta(20, v2.Quantile(1), 0.001)
	a.Panics(func() { v0.Quantile(0.5) })

	v3 := set.New("v3", "desc3", Rate{})
	v3.Add(20)

	a.Panics(func() { set.New("v0", "desc0") })
	a.Panics(func() { set.New("v4", "desc4", float64(1)) })

	ui := set.Collect(All)
	a.Len(ui, 4)
	a.Equal(UI{"v1", "desc1", Console, "11", 11}, ui[0])
	a.Equal(UI{"v0", "desc0", All, "2", 2}, ui[1])
	a.Equal(UI{"v3", "desc3", All, "20 (20/sec)", 20}, ui[3])

	console := set.Collect(Console)
	a.Len(console, 1)
	a.Equal("v1", console[0].Name)
}
