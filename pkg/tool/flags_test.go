// Copyright 2020 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFlag(t *testing.T) {
	var list ListFlag
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Var(&list, "families", "")
	require.NoError(t, flags.Parse([]string{"-families", "ipv4, ipv6", "-families=unix", "arg"}))
	if diff := cmp.Diff(ListFlag{"ipv4", "ipv6", "unix"}, list); diff != "" {
		t.Fatal(diff)
	}
	assert.Equal(t, "ipv4,ipv6,unix", list.String())
	assert.Equal(t, []string{"arg"}, flags.Args())
	assert.Error(t, list.Set("a,,b"))
}

func TestKeyValueFlag(t *testing.T) {
	kv := KeyValueFlag{}
	require.NoError(t, kv.Set("procs=4"))
	require.NoError(t, kv.Set("trace="))
	assert.Equal(t, KeyValueFlag{"procs": "4", "trace": ""}, kv)
	assert.Error(t, kv.Set("procs"))
	assert.Error(t, kv.Set("=4"))
}

func TestProfiling(t *testing.T) {
	dir := t.TempDir()
	cpu, mem := filepath.Join(dir, "cpu.prof"), filepath.Join(dir, "mem.prof")
	stop := installProfiling(cpu, mem)
	stop()
	for _, file := range []string{cpu, mem} {
		st, err := os.Stat(file)
		require.NoError(t, err)
		assert.NotZero(t, st.Size(), file)
	}
	installProfiling("", "")()
}
