// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package config_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sockgen/sockgen/pkg/config"
	"github.com/sockgen/sockgen/pkg/sockcfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeJSONData(t *testing.T) {
	tests := []struct {
		name   string
		left   string
		right  string
		result string
	}{
		{
			name:   "replace",
			left:   `{"procs":1,"seed":2}`,
			right:  `{"seed":3,"heartbeat":4}`,
			result: `{"heartbeat":4,"procs":1,"seed":3}`,
		},
		{
			name:   "nested",
			left:   `{"procs":1,"net":{"ipv4":{"addr":"127.0.0.1","port":80}}}`,
			right:  `{"net":{"ipv4":{"port":8080}}}`,
			result: `{"net":{"ipv4":{"addr":"127.0.0.1","port":8080}},"procs":1}`,
		},
		{
			name:   "lists are replaced",
			left:   `{"families":["ipv4","ipv6"]}`,
			right:  `{"families":["ipv4"]}`,
			result: `{"families":["ipv4"]}`,
		},
		{
			name:   "empty left",
			left:   `{}`,
			right:  `{"a":{"b":{"c":0}}}`,
			result: `{"a":{"b":{"c":0}}}`,
		},
		{
			name:   "empty right",
			left:   `{"a":{"b":{"c":0}}}`,
			right:  ``,
			result: `{"a":{"b":{"c":0}}}`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res, err := config.MergeJSONData([]byte(test.left), []byte(test.right))
			require.NoError(t, err)
			assert.JSONEq(t, test.result, string(res))
		})
	}
}

func TestMergeIntoConfig(t *testing.T) {
	base := sockcfg.Default()
	base.Trace = "calls.xz"
	left, err := json.Marshal(base)
	require.NoError(t, err)
	merged, err := config.MergeJSONData(left, []byte(`{"procs":4,"map_pages":[1],"trace":""}`))
	require.NoError(t, err)
	got := new(sockcfg.Config)
	require.NoError(t, config.LoadData(merged, got))

	want := sockcfg.Default()
	want.Procs = 4
	want.MapPages = []int{1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}

	_, err = config.MergeJSONData(left, []byte(`{"procs":`))
	assert.Error(t, err)
}
