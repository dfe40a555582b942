// Copyright 2016 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Nested struct {
	Aaa int    `json:"aaa"`
	Bbb string `json:"bbb,omitempty"`
}

type Config struct {
	Foo int             `json:"foo"`
	Bar string          `json:"bar,omitempty"`
	Baz string          `json:"-"`
	Raw json.RawMessage `json:"raw,omitempty"`
	Qux []string        `json:"qux,omitempty"`
	Box Nested          `json:"box"`
	Boq *Nested         `json:"boq,omitempty"`
	Arr []Nested        `json:"arr,omitempty"`
	T   time.Time       `json:"t"`
}

func TestLoad(t *testing.T) {
	tests := []struct {
		input  string
		output Config
		err    string
	}{
		{
			input:  `{"foo": 42}`,
			output: Config{Foo: 42},
		},
		{
			input:  "# comment\n{\"bar\": \"Baz\",\n  # another\n \"foo\": 42}",
			output: Config{Foo: 42, Bar: "Baz"},
		},
		{
			input: `{"foobar": 42}`,
			err:   `json: unknown field "foobar"`,
		},
		{
			input: `{"foo": 1, "baz": "baz"}`,
			err:   `json: unknown field "baz"`,
		},
		{
			input:  `{"foo": 1, "box": {"aaa": 12, "bbb": "bbb"}}`,
			output: Config{Foo: 1, Box: Nested{Aaa: 12, Bbb: "bbb"}},
		},
		{
			input: `{"box": {"aaa": 12, "ccc": "bbb"}}`,
			err:   `json: unknown field "ccc"`,
		},
		{
			input:  `{"boq": {"aaa": 12}, "arr": [{"aaa": 1}, {"aaa": 2}]}`,
			output: Config{Boq: &Nested{Aaa: 12}, Arr: []Nested{{Aaa: 1}, {Aaa: 2}}},
		},
		{
			input:  `{"raw": {"zux": 11}}`,
			output: Config{Raw: []byte(`{"zux": 11}`)},
		},
		{
			input:  `{"foo": null, "qux": null}`,
			output: Config{},
		},
		{
			input:  `{"t": "2000-01-02T03:04:05Z"}`,
			output: Config{T: time.Date(2000, 1, 2, 3, 4, 5, 0, time.UTC)},
		},
	}
	for i, test := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			var cfg Config
			err := LoadData([]byte(test.input), &cfg)
			if test.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(test.output, cfg); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	var cfg Config
	require.NoError(t, LoadYAML([]byte("foo: 3\nqux: [a, b]\nbox:\n  aaa: 5\n"), &cfg))
	assert.Equal(t, Config{Foo: 3, Qux: []string{"a", "b"}, Box: Nested{Aaa: 5}}, cfg)
	assert.Error(t, LoadYAML([]byte("foo: 3\nzzz: 1\n"), &cfg))
}

func TestLoadBadType(t *testing.T) {
	want := "config type is not pointer to struct"
	i := 0
	s := struct{}{}
	for _, cfg := range []any{1, &i, s, nil} {
		err := LoadData([]byte("{}"), cfg)
		require.Error(t, err)
		assert.Equal(t, want, err.Error())
	}
}

func TestSaveLoadFile(t *testing.T) {
	type Saved struct {
		Foo int      `json:"foo"`
		Qux []string `json:"qux"`
		Boq *Nested  `json:"boq"`
	}
	cfg := Saved{Foo: 7, Qux: []string{"x"}, Boq: &Nested{Aaa: 1, Bbb: "y"}}
	dir := t.TempDir()
	for _, name := range []string{"cfg.json", "cfg.yaml", "cfg.yml"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(dir, name)
			require.NoError(t, SaveFile(file, cfg))
			var got Saved
			require.NoError(t, LoadFile(file, &got))
			if diff := cmp.Diff(cfg, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
	assert.Error(t, LoadFile("", &cfg))
	assert.Error(t, LoadFile(filepath.Join(dir, "missing.json"), &cfg))
}
