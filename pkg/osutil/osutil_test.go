// Copyright 2017 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package osutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a", "b", "file")
	require.NoError(t, WriteFile(file, []byte("data")))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestCreateFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x", "trace")
	f, err := CreateFile(file)
	require.NoError(t, err)
	_, err = f.WriteString("1")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	f, err = CreateFile(file)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Empty(t, data)
}
