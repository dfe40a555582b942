// Copyright 2017 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package osutil contains file helpers shared by config and trace output.
package osutil

import (
	"os"
	"path/filepath"
)

const (
	DefaultDirPerm  = 0755
	DefaultFilePerm = 0644
)

func MkdirAll(dir string) error {
	return os.MkdirAll(dir, DefaultDirPerm)
}

// WriteFile writes data creating missing parent directories.
func WriteFile(filename string, data []byte) error {
	if err := MkdirAll(filepath.Dir(filename)); err != nil {
		return err
	}
	return os.WriteFile(filename, data, DefaultFilePerm)
}

// CreateFile creates or truncates filename, creating missing parent directories.
func CreateFile(filename string) (*os.File, error) {
	if err := MkdirAll(filepath.Dir(filename)); err != nil {
		return nil, err
	}
	return os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, DefaultFilePerm)
}
