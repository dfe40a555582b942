// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

//go:build linux

package maps

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func newMemory() memory {
	return mmapMemory{}
}

type mmapMemory struct{}

func (mmapMemory) alloc(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("mmap failed: %w", err)
	}
	return data, nil
}

func (mmapMemory) protect(data []byte, prot Prot) error {
	return unix.Mprotect(data, unixProt(prot))
}

func (mmapMemory) free(data []byte) error {
	if data == nil {
		return nil
	}
	return unix.Munmap(data)
}

func unixProt(prot Prot) int {
	res := unix.PROT_NONE
	if prot&ProtRead != 0 {
		res |= unix.PROT_READ
	}
	if prot&ProtWrite != 0 {
		res |= unix.PROT_WRITE
	}
	if prot&ProtExec != 0 {
		res |= unix.PROT_EXEC
	}
	return res
}
