// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

//go:build !linux

package main

const canExecute = false

func execute(proc int, p *program) {
	panic("execution is not supported")
}
