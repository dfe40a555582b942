// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package main

import (
	"github.com/sockgen/sockgen/pkg/argmem"
	"github.com/sockgen/sockgen/pkg/log"
	"github.com/sockgen/sockgen/pkg/net"
	"github.com/sockgen/sockgen/pkg/net/inetaddr"
	"github.com/sockgen/sockgen/pkg/stat"
	"golang.org/x/sys/unix"
)

const canExecute = true

var (
	statExecSockets = stat.New("exec sockets", "Sockets successfully created",
		stat.Rate{}, stat.Prometheus("sockgen_exec_sockets"))
	statExecSockOpt = stat.New("exec setsockopt", "Successful setsockopt calls",
		stat.Prometheus("sockgen_exec_setsockopt"))
	statExecFailed = stat.New("exec failed", "Calls rejected by the kernel",
		stat.Prometheus("sockgen_exec_failed"))
)

// execute issues the program's calls. Kernel errors are expected and only counted.
func execute(proc int, p *program) {
	// Non-blocking so that connect and writev never stall the worker.
	fd, err := unix.Socket(p.sock.Family, p.sock.Type|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, p.sock.Protocol)
	if err != nil {
		statExecFailed.Add(1)
		log.Logf(3, "proc %v: socket%v: %v", proc, p.sock, err)
		return
	}
	defer unix.Close(fd)
	statExecSockets.Add(1)
	if sa := unixSockaddr(p.addr); sa != nil {
		if p.connect {
			err = unix.Connect(fd, sa)
		} else {
			err = unix.Bind(fd, sa)
		}
		checkExec(proc, "bind/connect", err)
	}
	err = unix.SetsockoptString(fd, p.opt.Level, p.opt.Name, string(p.opt.Bytes()))
	if checkExec(proc, "setsockopt", err) {
		statExecSockOpt.Add(1)
	}
	_, err = unix.Writev(fd, argmem.Buffers(p.iov))
	checkExec(proc, "writev", err)
}

func checkExec(proc int, call string, err error) bool {
	if err == nil {
		return true
	}
	statExecFailed.Add(1)
	log.Logf(3, "proc %v: %v: %v", proc, call, err)
	return false
}

func unixSockaddr(addr net.SockAddr) unix.Sockaddr {
	switch sa := addr.(type) {
	case *inetaddr.Sockaddr:
		return &unix.SockaddrInet4{Port: int(sa.Port), Addr: inetaddr.Bytes(sa.Addr)}
	}
	return nil
}
