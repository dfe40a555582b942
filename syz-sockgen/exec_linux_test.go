// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/sockgen/sockgen/pkg/net"
	"github.com/sockgen/sockgen/pkg/net/inetaddr"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestExecute(t *testing.T) {
	opt := net.NewSockOpt(net.MaxOptLen)
	opt.Level = unix.SOL_IP
	opt.ApplyDesc(net.OptionDesc{Name: unix.IP_TOS})
	opt.SetPayload(net.Int32(0x10))
	p := &program{
		sock: net.Triplet{Family: unix.AF_INET, Type: unix.SOCK_DGRAM, Protocol: unix.IPPROTO_UDP},
		addr: &inetaddr.Sockaddr{Addr: inetaddr.Loopback},
		opt:  opt,
	}
	sockets, sockopts := statExecSockets.Val(), statExecSockOpt.Val()
	execute(0, p)
	assert.Equal(t, sockets+1, statExecSockets.Val())
	assert.Equal(t, sockopts+1, statExecSockOpt.Val())
}

func TestUnixSockaddr(t *testing.T) {
	sa := unixSockaddr(&inetaddr.Sockaddr{Port: 80, Addr: inetaddr.Loopback})
	assert.Equal(t, &unix.SockaddrInet4{Port: 80, Addr: [4]byte{127, 0, 0, 1}}, sa)
}
