// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package ipv4 implements the PF_INET protocol family generators:
// socket triplets, sockaddr_in addresses and IP level socket options
// with dispatch to transport protocol option generators.
package ipv4

import (
	"github.com/sockgen/sockgen/pkg/net"
	"github.com/sockgen/sockgen/pkg/net/inetaddr"
	"golang.org/x/sys/unix"
)

func init() {
	net.RegisterProto(Proto)
}

var Proto = &net.Proto{
	Name:        "ipv4",
	Family:      unix.AF_INET,
	Socket:      RandSocket,
	SetSockOpt:  SetSockOpt,
	GenSockAddr: GenSockAddr,
	Triplets:    triplets,

	PrivilegedTriplets: PrivilegedSockets(),
}

// GenSockAddr returns a sockaddr_in with a random port and a sampled address.
func GenSockAddr(w *net.Worker) net.SockAddr {
	return inetaddr.GenSockaddr(w.Rand, &w.IPv4)
}

var triplets = []net.Triplet{
	{Family: unix.AF_INET, Protocol: unix.IPPROTO_IP, Type: unix.SOCK_DGRAM},
	{Family: unix.AF_INET, Protocol: unix.IPPROTO_IP, Type: unix.SOCK_SEQPACKET},
	{Family: unix.AF_INET, Protocol: unix.IPPROTO_IP, Type: unix.SOCK_STREAM},

	{Family: unix.AF_INET, Protocol: unix.IPPROTO_TCP, Type: unix.SOCK_STREAM},

	{Family: unix.AF_INET, Protocol: unix.IPPROTO_UDP, Type: unix.SOCK_DGRAM},

	{Family: unix.AF_INET, Protocol: unix.IPPROTO_DCCP, Type: unix.SOCK_DCCP},

	{Family: unix.AF_INET, Protocol: unix.IPPROTO_SCTP, Type: unix.SOCK_SEQPACKET},
	{Family: unix.AF_INET, Protocol: unix.IPPROTO_SCTP, Type: unix.SOCK_STREAM},

	{Family: unix.AF_INET, Protocol: unix.IPPROTO_UDPLITE, Type: unix.SOCK_DGRAM},
}
