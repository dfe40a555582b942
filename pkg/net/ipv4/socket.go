// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ipv4

import (
	"github.com/sockgen/sockgen/pkg/net"
	"github.com/sockgen/sockgen/pkg/rnd"
	"golang.org/x/sys/unix"
)

// ipProto is a protocol usable with PF_INET sockets.
// Type is the only socket type the protocol works with, or 0 if there is none.
type ipProto struct {
	Proto int
	Type  int
}

var ipProtos = []ipProto{
	{Proto: unix.IPPROTO_ICMP, Type: unix.SOCK_DGRAM},
	{Proto: unix.IPPROTO_IGMP},
	{Proto: unix.IPPROTO_IPIP},
	{Proto: unix.IPPROTO_TCP, Type: unix.SOCK_STREAM},
	{Proto: unix.IPPROTO_EGP},
	{Proto: unix.IPPROTO_PUP},
	{Proto: unix.IPPROTO_UDP, Type: unix.SOCK_DGRAM},
	{Proto: unix.IPPROTO_IDP},
	{Proto: unix.IPPROTO_TP},
	{Proto: unix.IPPROTO_DCCP, Type: unix.SOCK_DCCP},
	{Proto: unix.IPPROTO_IPV6},
	{Proto: unix.IPPROTO_RSVP},
	{Proto: unix.IPPROTO_GRE},
	{Proto: unix.IPPROTO_ESP},
	{Proto: unix.IPPROTO_AH},
	{Proto: unix.IPPROTO_MTP},
	{Proto: unix.IPPROTO_BEETPH},
	{Proto: unix.IPPROTO_ENCAP},
	{Proto: unix.IPPROTO_PIM},
	{Proto: unix.IPPROTO_COMP},
	{Proto: unix.IPPROTO_SCTP, Type: unix.SOCK_SEQPACKET},
	{Proto: unix.IPPROTO_UDPLITE, Type: unix.SOCK_DGRAM},
	{Proto: unix.IPPROTO_RAW},
	{Proto: unix.IPPROTO_MPLS},
}

var anyTypes = []int{unix.SOCK_STREAM, unix.SOCK_DGRAM, unix.SOCK_SEQPACKET}

// RandSocket picks type and protocol for a PF_INET socket.
// Privileged workers get raw sockets half of the time, with the protocol left as is.
func RandSocket(w *net.Worker, t *net.Triplet) {
	if w.Privileged {
		t.Type = unix.SOCK_RAW
		if w.Rand.Bin() {
			return
		}
	}
	p := rnd.Choose(w.Rand, ipProtos)
	t.Protocol = p.Proto
	if p.Type != 0 {
		t.Type = p.Type
	} else {
		t.Type = rnd.Choose(w.Rand, anyTypes)
	}
}

// PrivilegedSockets lists sockets worth pre-creating when running as root:
// a SOCK_PACKET socket per known protocol and a raw socket for every protocol number.
func PrivilegedSockets() []net.Triplet {
	var res []net.Triplet
	for _, p := range ipProtos {
		if p.Proto == unix.IPPROTO_RAW {
			continue
		}
		res = append(res, net.Triplet{Family: unix.AF_INET, Type: unix.SOCK_PACKET, Protocol: p.Proto})
	}
	for proto := 0; proto < 256; proto++ {
		res = append(res, net.Triplet{Family: unix.AF_INET, Type: unix.SOCK_RAW, Protocol: proto})
	}
	return res
}
