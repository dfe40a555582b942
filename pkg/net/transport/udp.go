// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package transport

import (
	"github.com/sockgen/sockgen/pkg/net"
	"golang.org/x/sys/unix"
)

const (
	udpliteSendCsCov = 10
	udpliteRecvCsCov = 11

	// UDP_ENCAP_ESPINUDP_NON_IKE .. UDP_ENCAP_RXRPC.
	udpEncapFirst = 1
	udpEncapLast  = 6
)

var udpOpts = []net.OptionDesc{
	{Name: unix.UDP_CORK},
	{Name: unix.UDP_ENCAP},
	{Name: unix.UDP_NO_CHECK6_TX},
	{Name: unix.UDP_NO_CHECK6_RX},
	{Name: unix.UDP_SEGMENT},
	{Name: unix.UDP_GRO},
}

var udpliteOpts = append(append([]net.OptionDesc{}, udpOpts...),
	net.OptionDesc{Name: udpliteSendCsCov},
	net.OptionDesc{Name: udpliteRecvCsCov},
)

func shapeUDP(w *net.Worker, so *net.SockOpt) {
	switch so.Name {
	case unix.UDP_ENCAP:
		if !w.Rand.OneOf(10) {
			so.SetPayload(net.Int32(udpEncapFirst + w.Rand.Rand(udpEncapLast-udpEncapFirst+1)))
		}
	case unix.UDP_SEGMENT:
		// gso_size is a u16 checked against the MTU.
		so.SetPayload(net.Int32(w.Rand.Rand(1 << 16)))
	case unix.UDP_CORK, unix.UDP_GRO, unix.UDP_NO_CHECK6_TX, unix.UDP_NO_CHECK6_RX:
		so.SetPayload(boolish(w))
	}
}

var UDP = Generator{
	Name:             "udp",
	Level:            unix.SOL_UDP,
	SockOptGenerator: catalogGenerator(udpOpts, shapeUDP),
}

var UDPLite = Generator{
	Name:  "udplite",
	Level: SolUDPLite,
	SockOptGenerator: catalogGenerator(udpliteOpts, func(w *net.Worker, so *net.SockOpt) {
		switch so.Name {
		case udpliteSendCsCov, udpliteRecvCsCov:
			// Checksum coverage, 0 means the whole datagram, values below 8 are special.
			so.SetPayload(net.Int32(w.Rand.Rand(16)))
		default:
			shapeUDP(w, so)
		}
	}),
}
