// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package transport

import (
	"github.com/sockgen/sockgen/pkg/net"
	"golang.org/x/sys/unix"
)

const (
	// sizeof(struct icmp_filter).
	icmpFilterLen = 4
)

var icmpv6Opts = []net.OptionDesc{
	{Name: unix.ICMPV6_FILTER, Len: unix.SizeofICMPv6Filter},
}

var rawOpts = []net.OptionDesc{
	{Name: unix.ICMP_FILTER, Len: icmpFilterLen},
}

var ICMPv6 = Generator{
	Name:  "icmpv6",
	Level: unix.SOL_ICMPV6,
	SockOptGenerator: catalogGenerator(icmpv6Opts, func(w *net.Worker, so *net.SockOpt) {
		// Short filters are rejected, longer are truncated.
		if w.Rand.OneOf(4) {
			so.SetLen(w.Rand.Rand(unix.SizeofICMPv6Filter + 1))
		}
	}),
}

var Raw = Generator{
	Name:  "raw",
	Level: unix.SOL_RAW,
	SockOptGenerator: catalogGenerator(rawOpts, func(w *net.Worker, so *net.SockOpt) {
		// Bitmask of ICMP types to drop.
		so.SetPayload(net.Int32(w.Rand.Rand32()))
	}),
}
