// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package transport generates setsockopt requests for protocols layered on top of IP.
// Generators here are plugged into the per-family protocol dispatch tables.
package transport

import (
	"github.com/sockgen/sockgen/pkg/net"
)

// Socket option levels not exported by x/sys/unix.
const (
	SolUDPLite = 136
)

// Generator is a protocol option generator together with the level it operates on.
type Generator struct {
	Name  string
	Level int
	net.SockOptGenerator
}

// Generators lists all generators of the package, used by catalog dumps.
func Generators() []Generator {
	return []Generator{TCP, UDP, UDPLite, SCTP, DCCP, ICMPv6, Raw}
}

func catalogGenerator(catalog []net.OptionDesc, shape func(w *net.Worker, so *net.SockOpt)) net.SockOptFunc {
	return func(w *net.Worker, so *net.SockOpt, t net.Triplet) {
		net.PickOption(w, so, catalog)
		if shape != nil {
			shape(w, so)
		}
	}
}

// Catalog returns the option table behind a generator of this package.
func Catalog(g Generator) []net.OptionDesc {
	return catalogs[g.Name]
}

var catalogs = map[string][]net.OptionDesc{
	"tcp":     tcpOpts,
	"udp":     udpOpts,
	"udplite": udpliteOpts,
	"sctp":    sctpOpts,
	"dccp":    dccpOpts,
	"icmpv6":  icmpv6Opts,
	"raw":     rawOpts,
}

// boolish returns the values that flag-like options are most interested in.
func boolish(w *net.Worker) net.Int32 {
	if w.Rand.OneOf(10) {
		return net.Int32(w.Rand.Rand32())
	}
	return net.Int32(w.Rand.Rand(2))
}
