// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ipv4

import (
	"github.com/sockgen/sockgen/pkg/net"
	"github.com/sockgen/sockgen/pkg/net/transport"
	"github.com/sockgen/sockgen/pkg/stat"
	"golang.org/x/sys/unix"
)

// ProtoMax bounds the protocol dispatch table (IPPROTO_MAX).
const ProtoMax = 256

// route says how options for a protocol are generated.
type route interface {
	route()
}

// genericRoute means the protocol has no option generator of its own,
// IP level options are generated instead.
type genericRoute struct{}

// protoRoute hands generation to a protocol specific generator.
// A zero level leaves the request's level unchanged.
type protoRoute struct {
	level int
	gen   net.SockOptGenerator
}

func (genericRoute) route() {}
func (protoRoute) route()   {}

var routes = func() [ProtoMax]route {
	var table [ProtoMax]route
	for i := range table {
		table[i] = genericRoute{}
	}
	table[unix.IPPROTO_IP] = protoRoute{gen: net.SockOptFunc(GenIPSockOpt)}
	for proto, gen := range map[int]transport.Generator{
		unix.IPPROTO_TCP:     transport.TCP,
		unix.IPPROTO_UDP:     transport.UDP,
		unix.IPPROTO_DCCP:    transport.DCCP,
		unix.IPPROTO_IPV6:    transport.ICMPv6,
		unix.IPPROTO_SCTP:    transport.SCTP,
		unix.IPPROTO_UDPLITE: transport.UDPLite,
		unix.IPPROTO_RAW:     transport.Raw,
	} {
		table[proto] = protoRoute{level: gen.Level, gen: gen}
	}
	return table
}()

// SetSockOpt is the family entry point: half of the time it generates
// an IP level option regardless of the protocol, otherwise it consults
// the protocol dispatch table.
func SetSockOpt(w *net.Worker, so *net.SockOpt, t net.Triplet) {
	so.Level = unix.SOL_IP
	if w.Rand.Bin() {
		GenIPSockOpt(w, so, t)
		return
	}
	RouteSockOpt(w, so, t)
}

// RouteSockOpt generates an option for the triplet's protocol.
// The triplet may come from a non-IP socket sharing this path, so protocol
// numbers outside of the table are replaced with a random in-range one
// (the triplet itself is left unchanged).
func RouteSockOpt(w *net.Worker, so *net.SockOpt, t net.Triplet) {
	proto := t.Protocol
	if proto < 0 || proto >= ProtoMax {
		statOutOfRange.Add(1)
		proto = w.Rand.Rand(ProtoMax)
	}
	switch r := routes[proto].(type) {
	case protoRoute:
		if r.level != 0 {
			so.Level = r.level
		}
		statRouted.Add(1)
		r.gen.GenSockOpt(w, so, t)
	case genericRoute:
		GenIPSockOpt(w, so, t)
	}
}

// HasRoute says if the protocol has a generator other than the generic IP one.
func HasRoute(proto int) bool {
	if proto < 0 || proto >= ProtoMax {
		return false
	}
	_, ok := routes[proto].(protoRoute)
	return ok
}

var (
	statIPOpts = stat.New("ip sockopts", "IP level setsockopt requests",
		stat.Rate{}, stat.Prometheus("sockgen_ipv4_ip_sockopts"))
	statRouted = stat.New("routed sockopts", "Requests handed to protocol specific generators",
		stat.Prometheus("sockgen_ipv4_routed_sockopts"))
	statOutOfRange = stat.New("proto out of range", "Protocol numbers replaced before dispatch",
		stat.Prometheus("sockgen_ipv4_proto_out_of_range"))
)
