// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package transport

import (
	"github.com/sockgen/sockgen/pkg/net"
	"golang.org/x/sys/unix"
)

const (
	dccpSockoptPacketSize     = 1
	dccpSockoptService        = 2
	dccpSockoptChangeL        = 3
	dccpSockoptChangeR        = 4
	dccpSockoptServerTimewait = 6
	dccpSockoptSendCsCov      = 10
	dccpSockoptRecvCsCov      = 11
	dccpSockoptCCID           = 13
	dccpSockoptTxCCID         = 14
	dccpSockoptRxCCID         = 15
	dccpSockoptQPolicyID      = 16
	dccpSockoptQPolicyTxQLen  = 17

	// DCCP_SERVICE_LIST_MAX service codes of 4 bytes each.
	dccpServiceListMax = 32
)

var dccpOpts = []net.OptionDesc{
	{Name: dccpSockoptPacketSize},
	{Name: dccpSockoptService},
	{Name: dccpSockoptChangeL},
	{Name: dccpSockoptChangeR},
	{Name: dccpSockoptServerTimewait},
	{Name: dccpSockoptSendCsCov},
	{Name: dccpSockoptRecvCsCov},
	{Name: dccpSockoptCCID, Len: 1},
	{Name: dccpSockoptTxCCID, Len: 1},
	{Name: dccpSockoptRxCCID, Len: 1},
	{Name: dccpSockoptQPolicyID},
	{Name: dccpSockoptQPolicyTxQLen},
}

var DCCP = Generator{
	Name:  "dccp",
	Level: unix.SOL_DCCP,
	SockOptGenerator: catalogGenerator(dccpOpts, func(w *net.Worker, so *net.SockOpt) {
		switch so.Name {
		case dccpSockoptService:
			// A service code followed by an optional list.
			so.SetLen(4 * (1 + w.Rand.Rand(dccpServiceListMax+1)))
		case dccpSockoptSendCsCov, dccpSockoptRecvCsCov:
			so.SetPayload(net.Int32(w.Rand.Rand(16)))
		case dccpSockoptServerTimewait:
			so.SetPayload(boolish(w))
		}
	}),
}
