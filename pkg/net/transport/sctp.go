// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package transport

import (
	"encoding/binary"
	"fmt"

	"github.com/ishidawataru/sctp"
	"github.com/sockgen/sockgen/pkg/net"
	"github.com/sockgen/sockgen/pkg/net/inetaddr"
)

// Options past SCTP_DELAYED_ACK_TIME that the sctp package does not name.
const (
	sctpContext              = 17
	sctpFragmentInterleave   = 18
	sctpPartialDeliveryPoint = 19
	sctpMaxBurst             = 20
	sctpAuthChunk            = 21
	sctpHmacIdent            = 22
	sctpAuthKey              = 23
	sctpAuthActiveKey        = 24
	sctpAuthDeleteKey        = 25

	// sizeof(struct sctp_initmsg).
	sctpInitMsgLen = 8
	// sizeof(struct sctp_event_subscribe) on recent kernels.
	sctpEventsLen = 14
	maxBindxAddrs = 4
)

var sctpOpts = []net.OptionDesc{
	{Name: sctp.SCTP_RTOINFO, Len: 16},
	{Name: sctp.SCTP_ASSOCINFO, Len: 20},
	{Name: sctp.SCTP_INITMSG, Len: sctpInitMsgLen},
	{Name: sctp.SCTP_NODELAY},
	{Name: sctp.SCTP_AUTOCLOSE},
	{Name: sctp.SCTP_DISABLE_FRAGMENTS},
	{Name: sctp.SCTP_EVENTS, Len: sctpEventsLen},
	{Name: sctp.SCTP_MAXSEG},
	{Name: sctp.SCTP_SOCKOPT_BINDX_ADD, Len: inetaddr.SockaddrLen},
	{Name: sctp.SCTP_SOCKOPT_BINDX_REM, Len: inetaddr.SockaddrLen},
	{Name: sctpContext, Len: 8},
	{Name: sctpFragmentInterleave},
	{Name: sctpPartialDeliveryPoint},
	{Name: sctpMaxBurst},
	{Name: sctpAuthChunk, Len: 1},
	{Name: sctpHmacIdent, Len: 8},
	{Name: sctpAuthKey, Len: 8 + 32},
	{Name: sctpAuthActiveKey, Len: 8},
	{Name: sctpAuthDeleteKey, Len: 8},
}

// initMsg is struct sctp_initmsg.
type initMsg sctp.InitMsg

func (m initMsg) Size() int { return sctpInitMsgLen }

func (m initMsg) Marshal(buf []byte) {
	binary.NativeEndian.PutUint16(buf[0:], m.NumOstreams)
	binary.NativeEndian.PutUint16(buf[2:], m.MaxInstreams)
	binary.NativeEndian.PutUint16(buf[4:], m.MaxAttempts)
	binary.NativeEndian.PutUint16(buf[6:], m.MaxInitTimeout)
}

func (m initMsg) String() string {
	return fmt.Sprintf("sctp_initmsg{out=%v in=%v attempts=%v timeo=%v}",
		m.NumOstreams, m.MaxInstreams, m.MaxAttempts, m.MaxInitTimeout)
}

// bindxAddrs packs sockaddrs for SCTP_SOCKOPT_BINDX_ADD/REM.
func bindxAddrs(w *net.Worker) net.Blob {
	n := 1 + w.Rand.Rand(maxBindxAddrs)
	buf := make([]byte, n*inetaddr.SockaddrLen)
	for i := 0; i < n; i++ {
		sa := inetaddr.GenSockaddr(w.Rand, &w.IPv4)
		sa.Marshal(buf[i*inetaddr.SockaddrLen:])
	}
	return net.Blob(buf)
}

var SCTP = Generator{
	Name:  "sctp",
	Level: sctp.SOL_SCTP,
	SockOptGenerator: catalogGenerator(sctpOpts, func(w *net.Worker, so *net.SockOpt) {
		switch so.Name {
		case sctp.SCTP_INITMSG:
			so.SetPayload(initMsg{
				NumOstreams:    uint16(w.Rand.Rand(1 << 16)),
				MaxInstreams:   uint16(w.Rand.Rand(1 << 16)),
				MaxAttempts:    uint16(w.Rand.Rand(8)),
				MaxInitTimeout: uint16(w.Rand.Rand(1 << 16)),
			})
		case sctp.SCTP_SOCKOPT_BINDX_ADD, sctp.SCTP_SOCKOPT_BINDX_REM:
			so.SetPayload(bindxAddrs(w))
		case sctp.SCTP_NODELAY, sctp.SCTP_DISABLE_FRAGMENTS, sctpFragmentInterleave:
			so.SetPayload(boolish(w))
		}
	}),
}
