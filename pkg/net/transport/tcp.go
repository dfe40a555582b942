// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package transport

import (
	"github.com/sockgen/sockgen/pkg/net"
	"github.com/sockgen/sockgen/pkg/rnd"
	"golang.org/x/sys/unix"
)

const (
	// sizeof(struct tcp_md5sig).
	tcpMD5SigLen = 216
	// sizeof(struct tcp_repair_window).
	tcpRepairWindowLen = 20
	tcpRepairWindow    = 29
)

var tcpOpts = []net.OptionDesc{
	{Name: unix.TCP_NODELAY},
	{Name: unix.TCP_MAXSEG},
	{Name: unix.TCP_CORK},
	{Name: unix.TCP_KEEPIDLE},
	{Name: unix.TCP_KEEPINTVL},
	{Name: unix.TCP_KEEPCNT},
	{Name: unix.TCP_SYNCNT},
	{Name: unix.TCP_LINGER2},
	{Name: unix.TCP_DEFER_ACCEPT},
	{Name: unix.TCP_WINDOW_CLAMP},
	{Name: unix.TCP_INFO},
	{Name: unix.TCP_QUICKACK},
	{Name: unix.TCP_CONGESTION, Len: 16},
	{Name: unix.TCP_MD5SIG, Len: tcpMD5SigLen},
	{Name: unix.TCP_THIN_LINEAR_TIMEOUTS},
	{Name: unix.TCP_THIN_DUPACK},
	{Name: unix.TCP_USER_TIMEOUT},
	{Name: unix.TCP_REPAIR},
	{Name: unix.TCP_REPAIR_QUEUE},
	{Name: unix.TCP_QUEUE_SEQ},
	{Name: unix.TCP_REPAIR_OPTIONS, Len: unix.SizeofTCPRepairOpt},
	{Name: unix.TCP_FASTOPEN},
	{Name: unix.TCP_TIMESTAMP},
	{Name: unix.TCP_NOTSENT_LOWAT},
	{Name: tcpRepairWindow, Len: tcpRepairWindowLen},
	{Name: unix.TCP_FASTOPEN_CONNECT},
	{Name: unix.TCP_ULP, Len: 4},
	{Name: unix.TCP_MD5SIG_EXT, Len: tcpMD5SigLen},
}

var (
	congestionAlgs = []string{"reno", "cubic", "bbr", "dctcp", "vegas", "westwood", "htcp", "lp", "cdg"}
	ulpNames       = []string{"tls", "espintcp", "mptcp", "smc"}
)

var TCP = Generator{
	Name:  "tcp",
	Level: unix.SOL_TCP,
	SockOptGenerator: catalogGenerator(tcpOpts, func(w *net.Worker, so *net.SockOpt) {
		switch so.Name {
		case unix.TCP_CONGESTION:
			so.SetPayload(net.Text(rnd.Choose(w.Rand, congestionAlgs)))
		case unix.TCP_ULP:
			so.SetPayload(net.Text(rnd.Choose(w.Rand, ulpNames)))
		case unix.TCP_NODELAY, unix.TCP_CORK, unix.TCP_QUICKACK, unix.TCP_REPAIR,
			unix.TCP_THIN_LINEAR_TIMEOUTS, unix.TCP_THIN_DUPACK, unix.TCP_FASTOPEN_CONNECT:
			so.SetPayload(boolish(w))
		}
	}),
}
