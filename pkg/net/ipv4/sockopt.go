// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ipv4

import (
	"github.com/sockgen/sockgen/pkg/net"
	"github.com/sockgen/sockgen/pkg/net/inetaddr"
	"golang.org/x/sys/unix"
)

var ipOpts = []net.OptionDesc{
	{Name: unix.IP_TOS},
	{Name: unix.IP_TTL},
	{Name: unix.IP_HDRINCL},
	{Name: unix.IP_OPTIONS},
	{Name: unix.IP_ROUTER_ALERT},
	{Name: unix.IP_RECVOPTS},
	{Name: unix.IP_RETOPTS},
	{Name: unix.IP_PKTINFO},
	{Name: unix.IP_PKTOPTIONS},
	{Name: unix.IP_MTU_DISCOVER},
	{Name: unix.IP_RECVERR},
	{Name: unix.IP_RECVTTL},
	{Name: unix.IP_RECVTOS},
	{Name: unix.IP_MTU},
	{Name: unix.IP_FREEBIND},
	{Name: unix.IP_IPSEC_POLICY},
	{Name: unix.IP_XFRM_POLICY},
	{Name: unix.IP_PASSSEC},
	{Name: unix.IP_TRANSPARENT},
	{Name: unix.IP_ORIGDSTADDR},
	{Name: unix.IP_MINTTL},
	{Name: unix.IP_NODEFRAG},
	{Name: unix.IP_CHECKSUM},
	{Name: unix.IP_BIND_ADDRESS_NO_PORT},
	{Name: unix.IP_MULTICAST_IF, Len: unix.SizeofIPMreqn},
	{Name: unix.IP_MULTICAST_TTL},
	{Name: unix.IP_MULTICAST_LOOP},
	{Name: unix.IP_ADD_MEMBERSHIP, Len: unix.SizeofIPMreqn},
	{Name: unix.IP_DROP_MEMBERSHIP, Len: unix.SizeofIPMreqn},
	{Name: unix.IP_UNBLOCK_SOURCE, Len: sizeofMreqSource},
	{Name: unix.IP_BLOCK_SOURCE, Len: sizeofMreqSource},
	{Name: unix.IP_ADD_SOURCE_MEMBERSHIP, Len: sizeofMreqSource},
	{Name: unix.IP_DROP_SOURCE_MEMBERSHIP, Len: sizeofMreqSource},
	{Name: unix.IP_MSFILTER},
	{Name: unix.MCAST_JOIN_GROUP, Len: sizeofGroupReq},
	{Name: unix.MCAST_BLOCK_SOURCE, Len: sizeofGroupSourceReq},
	{Name: unix.MCAST_UNBLOCK_SOURCE, Len: sizeofGroupSourceReq},
	{Name: unix.MCAST_LEAVE_GROUP, Len: sizeofGroupReq},
	{Name: unix.MCAST_JOIN_SOURCE_GROUP, Len: sizeofGroupSourceReq},
	{Name: unix.MCAST_LEAVE_SOURCE_GROUP, Len: sizeofGroupSourceReq},
	{Name: unix.MCAST_MSFILTER},
	{Name: unix.IP_MULTICAST_ALL},
	{Name: unix.IP_UNICAST_IF},
	{Name: mrtInit},
	{Name: mrtDone},
	{Name: mrtAddVif, Len: sizeofVifctl},
	{Name: mrtDelVif, Len: sizeofVifctl},
	{Name: mrtAddMfc, Len: sizeofMfcctl},
	{Name: mrtDelMfc, Len: sizeofMfcctl},
	{Name: mrtVersion},
	{Name: mrtAssert},
	{Name: mrtPim},
	{Name: mrtTable, Len: sizeofMrtTable},
	{Name: mrtAddMfcProxy, Len: sizeofMfcctl},
	{Name: mrtDelMfcProxy, Len: sizeofMfcctl},
	{Name: iptSoSetReplace},
	{Name: iptSoSetAddCounters},
	{Name: ebtSoSetEntries},
	{Name: ebtSoSetCounters},
	{Name: arptSoSetReplace},
	{Name: arptSoSetAddCounters},
	{Name: soIPSet}, // demuxed by the payload contents
	{Name: ipVSSoSetNone},
	{Name: ipVSSoSetInsert},
	{Name: ipVSSoSetAdd},
	{Name: ipVSSoSetEdit},
	{Name: ipVSSoSetDel},
	{Name: ipVSSoSetFlush},
	{Name: ipVSSoSetList},
	{Name: ipVSSoSetAddDest},
	{Name: ipVSSoSetDelDest},
	{Name: ipVSSoSetEditDest},
	{Name: ipVSSoSetTimeout},
	{Name: ipVSSoSetStartDaemon},
	{Name: ipVSSoSetStopDaemon},
	{Name: ipVSSoSetRestore},
	{Name: ipVSSoSetSave},
	{Name: ipVSSoSetZero},
}

// Options returns the IP level option catalog.
func Options() []net.OptionDesc {
	return append([]net.OptionDesc{}, ipOpts...)
}

// GenIPSockOpt fills so with a random IP level option.
// Multicast requests get structured payloads, filters get a random length
// no smaller than an empty filter record, the rest keep the random buffer contents.
func GenIPSockOpt(w *net.Worker, so *net.SockOpt, t net.Triplet) {
	net.PickOption(w, so, ipOpts)
	statIPOpts.Add(1)

	switch so.Name {
	case unix.IP_OPTIONS:
		so.SetLen(w.Rand.Rand(maxIPOptionsLen))

	case unix.IP_MULTICAST_IF, unix.IP_ADD_MEMBERSHIP, unix.IP_DROP_MEMBERSHIP:
		group := multicastGroup(w)
		if w.Rand.Bin() {
			so.SetPayload(&MreqN{
				Multiaddr: group,
				Address:   w.IPv4.Sample(w.Rand),
				Ifindex:   int32(w.Rand.Rand32()),
			})
		} else {
			so.SetPayload(&Mreq{
				Multiaddr: group,
				Interface: w.IPv4.Sample(w.Rand),
			})
		}

	case unix.IP_MSFILTER:
		so.SetLen(filterLen(w, ipMsfilterSize0))

	case unix.IP_BLOCK_SOURCE, unix.IP_UNBLOCK_SOURCE,
		unix.IP_ADD_SOURCE_MEMBERSHIP, unix.IP_DROP_SOURCE_MEMBERSHIP:
		group := multicastGroup(w)
		iface := w.IPv4.Sample(w.Rand)
		so.SetPayload(&MreqSource{
			Multiaddr:  group,
			Interface:  iface,
			Sourceaddr: w.IPv4.Sample(w.Rand),
		})

	case unix.MCAST_MSFILTER:
		so.SetLen(filterLen(w, groupFilterSize0))
	}
}

// multicastGroup returns an address in 224.0.0.0/24.
func multicastGroup(w *net.Worker) uint32 {
	return inetaddr.Multicast | uint32(w.Rand.Rand(0xff))
}

// filterLen returns a random filter length below net.OptMemMax
// that always covers the fixed part of the filter record.
func filterLen(w *net.Worker, minSize int) int {
	return w.Rand.Rand(net.OptMemMax) | minSize
}
