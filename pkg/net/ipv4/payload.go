// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ipv4

import (
	"encoding/binary"
	"fmt"

	"github.com/sockgen/sockgen/pkg/net/inetaddr"
	"golang.org/x/sys/unix"
)

// Multicast group requests. Addresses are stored with the first octet
// in the most significant byte and marshaled in network byte order.

// Mreq is struct ip_mreq.
type Mreq struct {
	Multiaddr uint32
	Interface uint32
}

// MreqN is struct ip_mreqn.
type MreqN struct {
	Multiaddr uint32
	Address   uint32
	Ifindex   int32
}

// MreqSource is struct ip_mreq_source.
type MreqSource struct {
	Multiaddr  uint32
	Interface  uint32
	Sourceaddr uint32
}

const sizeofMreqSource = 12

func (m *Mreq) Size() int { return unix.SizeofIPMreq }

func (m *Mreq) Marshal(buf []byte) {
	putAddr(buf[0:], m.Multiaddr)
	putAddr(buf[4:], m.Interface)
}

func (m *Mreq) String() string {
	return fmt.Sprintf("ip_mreq{group=%v iface=%v}", inetaddr.String(m.Multiaddr), inetaddr.String(m.Interface))
}

func (m *MreqN) Size() int { return unix.SizeofIPMreqn }

func (m *MreqN) Marshal(buf []byte) {
	putAddr(buf[0:], m.Multiaddr)
	putAddr(buf[4:], m.Address)
	binary.NativeEndian.PutUint32(buf[8:], uint32(m.Ifindex))
}

func (m *MreqN) String() string {
	return fmt.Sprintf("ip_mreqn{group=%v addr=%v ifindex=%v}",
		inetaddr.String(m.Multiaddr), inetaddr.String(m.Address), m.Ifindex)
}

func (m *MreqSource) Size() int { return sizeofMreqSource }

func (m *MreqSource) Marshal(buf []byte) {
	putAddr(buf[0:], m.Multiaddr)
	putAddr(buf[4:], m.Interface)
	putAddr(buf[8:], m.Sourceaddr)
}

func (m *MreqSource) String() string {
	return fmt.Sprintf("ip_mreq_source{group=%v iface=%v source=%v}",
		inetaddr.String(m.Multiaddr), inetaddr.String(m.Interface), inetaddr.String(m.Sourceaddr))
}

func putAddr(buf []byte, addr uint32) {
	binary.BigEndian.PutUint32(buf, addr)
}
