// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package inetaddr

import (
	"encoding/binary"
	"fmt"

	"github.com/sockgen/sockgen/pkg/rnd"
	"golang.org/x/sys/unix"
)

// Sockaddr is struct sockaddr_in.
type Sockaddr struct {
	Port uint16
	Addr uint32
}

// SockaddrLen is sizeof(struct sockaddr_in).
const SockaddrLen = unix.SizeofSockaddrInet4

// GenSockaddr returns an AF_INET address with a random port and a sampled address.
func GenSockaddr(r rnd.Source, s *Sampler) *Sockaddr {
	return &Sockaddr{
		Addr: s.Sample(r),
		Port: uint16(r.Rand(65535)),
	}
}

func (sa *Sockaddr) Bytes() []byte {
	buf := make([]byte, SockaddrLen)
	sa.Marshal(buf)
	return buf
}

// Marshal writes the binary layout into buf, len(buf) >= SockaddrLen.
func (sa *Sockaddr) Marshal(buf []byte) {
	binary.NativeEndian.PutUint16(buf[0:], unix.AF_INET)
	binary.BigEndian.PutUint16(buf[2:], sa.Port)
	binary.BigEndian.PutUint32(buf[4:], sa.Addr)
	clear(buf[8:SockaddrLen])
}

func (sa *Sockaddr) String() string {
	return fmt.Sprintf("%v:%v", String(sa.Addr), sa.Port)
}
