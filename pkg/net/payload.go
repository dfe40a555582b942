// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package net

import (
	"encoding/binary"
	"fmt"
)

// Int32 is a scalar option value in host byte order.
type Int32 uint32

func (v Int32) Size() int { return 4 }

func (v Int32) Marshal(buf []byte) {
	binary.NativeEndian.PutUint32(buf, uint32(v))
}

func (v Int32) String() string {
	return fmt.Sprintf("int{%#x}", uint32(v))
}

// Text is a string option value (congestion control or ULP names).
// NUL is not appended, option handlers take the length from optlen.
type Text string

func (v Text) Size() int { return len(v) }

func (v Text) Marshal(buf []byte) {
	copy(buf, v)
}

func (v Text) String() string {
	return fmt.Sprintf("text{%q}", string(v))
}

// Blob is a concatenation of fixed layout records (e.g. an array of sockaddrs).
type Blob []byte

func (v Blob) Size() int { return len(v) }

func (v Blob) Marshal(buf []byte) {
	copy(buf, v)
}

func (v Blob) String() string {
	return fmt.Sprintf("blob{%v bytes}", len(v))
}
