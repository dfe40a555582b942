// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package inetaddr

import "github.com/sockgen/sockgen/pkg/stat"

var (
	statFresh = stat.New("ipv4 addrs", "Freshly generated IPv4 addresses",
		stat.Rate{}, stat.Prometheus("sockgen_ipv4_addrs_fresh"))
	statReused = stat.New("ipv4 addr reuse", "IPv4 addresses handed out again from the reuse window",
		stat.Prometheus("sockgen_ipv4_addrs_reused"))
)
