// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ipv4

// IP level option names that x/sys/unix does not export.
// Values come from linux/mroute.h, netfilter and ip_vs uapi headers.
const (
	mrtBase        = 200
	mrtInit        = mrtBase
	mrtDone        = mrtBase + 1
	mrtAddVif      = mrtBase + 2
	mrtDelVif      = mrtBase + 3
	mrtAddMfc      = mrtBase + 4
	mrtDelMfc      = mrtBase + 5
	mrtVersion     = mrtBase + 6
	mrtAssert      = mrtBase + 7
	mrtPim         = mrtBase + 8
	mrtTable       = mrtBase + 9
	mrtAddMfcProxy = mrtBase + 10
	mrtDelMfcProxy = mrtBase + 11

	iptSoSetReplace     = 64
	iptSoSetAddCounters = 65
	arptSoSetReplace     = 96
	arptSoSetAddCounters = 97
	ebtSoSetEntries      = 128
	ebtSoSetCounters     = 129
	soIPSet              = 83

	ipVSBaseCtl            = 64 + 1024 + 64
	ipVSSoSetNone          = ipVSBaseCtl
	ipVSSoSetInsert        = ipVSBaseCtl + 1
	ipVSSoSetAdd           = ipVSBaseCtl + 2
	ipVSSoSetEdit          = ipVSBaseCtl + 3
	ipVSSoSetDel           = ipVSBaseCtl + 4
	ipVSSoSetFlush         = ipVSBaseCtl + 5
	ipVSSoSetList          = ipVSBaseCtl + 6
	ipVSSoSetAddDest       = ipVSBaseCtl + 7
	ipVSSoSetDelDest       = ipVSBaseCtl + 8
	ipVSSoSetEditDest      = ipVSBaseCtl + 9
	ipVSSoSetTimeout       = ipVSBaseCtl + 10
	ipVSSoSetStartDaemon   = ipVSBaseCtl + 11
	ipVSSoSetStopDaemon    = ipVSBaseCtl + 12
	ipVSSoSetRestore       = ipVSBaseCtl + 13
	ipVSSoSetSave          = ipVSBaseCtl + 14
	ipVSSoSetZero          = ipVSBaseCtl + 15
)

// Structure sizes from the uapi headers.
const (
	sizeofVifctl = 16
	sizeofMfcctl = 60
	// sizeof(struct group_req) and sizeof(struct group_source_req), 64-bit layout.
	sizeofGroupReq       = 136
	sizeofGroupSourceReq = 264
	sizeofMrtTable       = 4
	// IP_MSFILTER_SIZE(0): struct ip_msfilter without source addresses.
	ipMsfilterSize0 = 16
	// GROUP_FILTER_SIZE(0): struct group_filter without source addresses.
	groupFilterSize0 = 144
	// Maximum length of IP options in the header.
	maxIPOptionsLen = 40
)
