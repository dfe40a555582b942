// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package syscalls holds argument type metadata for the system calls
// that socket argument generators produce arguments for.
package syscalls

import "fmt"

type ArgType int

const (
	ArgUndefined ArgType = iota
	ArgFd
	ArgLen
	ArgAddress
	ArgNonNullAddress
	ArgPid
	ArgRange
	ArgOp
	ArgList
	ArgPathname
	ArgIOVec
	ArgIOVecLen
	ArgSockAddr
	ArgSockAddrLen
	ArgMode
	ArgSocketInfo
	ArgMmap
)

var argTypeNames = [...]string{
	ArgUndefined:      "undefined",
	ArgFd:             "fd",
	ArgLen:            "len",
	ArgAddress:        "address",
	ArgNonNullAddress: "non-null address",
	ArgPid:            "pid",
	ArgRange:          "range",
	ArgOp:             "op",
	ArgList:           "list",
	ArgPathname:       "pathname",
	ArgIOVec:          "iovec",
	ArgIOVecLen:       "iovec len",
	ArgSockAddr:       "sockaddr",
	ArgSockAddrLen:    "sockaddr len",
	ArgMode:           "mode",
	ArgSocketInfo:     "socketinfo",
	ArgMmap:           "mmap",
}

func (t ArgType) String() string {
	if t < 0 || int(t) >= len(argTypeNames) {
		return fmt.Sprintf("ArgType(%d)", int(t))
	}
	return argTypeNames[t]
}

// IsAddress says if the argument is a pointer into generator owned memory.
func (t ArgType) IsAddress() bool {
	return t == ArgAddress || t == ArgNonNullAddress
}

// MaxArgs is the maximum number of system call arguments.
const MaxArgs = 6

// Entry describes arguments of a system call.
// Args[0] is the type of the first argument.
type Entry struct {
	Name    string
	NumArgs int
	Args    [MaxArgs]ArgType
}

// Record is an already generated call. NR indexes Table.
type Record struct {
	NR   int
	Args [MaxArgs]uint64
}

func (rec *Record) String() string {
	entry := Lookup(rec.NR)
	if entry == nil {
		return fmt.Sprintf("syscall#%v%x", rec.NR, rec.Args)
	}
	return fmt.Sprintf("%v%#x", entry.Name, rec.Args[:entry.NumArgs])
}

// Table is the list of known calls, the index is the call number used in Record.
var Table = []*Entry{
	{"socket", 3, [MaxArgs]ArgType{ArgOp, ArgOp, ArgOp}},
	{"socketpair", 4, [MaxArgs]ArgType{ArgOp, ArgOp, ArgOp, ArgNonNullAddress}},
	{"bind", 3, [MaxArgs]ArgType{ArgFd, ArgSockAddr, ArgSockAddrLen}},
	{"connect", 3, [MaxArgs]ArgType{ArgFd, ArgSockAddr, ArgSockAddrLen}},
	{"listen", 2, [MaxArgs]ArgType{ArgFd, ArgRange}},
	{"accept4", 4, [MaxArgs]ArgType{ArgFd, ArgSockAddr, ArgAddress, ArgList}},
	{"setsockopt", 5, [MaxArgs]ArgType{ArgFd, ArgOp, ArgOp, ArgAddress, ArgLen}},
	{"getsockopt", 5, [MaxArgs]ArgType{ArgFd, ArgOp, ArgOp, ArgAddress, ArgAddress}},
	{"sendto", 6, [MaxArgs]ArgType{ArgFd, ArgAddress, ArgLen, ArgList, ArgSockAddr, ArgSockAddrLen}},
	{"recvfrom", 6, [MaxArgs]ArgType{ArgFd, ArgAddress, ArgLen, ArgList, ArgSockAddr, ArgAddress}},
	{"sendmsg", 3, [MaxArgs]ArgType{ArgFd, ArgNonNullAddress, ArgList}},
	{"recvmsg", 3, [MaxArgs]ArgType{ArgFd, ArgNonNullAddress, ArgList}},
	{"readv", 3, [MaxArgs]ArgType{ArgFd, ArgIOVec, ArgIOVecLen}},
	{"writev", 3, [MaxArgs]ArgType{ArgFd, ArgIOVec, ArgIOVecLen}},
	{"preadv", 5, [MaxArgs]ArgType{ArgFd, ArgIOVec, ArgIOVecLen, ArgLen, ArgLen}},
	{"pwritev", 5, [MaxArgs]ArgType{ArgFd, ArgIOVec, ArgIOVecLen, ArgLen, ArgLen}},
	{"mprotect", 3, [MaxArgs]ArgType{ArgMmap, ArgLen, ArgList}},
	{"mremap", 5, [MaxArgs]ArgType{ArgMmap, ArgLen, ArgLen, ArgList, ArgAddress}},
	{"process_vm_readv", 6, [MaxArgs]ArgType{ArgPid, ArgIOVec, ArgIOVecLen, ArgIOVec, ArgIOVecLen, ArgList}},
}

var byName = func() map[string]int {
	m := make(map[string]int)
	for nr, e := range Table {
		if e.NumArgs > MaxArgs {
			panic(fmt.Sprintf("%v: too many args", e.Name))
		}
		m[e.Name] = nr
	}
	return m
}()

// Lookup returns the entry for the call number, or nil.
func Lookup(nr int) *Entry {
	if nr < 0 || nr >= len(Table) {
		return nil
	}
	return Table[nr]
}

// NR returns the call number of a named call.
func NR(name string) (int, error) {
	nr, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("unknown syscall %q", name)
	}
	return nr, nil
}

// MustNR is NR for names known at compile time.
func MustNR(name string) int {
	nr, err := NR(name)
	if err != nil {
		panic(err)
	}
	return nr
}
