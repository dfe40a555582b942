// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package net describes protocol families for socket argument generation.
//
// Each family registers a Proto that knows how to pick socket triplets,
// generate socket addresses and fill setsockopt requests. The family-agnostic
// driver picks a Proto and calls it through this uniform interface.
package net

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sockgen/sockgen/pkg/net/inetaddr"
	"github.com/sockgen/sockgen/pkg/rnd"
)

// Triplet is the (family, type, protocol) shape of a socket.
type Triplet struct {
	Family   int
	Type     int
	Protocol int
}

func (t Triplet) String() string {
	return fmt.Sprintf("{family=%v type=%v proto=%v}", t.Family, t.Type, t.Protocol)
}

// Worker is the per-worker generation state.
// Nothing in it is safe for concurrent use, every fuzzing worker creates its own.
type Worker struct {
	Rand rnd.Source
	// Privileged says if calls will be executed with elevated rights (e.g. uid 0),
	// which enables raw sockets.
	Privileged bool
	IPv4       inetaddr.Sampler
}

func NewWorker(r rnd.Source, privileged bool) *Worker {
	return &Worker{
		Rand:       r,
		Privileged: privileged,
	}
}

// SockAddr is a generated socket address in its kernel binary layout.
type SockAddr interface {
	Bytes() []byte
	String() string
}

type Proto struct {
	Name   string
	Family int
	// Socket adjusts Type/Protocol of a triplet whose Family is already set.
	Socket      func(w *Worker, t *Triplet)
	SetSockOpt  func(w *Worker, so *SockOpt, t Triplet)
	GenSockAddr func(w *Worker) SockAddr
	// Triplets lists socket shapes the kernel is known to accept for the family.
	Triplets []Triplet
	// PrivilegedTriplets are additional shapes that need elevated rights.
	PrivilegedTriplets []Triplet
}

var (
	protosMu sync.RWMutex
	protos   = make(map[string]*Proto)
)

func RegisterProto(p *Proto) {
	if p.Name == "" || p.Socket == nil || p.SetSockOpt == nil || p.GenSockAddr == nil {
		panic(fmt.Sprintf("incomplete proto %+v", p))
	}
	protosMu.Lock()
	defer protosMu.Unlock()
	if protos[p.Name] != nil {
		panic(fmt.Sprintf("duplicate proto %v", p.Name))
	}
	protos[p.Name] = p
}

func GetProto(name string) (*Proto, error) {
	protosMu.RLock()
	defer protosMu.RUnlock()
	p := protos[name]
	if p == nil {
		var supported []string
		for name := range protos {
			supported = append(supported, name)
		}
		sort.Strings(supported)
		return nil, fmt.Errorf("unknown proto: %v (supported: %v)", name, supported)
	}
	return p, nil
}

// Protos returns all registered families sorted by name.
func Protos() []*Proto {
	protosMu.RLock()
	defer protosMu.RUnlock()
	var res []*Proto
	for _, p := range protos {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res
}

// RandTriplet returns one of the family's known-valid triplets.
func RandTriplet(w *Worker, p *Proto) Triplet {
	if len(p.Triplets) == 0 {
		return GenSocket(w, p)
	}
	return rnd.Choose(w.Rand, p.Triplets)
}

// PickTriplet chooses how to shape the next socket: a known-valid triplet,
// a family generated one, or for privileged workers occasionally a privileged one.
func PickTriplet(w *Worker, p *Proto) Triplet {
	if w.Privileged && len(p.PrivilegedTriplets) != 0 && w.Rand.OneOf(4) {
		return rnd.Choose(w.Rand, p.PrivilegedTriplets)
	}
	if w.Rand.Bin() {
		return RandTriplet(w, p)
	}
	return GenSocket(w, p)
}

// GenSocket lets the family pick the socket type and protocol.
func GenSocket(w *Worker, p *Proto) Triplet {
	t := Triplet{Family: p.Family}
	p.Socket(w, &t)
	return t
}
