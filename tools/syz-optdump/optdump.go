// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// syz-optdump prints the generator tables (socket triplets, option catalogs,
// address classes and protocol routes) as YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sockgen/sockgen/pkg/net"
	"github.com/sockgen/sockgen/pkg/net/inetaddr"
	"github.com/sockgen/sockgen/pkg/net/ipv4"
	"github.com/sockgen/sockgen/pkg/net/transport"
	"github.com/sockgen/sockgen/pkg/tool"
	"gopkg.in/yaml.v3"
)

type Dump struct {
	Families   []Family    `yaml:"families"`
	Transports []Transport `yaml:"transports"`
	Classes    []Class     `yaml:"ipv4_classes"`
}

type Family struct {
	Name       string   `yaml:"name"`
	Family     int      `yaml:"family"`
	Triplets   []string `yaml:"triplets"`
	Privileged int      `yaml:"privileged_triplets"`
	Options    []Option `yaml:"options,omitempty"`
	Routes     []int    `yaml:"routes,omitempty"`
}

type Transport struct {
	Name    string   `yaml:"name"`
	Level   int      `yaml:"level"`
	Options []Option `yaml:"options"`
}

type Option struct {
	Name int `yaml:"name"`
	Len  int `yaml:"len"`
}

type Class struct {
	Name string `yaml:"name"`
	Base string `yaml:"base"`
	Mask string `yaml:"host_mask"`
}

func main() {
	flagOut := flag.String("out", "", "output file (stdout if empty)")
	defer tool.Init()()
	out := io.Writer(os.Stdout)
	if *flagOut != "" {
		f, err := os.Create(*flagOut)
		if err != nil {
			tool.Fail(err)
		}
		defer f.Close()
		out = f
	}
	if err := write(out, collect()); err != nil {
		tool.Fail(err)
	}
}

func collect() *Dump {
	dump := new(Dump)
	for _, p := range net.Protos() {
		fam := Family{
			Name:       p.Name,
			Family:     p.Family,
			Privileged: len(p.PrivilegedTriplets),
		}
		for _, t := range p.Triplets {
			fam.Triplets = append(fam.Triplets, t.String())
		}
		if p == ipv4.Proto {
			fam.Options = options(ipv4.Options())
			for proto := 0; proto < ipv4.ProtoMax; proto++ {
				if ipv4.HasRoute(proto) {
					fam.Routes = append(fam.Routes, proto)
				}
			}
		}
		dump.Families = append(dump.Families, fam)
	}
	for _, g := range transport.Generators() {
		dump.Transports = append(dump.Transports, Transport{
			Name:    g.Name,
			Level:   g.Level,
			Options: options(transport.Catalog(g)),
		})
	}
	for _, c := range inetaddr.Classes {
		dump.Classes = append(dump.Classes, Class{
			Name: c.Name,
			Base: c.Base,
			Mask: fmt.Sprintf("%#x", c.HostMask),
		})
	}
	return dump
}

func options(catalog []net.OptionDesc) []Option {
	var res []Option
	for _, desc := range catalog {
		res = append(res, Option{Name: desc.Name, Len: net.DefaultOptLen(desc.Len)})
	}
	return res
}

func write(w io.Writer, dump *Dump) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return err
	}
	return enc.Close()
}
