// Copyright 2020 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/sockgen/sockgen/pkg/log"
)

// installProfiling starts CPU profiling and returns a function that stops it
// and writes the heap profile.
func installProfiling(cpuprof, memprof string) func() {
	var stops []func()
	if cpuprof != "" {
		f, err := os.Create(cpuprof)
		if err != nil {
			Failf("failed to create cpuprofile file: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			Failf("failed to start cpu profile: %v", err)
		}
		stops = append(stops, func() {
			pprof.StopCPUProfile()
			f.Close()
			log.Logf(0, "wrote cpu profile to %v", cpuprof)
		})
	}
	if memprof != "" {
		stops = append(stops, func() {
			if err := writeHeapProfile(memprof); err != nil {
				Failf("failed to write mem profile: %v", err)
			}
			log.Logf(0, "wrote mem profile to %v", memprof)
		})
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

func writeHeapProfile(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
