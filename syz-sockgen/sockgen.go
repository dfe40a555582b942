// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// syz-sockgen generates random socket related system call arguments:
// socket triplets, bind/connect addresses, setsockopt requests and
// writev vectors. Calls are logged, optionally traced to a file and
// optionally executed against the running kernel.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sockgen/sockgen/pkg/config"
	"github.com/sockgen/sockgen/pkg/log"
	"github.com/sockgen/sockgen/pkg/sockcfg"
	"github.com/sockgen/sockgen/pkg/stat"
	"github.com/sockgen/sockgen/pkg/tool"
	"github.com/sockgen/sockgen/pkg/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	_ "github.com/sockgen/sockgen/pkg/net/ipv4"
)

func main() {
	var (
		flagConfig   = flag.String("config", "", "config file (JSON or YAML)")
		flagExecute  = flag.Bool("execute", false, "execute generated calls")
		flagFamilies tool.ListFlag
		flagSet      = tool.KeyValueFlag{}
	)
	flag.Var(&flagFamilies, "families", "comma-separated families to generate for (overrides config)")
	flag.Var(flagSet, "set", "override config param, key=value (can be repeated)")
	defer tool.Init()()
	log.EnableLogCaching(1000, 1<<20)

	cfg, err := sockcfg.Load(*flagConfig, flagSet)
	if err != nil {
		tool.Fail(err)
	}
	if *flagExecute {
		cfg.Execute = true
	}
	if len(flagFamilies) != 0 {
		cfg.Families = flagFamilies
		if err := cfg.Validate(); err != nil {
			tool.Fail(err)
		}
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
	defer stop()
	if err := run(ctx, cfg, uuid.NewString()); err != nil {
		tool.Fail(err)
	}
}

func run(ctx context.Context, cfg *sockcfg.Config, runID string) error {
	log.SetName(runID)
	privileged := cfg.IsPrivileged(unix.Geteuid())
	log.Logf(0, "procs=%v families=%v privileged=%v execute=%v",
		cfg.Procs, cfg.Families, privileged, cfg.Execute)
	if cfg.Execute && !canExecute {
		return fmt.Errorf("execution of generated calls is not supported on this OS")
	}
	var tr *trace.Writer
	if cfg.Trace != "" {
		if err := config.SaveFile(traceConfigFile(cfg.Trace), cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		var err error
		tr, err = trace.Create(cfg.Trace, runID)
		if err != nil {
			return err
		}
		defer func() {
			if err := tr.Close(); err != nil {
				log.Errorf("failed to write trace: %v", err)
			}
		}()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers, err := newWorkers(cfg.Procs, func(proc int) (*worker, error) {
		return newWorker(proc, cfg, privileged, seed+int64(proc), tr)
	})
	if err != nil {
		return err
	}
	if cfg.HTTP != "" {
		serveHTTP(cfg.HTTP)
	}
	eg, ctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		w := w
		eg.Go(func() error {
			defer w.close()
			return w.loop(ctx, cfg.Iterations)
		})
	}
	done := make(chan struct{})
	if cfg.Heartbeat != 0 {
		go heartbeat(time.Duration(cfg.Heartbeat)*time.Second, done)
	}
	err = eg.Wait()
	close(done)
	log.Logf(0, "finished: %v", stat.Heartbeat())
	return err
}

// newWorkers creates all workers up front so that a failure does not leave
// already running ones behind.
func newWorkers(procs int, create func(proc int) (*worker, error)) ([]*worker, error) {
	var workers []*worker
	for proc := 0; proc < procs; proc++ {
		w, err := create(proc)
		if err != nil {
			for _, w := range workers {
				w.close()
			}
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, nil
}

// traceConfigFile is where the effective config of a traced run is saved.
func traceConfigFile(traceFile string) string {
	return strings.TrimSuffix(traceFile, ".xz") + ".cfg.json"
}

func heartbeat(period time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			log.Logf(0, "%v", stat.Heartbeat())
		}
	}
}
