// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sockgen/sockgen/pkg/log"
	"github.com/sockgen/sockgen/pkg/stat"
)

func httpHandler() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, handlers.CompressHandler(handler))
	}
	handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}))
	handle("/stats", http.HandlerFunc(httpStats))
	handle("/log", http.HandlerFunc(httpLog))
	return handlers.CombinedLoggingHandler(log.VerboseWriter(2), mux)
}

func httpStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, v := range stat.Collect(stat.All) {
		fmt.Fprintf(w, "%-24v %v\n", v.Name, v.Value)
	}
}

func httpLog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, log.CachedLogOutput())
}

func serveHTTP(addr string) {
	log.Logf(0, "serving http on http://%v", addr)
	go func() {
		err := http.ListenAndServe(addr, httpHandler())
		log.Errorf("failed to serve http: %v", err)
	}()
}
