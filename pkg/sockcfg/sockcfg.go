// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package sockcfg holds syz-sockgen configuration.
package sockcfg

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/sockgen/sockgen/pkg/argmem"
	"github.com/sockgen/sockgen/pkg/config"
	"github.com/sockgen/sockgen/pkg/maps"
	"github.com/sockgen/sockgen/pkg/net"
)

type Config struct {
	// Number of parallel generator workers.
	Procs int `json:"procs"`
	// Base seed, worker i uses Seed+i. 0 means time based.
	Seed int64 `json:"seed,omitempty"`
	// Calls generated per worker, 0 means run until interrupted.
	Iterations int `json:"iterations,omitempty"`
	// Socket families to generate for (e.g. "ipv4").
	Families []string `json:"families"`
	// "auto" (euid is 0), "yes" or "no".
	Privileged string `json:"privileged"`
	// Sizes of the memory regions in pages.
	MapPages []int `json:"map_pages,omitempty"`
	// Regions tried before giving up on a buffer.
	MaxRetries int `json:"max_retries,omitempty"`
	// Actually issue the generated calls (linux only).
	Execute bool `json:"execute,omitempty"`
	// Address to serve /metrics on, empty disables.
	HTTP string `json:"http,omitempty"`
	// File to write generated calls to, ".xz" suffix compresses.
	Trace string `json:"trace,omitempty"`
	// Interval of heartbeat log lines in seconds.
	Heartbeat int `json:"heartbeat,omitempty"`
}

const (
	PrivilegedAuto = "auto"
	PrivilegedYes  = "yes"
	PrivilegedNo   = "no"
)

func Default() *Config {
	return &Config{
		Procs:      1,
		Families:   []string{"ipv4"},
		Privileged: PrivilegedAuto,
		MapPages:   append([]int(nil), maps.DefaultPages...),
		MaxRetries: argmem.DefaultMaxRetries,
		Heartbeat:  10,
	}
}

// Load reads the config file (if any) on top of defaults and applies
// key=value overrides. Override values are JSON, bare words are strings.
func Load(filename string, overrides map[string]string) (*Config, error) {
	cfg := Default()
	if filename != "" {
		if err := config.LoadFile(filename, cfg); err != nil {
			return nil, err
		}
	}
	if len(overrides) != 0 {
		if err := applyOverrides(cfg, overrides); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *Config, overrides map[string]string) error {
	fields := make(map[string]json.RawMessage)
	var keys []string
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		val, err := overrideValue(key, overrides[key])
		if err != nil {
			return err
		}
		fields[key] = val
	}
	right, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	left, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	merged, err := config.MergeJSONData(left, right)
	if err != nil {
		return fmt.Errorf("failed to apply overrides: %w", err)
	}
	fresh := new(Config)
	if err := config.LoadData(merged, fresh); err != nil {
		return fmt.Errorf("failed to apply overrides: %w", err)
	}
	*cfg = *fresh
	return nil
}

// overrideValue converts a command line value into JSON according to the kind
// of the field it sets. Strings are taken verbatim, string lists may be given
// comma separated, everything else must be valid JSON.
func overrideValue(key, val string) (json.RawMessage, error) {
	field, ok := fieldByTag(key)
	if !ok {
		return nil, fmt.Errorf("unknown config param %q", key)
	}
	switch {
	case field.Type.Kind() == reflect.String:
		return json.Marshal(val)
	case field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.String &&
		!strings.HasPrefix(strings.TrimSpace(val), "["):
		list := []string{}
		for _, elem := range strings.Split(val, ",") {
			if elem = strings.TrimSpace(elem); elem != "" {
				list = append(list, elem)
			}
		}
		return json.Marshal(list)
	}
	if !json.Valid([]byte(val)) {
		return nil, fmt.Errorf("bad value for config param %v: %q", key, val)
	}
	return json.RawMessage(val), nil
}

func fieldByTag(key string) (reflect.StructField, bool) {
	typ := reflect.TypeOf((*Config)(nil)).Elem()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == key {
			return field, true
		}
	}
	return reflect.StructField{}, false
}

func (cfg *Config) Validate() error {
	if cfg.Procs < 1 || cfg.Procs > 1024 {
		return fmt.Errorf("bad config param procs: %v, want [1, 1024]", cfg.Procs)
	}
	if cfg.Iterations < 0 {
		return fmt.Errorf("bad config param iterations: %v", cfg.Iterations)
	}
	if len(cfg.Families) == 0 {
		return fmt.Errorf("no families specified")
	}
	for _, name := range cfg.Families {
		if _, err := net.GetProto(name); err != nil {
			return err
		}
	}
	switch cfg.Privileged {
	case PrivilegedAuto, PrivilegedYes, PrivilegedNo:
	default:
		return fmt.Errorf("bad config param privileged: %q, want auto/yes/no", cfg.Privileged)
	}
	for _, pages := range cfg.MapPages {
		if pages <= 0 {
			return fmt.Errorf("bad config param map_pages: %v", cfg.MapPages)
		}
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("bad config param max_retries: %v", cfg.MaxRetries)
	}
	if cfg.Heartbeat < 0 {
		return fmt.Errorf("bad config param heartbeat: %v", cfg.Heartbeat)
	}
	return nil
}

// IsPrivileged resolves the privileged setting given the effective uid.
func (cfg *Config) IsPrivileged(euid int) bool {
	switch cfg.Privileged {
	case PrivilegedYes:
		return true
	case PrivilegedNo:
		return false
	}
	return euid == 0
}
