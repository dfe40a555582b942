// Copyright 2017 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package config loads and stores JSON and YAML config files.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"

	"github.com/sockgen/sockgen/pkg/osutil"
	"sigs.k8s.io/yaml"
)

func LoadFile(filename string, cfg any) error {
	if filename == "" {
		return fmt.Errorf("no config file specified")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if isYAML(filename) {
		return LoadYAML(data, cfg)
	}
	return LoadData(data, cfg)
}

var commentRe = regexp.MustCompile(`(^|\n)\s*#[^\n]*`)

// LoadData parses JSON config. Lines starting with # are comments.
// Unknown fields are rejected.
func LoadData(data []byte, cfg any) error {
	if err := checkConfigType(cfg); err != nil {
		return err
	}
	data = commentRe.ReplaceAll(data, nil)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// LoadYAML parses YAML config with the same rules as LoadData.
func LoadYAML(data []byte, cfg any) error {
	if err := checkConfigType(cfg); err != nil {
		return err
	}
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return LoadData(jsonData, cfg)
}

func checkConfigType(cfg any) error {
	typ := reflect.TypeOf(cfg)
	if typ == nil || typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config type is not pointer to struct")
	}
	return nil
}

func SaveFile(filename string, cfg any) error {
	data, err := SaveData(cfg, isYAML(filename))
	if err != nil {
		return err
	}
	return osutil.WriteFile(filename, data)
}

func SaveData(cfg any, asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(cfg)
	}
	return json.MarshalIndent(cfg, "", "\t")
}

func isYAML(filename string) bool {
	ext := filepath.Ext(filename)
	return ext == ".yaml" || ext == ".yml"
}

// MergeJSONData overrides fields of left with fields of right.
// Nested objects are merged recursively, everything else is replaced.
func MergeJSONData(left, right []byte) ([]byte, error) {
	vLeft, err := parseFragment(left)
	if err != nil {
		return nil, fmt.Errorf("failed to parse left: %w", err)
	}
	vRight, err := parseFragment(right)
	if err != nil {
		return nil, fmt.Errorf("failed to parse right: %w", err)
	}
	return json.Marshal(mergeRecursive(vLeft, vRight))
}

func parseFragment(input []byte) (parsed any, err error) {
	if len(bytes.TrimSpace(input)) == 0 {
		return map[string]any{}, nil
	}
	err = json.Unmarshal(input, &parsed)
	return
}

func mergeRecursive(left, right any) any {
	vLeft, okLeft := left.(map[string]any)
	vRight, okRight := right.(map[string]any)
	if !okLeft || !okRight {
		return right
	}
	for key, val := range vRight {
		if old, ok := vLeft[key]; ok {
			vLeft[key] = mergeRecursive(old, val)
		} else {
			vLeft[key] = val
		}
	}
	return vLeft
}
