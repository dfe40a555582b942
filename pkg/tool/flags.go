// Copyright 2020 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"errors"
	"fmt"
	"strings"
)

// ListFlag accepts a comma-separated list of values.
// The flag may be repeated, values accumulate.
type ListFlag []string

func (list *ListFlag) String() string {
	return strings.Join(*list, ",")
}

func (list *ListFlag) Set(value string) error {
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return errors.New("empty list item")
		}
		*list = append(*list, item)
	}
	return nil
}

// KeyValueFlag accepts repeated key=value pairs.
type KeyValueFlag map[string]string

func (kv KeyValueFlag) String() string {
	var parts []string
	for k, v := range kv {
		parts = append(parts, fmt.Sprintf("%v=%v", k, v))
	}
	return strings.Join(parts, ",")
}

func (kv KeyValueFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("bad key=value pair %q", value)
	}
	kv[key] = val
	return nil
}
