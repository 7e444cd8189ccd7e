// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Values flattens a repeated parameter whose entries may themselves be
// comma-separated: ?tagIds=a&tagIds=b,c yields [a b c]. Duplicates are dropped.
func Values(vals []string) []string {
	var res []string
	seen := make(map[string]struct{})
	for _, v := range vals {
		for _, item := range StringSlice(v) {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			res = append(res, item)
		}
	}
	return res
}
