// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package manifest

import (
	"encoding/json"
	"sort"
	"strings"
)

// Export map condition names recognized during resolution, in preference
// order. Type-only imports move "types" to the front.
var defaultConditions = []string{"import", "require", "default"}

// ExportTargets flattens an exports field into every concrete file target it
// can name, for entry derivation. Conditions and subpaths are all included;
// glob subpaths ("./*") are returned as-is for the caller to expand.
func ExportTargets(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	collectTargets(raw, seen, &out)
	sort.Strings(out)
	return out
}

func collectTargets(raw json.RawMessage, seen map[string]bool, out *[]string) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s != "" && !seen[s] {
			seen[s] = true
			*out = append(*out, s)
		}
		return
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		for _, item := range arr {
			collectTargets(item, seen, out)
		}
		return
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectTargets(obj[k], seen, out)
		}
	}
}

// ResolveExports resolves a package subpath ("." for the bare package name)
// against an exports field. Conditions are tried in the default order
// (import, require, default); type-only lookups try "types" first. It returns the relative target path and true on a match.
func ResolveExports(raw json.RawMessage, subpath string, typeOnly bool) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	conditions := defaultConditions
	if typeOnly {
		conditions = append([]string{"types"}, defaultConditions...)
	}
	return resolveExportsEntry(raw, subpath, conditions)
}

func resolveExportsEntry(raw json.RawMessage, subpath string, conditions []string) (string, bool) {
	// A bare string exports field only serves the root subpath.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if subpath == "." {
			return s, true
		}
		return "", false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}

	if isSubpathMap(obj) {
		return resolveSubpathMap(obj, subpath, conditions)
	}

	// Condition map at the top level serves only the root subpath.
	if subpath != "." {
		return "", false
	}
	return resolveConditions(obj, conditions)
}

// isSubpathMap reports whether every key starts with "." (subpath keys) as
// opposed to condition names.
func isSubpathMap(obj map[string]json.RawMessage) bool {
	for k := range obj {
		if !strings.HasPrefix(k, ".") {
			return false
		}
	}
	return len(obj) > 0
}

func resolveSubpathMap(obj map[string]json.RawMessage, subpath string, conditions []string) (string, bool) {
	if raw, ok := obj[subpath]; ok {
		return resolveTarget(raw, conditions, "")
	}

	// Pattern keys: longest matching "./prefix*suffix" wins.
	var bestKey, bestSub string
	for key := range obj {
		star := strings.Index(key, "*")
		if star < 0 {
			continue
		}
		prefix, suffix := key[:star], key[star+1:]
		if !strings.HasPrefix(subpath, prefix) || !strings.HasSuffix(subpath, suffix) {
			continue
		}
		if len(subpath) < len(prefix)+len(suffix) {
			continue
		}
		if len(key) > len(bestKey) {
			bestKey = key
			bestSub = subpath[len(prefix) : len(subpath)-len(suffix)]
		}
	}
	if bestKey == "" {
		return "", false
	}
	return resolveTarget(obj[bestKey], conditions, bestSub)
}

// resolveTarget unwraps condition objects and arrays until a string target is
// found, substituting the pattern wildcard when present.
func resolveTarget(raw json.RawMessage, conditions []string, wildcard string) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if wildcard != "" {
			s = strings.ReplaceAll(s, "*", wildcard)
		}
		return s, true
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		for _, item := range arr {
			if target, ok := resolveTarget(item, conditions, wildcard); ok {
				return target, true
			}
		}
		return "", false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}
	for _, cond := range conditions {
		if inner, ok := obj[cond]; ok {
			if target, ok := resolveTarget(inner, conditions, wildcard); ok {
				return target, true
			}
		}
	}
	return "", false
}

func resolveConditions(obj map[string]json.RawMessage, conditions []string) (string, bool) {
	for _, cond := range conditions {
		if inner, ok := obj[cond]; ok {
			if target, ok := resolveTarget(inner, conditions, ""); ok {
				return target, true
			}
		}
	}
	return "", false
}
