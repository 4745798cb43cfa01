// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package workspace

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// expandDirGlobs resolves a list of glob patterns relative to root into
// absolute directory paths. Negated patterns ("!pkgs/legacy") subtract from
// earlier matches. Non-directory matches are silently skipped. Results are
// sorted and deduplicated. node_modules directories never match.
func expandDirGlobs(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)

	for _, pat := range patterns {
		negate := strings.HasPrefix(pat, "!")
		if negate {
			pat = pat[1:]
		}

		abs := pat
		if !filepath.IsAbs(pat) {
			abs = filepath.Join(root, pat)
		}

		matches, err := doublestar.FilepathGlob(abs)
		if err != nil {
			return nil, err
		}

		for _, m := range matches {
			if strings.Contains(m, "node_modules") {
				continue
			}
			if !dirExists(m) {
				continue
			}
			if negate {
				delete(seen, m)
			} else {
				seen[m] = true
			}
		}
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs, nil
}
