// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package classify

// osBinaries lists commands supplied by the operating system or the package
// manager itself. Scripts invoking these never produce an unlisted-binary
// report.
var osBinaries = map[string]bool{
	"bash": true, "sh": true, "zsh": true, "env": true, "cd": true,
	"cp": true, "mv": true, "rm": true, "mkdir": true, "rmdir": true,
	"touch": true, "cat": true, "echo": true, "true": true, "false": true,
	"test": true, "exit": true, "set": true, "export": true, "sleep": true,
	"ls": true, "find": true, "grep": true, "sed": true, "awk": true,
	"sort": true, "head": true, "tail": true, "wc": true, "xargs": true,
	"tar": true, "gzip": true, "curl": true, "wget": true, "chmod": true,
	"git": true, "docker": true, "docker-compose": true, "make": true,
	"node": true, "deno": true, "bun": true,
	"npm": true, "npx": true, "yarn": true, "pnpm": true, "pnpx": true,
	"bunx": true, "corepack": true, "nvm": true,
}

// osProvided reports whether bin is on the OS-provided allowlist.
func osProvided(bin string) bool { return osBinaries[bin] }
