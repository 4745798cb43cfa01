// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

package resolve

import "strings"

// nodeBuiltins lists the Node.js built-in module names, without the node:
// prefix.
var nodeBuiltins = map[string]bool{
	"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
	"cluster": true, "console": true, "constants": true, "crypto": true,
	"dgram": true, "diagnostics_channel": true, "dns": true, "domain": true,
	"events": true, "fs": true, "http": true, "http2": true, "https": true,
	"inspector": true, "module": true, "net": true, "os": true, "path": true,
	"perf_hooks": true, "process": true, "punycode": true, "querystring": true,
	"readline": true, "repl": true, "stream": true, "string_decoder": true,
	"sys": true, "timers": true, "tls": true, "trace_events": true,
	"tty": true, "url": true, "util": true, "v8": true, "vm": true,
	"wasi": true, "worker_threads": true, "zlib": true, "test": true,
}

// isBuiltin reports whether pkg names a Node built-in module. The node:
// prefix always marks a built-in; unprefixed names match the known list,
// including subpath forms like fs/promises.
func isBuiltin(pkg string) bool {
	if strings.HasPrefix(pkg, "node:") {
		return true
	}
	root := pkg
	if idx := strings.IndexByte(root, '/'); idx >= 0 {
		root = root[:idx]
	}
	return nodeBuiltins[root]
}
