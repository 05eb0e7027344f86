package classify

import "sort"

// NameSet is an immutable set of module names.
// The zero value is an empty set.
type NameSet struct {
	names map[string]struct{}
}

// NewNameSet builds a set from names. Empty names are ignored.
func NewNameSet(names ...string) NameSet {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n != "" {
			m[n] = struct{}{}
		}
	}
	return NameSet{names: m}
}

// Contains reports whether name is in the set.
func (s NameSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of names.
func (s NameSet) Len() int {
	return len(s.names)
}

// Names returns the names in sorted order.
func (s NameSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// With returns a new set holding s plus the given names.
func (s NameSet) With(names ...string) NameSet {
	return NewNameSet(append(s.Names(), names...)...)
}

// defaultBuiltins are Node.js core modules plus ecosystem packages that are
// always treated as external, whether or not package.json declares them.
var defaultBuiltins = []string{
	"assert",
	"async_hooks",
	"buffer",
	"child_process",
	"cluster",
	"console",
	"constants",
	"crypto",
	"dgram",
	"dns",
	"domain",
	"events",
	"fs",
	"http",
	"http2",
	"https",
	"inspector",
	"module",
	"net",
	"os",
	"path",
	"perf_hooks",
	"process",
	"punycode",
	"querystring",
	"readline",
	"repl",
	"stream",
	"string_decoder",
	"timers",
	"tls",
	"trace_events",
	"tty",
	"url",
	"util",
	"v8",
	"vm",
	"wasi",
	"worker_threads",
	"zlib",
	"express",
	"mongodb",
}

// DefaultBuiltins returns the built-in set used when none is configured.
func DefaultBuiltins() NameSet {
	return NewNameSet(defaultBuiltins...)
}
