// Package registry is the build-time plugin registry for evidence archive
// backends.
//
// A backend registers itself in init(); a binary enables it by importing the
// backend package (often as a blank import). The "memory" backend is built
// in.
package registry

import (
	"flag"
	"fmt"
	"sort"
	"sync"

	"verdant.eco/ledger/evidence"
)

// Usage restricts which programs should accept a given backend.
type Usage uint8

const (
	// UsageCLI: available in short-lived CLI programs.
	UsageCLI Usage = 1 << iota
	// UsageDaemon: available in long-running daemons.
	UsageDaemon
)

func (u Usage) allows(want Usage) bool { return u&want != 0 }

// Backend describes one way to open an evidence.Archive.
type Backend struct {
	Name        string
	Description string
	Usage       Usage

	// RegisterFlags adds backend-specific flags to fs. It must be safe to
	// call exactly once per process.
	RegisterFlags func(fs *flag.FlagSet)

	// Open constructs the archive using values parsed into the registered
	// flags. It returns an optional close function.
	Open func() (evidence.Archive, func() error, error)
}

var (
	mu       sync.RWMutex
	backends = map[string]Backend{}
)

// Register registers a backend.
func Register(b Backend) error {
	if b.Name == "" {
		return fmt.Errorf("registry: backend name is required")
	}
	if b.RegisterFlags == nil {
		return fmt.Errorf("registry: backend %q missing RegisterFlags", b.Name)
	}
	if b.Open == nil {
		return fmt.Errorf("registry: backend %q missing Open", b.Name)
	}
	if b.Usage == 0 {
		return fmt.Errorf("registry: backend %q missing Usage", b.Name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := backends[b.Name]; exists {
		return fmt.Errorf("registry: backend %q already registered", b.Name)
	}
	backends[b.Name] = b
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(b Backend) {
	if err := Register(b); err != nil {
		panic(err)
	}
}

// List returns backends matching usage, sorted by name.
func List(usage Usage) []Backend {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Backend, 0, len(backends))
	for _, b := range backends {
		if b.Usage.allows(usage) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RegisterFlags registers flags for all backends matching usage, enabling
// single-pass flag parsing.
func RegisterFlags(fs *flag.FlagSet, usage Usage) {
	for _, b := range List(usage) {
		b.RegisterFlags(fs)
	}
}

// Open opens the named backend if it exists and matches usage.
func Open(name string, usage Usage) (evidence.Archive, func() error, error) {
	mu.RLock()
	b, ok := backends[name]
	mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("unknown evidence backend %q", name)
	}
	if !b.Usage.allows(usage) {
		return nil, nil, fmt.Errorf("evidence backend %q not supported in this binary", name)
	}
	return b.Open()
}

func init() {
	MustRegister(Backend{
		Name:          "memory",
		Description:   "In-process evidence archive (non-durable)",
		Usage:         UsageCLI | UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {},
		Open: func() (evidence.Archive, func() error, error) {
			return evidence.NewMemory(), nil, nil
		},
	})
}
