// core/registry.go
package core

import (
	"sync"

	"github.com/joeydtaylor/steeze-screens/pkg/screen"
)

// ScreenFactory stamps out one request-scoped screen instance.
type ScreenFactory func() *screen.Screen

var (
	regMu    sync.RWMutex
	registry = map[string]ScreenFactory{}
)

// Register makes a screen available under a name referenced in manifest.toml
func Register(name string, f ScreenFactory) {
	regMu.Lock()
	registry[name] = f
	regMu.Unlock()
}

// Lookup retrieves a registered screen factory by name.
func Lookup(name string) (ScreenFactory, bool) {
	regMu.RLock()
	f, ok := registry[name]
	regMu.RUnlock()
	return f, ok
}
