package backup

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Strategy)
)

// Register adds a dump strategy to the registry.
// This is typically called from init() functions in strategy packages.
func Register(s Strategy) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := s.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("backup strategy %q already registered", name))
	}

	registry[name] = s
}

// Get returns a registered dump strategy by name
func Get(name string) (Strategy, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	s, ok := registry[name]
	return s, ok
}

// List returns all registered strategy names, sorted
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
