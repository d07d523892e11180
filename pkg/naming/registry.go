package naming

import (
	"sort"
	"strings"
	"sync"
)

// Strategy registry
var (
	strategiesMu sync.RWMutex
	strategies   = make(map[string]PhysicalNamingStrategy)
)

func init() {
	Register("identity", Identity{})
	Register("snake_case", SnakeCase{})
}

// Get returns a naming strategy by name.
func Get(name string) (PhysicalNamingStrategy, bool) {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()
	s, ok := strategies[strings.ToLower(name)]
	return s, ok
}

// Register registers a naming strategy in the global registry.
func Register(name string, s PhysicalNamingStrategy) {
	strategiesMu.Lock()
	defer strategiesMu.Unlock()
	strategies[strings.ToLower(name)] = s
}

// List returns all registered strategy names (sorted).
func List() []string {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
