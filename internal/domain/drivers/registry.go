package drivers

import (
	"fmt"
	"sort"
	"strings"
)

// registry maps lowercase sport keys to their catalogs. Catalogs register
// during init and the map is read-only afterwards, so concurrent evaluation
// needs no locking.
var registry = map[string]*Catalog{}

// Register adds a sport's catalog. Called from init; panics on an invalid or
// duplicate catalog because a broken table is a programming error, not a
// runtime condition.
func Register(c *Catalog) {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("drivers: invalid catalog: %v", err))
	}
	key := strings.ToLower(c.Sport)
	if _, dup := registry[key]; dup {
		panic(fmt.Sprintf("drivers: catalog for %s registered twice", c.Sport))
	}
	registry[key] = c
}

// CatalogFor returns the catalog for a sport, case-insensitively.
func CatalogFor(sport string) (*Catalog, error) {
	c, ok := registry[strings.ToLower(sport)]
	if !ok {
		return nil, fmt.Errorf("unsupported sport %q", sport)
	}
	return c, nil
}

// Sports lists the registered sport keys in sorted order.
func Sports() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
