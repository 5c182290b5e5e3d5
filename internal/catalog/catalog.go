// Package catalog holds the models the daemon can assess, loaded from a
// manifest file and/or a directory of gguf files.
package catalog

import (
	"sort"
	"sync"

	"advisord/pkg/types"
)

// Catalog is a read-mostly set of models keyed by id.
type Catalog struct {
	mu     sync.RWMutex
	models map[string]types.Model
}

// New builds a catalog. Later entries with a duplicate id replace earlier ones,
// so manifest entries passed after a directory scan override estimates.
func New(models ...[]types.Model) *Catalog {
	c := &Catalog{models: make(map[string]types.Model)}
	for _, set := range models {
		for _, m := range set {
			c.models[m.ID] = m
		}
	}
	return c
}

// Get returns the model or a model-not-found error.
func (c *Catalog) Get(id string) (types.Model, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.models[id]
	if !ok {
		return types.Model{}, ErrModelNotFound(id)
	}
	return m, nil
}

// List returns the models sorted by id.
func (c *Catalog) List() []types.Model {
	c.mu.RLock()
	out := make([]types.Model, 0, len(c.models))
	for _, m := range c.models {
		out = append(out, m)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
