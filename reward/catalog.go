package reward

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the fixed set of purchasable items. It is loaded once at
// startup and read-only afterwards, so lookups need no locking.
type Catalog struct {
	items []CatalogItem
	index map[string]int
}

// NewCatalog builds a catalog from items, validating that names are unique
// and costs are positive.
func NewCatalog(items []CatalogItem) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("reward: catalog has no items")
	}

	c := &Catalog{
		items: make([]CatalogItem, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(c.items, items)

	for i, item := range c.items {
		if item.Name == "" {
			return nil, fmt.Errorf("reward: catalog item %d has no name", i)
		}
		if item.Cost <= 0 {
			return nil, fmt.Errorf("reward: catalog item %q has non-positive cost %d", item.Name, item.Cost)
		}
		if _, dup := c.index[item.Name]; dup {
			return nil, fmt.Errorf("reward: duplicate catalog item %q", item.Name)
		}
		c.index[item.Name] = i
	}

	return c, nil
}

// LoadCatalog reads a YAML catalog definition from path.
//
// File format:
//
//	items:
//	  - name: Snack Break
//	    cost: 20
//	    category: break
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reward: read catalog %s: %w", path, err)
	}

	var doc struct {
		Items []CatalogItem `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("reward: parse catalog %s: %w", path, err)
	}

	return NewCatalog(doc.Items)
}

// DefaultCatalog returns the built-in seed catalog used when no catalog
// file is configured.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]CatalogItem{
		{Name: "Snack Break", Cost: 20, Category: CategoryBreak},
		{Name: "Coffee Run", Cost: 15, Category: CategoryBreak},
		{Name: "Gaming Time (30m)", Cost: 50, Category: CategoryEntertainment},
		{Name: "Episode of a Show", Cost: 40, Category: CategoryEntertainment},
		{Name: "Power Nap", Cost: 30, Category: CategoryRest},
		{Name: "Sleep In Tomorrow", Cost: 80, Category: CategoryRest},
		{Name: "Long Walk", Cost: 25, Category: CategoryWellness},
	})
	if err != nil {
		panic(fmt.Sprintf("reward: default catalog invalid: %v", err))
	}
	return c
}

// Lookup returns the item with the given name.
func (c *Catalog) Lookup(name string) (CatalogItem, bool) {
	i, ok := c.index[name]
	if !ok {
		return CatalogItem{}, false
	}
	return c.items[i], true
}

// Items returns a copy of all catalog items in definition order.
func (c *Catalog) Items() []CatalogItem {
	out := make([]CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int { return len(c.items) }
