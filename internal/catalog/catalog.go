package catalog

import (
	"strings"
	"sync"
	"time"

	"backoffice/internal/models"

	"github.com/google/uuid"
)

// Catalog owns the set of products. Lookups and mutations on an unknown id
// are silent no-ops.
type Catalog struct {
	mu       sync.RWMutex
	products []models.Product
	now      func() time.Time
}

// New creates a catalog seeded with products. A nil clock defaults to time.Now.
func New(seed []models.Product, now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}
	products := make([]models.Product, len(seed))
	copy(products, seed)

	return &Catalog{
		products: products,
		now:      now,
	}
}

// Add appends a product with a fresh id and today's date.
// The status is stored as given.
func (c *Catalog) Add(p models.Product) models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	p.ID = uuid.New().String()
	p.LastUpdated = models.FormatDate(c.now())
	c.products = append(c.products, p)
	return p
}

// Update merges patch into the product with the given id
func (c *Catalog) Update(id string, patch models.ProductPatch) (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return models.Product{}, false
	}

	p := &c.products[i]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.SKU != nil {
		p.SKU = *patch.SKU
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	return *p, true
}

// Remove deletes the product with the given id
func (c *Catalog) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.products = append(c.products[:i], c.products[i+1:]...)
	return true
}

// Get returns the product with the given id
func (c *Catalog) Get(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return models.Product{}, false
	}
	return c.products[i], true
}

// List returns all products in insertion order
func (c *Catalog) List() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Filter returns the products whose name or SKU contains query, ignoring case
func (c *Catalog) Filter(query string) []models.Product {
	if query == "" {
		return c.List()
	}
	q := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) {
			out = append(out, p)
		}
	}
	return out
}

// ApplySale decrements stock for every item of a sale, clamping at zero.
// All items are applied under one lock. Items referencing unknown products
// are skipped. Status is left as it was.
func (c *Catalog) ApplySale(items []models.OrderItem) []models.StockChange {
	c.mu.Lock()
	defer c.mu.Unlock()

	changes := make([]models.StockChange, 0, len(items))
	for _, item := range items {
		i := c.indexOf(item.ProductID)
		if i < 0 {
			continue
		}

		p := &c.products[i]
		before := p.Stock
		p.Stock = max(0, before-item.Quantity)

		changes = append(changes, models.StockChange{
			ProductID:     p.ID,
			ProductName:   p.Name,
			PreviousStock: before,
			Stock:         p.Stock,
			Requested:     item.Quantity,
		})
	}
	return changes
}

// Len returns the number of products
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

func (c *Catalog) indexOf(id string) int {
	for i := range c.products {
		if c.products[i].ID == id {
			return i
		}
	}
	return -1
}
