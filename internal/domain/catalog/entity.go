// internal/domain/catalog/entity.go
package catalog

// Product represents a sellable catalog entry as the terminal sees it.
// Price is in paise. The product itself never carries availability; that is
// derived from the low-stock set fetched alongside the catalog.
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category int64  `json:"category"`
}

// Catalog is one loaded snapshot of the sellable products plus the set of
// products currently unavailable for sale.
type Catalog struct {
	products    []Product
	byID        map[int64]Product
	unavailable map[int64]struct{}
}

// NewCatalog builds a catalog snapshot from products and unavailable IDs
func NewCatalog(products []Product, unavailableIDs []int64) *Catalog {
	c := &Catalog{
		products:    products,
		byID:        make(map[int64]Product, len(products)),
		unavailable: make(map[int64]struct{}, len(unavailableIDs)),
	}
	for _, p := range products {
		c.byID[p.ID] = p
	}
	for _, id := range unavailableIDs {
		c.unavailable[id] = struct{}{}
	}
	return c
}

// Products returns the catalog entries in server order
func (c *Catalog) Products() []Product {
	return c.products
}

// Product looks up a catalog entry by ID
func (c *Catalog) Product(id int64) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Available reports whether a product may be sold right now
func (c *Catalog) Available(id int64) bool {
	_, low := c.unavailable[id]
	return !low
}
