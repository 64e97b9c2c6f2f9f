// internal/domain/cart/cart.go
package cart

import (
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/catalog"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// Line represents one product in the cart. Name and UnitPrice are a
// snapshot taken when the product was first added; a catalog change after
// that does not move an existing line's price.
type Line struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// LineTotal returns the line's price contribution in paise
func (l *Line) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// AvailabilityFunc reports whether a product may be sold right now
type AvailabilityFunc func(productID int64) bool

// Cart is the in-memory bill being built at the counter. Lines keep
// insertion order; there is never more than one line per product and never
// a quantity below one. The cart is exclusively owned by the terminal's
// event loop and holds no locking of its own.
type Cart struct {
	lines     []*Line
	available AvailabilityFunc
}

// New creates an empty cart. A nil availability function means every
// product is sellable.
func New(available AvailabilityFunc) *Cart {
	return &Cart{available: available}
}

// Add puts one unit of a product on the bill. An unavailable product is
// never accepted. A product already on the bill gets its quantity bumped;
// otherwise a new line is appended.
func (c *Cart) Add(p catalog.Product) error {
	if c.available != nil && !c.available(p.ID) {
		return apperrors.Newf(apperrors.CodeValidation, "%s is out of stock", p.Name)
	}

	if line := c.find(p.ID); line != nil {
		line.Quantity++
		return nil
	}

	c.lines = append(c.lines, &Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
	})
	return nil
}

// Increment bumps a line's quantity by one. Unknown IDs are a no-op.
func (c *Cart) Increment(productID int64) {
	if line := c.find(productID); line != nil {
		line.Quantity++
	}
}

// Decrement lowers a line's quantity by one, removing the line when it
// reaches zero. Unknown IDs are a no-op.
func (c *Cart) Decrement(productID int64) {
	line := c.find(productID)
	if line == nil {
		return
	}
	line.Quantity--
	if line.Quantity <= 0 {
		c.Remove(productID)
	}
}

// Remove drops a line regardless of quantity
func (c *Cart) Remove(productID int64) {
	for i, line := range c.lines {
		if line.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart (after checkout success or explicit reset)
func (c *Cart) Clear() {
	c.lines = nil
}

// Total sums price × quantity over all lines. Recomputed on every call;
// never stored.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns copies of the lines in insertion order
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	for i, line := range c.lines {
		lines[i] = *line
	}
	return lines
}

// Items returns the (product, quantity) pairs for bill submission
func (c *Cart) Items() []gateway.BillItemRequest {
	items := make([]gateway.BillItemRequest, len(c.lines))
	for i, line := range c.lines {
		items[i] = gateway.BillItemRequest{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
	}
	return items
}

// find returns the live line for a product, or nil
func (c *Cart) find(productID int64) *Line {
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line
		}
	}
	return nil
}
