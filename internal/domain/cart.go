package domain

// CartLine is one product in a cart. Quantity is always >= 1; a product
// appears in at most one line.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Cart is the per-session collection of lines, in the order products were
// first added.
type Cart struct {
	Lines []CartLine `json:"lines,omitempty"`
}

func (c *Cart) find(productID int64) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// Upsert adds quantity to an existing line or appends a new one.
func (c *Cart) Upsert(productID int64, quantity int) {
	if i := c.find(productID); i >= 0 {
		c.Lines[i].Quantity += quantity
		return
	}

	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: quantity})
}

// SetQuantity sets the line quantity exactly, removing the line when
// quantity <= 0. Reports whether the line existed.
func (c *Cart) SetQuantity(productID int64, quantity int) bool {
	i := c.find(productID)
	if i < 0 {
		return false
	}

	if quantity <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return true
	}

	c.Lines[i].Quantity = quantity
	return true
}

// Remove deletes the line if present. Removing an absent product is a no-op.
func (c *Cart) Remove(productID int64) {
	if i := c.find(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
