package domain

// CartViewLine joins a cart line against the live catalog.
type CartViewLine struct {
	Product   Product
	Quantity  int
	LineTotal Money
}

// CartView is the priced read model of a cart: surviving lines plus the
// grand total at current catalog prices. Lines whose product no longer
// exists are omitted before the view is built.
type CartView struct {
	Lines []CartViewLine
	Total Money
}

func (v CartView) IsEmpty() bool {
	return len(v.Lines) == 0
}

// Snapshot freezes the view into order lines, decoupled from the catalog.
func (v CartView) Snapshot() []OrderLine {
	lines := make([]OrderLine, 0, len(v.Lines))
	for _, line := range v.Lines {
		lines = append(lines, OrderLine{
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.Price,
			Quantity:    line.Quantity,
		})
	}
	return lines
}
