package catalog

import "time"

// ProductSoldOutEvent is emitted when a purchase exhausts a product's
// stock and deactivates it.
type ProductSoldOutEvent struct {
	Product    string
	OccurredAt time.Time
}

func (ProductSoldOutEvent) EventName() string { return "catalog.product_sold_out" }

func NewProductSoldOutEvent(p Product) ProductSoldOutEvent {
	return ProductSoldOutEvent{
		Product:    p.Name(),
		OccurredAt: time.Now().UTC(),
	}
}
