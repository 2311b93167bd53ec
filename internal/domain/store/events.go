package store

import "time"

// OrderPlacedEvent is emitted after an order has been committed and its
// receipt stored.
type OrderPlacedEvent struct {
	ReceiptID  string
	Lines      int
	Total      float64
	OccurredAt time.Time
}

func (OrderPlacedEvent) EventName() string { return "store.order_placed" }

func NewOrderPlacedEvent(r *Receipt) OrderPlacedEvent {
	return OrderPlacedEvent{
		ReceiptID:  r.ID,
		Lines:      len(r.Lines),
		Total:      r.Total,
		OccurredAt: time.Now().UTC(),
	}
}
