package store

import (
	"context"
	"errors"
	"time"
)

var ErrReceiptNotFound = errors.New("store: receipt not found")

// ReceiptLine records the outcome of one committed order line.
type ReceiptLine struct {
	Product  string
	Quantity int
	Charged  float64
}

// Receipt is the result of a committed order. ID and CreatedAt are
// stamped by the application layer before the receipt is stored.
type Receipt struct {
	ID        string
	Lines     []ReceiptLine
	Total     float64
	CreatedAt time.Time
}

func (r *Receipt) Clone() *Receipt {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Lines = append([]ReceiptLine(nil), r.Lines...)
	return &clone
}

type ReceiptRepository interface {
	Save(ctx context.Context, receipt *Receipt) error
	Get(ctx context.Context, id string) (*Receipt, error)
	List(ctx context.Context) ([]*Receipt, error)
}
