package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/storekit/storefront/internal/domain/store"
)

// ReceiptRepository keeps committed order receipts in memory. Receipts
// are cloned on the way in and out so callers cannot mutate stored state.
type ReceiptRepository struct {
	mu       sync.RWMutex
	receipts map[string]*domain.Receipt
	order    []string
}

func NewReceiptRepository() *ReceiptRepository {
	return &ReceiptRepository{
		receipts: make(map[string]*domain.Receipt),
	}
}

func (r *ReceiptRepository) Save(ctx context.Context, receipt *domain.Receipt) error {
	_ = ctx
	if receipt == nil || receipt.ID == "" {
		return fmt.Errorf("receipt repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.receipts[receipt.ID]; !exists {
		r.order = append(r.order, receipt.ID)
	}
	r.receipts[receipt.ID] = receipt.Clone()
	return nil
}

func (r *ReceiptRepository) Get(ctx context.Context, id string) (*domain.Receipt, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	receipt, ok := r.receipts[id]
	if !ok {
		return nil, domain.ErrReceiptNotFound
	}
	return receipt.Clone(), nil
}

// List returns all receipts in the order they were first saved.
func (r *ReceiptRepository) List(ctx context.Context) ([]*domain.Receipt, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Receipt, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.receipts[id].Clone())
	}
	return out, nil
}
