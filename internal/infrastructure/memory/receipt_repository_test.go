package memory

import (
	"context"
	"testing"
	"time"

	domain "github.com/storekit/storefront/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptRepositorySaveAndGet(t *testing.T) {
	repo := NewReceiptRepository()
	ctx := context.Background()

	receipt := &domain.Receipt{
		ID:        "r-1",
		Lines:     []domain.ReceiptLine{{Product: "MacBook Air M2", Quantity: 2, Charged: 2900}},
		Total:     2900,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, receipt))

	got, err := repo.Get(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, receipt.Total, got.Total)
	require.Len(t, got.Lines, 1)

	// Stored state is isolated from caller mutation.
	got.Lines[0].Charged = 0
	again, err := repo.Get(ctx, "r-1")
	require.NoError(t, err)
	assert.InDelta(t, 2900.0, again.Lines[0].Charged, 1e-9)
}

func TestReceiptRepositoryGetMissing(t *testing.T) {
	repo := NewReceiptRepository()
	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)
}

func TestReceiptRepositorySaveRequiresID(t *testing.T) {
	repo := NewReceiptRepository()
	assert.Error(t, repo.Save(context.Background(), &domain.Receipt{}))
	assert.Error(t, repo.Save(context.Background(), nil))
}

func TestReceiptRepositoryListPreservesInsertionOrder(t *testing.T) {
	repo := NewReceiptRepository()
	ctx := context.Background()

	for _, id := range []string{"r-1", "r-2", "r-3"} {
		require.NoError(t, repo.Save(ctx, &domain.Receipt{ID: id}))
	}
	// Re-saving must not duplicate the entry.
	require.NoError(t, repo.Save(ctx, &domain.Receipt{ID: "r-2", Total: 10}))

	receipts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, receipts, 3)
	assert.Equal(t, "r-1", receipts[0].ID)
	assert.Equal(t, "r-2", receipts[1].ID)
	assert.Equal(t, "r-3", receipts[2].ID)
	assert.InDelta(t, 10.0, receipts[1].Total, 1e-9)
}
