package stockwatch

import (
	"context"

	"github.com/storekit/storefront/internal/domain/catalog"
	domoutbox "github.com/storekit/storefront/internal/domain/outbox"
	domstore "github.com/storekit/storefront/internal/domain/store"
	"github.com/storekit/storefront/internal/observability"
	"github.com/storekit/storefront/internal/observability/logctx"
)

const componentStockWatch = "stock_watch"

// Worker watches order and stock events and turns them into logs and
// metrics, so depleted products show up in dashboards without polling
// the catalog.
type Worker struct {
	subscriber domoutbox.Subscriber
	log        observability.Logger
	soldOut    observability.Counter
}

func New(subscriber domoutbox.Subscriber, tel observability.Telemetry) *Worker {
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	return &Worker{
		subscriber: subscriber,
		log:        tel.Logger().With(observability.F("component", componentStockWatch)),
		soldOut:    tel.Counter(observability.MProductsSoldOut),
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(catalog.ProductSoldOutEvent{}.EventName(), w.handleSoldOut)
	w.subscriber.Subscribe(domstore.OrderPlacedEvent{}.EventName(), w.handleOrderPlaced)
}

func (w *Worker) handleSoldOut(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(catalog.ProductSoldOutEvent)
	if !ok {
		return nil
	}
	logger := logctx.FromOr(ctx, w.log)
	logger.Warn("product_sold_out", observability.F("product", evt.Product))
	w.soldOut.Add(1, observability.L("product", evt.Product))
	return nil
}

func (w *Worker) handleOrderPlaced(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domstore.OrderPlacedEvent)
	if !ok {
		return nil
	}
	logger := logctx.FromOr(ctx, w.log)
	logger.Info("order_recorded",
		observability.F("receipt_id", evt.ReceiptID),
		observability.F("lines", evt.Lines),
		observability.F("total", evt.Total),
	)
	return nil
}
