package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/storekit/storefront/internal/domain/catalog"
	domoutbox "github.com/storekit/storefront/internal/domain/outbox"
	domstore "github.com/storekit/storefront/internal/domain/store"
	"github.com/storekit/storefront/internal/observability"
	"github.com/storekit/storefront/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	serviceName       = "checkout"
	useCasePlaceOrder = "checkout.place_order"
	spanPlaceOrder    = "UC.checkout.place_order"
	outcomeSuccess    = "success"
	outcomeRejected   = "rejected"
	outcomeError      = "error"
	publishTimeout    = 300 * time.Millisecond
)

var ErrEmptyOrder = domstore.ErrEmptyOrder

// Service is the application surface over the store aggregate: listing,
// stock totals and the order workflow with receipts, events and
// telemetry.
type Service struct {
	store       *domstore.Store
	receipts    domstore.ReceiptRepository
	publisher   domoutbox.Publisher
	idGenerator IDGenerator
	tel         observability.Telemetry

	log          observability.Logger
	reqCounter   observability.Counter
	durHistogram observability.Histogram
	totalHist    observability.Histogram
}

func NewService(
	st *domstore.Store,
	receipts domstore.ReceiptRepository,
	idGen IDGenerator,
	publisher domoutbox.Publisher,
	tel observability.Telemetry,
) *Service {
	if tel == nil {
		tel = observability.NopTelemetry()
	}
	return &Service{
		store:        st,
		receipts:     receipts,
		publisher:    publisher,
		idGenerator:  idGen,
		tel:          tel,
		log:          tel.Logger().With(observability.F("service", serviceName)),
		reqCounter:   tel.Counter(observability.MUsecaseRequests),
		durHistogram: tel.Histogram(observability.MUsecaseDuration),
		totalHist:    tel.Histogram(observability.MOrderTotal),
	}
}

// ListProducts returns the active products in catalog order. The
// returned references are live: purchases mutate them in place.
func (s *Service) ListProducts(ctx context.Context) []catalog.Product {
	_ = ctx
	return s.store.Products()
}

// TotalQuantity reports the summed availability over the whole catalog.
func (s *Service) TotalQuantity(ctx context.Context) catalog.Availability {
	_ = ctx
	return s.store.TotalQuantity()
}

// Receipt returns a stored receipt by id.
func (s *Service) Receipt(ctx context.Context, id string) (*domstore.Receipt, error) {
	if id == "" {
		return nil, domstore.ErrReceiptNotFound
	}
	return s.receipts.Get(ctx, id)
}

type PlaceOrderResult struct {
	ReceiptID string
	Total     float64
}

// PlaceOrder runs the store's two-phase order, stamps and stores the
// receipt and publishes the resulting domain events. A rejected order
// leaves no trace beyond the log entry.
func (s *Service) PlaceOrder(ctx context.Context, lines []domstore.Line) (*PlaceOrderResult, error) {
	ctx, span := s.tel.Tracer().Start(ctx, spanPlaceOrder,
		attribute.Int("order.lines", len(lines)),
	)
	defer span.End()

	logger := logctx.FromOr(ctx, s.log).With(observability.F("use_case", useCasePlaceOrder))
	started := time.Now()
	outcome := outcomeError
	defer func() {
		s.reqCounter.Add(1,
			observability.L("use_case", useCasePlaceOrder),
			observability.L("outcome", outcome),
		)
		s.durHistogram.Observe(time.Since(started).Seconds(),
			observability.L("use_case", useCasePlaceOrder),
		)
	}()

	soldOutCandidates := activeProducts(lines)

	receipt, err := s.store.Order(lines)
	if err != nil {
		var rejected *domstore.RejectedError
		if errors.As(err, &rejected) {
			outcome = outcomeRejected
			logger.Warn("order_rejected",
				observability.F("line", rejected.Line),
				observability.F("product", rejected.Product),
				observability.F("reason", rejected.Err.Error()),
			)
			span.SetStatus(codes.Error, "order rejected")
			return nil, err
		}
		logger.Error("order_failed", observability.F("error", err))
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	receipt.ID = s.idGenerator.NewID()
	receipt.CreatedAt = time.Now().UTC()

	if err := s.receipts.Save(ctx, receipt); err != nil {
		logger.Error("receipt_save_failed",
			observability.F("receipt_id", receipt.ID),
			observability.F("error", err),
		)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.publishEvents(ctx, receipt, soldOutCandidates)

	outcome = outcomeSuccess
	s.totalHist.Observe(receipt.Total, observability.L("use_case", useCasePlaceOrder))
	logger.Info("order_placed",
		observability.F("receipt_id", receipt.ID),
		observability.F("lines", len(receipt.Lines)),
		observability.F("total", receipt.Total),
	)
	return &PlaceOrderResult{ReceiptID: receipt.ID, Total: receipt.Total}, nil
}

// publishEvents emits the order-placed event plus one sold-out event per
// product the order drove inactive. Publishing is best effort; failures
// are logged, never surfaced to the buyer.
func (s *Service) publishEvents(ctx context.Context, receipt *domstore.Receipt, candidates []catalog.Product) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, domstore.NewOrderPlacedEvent(receipt)); err != nil {
		s.log.Warn("event_publish_failed",
			observability.F("event", domstore.OrderPlacedEvent{}.EventName()),
			observability.F("error", err),
		)
	}

	for _, p := range candidates {
		if p.Active() {
			continue
		}
		if err := s.publisher.Publish(pubCtx, catalog.NewProductSoldOutEvent(p)); err != nil {
			s.log.Warn("event_publish_failed",
				observability.F("event", catalog.ProductSoldOutEvent{}.EventName()),
				observability.F("error", err),
			)
		}
	}
}

// activeProducts snapshots the distinct products of an order that are
// active before commit, so sold-out transitions can be detected after.
func activeProducts(lines []domstore.Line) []catalog.Product {
	seen := make(map[catalog.Product]struct{}, len(lines))
	out := make([]catalog.Product, 0, len(lines))
	for _, line := range lines {
		if line.Product == nil || !line.Product.Active() {
			continue
		}
		if _, dup := seen[line.Product]; dup {
			continue
		}
		seen[line.Product] = struct{}{}
		out = append(out, line.Product)
	}
	return out
}
