package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/storekit/storefront/internal/application/checkout"
	"github.com/storekit/storefront/internal/domain/catalog"
	domstore "github.com/storekit/storefront/internal/domain/store"
)

type Handler struct {
	checkout *checkout.Service
}

func NewHandler(checkoutSvc *checkout.Service) *Handler {
	return &Handler{checkout: checkoutSvc}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/products", h.method(http.MethodGet, h.handleListProducts))
	mux.HandleFunc("/stock", h.method(http.MethodGet, h.handleTotalStock))
	mux.HandleFunc("/orders", h.method(http.MethodPost, h.handlePlaceOrder))
	mux.HandleFunc("/orders/", h.method(http.MethodGet, h.handleGetReceipt))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

type productView struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    string  `json:"quantity"`
	Promotion   string  `json:"promotion,omitempty"`
	Description string  `json:"description"`
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.checkout.ListProducts(r.Context())

	views := make([]productView, 0, len(products))
	for i, p := range products {
		view := productView{
			Index:       i + 1,
			Name:        p.Name(),
			Price:       p.UnitPrice(),
			Quantity:    p.Available().String(),
			Description: p.Describe(),
		}
		if promo := p.Promotion(); promo != nil {
			view.Promotion = promo.Name()
		}
		views = append(views, view)
	}

	writeJSON(w, http.StatusOK, views)
}

type totalStockResponse struct {
	Total string `json:"total"`
}

func (h *Handler) handleTotalStock(w http.ResponseWriter, r *http.Request) {
	total := h.checkout.TotalQuantity(r.Context())
	writeJSON(w, http.StatusOK, totalStockResponse{Total: total.String()})
}

type orderLineRequest struct {
	// Item is the 1-based index into the current active product listing,
	// matching the indices GET /products returns.
	Item     int `json:"item"`
	Quantity int `json:"quantity"`
}

type placeOrderRequest struct {
	Lines []orderLineRequest `json:"lines"`
}

type placeOrderResponse struct {
	ReceiptID string  `json:"receipt_id"`
	Total     float64 `json:"total"`
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Lines) == 0 {
		writeError(w, http.StatusBadRequest, checkout.ErrEmptyOrder)
		return
	}

	// Resolve listing indices against one snapshot, so every line of the
	// request sees the same catalog view.
	listing := h.checkout.ListProducts(r.Context())
	lines := make([]domstore.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.Item < 1 || l.Item > len(listing) {
			writeError(w, http.StatusBadRequest, errors.New("unknown product index"))
			return
		}
		lines = append(lines, domstore.Line{Product: listing[l.Item-1], Quantity: l.Quantity})
	}

	result, err := h.checkout.PlaceOrder(r.Context(), lines)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, placeOrderResponse{
		ReceiptID: result.ReceiptID,
		Total:     result.Total,
	})
}

type receiptLineView struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Charged  float64 `json:"charged"`
}

type receiptView struct {
	ID        string            `json:"id"`
	Lines     []receiptLineView `json:"lines"`
	Total     float64           `json:"total"`
	CreatedAt string            `json:"created_at"`
}

func (h *Handler) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/orders/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, domstore.ErrReceiptNotFound)
		return
	}

	receipt, err := h.checkout.Receipt(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	view := receiptView{
		ID:        receipt.ID,
		Lines:     make([]receiptLineView, 0, len(receipt.Lines)),
		Total:     receipt.Total,
		CreatedAt: receipt.CreatedAt.Format(time.RFC3339),
	}
	for _, line := range receipt.Lines {
		view.Lines = append(view.Lines, receiptLineView{
			Product:  line.Product,
			Quantity: line.Quantity,
			Charged:  line.Charged,
		})
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) method(method string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		handler(w, r)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domstore.ErrReceiptNotFound),
		errors.Is(err, domstore.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, catalog.ErrInsufficientStock),
		errors.Is(err, catalog.ErrOrderLimitExceeded),
		errors.Is(err, catalog.ErrInactiveProduct):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, catalog.ErrInvalidQuantity),
		errors.Is(err, domstore.ErrEmptyOrder),
		errors.Is(err, domstore.ErrNilProduct):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
