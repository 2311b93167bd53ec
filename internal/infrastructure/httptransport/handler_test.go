package httptransport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/storekit/storefront/internal/application/checkout"
	"github.com/storekit/storefront/internal/domain/catalog"
	domstore "github.com/storekit/storefront/internal/domain/store"
	"github.com/storekit/storefront/internal/infrastructure/id"
	"github.com/storekit/storefront/internal/infrastructure/memory"
	"github.com/storekit/storefront/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, products ...catalog.Product) http.Handler {
	t.Helper()
	st, err := domstore.New(products...)
	require.NoError(t, err)

	svc := checkout.NewService(st, memory.NewReceiptRepository(), id.NewUUIDGenerator(), nil, observability.NopTelemetry())
	return NewHandler(svc).Router()
}

func TestListProducts(t *testing.T) {
	std, err := catalog.NewStandard("MacBook Air M2", 1450, 100)
	require.NoError(t, err)
	license, err := catalog.NewNonStocked("Windows License", 125)
	require.NoError(t, err)
	router := newTestHandler(t, std, license)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var views []struct {
		Index    int     `json:"index"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity string  `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, 1, views[0].Index)
	assert.Equal(t, "MacBook Air M2", views[0].Name)
	assert.Equal(t, "100", views[0].Quantity)
	assert.Equal(t, "unbounded", views[1].Quantity)
}

func TestTotalStock(t *testing.T) {
	std, err := catalog.NewStandard("Google Pixel 7", 500, 250)
	require.NoError(t, err)
	router := newTestHandler(t, std)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stock", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":"250"}`, rec.Body.String())
}

func TestPlaceOrderHappyPath(t *testing.T) {
	std, err := catalog.NewStandard("MacBook Air M2", 100, 10)
	require.NoError(t, err)
	router := newTestHandler(t, std)

	body := `{"lines":[{"item":1,"quantity":3}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		ReceiptID string  `json:"receipt_id"`
		Total     float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ReceiptID)
	assert.InDelta(t, 300.0, resp.Total, 1e-9)

	units, _ := std.Available().Units()
	assert.Equal(t, 7, units)

	// The receipt is retrievable afterwards.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/"+resp.ReceiptID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPlaceOrderInsufficientStockConflicts(t *testing.T) {
	std, err := catalog.NewStandard("Google Pixel 7", 500, 2)
	require.NoError(t, err)
	router := newTestHandler(t, std)

	body := `{"lines":[{"item":1,"quantity":5}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	units, _ := std.Available().Units()
	assert.Equal(t, 2, units)
}

func TestPlaceOrderBadRequests(t *testing.T) {
	std, err := catalog.NewStandard("MacBook Air M2", 100, 10)
	require.NoError(t, err)
	router := newTestHandler(t, std)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty lines", body: `{"lines":[]}`},
		{name: "unknown index", body: `{"lines":[{"item":9,"quantity":1}]}`},
		{name: "zero index", body: `{"lines":[{"item":0,"quantity":1}]}`},
		{name: "unknown field", body: `{"stuff":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetReceiptMissing(t *testing.T) {
	router := newTestHandler(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodGuard(t *testing.T) {
	router := newTestHandler(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
