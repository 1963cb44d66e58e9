package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice/internal/broker"
	"backoffice/internal/catalog"
	"backoffice/internal/ledger"
	"backoffice/internal/models"
	"backoffice/internal/prefs"
	"backoffice/internal/report"
	"backoffice/internal/seed"
	"backoffice/internal/service"
	"backoffice/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router   *gin.Engine
	products *catalog.Catalog
	orders   *ledger.Ledger
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)

	products := catalog.New(seed.Products(), nil)
	orders := ledger.New(seed.Orders(), products, nil)
	publisher := broker.NewEventPublisher(broker.NopSink{})

	handler := NewHandler(
		service.NewInventoryService(products, publisher),
		service.NewSalesService(orders, products, publisher),
		service.NewSettingsService(settings.NewStore(models.DefaultSettings()), publisher),
		service.NewReportService(orders, report.DefaultKPIInputs()),
		prefs.NewService(prefs.NewMemoryBackend()),
	)

	router := gin.New()
	handler.SetupRoutes(router)
	return &fixture{router: router, products: products, orders: orders}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestHealthEndpoints(t *testing.T) {
	f := newFixture()

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		rec := f.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestProductEndpoints(t *testing.T) {
	testCases := []struct {
		name               string
		method             string
		path               string
		body               string
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder, f *fixture)
	}{
		{
			name:               "list with search",
			method:             http.MethodGet,
			path:               "/api/v1/products?q=fur-",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, f *fixture) {
				var resp struct {
					Total    int              `json:"total"`
					Products []models.Product `json:"products"`
				}
				decode(t, rec, &resp)
				assert.Equal(t, 2, resp.Total)
				assert.Equal(t, "1", resp.Products[0].ID)
				assert.Equal(t, "4", resp.Products[1].ID)
			},
		},
		{
			name:               "get",
			method:             http.MethodGet,
			path:               "/api/v1/products/3",
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, f *fixture) {
				var p models.Product
				decode(t, rec, &p)
				assert.Equal(t, "TEC-003", p.SKU)
				assert.Equal(t, models.StockStatusOutOfStock, p.Status)
			},
		},
		{
			name:               "get unknown",
			method:             http.MethodGet,
			path:               "/api/v1/products/999",
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, f *fixture) {
				var errResp map[string]string
				decode(t, rec, &errResp)
				assert.Equal(t, "Product not found", errResp["error"])
			},
		},
		{
			name:               "create derives status",
			method:             http.MethodPost,
			path:               "/api/v1/products",
			body:               `{"name":"Desk Lamp","sku":"LGT-010","category":"Lighting","stock":3,"price":24.9}`,
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, f *fixture) {
				var p models.Product
				decode(t, rec, &p)
				assert.NotEmpty(t, p.ID)
				assert.Equal(t, models.StockStatusLowStock, p.Status)
				assert.Equal(t, "24.90", p.Price.StringFixed(2))
				assert.Equal(t, 8, f.products.Len())
			},
		},
		{
			name:               "create missing fields",
			method:             http.MethodPost,
			path:               "/api/v1/products",
			body:               `{"name":"Desk Lamp"}`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, f *fixture) {
				var errResp map[string]string
				decode(t, rec, &errResp)
				assert.Equal(t, "Invalid request body", errResp["error"])
				assert.NotEmpty(t, errResp["details"])
				assert.Equal(t, 7, f.products.Len())
			},
		},
		{
			name:               "create negative price",
			method:             http.MethodPost,
			path:               "/api/v1/products",
			body:               `{"name":"Desk Lamp","sku":"LGT-010","category":"Lighting","stock":3,"price":-1}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "patch",
			method:             http.MethodPatch,
			path:               "/api/v1/products/2",
			body:               `{"stock":0}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, f *fixture) {
				var p models.Product
				decode(t, rec, &p)
				assert.Equal(t, 0, p.Stock)
				assert.Equal(t, "Wireless Mechanical Keyboard", p.Name)
			},
		},
		{
			name:               "patch unknown is a no-op",
			method:             http.MethodPatch,
			path:               "/api/v1/products/999",
			body:               `{"stock":0}`,
			expectedStatusCode: http.StatusNoContent,
		},
		{
			name:               "delete",
			method:             http.MethodDelete,
			path:               "/api/v1/products/1",
			expectedStatusCode: http.StatusNoContent,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, f *fixture) {
				assert.Equal(t, 6, f.products.Len())
			},
		},
		{
			name:               "delete unknown",
			method:             http.MethodDelete,
			path:               "/api/v1/products/999",
			expectedStatusCode: http.StatusNoContent,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, f *fixture) {
				assert.Equal(t, 7, f.products.Len())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()

			rec := f.do(tc.method, tc.path, tc.body)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec, f)
			}
		})
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/v1/orders",
		`{"customer_name":"Carol","customer_email":"carol@example.com","items":[{"product_id":"6","quantity":2}]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	decode(t, rec, &order)
	assert.Equal(t, "ORD-003", order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "598.00", order.TotalAmount.StringFixed(2))

	headphones, _ := f.products.Get("6")
	assert.Equal(t, 3, headphones.Stock)

	rec = f.do(http.MethodGet, "/api/v1/orders", "")
	var list struct {
		Total  int            `json:"total"`
		Orders []models.Order `json:"orders"`
	}
	decode(t, rec, &list)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, "ORD-003", list.Orders[0].ID)
}

func TestCreateOrderValidation(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "no items", body: `{"customer_name":"Carol","customer_email":"c@example.com","items":[]}`},
		{name: "zero quantity", body: `{"customer_name":"Carol","customer_email":"c@example.com","items":[{"product_id":"1","quantity":0}]}`},
		{name: "missing customer", body: `{"items":[{"product_id":"1","quantity":1}]}`},
		{name: "unknown status", body: `{"customer_name":"Carol","customer_email":"c@example.com","status":"Lost","items":[{"product_id":"1","quantity":1}]}`},
		{name: "malformed json", body: `{"customer_name":`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()

			rec := f.do(http.MethodPost, "/api/v1/orders", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 2, f.orders.Len())
		})
	}
}

func TestOrderStatusEndpoint(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPut, "/api/v1/orders/ORD-001/status", `{"status":"Cancelled"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var order models.Order
	decode(t, rec, &order)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)

	rec = f.do(http.MethodPut, "/api/v1/orders/ORD-404/status", `{"status":"Shipped"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodPut, "/api/v1/orders/ORD-001/status", `{"status":"Lost"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteOrderEndpoint(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodDelete, "/api/v1/orders/ORD-002", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, f.orders.Len())

	rec = f.do(http.MethodGet, "/api/v1/orders/ORD-002", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	keyboard, _ := f.products.Get("2")
	assert.Equal(t, 12, keyboard.Stock)
}

func TestSettingsEndpoints(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPatch, "/api/v1/settings", `{"tax_rate":15}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var s models.Settings
	decode(t, rec, &s)
	assert.Equal(t, "15", s.TaxRate.String())
	assert.Equal(t, "Ma Société", s.CompanyName)
	assert.Equal(t, "EUR", s.Currency)
	assert.True(t, s.EnableNotifications)
	assert.False(t, s.EmailAlerts)
}

func TestPreferencesEndpoints(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/v1/preferences", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p prefs.Preferences
	decode(t, rec, &p)
	assert.Equal(t, prefs.Defaults(), p)

	rec = f.do(http.MethodPost, "/api/v1/preferences/theme/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled map[string]string
	decode(t, rec, &toggled)
	assert.Equal(t, "dark", toggled["theme"])

	rec = f.do(http.MethodPut, "/api/v1/preferences", `{"language":"en"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &p)
	assert.Equal(t, prefs.Preferences{Theme: prefs.ThemeDark, Language: prefs.LanguageEnglish}, p)

	rec = f.do(http.MethodPut, "/api/v1/preferences", `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRejectedPreferencesAreNotStored(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPut, "/api/v1/preferences", `{"theme":"dark","language":"de"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp map[string]string
	decode(t, rec, &errResp)
	assert.Equal(t, "Invalid preference", errResp["error"])

	rec = f.do(http.MethodGet, "/api/v1/preferences", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p prefs.Preferences
	decode(t, rec, &p)
	assert.Equal(t, prefs.Defaults(), p)
}

func TestReportEndpoints(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/v1/reports/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var overview service.Overview
	decode(t, rec, &overview)
	require.Len(t, overview.Revenue, 2)
	assert.Equal(t, "2023-10-26", overview.Revenue[0].Date)
	assert.Len(t, overview.StatusDistribution, 2)

	rec = f.do(http.MethodGet, "/api/v1/reports/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dashboard service.Dashboard
	decode(t, rec, &dashboard)
	require.Len(t, dashboard.KPIs, 4)
	assert.Equal(t, report.KPITotalRevenue, dashboard.KPIs[0].Key)
	assert.Len(t, dashboard.Weekly, 7)
}
