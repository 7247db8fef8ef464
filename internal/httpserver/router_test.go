package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webgael/internal/domain"
	cartrepo "webgael/internal/repository/cart"
	productrepo "webgael/internal/repository/product"
	"webgael/internal/seed"
	cartsvc "webgael/internal/service/cart"
	"webgael/internal/service/checkout"
	"webgael/internal/service/contact"
	"webgael/internal/service/pricing"
	productsvc "webgael/internal/service/product"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testDeps() Deps {
	catalog := productrepo.NewMemory(seed.Products(time.Now()), nil)
	cart := cartsvc.New(cartrepo.NewMemory(nil), catalog, nil)
	return Deps{
		Products:     productsvc.New(catalog),
		Cart:         cart,
		Pricing:      pricing.NewEngine(),
		DesignVolume: decimal.NewFromInt(10),
		Checkout:     checkout.New(cart, 0, nil),
		Contact:      contact.New(0, nil),
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(nil, deps, []string{"*"})
	require.NoError(t, err)
	return router
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestBuildRouterRequiresServices(t *testing.T) {
	deps := testDeps()
	deps.Cart = nil
	_, err := buildRouter(nil, deps, nil)
	require.Error(t, err)
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t, testDeps())
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/healthz", nil).Code)

	rec := do(t, router, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "memory", decode[map[string]string](t, rec)["catalog"])

	deps := testDeps()
	deps.DB = stubPinger{err: errors.New("down")}
	rec = do(t, newTestRouter(t, deps), http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	deps.DB = stubPinger{}
	rec = do(t, newTestRouter(t, deps), http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductsEndpoints(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := do(t, router, http.MethodGet, "/api/products?sort=price_asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Products []productResponse `json:"products"`
		Count    int               `json:"count"`
	}](t, rec)
	require.Equal(t, 6, list.Count)
	assert.Equal(t, "2", list.Products[0].ID)
	assert.Equal(t, "8.50", list.Products[0].Price)

	rec = do(t, router, http.MethodGet, "/api/products?material=pla", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode[map[string]any](t, rec)["count"])

	rec = do(t, router, http.MethodGet, "/api/products?sort=random", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[productResponse](t, rec)
	assert.Equal(t, "12.99", p.Price)
	assert.Equal(t, "Soporte para auriculares", p.Name)

	rec = do(t, router, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartFlow(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := do(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": "1", "quantity": 2, "color": "Negro"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	added := decode[addItemResponse](t, rec)
	assert.Equal(t, "25.98", added.Cart.Total)
	assert.Equal(t, 2, added.Cart.Count)
	itemID := added.Item.ID

	rec = do(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": "1", "quantity": 1, "color": "Blanco"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[cartResponse](t, rec)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, "38.97", cart.Total)
	assert.Equal(t, 3, cart.Count)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "25.98", cart.Items[0].Subtotal)

	rec = do(t, router, http.MethodPatch, "/api/cart/items/"+itemID, map[string]any{"quantity": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decode[cartResponse](t, rec).Count)

	rec = do(t, router, http.MethodPatch, "/api/cart/items/"+itemID, map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartResponse](t, rec)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "12.99", cart.Total)

	rec = do(t, router, http.MethodPatch, "/api/cart/items/"+itemID, map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/cart/items/"+itemID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"removed": false}, decode[map[string]bool](t, rec))

	rec = do(t, router, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartResponse](t, rec)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0.00", cart.Total)
}

func TestCartValidation(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := do(t, router, http.MethodPost, "/api/cart/items", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": "1", "quantity": -2, "color": "Negro"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": "nope", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPatch, "/api/cart/items/x", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPricingEndpoints(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := do(t, router, http.MethodGet, "/api/pricing/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[struct {
		Materials    []materialResponse `json:"materials"`
		Finishes     []finishResponse   `json:"finishes"`
		Volume       string             `json:"volume"`
		LayerHeights []string           `json:"layerHeights"`
		Defaults     quoteResponse      `json:"defaults"`
	}](t, rec)
	assert.Len(t, opts.Materials, 4)
	assert.Len(t, opts.Finishes, 4)
	assert.Equal(t, "10", opts.Volume)
	assert.Equal(t, []string{"0.1", "0.2", "0.3"}, opts.LayerHeights)
	assert.Equal(t, "5.00", opts.Defaults.Price)
	assert.Equal(t, "2h", opts.Defaults.DisplayTime)

	rec = do(t, router, http.MethodPost, "/api/pricing/quote", map[string]any{"material": "pla"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	q := decode[quoteResponse](t, rec)
	assert.Equal(t, "5.00", q.Price)
	assert.Equal(t, "1.6", q.Hours)
	assert.Equal(t, "2h", q.DisplayTime)

	rec = do(t, router, http.MethodPost, "/api/pricing/quote", map[string]any{
		"material": "abs", "finish": "painted", "quantity": 2, "volume": "30", "infill": 50,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	q = decode[quoteResponse](t, rec)
	// 15 × 0.20 × 2 + 25 × 2
	assert.Equal(t, "56.00", q.Price)
	assert.Equal(t, "34h", q.DisplayTime)

	rec = do(t, router, http.MethodPost, "/api/pricing/quote", map[string]any{"material": "pla", "infill": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/pricing/quote", map[string]any{"material": "madera"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteDefaultsToEngineFirstFinish(t *testing.T) {
	finishes := pricing.DefaultFinishes()
	painted, ok := lo.Find(finishes, func(f domain.Finish) bool { return f.ID == "painted" })
	require.True(t, ok)
	deps := testDeps()
	deps.Pricing = pricing.NewEngineWith(pricing.DefaultMaterials(), []domain.Finish{painted, finishes[0]})
	router := newTestRouter(t, deps)

	rec := do(t, router, http.MethodPost, "/api/pricing/quote", map[string]any{"material": "pla"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, money(painted.Price), decode[quoteResponse](t, rec).FinishCost)

	rec = do(t, router, http.MethodGet, "/api/pricing/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[struct {
		Defaults quoteResponse `json:"defaults"`
	}](t, rec)
	assert.Equal(t, money(painted.Price), opts.Defaults.FinishCost)
}

func TestCheckoutEndpoint(t *testing.T) {
	router := newTestRouter(t, testDeps())
	customer := map[string]string{
		"name": "Lucía Gómez", "email": "lucia@example.com", "phone": "600000000",
		"address": "Calle Mayor 1", "city": "Madrid", "postalCode": "28013",
	}

	rec := do(t, router, http.MethodPost, "/api/checkout", customer)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty cart")

	rec = do(t, router, http.MethodPost, "/api/cart/items", map[string]any{"productId": "5", "quantity": 1, "color": "Gris Piedra"})
	require.Equal(t, http.StatusCreated, rec.Code)

	bad := map[string]string{"name": "Lucía"}
	rec = do(t, router, http.MethodPost, "/api/checkout", bad)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decode[errorResponse](t, rec)
	assert.Contains(t, errBody.Fields, "email")
	assert.Contains(t, errBody.Fields, "postalCode")

	rec = do(t, router, http.MethodPost, "/api/checkout", customer)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[orderResponse](t, rec)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "22.50", order.Total)
	assert.Equal(t, 1, order.Count)

	rec = do(t, router, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, 0, decode[cartResponse](t, rec).Count)
}

func TestContactEndpoints(t *testing.T) {
	router := newTestRouter(t, testDeps())

	rec := do(t, router, http.MethodGet, "/api/contact/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[contact.OptionLists](t, rec).ProjectTypes, 6)

	rec = do(t, router, http.MethodPost, "/api/contact", map[string]string{
		"name": "Pablo", "email": "pablo@example.com", "phone": "611111111",
		"subject": "Repuesto", "message": "Necesito un engranaje de repuesto",
		"projectType": "Repuesto",
	})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[contact.Submission](t, rec).ID)

	rec = do(t, router, http.MethodPost, "/api/contact", map[string]string{"name": "Pablo", "message": "corto"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decode[errorResponse](t, rec).Fields
	assert.Equal(t, "El mensaje debe tener al menos 10 caracteres", fields["message"])
}

func TestWriteErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrValidation, http.StatusBadRequest},
		{domain.FieldErrors{"name": "x"}, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		writeError(c, tt.err)
		assert.Equal(t, tt.code, rec.Code, tt.err.Error())
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(nil, testDeps(), []string{"https://webgael.es"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", "https://webgael.es")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://webgael.es", rec.Header().Get("Access-Control-Allow-Origin"))
}
