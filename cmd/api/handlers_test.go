package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/pkg/logger"
	"orderdesk/pkg/shop"
	"orderdesk/pkg/shop/memory"
)

func setup(t *testing.T) {
	t.Helper()
	repo = memory.New()
	log = logger.New(io.Discard, logger.LevelError, "test", nil)
	now = time.Now
}

func do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	return rec
}

func decodeAs[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestItemRoundTrip(t *testing.T) {
	setup(t)

	rec := do(t, http.MethodPost, "/items", itemRequest{Name: "Widget", Price: 9.99})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeAs[shop.Item](t, rec)
	require.NotZero(t, created.ID)

	rec = do(t, http.MethodGet, "/items/"+shop.FormatID(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeAs[shop.Item](t, rec)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 9.99, got.Price)

	// Update overwrites fully; the name survives because the caller
	// resends it.
	rec = do(t, http.MethodPut, "/items/"+shop.FormatID(created.ID), itemRequest{Name: "Widget", Price: 12.50})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeAs[shop.Item](t, rec)
	assert.Equal(t, 12.50, updated.Price)
	assert.Equal(t, "Widget", updated.Name)

	rec = do(t, http.MethodGet, "/items/"+shop.FormatID(created.ID), nil)
	got = decodeAs[shop.Item](t, rec)
	assert.Equal(t, 12.50, got.Price)

	rec = do(t, http.MethodDelete, "/items/"+shop.FormatID(created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Item 1 deleted", decodeAs[messageResponse](t, rec).Message)

	rec = do(t, http.MethodGet, "/items/"+shop.FormatID(created.ID), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeAs[errorResponse](t, rec).Error.Kind)

	// Ids that never existed behave the same on GET and DELETE.
	rec = do(t, http.MethodGet, "/items/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, http.MethodDelete, "/items/999", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateMissingItemIsNotFound(t *testing.T) {
	setup(t)

	rec := do(t, http.MethodPut, "/items/42", itemRequest{Name: "Ghost", Price: 1})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeAs[errorResponse](t, rec).Error.Kind)
}

func TestCustomerReferentialGuard(t *testing.T) {
	setup(t)

	rec := do(t, http.MethodPost, "/customer", customerRequest{Name: "Ada", Phone: "555-0101"})
	require.Equal(t, http.StatusOK, rec.Code)
	c := decodeAs[shop.Customer](t, rec)

	rec = do(t, http.MethodPost, "/orders/0", orderRequest{CustomerID: c.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	o := decodeAs[shop.Order](t, rec)

	rec = do(t, http.MethodDelete, "/customers/"+shop.FormatID(c.ID), nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeAs[errorResponse](t, rec).Error.Kind)

	rec = do(t, http.MethodDelete, "/orders/"+shop.FormatID(o.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, http.MethodDelete, "/customers/"+shop.FormatID(c.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Customer deleted successfully", decodeAs[messageResponse](t, rec).Message)
}

func TestOrderTimestampsAreServerAssigned(t *testing.T) {
	setup(t)
	now = func() time.Time { return time.Unix(5000, 0) }

	rec := do(t, http.MethodPost, "/customer", customerRequest{Name: "Ada", Phone: "555-0101"})
	c := decodeAs[shop.Customer](t, rec)

	// Client-supplied id and timestamp are ignored on create.
	rec = do(t, http.MethodPost, "/orders/98", map[string]any{
		"id":          99,
		"customer_id": c.ID,
		"notes":       "rush",
		"timestamp":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	o := decodeAs[shop.Order](t, rec)
	assert.EqualValues(t, 1, o.ID)
	assert.EqualValues(t, 5000, o.Timestamp)
	assert.Equal(t, "rush", o.Notes)

	now = func() time.Time { return time.Unix(6000, 0) }
	rec = do(t, http.MethodPut, "/orders/"+shop.FormatID(o.ID), orderRequest{CustomerID: c.ID, Notes: "rush"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 6000, decodeAs[shop.Order](t, rec).Timestamp)

	rec = do(t, http.MethodGet, "/orders/"+shop.FormatID(o.ID), nil)
	assert.EqualValues(t, 6000, decodeAs[shop.Order](t, rec).Timestamp)
}

func TestCreateOrderForMissingCustomer(t *testing.T) {
	setup(t)

	rec := do(t, http.MethodPost, "/orders/0", orderRequest{CustomerID: 77})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeAs[errorResponse](t, rec).Error.Kind)
}

func TestCustomerPhoneAcceptsNumbers(t *testing.T) {
	setup(t)

	rec := do(t, http.MethodPost, "/customer", map[string]any{"name": "Bob", "phone": 5550202})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, "5550202", decodeAs[shop.Customer](t, rec).Phone)
}

func TestOrderItemEndpoints(t *testing.T) {
	setup(t)

	c := decodeAs[shop.Customer](t, do(t, http.MethodPost, "/customer", customerRequest{Name: "Ada", Phone: "555-0101"}))
	o := decodeAs[shop.Order](t, do(t, http.MethodPost, "/orders/0", orderRequest{CustomerID: c.ID}))
	it := decodeAs[shop.Item](t, do(t, http.MethodPost, "/items", itemRequest{Name: "Latte", Price: 4.50}))

	orderPath := "/orders/" + shop.FormatID(o.ID) + "/items"

	// Two units of the same item are two join rows.
	rec := do(t, http.MethodPost, orderPath, orderItemRequest{ItemID: it.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, http.MethodPost, orderPath, orderItemRequest{ItemID: it.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, http.MethodGet, orderPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeAs[[]shop.Item](t, rec), 2)

	rec = do(t, http.MethodDelete, orderPath+"/"+shop.FormatID(it.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeAs[[]shop.Item](t, do(t, http.MethodGet, orderPath, nil)), 1)

	rec = do(t, http.MethodPost, orderPath, orderItemRequest{ItemID: 999})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, http.MethodGet, "/orders/999/items", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRootRedirectsToDocs(t *testing.T) {
	setup(t)

	rec := do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/swagger/index.html", rec.Header().Get("Location"))
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	setup(t)

	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeAs[errorResponse](t, rec).Error.Kind)
}
