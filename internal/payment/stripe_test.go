package payment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storefront/internal/checkout"
)

func newStripeServer(t *testing.T, status int, body string, got *url.Values) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" || r.Method != http.MethodPost {
			http.Error(w, `{"error":{"message":"unexpected route"}}`, http.StatusNotFound)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		if got != nil {
			*got, _ = url.ParseQuery(string(raw))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStripeGateway_CreateSession(t *testing.T) {
	var form url.Values
	srv := newStripeServer(t, http.StatusOK,
		`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`, &form)

	g := NewStripeGatewayWithURL("sk_test_x", srv.URL)
	redirect, err := g.CreateSession(context.Background(), checkout.SessionRequest{
		SuccessURL: "http://shop/success",
		CancelURL:  "http://shop/cart",
		LineItems: []checkout.LineItem{
			{ProductID: 7, Name: "Sample Watch", Currency: "inr", UnitAmount: 10000, Quantity: 2},
			{ProductID: 3, Name: "Cable", Currency: "inr", UnitAmount: 5000, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", redirect)

	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "card", form.Get("payment_method_types[0]"))
	assert.Equal(t, "http://shop/success", form.Get("success_url"))
	assert.Equal(t, "http://shop/cart", form.Get("cancel_url"))
	assert.Equal(t, "inr", form.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "Sample Watch", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "10000", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "2", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "5000", form.Get("line_items[1][price_data][unit_amount]"))
	assert.Equal(t, "1", form.Get("line_items[1][quantity]"))
}

func TestStripeGateway_ErrorMessageSurfaces(t *testing.T) {
	srv := newStripeServer(t, http.StatusBadRequest,
		`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`, nil)

	g := NewStripeGatewayWithURL("sk_bad", srv.URL)
	_, err := g.CreateSession(context.Background(), checkout.SessionRequest{
		LineItems: []checkout.LineItem{{Name: "x", Currency: "inr", UnitAmount: 100, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid API Key provided", err.Error())
}
