package lib

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testClient(t *testing.T, handler http.Handler) *PayPalClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &PayPalClient{
		APIBase:      srv.URL,
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		HTTPClient:   srv.Client(),
	}
}

func TestAccessTokenCaching(t *testing.T) {
	var tokenCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "test-client", user)
		assert.Equal(t, "test-secret", pass)
		n := tokenCalls.Add(1)
		fmt.Fprintf(w, `{"access_token":"token-%d","expires_in":3600}`, n)
	})
	c := testClient(t, mux)

	tok1, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	tok2, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tok1, tok2)
	assert.Equal(t, int64(1), tokenCalls.Load(), "second call must hit the cache")

	c.expiresAt = time.Now().Add(-time.Second)
	tok3, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, tok1, tok3, "expired token must be refreshed")
}

func TestAccessTokenMissingCredentials(t *testing.T) {
	c := &PayPalClient{APIBase: "http://unused", HTTPClient: http.DefaultClient}
	_, err := c.AccessToken(context.Background())
	assert.Error(t, err)

	c = &PayPalClient{APIBase: "http://unused", ClientID: "same", ClientSecret: "same", HTTPClient: http.DefaultClient}
	_, err = c.AccessToken(context.Background())
	assert.Error(t, err)
}

func TestCreateOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"test-token","expires_in":3600}`)
	})
	var seenBody string
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seenBody = string(raw)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"ORDER-123","status":"CREATED"}`)
	})
	c := testClient(t, mux)

	orderID, err := c.CreateOrder(context.Background(), 101, "Donation - Tier 1 | Anita Rao")
	require.NoError(t, err)
	assert.Equal(t, "ORDER-123", orderID)

	assert.Equal(t, "CAPTURE", gjson.Get(seenBody, "intent").String())
	assert.Equal(t, "EUR", gjson.Get(seenBody, "purchase_units.0.amount.currency_code").String())
	assert.Equal(t, "101.00", gjson.Get(seenBody, "purchase_units.0.amount.value").String())
	assert.Equal(t, "Donation - Tier 1 | Anita Rao", gjson.Get(seenBody, "purchase_units.0.description").String())
	assert.Equal(t, "de-DE", gjson.Get(seenBody, "application_context.locale").String())
	assert.Equal(t, "NO_SHIPPING", gjson.Get(seenBody, "application_context.shipping_preference").String())
}

func TestCreateOrderGatewayError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"test-token","expires_in":3600}`)
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"name":"UNPROCESSABLE_ENTITY"}`)
	})
	c := testClient(t, mux)

	_, err := c.CreateOrder(context.Background(), 101, "Donation")
	assert.Error(t, err)
}

func TestCaptureOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"test-token","expires_in":3600}`)
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/capture"))
		fmt.Fprint(w, `{"status":"COMPLETED","purchase_units":[{"payments":{"captures":[{"id":"TXN-9"}]}}]}`)
	})
	c := testClient(t, mux)

	res, err := c.CaptureOrder(context.Background(), "ORDER-123")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "TXN-9", res.TransactionID)
}

func TestCaptureOrderNotCompleted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"test-token","expires_in":3600}`)
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"PENDING"}`)
	})
	c := testClient(t, mux)

	res, err := c.CaptureOrder(context.Background(), "ORDER-123")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "PENDING")
}

func TestCaptureOrderDeclined(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"test-token","expires_in":3600}`)
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed."}`)
	})
	c := testClient(t, mux)

	res, err := c.CaptureOrder(context.Background(), "ORDER-123")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "The requested action could not be performed.", res.Error)
}
