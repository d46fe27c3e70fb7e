package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectors_Counters(t *testing.T) {
	c := New()

	c.WalletOperation("create", true)
	c.WalletOperation("create", true)
	c.WalletOperation("sign", false)
	c.Conversion("testnet", false)
	c.Estimate("testnet", false)
	c.Lockout()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.walletOperations.WithLabelValues("create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.walletOperations.WithLabelValues("sign", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.conversions.WithLabelValues("testnet", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.estimates.WithLabelValues("testnet", "no_path")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.lockouts))
}

func TestCollectors_RequestStarted(t *testing.T) {
	c := New()

	done := c.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.activeConnections))

	done(http.MethodPost, "/api/wallets", http.StatusCreated)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.activeConnections))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("POST", "/api/wallets", "201")))
}

func TestCollectors_Handler(t *testing.T) {
	c := New()
	c.WalletOperation("recover", true)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `invisible_wallet_wallet_operations_total{operation="recover",result="success"} 1`))
	assert.Contains(t, body, "go_goroutines")
}

func TestCollectors_NilIsNoop(t *testing.T) {
	var c *Collectors

	assert.NotPanics(t, func() {
		c.WalletOperation("create", true)
		c.Conversion("testnet", true)
		c.Estimate("testnet", true)
		c.Lockout()
		c.RequestStarted()("GET", "/", 200)
		assert.Nil(t, c.Registry())
	})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
