package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/sku/{sku}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	for _, code := range []string{"BAD-SKU", "ALSO-BAD"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/sku/"+code, nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/sku/{sku}", "400"))
	assert.Equal(t, 2.0, got)
}

func TestObserveQuoteCountsUnhealthy(t *testing.T) {
	m := New()

	m.ObserveQuote("retail", "standard", 265, false)
	m.ObserveQuote("wholesale", "standard", 205, true)
	m.ObserveQuote("wholesale", "standard", 45, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.quotes.WithLabelValues("wholesale", "standard")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.unhealthy))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.SKUMinted()
	m.Published("timeout")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "printgenie_skus_minted_total 1"))
	assert.True(t, strings.Contains(body, `printgenie_catalog_publishes_total{outcome="timeout"} 1`))
}
