package middlewarectx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
)

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middlewarectx.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/subscriptions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/subscriptions/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	expected := `
# HELP subscription_tracker_http_requests_total Total number of HTTP requests by method, route and status.
# TYPE subscription_tracker_http_requests_total counter
subscription_tracker_http_requests_total{method="GET",route="/subscriptions/{id}",status="404"} 3
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "subscription_tracker_http_requests_total")
	assert.NoError(t, err)
}
