package subscriptiontracker_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subscriptiontracker "github.com/magabrotheeeer/subscription-tracker/internal/app/subscription-tracker"
	"github.com/magabrotheeeer/subscription-tracker/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Env:        "test",
		HTTPServer: config.HTTPServer{AddressHTTP: "localhost:0", TimeoutHTTP: 5 * time.Second},
		JWTToken:   config.JWTToken{JWTSecretKey: "test-secret", TokenTTL: 30 * time.Minute},
		CORS:       config.CORS{AllowedOrigins: []string{"http://localhost:3000"}, AllowCredentials: true},
	}
	app, err := subscriptiontracker.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, data
}

func (c *client) login(email, password string) *http.Response {
	c.t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	resp, err := http.Post(c.base+"/token", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		var tok struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&tok))
		require.Equal(c.t, "bearer", tok.TokenType)
		c.token = tok.AccessToken
	}
	return resp
}

func registerAndLogin(t *testing.T, base, email, password string) *client {
	t.Helper()
	c := &client{t: t, base: base}
	resp, _ := c.do(http.MethodPost, "/register", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, http.StatusOK, c.login(email, password).StatusCode)
	return c
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL}

	resp, body := c.do(http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"Subscription Tracker API is running"}`, string(body))
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL}

	resp, body := c.do(http.MethodPost, "/register", map[string]string{"email": "a@x.com", "password": "pw1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user map[string]any
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, true, user["is_active"])
	assert.NotContains(t, user, "password_hash")

	resp, _ = c.do(http.MethodPost, "/register", map[string]string{"email": "a@x.com", "password": "pw2"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = c.login("a@x.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	resp = c.login("nobody@x.com", "pw1")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	require.Equal(t, http.StatusOK, c.login("a@x.com", "pw1").StatusCode)
	resp, body = c.do(http.MethodGet, "/users/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]any
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, user["id"], me["id"])
}

func TestUnauthorizedRequests(t *testing.T) {
	srv := newTestServer(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		c := &client{t: t, base: srv.URL, token: token}
		resp, body := c.do(http.MethodGet, "/subscriptions", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"status":"Error","error":"could not validate credentials"}`, string(body))
	}
}

func TestSubscriptionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	c := registerAndLogin(t, srv.URL, "a@x.com", "pw1")

	resp, body := c.do(http.MethodGet, "/users/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]any
	require.NoError(t, json.Unmarshal(body, &me))

	resp, body = c.do(http.MethodPost, "/subscriptions", map[string]any{
		"name": "Netflix", "price": 15.99, "billing_cycle": "monthly", "start_date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, me["id"], created["owner_id"])
	assert.Equal(t, "USD", created["currency"])
	id := created["id"].(string)

	resp, body = c.do(http.MethodGet, "/subscriptions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])

	resp, body = c.do(http.MethodPut, "/subscriptions/"+id, map[string]any{
		"name": "Hulu", "price": 7.99, "currency": "EUR", "billing_cycle": "yearly", "start_date": "2024-02-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var replaced map[string]any
	require.NoError(t, json.Unmarshal(body, &replaced))
	assert.Equal(t, id, replaced["id"])
	assert.Equal(t, me["id"], replaced["owner_id"])
	assert.Equal(t, "Hulu", replaced["name"])

	resp, body = c.do(http.MethodGet, "/subscriptions/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, replaced, fetched)

	resp, _ = c.do(http.MethodGet, "/subscriptions/summary", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = c.do(http.MethodDelete, "/subscriptions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = c.do(http.MethodDelete, "/subscriptions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = c.do(http.MethodGet, "/subscriptions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = c.do(http.MethodGet, "/subscriptions/not-a-uuid", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestOwnershipIsolation(t *testing.T) {
	srv := newTestServer(t)
	alice := registerAndLogin(t, srv.URL, "alice@x.com", "pw1")
	bob := registerAndLogin(t, srv.URL, "bob@x.com", "pw2")

	resp, body := alice.do(http.MethodPost, "/subscriptions", map[string]any{
		"name": "Spotify", "price": 9.99, "billing_cycle": "monthly", "start_date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	id := created["id"].(string)

	resp, _ = bob.do(http.MethodGet, "/subscriptions/"+id, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = bob.do(http.MethodPut, "/subscriptions/"+id, map[string]any{
		"name": "Stolen", "price": 0, "billing_cycle": "monthly", "start_date": "2024-01-01",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = bob.do(http.MethodDelete, "/subscriptions/"+id, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = bob.do(http.MethodGet, "/subscriptions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, body = alice.do(http.MethodGet, "/subscriptions/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, "Spotify", fetched["name"])
}

func TestTrailingSlashPaths(t *testing.T) {
	srv := newTestServer(t)
	c := registerAndLogin(t, srv.URL, "slash@x.com", "pw1")

	resp, body := c.do(http.MethodGet, "/users/me/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"email":"slash@x.com"`)

	resp, body = c.do(http.MethodPost, "/subscriptions/", map[string]any{
		"name": "Netflix", "price": 15.99, "billing_cycle": "monthly", "start_date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))

	resp, body = c.do(http.MethodGet, "/subscriptions/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created["id"], list[0]["id"])

	resp, _ = c.do(http.MethodGet, "/subscriptions/"+created["id"].(string)+"/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoutesUseErrorEnvelope(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL}

	resp, body := c.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"status":"Error","error":"not found"}`, string(body))

	resp, body = c.do(http.MethodDelete, "/register", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.JSONEq(t, `{"status":"Error","error":"method not allowed"}`, string(body))
}

func TestDocsRedirect(t *testing.T) {
	srv := newTestServer(t)
	noRedirect := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}

	for _, path := range []string{"/docs", "/docs/"} {
		resp, err := noRedirect.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode, path)
		assert.Equal(t, "/docs/index.html", resp.Header.Get("Location"), path)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/subscriptions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv.URL, "a@x.com", "pw1")

	c := &client{t: t, base: srv.URL}
	resp, body := c.do(http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "subscription_tracker_users 1")
	assert.Contains(t, string(body), "subscription_tracker_subscriptions 0")
	assert.Contains(t, string(body), `subscription_tracker_http_requests_total{method="POST",route="/register",status="200"} 1`)
}
