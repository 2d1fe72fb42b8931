package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarshMaht02004/wacc-backend/internal/api"
	"github.com/HarshMaht02004/wacc-backend/internal/api/handlers"
	"github.com/HarshMaht02004/wacc-backend/internal/wacc"
	"github.com/HarshMaht02004/wacc-backend/pkg/config"
	"github.com/HarshMaht02004/wacc-backend/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Port: "0",
		Env:  "development",
		RateLimit: config.RateLimitConfig{
			Enabled: false,
		},
		Display: config.DisplayConfig{
			Locale:        "en-IN",
			CurrencyScale: 1e7,
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	log := logger.NewWriter(io.Discard, "error")
	h := handlers.NewCalcHandler(cfg, log)
	router := api.NewRouter(h, cfg, log)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postWacc(t *testing.T, server *httptest.Server, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/v1/wacc", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func ptr(v float64) *float64 { return &v }

func TestCompute_OK(t *testing.T) {
	server := newTestServer(t, testConfig())

	resp := postWacc(t, server, wacc.Input{
		EquityValue:  2e9,
		DebtValue:    5e8,
		CostOfEquity: ptr(0.12),
		CostOfDebt:   ptr(0.05),
		TaxRate:      ptr(0.25),
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out handlers.ComputeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.True(t, out.Success)
	assert.InDelta(t, 0.1035, out.Data.WACC, 1e-9)
	assert.InDelta(t, 0.8, out.Data.WeightEquity, 1e-9)
	assert.InDelta(t, 0.2, out.Data.WeightDebt, 1e-9)
}

func TestCompute_MissingInputs(t *testing.T) {
	server := newTestServer(t, testConfig())

	// No Re and no CAPM triple
	resp := postWacc(t, server, wacc.Input{
		EquityValue: 100,
		DebtValue:   50,
		CostOfDebt:  ptr(0.05),
		TaxRate:     ptr(0.25),
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, wacc.KindMissingInputs, out.Kind)
	assert.Contains(t, out.Error, "cost of equity")
}

func TestCompute_DegenerateCapital(t *testing.T) {
	server := newTestServer(t, testConfig())

	resp := postWacc(t, server, wacc.Input{
		CostOfEquity: ptr(0.12),
		CostOfDebt:   ptr(0.05),
		TaxRate:      ptr(0.25),
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, wacc.KindDegenerateCapital, out.Kind)
}

func TestCompute_MalformedBody(t *testing.T) {
	server := newTestServer(t, testConfig())

	resp, err := http.Post(server.URL+"/api/v1/wacc", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, testConfig())

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out["status"])
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 0.001,
		Burst:             1,
	}
	server := newTestServer(t, cfg)

	first, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}

func dialLive(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/wacc/live"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestLive_RecomputePerMessage(t *testing.T) {
	server := newTestServer(t, testConfig())
	conn := dialLive(t, server)

	require.NoError(t, conn.WriteJSON(wacc.FormInput{
		EquityValue:  "200",
		DebtValue:    "50",
		CostOfEquity: "12",
		CostOfDebt:   "5",
		TaxRate:      "25",
	}))

	var msg handlers.LiveMessage
	require.NoError(t, conn.ReadJSON(&msg))

	require.True(t, msg.Success)
	require.NotNil(t, msg.Data)
	assert.InDelta(t, 0.1035, msg.Data.WACC, 1e-9)

	// A later snapshot supersedes the first result.
	require.NoError(t, conn.WriteJSON(wacc.FormInput{
		EquityValue:  "100",
		DebtValue:    "0",
		CostOfEquity: "12",
		CostOfDebt:   "5",
		TaxRate:      "25",
	}))

	require.NoError(t, conn.ReadJSON(&msg))
	require.True(t, msg.Success)
	assert.InDelta(t, 0.12, msg.Data.WACC, 1e-9)
}

func TestLive_StructuredErrors(t *testing.T) {
	server := newTestServer(t, testConfig())
	conn := dialLive(t, server)

	// Non-numeric equity
	require.NoError(t, conn.WriteJSON(wacc.FormInput{
		EquityValue: "lots",
	}))

	var msg handlers.LiveMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.False(t, msg.Success)
	assert.Equal(t, wacc.KindValidation, msg.Kind)

	// Incomplete form: session stays open, errors are per-message.
	require.NoError(t, conn.WriteJSON(wacc.FormInput{
		EquityValue: "100",
	}))

	require.NoError(t, conn.ReadJSON(&msg))
	assert.False(t, msg.Success)
	assert.Equal(t, wacc.KindMissingInputs, msg.Kind)
}
