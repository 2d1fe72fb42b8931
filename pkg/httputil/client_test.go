package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HarshMaht02004/wacc-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWriter(io.Discard, "error")
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := New(testLogger())

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json, got %s", ct)
		}

		var body map[string]float64
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		if body["equityValue"] != 2000000000 {
			t.Errorf("Expected equityValue 2000000000, got %v", body["equityValue"])
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(testLogger())

	resp, err := client.PostJSON(context.Background(), server.URL, map[string]float64{
		"equityValue": 2000000000,
	})
	if err != nil {
		t.Fatalf("PostJSON() failed: %v", err)
	}
	resp.Body.Close()
}

func TestRetryOn5xx(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(testLogger()).WithRetry(3, 10*time.Millisecond)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	resp.Body.Close()

	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected eventual 200, got %d", resp.StatusCode)
	}
}

func TestDisableRetry(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(testLogger()).DisableRetry()

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	resp.Body.Close()

	if attempts != 1 {
		t.Errorf("Expected 1 attempt with retry disabled, got %d", attempts)
	}
}

func TestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewWithTimeout(testLogger(), 50*time.Millisecond).DisableRetry()

	_, err := client.Get(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected timeout error, got nil")
	}
}

func TestRateLimitWait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(testLogger()).DisableRetry().WithRateLimit(50, 1)

	start := time.Now()
	for i := 0; i < 3; i++ {
		resp, err := client.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		resp.Body.Close()
	}

	// Burst of 1 at 50 rps: the second and third calls wait ~20ms each.
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Expected limiter to throttle, elapsed %s", elapsed)
	}
}

func TestIsRetryableError(t *testing.T) {
	if !IsRetryableError(http.StatusInternalServerError) {
		t.Error("Expected 500 to be retryable")
	}
	if !IsRetryableError(http.StatusTooManyRequests) {
		t.Error("Expected 429 to be retryable")
	}
	if IsRetryableError(http.StatusBadRequest) {
		t.Error("Expected 400 to not be retryable")
	}
}

func TestPostForwardsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		if string(data) != "rd=0.05" {
			t.Errorf("Unexpected body: %s", data)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(testLogger())
	resp, err := client.Post(context.Background(), server.URL, "text/plain", bytes.NewBufferString("rd=0.05"))
	if err != nil {
		t.Fatalf("Post() failed: %v", err)
	}
	resp.Body.Close()
}
