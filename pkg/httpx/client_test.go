package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestGetJSONDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit query param = %q, want %q", got, "5")
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Errorf("Authorization header = %q, want %q", got, "Bearer token123")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 42}`))
	}))
	defer server.Close()

	client := NewClient(nil)

	var result struct {
		Total int `json:"total"`
	}
	params := url.Values{"limit": []string{"5"}}
	headers := map[string]string{"Authorization": "Bearer token123"}

	if err := client.GetJSON(context.Background(), server.URL, params, headers, &result); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if result.Total != 42 {
		t.Fatalf("result.Total = %d, want 42", result.Total)
	}
}

func TestGetBytesRetriesOnServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(&ClientConfig{
		RetryPolicy: &RetryPolicy{
			MaxAttempts:       3,
			InitialBackoff:    time.Millisecond,
			MaxBackoff:        10 * time.Millisecond,
			BackoffMultiplier: 2.0,
			RetryableStatuses: []int{http.StatusServiceUnavailable},
		},
	})

	body, err := client.GetBytes(context.Background(), server.URL, nil, nil)
	if err != nil {
		t.Fatalf("GetBytes() error = %v", err)
	}
	if string(body) != "ok" {
		t.Fatalf("body = %q, want %q", body, "ok")
	}
	if calls != 2 {
		t.Fatalf("server calls = %d, want 2", calls)
	}
}

func TestGetBytesDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(nil)

	_, err := client.GetBytes(context.Background(), server.URL, nil, nil)
	if err == nil {
		t.Fatal("GetBytes() error = nil, want error")
	}
	if calls != 1 {
		t.Fatalf("server calls = %d, want 1", calls)
	}
}
