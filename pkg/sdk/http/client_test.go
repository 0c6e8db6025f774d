package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDoRequestDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spot/orders" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("trader"); got != "0xme" {
			t.Errorf("trader param = %s", got)
		}
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("X-Test header = %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	var out struct {
		Status string `json:"status"`
	}
	resp, err := c.DoRequest(context.Background(), "GET", "/spot/orders", &RequestOptions{
		Headers: map[string]string{"X-Test": "yes"},
		Params:  map[string]any{"trader": "0xme", "limit": 50},
	}, &out)
	if err := CheckResponse(resp, err); err != nil {
		t.Fatalf("DoRequest() error: %v", err)
	}
	if out.Status != "ok" {
		t.Errorf("Status = %q, want ok", out.Status)
	}
}

func TestDoRequestPostsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["size"] != "1" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.DoRequest(context.Background(), "POST", "/spot/orders", &RequestOptions{
		Data: map[string]string{"size": "1"},
	}, nil)
	if err := CheckResponse(resp, err); err != nil {
		t.Fatalf("DoRequest() error: %v", err)
	}
}

func TestCheckResponseNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"size too small"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := CheckResponse(c.DoRequest(context.Background(), "GET", "/spot/orders", nil, nil))
	if err == nil {
		t.Fatal("non-2xx must become an error")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "size too small") {
		t.Errorf("error = %v, want status and body included", err)
	}
}

func TestUnsupportedMethod(t *testing.T) {
	c := NewClient("http://localhost")
	if _, err := c.DoRequest(context.Background(), "TRACE", "/", nil, nil); err == nil {
		t.Error("unsupported method must fail")
	}
}
