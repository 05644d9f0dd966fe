package requests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := NewClient(DEFAULT_TIMEOUT, 0)
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	if string(body) != `{"ok": true}` {
		t.Errorf("Expected '%v' but got '%v'", `{"ok": true}`, string(body))
	}
}

func TestGetErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(DEFAULT_TIMEOUT, 0)
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 502 response")
	}
}

func TestGetCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient(DEFAULT_TIMEOUT, 0)
	if _, err := c.Get(ctx, srv.URL); err == nil {
		t.Error("expected error once context expires")
	}
}

func TestGetResponseStatus(t *testing.T) {
	if status, ok := GetResponseStatus(200); !ok || status != RESPONSE_STATUS_OK {
		t.Errorf("Expected '%v' but got '%v'", RESPONSE_STATUS_OK, status)
	}

	if status, ok := GetResponseStatus(503); ok || status != RESPONSE_STATUS_DOWN {
		t.Errorf("Expected '%v' but got '%v'", RESPONSE_STATUS_DOWN, status)
	}

	if status, ok := GetResponseStatus(302); ok || status != RESPONSE_STATUS_PARTIAL {
		t.Errorf("Expected '%v' but got '%v'", RESPONSE_STATUS_PARTIAL, status)
	}
}
