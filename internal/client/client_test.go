package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lectern/internal/client"
	"lectern/internal/services"
)

func TestRegisterReturnsLockToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/objects" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("authorization header = %q", auth)
		}
		w.Header().Set("ETag", `"token-1"`)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"druid":"bc123df4567","label":"Test","headVersion":1}`))
	}))
	defer server.Close()

	c := client.New(server.URL, "secret")
	obj, token, err := c.Register(context.Background(), client.Registration{
		Druid: "bc123df4567",
		Label: "Test",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if obj.Druid != "bc123df4567" || token != "token-1" {
		t.Fatalf("obj = %+v, token = %q", obj, token)
	}
}

func TestIfMatchHeaderCarriesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("If-Match"); got != `"abc"` {
			t.Errorf("If-Match = %q", got)
		}
		w.Header().Set("ETag", `"def"`)
		_, _ = w.Write([]byte(`{"druid":"bc123df4567","version":1,"open":false}`))
	}))
	defer server.Close()

	c := client.New(server.URL, "")
	_, token, err := c.CloseVersion(context.Background(), "druid:bc123df4567", "abc")
	if err != nil {
		t.Fatalf("CloseVersion: %v", err)
	}
	if token != "def" {
		t.Fatalf("token = %q", token)
	}
}

func TestErrorStatusMapsToMarker(t *testing.T) {
	tests := []struct {
		name   string
		status int
		marker error
	}{
		{"not found", http.StatusNotFound, services.ErrNotFound},
		{"conflict", http.StatusConflict, services.ErrConflict},
		{"precondition", http.StatusPreconditionFailed, services.ErrPreconditionFailed},
		{"validation", http.StatusUnprocessableEntity, services.ErrValidation},
		{"dependency", http.StatusBadGateway, services.ErrDependency},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"error":"boom"}`))
			}))
			defer server.Close()

			c := client.New(server.URL, "")
			_, _, err := c.Object(context.Background(), "bc123df4567")
			if !errors.Is(err, tc.marker) {
				t.Fatalf("err = %v, want %v", err, tc.marker)
			}
		})
	}
}
