package services_test

import (
	"errors"
	"net/http"
	"testing"

	"lectern/internal/services"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := errors.New("row locked")
	err := services.Wrap(services.ErrPreconditionFailed, "objects", "close", "stale lock token", cause)

	if !errors.Is(err, services.ErrPreconditionFailed) {
		t.Fatalf("expected precondition marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	want := "precondition failed: objects: close: stale lock token: row locked"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestWrapDefaultsToDependencyMarker(t *testing.T) {
	err := services.Wrap(nil, "workflows", "accessioning", "", nil)
	if !errors.Is(err, services.ErrDependency) {
		t.Fatalf("expected dependency marker, got %v", err)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", services.Wrap(services.ErrNotFound, "objects", "get", "", nil), http.StatusNotFound},
		{"conflict", services.Wrap(services.ErrConflict, "versioning", "open", "already open", nil), http.StatusConflict},
		{"precondition", services.ErrPreconditionFailed, http.StatusPreconditionFailed},
		{"validation", services.ErrValidation, http.StatusUnprocessableEntity},
		{"dependency", services.ErrDependency, http.StatusBadGateway},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.HTTPStatus(tc.err); got != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, got)
			}
		})
	}
}
