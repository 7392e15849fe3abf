package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"lectern/internal/logging"
	"lectern/internal/notifications"
	"lectern/internal/objects"
	"lectern/internal/services"
	"lectern/internal/testsupport"
)

func testObject() *objects.RepositoryObject {
	return &objects.RepositoryObject{
		Druid:      "bc123df4567",
		SourceID:   "sul:12345",
		ObjectType: "book",
		Label:      "Gaudy night",
	}
}

func TestGoobiPayload(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
	}))
	defer server.Close()

	notifier := notifications.NewGoobiNotifier(
		testsupport.NewConfig(t, testsupport.WithGoobi(server.URL, 1)),
		logging.NewNop(),
	)
	if err := notifier.ObjectRegistered(context.Background(), testObject()); err != nil {
		t.Fatalf("ObjectRegistered: %v", err)
	}

	for _, fragment := range []string{
		"<stanfordCreationRequest>",
		"<objectId>druid:bc123df4567</objectId>",
		"<sourceID>sul:12345</sourceID>",
		"<objectLabel>Gaudy night</objectLabel>",
	} {
		if !strings.Contains(body, fragment) {
			t.Errorf("payload missing %s:\n%s", fragment, body)
		}
	}
}

func TestGoobiRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}))
	defer server.Close()

	notifier := notifications.NewGoobiNotifier(
		testsupport.NewConfig(t, testsupport.WithGoobi(server.URL, 3)),
		logging.NewNop(),
	)
	if err := notifier.ObjectRegistered(context.Background(), testObject()); err != nil {
		t.Fatalf("ObjectRegistered: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
}

func TestGoobiEscalatesAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	notifier := notifications.NewGoobiNotifier(
		testsupport.NewConfig(t, testsupport.WithGoobi(server.URL, 2)),
		logging.NewNop(),
	)
	err := notifier.ObjectRegistered(context.Background(), testObject())
	if !errors.Is(err, services.ErrDependency) {
		t.Fatalf("err = %v, want dependency failure", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
}

func TestGoobiDisabledIsNoop(t *testing.T) {
	notifier := notifications.NewGoobiNotifier(testsupport.NewConfig(t), logging.NewNop())
	if err := notifier.ObjectRegistered(context.Background(), testObject()); err != nil {
		t.Fatalf("noop ObjectRegistered: %v", err)
	}
}
