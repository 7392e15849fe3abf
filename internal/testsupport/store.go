package testsupport

import (
	"context"
	"testing"

	"lectern/internal/config"
	"lectern/internal/objects"
)

// MustOpenStore opens an objects.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *objects.Store {
	t.Helper()

	store, err := objects.Open(cfg)
	if err != nil {
		t.Fatalf("objects.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RegisterObject creates a repository object for tests using the provided
// store.
func RegisterObject(t testing.TB, store *objects.Store, druid string) *objects.RepositoryObject {
	t.Helper()

	obj, err := store.CreateObject(context.Background(), objects.Registration{
		Druid:      druid,
		SourceID:   "test:" + druid,
		ObjectType: "object",
		Label:      "Test object " + druid,
	})
	if err != nil {
		t.Fatalf("store.CreateObject: %v", err)
	}
	return obj
}
