package versioning_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"lectern/internal/logging"
	"lectern/internal/objects"
	"lectern/internal/services"
	"lectern/internal/testsupport"
	"lectern/internal/versioning"
	"lectern/internal/workflows"
)

type stubWorkflows struct {
	accessioning bool
	err          error
}

func (s stubWorkflows) AccessioningInProgress(context.Context, string) (bool, error) {
	return s.accessioning, s.err
}

func (s stubWorkflows) ReleaseTags(context.Context, string) ([]workflows.ReleaseTag, error) {
	return nil, nil
}

func newService(t *testing.T, wf workflows.Service) (*versioning.Service, *objects.Store) {
	t.Helper()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	return versioning.NewService(store, wf, logging.NewNop()), store
}

func TestOpenConflictsWhileDraftExists(t *testing.T) {
	svc, store := newService(t, stubWorkflows{})
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	_, _, err := svc.Open(context.Background(), obj.Druid, "", versioning.OpenParams{})
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("err = %v, want conflict while version 1 is open", err)
	}
}

func TestOpenAfterClose(t *testing.T) {
	svc, store := newService(t, stubWorkflows{})
	ctx := context.Background()
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	token, err := svc.Close(ctx, obj.Druid, obj.LockToken)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}

	v, _, err := svc.Open(ctx, obj.Druid, token, versioning.OpenParams{Description: "corrections"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if v.Version != 2 {
		t.Fatalf("version = %d, want 2", v.Version)
	}
	if v.Description != "corrections" {
		t.Fatalf("description = %q", v.Description)
	}
}

func TestConcurrentOpensAdmitOneDraft(t *testing.T) {
	svc, store := newService(t, stubWorkflows{})
	ctx := context.Background()
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	if _, err := svc.Close(ctx, obj.Druid, obj.LockToken); err != nil {
		t.Fatalf("Close: %v", err)
	}

	const callers = 6
	results := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Open(ctx, obj.Druid, "", versioning.OpenParams{})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, services.ErrConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("got %d successful opens, want exactly 1", wins)
	}

	versions, err := store.ListVersions(ctx, obj.Druid)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	open := 0
	for _, v := range versions {
		if v.Open() {
			open++
		}
	}
	if len(versions) != 2 || open != 1 {
		t.Fatalf("got %d versions with %d open, want 2 with 1 open", len(versions), open)
	}
}

func TestOpenCopiesMetadataForward(t *testing.T) {
	svc, store := newService(t, stubWorkflows{})
	ctx := context.Background()
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	descJSON := `{"title":[{"value":"Gaudy night"}]}`
	token, err := store.UpdateOpenVersion(ctx, obj.Druid, obj.LockToken, objects.VersionParams{
		Label:           obj.Label,
		DescriptionJSON: descJSON,
		CocinaVersion:   "0.96.0",
	})
	if err != nil {
		t.Fatalf("UpdateOpenVersion: %v", err)
	}
	token, err = svc.Close(ctx, obj.Druid, token)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}

	v2, _, err := svc.Open(ctx, obj.Druid, token, versioning.OpenParams{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if v2.DescriptionJSON != descJSON {
		t.Fatalf("description json = %q, want copy of v1", v2.DescriptionJSON)
	}
	if v2.CocinaVersion != "0.96.0" {
		t.Fatalf("cocina version = %q", v2.CocinaVersion)
	}
}

func TestOpenBlockedByAccessioning(t *testing.T) {
	svc, store := newService(t, stubWorkflows{accessioning: true})
	ctx := context.Background()
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	token, err := store.CloseOpenVersion(ctx, obj.Druid, obj.LockToken)
	if err != nil {
		t.Fatalf("CloseOpenVersion: %v", err)
	}
	_, _, err = svc.Open(ctx, obj.Druid, token, versioning.OpenParams{})
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("err = %v, want conflict during accessioning", err)
	}
}

func TestWorkflowFailureIsDependencyError(t *testing.T) {
	wfErr := services.Wrap(services.ErrDependency, "workflows", "accessioning", "bc123df4567", errors.New("connection refused"))
	svc, store := newService(t, stubWorkflows{err: wfErr})
	ctx := context.Background()
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	token, err := store.CloseOpenVersion(ctx, obj.Druid, obj.LockToken)
	if err != nil {
		t.Fatalf("CloseOpenVersion: %v", err)
	}
	_, _, err = svc.Open(ctx, obj.Druid, token, versioning.OpenParams{})
	if !errors.Is(err, services.ErrDependency) {
		t.Fatalf("err = %v, want dependency failure", err)
	}
	if errors.Is(err, services.ErrConflict) {
		t.Fatal("dependency failure must not classify as conflict")
	}
}

func TestCloseWithoutOpenDraft(t *testing.T) {
	svc, store := newService(t, stubWorkflows{})
	ctx := context.Background()
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	token, err := svc.Close(ctx, obj.Druid, obj.LockToken)
	if err != nil {
		t.Fatalf("first close: %v", err)
	}
	_, err = svc.Close(ctx, obj.Druid, token)
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("err = %v, want conflict when nothing is open", err)
	}
}

func TestCloseValidatesStoredDescription(t *testing.T) {
	svc, store := newService(t, stubWorkflows{})
	ctx := context.Background()
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	// Value and structuredValue together violate the one-of invariant.
	bad := `{"title":[{"value":"A","structuredValue":[{"value":"B","type":"main title"}]}]}`
	token, err := store.UpdateOpenVersion(ctx, obj.Druid, obj.LockToken, objects.VersionParams{
		DescriptionJSON: bad,
	})
	if err != nil {
		t.Fatalf("UpdateOpenVersion: %v", err)
	}

	_, err = svc.Close(ctx, obj.Druid, token)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}

	// The draft stays open after a failed close.
	open, err := store.OpenVersion(ctx, obj.Druid)
	if err != nil {
		t.Fatalf("OpenVersion: %v", err)
	}
	if open == nil {
		t.Fatal("version should remain open after rejected close")
	}
}

func TestStatusAndCanOpen(t *testing.T) {
	svc, store := newService(t, stubWorkflows{})
	ctx := context.Background()
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	status, err := svc.Status(ctx, obj.Druid)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Open || status.Openable {
		t.Fatalf("fresh object status = %+v", status)
	}

	if _, err := svc.Close(ctx, obj.Druid, obj.LockToken); err != nil {
		t.Fatalf("Close: %v", err)
	}
	status, err = svc.Status(ctx, obj.Druid)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Open || !status.Openable || status.Version != 1 {
		t.Fatalf("closed object status = %+v", status)
	}

	openable, err := svc.CanOpen(ctx, obj.Druid)
	if err != nil {
		t.Fatalf("CanOpen: %v", err)
	}
	if !openable {
		t.Fatal("expected object to be openable")
	}
}

func TestStatusWithLiveWorkflowServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":[{"name":"accessionWF"}]}`))
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithWorkflowURL(server.URL))
	store := testsupport.MustOpenStore(t, cfg)
	svc := versioning.NewService(store, workflows.NewService(cfg), logging.NewNop())
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	status, err := svc.Status(context.Background(), obj.Druid)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Accessioning {
		t.Fatal("expected accessioning flag from workflow server")
	}
}

func TestUserVersionNeverPointsAtOpenVersion(t *testing.T) {
	svc, store := newService(t, stubWorkflows{})
	ctx := context.Background()
	obj := testsupport.RegisterObject(t, store, "bc123df4567")

	_, _, err := svc.CreateUserVersion(ctx, obj.Druid, "", 1)
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("err = %v, want conflict for open target", err)
	}

	token, err := svc.Close(ctx, obj.Druid, obj.LockToken)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	uv, token, err := svc.CreateUserVersion(ctx, obj.Druid, token, 1)
	if err != nil {
		t.Fatalf("CreateUserVersion: %v", err)
	}
	if uv.UserVersion != 1 {
		t.Fatalf("user version = %d, want 1", uv.UserVersion)
	}

	token, err = svc.WithdrawUserVersion(ctx, obj.Druid, token, 1)
	if err != nil {
		t.Fatalf("WithdrawUserVersion: %v", err)
	}
	if _, err := svc.RestoreUserVersion(ctx, obj.Druid, token, 1); err != nil {
		t.Fatalf("RestoreUserVersion: %v", err)
	}

	list, err := svc.UserVersions(ctx, obj.Druid)
	if err != nil {
		t.Fatalf("UserVersions: %v", err)
	}
	if len(list) != 1 || list[0].Withdrawn {
		t.Fatalf("user versions = %+v", list)
	}
}
