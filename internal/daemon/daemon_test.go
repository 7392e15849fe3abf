package daemon_test

import (
	"context"
	"testing"

	"lectern/internal/api"
	"lectern/internal/daemon"
	"lectern/internal/logging"
	"lectern/internal/notifications"
	"lectern/internal/testsupport"
	"lectern/internal/versioning"
	"lectern/internal/workflows"
)

func TestDaemonStartStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()
	wf := workflows.NewService(cfg)
	vs := versioning.NewService(store, wf, logger)
	notifier := notifications.NewGoobiNotifier(cfg, logger)
	server := api.NewServer(cfg, store, vs, wf, notifier, logger)

	d, err := daemon.New(cfg, store, server, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Stop()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	status := d.Status()
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}
	if status.Address == "" {
		t.Fatal("expected a bound api address")
	}

	// Second start should fail
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	if d.Status().Running {
		t.Fatal("expected daemon to be stopped")
	}
}
