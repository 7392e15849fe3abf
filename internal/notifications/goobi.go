package notifications

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lectern/internal/config"
	"lectern/internal/logging"
	"lectern/internal/mods"
	"lectern/internal/objects"
	"lectern/internal/services"
)

const userAgent = "Lectern-Go/0.1.0"

// Notifier announces newly registered objects to downstream systems.
type Notifier interface {
	ObjectRegistered(ctx context.Context, obj *objects.RepositoryObject) error
}

// NewGoobiNotifier builds a Goobi notifier when enabled in configuration; a
// noop implementation is returned otherwise.
func NewGoobiNotifier(cfg *config.Config, logger *slog.Logger) Notifier {
	if !cfg.Goobi.Enabled || strings.TrimSpace(cfg.Goobi.URL) == "" {
		return noopNotifier{}
	}

	timeout := time.Duration(cfg.Goobi.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attempts := cfg.Goobi.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	return &goobiNotifier{
		endpoint: cfg.Goobi.URL,
		client:   &http.Client{Timeout: timeout},
		attempts: attempts,
		delay:    time.Duration(cfg.Goobi.RetryDelaySeconds) * time.Second,
		logger:   logging.WithComponent(logger, "goobi"),
	}
}

type goobiNotifier struct {
	endpoint string
	client   *http.Client
	attempts int
	delay    time.Duration
	logger   *slog.Logger
}

// ObjectRegistered posts the registration payload, retrying with a fixed
// delay up to the configured attempt count before escalating.
func (g *goobiNotifier) ObjectRegistered(ctx context.Context, obj *objects.RepositoryObject) error {
	body := registrationPayload(obj)

	var lastErr error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		if err := g.post(ctx, body); err != nil {
			lastErr = err
			g.logger.Warn("goobi notification failed",
				logging.String(logging.FieldDruid, obj.Druid),
				logging.Int("attempt", attempt),
				logging.Error(err),
			)
			if attempt < g.attempts {
				select {
				case <-time.After(g.delay):
				case <-ctx.Done():
					return services.Wrap(services.ErrDependency, "notifications", "goobi", obj.Druid, ctx.Err())
				}
			}
			continue
		}
		g.logger.Info("goobi notified",
			logging.String(logging.FieldDruid, obj.Druid),
			logging.Int("attempt", attempt),
		)
		return nil
	}
	return services.Wrap(services.ErrDependency, "notifications", "goobi",
		fmt.Sprintf("%s after %d attempts", obj.Druid, g.attempts), lastErr)
}

func (g *goobiNotifier) post(ctx context.Context, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("build goobi request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/xml")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send goobi notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("goobi returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// registrationPayload renders the notification document Goobi expects.
func registrationPayload(obj *objects.RepositoryObject) string {
	root := mods.NewElement("stanfordCreationRequest")
	root.Child("objectId").SetText("druid:" + obj.Druid)
	root.Child("objectType").SetText(obj.ObjectType)
	root.Child("sourceID").SetText(obj.SourceID)
	root.Child("objectLabel").SetText(obj.Label)
	return `<?xml version="1.0" encoding="UTF-8"?>` + root.String()
}

type noopNotifier struct{}

func (noopNotifier) ObjectRegistered(context.Context, *objects.RepositoryObject) error { return nil }
