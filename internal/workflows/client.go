package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lectern/internal/config"
	"lectern/internal/purl"
	"lectern/internal/services"
)

const userAgent = "Lectern-Go/0.1.0"

// Service is the workflow surface the lifecycle state machine depends on.
type Service interface {
	AccessioningInProgress(ctx context.Context, druid string) (bool, error)
	ReleaseTags(ctx context.Context, druid string) ([]ReleaseTag, error)
}

// ReleaseTag records a release decision for one target catalog.
type ReleaseTag struct {
	To      string `json:"to"`
	Release bool   `json:"release"`
	What    string `json:"what"`
}

// NewService builds a workflow client from configuration. Without a
// configured URL a noop implementation is returned: nothing is ever
// accessioning and nothing is released.
func NewService(cfg *config.Config) Service {
	endpoint := strings.TrimSpace(cfg.Workflow.URL)
	if endpoint == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Workflow.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &client{
		baseURL: strings.TrimRight(endpoint, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type client struct {
	baseURL string
	client  *http.Client
}

type workflowStatus struct {
	Active []struct {
		Name string `json:"name"`
	} `json:"active"`
}

// AccessioningInProgress reports whether an accessioning workflow is active
// for the object. Transport failures classify as dependency errors so
// callers can distinguish them from domain conflicts.
func (c *client) AccessioningInProgress(ctx context.Context, druid string) (bool, error) {
	var status workflowStatus
	endpoint := c.baseURL + "/objects/" + url.PathEscape(purl.Normalize(druid)) + "/workflows"
	if err := c.getJSON(ctx, endpoint, &status); err != nil {
		return false, services.Wrap(services.ErrDependency, "workflows", "accessioning", druid, err)
	}
	for _, wf := range status.Active {
		if strings.EqualFold(wf.Name, "accessionWF") {
			return true, nil
		}
	}
	return false, nil
}

// ReleaseTags fetches the release decisions recorded for the object.
func (c *client) ReleaseTags(ctx context.Context, druid string) ([]ReleaseTag, error) {
	var payload struct {
		Tags []ReleaseTag `json:"tags"`
	}
	endpoint := c.baseURL + "/objects/" + url.PathEscape(purl.Normalize(druid)) + "/release_tags"
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, services.Wrap(services.ErrDependency, "workflows", "release tags", druid, err)
	}
	return payload.Tags, nil
}

func (c *client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build workflow request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call workflow service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("workflow service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode workflow response: %w", err)
	}
	return nil
}

type noopService struct{}

func (noopService) AccessioningInProgress(context.Context, string) (bool, error) { return false, nil }
func (noopService) ReleaseTags(context.Context, string) ([]ReleaseTag, error)    { return nil, nil }
