package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lectern/internal/purl"
	"lectern/internal/services"
)

const userAgent = "Lectern-Go/0.1.0"

// Object mirrors the API's repository object representation.
type Object struct {
	Druid       string    `json:"druid"`
	SourceID    string    `json:"sourceId,omitempty"`
	ObjectType  string    `json:"objectType"`
	Label       string    `json:"label"`
	HeadVersion int       `json:"headVersion"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Version mirrors the API's version representation.
type Version struct {
	Version     int        `json:"version"`
	Label       string     `json:"label,omitempty"`
	Description string     `json:"description,omitempty"`
	Open        bool       `json:"open"`
	CreatedAt   time.Time  `json:"createdAt"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
}

// UserVersion mirrors the API's user version representation.
type UserVersion struct {
	UserVersion int  `json:"userVersion"`
	Version     int  `json:"version"`
	Withdrawn   bool `json:"withdrawn"`
}

// VersionStatus mirrors the API's lifecycle status report.
type VersionStatus struct {
	Druid        string `json:"druid"`
	Version      int    `json:"version"`
	Open         bool   `json:"open"`
	Accessioning bool   `json:"accessioning"`
	Openable     bool   `json:"openable"`
}

// Registration carries the fields for registering a new object.
type Registration struct {
	Druid         string          `json:"druid"`
	SourceID      string          `json:"sourceId,omitempty"`
	ObjectType    string          `json:"objectType,omitempty"`
	Label         string          `json:"label"`
	CocinaVersion string          `json:"cocinaVersion,omitempty"`
	Description   json.RawMessage `json:"description,omitempty"`
	Structural    json.RawMessage `json:"structural,omitempty"`
}

// Client talks to the repository API over HTTP.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New builds a client for the given server base URL. The token is sent as a
// bearer credential when non-empty.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Register creates a new repository object and returns it with its lock
// token.
func (c *Client) Register(ctx context.Context, reg Registration) (*Object, string, error) {
	var obj Object
	token, err := c.do(ctx, http.MethodPost, "/api/objects", "", reg, &obj)
	if err != nil {
		return nil, "", err
	}
	return &obj, token, nil
}

// Object fetches an object and its current lock token.
func (c *Client) Object(ctx context.Context, druid string) (*Object, string, error) {
	var obj Object
	token, err := c.do(ctx, http.MethodGet, c.objectPath(druid), "", nil, &obj)
	if err != nil {
		return nil, "", err
	}
	return &obj, token, nil
}

// Versions lists every version of the object.
func (c *Client) Versions(ctx context.Context, druid string) ([]Version, error) {
	var payload struct {
		Versions []Version `json:"versions"`
	}
	if _, err := c.do(ctx, http.MethodGet, c.objectPath(druid)+"/versions", "", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Versions, nil
}

// VersionStatus reports the lifecycle state of the object.
func (c *Client) VersionStatus(ctx context.Context, druid string) (*VersionStatus, error) {
	var status VersionStatus
	if _, err := c.do(ctx, http.MethodGet, c.objectPath(druid)+"/versions/status", "", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// OpenVersion opens a new draft version. An empty token means "latest".
func (c *Client) OpenVersion(ctx context.Context, druid, token, description string) (*Version, string, error) {
	var version Version
	body := map[string]string{"description": description}
	newToken, err := c.do(ctx, http.MethodPost, c.objectPath(druid)+"/versions/open", token, body, &version)
	if err != nil {
		return nil, "", err
	}
	return &version, newToken, nil
}

// CloseVersion closes the open draft version.
func (c *Client) CloseVersion(ctx context.Context, druid, token string) (*VersionStatus, string, error) {
	var status VersionStatus
	newToken, err := c.do(ctx, http.MethodPost, c.objectPath(druid)+"/versions/close", token, nil, &status)
	if err != nil {
		return nil, "", err
	}
	return &status, newToken, nil
}

// UserVersions lists the object's user versions.
func (c *Client) UserVersions(ctx context.Context, druid string) ([]UserVersion, error) {
	var payload struct {
		UserVersions []UserVersion `json:"userVersions"`
	}
	if _, err := c.do(ctx, http.MethodGet, c.objectPath(druid)+"/user_versions", "", nil, &payload); err != nil {
		return nil, err
	}
	return payload.UserVersions, nil
}

// CreateUserVersion points a new user version at a closed repository
// version.
func (c *Client) CreateUserVersion(ctx context.Context, druid, token string, version int) (*UserVersion, string, error) {
	var uv UserVersion
	body := map[string]int{"version": version}
	newToken, err := c.do(ctx, http.MethodPost, c.objectPath(druid)+"/user_versions", token, body, &uv)
	if err != nil {
		return nil, "", err
	}
	return &uv, newToken, nil
}

// MoveUserVersion repoints an existing user version.
func (c *Client) MoveUserVersion(ctx context.Context, druid, token string, userVersion, version int) (*UserVersion, string, error) {
	var uv UserVersion
	body := map[string]int{"version": version}
	path := fmt.Sprintf("%s/user_versions/%d/move", c.objectPath(druid), userVersion)
	newToken, err := c.do(ctx, http.MethodPost, path, token, body, &uv)
	if err != nil {
		return nil, "", err
	}
	return &uv, newToken, nil
}

// WithdrawUserVersion hides a user version from discovery.
func (c *Client) WithdrawUserVersion(ctx context.Context, druid, token string, userVersion int) (*UserVersion, string, error) {
	return c.setWithdrawn(ctx, druid, token, userVersion, "withdraw")
}

// RestoreUserVersion reverses a withdrawal.
func (c *Client) RestoreUserVersion(ctx context.Context, druid, token string, userVersion int) (*UserVersion, string, error) {
	return c.setWithdrawn(ctx, druid, token, userVersion, "restore")
}

func (c *Client) setWithdrawn(ctx context.Context, druid, token string, userVersion int, action string) (*UserVersion, string, error) {
	var uv UserVersion
	path := fmt.Sprintf("%s/user_versions/%d/%s", c.objectPath(druid), userVersion, action)
	newToken, err := c.do(ctx, http.MethodPost, path, token, nil, &uv)
	if err != nil {
		return nil, "", err
	}
	return &uv, newToken, nil
}

// Mods fetches the head version's descriptive metadata rendered as MODS XML.
func (c *Client) Mods(ctx context.Context, druid string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.objectPath(druid)+"/metadata/mods", "", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call repository api: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", c.errorFromResponse(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}

// Marc856 fetches the catalog link export for the object.
func (c *Client) Marc856(ctx context.Context, druid string) (field string, released bool, err error) {
	var payload struct {
		Field856 string `json:"field856"`
		Released bool   `json:"released"`
	}
	if _, err := c.do(ctx, http.MethodGet, c.objectPath(druid)+"/metadata/marc856", "", nil, &payload); err != nil {
		return "", false, err
	}
	return payload.Field856, payload.Released, nil
}

func (c *Client) objectPath(druid string) string {
	return "/api/objects/" + url.PathEscape(purl.Normalize(druid))
}

// do issues a request and decodes the JSON response, returning the lock
// token from the response ETag when present.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) (string, error) {
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call repository api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", c.errorFromResponse(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
	}
	return strings.Trim(resp.Header.Get("ETag"), `"`), nil
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if token != "" {
		req.Header.Set("If-Match", `"`+token+`"`)
	}
	return req, nil
}

// errorFromResponse maps API status codes back onto the sentinel error
// markers so callers can classify remote failures like local ones.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := resp.Status
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
	}

	var marker error
	switch resp.StatusCode {
	case http.StatusNotFound:
		marker = services.ErrNotFound
	case http.StatusConflict:
		marker = services.ErrConflict
	case http.StatusPreconditionFailed:
		marker = services.ErrPreconditionFailed
	case http.StatusUnprocessableEntity:
		marker = services.ErrValidation
	case http.StatusBadGateway:
		marker = services.ErrDependency
	default:
		return fmt.Errorf("repository api returned %d: %s", resp.StatusCode, message)
	}
	return services.Wrap(marker, "client", resp.Request.Method, message, nil)
}
