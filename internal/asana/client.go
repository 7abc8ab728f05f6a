package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/clintrovert/tracksync/pkg/types"
)

// Client wraps the tracker's REST API. Tokens are caller-supplied per
// request, so the client holds no credential of its own.
type Client struct {
	apiURL string
	logger *zap.Logger
}

// NewClient creates a new tracker API client.
func NewClient(apiURL string, logger *zap.Logger) *Client {
	return &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		logger: logger,
	}
}

// NewTask holds the fields sent on task creation. Assignee is omitted
// from the wire payload when empty.
type NewTask struct {
	Name     string   `json:"name"`
	Notes    string   `json:"notes"`
	Projects []string `json:"projects"`
	DueOn    string   `json:"due_on"`
	Assignee string   `json:"assignee,omitempty"`
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// Workspaces lists the workspaces accessible with the token.
func (c *Client) Workspaces(ctx context.Context, token string) ([]types.RemoteWorkspace, error) {
	data, err := c.do(ctx, token, http.MethodGet, "/workspaces", nil)
	if err != nil {
		return nil, err
	}
	var workspaces []types.RemoteWorkspace
	if err := json.Unmarshal(data, &workspaces); err != nil {
		return nil, fmt.Errorf("failed to decode workspaces: %w", err)
	}
	return workspaces, nil
}

// Projects lists the projects in a workspace.
func (c *Client) Projects(ctx context.Context, token, workspaceGID string) ([]types.RemoteProject, error) {
	path := "/projects?workspace=" + url.QueryEscape(workspaceGID)
	data, err := c.do(ctx, token, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var projects []types.RemoteProject
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// Users lists the users in a workspace with their email addresses.
func (c *Client) Users(ctx context.Context, token, workspaceGID string) ([]types.RemoteUser, error) {
	path := "/users?workspace=" + url.QueryEscape(workspaceGID) + "&opt_fields=email"
	data, err := c.do(ctx, token, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var users []types.RemoteUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// CreateTask creates a task and returns its gid.
func (c *Client) CreateTask(ctx context.Context, token string, task NewTask) (string, error) {
	data, err := c.do(ctx, token, http.MethodPost, "/tasks", task)
	if err != nil {
		return "", err
	}
	var created struct {
		GID string `json:"gid"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		return "", fmt.Errorf("failed to decode created task: %w", err)
	}
	if created.GID == "" {
		return "", fmt.Errorf("tracker response missing task gid")
	}
	return created.GID, nil
}

// CompleteTask marks a task complete and returns the updated task payload.
func (c *Client) CompleteTask(ctx context.Context, token, taskGID string) (json.RawMessage, error) {
	update := map[string]bool{"completed": true}
	return c.do(ctx, token, http.MethodPut, "/tasks/"+url.PathEscape(taskGID), update)
}

// do issues one API call and unwraps the {"data": ...} envelope. A
// non-success status becomes an *UpstreamError.
func (c *Client) do(ctx context.Context, token, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(map[string]any{"data": body})
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call tracker API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracker response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newUpstreamError(resp.StatusCode, resp.Status, raw)
	}

	var envelope dataEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode tracker response: %w", err)
	}
	return envelope.Data, nil
}

// httpClient builds a token-bearing HTTP client for one call.
func (c *Client) httpClient(ctx context.Context, token string) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return oauth2.NewClient(ctx, ts)
}
