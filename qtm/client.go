package qtm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	clonecoco "github.com/dszilagyiques/CloneCoCo"
	"github.com/dszilagyiques/CloneCoCo/coco"
)

// TargetPhaseTypes are the workflow phase types that can carry a collection
// configuration.
var TargetPhaseTypes = map[string]bool{
	"2D iOS Collection": true,
	"QC Web Collection": true,
	"2D Web Collection": true,
	"2D iOS Field QC":   true,
}

// phaseCacheSize bounds the per-client cache of phase listings.
const phaseCacheSize = 32

// Phase is a workflow phase of a collection type, with the identifier of its
// collection configuration attached when one exists.
type Phase struct {
	ID        coco.PhaseID `json:"id"`
	Name      string       `json:"name"`
	PhaseType string       `json:"phaseType"`

	// CollectionConfigurationID is nil when the phase has no
	// configuration yet and is therefore eligible to receive a clone.
	CollectionConfigurationID *int64 `json:"collectionConfigurationId"`
}

// Eligible reports whether the phase can receive a cloned configuration.
func (p Phase) Eligible() bool {
	return p.CollectionConfigurationID == nil
}

// Client talks to a QTM backend on behalf of an authenticated user.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	phaseCache *lru.Cache[int64, []Phase]
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the bearer token used on every request. Login overwrites it
// on success.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom HTTP client, e.g. with tighter timeouts.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClientLogger sets a custom logger for the client.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, clonecoco.NewConfigurationError("qtm.NewClient",
			fmt.Errorf("base URL is required"))
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	cache, err := lru.New[int64, []Phase](phaseCacheSize)
	if err != nil {
		return nil, clonecoco.NewInternalError("qtm.NewClient", err)
	}
	c.phaseCache = cache

	return c, nil
}

// Login authenticates with username/password and returns the bearer token.
// The client keeps the token for subsequent requests.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	const op = "Client.Login"

	body, err := json.Marshal(map[string]string{
		"userName": username,
		"password": password,
	})
	if err != nil {
		return "", clonecoco.NewInternalError(op, err)
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, op, http.MethodPost, "/api/v1/login", bytes.NewReader(body), &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", clonecoco.NewNetworkError(op,
			fmt.Errorf("accessToken not found in login response"))
	}

	c.token = resp.AccessToken
	return resp.AccessToken, nil
}

// PhasesWithConfigurations lists the project's collection-type phases with
// their collection configuration identifiers attached. Results are cached
// per project for the lifetime of the client; use InvalidatePhases after a
// create call changes the backend state.
func (c *Client) PhasesWithConfigurations(ctx context.Context, projectID int64) ([]Phase, error) {
	const op = "Client.PhasesWithConfigurations"

	if cached, ok := c.phaseCache.Get(projectID); ok {
		return cached, nil
	}

	// The workflows endpoint may return a single workflow object or a
	// list of them.
	var raw json.RawMessage
	path := fmt.Sprintf("/api/v1/project/%d/workflows", projectID)
	if err := c.do(ctx, op, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}

	type wirePhase struct {
		ID   coco.PhaseID `json:"id"`
		Name string       `json:"name"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	}
	type workflow struct {
		Phases []wirePhase `json:"phases"`
	}

	var workflows []workflow
	if err := json.Unmarshal(raw, &workflows); err != nil {
		var single workflow
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, clonecoco.NewNetworkError(op,
				fmt.Errorf("unexpected workflows response shape: %w", err))
		}
		workflows = []workflow{single}
	}

	var phases []Phase
	for _, wf := range workflows {
		for _, p := range wf.Phases {
			if !TargetPhaseTypes[p.Type.Name] {
				continue
			}
			phases = append(phases, Phase{
				ID:        p.ID,
				Name:      p.Name,
				PhaseType: p.Type.Name,
			})
		}
	}

	// Attach collection configuration ids, keyed by phase id.
	var cocoMap map[string]struct {
		ID int64 `json:"id"`
	}
	path = fmt.Sprintf("/api/v1/project/%d/collection-configurations", projectID)
	if err := c.do(ctx, op, http.MethodGet, path, nil, &cocoMap); err != nil {
		return nil, err
	}

	for i := range phases {
		key := strconv.FormatInt(int64(phases[i].ID), 10)
		if entry, ok := cocoMap[key]; ok {
			id := entry.ID
			phases[i].CollectionConfigurationID = &id
		}
	}

	c.phaseCache.Add(projectID, phases)
	return phases, nil
}

// InvalidatePhases drops the cached phase listing for a project.
func (c *Client) InvalidatePhases(projectID int64) {
	c.phaseCache.Remove(projectID)
}

// ProjectName returns the name of the project as seen by the authenticated
// user, or an empty string when the project is not among the user's projects.
func (c *Client) ProjectName(ctx context.Context, projectID int64) (string, error) {
	const op = "Client.ProjectName"

	var projects []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := c.do(ctx, op, http.MethodGet, "/api/v1/users/me/projects", nil, &projects); err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == projectID {
			return p.Name, nil
		}
	}
	return "", nil
}

// CreateCollectionConfiguration submits a creation payload to the
// destination and returns the created document as raw JSON.
func (c *Client) CreateCollectionConfiguration(ctx context.Context, payload *coco.Payload) (json.RawMessage, error) {
	const op = "Client.CreateCollectionConfiguration"

	if payload == nil {
		return nil, clonecoco.NewConfigurationError(op, fmt.Errorf("payload is nil"))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, clonecoco.NewInternalError(op, err)
	}

	var created json.RawMessage
	if err := c.do(ctx, op, http.MethodPut, "/api/v1/collection-configurations", bytes.NewReader(body), &created); err != nil {
		return nil, err
	}

	c.logger.Info("collection configuration created",
		"target_phase", payload.WorkflowPhaseID,
		"modules", len(payload.Modules))
	return created, nil
}

// do performs one request against the backend and decodes the JSON response
// into out.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return clonecoco.NewInternalError(op, err)
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return clonecoco.NewNetworkError(op, err)
	}
	defer clonecoco.CloseWithLog(resp.Body, c.logger, "response body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return clonecoco.NewNetworkError(op,
			fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, text)).
			WithContext(map[string]any{"status": resp.StatusCode})
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return clonecoco.NewNetworkError(op,
			fmt.Errorf("failed to decode %s response: %w", path, err))
	}
	return nil
}
