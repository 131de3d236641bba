package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tappyimob/tappy-imob/internal/model"
	"go.uber.org/zap"
)

// API is the server collaborator of the panel
type API interface {
	ListIntegracoes(ctx context.Context) ([]model.Integracao, error)
	UpdateStatus(ctx context.Context, id string, status model.IntegracaoStatus) error
}

// APIError is a non-2xx answer from the integrations API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("integracoes api: %d %s", e.StatusCode, e.Message)
}

// Client talks to the integrations API with a session token
type Client struct {
	BaseURL    string
	Token      string
	AgenteID   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a new integrations API client
func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

// ListIntegracoes fetches the tenant's integrations, restricted to AgenteID when set
func (c *Client) ListIntegracoes(ctx context.Context) ([]model.Integracao, error) {
	endpoint := fmt.Sprintf("%s/api/ia/integracoes", c.BaseURL)
	if c.AgenteID != "" {
		endpoint += "?agenteId=" + url.QueryEscape(c.AgenteID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Integracoes []model.Integracao `json:"integracoes"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Integracoes, nil
}

// UpdateStatus sends one status-update command
func (c *Client) UpdateStatus(ctx context.Context, id string, status model.IntegracaoStatus) error {
	payload, err := json.Marshal(map[string]model.IntegracaoStatus{"status": status})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/api/ia/integracoes/%s/status", c.BaseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Error("Integracoes request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Path),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read integracoes response", zap.Error(err))
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			errorResp.Error = http.StatusText(resp.StatusCode)
		}
		log.Warn("Integracoes request rejected",
			zap.String("method", req.Method),
			zap.String("url", req.URL.Path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("error", errorResp.Error))
		return &APIError{StatusCode: resp.StatusCode, Message: errorResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Error("Failed to parse integracoes response", zap.Error(err))
		return fmt.Errorf("error parsing integracoes response: %w", err)
	}
	return nil
}
