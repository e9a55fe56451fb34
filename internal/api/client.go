// Package api implements the HTTP client for the PlantDoc backend.
package api

import (
	"fmt"
	"io"
	"strings"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/dmateus/plantdoc/internal/errors"
	"github.com/dmateus/plantdoc/internal/models"
)

// PlantClient is the client for the PlantDoc REST API. The auth token is
// a process-wide read-mostly value: armed by the session manager on
// login/signup/restore, cleared on logout, read by every request.
type PlantClient struct {
	httpClient tls_client.HttpClient
	baseURL    string
	mu         sync.RWMutex
	authToken  string
	language   string
}

// ClientOption is a function that configures the client
type ClientOption func(*PlantClient)

// WithBaseURL sets the backend base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *PlantClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLanguage sets the locale code sent on analyze and chat requests
func WithLanguage(code string) ClientOption {
	return func(c *PlantClient) {
		c.language = code
	}
}

// WithHTTPClient injects a custom HTTP client (used in tests)
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *PlantClient) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new PlantClient
func NewClient(opts ...ClientOption) (*PlantClient, error) {
	client := &PlantClient{
		baseURL:  models.DefaultBaseURL,
		language: models.DefaultLanguage.Code,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(120),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// SetAuthToken arms the Authorization header for subsequent requests
func (c *PlantClient) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authToken = token
}

// ClearAuthToken disarms the Authorization header
func (c *PlantClient) ClearAuthToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authToken = ""
}

// AuthToken returns the currently armed token, empty if none
func (c *PlantClient) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authToken
}

// SetLanguage changes the locale code sent on analyze and chat requests
func (c *PlantClient) SetLanguage(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = code
}

// Language returns the active locale code
func (c *PlantClient) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.language
}

// BaseURL returns the backend base URL
func (c *PlantClient) BaseURL() string {
	return c.baseURL
}

// endpoint joins the base URL with an API path
func (c *PlantClient) endpoint(path string) string {
	return c.baseURL + path
}

// newRequest builds a request with the standard headers. The armed auth
// token, if any, is attached as a bearer credential.
func (c *PlantClient) newRequest(method, path string, body io.Reader) (*fhttp.Request, error) {
	req, err := fhttp.NewRequest(method, c.endpoint(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if token := c.AuthToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// do executes a request and enforces the shared response policy: network
// failures become NetworkError, non-2xx becomes APIError with a
// best-effort message, and a successful body is returned capped at 1MB.
func (c *PlantClient) do(op string, req *fhttp.Request, path string) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, apierrors.NewNetworkError(op, path, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies are capped at 4KB, enough for any message
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, apierrors.NewAPIErrorFromBody(resp.StatusCode, path, errorBody)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, apierrors.NewNetworkError(op, path, err)
	}

	return body, resp.StatusCode, nil
}
