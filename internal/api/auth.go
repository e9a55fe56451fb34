package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	fhttp "github.com/bogdanfinn/fhttp"

	apierrors "github.com/dmateus/plantdoc/internal/errors"
	"github.com/dmateus/plantdoc/internal/models"
)

// TokenPair is the credential pair returned by the auth endpoints.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges email/password for a token pair. The endpoint does not
// return a profile; the caller synthesizes the principal.
func (c *PlantClient) Login(email, password string) (*TokenPair, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	return c.postAuth("login", models.PathLogin, payload)
}

// Register creates a new account and returns a token pair. The backend
// requires a confirm_password field equal to the password.
func (c *PlantClient) Register(email, password, fullName string) (*TokenPair, error) {
	payload := map[string]string{
		"email":            email,
		"password":         password,
		"confirm_password": password,
		"full_name":        fullName,
	}
	return c.postAuth("register", models.PathRegister, payload)
}

func (c *PlantClient) postAuth(op, path string, payload map[string]string) (*TokenPair, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", op, err)
	}

	req, err := fhttp.NewRequest(fhttp.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	respBody, _, err := c.do(op, req, path)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := json.Unmarshal(respBody, &pair); err != nil {
		return nil, apierrors.NewParseError(fmt.Sprintf("malformed %s response", op), path)
	}
	if pair.Access == "" {
		return nil, apierrors.NewParseError(fmt.Sprintf("%s response missing access token", op), path)
	}

	return &pair, nil
}
