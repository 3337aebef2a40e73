// Package registration implements the client for the remote
// user-registration service. The service is an external collaborator: this
// portal only submits new accounts to it and relays its verdict.
package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

const (
	defaultTimeout = 15 * time.Second

	// genericFailure is shown when the service rejects a registration
	// without providing its own message.
	genericFailure = "Signup failed. Please try again."
)

// Client posts signup forms to the registration endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a Client for the given endpoint URL. A nil httpClient
// falls back to one with a default timeout.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// registerRequest is the wire shape the registration service expects.
type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Role            string `json:"role"`
}

// registerResponse covers the fields the service is known to answer with.
type registerResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Register submits the form. A non-2xx status or an application-level error
// field yields a *domain.RegistrationError carrying the service's message
// verbatim; transport failures are returned wrapped.
func (c *Client) Register(ctx context.Context, form *domain.SignupForm) error {
	body, err := json.Marshal(registerRequest{
		Username:        form.FullName,
		Email:           form.Email,
		Phone:           form.Phone,
		Password:        form.Password,
		PasswordConfirm: form.ConfirmPassword,
		Role:            form.Role.String(),
	})
	if err != nil {
		return fmt.Errorf("registration request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("registration request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("registration call: %w", err)
	}
	defer resp.Body.Close()

	var payload registerResponse
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.RegistrationError{Message: failureMessage(payload)}
	}
	if payload.Error != "" {
		return &domain.RegistrationError{Message: payload.Error}
	}
	return nil
}

func failureMessage(payload registerResponse) string {
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Error != "" {
		return payload.Error
	}
	return genericFailure
}
