// Package acl implements the Anti-Corruption Layer pattern for external
// services. ACL adapters translate between external API models and domain
// models, protecting the domain from external system changes.
package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prmf/premium-api/internal/adapters/clients"
	"github.com/prmf/premium-api/internal/domain"
	"github.com/prmf/premium-api/internal/platform/logging"
)

// IdentityClientConfig contains configuration for the identity client.
type IdentityClientConfig struct {
	// Client is the HTTP client to use for requests. Its BaseURL should
	// point at the identity backend.
	Client *clients.Client

	// APIKey is the public API key sent alongside the bearer credential.
	APIKey string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// IdentityClient implements ports.IdentityProvider against a GoTrue-style
// identity backend. It translates the backend's user representation to a
// domain Identity.
type IdentityClient struct {
	client *clients.Client
	apiKey string
	logger *slog.Logger
}

// NewIdentityClient creates a new identity client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewIdentityClient(cfg IdentityClientConfig) *IdentityClient {
	if cfg.Client == nil {
		panic("IdentityClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &IdentityClient{
		client: cfg.Client,
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// externalUser is the backend's user DTO. Internal to the ACL.
type externalUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Resolve verifies the bearer credential with the identity backend and
// returns the caller's identity. Implements ports.IdentityProvider.
func (c *IdentityClient) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	const path = "/auth/v1/user"

	if token == "" {
		return nil, domain.NewUnauthorizedError("missing bearer credential")
	}

	c.logger.Log(ctx, logging.LevelTrace, "resolving identity", slog.String("path", path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.client.BaseURL()+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating identity request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, MapAuthError(nil, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "identity request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, MapAuthError(resp, nil)
	}

	return c.parseUserResponse(resp)
}

// parseUserResponse translates the external user DTO to a domain Identity.
func (c *IdentityClient) parseUserResponse(resp *http.Response) (*domain.Identity, error) {
	var external externalUser
	if err := json.NewDecoder(resp.Body).Decode(&external); err != nil {
		return nil, fmt.Errorf("decoding identity response: %w", err)
	}

	if external.ID == "" {
		return nil, domain.NewUnauthorizedError("identity response has no user id")
	}

	return &domain.Identity{
		ID:    external.ID,
		Email: external.Email,
	}, nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *IdentityClient) Name() string {
	return "identity-service"
}

// Check verifies connectivity to the identity backend.
// Implements ports.HealthChecker.
func (c *IdentityClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, "/auth/v1/health")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}

	return nil
}
