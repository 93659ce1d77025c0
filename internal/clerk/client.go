package clerk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"vendorhub-backend/internal/config"
)

// Client talks to the Clerk Backend API. It is constructed once by the
// composition root and passed to whoever needs it; there is no
// package-level instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.ClerkTimeout},
		baseURL:    cfg.ClerkAPIURL,
		secretKey:  cfg.ClerkSecretKey,
	}
}

// UpdateUserMetadata merges the given values into the user's public
// metadata on the Clerk side.
func (c *Client) UpdateUserMetadata(ctx context.Context, clerkID string, metadata map[string]interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"public_metadata": metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	endpoint := c.baseURL + "/users/" + url.PathEscape(clerkID) + "/metadata"
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clerk API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("clerk API returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
