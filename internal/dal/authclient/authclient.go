package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/ishop-labs/backend/pkg/http/middleware/auth"
)

// Client resolves bearer tokens against the external auth service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	timeout := viper.GetDuration("auth.timeout")
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL:    viper.GetString("auth.base_url"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Verify asks the auth service to validate the token and returns the
// caller's identity.
func (c *Client) Verify(ctx context.Context, token string) (auth.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/verify", nil)
	if err != nil {
		return auth.Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return auth.Identity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return auth.Identity{}, auth.ErrInvalidToken
	}

	if resp.StatusCode != http.StatusOK {
		return auth.Identity{}, fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	var identity auth.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return auth.Identity{}, err
	}

	return identity, nil
}

var _ auth.Verifier = (*Client)(nil)
