package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cantdoitbye/backend-sub007/src/domain"
)

// HTTPDirectory resolve perfis no serviço de usuários via REST.
// É a implementação de produção de domain.IdentityDirectory.
type HTTPDirectory struct {
	logger  *slog.Logger
	baseURL string
	client  *http.Client
}

func NewHTTPDirectory(logger *slog.Logger, baseURL string) *HTTPDirectory {
	return &HTTPDirectory{
		logger:  logger,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

func (d *HTTPDirectory) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	url := fmt.Sprintf("%s/v1/users/%s/profile", d.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("HTTPDirectory.GetProfile - failed to build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("HTTPDirectory.GetProfile - request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Profile{}, domain.NewNotFound(fmt.Sprintf("user %s not found", userID))
	}

	if resp.StatusCode != http.StatusOK {
		return domain.Profile{}, fmt.Errorf("HTTPDirectory.GetProfile - unexpected status %d", resp.StatusCode)
	}

	var profile domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return domain.Profile{}, fmt.Errorf("HTTPDirectory.GetProfile - failed to decode response: %w", err)
	}

	return profile, nil
}
