package switchport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/gagnaveita/notkun/domain/entities"
	"github.com/gagnaveita/notkun/domain/repositories"
)

const (
	defaultTimeout = 10 * time.Second
)

// ResolverConfig holds configuration for the HTTPResolver adapter.
// Required fields:
// - BaseURL: base URL of the switch/port lookup API
// Optional fields with defaults:
// - Timeout: per-request timeout (default: 10s)
type ResolverConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ValidateResolverConfig validates the ResolverConfig.
func ValidateResolverConfig(config ResolverConfig) error {
	if config.BaseURL == "" {
		return fmt.Errorf("switch/port API base URL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return fmt.Errorf("invalid switch/port API base URL: %w", err)
	}
	if config.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %s", config.Timeout)
	}
	return nil
}

// NewResolverConfigFromEnv creates a ResolverConfig from environment
// variables: SWITCHPORT_API_BASE_URL and SWITCHPORT_API_TIMEOUT.
func NewResolverConfigFromEnv() ResolverConfig {
	config := ResolverConfig{
		BaseURL: os.Getenv("SWITCHPORT_API_BASE_URL"),
	}

	if timeoutStr := os.Getenv("SWITCHPORT_API_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil && timeout > 0 {
			config.Timeout = timeout
		}
	}

	return config
}

// HTTPResolver implements SwitchPortResolver against the external
// identity-to-infrastructure lookup API.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// Ensure HTTPResolver implements the SwitchPortResolver interface
var _ repositories.SwitchPortResolver = (*HTTPResolver)(nil)

// resolveResponse is the lookup API's payload for one kennitala.
type resolveResponse struct {
	SwitchNumber string `json:"switch_number"`
	PortNumber   string `json:"port_number"`
	Success      bool   `json:"success"`
	Message      string `json:"message"`
}

// NewHTTPResolver creates a new HTTP-backed switch/port resolver.
func NewHTTPResolver(config ResolverConfig, logger *zap.Logger) (*HTTPResolver, error) {
	if err := ValidateResolverConfig(config); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
		logger.Info("Using default switch/port lookup timeout", zap.Duration("timeout", timeout))
	}

	return &HTTPResolver{
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// Resolve looks up the switch and port serving the given kennitala. A
// single failed attempt is terminal; there are no retries.
func (r *HTTPResolver) Resolve(ctx context.Context, kennitala string) (entities.SwitchPort, error) {
	lookupURL := fmt.Sprintf("%s/switch-port/%s", r.baseURL, url.PathEscape(kennitala))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return entities.SwitchPort{}, fmt.Errorf("%w: creating request: %w", repositories.ErrResolutionFailed, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return entities.SwitchPort{}, fmt.Errorf("%w: %w", repositories.ErrResolutionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		r.logger.Error("Switch/port lookup returned error",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(errorBody)))
		return entities.SwitchPort{}, fmt.Errorf("%w: lookup API returned status %d", repositories.ErrResolutionFailed, resp.StatusCode)
	}

	var payload resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return entities.SwitchPort{}, fmt.Errorf("%w: decoding response: %w", repositories.ErrResolutionFailed, err)
	}

	if !payload.Success {
		return entities.SwitchPort{}, fmt.Errorf("%w: %s", repositories.ErrResolutionFailed, payload.Message)
	}

	r.logger.Info("Resolved switch/port",
		zap.String("switchNumber", payload.SwitchNumber),
		zap.String("portNumber", payload.PortNumber))

	return entities.SwitchPort{
		SwitchNumber: payload.SwitchNumber,
		PortNumber:   payload.PortNumber,
		Message:      payload.Message,
	}, nil
}
