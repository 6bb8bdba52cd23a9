package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/gagnaveita/notkun/domain/entities"
	"github.com/gagnaveita/notkun/domain/repositories"
)

const (
	defaultBaseURL = "http://monitor01.gagnaveita.is:9090"
	defaultTimeout = 30 * time.Second
	defaultStep    = "1h" // resolution of the range query
)

// MonitorConfig holds configuration for the PrometheusClient adapter.
// All fields are optional and default to the production monitoring host:
// - BaseURL: monitoring system base URL (default: http://monitor01.gagnaveita.is:9090)
// - Timeout: per-request timeout (default: 30s)
// - Step: range query step (default: "1h")
type MonitorConfig struct {
	BaseURL string
	Timeout time.Duration
	Step    string
}

// NewMonitorConfigFromEnv creates a MonitorConfig from environment
// variables: MONITOR_BASE_URL, MONITOR_TIMEOUT and MONITOR_STEP.
func NewMonitorConfigFromEnv() MonitorConfig {
	config := MonitorConfig{
		BaseURL: os.Getenv("MONITOR_BASE_URL"),
		Step:    os.Getenv("MONITOR_STEP"),
	}

	if timeoutStr := os.Getenv("MONITOR_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil && timeout > 0 {
			config.Timeout = timeout
		}
	}

	return config
}

// PrometheusClient implements UsageMonitor against a Prometheus-style
// query_range HTTP API.
type PrometheusClient struct {
	baseURL string
	step    string
	client  *http.Client
	logger  *zap.Logger
}

// Ensure PrometheusClient implements the UsageMonitor interface
var _ repositories.UsageMonitor = (*PrometheusClient)(nil)

// NewPrometheusClient creates a new monitoring query client, applying
// defaults for any unset configuration.
func NewPrometheusClient(config MonitorConfig, logger *zap.Logger) *PrometheusClient {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
		logger.Info("Using default monitoring base URL", zap.String("baseURL", baseURL))
	}

	step := config.Step
	if step == "" {
		step = defaultStep
		logger.Info("Using default monitoring query step", zap.String("step", step))
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
		logger.Info("Using default monitoring query timeout", zap.Duration("timeout", timeout))
	}

	return &PrometheusClient{
		baseURL: baseURL,
		step:    step,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// QueryUsage fetches usage statistics for a switch/port pair over the
// given window. The query is an equality filter on both identifiers; the
// literal query string and window are echoed in the result for
// traceability.
func (p *PrometheusClient) QueryUsage(ctx context.Context, switchNumber, portNumber string, window entities.TimeRange) (entities.UsageResult, error) {
	query := fmt.Sprintf(`switch_number=%q,port_number=%q`, switchNumber, portNumber)

	params := url.Values{}
	params.Set("query", query)
	params.Set("start", strconv.FormatInt(window.Start.Unix(), 10))
	params.Set("end", strconv.FormatInt(window.End.Unix(), 10))
	params.Set("step", p.step)

	queryURL := fmt.Sprintf("%s/api/v1/query_range?%s", p.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return entities.UsageResult{}, fmt.Errorf("%w: creating request: %w", repositories.ErrQueryFailed, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	p.logger.Debug("Querying monitoring system",
		zap.String("query", query),
		zap.Time("start", window.Start),
		zap.Time("end", window.End))

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return entities.UsageResult{}, fmt.Errorf("%w: %w", repositories.ErrQueryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		p.logger.Error("Monitoring API returned error",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(errorBody)))
		return entities.UsageResult{}, fmt.Errorf("%w: monitoring API returned status %d", repositories.ErrQueryFailed, resp.StatusCode)
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return entities.UsageResult{}, fmt.Errorf("%w: decoding response: %w", repositories.ErrQueryFailed, err)
	}

	p.logger.Info("Monitoring query succeeded", zap.String("query", query))

	return entities.UsageResult{
		Status: entities.UsageStatusSuccess,
		Data:   data,
		Query:  query,
		Window: window,
	}, nil
}
