package monitoring

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gagnaveita/notkun/domain/entities"
	"github.com/gagnaveita/notkun/domain/repositories"
)

// MockMonitor is a placeholder implementation for offline development.
type MockMonitor struct {
	logger *zap.Logger
}

// NewMockMonitor creates a monitor that returns a canned usage payload.
func NewMockMonitor(logger *zap.Logger) repositories.UsageMonitor {
	return &MockMonitor{logger: logger}
}

// QueryUsage implements repositories.UsageMonitor
func (m *MockMonitor) QueryUsage(ctx context.Context, switchNumber, portNumber string, window entities.TimeRange) (entities.UsageResult, error) {
	m.logger.Info("Returning mock usage data",
		zap.String("switchNumber", switchNumber),
		zap.String("portNumber", portNumber))

	query := fmt.Sprintf(`switch_number=%q,port_number=%q`, switchNumber, portNumber)

	return entities.UsageResult{
		Status: entities.UsageStatusSuccess,
		Data: map[string]interface{}{
			"resultType": "matrix",
			"result": []interface{}{
				map[string]interface{}{
					"metric": map[string]interface{}{
						"switch_number": switchNumber,
						"port_number":   portNumber,
					},
					"values": []interface{}{
						[]interface{}{float64(window.Start.Unix()), "1024"},
						[]interface{}{float64(window.End.Unix()), "2048"},
					},
				},
			},
		},
		Query:  query,
		Window: window,
	}, nil
}
