package repositories

import (
	"context"
	"errors"

	"github.com/gagnaveita/notkun/domain/entities"
)

// ErrQueryFailed marks any failure of the usage query: connectivity,
// non-2xx response, or an undecodable payload.
var ErrQueryFailed = errors.New("usage query failed")

// UsageMonitor queries the external monitoring system for usage statistics
// on a switch/port pair over a bounded window. Implementations make at
// most one attempt per call and never return partial results.
type UsageMonitor interface {
	QueryUsage(ctx context.Context, switchNumber, portNumber string, window entities.TimeRange) (entities.UsageResult, error)
}
