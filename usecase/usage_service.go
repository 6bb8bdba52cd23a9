package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gagnaveita/notkun/domain/entities"
	"github.com/gagnaveita/notkun/domain/repositories"
)

// UsageService orchestrates the usage lookup flow: validate the kennitala,
// resolve its switch/port, then query the monitoring system.
type UsageService struct {
	resolver repositories.SwitchPortResolver
	monitor  repositories.UsageMonitor
	logger   *zap.Logger
	now      func() time.Time
}

// NewUsageService creates a new usage lookup service.
func NewUsageService(
	resolver repositories.SwitchPortResolver,
	monitor repositories.UsageMonitor,
	logger *zap.Logger,
) *UsageService {
	return &UsageService{
		resolver: resolver,
		monitor:  monitor,
		logger:   logger,
		now:      time.Now,
	}
}

// Lookup runs the full pipeline for one raw kennitala. It fails fast at
// the first failing step and never returns a partial report. Validation
// errors wrap entities.ErrMalformedKennitala or entities.ErrInvalidDate;
// upstream errors wrap repositories.ErrResolutionFailed or
// repositories.ErrQueryFailed, so callers classify with errors.Is.
func (s *UsageService) Lookup(ctx context.Context, rawKennitala string) (*entities.UsageReport, error) {
	kennitala, err := entities.ParseKennitala(rawKennitala)
	if err != nil {
		return nil, fmt.Errorf("validating kennitala: %w", err)
	}

	s.logger.Info("Kennitala validated",
		zap.String("kennitala", kennitala.Normalized))

	// Step 1: resolve the switch/port serving this subscriber.
	switchPort, err := s.resolver.Resolve(ctx, kennitala.Normalized)
	if err != nil {
		return nil, fmt.Errorf("resolving switch/port: %w", err)
	}

	s.logger.Info("Switch/port resolved",
		zap.String("switchNumber", switchPort.SwitchNumber),
		zap.String("portNumber", switchPort.PortNumber))

	// Step 2: query usage over the last 24 hours, anchored at the moment
	// of the call rather than anything client-supplied.
	window := entities.LastDay(s.now())
	usage, err := s.monitor.QueryUsage(ctx, switchPort.SwitchNumber, switchPort.PortNumber, window)
	if err != nil {
		return nil, fmt.Errorf("querying usage: %w", err)
	}

	return &entities.UsageReport{
		Kennitala:    kennitala.Normalized,
		SwitchNumber: switchPort.SwitchNumber,
		PortNumber:   switchPort.PortNumber,
		Usage:        usage,
		Timestamp:    s.now(),
	}, nil
}
