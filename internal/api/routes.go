package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gagnaveita/notkun/domain/entities"
	"github.com/gagnaveita/notkun/domain/repositories"
	"github.com/gagnaveita/notkun/usecase"
)

const (
	serviceName    = "Icelandic SSN Usage API"
	serviceVersion = "1.0.0"
)

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, usageService *usecase.UsageService, logger *zap.Logger) {
	// Service info
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, InfoResponse{
			Message: serviceName,
			Version: serviceVersion,
		})
	})

	// Liveness check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
		})
	})

	// Usage lookup
	e.POST("/get-usage-data", func(c echo.Context) error {
		return getUsageData(c, usageService, logger)
	})
}

// getUsageData validates the kennitala in the request body and runs the
// two-stage lookup. Validation failures are the caller's fault (400);
// upstream failures surface as 502 without leaking collaborator details.
func getUsageData(c echo.Context, usageService *usecase.UsageService, logger *zap.Logger) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	var req UsageRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Failed to bind usage request",
			zap.String("request_id", requestID),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "invalid_request",
			Message:   "Invalid request format",
			RequestID: requestID,
		})
	}

	if req.Kennitala == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "missing_fields",
			Message:   "Kennitala is required",
			RequestID: requestID,
		})
	}

	report, err := usageService.Lookup(c.Request().Context(), req.Kennitala)
	if err != nil {
		return usageError(c, err, requestID, logger)
	}

	return c.JSON(http.StatusOK, UsageResponse{
		Kennitala:    report.Kennitala,
		SwitchNumber: report.SwitchNumber,
		PortNumber:   report.PortNumber,
		UsageData:    report.Usage,
		Timestamp:    report.Timestamp,
	})
}

// usageError maps pipeline failures onto HTTP statuses.
func usageError(c echo.Context, err error, requestID string, logger *zap.Logger) error {
	switch {
	case errors.Is(err, entities.ErrMalformedKennitala), errors.Is(err, entities.ErrInvalidDate):
		logger.Warn("Rejected invalid kennitala",
			zap.String("request_id", requestID),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "invalid_kennitala",
			Message:   err.Error(),
			RequestID: requestID,
		})
	case errors.Is(err, repositories.ErrResolutionFailed):
		logger.Error("Switch/port resolution failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:     "resolution_failed",
			Message:   "Could not resolve switch/port for the given kennitala",
			RequestID: requestID,
		})
	case errors.Is(err, repositories.ErrQueryFailed):
		logger.Error("Usage query failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:     "query_failed",
			Message:   "Could not retrieve usage data from the monitoring system",
			RequestID: requestID,
		})
	default:
		logger.Error("Usage lookup failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "internal_error",
			Message:   "Error processing request",
			RequestID: requestID,
		})
	}
}
