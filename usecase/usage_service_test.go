package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/gagnaveita/notkun/domain/entities"
	"github.com/gagnaveita/notkun/domain/repositories"
)

type fakeResolver struct {
	calls      int
	switchPort entities.SwitchPort
	err        error
	lastInput  string
}

func (f *fakeResolver) Resolve(ctx context.Context, kennitala string) (entities.SwitchPort, error) {
	f.calls++
	f.lastInput = kennitala
	if f.err != nil {
		return entities.SwitchPort{}, f.err
	}
	return f.switchPort, nil
}

type fakeMonitor struct {
	calls      int
	err        error
	lastWindow entities.TimeRange
}

func (f *fakeMonitor) QueryUsage(ctx context.Context, switchNumber, portNumber string, window entities.TimeRange) (entities.UsageResult, error) {
	f.calls++
	f.lastWindow = window
	if f.err != nil {
		return entities.UsageResult{}, f.err
	}
	return entities.UsageResult{
		Status: entities.UsageStatusSuccess,
		Data:   map[string]interface{}{"resultType": "matrix"},
		Query:  fmt.Sprintf(`switch_number=%q,port_number=%q`, switchNumber, portNumber),
		Window: window,
	}, nil
}

func TestLookupSuccess(t *testing.T) {
	resolver := &fakeResolver{
		switchPort: entities.SwitchPort{SwitchNumber: "SW042", PortNumber: "P007"},
	}
	monitor := &fakeMonitor{}
	service := NewUsageService(resolver, monitor, zaptest.NewLogger(t))

	report, err := service.Lookup(context.Background(), "010190-1234")
	if err != nil {
		t.Fatalf("Expected successful lookup, got error: %v", err)
	}

	if report.Kennitala != "0101901234" {
		t.Errorf("Expected normalized kennitala '0101901234', got '%s'", report.Kennitala)
	}
	if resolver.lastInput != "0101901234" {
		t.Errorf("Expected resolver to receive the normalized form, got '%s'", resolver.lastInput)
	}
	if report.SwitchNumber != "SW042" || report.PortNumber != "P007" {
		t.Errorf("Expected SW042/P007, got %s/%s", report.SwitchNumber, report.PortNumber)
	}
	if !strings.Contains(report.Usage.Query, "SW042") || !strings.Contains(report.Usage.Query, "P007") {
		t.Errorf("Expected query to contain switch and port verbatim, got %q", report.Usage.Query)
	}
	if report.Timestamp.IsZero() {
		t.Error("Expected completion timestamp to be set")
	}
}

func TestLookupValidationFailsFast(t *testing.T) {
	resolver := &fakeResolver{}
	monitor := &fakeMonitor{}
	service := NewUsageService(resolver, monitor, zaptest.NewLogger(t))

	_, err := service.Lookup(context.Background(), "320190-1234")
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !errors.Is(err, entities.ErrInvalidDate) {
		t.Errorf("Expected ErrInvalidDate, got %v", err)
	}
	if resolver.calls != 0 {
		t.Errorf("Expected resolver never invoked on invalid input, got %d calls", resolver.calls)
	}
	if monitor.calls != 0 {
		t.Errorf("Expected monitor never invoked on invalid input, got %d calls", monitor.calls)
	}
}

func TestLookupResolutionFailureShortCircuits(t *testing.T) {
	resolver := &fakeResolver{
		err: fmt.Errorf("%w: lookup API returned status 503", repositories.ErrResolutionFailed),
	}
	monitor := &fakeMonitor{}
	service := NewUsageService(resolver, monitor, zaptest.NewLogger(t))

	_, err := service.Lookup(context.Background(), "010190-1234")
	if err == nil {
		t.Fatal("Expected resolution error")
	}
	if !errors.Is(err, repositories.ErrResolutionFailed) {
		t.Errorf("Expected ErrResolutionFailed, got %v", err)
	}
	if resolver.calls != 1 {
		t.Errorf("Expected exactly one resolution attempt, got %d", resolver.calls)
	}
	if monitor.calls != 0 {
		t.Errorf("Expected monitor never invoked after resolution failure, got %d calls", monitor.calls)
	}
}

func TestLookupQueryFailure(t *testing.T) {
	resolver := &fakeResolver{
		switchPort: entities.SwitchPort{SwitchNumber: "SW001", PortNumber: "P001"},
	}
	monitor := &fakeMonitor{
		err: fmt.Errorf("%w: connection refused", repositories.ErrQueryFailed),
	}
	service := NewUsageService(resolver, monitor, zaptest.NewLogger(t))

	_, err := service.Lookup(context.Background(), "010190-1234")
	if err == nil {
		t.Fatal("Expected query error")
	}
	if !errors.Is(err, repositories.ErrQueryFailed) {
		t.Errorf("Expected ErrQueryFailed, got %v", err)
	}
	if monitor.calls != 1 {
		t.Errorf("Expected exactly one query attempt, got %d", monitor.calls)
	}
}

func TestLookupWindowIsLastDay(t *testing.T) {
	resolver := &fakeResolver{
		switchPort: entities.SwitchPort{SwitchNumber: "SW001", PortNumber: "P001"},
	}
	monitor := &fakeMonitor{}
	service := NewUsageService(resolver, monitor, zaptest.NewLogger(t))

	anchor := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return anchor }

	if _, err := service.Lookup(context.Background(), "010190-1234"); err != nil {
		t.Fatalf("Expected successful lookup: %v", err)
	}

	if !monitor.lastWindow.End.Equal(anchor) {
		t.Errorf("Expected window end %s, got %s", anchor, monitor.lastWindow.End)
	}
	if got := monitor.lastWindow.End.Sub(monitor.lastWindow.Start); got != 24*time.Hour {
		t.Errorf("Expected 24h window, got %s", got)
	}
}
