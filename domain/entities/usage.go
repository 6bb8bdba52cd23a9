package entities

import "time"

// UsageStatus tags a monitoring query result.
type UsageStatus string

const (
	UsageStatusSuccess UsageStatus = "success"
	UsageStatusError   UsageStatus = "error"
)

// SwitchPort is the infrastructure location a kennitala resolves to.
type SwitchPort struct {
	SwitchNumber string `json:"switch_number"`
	PortNumber   string `json:"port_number"`
	Message      string `json:"message,omitempty"`
}

// TimeRange bounds a monitoring query.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LastDay returns the 24-hour window ending at now.
func LastDay(now time.Time) TimeRange {
	return TimeRange{
		Start: now.Add(-24 * time.Hour),
		End:   now,
	}
}

// UsageResult wraps whatever payload the monitoring system returned. Data
// is opaque to this service; Query and Window record what was asked for,
// for traceability.
type UsageResult struct {
	Status UsageStatus            `json:"status"`
	Data   map[string]interface{} `json:"data,omitempty"`
	Query  string                 `json:"query"`
	Window TimeRange              `json:"time_range"`
}

// UsageReport is the assembled outcome of one lookup. It lives for the
// duration of a single request and is never persisted.
type UsageReport struct {
	Kennitala    string      `json:"kennitala"`
	SwitchNumber string      `json:"switch_number"`
	PortNumber   string      `json:"port_number"`
	Usage        UsageResult `json:"usage_data"`
	Timestamp    time.Time   `json:"timestamp"`
}
