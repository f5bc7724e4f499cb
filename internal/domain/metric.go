package domain

import "time"

// MetricType enumerates recorded measurement kinds.
type MetricType string

const (
	MetricResponseTime MetricType = "response_time"
	MetricResponse     MetricType = "response"
	MetricEscalation   MetricType = "escalation"
	MetricError        MetricType = "error"
)

// Metric is an append-only observability measurement.
type Metric struct {
	ID         string
	Channel    Channel
	MetricType MetricType
	Value      float64
	Metadata   map[string]any
	RecordedAt time.Time
}

// ChannelMetric is an aggregated view over a trailing window.
type ChannelMetric struct {
	Channel    Channel
	MetricType MetricType
	AvgValue   float64
	Count      int64
}
