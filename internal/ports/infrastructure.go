package ports

import "context"

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordWeatherFetch(ctx context.Context, method, outcome string)
	ObserveFetchDuration(ctx context.Context, method string, seconds float64)
	RecordSessionTransition(ctx context.Context, transition string)
}
