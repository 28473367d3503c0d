package interfaces

// Logger defines the interface for logging throughout the application.
// The production implementation is backed by logrus; tests use func-field mocks.
//
// Example usage:
//
//	logger.Info("Fetched source", map[string]interface{}{
//		"source":   "TechCrunch",
//		"articles": 4,
//	})
//
//	logger.Warn("Skipping source", map[string]interface{}{
//		"source": "TechCrunch",
//		"error":  err.Error(),
//	})
type Logger interface {
	// Debug logs detailed troubleshooting information.
	Debug(msg string, fields map[string]interface{})

	// Info logs general progress of runs and connections.
	Info(msg string, fields map[string]interface{})

	// Warn logs degraded behavior that does not stop a run.
	Warn(msg string, fields map[string]interface{})

	// Error logs failures that need attention.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards every entry
type NopLogger struct{}

// Debug implements Logger
func (NopLogger) Debug(string, map[string]interface{}) {}

// Info implements Logger
func (NopLogger) Info(string, map[string]interface{}) {}

// Warn implements Logger
func (NopLogger) Warn(string, map[string]interface{}) {}

// Error implements Logger
func (NopLogger) Error(string, map[string]interface{}) {}
