package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"
)

var (
	logger    = slog.Default()
	startTime = time.Now()
)

// ParseLevel maps a level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// InitLogger initializes the structured logging system
func InitLogger(level slog.Level) {
	InitLoggerTo(os.Stdout, level)
}

// InitLoggerTo initializes the logger with a custom destination
func InitLoggerTo(w io.Writer, level slog.Level) {
	startTime = time.Now()

	// Configure JSON logging for production
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}

	handler := slog.NewJSONHandler(w, opts)
	logger = slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)

	LogInfo("Logger initialized successfully",
		"handler", "json",
		"level", level.String(),
		"source_enabled", true)
}

// LogInfo logs an informational message
func LogInfo(msg string, args ...any) {
	logger.Info(msg, args...)
}

// LogError logs an error message with error details
func LogError(msg string, err error, args ...any) {
	allArgs := append([]any{"error", err}, args...)
	logger.Error(msg, allArgs...)
}

// LogWarn logs a warning message
func LogWarn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// LogDebug logs a debug message
func LogDebug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// LogCritical logs a critical error and also writes to stderr
func LogCritical(msg string, err error, args ...any) {
	allArgs := append([]any{"error", err, "severity", "critical"}, args...)
	logger.Error(msg, allArgs...)
	log.Printf("CRITICAL: %s: %v", msg, err)
}

// LogSecurityEvent logs security-related events
func LogSecurityEvent(event string, severity string, args ...any) {
	allArgs := append([]any{
		"event_type", "security",
		"security_event", event,
		"severity", severity,
	}, args...)
	logger.Warn("Security event", allArgs...)
}

// LogHTTPRequest logs HTTP request details
func LogHTTPRequest(method, path, userAgent, ip string, statusCode int, duration time.Duration) {
	LogInfo("HTTP request",
		"method", method,
		"path", path,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
		"user_agent", userAgent,
		"client_ip", ip)
}

// LogValidation logs the outcome of a form validation pass. Field values
// are never logged.
func LogValidation(failedFields []string, duration time.Duration, success bool) {
	LogDebug("Form validation",
		"failed_fields", failedFields,
		"failed_count", len(failedFields),
		"duration_us", duration.Microseconds(),
		"success", success)
}

// LogToast logs a toast state transition
func LogToast(transition string, args ...any) {
	allArgs := append([]any{"transition", transition}, args...)
	logger.Debug("Toast transition", allArgs...)
}

// Uptime returns the time since the logger was initialized
func Uptime() time.Duration {
	return time.Since(startTime)
}
