// Package logging provides structured logging utilities for the jettox collector.
//
// # Overview
//
// This package wraps the standard library slog package with collector-specific defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("jettox", "v1.0.0")
//	    defer slog.Info("application started")
//
//	    // Use slog as normal
//	    slog.Info("processing request", "id", "req-123")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("collect", "v1.0.0", "debug")
//	logger.Info("collection starting", "root", root)
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cli", "v1.0.0", "warn")
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug jettox collect
//	LOG_LEVEL=error jettox collect --parallel
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "running command",
//	    "module": "jettox",
//	    "version": "v1.0.0",
//	    "command": "systeminfo"
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "command.(*Runner).Run",
//	        "file": "runner.go",
//	        "line": 45
//	    },
//	    "msg": "command finished",
//	    "module": "jettox",
//	    "version": "v1.0.0"
//	}
//
// # Best Practices
//
// 1. Set default logger early in main():
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("myapp", version)
//	    defer slog.Info("application started")
//	    // ...
//	}
//
// 2. Include context in log messages:
//
//	slog.Info("domain collected",
//	    "domain", "storage",
//	    "elapsed", elapsed,
//	)
//
// 3. Use appropriate log levels:
//
//	slog.Debug("parsed rows", "n", n)      // Development/troubleshooting
//	slog.Info("running command")          // Normal operations
//	slog.Warn("command timed out")        // Potential issues
//	slog.Error("failed to spawn command") // Errors requiring action
//
// 4. Log errors with context:
//
//	slog.Error("failed to write artifact",
//	    "error", err,
//	    "path", path,
//	)
//
// # Integration
//
// The run log (pkg/runlog) wraps the handler created here, so every record a
// component emits reaches both stderr and the run's log artifact.
package logging
