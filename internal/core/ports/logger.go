package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a diagnostic message with optional key/value attributes.
	Debug(msg string, attrs ...any)
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
