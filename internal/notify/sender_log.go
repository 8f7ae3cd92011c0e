package notify

import (
	"context"
	"log/slog"

	"ruleproc/internal/domain"
)

// LogSender implements the LOG notification method by emitting the
// rendered message through the application logger, matching the
// teacher's console/file tee idiom (internal/logging) rather than a
// separate sink.
// Params: none.
// Returns: none.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender builds a LogSender writing through logger.
// Params: logger is the application's structured logger.
// Returns: the ready sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Method reports LOG.
func (s *LogSender) Method() domain.NotifyMethod { return domain.MethodLog }

// Send writes message at info level. The LOG method never fails.
// Params: recipient is unused for LOG.
// Returns: always nil.
func (s *LogSender) Send(_ context.Context, message, _ string) error {
	s.logger.Info(message)
	return nil
}
