package alert

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes alerts to the log instead of delivering them.
type LogSender struct {
	logger *zerolog.Logger
}

func NewLogSender(logger *zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, phone, message string) error {
	s.logger.Info().Str("phone", phone).Str("message", message).Msg("alert")
	return nil
}
