package mail

import (
	"context"

	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/model"
)

var _ model.Mailer = (*Log)(nil)

// Log writes outgoing mail to the application log instead of sending it.
// Used in development where no mail provider is configured.
type Log struct {
	logger *logger.Logger
}

func NewLog(logger *logger.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(_ context.Context, message model.Message) error {
	l.logger.Info("Mail: message not sent, logging instead",
		"to", message.To,
		"subject", message.Subject,
		"body", message.Body)
	return nil
}
