// internal/pkg/notify/notify.go
package notify

import "github.com/sirupsen/logrus"

// Level classifies a user-facing notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Notifier is the sink the checkout and sync components emit through. The
// rendering (toast, terminal display) belongs to whoever implements it.
type Notifier interface {
	Notify(message string, level Level)
}

// LogNotifier writes notifications to the structured log
type LogNotifier struct {
	logger *logrus.Logger
}

// NewLogNotifier creates a notifier backed by the given logger
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the message at a level matching the notification level
func (n *LogNotifier) Notify(message string, level Level) {
	entry := n.logger.WithField("notification", string(level))
	switch level {
	case LevelError:
		entry.Error(message)
	case LevelWarning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}
