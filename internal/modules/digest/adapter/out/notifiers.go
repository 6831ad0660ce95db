package out

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"readrise/internal/modules/digest/domain"
	digestout "readrise/internal/modules/digest/port/out"
)

// DesktopNotifier raises a native desktop notification on the local machine.
type DesktopNotifier struct {
	notify func(title, message string) error
}

func NewDesktopNotifier() digestout.Notifier {
	beeep.AppName = "readrise"
	return &DesktopNotifier{notify: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

func (n *DesktopNotifier) Notify(_ context.Context, recipient domain.Recipient, msg domain.Message) error {
	if err := n.notify(msg.Title, msg.Body); err != nil {
		return fmt.Errorf("desktop notification for %s: %w", recipient.UserID, err)
	}
	return nil
}

// LogNotifier writes summaries to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) digestout.Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, recipient domain.Recipient, msg domain.Message) error {
	n.logger.Info(msg.Title,
		zap.String("user_id", recipient.UserID),
		zap.String("display_name", recipient.DisplayName),
		zap.String("body", msg.Body),
	)
	return nil
}

// NewNotifier selects a notifier by name: "desktop" or "log".
func NewNotifier(kind string, logger *zap.Logger) (digestout.Notifier, error) {
	switch kind {
	case "", "log":
		return NewLogNotifier(logger), nil
	case "desktop":
		return NewDesktopNotifier(), nil
	default:
		return nil, fmt.Errorf("unsupported notifier %q", kind)
	}
}
