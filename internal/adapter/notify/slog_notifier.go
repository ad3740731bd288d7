package notify

import (
	"log/slog"

	"github.com/rl1809/luxestore/internal/port"
)

// SlogNotifier surfaces operation outcomes as structured log events.
// It stands in for the storefront's toast messages and confetti; the
// core never waits on it.
type SlogNotifier struct {
	log *slog.Logger
}

func NewSlogNotifier(log *slog.Logger) *SlogNotifier {
	return &SlogNotifier{log: log}
}

func (n *SlogNotifier) Notify(message string, kind port.NotifyKind) {
	if kind == port.NotifyError {
		n.log.Warn(message, "notification", string(kind))
		return
	}
	n.log.Info(message, "notification", string(kind))
}

// Celebrate logs the decorative signup effect. No result is consumed.
func (n *SlogNotifier) Celebrate() {
	n.log.Info("confetti triggered", "notification", "celebration")
}
