package port

// NotifyKind classifies a user-facing notification.
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
)

// Notifier surfaces operation outcomes to the user. Implementations
// must never block the caller.
type Notifier interface {
	Notify(message string, kind NotifyKind)
}

// Celebrator triggers the decorative signup effect. Fire and forget,
// no result is consumed.
type Celebrator interface {
	Celebrate()
}
