package ports

type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
	NotifyInfo    NotificationLevel = "info"
)

// Notifier is the explicitly passed notification sink. Workflows push
// user-facing messages here and never print directly.
type Notifier interface {
	Push(level NotificationLevel, message string)
}
