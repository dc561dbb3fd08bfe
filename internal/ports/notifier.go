package ports

// Link is an actionable URL shown alongside a notification
type Link struct {
	Href string
	Text string
}

// Notifier surfaces user-visible messages (the toasts of the UI)
type Notifier interface {
	Info(message string)
	Warn(message string)
	Error(message string)
	Success(title, message string, link *Link)
}
