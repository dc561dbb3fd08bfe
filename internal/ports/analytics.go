package ports

// Analytics captures product events. Capture must never block the caller.
type Analytics interface {
	Capture(event string, properties map[string]any)
}
