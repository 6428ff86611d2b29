package notifier

// Notifier delivers one status line to the operator. Delivery failures are
// logged by the implementation and never returned.
type Notifier interface {
	Send(message string)
}
