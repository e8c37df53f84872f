package admin

import "errors"

// Common admin service errors
var (
	// ErrNoValidRecipients is returned when every candidate recipient
	// failed the directory lookup, so there is no one to notify.
	ErrNoValidRecipients = errors.New("no valid recipients found")

	// ErrEnqueueFailed is returned when the notification job could not
	// be handed to the background queue. The request fails; nothing was
	// partially submitted.
	ErrEnqueueFailed = errors.New("failed to enqueue notification job")
)
