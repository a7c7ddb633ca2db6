package services

import "errors"

// ErrConversationNotFound is returned when a session id does not resolve to
// a stored conversation. A missing session on a query is not an error (a new
// session is created); it only matters for history lookup and escalation.
var ErrConversationNotFound = errors.New("conversation not found")
