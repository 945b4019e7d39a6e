package notice

// Event names sent over the notice stream
const (
	EventNotice    = "notice"
	EventDismissed = "notice_dismissed"
	EventConnected = "connected"
)

// StreamEvent is one message of the notice stream.
type StreamEvent struct {
	Event string
	Data  any
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
