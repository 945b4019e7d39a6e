package notice

import "context"

type NoticeService interface {
	Success(sessionID, message string)
	Error(sessionID, message string)
	// Current returns the live notice of a session, if any.
	Current(sessionID string) (Notice, bool)
	Subscribe(ctx context.Context, sessionID string) (<-chan StreamEvent, func())
	// Clear drops the session's notice without broadcasting.
	Clear(sessionID string)
	Stop()
}
