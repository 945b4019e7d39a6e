package notice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notice service configuration
type Config struct {
	TTL          time.Duration // default: 5 seconds
	StreamBuffer int           // default: 10
}

type slot struct {
	notice notice.Notice
	timer  *time.Timer
}

type service struct {
	hub    *sse.Hub
	config Config
	now    func() time.Time

	mu      sync.Mutex
	current map[string]*slot
	stopped bool
}

// NewNoticeService creates the banner service. Each session holds at most
// one notice; it is dismissed after the TTL or replaced by the next one.
func NewNoticeService(hub *sse.Hub, cfg Config) notice.NoticeService {
	if cfg.TTL <= 0 {
		cfg.TTL = notice.DefaultTTL
	}
	if cfg.StreamBuffer <= 0 {
		cfg.StreamBuffer = 10
	}
	return &service{
		hub:     hub,
		config:  cfg,
		now:     time.Now,
		current: make(map[string]*slot),
	}
}

func (s *service) Success(sessionID, message string) {
	s.publish(sessionID, notice.KindSuccess, message)
}

func (s *service) Error(sessionID, message string) {
	s.publish(sessionID, notice.KindError, message)
}

func (s *service) publish(sessionID string, kind notice.Kind, message string) {
	now := s.now()
	n := notice.Notice{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.TTL),
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if prev, ok := s.current[sessionID]; ok {
		prev.timer.Stop()
	}
	sl := &slot{notice: n}
	sl.timer = time.AfterFunc(s.config.TTL, func() { s.expire(sessionID, n.ID) })
	s.current[sessionID] = sl
	s.mu.Unlock()

	slog.Debug("Notice published", "session_id", sessionID, "kind", kind)
	s.hub.Publish(sessionID, sse.Event{Event: notice.EventNotice, Data: n})
}

// expire dismisses the notice with the given id if it is still current.
func (s *service) expire(sessionID, id string) {
	s.mu.Lock()
	sl, ok := s.current[sessionID]
	if !ok || sl.notice.ID != id {
		s.mu.Unlock()
		return
	}
	delete(s.current, sessionID)
	s.mu.Unlock()

	s.hub.Publish(sessionID, sse.Event{Event: notice.EventDismissed, Data: map[string]string{"id": id}})
}

func (s *service) Current(sessionID string) (notice.Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.current[sessionID]
	if !ok || sl.notice.Expired(s.now()) {
		return notice.Notice{}, false
	}
	return sl.notice, true
}

func (s *service) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sl, ok := s.current[sessionID]; ok {
		sl.timer.Stop()
		delete(s.current, sessionID)
	}
}

// Subscribe streams notices of a session until ctx is done or the returned
// cleanup is called.
func (s *service) Subscribe(ctx context.Context, sessionID string) (<-chan notice.StreamEvent, func()) {
	events, unsubscribe := s.hub.Subscribe(sessionID)
	out := make(chan notice.StreamEvent, s.config.StreamBuffer+1)

	done := make(chan struct{})
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			close(done)
			unsubscribe()
		})
	}

	if n, ok := s.Current(sessionID); ok {
		out <- notice.StreamEvent{Event: notice.EventNotice, Data: n}
	}

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				cleanup()
				return
			case <-done:
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				select {
				case out <- notice.StreamEvent{Event: ev.Event, Data: ev.Data}:
				case <-ctx.Done():
					cleanup()
					return
				case <-done:
					return
				}
			}
		}
	}()

	return out, cleanup
}

func (s *service) Stop() {
	s.mu.Lock()
	s.stopped = true
	for id, sl := range s.current {
		sl.timer.Stop()
		delete(s.current, id)
	}
	s.mu.Unlock()

	s.hub.CloseAll()
	slog.Info("Notice service stopped")
}
