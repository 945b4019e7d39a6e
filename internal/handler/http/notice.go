package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/absensi-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/jwt"
)

const streamKeepalive = 30 * time.Second

type NoticeHandler interface {
	Current(w http.ResponseWriter, r *http.Request)
	// SSE
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type noticeHandlerImpl struct {
	noticeService notice.NoticeService
	jwtService    jwt.Service
}

func NewNoticeHandler(noticeService notice.NoticeService, jwtService jwt.Service) NoticeHandler {
	return &noticeHandlerImpl{
		noticeService: noticeService,
		jwtService:    jwtService,
	}
}

// Current returns the live banner of the session, or null.
func (h *noticeHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	current, ok := h.noticeService.Current(id)
	if !ok {
		response.Success(w, nil)
		return
	}
	response.Success(w, current)
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *noticeHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(id)
	if err != nil {
		slog.Error("GenerateSSEToken error", "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, notice.SSETokenResponse{
		Token:     token,
		ExpiresIn: int64(expiresIn),
	})
}

// Stream pushes the session's banners over SSE
func (h *noticeHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	// Validate SSE token
	id, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.noticeService.Subscribe(r.Context(), id)
	defer cleanup()

	// Send initial connection event
	fmt.Fprintf(w, "event: %s\ndata: {\"status\":\"connected\"}\n\n", notice.EventConnected)
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode notice event", "error", err, "event", event.Event)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
