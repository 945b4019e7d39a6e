package notice

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan notice.StreamEvent) notice.StreamEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "stream closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream event")
		return notice.StreamEvent{}
	}
}

func TestNoticeService_ReplaceAndCurrent(t *testing.T) {
	svc := NewNoticeService(sse.NewHub(0), Config{TTL: time.Minute})
	defer svc.Stop()

	svc.Success("s1", "Absen MASUK berhasil")
	svc.Error("s1", "Gagal memuat riwayat")

	got, ok := svc.Current("s1")
	require.True(t, ok)
	assert.Equal(t, notice.KindError, got.Kind)
	assert.Equal(t, "Gagal memuat riwayat", got.Message)
	assert.Equal(t, time.Minute, got.ExpiresAt.Sub(got.CreatedAt))

	_, ok = svc.Current("s2")
	assert.False(t, ok)

	svc.Clear("s1")
	_, ok = svc.Current("s1")
	assert.False(t, ok)
}

func TestNoticeService_Expires(t *testing.T) {
	svc := NewNoticeService(sse.NewHub(0), Config{TTL: 50 * time.Millisecond})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream, cleanup := svc.Subscribe(ctx, "s1")
	defer cleanup()

	svc.Success("s1", "Data absensi berhasil dihapus")

	ev := receive(t, stream)
	assert.Equal(t, notice.EventNotice, ev.Event)
	published := ev.Data.(notice.Notice)

	ev = receive(t, stream)
	assert.Equal(t, notice.EventDismissed, ev.Event)
	assert.Equal(t, map[string]string{"id": published.ID}, ev.Data)

	_, ok := svc.Current("s1")
	assert.False(t, ok)
}

func TestNoticeService_ReplacedNoticeIsNotDismissedEarly(t *testing.T) {
	svc := NewNoticeService(sse.NewHub(0), Config{TTL: 300 * time.Millisecond})
	defer svc.Stop()

	svc.Success("s1", "first")
	time.Sleep(150 * time.Millisecond)
	svc.Success("s1", "second")
	time.Sleep(200 * time.Millisecond)

	got, ok := svc.Current("s1")
	require.True(t, ok)
	assert.Equal(t, "second", got.Message)
}

func TestNoticeService_SubscribeReplaysCurrent(t *testing.T) {
	svc := NewNoticeService(sse.NewHub(0), Config{TTL: time.Minute})
	defer svc.Stop()

	svc.Success("s1", "Login berhasil! Selamat datang, Siti")

	ctx, cancel := context.WithCancel(context.Background())
	stream, cleanup := svc.Subscribe(ctx, "s1")
	defer cleanup()

	ev := receive(t, stream)
	assert.Equal(t, "Login berhasil! Selamat datang, Siti", ev.Data.(notice.Notice).Message)

	cancel()
	select {
	case _, ok := <-stream:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed after cancel")
	}
}
