package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotice_Expired(t *testing.T) {
	now := time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC)
	n := Notice{CreatedAt: now, ExpiresAt: now.Add(DefaultTTL)}

	assert.False(t, n.Expired(now))
	assert.False(t, n.Expired(now.Add(4*time.Second)))
	assert.True(t, n.Expired(now.Add(DefaultTTL)))
}
