package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserLimiter(t *testing.T) {
	l := newUserLimiter(50 * time.Millisecond)

	require.True(t, l.Allow("u1"))
	require.False(t, l.Allow("u1"))
	require.True(t, l.Allow("u2")) // cooldown es por usuario

	time.Sleep(60 * time.Millisecond)
	require.True(t, l.Allow("u1"))
}
