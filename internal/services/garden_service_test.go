package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "sanctra-backend/pkg/errors"
)

func newTestGarden(t *testing.T) (*gardenService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewGardenService(rdb, zap.NewNop()).(*gardenService), mr
}

func TestGarden_JoinAssignsAliasAndCountsPresence(t *testing.T) {
	svc, _ := newTestGarden(t)
	ctx := context.Background()

	resp, err := svc.Join(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Alias)
	assert.Equal(t, 1, resp.Presence)

	resp2, err := svc.Join(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 2, resp2.Presence)

	// Rejoining does not double-count.
	resp3, err := svc.Join(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, resp3.Presence)
}

func TestGarden_StalePresenceIsPruned(t *testing.T) {
	svc, _ := newTestGarden(t)
	ctx := context.Background()

	base := time.Now()
	svc.now = func() time.Time { return base }

	_, err := svc.Join(ctx, "user-1")
	require.NoError(t, err)

	// user-1's heartbeat is now 2 minutes stale.
	svc.now = func() time.Time { return base.Add(2 * time.Minute) }

	presence, err := svc.Heartbeat(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 1, presence)
}

func TestGarden_WhisperRoundTrip(t *testing.T) {
	svc, _ := newTestGarden(t)
	ctx := context.Background()

	whisper, err := svc.PostWhisper(ctx, "user-1", "wanderer", "the moss is soft today")
	require.NoError(t, err)
	assert.NotEmpty(t, whisper.ID)
	assert.Equal(t, "wanderer", whisper.Alias)
	assert.Equal(t, 90*time.Second, whisper.ExpiresAt.Sub(whisper.CreatedAt))

	whispers, err := svc.ListWhispers(ctx)
	require.NoError(t, err)
	require.Len(t, whispers, 1)
	assert.Equal(t, whisper.ID, whispers[0].ID)
	assert.Equal(t, "the moss is soft today", whispers[0].Content)
}

func TestGarden_ExpiredWhispersDisappear(t *testing.T) {
	svc, _ := newTestGarden(t)
	ctx := context.Background()

	base := time.Now()
	svc.now = func() time.Time { return base }

	_, err := svc.PostWhisper(ctx, "user-1", "wanderer", "fading words")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(91 * time.Second) }

	whispers, err := svc.ListWhispers(ctx)
	require.NoError(t, err)
	assert.Empty(t, whispers)
}

func TestGarden_CooldownBlocksRapidWhispers(t *testing.T) {
	svc, mr := newTestGarden(t)
	ctx := context.Background()

	_, err := svc.PostWhisper(ctx, "user-1", "wanderer", "first")
	require.NoError(t, err)

	_, err = svc.PostWhisper(ctx, "user-1", "wanderer", "second")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrCooldownActive))
	assert.Equal(t, 429, apperrors.GetStatusCode(err))

	// Another user is unaffected.
	_, err = svc.PostWhisper(ctx, "user-2", "seeker", "hello")
	require.NoError(t, err)

	// After the cooldown TTL lapses the first user may whisper again.
	mr.FastForward(31 * time.Second)
	_, err = svc.PostWhisper(ctx, "user-1", "wanderer", "third")
	require.NoError(t, err)
}

func TestGarden_LongWhisperIsTruncated(t *testing.T) {
	svc, _ := newTestGarden(t)

	whisper, err := svc.PostWhisper(context.Background(), "user-1", "wanderer", strings.Repeat("x", 150))
	require.NoError(t, err)
	assert.Len(t, whisper.Content, 100)
}
