package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantIsolation(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	alice := New("alice", backend)
	bob := New("bob", backend)

	require.NoError(t, alice.Set(ctx, KeyProfile, "alice-profile"))

	assert.Equal(t, "alice-profile", alice.GetString(ctx, KeyProfile, ""))
	assert.Equal(t, "nothing", bob.GetString(ctx, KeyProfile, "nothing"),
		"bob must never see alice's values")

	// same logical key, distinct storage keys
	require.NoError(t, bob.Set(ctx, KeyProfile, "bob-profile"))
	assert.Equal(t, "alice-profile", alice.GetString(ctx, KeyProfile, ""))
}

func TestGetStringUnwrapsJSONEncoding(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	st := New("t1", backend)

	// a value written by an older client as a JSON-quoted string
	require.NoError(t, backend.Set(ctx, "t1:legacy", `"quoted"`))
	assert.Equal(t, "quoted", st.GetString(ctx, "legacy", ""))

	// raw strings come back as-is, not as a decode error
	require.NoError(t, backend.Set(ctx, "t1:raw", "plain text"))
	assert.Equal(t, "plain text", st.GetString(ctx, "raw", ""))

	// missing key falls back to the default
	assert.Equal(t, "def", st.GetString(ctx, "absent", "def"))
}

func TestGetJSONDecodeFailureFallsBack(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	st := New("t1", backend)

	require.NoError(t, backend.Set(ctx, "t1:broken", "{not json"))

	var out map[string]string
	assert.False(t, st.GetJSON(ctx, "broken", &out))
	assert.Nil(t, out)
}

func TestSetRoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	st := New("t1", backend)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, st.Set(ctx, "p", payload{Name: "cafe", Count: 3}))

	var got payload
	require.True(t, st.GetJSON(ctx, "p", &got))
	assert.Equal(t, payload{Name: "cafe", Count: 3}, got)
}

func TestIncr(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	st := New("t1", backend)

	assert.Equal(t, 1, st.Incr(ctx, KeyTripsPlanned, 1))
	assert.Equal(t, 4, st.Incr(ctx, KeyTripsPlanned, 3))
	assert.Equal(t, 4, st.GetInt(ctx, KeyTripsPlanned, 0))

	// garbage under a counter key resets to the delta, not a crash
	require.NoError(t, backend.Set(ctx, "t1:"+KeyPlacesVisited, "garbage"))
	assert.Equal(t, 2, st.Incr(ctx, KeyPlacesVisited, 2))
}

func TestRemove(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	st := New("t1", backend)

	require.NoError(t, st.Set(ctx, KeyActiveTrip, "x"))
	require.NoError(t, st.Remove(ctx, KeyActiveTrip))
	assert.Equal(t, "gone", st.GetString(ctx, KeyActiveTrip, "gone"))
}
