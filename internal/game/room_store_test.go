package game

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *RoomStore {
	return NewRoomStore(10*time.Millisecond, 10*time.Millisecond)
}

func TestRoomCodesAreCaseInsensitive(t *testing.T) {
	s := newTestStore()

	r1, created := s.GetOrCreate("abc123", nil)
	assert.True(t, created)
	assert.Equal(t, "ABC123", r1.Code)

	r2, created := s.GetOrCreate("ABC123", nil)
	assert.False(t, created)
	assert.Same(t, r1, r2)

	got, ok := s.Get("  abc123 ")
	require.True(t, ok)
	assert.Same(t, r1, got)
}

func TestUnknownRoomIsAMiss(t *testing.T) {
	s := newTestStore()
	_, ok := s.Get("NOPE99")
	assert.False(t, ok)
	assert.False(t, s.Leave("NOPE99", uuid.New()))
}

func TestLeaveDestroysEmptyRoom(t *testing.T) {
	s := newTestStore()

	p1, p2 := uuid.New(), uuid.New()
	room, _ := s.GetOrCreate("GAME42", nil)
	require.NoError(t, room.Join(p1, "Alex"))
	require.NoError(t, room.Join(p2, "Sam"))

	assert.False(t, s.Leave("GAME42", p1))
	require.Equal(t, 1, s.Count())

	assert.True(t, s.Leave("GAME42", p2))
	assert.Equal(t, 0, s.Count())
	_, ok := s.Get("GAME42")
	assert.False(t, ok)
}

func TestNewCodeShapeAndUniqueness(t *testing.T) {
	s := newTestStore()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := s.NewCode()
		require.NoError(t, err)
		assert.Len(t, code, codeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, ch), "unexpected character %q", ch)
		}
		seen[code] = true

		// Register the code so later draws must avoid it.
		room, created := s.GetOrCreate(code, nil)
		require.True(t, created)
		require.NoError(t, room.Join(uuid.New(), "p"))
	}
	assert.Len(t, seen, 50, "generated codes should not collide with live rooms")
}
