package game

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Room codes exclude ambiguous characters: 0, O, 1, I, L.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeLength = 6

// RoomStore is the registry of live rooms, keyed by normalized room
// code. Rooms are created on first join and destroyed when their last
// player leaves. The store lock only guards the map; each room carries
// its own lock, so rooms are processed in parallel.
type RoomStore struct {
	trickPause time.Duration
	roundPause time.Duration

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRoomStore(trickPause, roundPause time.Duration) *RoomStore {
	return &RoomStore{
		trickPause: trickPause,
		roundPause: roundPause,
		rooms:      make(map[string]*Room),
	}
}

// NormalizeCode maps a caller-supplied code onto the registry key.
// Codes are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GetOrCreate returns the room for the code, creating it if absent.
// created tells the caller whether this join founded the room. deliver
// is installed only on creation.
func (s *RoomStore) GetOrCreate(code string, deliver func(uuid.UUID, Message)) (room *Room, created bool) {
	key := NormalizeCode(code)
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.rooms[key]; ok {
		return r, false
	}
	r := NewRoom(key, s.trickPause, s.roundPause)
	r.Deliver = deliver
	s.rooms[key] = r
	return r, true
}

// Get looks up a room. A miss is not an error; callers treat unknown
// codes as a no-op per the registry contract.
func (s *RoomStore) Get(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[NormalizeCode(code)]
	return r, ok
}

// Leave removes the player from the room and destroys the room if it
// became empty, cancelling any pending scheduled transition. Reports
// whether the room was destroyed.
func (s *RoomStore) Leave(code string, playerID uuid.UUID) (destroyed bool) {
	key := NormalizeCode(code)

	s.mu.Lock()
	r, ok := s.rooms[key]
	s.mu.Unlock()
	if !ok {
		return false
	}

	if r.Leave(playerID) {
		s.mu.Lock()
		// Pointer match: never delete a room that re-founded the key
		// while the store lock was released.
		if cur, ok := s.rooms[key]; ok && cur == r {
			delete(s.rooms, key)
		}
		s.mu.Unlock()
		return true
	}
	return false
}

// Count returns the number of live rooms.
func (s *RoomStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// NewCode generates a fresh room code that does not collide with any
// live room. Codes are short, so collisions are possible; generation
// retries against the registry rather than trusting chance.
func (s *RoomStore) NewCode() (string, error) {
	for attempt := 0; attempt < 100; attempt++ {
		code, err := generateCode()
		if err != nil {
			return "", err
		}
		if _, taken := s.Get(code); !taken {
			return code, nil
		}
	}
	return "", errors.New("could not find an unused room code")
}

func generateCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
