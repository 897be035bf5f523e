// internal/handlers/game_server.go
package handlers

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mendicot/internal/game"
)

// GameServer owns the room registry and the set of live connections.
// It is the delivery fabric rooms broadcast through: rooms address
// members by player ID and the server maps those to connections.
type GameServer struct {
	logger *logrus.Logger
	store  *game.RoomStore
	origin string

	mu      sync.Mutex
	clients map[uuid.UUID]*client
}

// client is one websocket connection's server-side handle. Outbound
// messages are queued on out and drained by the write pump, so room
// broadcasts never block on a slow socket.
type client struct {
	id  uuid.UUID
	out chan game.Message

	// roomCode is the normalized code of the room this connection has
	// joined, if any. Only the read pump goroutine touches it.
	roomCode string
}

func NewGameServer(logger *logrus.Logger, store *game.RoomStore, allowedOrigin string) *GameServer {
	return &GameServer{
		logger:  logger,
		store:   store,
		origin:  allowedOrigin,
		clients: make(map[uuid.UUID]*client),
	}
}

// deliver implements the per-member hook installed on rooms. It is
// called with the room lock held; the buffered, non-blocking send keeps
// a stalled client from wedging its room. A full buffer drops the
// message for that client only.
func (s *GameServer) deliver(playerID uuid.UUID, m game.Message) {
	s.mu.Lock()
	c, ok := s.clients[playerID]
	s.mu.Unlock()
	if !ok {
		return
	}
	select {
	case c.out <- m:
	default:
		s.logger.Warnf("player %s send buffer full, dropping %s", playerID, m.Type)
	}
}

func (s *GameServer) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.id] = c
}

func (s *GameServer) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.clients[c.id]; ok && cur == c {
		delete(s.clients, c.id)
	}
}
