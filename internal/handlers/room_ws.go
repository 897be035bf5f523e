// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"

	"mendicot/internal/game"
	"mendicot/internal/models"
)

// WSHandler upgrades a connection and runs its read/write pumps. One
// websocket serves the whole session: lobby, team selection, and play.
func (s *GameServer) WSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := ensurePlayerIdentity(w, r)
		if err != nil {
			s.logger.Warnf("identity error for %s: %v", r.RemoteAddr, err)
			http.Error(w, "could not establish identity", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"mendicot"},
			OriginPatterns: []string{s.origin},
		})
		if err != nil {
			s.logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "mendicot" {
			c.Close(BadSubprotocolError, "client must speak the mendicot subprotocol")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		cl := &client{
			id:  playerID,
			out: make(chan game.Message, 32),
		}
		s.register(cl)
		s.logger.Infof("player %s connected from %s", playerID, r.RemoteAddr)

		go s.writePump(ctx, c, cl)
		s.readPump(ctx, c, cl)

		// Disconnect: an ordinary room mutation, never an error.
		s.unregister(cl)
		if cl.roomCode != "" {
			if destroyed := s.store.Leave(cl.roomCode, cl.id); destroyed {
				s.logger.Infof("room %s destroyed (last player left)", cl.roomCode)
			}
		}
		s.logger.Infof("player %s disconnected", playerID)
	}
}

// readPump decodes inbound envelopes and routes them until the
// connection closes.
func (s *GameServer) readPump(ctx context.Context, c *websocket.Conn, cl *client) {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return
			}
			if strings.Contains(err.Error(), "context canceled") {
				return
			}
			s.logger.Warnf("player %s read error: %v", cl.id, err)
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(cl, "invalid JSON")
			continue
		}
		s.handleMessage(cl, msg)
	}
}

// handleMessage applies one client action. Unknown room codes are a
// silent no-op (logged); rejected actions go back to the sender only.
func (s *GameServer) handleMessage(cl *client, msg clientMessage) {
	switch msg.Type {
	case actionJoinRoom:
		var p joinRoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || strings.TrimSpace(p.Nickname) == "" {
			s.sendError(cl, "joinRoom requires a nickname")
			return
		}
		code := game.NormalizeCode(p.RoomCode)
		if code == "" {
			fresh, err := s.store.NewCode()
			if err != nil {
				s.sendError(cl, "could not create a room")
				return
			}
			code = fresh
		}

		room, created := s.store.GetOrCreate(code, s.deliver)
		if err := room.Join(cl.id, strings.TrimSpace(p.Nickname)); err != nil {
			// Rejected (room mid-round): the connection keeps whatever
			// room it was in.
			s.sendError(cl, err.Error())
			return
		}

		// One room per connection: joining a new table leaves the old one.
		if cl.roomCode != "" && cl.roomCode != room.Code {
			s.store.Leave(cl.roomCode, cl.id)
		}
		cl.roomCode = room.Code
		s.sendTo(cl, game.MustMessage(game.EventRoomJoined, game.RoomJoinedPayload{RoomCode: room.Code}))
		if created {
			s.logger.Infof("room %s created by %s", room.Code, cl.id)
		}

	case actionJoinTeam:
		var p joinTeamPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError(cl, "invalid joinTeam payload")
			return
		}
		room, ok := s.store.Get(p.RoomCode)
		if !ok {
			s.logger.Warnf("joinTeam for unknown room %q from %s", p.RoomCode, cl.id)
			return
		}
		if err := room.JoinTeam(cl.id, models.Team(p.Team)); err != nil {
			s.sendError(cl, err.Error())
		}

	case actionStartGame:
		var p startGamePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError(cl, "invalid startGame payload")
			return
		}
		room, ok := s.store.Get(p.RoomCode)
		if !ok {
			s.logger.Warnf("startGame for unknown room %q from %s", p.RoomCode, cl.id)
			return
		}
		if err := room.Start(cl.id); err != nil {
			s.sendError(cl, err.Error())
			return
		}
		s.logger.Infof("room %s: game started by %s", room.Code, cl.id)

	case actionPlayCard:
		var p playCardPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError(cl, "invalid playCard payload")
			return
		}
		room, ok := s.store.Get(p.RoomCode)
		if !ok {
			s.logger.Warnf("playCard for unknown room %q from %s", p.RoomCode, cl.id)
			return
		}
		if err := room.PlayCard(cl.id, p.Card); err != nil {
			s.sendError(cl, err.Error())
		}

	case actionLeaveRoom:
		var p leaveRoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.sendError(cl, "invalid leaveRoom payload")
			return
		}
		code := game.NormalizeCode(p.RoomCode)
		if destroyed := s.store.Leave(code, cl.id); destroyed {
			s.logger.Infof("room %s destroyed (last player left)", code)
		}
		if cl.roomCode == code {
			cl.roomCode = ""
		}

	default:
		s.sendError(cl, "unknown action type: "+msg.Type)
	}
}

func (s *GameServer) sendTo(cl *client, m game.Message) {
	select {
	case cl.out <- m:
	default:
		s.logger.Warnf("player %s send buffer full, dropping %s", cl.id, m.Type)
	}
}

func (s *GameServer) sendError(cl *client, text string) {
	s.sendTo(cl, game.MustMessage(game.EventError, game.ErrorPayload{Message: text}))
}

// writePump drains the client's outbound queue onto the socket and
// pings periodically so dead connections surface as disconnects.
func (s *GameServer) writePump(ctx context.Context, c *websocket.Conn, cl *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case m := <-cl.out:
			data, err := json.Marshal(m)
			if err != nil {
				s.logger.Warnf("player %s: marshal %s: %v", cl.id, m.Type, err)
				continue
			}
			if err := c.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Ping(ctx); err != nil {
				return
			}
		}
	}
}
