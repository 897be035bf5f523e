// internal/handlers/messages.go
package handlers

import (
	"encoding/json"

	"mendicot/internal/models"
)

// Inbound client actions. Each websocket frame is a tagged envelope;
// payloads are decoded and validated here so the game core only ever
// sees well-formed input.
const (
	actionJoinRoom  = "joinRoom"
	actionJoinTeam  = "joinTeam"
	actionStartGame = "startGame"
	actionPlayCard  = "playCard"
	actionLeaveRoom = "leaveRoom"
)

type clientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type joinRoomPayload struct {
	// RoomCode may be empty, in which case the server generates a fresh
	// unique code and reports it back via roomJoined.
	RoomCode string `json:"roomCode"`
	Nickname string `json:"nickname"`
}

type joinTeamPayload struct {
	RoomCode string `json:"roomCode"`
	Team     string `json:"team"`
}

type startGamePayload struct {
	RoomCode string `json:"roomCode"`
}

type playCardPayload struct {
	RoomCode string      `json:"roomCode"`
	Card     models.Card `json:"card"`
}

type leaveRoomPayload struct {
	RoomCode string `json:"roomCode"`
}
