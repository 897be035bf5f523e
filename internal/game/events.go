package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"mendicot/internal/models"
)

// EventType tags an outbound message to room members.
type EventType string

const (
	EventUpdatePlayers EventType = "updatePlayers"
	EventUpdateHost    EventType = "updateHost"
	EventRoomJoined    EventType = "roomJoined"   // unicast to the joiner
	EventReceiveCards  EventType = "receiveCards" // unicast to the hand's owner
	EventUpdateTable   EventType = "updateTable"
	EventTurnUpdate    EventType = "turnUpdate"
	EventTrumpUpdate   EventType = "trumpUpdate"
	EventScoreUpdate   EventType = "scoreUpdate"
	EventRoundOver     EventType = "roundOver"
	EventError         EventType = "errorMsg" // unicast to the offending sender
)

// Message is the tagged envelope written to clients.
type Message struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PlayerInfo is the public view of a seated player.
type PlayerInfo struct {
	ID   uuid.UUID   `json:"id"`
	Name string      `json:"name"`
	Team models.Team `json:"team"`
}

type UpdatePlayersPayload struct {
	Players []PlayerInfo `json:"players"`
}

type UpdateHostPayload struct {
	HostID uuid.UUID `json:"hostId"`
}

type RoomJoinedPayload struct {
	RoomCode string `json:"roomCode"`
}

type ReceiveCardsPayload struct {
	Cards []models.Card `json:"cards"`
}

type UpdateTablePayload struct {
	Cards []models.PlayedCard `json:"cards"`
}

type TurnUpdatePayload struct {
	PlayerID uuid.UUID `json:"playerId"`
}

// TrumpUpdatePayload carries the declared trump suit, or null when
// trump is reset at the start of a round.
type TrumpUpdatePayload struct {
	Suit *string `json:"suit"`
}

type ScoreUpdatePayload struct {
	A int `json:"A"`
	B int `json:"B"`
}

type RoundOverPayload struct {
	Message string `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage wraps a typed payload into a tagged envelope.
func NewMessage(t EventType, payload interface{}) (Message, error) {
	if payload == nil {
		return Message{Type: t}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s payload: %w", t, err)
	}
	return Message{Type: t, Payload: raw}, nil
}

// MustMessage is NewMessage for payload structs that cannot fail to
// marshal. Used internally when emitting room state.
func MustMessage(t EventType, payload interface{}) Message {
	m, err := NewMessage(t, payload)
	if err != nil {
		panic(err)
	}
	return m
}
