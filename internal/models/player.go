package models

import "github.com/google/uuid"

// Team is a partnership tag. Players join a room unassigned and must
// pick a side before a round can start.
type Team string

const (
	TeamUnassigned Team = ""
	TeamA          Team = "A"
	TeamB          Team = "B"
)

type Player struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Team Team      `json:"team"`

	// Hand is private to the player; it is never serialized into
	// room-wide broadcasts.
	Hand []Card `json:"-"`
}

// HasCard reports whether the card is currently in the player's hand.
func (p *Player) HasCard(c Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

// RemoveCard takes the card out of the player's hand. Returns false if
// the card was not held.
func (p *Player) RemoveCard(c Card) bool {
	for i, h := range p.Hand {
		if h == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}
