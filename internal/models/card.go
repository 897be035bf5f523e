package models

import "github.com/google/uuid"

// Suits and Ranks enumerate a standard 52-card pack. Ace is high.
var (
	Suits = []string{"Hearts", "Diamonds", "Clubs", "Spades"}
	Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

type Card struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// Value returns the comparable strength of the card's rank:
// 2-10 literal, J=11, Q=12, K=13, A=14.
func (c Card) Value() int {
	switch c.Rank {
	case "A":
		return 14
	case "K":
		return 13
	case "Q":
		return 12
	case "J":
		return 11
	case "10":
		return 10
	case "9":
		return 9
	case "8":
		return 8
	case "7":
		return 7
	case "6":
		return 6
	case "5":
		return 5
	case "4":
		return 4
	case "3":
		return 3
	case "2":
		return 2
	}
	return 0
}

// PlayedCard is a card on the table together with who played it.
// The first entry of a trick fixes the lead suit.
type PlayedCard struct {
	Card
	PlayerID uuid.UUID `json:"playerId"`
}
