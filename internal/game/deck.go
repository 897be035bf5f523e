package game

import (
	"math/rand"

	"github.com/google/uuid"

	"mendicot/internal/models"
)

// BuildDeck returns the card set for the given seat count. The base is
// a full 52-card pack; some seat counts trim it so that every seat
// receives an equal number of cards:
//
//	6, 8, 12 seats: all 2s removed (48 cards)
//	10 seats:       2 of Clubs and 2 of Diamonds removed (50 cards)
//	anything else:  full pack (52 cards)
func BuildDeck(seatCount int) ([]models.Card, error) {
	if seatCount <= 0 {
		return nil, &GameError{KindConfiguration, "seat count must be positive"}
	}

	deck := make([]models.Card, 0, 52)
	for _, suit := range models.Suits {
		for _, rank := range models.Ranks {
			deck = append(deck, models.Card{Suit: suit, Rank: rank})
		}
	}

	switch seatCount {
	case 6, 8, 12:
		deck = removeCards(deck, func(c models.Card) bool {
			return c.Rank == "2"
		})
	case 10:
		deck = removeCards(deck, func(c models.Card) bool {
			return c.Rank == "2" && (c.Suit == "Clubs" || c.Suit == "Diamonds")
		})
	}

	return deck, nil
}

func removeCards(deck []models.Card, drop func(models.Card) bool) []models.Card {
	kept := deck[:0]
	for _, c := range deck {
		if !drop(c) {
			kept = append(kept, c)
		}
	}
	return kept
}

// Deal shuffles the deck and distributes it one card at a time in seat
// order until the deck is exhausted. When the deck does not divide
// evenly the earliest seats receive the extra card(s).
func Deal(deck []models.Card, players []*models.Player) map[uuid.UUID][]models.Card {
	shuffled := make([]models.Card, len(deck))
	copy(shuffled, deck)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	hands := make(map[uuid.UUID][]models.Card, len(players))
	for i, c := range shuffled {
		p := players[i%len(players)]
		hands[p.ID] = append(hands[p.ID], c)
	}
	return hands
}
