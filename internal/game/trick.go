package game

import (
	"github.com/google/uuid"

	"mendicot/internal/models"
)

// EvaluateTrick returns the identity of the player who won the trick.
// The suit of the first card is the lead suit. A trump card beats every
// non-trump card regardless of rank; among trumps, or among lead-suit
// cards when no trump was played, the higher rank wins. Cards that
// follow neither trump nor the lead suit can never win.
//
// trump may be empty (no trump declared yet this round), in which case
// only lead-suit comparisons apply.
func EvaluateTrick(trick []models.PlayedCard, trump string) uuid.UUID {
	best := trick[0]
	leadSuit := best.Suit
	trumpWinning := trump != "" && best.Suit == trump

	for _, pc := range trick[1:] {
		switch {
		case trumpWinning:
			if pc.Suit == trump && pc.Value() > best.Value() {
				best = pc
			}
		case trump != "" && pc.Suit == trump:
			// A cut: instantly takes the trick from any non-trump card.
			best = pc
			trumpWinning = true
		case pc.Suit == leadSuit && pc.Value() > best.Value():
			best = pc
		}
	}
	return best.PlayerID
}

// countTens returns how many rank-10 cards are in the trick. Tens are
// the only cards worth points.
func countTens(trick []models.PlayedCard) int {
	n := 0
	for _, pc := range trick {
		if pc.Rank == "10" {
			n++
		}
	}
	return n
}
