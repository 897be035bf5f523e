package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"mendicot/internal/models"
)

// Phase tracks where a room is in the round lifecycle.
type Phase int

const (
	// PhaseLobby: players are gathering and picking teams.
	PhaseLobby Phase = iota
	// PhaseTrickInProgress: accepting plays from the player whose turn it is.
	PhaseTrickInProgress
	// PhaseTrickResolvedPause: the trick is complete; a short delay lets
	// everyone see the resolved table before it is cleared.
	PhaseTrickResolvedPause
	// PhaseRoundOverPause: the last trick of the round resolved; a delay
	// before hands are redealt.
	PhaseRoundOverPause
	// PhaseDealing: transient state while fresh hands go out.
	PhaseDealing
)

// Room holds the entire state for one table. All mutation happens under
// mu, so every operation observes a consistent snapshot and commits
// atomically. Different rooms are fully independent.
type Room struct {
	Code string

	// Deliver pushes a message to one member's connection. Set by the
	// transport layer before the room sees traffic. Invoked with the
	// room lock held, which is what guarantees members observe state
	// broadcasts in the order the room produced them.
	Deliver func(playerID uuid.UUID, m Message)

	TrickPause time.Duration
	RoundPause time.Duration

	mu           sync.Mutex
	players      []*models.Player // seat order; defines turn order
	table        []models.PlayedCard
	turnIndex    int
	scores       map[models.Team]int
	trump        string    // empty until declared
	trumpMaker   uuid.UUID // uuid.Nil until trump is declared
	tricksPlayed int
	maxTricks    int
	hostID       uuid.UUID
	phase        Phase

	// generation invalidates pending timed continuations: a continuation
	// captured under an older generation must no-op. Bumped on destroy.
	generation int
	pending    *time.Timer
}

func NewRoom(code string, trickPause, roundPause time.Duration) *Room {
	return &Room{
		Code:       code,
		TrickPause: trickPause,
		RoundPause: roundPause,
		scores:     map[models.Team]int{models.TeamA: 0, models.TeamB: 0},
	}
}

// Join adds the player to the room, deduplicating by identity. The
// first player to join becomes host. New seats are only added while the
// room is in the lobby: a mid-round join would change the seat count a
// trick was dealt for, so it is rejected. A player already seated may
// always re-join (refreshing their name). The updated player list and
// the current host are broadcast on success.
func (r *Room) Join(playerID uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seated := false
	for _, p := range r.players {
		if p.ID == playerID {
			p.Name = name
			seated = true
			break
		}
	}
	if !seated {
		if r.phase != PhaseLobby {
			return ErrRoundInProgress
		}
		r.players = append(r.players, &models.Player{ID: playerID, Name: name})
		if len(r.players) == 1 {
			r.hostID = playerID
		}
	}

	r.broadcastLocked(MustMessage(EventUpdatePlayers, UpdatePlayersPayload{Players: r.playerInfosLocked()}))
	r.broadcastLocked(MustMessage(EventUpdateHost, UpdateHostPayload{HostID: r.hostID}))
	return nil
}

// JoinTeam records the player's team choice. Re-declaration overwrites
// the prior choice. Teams are locked once the first round starts.
func (r *Room) JoinTeam(playerID uuid.UUID, team models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if team != models.TeamA && team != models.TeamB {
		return ErrInvalidTeam
	}
	if r.phase != PhaseLobby {
		return ErrRoundInProgress
	}
	p := r.playerByIDLocked(playerID)
	if p == nil {
		return Validationf("you are not seated in this room")
	}
	p.Team = team
	r.broadcastLocked(MustMessage(EventUpdatePlayers, UpdatePlayersPayload{Players: r.playerInfosLocked()}))
	return nil
}

// Start begins the first round. Host-only. Requires an even seat count
// of at least 4 and complete, balanced teams. Seating is re-ordered by
// interleaving the two teams (A1, B1, A2, B2, ...) so that teammates
// never act consecutively.
func (r *Room) Start(requesterID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requesterID != r.hostID {
		return ErrNotHost
	}
	if r.phase != PhaseLobby {
		return ErrRoundInProgress
	}
	n := len(r.players)
	if n < 4 || n%2 != 0 {
		return Validationf("need an even number of players, at least 4 (have %d)", n)
	}

	var teamA, teamB []*models.Player
	for _, p := range r.players {
		switch p.Team {
		case models.TeamA:
			teamA = append(teamA, p)
		case models.TeamB:
			teamB = append(teamB, p)
		default:
			return Validationf("%s has not joined a team", p.Name)
		}
	}
	if len(teamA) != len(teamB) {
		return Validationf("teams must be equal in size (A has %d, B has %d)", len(teamA), len(teamB))
	}

	seats := make([]*models.Player, 0, n)
	for i := range teamA {
		seats = append(seats, teamA[i], teamB[i])
	}
	r.players = seats

	r.table = nil
	r.tricksPlayed = 0
	r.scores = map[models.Team]int{models.TeamA: 0, models.TeamB: 0}
	r.trump = ""
	r.trumpMaker = uuid.Nil
	r.turnIndex = 0

	if err := r.dealLocked(); err != nil {
		return err
	}
	r.phase = PhaseTrickInProgress

	r.broadcastLocked(MustMessage(EventUpdatePlayers, UpdatePlayersPayload{Players: r.playerInfosLocked()}))
	r.broadcastLocked(MustMessage(EventScoreUpdate, ScoreUpdatePayload{A: 0, B: 0}))
	r.broadcastLocked(MustMessage(EventTurnUpdate, TurnUpdatePayload{PlayerID: r.players[r.turnIndex].ID}))
	return nil
}

// PlayCard handles a play attempt. The attempt is accepted only from
// the player whose turn it is, and only for a card they hold. The
// server does not enforce follow-suit: any held card may be played,
// and the first off-lead-suit card of the round declares trump.
func (r *Room) PlayCard(playerID uuid.UUID, card models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.phase {
	case PhaseLobby:
		return ErrRoundNotStarted
	case PhaseTrickResolvedPause, PhaseRoundOverPause, PhaseDealing:
		return ErrTrickResolving
	}

	p := r.players[r.turnIndex]
	if p.ID != playerID {
		return ErrNotYourTurn
	}
	if !p.RemoveCard(card) {
		return ErrCardNotInHand
	}

	r.table = append(r.table, models.PlayedCard{Card: card, PlayerID: playerID})

	// Lazy trump declaration: the first off-lead-suit card of the round
	// fixes trump for the rest of the round.
	if r.trump == "" && len(r.table) > 1 && card.Suit != r.table[0].Suit {
		r.trump = card.Suit
		r.trumpMaker = playerID
		suit := card.Suit
		r.broadcastLocked(MustMessage(EventTrumpUpdate, TrumpUpdatePayload{Suit: &suit}))
	}

	r.broadcastLocked(MustMessage(EventUpdateTable, UpdateTablePayload{Cards: r.table}))

	if len(r.table) >= len(r.players) {
		r.resolveTrickLocked()
		return nil
	}

	r.turnIndex = (r.turnIndex + 1) % len(r.players)
	r.broadcastLocked(MustMessage(EventTurnUpdate, TurnUpdatePayload{PlayerID: r.players[r.turnIndex].ID}))
	return nil
}

// resolveTrickLocked enters TrickResolvedPause: score the trick, tell
// everyone, then clear the table after a delay.
func (r *Room) resolveTrickLocked() {
	r.phase = PhaseTrickResolvedPause

	winnerID := EvaluateTrick(r.table, r.trump)
	if pts := countTens(r.table); pts > 0 {
		if p := r.playerByIDLocked(winnerID); p != nil {
			r.scores[p.Team] += pts
		}
	}
	r.broadcastLocked(MustMessage(EventScoreUpdate, ScoreUpdatePayload{
		A: r.scores[models.TeamA],
		B: r.scores[models.TeamB],
	}))

	r.scheduleLocked(r.TrickPause, func() {
		r.finishTrickLocked(winnerID)
	})
}

// finishTrickLocked runs after the trick pause: clear the table and
// either hand the lead to the trick winner or end the round.
func (r *Room) finishTrickLocked(winnerID uuid.UUID) {
	r.table = nil
	r.tricksPlayed++
	r.broadcastLocked(MustMessage(EventUpdateTable, UpdateTablePayload{Cards: []models.PlayedCard{}}))

	if r.tricksPlayed >= r.maxTricks {
		r.phase = PhaseRoundOverPause
		r.broadcastLocked(MustMessage(EventRoundOver, RoundOverPayload{Message: r.roundResultLocked()}))
		r.scheduleLocked(r.RoundPause, r.dealNextRoundLocked)
		return
	}

	r.phase = PhaseTrickInProgress
	if idx := r.seatOfLocked(winnerID); idx >= 0 {
		r.turnIndex = idx
	} else if r.turnIndex >= len(r.players) {
		// Winner left during the pause; fall back to seat 0.
		r.turnIndex = 0
	}
	r.broadcastLocked(MustMessage(EventTurnUpdate, TurnUpdatePayload{PlayerID: r.players[r.turnIndex].ID}))
}

func (r *Room) roundResultLocked() string {
	a, b := r.scores[models.TeamA], r.scores[models.TeamB]
	switch {
	case a > b:
		return fmt.Sprintf("Team A wins the round %d-%d", a, b)
	case b > a:
		return fmt.Sprintf("Team B wins the round %d-%d", b, a)
	default:
		return fmt.Sprintf("Round tied %d-%d", a, b)
	}
}

// dealNextRoundLocked runs after the round-over pause: reset scores and
// trump, redeal, and give the lead to the prior round's trump maker.
func (r *Room) dealNextRoundLocked() {
	r.phase = PhaseDealing

	prevMaker := r.trumpMaker
	r.tricksPlayed = 0
	r.scores = map[models.Team]int{models.TeamA: 0, models.TeamB: 0}
	r.trump = ""
	r.trumpMaker = uuid.Nil

	r.broadcastLocked(MustMessage(EventScoreUpdate, ScoreUpdatePayload{A: 0, B: 0}))
	r.broadcastLocked(MustMessage(EventTrumpUpdate, TrumpUpdatePayload{Suit: nil}))

	if len(r.players) == 0 {
		return
	}
	if err := r.dealLocked(); err != nil {
		return
	}

	if idx := r.seatOfLocked(prevMaker); idx >= 0 {
		r.turnIndex = idx
	} else {
		r.turnIndex = 0
	}
	r.phase = PhaseTrickInProgress
	r.broadcastLocked(MustMessage(EventTurnUpdate, TurnUpdatePayload{PlayerID: r.players[r.turnIndex].ID}))
}

// dealLocked builds a deck for the current seat count, deals it, and
// unicasts each hand to its owner.
func (r *Room) dealLocked() error {
	deck, err := BuildDeck(len(r.players))
	if err != nil {
		return err
	}
	r.maxTricks = len(deck) / len(r.players)
	hands := Deal(deck, r.players)
	for _, p := range r.players {
		p.Hand = hands[p.ID]
		r.deliverLocked(p.ID, MustMessage(EventReceiveCards, ReceiveCardsPayload{Cards: p.Hand}))
	}
	return nil
}

// Leave removes the player. Reports true when the room became empty and
// should be destroyed by the registry. If the departing player was host,
// host authority migrates to the first remaining seat. A departing
// player's turn and hand are not preserved.
func (r *Room) Leave(playerID uuid.UUID) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.seatOfLocked(playerID)
	if idx < 0 {
		return len(r.players) == 0
	}
	r.players = append(r.players[:idx], r.players[idx+1:]...)

	if len(r.players) == 0 {
		r.destroyLocked()
		return true
	}

	if idx < r.turnIndex {
		r.turnIndex--
	}
	if r.turnIndex >= len(r.players) {
		r.turnIndex = 0
	}

	if r.hostID == playerID {
		r.hostID = r.players[0].ID
		r.broadcastLocked(MustMessage(EventUpdateHost, UpdateHostPayload{HostID: r.hostID}))
	}
	r.broadcastLocked(MustMessage(EventUpdatePlayers, UpdatePlayersPayload{Players: r.playerInfosLocked()}))

	// The leave can complete the current trick: if everyone still seated
	// has already played, resolve now instead of waiting for a play that
	// will never come.
	if r.phase == PhaseTrickInProgress && len(r.table) >= len(r.players) {
		r.resolveTrickLocked()
	}
	return false
}

// destroyLocked invalidates any pending timed continuation so it cannot
// act on a room that no longer exists.
func (r *Room) destroyLocked() {
	r.generation++
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
}

// scheduleLocked arms a cancellable delayed continuation bound to the
// room's current generation. fn runs with the room lock held.
func (r *Room) scheduleLocked(d time.Duration, fn func()) {
	gen := r.generation
	r.pending = time.AfterFunc(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.generation != gen {
			return
		}
		fn()
	})
}

func (r *Room) broadcastLocked(m Message) {
	for _, p := range r.players {
		r.deliverLocked(p.ID, m)
	}
}

func (r *Room) deliverLocked(playerID uuid.UUID, m Message) {
	if r.Deliver != nil {
		r.Deliver(playerID, m)
	}
}

func (r *Room) playerByIDLocked(playerID uuid.UUID) *models.Player {
	for _, p := range r.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (r *Room) seatOfLocked(playerID uuid.UUID) int {
	for i, p := range r.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// HostID returns the current host identity.
func (r *Room) HostID() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

// Phase returns the room's current lifecycle phase.
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Scores returns the current team totals.
func (r *Room) Scores() (a, b int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scores[models.TeamA], r.scores[models.TeamB]
}

// Trump returns the declared trump suit, or empty if none yet.
func (r *Room) Trump() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trump
}

// CurrentTurn returns the identity of the player expected to act.
func (r *Room) CurrentTurn() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.players) == 0 {
		return uuid.Nil
	}
	return r.players[r.turnIndex].ID
}

func (r *Room) playerInfosLocked() []PlayerInfo {
	infos := make([]PlayerInfo, len(r.players))
	for i, p := range r.players {
		infos[i] = PlayerInfo{ID: p.ID, Name: p.Name, Team: p.Team}
	}
	return infos
}
