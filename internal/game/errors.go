package game

import "fmt"

// ErrorKind classifies why an action was rejected. Every rejection is
// local to one room and one actor; nothing here is fatal to the process.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindAuthorization
	KindTurn
	KindConfiguration
)

// GameError is the error type surfaced to clients as an errorMsg unicast.
type GameError struct {
	Kind    ErrorKind
	Message string
}

func (e *GameError) Error() string { return e.Message }

var (
	ErrNotYourTurn     = &GameError{KindTurn, "it is not your turn"}
	ErrNotHost         = &GameError{KindAuthorization, "only the host can start the game"}
	ErrCardNotInHand   = &GameError{KindValidation, "you do not hold that card"}
	ErrRoundNotStarted = &GameError{KindValidation, "the round has not started"}
	ErrRoundInProgress = &GameError{KindValidation, "a round is already in progress"}
	ErrTrickResolving  = &GameError{KindValidation, "the trick is still being resolved"}
	ErrInvalidTeam     = &GameError{KindValidation, "team must be A or B"}
)

// Validationf builds a one-off validation error.
func Validationf(format string, args ...interface{}) *GameError {
	return &GameError{KindValidation, fmt.Sprintf(format, args...)}
}
