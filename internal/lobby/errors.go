package lobby

import (
	"errors"

	"github.com/playperu/geoduel/internal/docstore"
)

var (
	ErrNotFound             = errors.New("lobby not found")
	ErrFull                 = errors.New("lobby is full")
	ErrNotJoinable          = errors.New("lobby is not open for joining")
	ErrNotYourTurn          = errors.New("it is not your turn")
	ErrInvalidGuess         = errors.New("invalid country name")
	ErrAlreadyAnswered      = errors.New("already answered this question")
	ErrChallengeDataMissing = errors.New("challenge data is missing")
	ErrTargetMissing        = errors.New("target country is missing")
	ErrGameNotActive        = errors.New("game is not active")
	ErrAlreadyStarted       = errors.New("game has already started")
	ErrNotHost              = errors.New("only the host can do this")
	ErrNotEnoughPlayers     = errors.New("waiting for a second player")
	ErrWrongMode            = errors.New("not available in this game mode")
	ErrNotInLobby           = errors.New("not a player in this lobby")
	ErrNoFreePIN            = errors.New("could not allocate a lobby pin")

	// ErrTransactionConflict surfaces only once the store gave up retrying.
	ErrTransactionConflict = docstore.ErrConflict
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrNotFound, "NotFound"},
	{ErrFull, "Full"},
	{ErrNotJoinable, "NotJoinable"},
	{ErrNotYourTurn, "NotYourTurn"},
	{ErrInvalidGuess, "InvalidGuess"},
	{ErrAlreadyAnswered, "AlreadyAnswered"},
	{ErrChallengeDataMissing, "ChallengeDataMissing"},
	{ErrTargetMissing, "TargetMissing"},
	{ErrTransactionConflict, "TransactionConflict"},
	{ErrGameNotActive, "GameNotActive"},
	{ErrAlreadyStarted, "AlreadyStarted"},
	{ErrNotHost, "NotHost"},
	{ErrNotEnoughPlayers, "NotEnoughPlayers"},
	{ErrWrongMode, "WrongMode"},
	{ErrNotInLobby, "NotInLobby"},
	{ErrNoFreePIN, "NoFreePIN"},
}

// Kind names the taxonomy entry err belongs to, or "" if none.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}

// Terminal reports whether retrying the same action can never succeed
// for the current round.
func Terminal(err error) bool {
	return errors.Is(err, ErrAlreadyAnswered) || errors.Is(err, ErrNotYourTurn)
}

// ErrorForKind maps a kind reported by Kind back to its sentinel, for
// clients rebuilding errors from the wire.
func ErrorForKind(kind string) (error, bool) {
	for _, k := range kinds {
		if k.kind == kind {
			return k.err, true
		}
	}
	return nil, false
}
