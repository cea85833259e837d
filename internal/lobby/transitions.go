package lobby

import (
	"fmt"
	"slices"

	"github.com/playperu/geoduel/internal/docstore"
	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/trivia"
)

// Each transition inspects a decoded lobby and returns the field writes
// that move it to the next state. A nil result means nothing changes.

func joinFields(l Lobby, p Player) (docstore.Fields, error) {
	if len(l.Players) >= MaxPlayers {
		return nil, ErrFull
	}
	if l.Status != StatusWaiting {
		return nil, ErrNotJoinable
	}
	if l.HasPlayer(p.UID) {
		return nil, nil
	}
	return docstore.Fields{"players": append(slices.Clone(l.Players), p)}, nil
}

func questionTypesFields(l Lobby, uid string, types []trivia.Type) (docstore.Fields, error) {
	if l.GameMode != ModeChallenge {
		return nil, ErrWrongMode
	}
	if l.HostID != uid {
		return nil, ErrNotHost
	}
	if l.Status != StatusWaiting {
		return nil, ErrAlreadyStarted
	}
	if types == nil {
		types = []trivia.Type{}
	}
	return docstore.Fields{"challenge.questionTypes": types}, nil
}

func startFields(l Lobby, uid string, batch func([]trivia.Type) []trivia.Question) (docstore.Fields, error) {
	if l.HostID != uid {
		return nil, ErrNotHost
	}
	if l.Status != StatusWaiting {
		return nil, ErrAlreadyStarted
	}
	if len(l.Players) < MaxPlayers {
		return nil, ErrNotEnoughPlayers
	}

	switch l.GameMode {
	case ModeClassic:
		return docstore.Fields{
			"status":                   StatusPlaying,
			"classic.currentPlayerUid": l.HostID,
		}, nil
	case ModeChallenge:
		var types []trivia.Type
		if l.Challenge != nil {
			types = l.Challenge.QuestionTypes
		}
		scores := make(map[string]int, len(l.Players))
		for _, p := range l.Players {
			scores[p.UID] = 0
		}
		return docstore.Fields{
			"status":                         StatusPlaying,
			"challenge.questions":            batch(types),
			"challenge.currentQuestionIndex": 0,
			"challenge.playerScores":         scores,
			"challenge.currentAnswers":       map[string]Answer{},
		}, nil
	default:
		return nil, fmt.Errorf("mode %q: %w", l.GameMode, ErrWrongMode)
	}
}

func guessFields(l Lobby, atlas *geo.Atlas, uid, name string, lang geo.Language) (docstore.Fields, error) {
	if l.GameMode != ModeClassic {
		return nil, ErrWrongMode
	}
	if l.Status != StatusPlaying {
		return nil, ErrGameNotActive
	}
	if l.Classic == nil {
		return nil, ErrTargetMissing
	}
	if l.Classic.CurrentPlayerUID != uid {
		return nil, ErrNotYourTurn
	}

	guessed, ok := atlas.ByName(name, lang)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrInvalidGuess)
	}
	target, ok := atlas.ByID(l.Classic.TargetCountryID)
	if !ok {
		return nil, fmt.Errorf("%q: %w", l.Classic.TargetCountryID, ErrTargetMissing)
	}
	next, ok := l.Opponent(uid)
	if !ok {
		return nil, ErrNotEnoughPlayers
	}

	g := Guess{
		PlayerID:           uid,
		GuessedCountryID:   guessed.ID,
		GuessedCountryName: guessed.Name.In(lang),
		Result:             geo.Evaluate(guessed, target),
	}
	fields := docstore.Fields{
		"classic.guesses":          append(slices.Clone(l.Classic.Guesses), g),
		"classic.currentPlayerUid": next.UID,
	}
	if g.IsCorrect {
		fields["status"] = StatusFinished
		fields["winnerUid"] = uid
	}
	return fields, nil
}

func answerFields(l Lobby, uid, optionID string) (docstore.Fields, error) {
	if l.GameMode != ModeChallenge || l.Status != StatusPlaying {
		return nil, ErrGameNotActive
	}
	if !l.HasPlayer(uid) || !docstore.ValidSegment(uid) {
		return nil, ErrNotInLobby
	}
	if l.Challenge == nil {
		return nil, ErrChallengeDataMissing
	}
	if _, ok := l.Challenge.CurrentAnswers[uid]; ok {
		return nil, ErrAlreadyAnswered
	}
	q, ok := l.Challenge.CurrentQuestion()
	if !ok {
		return nil, ErrChallengeDataMissing
	}

	a := Answer{
		AnswerID:  optionID,
		IsCorrect: optionID != TimeoutOptionID && optionID == q.CorrectAnswerID,
	}
	return docstore.Fields{docstore.Path("challenge", "currentAnswers", uid): a}, nil
}

// advanceFields is a no-op unless both answers of the round are in, so
// racing callers score each round exactly once.
func advanceFields(l Lobby) (docstore.Fields, error) {
	if l.GameMode != ModeChallenge || l.Status != StatusPlaying {
		return nil, nil
	}
	c := l.Challenge
	if c == nil || len(c.CurrentAnswers) < MaxPlayers {
		return nil, nil
	}
	if len(c.Questions) == 0 {
		return nil, ErrChallengeDataMissing
	}

	scores := make(map[string]int, len(l.Players))
	for uid, s := range c.PlayerScores {
		scores[uid] = s
	}
	for uid, a := range c.CurrentAnswers {
		if a.IsCorrect {
			scores[uid]++
		}
	}

	next := c.CurrentQuestionIndex + 1
	if next >= len(c.Questions) {
		return docstore.Fields{
			"status":                   StatusFinished,
			"challenge.playerScores":   scores,
			"challenge.currentAnswers": map[string]Answer{},
			"winnerUid":                challengeWinner(l.Players, scores),
		}, nil
	}
	return docstore.Fields{
		"challenge.playerScores":         scores,
		"challenge.currentQuestionIndex": next,
		"challenge.currentAnswers":       map[string]Answer{},
	}, nil
}

func challengeWinner(players []Player, scores map[string]int) string {
	if len(players) < 2 {
		return Draw
	}
	a, b := players[0].UID, players[1].UID
	switch {
	case scores[a] > scores[b]:
		return a
	case scores[b] > scores[a]:
		return b
	default:
		return Draw
	}
}
