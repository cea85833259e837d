// Package lobby is the two-player lobby state machine. Every transition
// runs against the lobbies collection of a docstore.Store, either as an
// optimistic transaction or as a field-path update.
package lobby

import (
	"maps"
	"slices"
	"time"

	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/trivia"
)

// Collection holds lobby documents keyed by PIN.
const Collection = "lobbies"

const (
	MaxPlayers    = 2
	QuestionCount = 10
	// TimeoutOptionID is submitted when a player's round timer runs out.
	TimeoutOptionID = "timeout"
	// Draw is the winner of a challenge that ends level.
	Draw = "draw"
)

type Mode string

const (
	ModeClassic   Mode = "classic"
	ModeChallenge Mode = "challenge"
)

func (m Mode) Valid() bool { return m == ModeClassic || m == ModeChallenge }

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

type Player struct {
	UID       string `json:"uid"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// Guess is one accepted classic guess.
type Guess struct {
	PlayerID           string `json:"playerId"`
	GuessedCountryID   string `json:"guessedCountryId"`
	GuessedCountryName string `json:"guessedCountryName"`
	geo.Result
}

type Classic struct {
	TargetCountryID  string  `json:"targetCountryId"`
	CurrentPlayerUID string  `json:"currentPlayerUid,omitempty"`
	Guesses          []Guess `json:"guesses"`
}

type Answer struct {
	AnswerID  string `json:"answerId"`
	IsCorrect bool   `json:"isCorrect"`
	// Hidden marks an opponent's answer redacted by Public.
	Hidden bool `json:"hidden,omitempty"`
}

type Challenge struct {
	QuestionTypes        []trivia.Type     `json:"questionTypes"`
	Questions            []trivia.Question `json:"questions,omitempty"`
	CurrentQuestionIndex int               `json:"currentQuestionIndex"`
	PlayerScores         map[string]int    `json:"playerScores"`
	CurrentAnswers       map[string]Answer `json:"currentAnswers"`
}

// CurrentQuestion returns the question being played, if any.
func (c *Challenge) CurrentQuestion() (trivia.Question, bool) {
	if c == nil || c.CurrentQuestionIndex < 0 || c.CurrentQuestionIndex >= len(c.Questions) {
		return trivia.Question{}, false
	}
	return c.Questions[c.CurrentQuestionIndex], true
}

// Lobby is the shared match document. Exactly one of Classic and
// Challenge is set, matching GameMode.
type Lobby struct {
	ID        string     `json:"id"`
	HostID    string     `json:"hostId"`
	GameMode  Mode       `json:"gameMode"`
	Status    Status     `json:"status"`
	Players   []Player   `json:"players"`
	WinnerUID string     `json:"winnerUid,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	Classic   *Classic   `json:"classic,omitempty"`
	Challenge *Challenge `json:"challenge,omitempty"`

	// Version is the document version this value was read at.
	Version int64 `json:"-"`
}

func (l Lobby) HasPlayer(uid string) bool {
	return slices.ContainsFunc(l.Players, func(p Player) bool { return p.UID == uid })
}

// Opponent returns the other player in the lobby.
func (l Lobby) Opponent(uid string) (Player, bool) {
	for _, p := range l.Players {
		if p.UID != uid {
			return p, true
		}
	}
	return Player{}, false
}

// Revealed reports whether both answers of the current round are in.
func (l Lobby) Revealed() bool {
	return l.Challenge != nil && len(l.Challenge.CurrentAnswers) >= MaxPlayers
}

// Public returns a copy of l safe to show to viewer: the classic target
// stays hidden until the game ends, future questions are dropped, and the
// current answer key and the opponent's pick stay hidden until the round
// is revealed.
func (l Lobby) Public(viewer string) Lobby {
	out := l
	out.Players = slices.Clone(l.Players)
	finished := l.Status == StatusFinished

	if l.Classic != nil {
		c := *l.Classic
		c.Guesses = slices.Clone(l.Classic.Guesses)
		if !finished {
			c.TargetCountryID = ""
		}
		out.Classic = &c
	}

	if l.Challenge != nil {
		c := *l.Challenge
		c.QuestionTypes = slices.Clone(l.Challenge.QuestionTypes)
		c.PlayerScores = maps.Clone(l.Challenge.PlayerScores)
		c.CurrentAnswers = maps.Clone(l.Challenge.CurrentAnswers)
		c.Questions = slices.Clone(l.Challenge.Questions)

		if !finished && l.Status == StatusPlaying {
			if len(c.Questions) > c.CurrentQuestionIndex+1 {
				c.Questions = c.Questions[:c.CurrentQuestionIndex+1]
			}
			if !l.Revealed() {
				if i := c.CurrentQuestionIndex; i >= 0 && i < len(c.Questions) {
					c.Questions[i].CorrectAnswerID = ""
				}
				for uid, a := range c.CurrentAnswers {
					if uid != viewer {
						c.CurrentAnswers[uid] = Answer{Hidden: true}
					} else {
						c.CurrentAnswers[uid] = a
					}
				}
			}
		}
		out.Challenge = &c
	}
	return out
}
