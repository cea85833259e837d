package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/lobby"
	"github.com/playperu/geoduel/internal/trivia"
)

var atlas = geo.Default()

func countryName(id string, lang geo.Language) string {
	if c, ok := atlas.ByID(id); ok {
		return c.Name.In(lang)
	}
	return id
}

func playerName(l lobby.Lobby, uid string) string {
	for _, p := range l.Players {
		if p.UID == uid {
			return p.Username
		}
	}
	return uid
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func renderLobby(w io.Writer, l lobby.Lobby, me string, lang geo.Language) {
	names := make([]string, 0, len(l.Players))
	for _, p := range l.Players {
		n := p.Username
		if p.UID == l.HostID {
			n += " (host)"
		}
		if p.UID == me {
			n += " *"
		}
		names = append(names, n)
	}
	fmt.Fprintf(w, "── lobby %s · %s · %s · v%d\n", l.ID, l.GameMode, l.Status, l.Version)
	fmt.Fprintf(w, "   players: %s\n", strings.Join(names, ", "))

	switch {
	case l.Classic != nil:
		renderClassic(w, l, me, lang)
	case l.Challenge != nil:
		renderChallenge(w, l, me, lang)
	}

	if l.Status == lobby.StatusFinished {
		switch l.WinnerUID {
		case lobby.Draw:
			fmt.Fprintln(w, "   result: draw")
		case "":
		default:
			fmt.Fprintf(w, "   winner: %s\n", playerName(l, l.WinnerUID))
		}
	}
}

func renderClassic(w io.Writer, l lobby.Lobby, me string, lang geo.Language) {
	c := l.Classic
	for _, g := range c.Guesses {
		fmt.Fprintf(w, "   %-12s %-20s continent %s  hemisphere %s  temp %-6s elev %-6s %s\n",
			playerName(l, g.PlayerID), g.GuessedCountryName,
			mark(g.ContinentMatch), mark(g.HemisphereMatch),
			g.TempComparison, g.ElevComparison, g.DirectionArrow)
	}
	switch l.Status {
	case lobby.StatusPlaying:
		turn := playerName(l, c.CurrentPlayerUID)
		if c.CurrentPlayerUID == me {
			turn = "you"
		}
		fmt.Fprintf(w, "   turn: %s\n", turn)
	case lobby.StatusFinished:
		fmt.Fprintf(w, "   target: %s\n", countryName(c.TargetCountryID, lang))
	}
}

func renderChallenge(w io.Writer, l lobby.Lobby, me string, lang geo.Language) {
	c := l.Challenge
	types := make([]string, len(c.QuestionTypes))
	for i, t := range c.QuestionTypes {
		types[i] = string(t)
	}
	fmt.Fprintf(w, "   types: %s\n", strings.Join(types, ", "))

	if l.Status == lobby.StatusPlaying {
		if q, ok := c.CurrentQuestion(); ok {
			fmt.Fprintf(w, "   question %d/%d: %s\n", c.CurrentQuestionIndex+1, lobby.QuestionCount, prompt(q, lang))
			for _, id := range q.OptionIDs {
				key := ""
				if id == q.CorrectAnswerID {
					key = "  ← correct"
				}
				fmt.Fprintf(w, "     [%s] %s%s\n", id, countryName(id, lang), key)
			}
		}
		for _, p := range l.Players {
			a, ok := c.CurrentAnswers[p.UID]
			state := "thinking"
			switch {
			case !ok:
			case a.Hidden:
				state = "answered"
			case a.AnswerID == lobby.TimeoutOptionID:
				state = "timed out"
			default:
				state = fmt.Sprintf("%s %s", countryName(a.AnswerID, lang), mark(a.IsCorrect))
			}
			fmt.Fprintf(w, "     %s: %s\n", p.Username, state)
		}
	}

	if l.Status != lobby.StatusWaiting {
		scores := make([]string, 0, len(l.Players))
		for _, p := range l.Players {
			scores = append(scores, fmt.Sprintf("%s %d", p.Username, c.PlayerScores[p.UID]))
		}
		fmt.Fprintf(w, "   score: %s\n", strings.Join(scores, " · "))
	}
}

func prompt(q trivia.Question, lang geo.Language) string {
	switch {
	case q.Text != nil:
		return fmt.Sprintf("%s %q", q.Type, q.Text.In(lang))
	case q.Image != "":
		return fmt.Sprintf("%s %s", q.Type, q.Image)
	case q.Audio != "":
		return fmt.Sprintf("%s %s", q.Type, q.Audio)
	}
	return string(q.Type)
}
