// Package roundclock drives the client-local pacing of challenge rounds:
// a per-question answer deadline and the reveal pause before the host
// advances to the next question.
//
// Each client runs its own clock; nothing here is coordinated between
// clients. Advancing is idempotent on the server, so duplicate or early
// triggers are harmless.
package roundclock

import (
	"context"
	"log/slog"
	"time"

	"github.com/playperu/geoduel/internal/lobby"
)

const (
	AnswerDeadline = 15 * time.Second
	RevealDelay    = 3 * time.Second
)

// Actions are the lobby operations the pacer triggers.
type Actions interface {
	SubmitAnswer(ctx context.Context, optionID string) error
	AdvanceRound(ctx context.Context) error
}

type Option func(*Pacer)

func WithDeadline(d time.Duration) Option { return func(p *Pacer) { p.deadline = d } }

func WithReveal(d time.Duration) Option { return func(p *Pacer) { p.reveal = d } }

// WithAfter replaces time.After, for tests.
func WithAfter(after func(time.Duration) <-chan time.Time) Option {
	return func(p *Pacer) { p.after = after }
}

type Pacer struct {
	uid      string
	actions  Actions
	logger   *slog.Logger
	deadline time.Duration
	reveal   time.Duration
	after    func(time.Duration) <-chan time.Time
}

// New returns a pacer acting for the player uid.
func New(uid string, actions Actions, logger *slog.Logger, opts ...Option) *Pacer {
	p := &Pacer{
		uid:      uid,
		actions:  actions,
		logger:   logger,
		deadline: AnswerDeadline,
		reveal:   RevealDelay,
		after:    time.After,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run consumes lobby snapshots until the game finishes, the channel
// closes or ctx is done. When the local deadline passes without an
// answer it submits the timeout option. Once both answers are in, the
// host's pacer waits out the reveal and advances.
func (p *Pacer) Run(ctx context.Context, updates <-chan lobby.Lobby) error {
	var (
		round    = -1
		answered bool
		revealed bool
		host     bool
		deadline <-chan time.Time
		reveal   <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case l, ok := <-updates:
			if !ok || l.Status == lobby.StatusFinished {
				return nil
			}
			if l.Status != lobby.StatusPlaying || l.Challenge == nil {
				continue
			}
			host = l.HostID == p.uid

			if idx := l.Challenge.CurrentQuestionIndex; idx != round {
				round = idx
				revealed = false
				reveal = nil
				deadline = p.after(p.deadline)
			}
			if _, answered = l.Challenge.CurrentAnswers[p.uid]; answered {
				deadline = nil
			}
			if l.Revealed() && !revealed {
				revealed = true
				deadline = nil
				if host {
					reveal = p.after(p.reveal)
				}
			}

		case <-deadline:
			deadline = nil
			if answered {
				continue
			}
			p.logger.Info("answer deadline passed", "round", round)
			if err := p.actions.SubmitAnswer(ctx, lobby.TimeoutOptionID); err != nil && !lobby.Terminal(err) {
				return err
			}

		case <-reveal:
			reveal = nil
			p.logger.Debug("advancing round", "round", round)
			if err := p.actions.AdvanceRound(ctx); err != nil {
				return err
			}
		}
	}
}
