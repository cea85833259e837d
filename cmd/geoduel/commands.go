package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/geoduel/internal/client"
	"github.com/playperu/geoduel/internal/lobby"
	"github.com/playperu/geoduel/internal/roundclock"
	"github.com/playperu/geoduel/internal/trivia"
)

func newRegisterCmd(cfg *Config) *cobra.Command {
	var avatar string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a profile and print its token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg.client()
			p, err := c.Register(cmd.Context(), args[0], avatar)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "registered %s (%s)\n", p.Username, p.ID)
			fmt.Fprintf(out, "export GEODUEL_TOKEN=%s\n", c.Token())
			return nil
		},
	}
	cmd.Flags().StringVar(&avatar, "avatar", "avatar1", "avatar id, avatar1 to avatar8")
	return cmd
}

func newMeCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your profile and best scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cfg.authed()
			if err != nil {
				return err
			}
			p, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s, %s)\n", p.Username, p.ID, p.AvatarID)
			if p.BestClassicScore != nil {
				fmt.Fprintf(out, "best classic: %d guesses\n", *p.BestClassicScore)
			}
			fmt.Fprintf(out, "best world quiz: %d\n", p.BestWorldQuizScore)
			return nil
		},
	}
}

func newCountriesCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the country names accepted as guesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := cfg.client().Countries(cmd.Context(), cfg.language())
			if err != nil {
				return err
			}
			for _, c := range cs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

func newCreateCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:       "create <classic|challenge>",
		Short:     "Open a lobby and print its PIN",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(lobby.ModeClassic), string(lobby.ModeChallenge)},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cfg.authed()
			if err != nil {
				return err
			}
			l, err := c.CreateLobby(cmd.Context(), lobby.Mode(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "lobby %s created, share the PIN with your opponent\n", l.ID)
			return nil
		},
	}
}

// lobbyCmd builds a command taking a PIN (plus extra args) that runs one
// lobby call and prints the resulting state.
func lobbyCmd(cfg *Config, use, short string, args cobra.PositionalArgs, call func(cmd *cobra.Command, c *client.Client, pin string, rest []string) (lobby.Lobby, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			c, err := cfg.authed()
			if err != nil {
				return err
			}
			me, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			l, err := call(cmd, c, argv[0], argv[1:])
			if err != nil {
				return err
			}
			renderLobby(cmd.OutOrStdout(), l, me.ID, cfg.language())
			return nil
		},
	}
}

func newJoinCmd(cfg *Config) *cobra.Command {
	return lobbyCmd(cfg, "join <pin>", "Join a lobby", cobra.ExactArgs(1),
		func(cmd *cobra.Command, c *client.Client, pin string, _ []string) (lobby.Lobby, error) {
			return c.Join(cmd.Context(), pin)
		})
}

func newShowCmd(cfg *Config) *cobra.Command {
	return lobbyCmd(cfg, "show <pin>", "Print the current lobby state", cobra.ExactArgs(1),
		func(cmd *cobra.Command, c *client.Client, pin string, _ []string) (lobby.Lobby, error) {
			return c.Lobby(cmd.Context(), pin)
		})
}

func newTypesCmd(cfg *Config) *cobra.Command {
	return lobbyCmd(cfg, "types <pin> <type>...", "Choose challenge question types (host)", cobra.MinimumNArgs(2),
		func(cmd *cobra.Command, c *client.Client, pin string, rest []string) (lobby.Lobby, error) {
			types := make([]trivia.Type, 0, len(rest))
			for _, s := range rest {
				t := trivia.Type(strings.ToLower(s))
				if !t.Valid() {
					return lobby.Lobby{}, fmt.Errorf("unknown question type %q", s)
				}
				types = append(types, t)
			}
			return c.SetQuestionTypes(cmd.Context(), pin, types)
		})
}

func newStartCmd(cfg *Config) *cobra.Command {
	return lobbyCmd(cfg, "start <pin>", "Start the game (host)", cobra.ExactArgs(1),
		func(cmd *cobra.Command, c *client.Client, pin string, _ []string) (lobby.Lobby, error) {
			return c.Start(cmd.Context(), pin)
		})
}

func newGuessCmd(cfg *Config) *cobra.Command {
	return lobbyCmd(cfg, "guess <pin> <country>", "Guess the target country (classic)", cobra.MinimumNArgs(2),
		func(cmd *cobra.Command, c *client.Client, pin string, rest []string) (lobby.Lobby, error) {
			return c.Guess(cmd.Context(), pin, strings.Join(rest, " "), cfg.language())
		})
}

func newAnswerCmd(cfg *Config) *cobra.Command {
	return lobbyCmd(cfg, "answer <pin> <option>", "Answer the current question (challenge)", cobra.ExactArgs(2),
		func(cmd *cobra.Command, c *client.Client, pin string, rest []string) (lobby.Lobby, error) {
			option := strings.ToUpper(rest[0])
			if strings.EqualFold(option, lobby.TimeoutOptionID) {
				option = lobby.TimeoutOptionID
			}
			return c.Answer(cmd.Context(), pin, option)
		})
}

func newAdvanceCmd(cfg *Config) *cobra.Command {
	return lobbyCmd(cfg, "advance <pin>", "Move to the next question once both answered (challenge)", cobra.ExactArgs(1),
		func(cmd *cobra.Command, c *client.Client, pin string, _ []string) (lobby.Lobby, error) {
			return c.Advance(cmd.Context(), pin)
		})
}

func newWatchCmd(cfg *Config) *cobra.Command {
	var pace bool
	cmd := &cobra.Command{
		Use:   "watch <pin>",
		Short: "Follow a lobby live",
		Long: "Follow a lobby live. With --pace the client also runs the round clock: " +
			"unanswered questions time out after 15s and, as host, rounds advance 3s after both answers are in.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cfg.authed()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			me, err := c.Me(ctx)
			if err != nil {
				return err
			}
			pin := args[0]

			updates, err := c.Watch(ctx, pin)
			if err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			if pace {
				paced, err := c.Watch(gctx, pin)
				if err != nil {
					return err
				}
				pacer := roundclock.New(me.ID, c.Round(pin), newLogger(cmd.ErrOrStderr(), cfg.verbose))
				g.Go(func() error { return pacer.Run(gctx, paced) })
			}

			g.Go(func() error {
				out := cmd.OutOrStdout()
				for l := range updates {
					renderLobby(out, l, me.ID, cfg.language())
					if l.Status == lobby.StatusFinished {
						return nil
					}
				}
				return nil
			})
			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&pace, "pace", false, "run the round clock for this player")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
