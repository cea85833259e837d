package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/playperu/geoduel/internal/client"
	"github.com/playperu/geoduel/internal/geo"
)

type Config struct {
	server  string
	token   string
	lang    string
	verbose bool
}

func (c *Config) validate() error {
	u, err := url.Parse(c.server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid --server %q: want http(s)://host[:port]", c.server)
	}
	return nil
}

func (c *Config) language() geo.Language { return geo.ParseLanguage(c.lang) }

func (c *Config) client() *client.Client {
	return client.New(c.server, client.WithToken(c.token))
}

// authed returns a client, failing early when no token is configured.
func (c *Config) authed() (*client.Client, error) {
	if c.token == "" {
		return nil, errors.New("no token: run `geoduel register` and export GEODUEL_TOKEN")
	}
	return c.client(), nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GEODUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "geoduel",
		Short: "Play two-player geography duels from the terminal.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.validate()
		},
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.server, "server", "s", "http://localhost:8080", "API base URL (env: GEODUEL_SERVER)")
	fs.StringVarP(&cfg.token, "token", "t", "", "bearer token from register (env: GEODUEL_TOKEN)")
	fs.StringVarP(&cfg.lang, "lang", "l", "en", "language for names and questions: en or hu (env: GEODUEL_LANG)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log pacing decisions (env: GEODUEL_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(
		newRegisterCmd(cfg),
		newMeCmd(cfg),
		newCountriesCmd(cfg),
		newCreateCmd(cfg),
		newJoinCmd(cfg),
		newShowCmd(cfg),
		newTypesCmd(cfg),
		newStartCmd(cfg),
		newGuessCmd(cfg),
		newAnswerCmd(cfg),
		newAdvanceCmd(cfg),
		newWatchCmd(cfg),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
