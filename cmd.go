package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "wordscramble",
		Short:         "Spell new words from the letters of a root word",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (.yaml, .yml, .json, .jsonc)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	cmd.AddCommand(newServeCommand(flags))
	cmd.AddCommand(newPlayCommand(flags))
	return cmd
}

// setup loads config, configures zerolog and loads the word lists.
func setup(flags *rootFlags) (config.Config, *words.Lists, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	configureLogging(cfg)

	lists, err := words.Load(words.Options{
		StartFile:      cfg.Words.StartFile,
		DictionaryFile: cfg.Words.DictionaryFile,
		Language:       cfg.Words.Language,
	})
	if err != nil {
		return cfg, nil, fmt.Errorf("load word lists: %w", err)
	}
	roots, dict := lists.Stats()
	log.Info().Int("roots", roots).Int("dictionary", dict).Str("language", lists.Language).Msg("word lists loaded")
	return cfg, lists, nil
}

func configureLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if strings.EqualFold(cfg.LogFormat, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func newServeCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lists, err := setup(flags)
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database %s: %w", cfg.DBPath, err)
			}
			defer db.Close()

			srv := httpserver.New(cfg, lists, store.NewMemoryStore(), db)
			log.Info().Str("port", cfg.Port).Msg("starting wordscramble")
			return srv.Start(":" + cfg.Port)
		},
	}
}
