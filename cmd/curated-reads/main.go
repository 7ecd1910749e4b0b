// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the curated-reads CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/curated-reads/internal/logging"
	"github.com/pdiddy/curated-reads/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	// logger is configured in the root pre-run hook.
	logger = zerolog.Nop()

	closeLog = func() error { return nil }
)

// rootCmd is the base command for the curated-reads CLI.
var rootCmd = &cobra.Command{
	Use:   "curated-reads",
	Short: "Curated book shelves backed by a metadata provider",
	Long: `curated-reads turns editorial shelf definitions (title and author pairs)
into concrete book records. Each pair is searched on ISBNdb, candidates are
ranked to find the canonical edition, and summaries, study guides and other
derivative works are pushed out of the way.

Subcommands search the provider, curate single titles, build and rotate
shelves, manage reading lists, and serve everything over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		l, closeFn, err := logging.Setup(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		logger, closeLog = l, closeFn

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug().Str("path", used).Msg("using config file")
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./curated-reads.yaml or ~/.config/curated-reads/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("curated-reads")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "curated-reads"))
		}
	}

	viper.SetEnvPrefix("CURATED_READS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
