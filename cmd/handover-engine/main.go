// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the handover-engine CLI: an
// assistant that answers questions about internal administrative
// documents from a locally ingested document set.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/handover-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is shared by all subcommands; --verbose raises its level.
var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

// rootCmd is the base command for the handover-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "handover-engine",
	Short: "AI assistant for internal administrative documents",
	Long: `handover-engine answers employee questions about internal administrative
documents: forms, procedures, and contacts. Documents are ingested into a
local vector index; questions run through a four-stage agent pipeline that
analyzes intent, retrieves and classifies relevant chunks, generates a
structured answer, and verifies its quality.

Use "ingest" to build the index from a documents directory, "ask" for a
one-shot question, and "chat" for an interactive session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(log.DebugLevel)
		}

		if err := secrets.LoadDotenv(".env"); err != nil {
			return err
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./handover-engine.yaml or ~/.config/handover-engine/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("handover-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "handover-engine"))
		}
	}

	viper.SetEnvPrefix("HANDOVER_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
