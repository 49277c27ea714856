// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scienceparse CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/pdiddy/scienceparse/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the scienceparse CLI.
var rootCmd = &cobra.Command{
	Use:   "scienceparse",
	Short: "Turn a list of DOIs and PDF links into sectioned paper records",
	Long: `scienceparse reads paper identifiers (DOIs or direct PDF links) from a
delimited file, finds a downloadable PDF for each, extracts its text, and
splits it into numbered sections. The result is one JSON array of paper
records in input order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Debug output shares stderr with status lines; stdout may carry the batch.
		logx.SetWriter(logx.NewWriter(cmd.ErrOrStderr()))
		logx.DisableStat()
		if viper.GetBool("verbose") {
			logx.SetLevel(logx.DebugLevel)
		} else {
			logx.SetLevel(logx.ErrorLevel)
		}

		s, err := secrets.Load(".secrets/", cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scienceparse.yaml or ~/.config/scienceparse/scienceparse.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print debug diagnostics")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	// A missing .env file is fine; variables already set take precedence.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scienceparse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scienceparse"))
		}
	}

	viper.SetEnvPrefix("SCIENCEPARSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
