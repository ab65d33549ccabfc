package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"faceduker/config"
	"faceduker/pkg/log"
)

// Version версия приложения
const Version = "0.1.0"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "faceduker",
	Short:         "Находит лица на картинках и дорисовывает поверх них узор",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log.Init(log.Options{
			Level: cfg.LogLevel,
			File:  cfg.LogFile,
			Env:   cfg.AppEnv,
		})
		return nil
	},
}

func Execute() {
	// Контекст отменяется по Ctrl+C (SIGINT) или SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(decorateCmd)
}
