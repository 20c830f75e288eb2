package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/andresmejia3/stegtext/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serveFlags struct {
		Addr    string
		EnvFile string
	}
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the embed, extract and validate endpoints under /api/v1. Configuration is read from
STEGTEXT_ADDR, STEGTEXT_ALLOWED_ORIGINS and STEGTEXT_MAX_UPLOAD_BYTES, with a .env file as fallback.`,
	Run: func(cmd *cobra.Command, args []string) {
		envFile := serveFlags.EnvFile
		// The default .env is optional; an explicit one must exist.
		if !cmd.Flags().Changed("env-file") {
			if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
				envFile = ""
			}
		}

		cfg, err := server.LoadConfig(envFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveFlags.Addr
		}

		if err := server.Run(cmd.Context(), cfg); err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.Addr, "addr", "a", ":8080", "Address to listen on (overrides STEGTEXT_ADDR)")
	serveCmd.Flags().StringVar(&serveFlags.EnvFile, "env-file", ".env", "Path to a .env file")
}
