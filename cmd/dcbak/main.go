package main

import (
	"os"

	"github.com/dcbak/dcbak/internal/config"
	"github.com/spf13/cobra"

	// Import dump strategies for self-registration
	_ "github.com/dcbak/dcbak/internal/backuptypes"

	// Import notifiers for self-registration
	_ "github.com/dcbak/dcbak/internal/notifiers"

	// Import storage backends for self-registration
	_ "github.com/dcbak/dcbak/internal/storages"
)

var (
	cfg = config.New()

	rootCmd = &cobra.Command{
		Use:   "dcbak",
		Short: "Label-driven Docker container backup",
		Long:  "Scans running Docker containers and produces a compressed backup artifact for every container opted in via labels.",
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.DockerHost, "docker-host", cfg.DockerHost, "Docker daemon socket")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&cfg.BackupDir, "backup-dir", "", "Artifact directory (default: /backup when present, else ./backup)")

	// Add commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
