package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/dcbak/dcbak/internal/backup"
	"github.com/dcbak/dcbak/internal/docker"
	"github.com/dcbak/dcbak/internal/notification"
	"github.com/dcbak/dcbak/internal/storage"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one backup sweep",
	Long:  "Scan running containers once, back up every container opted in via labels, and exit. The exit status is non-zero when any backup job failed.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().DurationVar(&cfg.JobTimeout, "timeout", cfg.JobTimeout, "Upper bound for a single backup job (0 disables)")
	runCmd.Flags().StringArrayVar(&cfg.StorageArgs, "storage", []string{}, "Mirror storage pool configuration (format: pool.option=value)")
	runCmd.Flags().StringArrayVar(&cfg.NotifyArgs, "notify", []string{}, "Notification provider configuration (format: provider.option=value)")
}

func runRun(cmd *cobra.Command, args []string) error {
	setupLogging()

	if err := cfg.ParseStoragePools(); err != nil {
		return err
	}
	if err := cfg.ParseNotifyConfigs(); err != nil {
		return err
	}

	mirrors, err := storage.NewMirrors(cfg.StoragePools)
	if err != nil {
		slog.Error("failed to initialize storage pools", "error", err)
		return err
	}

	notifyMgr := notification.NewManager()
	for name, notifyCfg := range cfg.NotifyConfigs {
		notifier, err := notification.CreateNotifier(notifyCfg.Type, name, notifyCfg.Options)
		if err != nil {
			slog.Error("failed to create notifier", "name", name, "error", err)
			return err
		}
		notifyMgr.AddNotifier(name, notifier)
		slog.Info("notification provider configured", "name", name, "type", notifyCfg.Type)
	}

	dockerClient, err := docker.NewClient(cfg.DockerHost)
	if err != nil {
		slog.Error("failed to connect to Docker", "error", err)
		return err
	}
	defer dockerClient.Close()

	dir := cfg.ResolveBackupDir()
	slog.Info("starting backup run",
		"docker_host", cfg.DockerHost,
		"backup_dir", dir,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := backup.NewRunner(dockerClient, backup.Options{
		Dir:        dir,
		Mirrors:    mirrors,
		Notify:     notifyMgr,
		JobTimeout: cfg.JobTimeout,
	})

	summary, err := runner.Run(ctx)
	if err != nil {
		slog.Error("backup run failed", "error", err)
		return err
	}

	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d backup jobs failed", failed, len(summary.Jobs))
	}

	return nil
}
