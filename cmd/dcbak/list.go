package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dcbak/dcbak/internal/storages/local"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List backup artifacts",
	Long:    "List all artifacts in the backup directory, newest first.",
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := local.New(cfg.ResolveBackupDir())
	if err != nil {
		return err
	}

	files, err := store.List(context.Background(), "")
	if err != nil {
		return fmt.Errorf("failed to list artifacts: %w", err)
	}

	if len(files) == 0 {
		fmt.Println("No backup artifacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ARTIFACT\tSIZE\tDATE")
	_, _ = fmt.Fprintln(w, "--------\t----\t----")

	for _, f := range files {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", f.Key, formatSize(f.Size), f.LastModified.Format("2006-01-02 15:04:05"))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d artifact(s)\n", len(files))

	return nil
}

// formatSize formats bytes into human-readable size
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
