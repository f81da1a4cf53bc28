package django

import (
	"context"
	"fmt"
	"io"

	"github.com/dcbak/dcbak/internal/backup"
	"github.com/dcbak/dcbak/internal/docker"
)

func init() {
	backup.Register(&DjangoDump{})
}

// dumpCommand serializes the ORM data with natural keys, excluding content
// types and permission rows which are recreated by migrations on restore.
var dumpCommand = []string{
	"python3", "manage.py", "dumpdata",
	"-e", "contenttypes",
	"-e", "auth.permission",
	"--natural-foreign",
	"--natural-primary",
}

// DjangoDump implements Strategy for Django applications
type DjangoDump struct{}

// Name returns the strategy identifier
func (d *DjangoDump) Name() string {
	return "django"
}

// FileExtension returns the artifact extension before compression
func (d *DjangoDump) FileExtension() string {
	return "json"
}

// Dump runs manage.py dumpdata inside the container and writes the JSON
// fixture to w. No per-container configuration is read.
func (d *DjangoDump) Dump(ctx context.Context, container *docker.ContainerInfo, rt backup.Runtime, w io.Writer) error {
	result, err := rt.Exec(ctx, container.ID, dumpCommand, nil)
	if err != nil {
		return fmt.Errorf("failed to execute dumpdata: %w", err)
	}

	if result.ExitCode != 0 {
		return fmt.Errorf("dumpdata exited with status %d: %s", result.ExitCode, result.Output)
	}

	if _, err := w.Write(result.Output); err != nil {
		return fmt.Errorf("failed to write dump output: %w", err)
	}

	return nil
}
