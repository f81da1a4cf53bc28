package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/dcbak/dcbak/internal/backuptypes/volume"
	"github.com/dcbak/dcbak/internal/config"
	"github.com/dcbak/dcbak/internal/docker"
	"github.com/dcbak/dcbak/internal/naming"
	"github.com/dcbak/dcbak/internal/notification"
	"github.com/dcbak/dcbak/internal/storage"
)

// JobResult is the outcome of one backup job (one dump or one volume
// archive for one container).
type JobResult struct {
	Container string
	Kind      string
	Artifact  string // filename within the backup directory, empty on failure
	Size      int64
	Duration  time.Duration
	Err       error
}

// Failed reports whether the job produced no artifact
func (r JobResult) Failed() bool {
	return r.Err != nil
}

// Summary aggregates the results of a whole run
type Summary struct {
	Containers int // opted-in containers processed
	Jobs       []JobResult
}

// Failed returns the number of failed jobs
func (s *Summary) Failed() int {
	n := 0
	for _, j := range s.Jobs {
		if j.Failed() {
			n++
		}
	}
	return n
}

// Succeeded returns the number of jobs that produced an artifact
func (s *Summary) Succeeded() int {
	return len(s.Jobs) - s.Failed()
}

// Options configures a Runner
type Options struct {
	// Dir is the directory artifacts are written to. Created (with
	// parents) if missing.
	Dir string

	// Mirrors are storage pools every artifact is replicated to after
	// the local write. Mirror failures are logged, never fatal.
	Mirrors []storage.Mirror

	// Notify receives per-job events; nil disables notifications.
	Notify *notification.Manager

	// JobTimeout bounds a single backup job. Zero disables the limit.
	JobTimeout time.Duration
}

// Runner orchestrates one backup sweep over running containers
type Runner struct {
	runtime Runtime
	dir     string
	mirrors []storage.Mirror
	notify  *notification.Manager
	timeout time.Duration
	now     func() time.Time
}

// NewRunner creates a runner against the given container runtime
func NewRunner(rt Runtime, opts Options) *Runner {
	return &Runner{
		runtime: rt,
		dir:     opts.Dir,
		mirrors: opts.Mirrors,
		notify:  opts.Notify,
		timeout: opts.JobTimeout,
		now:     time.Now,
	}
}

// Run processes every running container once, sequentially. Containers are
// isolated from each other: a failing or panicking job never stops the
// sweep. The only fatal errors are an unusable backup directory and a
// failing container listing.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory %s: %w", r.dir, err)
	}

	containers, err := r.runtime.ListContainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	summary := &Summary{}
	for i := range containers {
		ctr := &containers[i]

		cfg := config.ParseLabels(ctr.Labels)
		if !cfg.Enabled {
			continue
		}

		slog.Info("backing up container", "container", ctr.Name)
		summary.Containers++

		results := r.processContainer(ctx, ctr, cfg)
		summary.Jobs = append(summary.Jobs, results...)

		for _, res := range results {
			r.notifyResult(ctx, res, cfg.Notify)
		}
	}

	slog.Info("backup run complete",
		"containers", summary.Containers,
		"jobs", len(summary.Jobs),
		"succeeded", summary.Succeeded(),
		"failed", summary.Failed(),
	)

	return summary, nil
}

// processContainer runs all jobs for one container. The recover keeps a
// misbehaving strategy from taking down the rest of the sweep.
func (r *Runner) processContainer(ctx context.Context, ctr *docker.ContainerInfo, cfg config.ContainerBackupConfig) (results []JobResult) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("container processing aborted",
				"container", ctr.Name,
				"panic", rec,
			)
			results = append(results, JobResult{
				Container: ctr.Name,
				Err:       fmt.Errorf("panic during processing: %v", rec),
			})
		}
	}()

	if cfg.Kind != "" {
		if strat, ok := Get(cfg.Kind); ok {
			results = append(results, r.runDump(ctx, ctr, strat))
		} else {
			slog.Warn("unrecognized backup type",
				"container", ctr.Name,
				"type", cfg.Kind,
				"available", List(),
			)
		}
	}

	// Independent of the dump; both may run for one container
	if cfg.VolumePath != "" {
		results = append(results, r.runVolume(ctx, ctr, cfg.VolumePath))
	}

	return results
}

func (r *Runner) runDump(ctx context.Context, ctr *docker.ContainerInfo, strat Strategy) JobResult {
	start := r.now()
	res := JobResult{Container: ctr.Name, Kind: strat.Name()}

	name := naming.ArtifactName(strat.Name(), ctr.Name, "", strat.FileExtension(), start)
	size, err := r.writeArtifact(ctx, name, func(jobCtx context.Context, w io.Writer) error {
		return strat.Dump(jobCtx, ctr, r.runtime, w)
	})
	res.Duration = time.Since(start)

	if err != nil {
		slog.Error("dump backup failed",
			"container", ctr.Name,
			"kind", strat.Name(),
			"error", err,
		)
		res.Err = err
		return res
	}

	res.Artifact = name
	res.Size = size
	slog.Info("dump backup saved",
		"container", ctr.Name,
		"artifact", name,
		"size", size,
	)

	r.mirror(ctx, name)
	return res
}

func (r *Runner) runVolume(ctx context.Context, ctr *docker.ContainerInfo, path string) JobResult {
	start := r.now()
	res := JobResult{Container: ctr.Name, Kind: volume.Kind}

	name := naming.ArtifactName(volume.Kind, ctr.Name, path, volume.FileExtension, start)
	size, err := r.writeArtifact(ctx, name, func(jobCtx context.Context, w io.Writer) error {
		return volume.Archive(jobCtx, r.runtime, ctr.ID, path, w)
	})
	res.Duration = time.Since(start)

	if err != nil {
		slog.Error("volume backup failed",
			"container", ctr.Name,
			"volume", path,
			"error", err,
		)
		res.Err = err
		return res
	}

	res.Artifact = name
	res.Size = size
	slog.Info("volume backup saved",
		"container", ctr.Name,
		"volume", path,
		"artifact", name,
		"size", size,
	)

	r.mirror(ctx, name)
	return res
}

// writeArtifact creates the artifact file and streams fill's output through
// a gzip writer into it. On any failure the partial file is removed, so a
// failed job leaves nothing behind.
func (r *Runner) writeArtifact(ctx context.Context, name string, fill func(ctx context.Context, w io.Writer) error) (int64, error) {
	jobCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	path := filepath.Join(r.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create artifact file: %w", err)
	}

	gz := gzip.NewWriter(file)
	if err := fill(jobCtx, gz); err != nil {
		_ = gz.Close()
		_ = file.Close()
		_ = os.Remove(path)
		return 0, err
	}

	if err := gz.Close(); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return 0, fmt.Errorf("failed to finalize compression: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return 0, fmt.Errorf("failed to stat artifact file: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("failed to close artifact file: %w", err)
	}

	return info.Size(), nil
}

// mirror replicates a finished artifact to every configured pool
func (r *Runner) mirror(ctx context.Context, name string) {
	if len(r.mirrors) == 0 {
		return
	}

	path := filepath.Join(r.dir, name)
	for _, m := range r.mirrors {
		file, err := os.Open(path)
		if err != nil {
			slog.Warn("failed to open artifact for mirroring",
				"artifact", name,
				"error", err,
			)
			return
		}

		if err := m.Storage.Store(ctx, name, file); err != nil {
			slog.Warn("failed to mirror artifact",
				"pool", m.Name,
				"artifact", name,
				"error", err,
			)
		} else {
			slog.Info("artifact mirrored", "pool", m.Name, "artifact", name)
		}
		_ = file.Close()
	}
}

func (r *Runner) notifyResult(ctx context.Context, res JobResult, providers []string) {
	if r.notify == nil || len(providers) == 0 {
		return
	}

	event := notification.Event{
		Type:          notification.EventBackupCompleted,
		ContainerName: res.Container,
		Kind:          res.Kind,
		Artifact:      res.Artifact,
		Size:          res.Size,
		Duration:      res.Duration,
		Timestamp:     r.now(),
	}
	if res.Err != nil {
		event.Type = notification.EventBackupFailed
		event.Error = res.Err
	}

	r.notify.Notify(ctx, event, providers)
}
