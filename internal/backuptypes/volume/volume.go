// Package volume archives an in-container path as a raw tar stream. Unlike
// the dump strategies it takes the path from the caller, so it has its own
// shape instead of implementing backup.Strategy.
package volume

import (
	"context"
	"fmt"
	"io"
)

// Kind is the artifact kind for volume archives
const Kind = "volume"

// FileExtension is the artifact extension before compression
const FileExtension = "tar"

// Fetcher is the runtime surface the archiver needs
type Fetcher interface {
	CopyFrom(ctx context.Context, containerID, path string) (io.ReadCloser, error)
}

// Archive fetches path from the container as a tar stream and copies it
// chunk by chunk to w. The stream is never buffered in full.
func Archive(ctx context.Context, rt Fetcher, containerID, path string, w io.Writer) error {
	reader, err := rt.CopyFrom(ctx, containerID, path)
	if err != nil {
		return fmt.Errorf("failed to fetch archive of %s: %w", path, err)
	}
	defer reader.Close()

	if _, err := io.Copy(w, reader); err != nil {
		return fmt.Errorf("failed to stream archive of %s: %w", path, err)
	}

	return nil
}
