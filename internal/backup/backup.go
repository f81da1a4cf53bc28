package backup

import (
	"context"
	"io"

	"github.com/dcbak/dcbak/internal/docker"
)

// Runtime is the container-runtime surface the backup code consumes.
// *docker.Client satisfies it; tests substitute fakes.
type Runtime interface {
	// ListContainers returns all running containers.
	ListContainers(ctx context.Context) ([]docker.ContainerInfo, error)

	// Exec runs a command inside a container with extra environment
	// variables and returns its exit code and combined output.
	Exec(ctx context.Context, containerID string, cmd []string, env map[string]string) (*docker.ExecResult, error)

	// CopyFrom fetches an in-container path as a tar stream.
	CopyFrom(ctx context.Context, containerID, path string) (io.ReadCloser, error)
}

// Strategy defines the interface for dump backup implementations. A dump
// serializes application or database state by running a command inside the
// container and writing the result to w. Compression is the runner's job.
type Strategy interface {
	// Name returns the strategy identifier, which doubles as the
	// artifact kind and the DCBAK-TYPE label value it matches.
	Name() string

	// FileExtension returns the artifact extension before gzip
	// compression ("sql", "json").
	FileExtension() string

	// Dump writes the serialized state to w. A non-zero exit status of
	// the in-container command is an error.
	Dump(ctx context.Context, container *docker.ContainerInfo, rt Runtime, w io.Writer) error
}
