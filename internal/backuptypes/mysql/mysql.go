package mysql

import (
	"context"
	"fmt"
	"io"

	"github.com/dcbak/dcbak/internal/backup"
	"github.com/dcbak/dcbak/internal/docker"
)

func init() {
	backup.Register(&MySQLDump{})
}

// Environment variable names read from the container configuration
const (
	EnvMySQLUser     = "MYSQL_USER"
	EnvMySQLPassword = "MYSQL_PASSWORD"
	EnvMySQLDatabase = "MYSQL_DATABASE"
)

// envMySQLPwd is the variable mysqldump reads the password from.
const envMySQLPwd = "MYSQL_PWD"

// MySQLDump implements Strategy for MySQL/MariaDB databases
type MySQLDump struct{}

// Name returns the strategy identifier
func (m *MySQLDump) Name() string {
	return "mysql"
}

// FileExtension returns the artifact extension before compression
func (m *MySQLDump) FileExtension() string {
	return "sql"
}

// Dump runs mysqldump inside the container and writes the serialized
// databases to w. Credentials come from the container's own environment;
// the user defaults to root and password and database default to empty.
func (m *MySQLDump) Dump(ctx context.Context, container *docker.ContainerInfo, rt backup.Runtime, w io.Writer) error {
	user := container.Env[EnvMySQLUser]
	if user == "" {
		user = "root"
	}

	cmd := []string{"mysqldump", "-u", user, "--databases", container.Env[EnvMySQLDatabase]}
	env := map[string]string{envMySQLPwd: container.Env[EnvMySQLPassword]}

	result, err := rt.Exec(ctx, container.ID, cmd, env)
	if err != nil {
		return fmt.Errorf("failed to execute mysqldump: %w", err)
	}

	if result.ExitCode != 0 {
		return fmt.Errorf("mysqldump exited with status %d: %s", result.ExitCode, result.Output)
	}

	if _, err := w.Write(result.Output); err != nil {
		return fmt.Errorf("failed to write dump output: %w", err)
	}

	return nil
}
