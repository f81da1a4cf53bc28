package mysql

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dcbak/dcbak/internal/docker"
)

// TestMySQLDump_Integration dumps a real MySQL container started via
// testcontainers and checks the seeded data appears in the output.
func TestMySQLDump_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	mysqlContainer, err := mysql.Run(ctx,
		"mysql:8.0",
		mysql.WithDatabase("testdb"),
		mysql.WithUsername("root"),
		mysql.WithPassword("rootpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("ready for connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	defer func() {
		if err := mysqlContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	containerID := mysqlContainer.GetContainerID()

	dockerClient, err := docker.NewClient("")
	require.NoError(t, err)
	defer dockerClient.Close()

	containerInfo, err := dockerClient.GetContainer(ctx, containerID)
	require.NoError(t, err)
	containerInfo.Env["MYSQL_PASSWORD"] = "rootpass"
	containerInfo.Env["MYSQL_DATABASE"] = "testdb"

	connStr, err := mysqlContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := sql.Open("mysql", connStr)
	require.NoError(t, err)
	defer db.Close()

	require.Eventually(t, func() bool {
		return db.Ping() == nil
	}, 30*time.Second, 500*time.Millisecond)

	_, err = db.Exec(`
		CREATE TABLE users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL
		)
	`)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO users (name, email) VALUES
		('Alice', 'alice@example.com'),
		('Bob', 'bob@example.com')
	`)
	require.NoError(t, err)

	m := &MySQLDump{}
	var buf bytes.Buffer
	err = m.Dump(ctx, containerInfo, dockerClient, &buf)
	require.NoError(t, err)

	dump := buf.String()
	assert.Contains(t, dump, "CREATE TABLE `users`")
	assert.Contains(t, dump, "alice@example.com")
	assert.Contains(t, dump, "CREATE DATABASE")
}
