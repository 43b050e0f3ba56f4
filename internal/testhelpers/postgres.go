package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresConn describes a throwaway database.
type PostgresConn struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// StartPostgres starts a PostgreSQL container. The test is skipped when
// docker is not available.
func StartPostgres(t *testing.T) PostgresConn {
	t.Helper()
	requireDocker(t)

	conn := PostgresConn{User: "test", Password: "test", Name: "recipenexus_test"}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     conn.User,
				"POSTGRES_PASSWORD": conn.Password,
				"POSTGRES_DB":       conn.Name,
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	terminateOnCleanup(t, container)

	conn.Host, conn.Port = hostPort(t, container, "5432/tcp")
	return conn
}
