package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoURIEnv names an existing server to use instead of a container.
const MongoURIEnv = "KASULA_TEST_MONGO_URI"

const mongoImage = "mongo:7"

var (
	sharedOnce   sync.Once
	sharedClient *mongo.Client
	sharedErr    error
)

// TestContext returns a context bounded for a single test's database work.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB returns a fresh, uniquely named database that is dropped
// when the test finishes. The server is KASULA_TEST_MONGO_URI when set,
// otherwise a mongo container shared by every test in the package. The
// test is skipped when neither is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	if os.Getenv(MongoURIEnv) == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}

	sharedOnce.Do(func() {
		sharedClient, sharedErr = connect()
	})
	if sharedErr != nil {
		t.Skipf("mongo unavailable: %v", sharedErr)
	}

	name := "kasula_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	db := sharedClient.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("Warning: failed to drop test database %s: %v", name, err)
		}
	})
	return db
}

func connect() (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	uri := os.Getenv(MongoURIEnv)
	if uri == "" {
		var err error
		uri, err = startContainer(ctx)
		if err != nil {
			return nil, err
		}
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}

// startContainer runs mongo once per test binary. The testcontainers
// reaper removes it when the process exits.
func startContainer(ctx context.Context) (string, error) {
	req := testcontainers.ContainerRequest{
		Image:        mongoImage,
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(90 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start mongo container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return "", fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "27017/tcp")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return "", fmt.Errorf("get mapped port: %w", err)
	}
	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), nil
}
