//go:build integration

package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDBCounter atomic.Int64

// setupMongoTestcontainer starts a disposable MongoDB container and returns
// its connection string plus a cleanup func. Tests carve out their own
// databases on the shared container via newMongoTestStore.
func setupMongoTestcontainer(t *testing.T) (string, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("27017/tcp").WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Failed to start MongoDB testcontainer: %v", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		_ = mongoContainer.Terminate(ctx)
		t.Fatalf("Failed to get MongoDB connection string: %v", err)
	}

	t.Logf("MongoDB container started at: %s", uri)

	// The store connects lazily; ping now so a broken container fails fast.
	probe := NewMongoTaskStore(uri, "probe")
	var pingErr error
	for i := 0; i < 5; i++ {
		if pingErr = probe.Ping(ctx); pingErr == nil {
			break
		}
		time.Sleep(time.Duration(i+1) * 500 * time.Millisecond)
	}
	_ = probe.Close(ctx)
	if pingErr != nil {
		_ = mongoContainer.Terminate(ctx)
		t.Fatalf("Failed to reach MongoDB after retries: %v", pingErr)
	}

	cleanup := func() {
		if terminateErr := mongoContainer.Terminate(context.Background()); terminateErr != nil {
			t.Logf("Failed to terminate container: %v", terminateErr)
		}
	}

	return uri, cleanup
}

// newMongoTestStore returns a store bound to a database unique to the calling
// test, dropped again when the test finishes.
func newMongoTestStore(t *testing.T, uri string) *MongoTaskStore {
	dbName := fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), testDBCounter.Add(1))
	s := NewMongoTaskStore(uri, dbName)

	t.Cleanup(func() {
		ctx := context.Background()
		if s.client != nil {
			_ = s.client.Database(dbName).Drop(ctx)
		}
		_ = s.Close(ctx)
	})

	return s
}
