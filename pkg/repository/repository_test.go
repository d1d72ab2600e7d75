package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/vesper-lab/adjutant/pkg/domain/interfaces"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/repository/firestore"
)

// newTestUserID returns a user ID unique to the test run so that tests
// against a shared Firestore project never collide.
func newTestUserID() types.UserID {
	return types.UserID(fmt.Sprintf("test-user-%d", time.Now().UnixNano()))
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}
