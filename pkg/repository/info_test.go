package repository_test

import (
	"context"
	"testing"

	"github.com/vesper-lab/adjutant/pkg/domain/interfaces"
	"github.com/vesper-lab/adjutant/pkg/repository/memory"
)

func runInfoRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Upsert stores and Lookup retrieves", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newTestUserID()

		item, err := repo.Info().Upsert(ctx, userID, "garage code", "4482")
		if err != nil {
			t.Fatalf("failed to upsert info: %v", err)
		}
		if item.ID == "" {
			t.Error("expected non-empty ID")
		}

		got, err := repo.Info().Lookup(ctx, userID, "garage code")
		if err != nil {
			t.Fatalf("failed to lookup info: %v", err)
		}
		if got == nil || got.Value != "4482" {
			t.Errorf("expected Value=4482, got %v", got)
		}
	})

	t.Run("Lookup is case-insensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newTestUserID()

		if _, err := repo.Info().Upsert(ctx, userID, "WiFi Password", "hunter2"); err != nil {
			t.Fatalf("failed to upsert info: %v", err)
		}

		got, err := repo.Info().Lookup(ctx, userID, "wifi password")
		if err != nil {
			t.Fatalf("failed to lookup info: %v", err)
		}
		if got == nil || got.Value != "hunter2" {
			t.Errorf("expected Value=hunter2, got %v", got)
		}
	})

	t.Run("Upsert overwrites the same label", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := newTestUserID()

		first, err := repo.Info().Upsert(ctx, userID, "parking spot", "B12")
		if err != nil {
			t.Fatalf("failed to upsert info: %v", err)
		}
		if _, err := repo.Info().Upsert(ctx, userID, "Parking Spot", "C3"); err != nil {
			t.Fatalf("failed to upsert info: %v", err)
		}

		got, err := repo.Info().Lookup(ctx, userID, "parking spot")
		if err != nil {
			t.Fatalf("failed to lookup info: %v", err)
		}
		if got == nil || got.Value != "C3" {
			t.Errorf("expected Value=C3, got %v", got)
		}
		if got.ID != first.ID {
			t.Errorf("expected overwrite to keep ID=%s, got %s", first.ID, got.ID)
		}

		items, err := repo.Info().List(ctx, userID)
		if err != nil {
			t.Fatalf("failed to list info: %v", err)
		}
		if len(items) != 1 {
			t.Errorf("expected 1 info item after overwrite, got %d", len(items))
		}
	})

	t.Run("Lookup returns nil when absent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		got, err := repo.Info().Lookup(ctx, newTestUserID(), "nothing saved")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("Upsert rejects empty label", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.Info().Upsert(ctx, newTestUserID(), "  ", "value"); err == nil {
			t.Error("expected error for empty label")
		}
	})
}

func TestMemoryInfoRepository(t *testing.T) {
	runInfoRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreInfoRepository(t *testing.T) {
	runInfoRepositoryTest(t, newFirestoreRepository)
}
