package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

type infoRepository struct {
	mu    sync.RWMutex
	items map[types.UserID]map[types.InfoID]*model.InfoItem
}

func newInfoRepository() *infoRepository {
	return &infoRepository{
		items: make(map[types.UserID]map[types.InfoID]*model.InfoItem),
	}
}

func copyInfoItem(i *model.InfoItem) *model.InfoItem {
	copied := *i
	return &copied
}

func (r *infoRepository) Upsert(ctx context.Context, userID types.UserID, label, value string) (*model.InfoItem, error) {
	if strings.TrimSpace(label) == "" {
		return nil, goerr.New("info label is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[userID]; !exists {
		r.items[userID] = make(map[types.InfoID]*model.InfoItem)
	}

	now := time.Now().UTC()
	for _, item := range r.items[userID] {
		if strings.EqualFold(item.Label, label) {
			item.Value = value
			item.UpdatedAt = now
			return copyInfoItem(item), nil
		}
	}

	created := &model.InfoItem{
		ID:        types.NewInfoID(),
		UserID:    userID,
		Label:     label,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.items[userID][created.ID] = created
	return copyInfoItem(created), nil
}

func (r *infoRepository) Lookup(ctx context.Context, userID types.UserID, label string) (*model.InfoItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.InfoItem
	for _, item := range r.items[userID] {
		if !strings.EqualFold(item.Label, label) {
			continue
		}
		if latest == nil || item.UpdatedAt.After(latest.UpdatedAt) {
			latest = item
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copyInfoItem(latest), nil
}

func (r *infoRepository) List(ctx context.Context, userID types.UserID) ([]*model.InfoItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.items[userID]
	items := make([]*model.InfoItem, 0, len(rows))
	for _, item := range rows {
		items = append(items, copyInfoItem(item))
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}
