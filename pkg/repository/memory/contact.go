package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

type contactRepository struct {
	mu       sync.RWMutex
	contacts map[types.UserID][]*model.Contact
}

func newContactRepository() *contactRepository {
	return &contactRepository{
		contacts: make(map[types.UserID][]*model.Contact),
	}
}

func copyContact(c *model.Contact) *model.Contact {
	copied := *c
	return &copied
}

func (r *contactRepository) ReplaceAll(ctx context.Context, userID types.UserID, contacts []*model.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	rows := make([]*model.Contact, 0, len(contacts))
	for _, c := range contacts {
		row := copyContact(c)
		if row.ID == "" {
			row.ID = types.NewContactID()
		}
		row.UserID = userID
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
		rows = append(rows, row)
	}

	r.contacts[userID] = rows
	return nil
}

func (r *contactRepository) FindByName(ctx context.Context, userID types.UserID, name string) (*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	target := strings.TrimSpace(name)
	for _, c := range r.contacts[userID] {
		if strings.EqualFold(strings.TrimSpace(c.Name), target) {
			return copyContact(c), nil
		}
	}
	return nil, nil
}

func (r *contactRepository) List(ctx context.Context, userID types.UserID) ([]*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.contacts[userID]
	contacts := make([]*model.Contact, 0, len(rows))
	for _, c := range rows {
		contacts = append(contacts, copyContact(c))
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].Name < contacts[j].Name
	})

	return contacts, nil
}
