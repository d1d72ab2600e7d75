package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"google.golang.org/api/iterator"
)

// infoDoc is the Firestore document representation of model.InfoItem.
// The lowercased label doubles as the document ID so an upsert is a
// single Set and a lookup is a single Get.
type infoDoc struct {
	ID        string    `firestore:"ID"`
	UserID    string    `firestore:"UserID"`
	Label     string    `firestore:"Label"`
	Value     string    `firestore:"Value"`
	CreatedAt time.Time `firestore:"CreatedAt"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

func toInfoDoc(item *model.InfoItem) *infoDoc {
	return &infoDoc{
		ID:        item.ID.String(),
		UserID:    item.UserID.String(),
		Label:     item.Label,
		Value:     item.Value,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func fromInfoDoc(d *infoDoc) *model.InfoItem {
	return &model.InfoItem{
		ID:        types.InfoID(d.ID),
		UserID:    types.UserID(d.UserID),
		Label:     d.Label,
		Value:     d.Value,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type infoRepository struct {
	client *firestore.Client
}

func newInfoRepository(client *firestore.Client) *infoRepository {
	return &infoRepository{client: client}
}

func (r *infoRepository) infoCollection(userID types.UserID) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID.String()).Collection("info")
}

func infoDocID(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func (r *infoRepository) Upsert(ctx context.Context, userID types.UserID, label, value string) (*model.InfoItem, error) {
	if strings.TrimSpace(label) == "" {
		return nil, goerr.New("info label is required")
	}

	docRef := r.infoCollection(userID).Doc(infoDocID(label))
	now := time.Now().UTC()

	item := &model.InfoItem{
		ID:        types.NewInfoID(),
		UserID:    userID,
		Label:     label,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Preserve the original ID and creation time on overwrite.
	if snap, err := docRef.Get(ctx); err == nil {
		var existing infoDoc
		if err := snap.DataTo(&existing); err == nil {
			item.ID = types.InfoID(existing.ID)
			item.CreatedAt = existing.CreatedAt
		}
	}

	if _, err := docRef.Set(ctx, toInfoDoc(item)); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert info item", goerr.V("label", label))
	}

	return item, nil
}

func (r *infoRepository) Lookup(ctx context.Context, userID types.UserID, label string) (*model.InfoItem, error) {
	snap, err := r.infoCollection(userID).Doc(infoDocID(label)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get info item", goerr.V("label", label))
	}

	var d infoDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode info item", goerr.V("doc_id", snap.Ref.ID))
	}

	return fromInfoDoc(&d), nil
}

func (r *infoRepository) List(ctx context.Context, userID types.UserID) ([]*model.InfoItem, error) {
	iter := r.infoCollection(userID).OrderBy("Label", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	items := make([]*model.InfoItem, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate info items")
		}

		var d infoDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode info item", goerr.V("doc_id", docSnap.Ref.ID))
		}
		items = append(items, fromInfoDoc(&d))
	}

	return items, nil
}
