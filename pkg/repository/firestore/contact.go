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

// contactDoc is the Firestore document representation of model.Contact
type contactDoc struct {
	ID        string    `firestore:"ID"`
	UserID    string    `firestore:"UserID"`
	Name      string    `firestore:"Name"`
	NameLower string    `firestore:"NameLower"`
	Email     string    `firestore:"Email"`
	Notes     string    `firestore:"Notes"`
	CreatedAt time.Time `firestore:"CreatedAt"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

func toContactDoc(c *model.Contact) *contactDoc {
	return &contactDoc{
		ID:        c.ID.String(),
		UserID:    c.UserID.String(),
		Name:      c.Name,
		NameLower: strings.ToLower(c.Name),
		Email:     c.Email,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromContactDoc(d *contactDoc) *model.Contact {
	return &model.Contact{
		ID:        types.ContactID(d.ID),
		UserID:    types.UserID(d.UserID),
		Name:      d.Name,
		Email:     d.Email,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type contactRepository struct {
	client *firestore.Client
}

func newContactRepository(client *firestore.Client) *contactRepository {
	return &contactRepository{client: client}
}

func (r *contactRepository) contactsCollection(userID types.UserID) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID.String()).Collection("contacts")
}

func (r *contactRepository) ReplaceAll(ctx context.Context, userID types.UserID, contacts []*model.Contact) error {
	bw := r.client.BulkWriter(ctx)

	// Drop the old book first so removed senders actually disappear.
	iter := r.contactsCollection(userID).Documents(ctx)
	defer iter.Stop()
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate contacts for replace")
		}
		if _, err := bw.Delete(docSnap.Ref); err != nil {
			return goerr.Wrap(err, "failed to queue contact delete", goerr.V("doc_id", docSnap.Ref.ID))
		}
	}

	now := time.Now().UTC()
	for _, c := range contacts {
		stored := *c
		if stored.ID == "" {
			stored.ID = types.NewContactID()
		}
		stored.UserID = userID
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		stored.UpdatedAt = now

		docRef := r.contactsCollection(userID).Doc(stored.ID.String())
		if _, err := bw.Set(docRef, toContactDoc(&stored)); err != nil {
			return goerr.Wrap(err, "failed to queue contact write", goerr.V("name", stored.Name))
		}
	}

	bw.End()
	return nil
}

func (r *contactRepository) FindByName(ctx context.Context, userID types.UserID, name string) (*model.Contact, error) {
	iter := r.contactsCollection(userID).
		Where("NameLower", "==", strings.ToLower(name)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query contact by name", goerr.V("name", name))
	}

	var d contactDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode contact", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return fromContactDoc(&d), nil
}

func (r *contactRepository) List(ctx context.Context, userID types.UserID) ([]*model.Contact, error) {
	iter := r.contactsCollection(userID).OrderBy("NameLower", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	contacts := make([]*model.Contact, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate contacts")
		}

		var d contactDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode contact", goerr.V("doc_id", docSnap.Ref.ID))
		}
		contacts = append(contacts, fromContactDoc(&d))
	}

	return contacts, nil
}
