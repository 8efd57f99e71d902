package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

// ContactRepository implements storage.ContactRepository for BadgerDB.
// Contacts reference nothing, so there is no cascade.
type ContactRepository struct {
	backend *Backend
}

var _ storage.ContactRepository = (*ContactRepository)(nil)

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(backend *Backend) *ContactRepository {
	return &ContactRepository{backend: backend}
}

// Add assigns an id and timestamps, validates, and inserts the contact.
func (r *ContactRepository) Add(ctx context.Context, contact *core.Contact) (*core.Contact, error) {
	if contact.Id == "" {
		contact.Id = core.NewID()
	}
	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	if err := core.ValidateContact(contact); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := recordKey(contactPrefix, contact.Id)
		if _, err := tx.Get(key); err == nil {
			return fmt.Errorf("%w: contact %s", storage.ErrDuplicateKey, contact.Id)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		value, err := storage.MarshalContact(contact)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		if err := tx.Set(timeIndexKey(contactCreatedIdx, contact.CreatedAt, contact.Id), []byte(contact.Id)); err != nil {
			return err
		}
		return commit(tx)
	}, true)
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// Get retrieves a contact by id. Returns nil without error when the id
// is unknown.
func (r *ContactRepository) Get(ctx context.Context, id core.ID) (*core.Contact, error) {
	var result *core.Contact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readContact(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAll returns every contact, newest first.
func (r *ContactRepository) GetAll(ctx context.Context) ([]*core.Contact, error) {
	var results []*core.Contact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return indexScan(tx, scanPrefix(contactCreatedIdx), storage.Descending, func(id core.ID) error {
			contact, err := readContact(tx, id)
			if err != nil {
				return err
			}
			if contact != nil {
				results = append(results, contact)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Update merges the patch over the stored contact and refreshes
// UpdatedAt. Returns ErrNotFound if the id is unknown.
func (r *ContactRepository) Update(ctx context.Context, id core.ID, patch *core.ContactPatch) (*core.Contact, error) {
	var result *core.Contact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		old, err := readContact(tx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("%w: contact %s", storage.ErrNotFound, id)
		}

		updated := *old
		patch.Apply(&updated)
		updated.UpdatedAt = time.Now().UTC()

		if err := core.ValidateContact(&updated); err != nil {
			return err
		}

		value, err := storage.MarshalContact(&updated)
		if err != nil {
			return err
		}
		if err := tx.Set(recordKey(contactPrefix, id), value); err != nil {
			return err
		}

		result = &updated
		return commit(tx)
	}, true)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the contact. Deleting an unknown id is a no-op.
func (r *ContactRepository) Delete(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		contact, err := readContact(tx, id)
		if err != nil {
			return err
		}
		if contact == nil {
			return nil
		}

		if err := tx.Delete(timeIndexKey(contactCreatedIdx, contact.CreatedAt, id)); err != nil {
			return err
		}
		if err := tx.Delete(recordKey(contactPrefix, id)); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// readContact reads a contact record inside a transaction.
func readContact(tx *badger.Txn, id core.ID) (*core.Contact, error) {
	item, err := tx.Get(recordKey(contactPrefix, id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var contact *core.Contact
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		contact, unmarshalErr = storage.UnmarshalContact(val)
		return unmarshalErr
	})
	return contact, err
}
