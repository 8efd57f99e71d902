package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

// RetailerRepository implements storage.RetailerRepository for
// BadgerDB.
type RetailerRepository struct {
	backend *Backend
}

var _ storage.RetailerRepository = (*RetailerRepository)(nil)

// NewRetailerRepository creates a new RetailerRepository.
func NewRetailerRepository(backend *Backend) *RetailerRepository {
	return &RetailerRepository{backend: backend}
}

// Add assigns an id and creation timestamp, validates, and inserts the
// retailer.
func (r *RetailerRepository) Add(ctx context.Context, retailer *core.Retailer) (*core.Retailer, error) {
	if retailer.Id == "" {
		retailer.Id = core.NewID()
	}
	retailer.CreatedAt = time.Now().UTC()

	if err := core.ValidateRetailer(retailer); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := recordKey(retailerPrefix, retailer.Id)
		if _, err := tx.Get(key); err == nil {
			return fmt.Errorf("%w: retailer %s", storage.ErrDuplicateKey, retailer.Id)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		value, err := storage.MarshalRetailer(retailer)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		if err := tx.Set(stringIndexKey(retailerNameIdx, retailer.Name, retailer.Id), []byte(retailer.Id)); err != nil {
			return err
		}
		return commit(tx)
	}, true)
	if err != nil {
		return nil, err
	}
	return retailer, nil
}

// Get retrieves a retailer by id. Returns nil without error when the
// id is unknown.
func (r *RetailerRepository) Get(ctx context.Context, id core.ID) (*core.Retailer, error) {
	var result *core.Retailer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRetailer(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAll returns every retailer, sorted by name ascending.
func (r *RetailerRepository) GetAll(ctx context.Context) ([]*core.Retailer, error) {
	var results []*core.Retailer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return indexScan(tx, scanPrefix(retailerNameIdx), storage.Ascending, func(id core.ID) error {
			retailer, err := readRetailer(tx, id)
			if err != nil {
				return err
			}
			if retailer != nil {
				results = append(results, retailer)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Count returns the number of stored retailers.
func (r *RetailerRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := scanPrefix(retailerPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Update merges the patch over the stored retailer. Returns
// ErrNotFound if the id is unknown.
func (r *RetailerRepository) Update(ctx context.Context, id core.ID, patch *core.RetailerPatch) (*core.Retailer, error) {
	var result *core.Retailer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		old, err := readRetailer(tx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("%w: retailer %s", storage.ErrNotFound, id)
		}

		updated := *old
		patch.Apply(&updated)

		if err := core.ValidateRetailer(&updated); err != nil {
			return err
		}

		value, err := storage.MarshalRetailer(&updated)
		if err != nil {
			return err
		}
		if err := tx.Set(recordKey(retailerPrefix, id), value); err != nil {
			return err
		}

		if old.Name != updated.Name {
			if err := tx.Delete(stringIndexKey(retailerNameIdx, old.Name, id)); err != nil {
				return err
			}
			if err := tx.Set(stringIndexKey(retailerNameIdx, updated.Name, id), []byte(id)); err != nil {
				return err
			}
		}

		result = &updated
		return commit(tx)
	}, true)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the retailer. Deleting an unknown id is a no-op.
// Retailers are reference data: records naming the retailer are left
// untouched.
func (r *RetailerRepository) Delete(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		retailer, err := readRetailer(tx, id)
		if err != nil {
			return err
		}
		if retailer == nil {
			return nil
		}

		if err := tx.Delete(stringIndexKey(retailerNameIdx, retailer.Name, id)); err != nil {
			return err
		}
		if err := tx.Delete(recordKey(retailerPrefix, id)); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// readRetailer reads a retailer record inside a transaction.
func readRetailer(tx *badger.Txn, id core.ID) (*core.Retailer, error) {
	item, err := tx.Get(recordKey(retailerPrefix, id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var retailer *core.Retailer
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		retailer, unmarshalErr = storage.UnmarshalRetailer(val)
		return unmarshalErr
	})
	return retailer, err
}
