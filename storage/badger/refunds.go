package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

// RefundRepository implements storage.RefundRepository for BadgerDB.
type RefundRepository struct {
	backend *Backend
}

var _ storage.RefundRepository = (*RefundRepository)(nil)

// NewRefundRepository creates a new RefundRepository.
func NewRefundRepository(backend *Backend) *RefundRepository {
	return &RefundRepository{backend: backend}
}

// Add assigns an id and timestamps, validates, and inserts the refund.
func (r *RefundRepository) Add(ctx context.Context, refund *core.Refund) (*core.Refund, error) {
	if refund.Id == "" {
		refund.Id = core.NewID()
	}
	now := time.Now().UTC()
	refund.CreatedAt = now
	refund.UpdatedAt = now

	if err := core.ValidateRefund(refund); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := recordKey(refundPrefix, refund.Id)
		if _, err := tx.Get(key); err == nil {
			return fmt.Errorf("%w: refund %s", storage.ErrDuplicateKey, refund.Id)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		value, err := storage.MarshalRefund(refund)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		if err := writeRefundIndexes(tx, refund); err != nil {
			return err
		}
		return commit(tx)
	}, true)
	if err != nil {
		return nil, err
	}
	return refund, nil
}

// Get retrieves a refund by id. Returns nil without error when the id
// is unknown.
func (r *RefundRepository) Get(ctx context.Context, id core.ID) (*core.Refund, error) {
	var result *core.Refund
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRefund(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAll returns every refund, newest first.
func (r *RefundRepository) GetAll(ctx context.Context) ([]*core.Refund, error) {
	return r.GetAllOrderedBy(ctx, storage.SortByCreatedAt, storage.Descending)
}

// GetAllOrderedBy returns every refund sorted by an indexed field.
func (r *RefundRepository) GetAllOrderedBy(ctx context.Context, field storage.SortField, dir storage.Direction) ([]*core.Refund, error) {
	var idxPrefix string
	switch field {
	case storage.SortByCreatedAt:
		idxPrefix = refundCreatedIdx
	case storage.SortByStatus:
		idxPrefix = refundStatusIdx
	case storage.SortByRetailerName:
		idxPrefix = refundRetailerIdx
	default:
		return nil, fmt.Errorf("%w: refunds cannot be sorted by %q", storage.ErrInvalidQuery, field)
	}

	var results []*core.Refund
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return indexScan(tx, scanPrefix(idxPrefix), dir, func(id core.ID) error {
			refund, err := readRefund(tx, id)
			if err != nil {
				return err
			}
			if refund != nil {
				results = append(results, refund)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Update merges the patch over the stored refund and refreshes
// UpdatedAt. Returns ErrNotFound if the id is unknown.
func (r *RefundRepository) Update(ctx context.Context, id core.ID, patch *core.RefundPatch) (*core.Refund, error) {
	var result *core.Refund
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		old, err := readRefund(tx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("%w: refund %s", storage.ErrNotFound, id)
		}

		updated := *old
		patch.Apply(&updated)
		updated.UpdatedAt = time.Now().UTC()

		if err := core.ValidateRefund(&updated); err != nil {
			return err
		}

		value, err := storage.MarshalRefund(&updated)
		if err != nil {
			return err
		}
		if err := tx.Set(recordKey(refundPrefix, id), value); err != nil {
			return err
		}

		if old.Status != updated.Status {
			if err := tx.Delete(stringIndexKey(refundStatusIdx, string(old.Status), id)); err != nil {
				return err
			}
			if err := tx.Set(stringIndexKey(refundStatusIdx, string(updated.Status), id), []byte(id)); err != nil {
				return err
			}
		}
		if old.RetailerName != updated.RetailerName {
			if err := tx.Delete(stringIndexKey(refundRetailerIdx, old.RetailerName, id)); err != nil {
				return err
			}
			if err := tx.Set(stringIndexKey(refundRetailerIdx, updated.RetailerName, id), []byte(id)); err != nil {
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

// Delete removes the refund and every communication logged against it,
// all in one transaction. Deleting an unknown id is a no-op.
func (r *RefundRepository) Delete(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		refund, err := readRefund(tx, id)
		if err != nil {
			return err
		}
		if refund == nil {
			return nil
		}

		commIDs, err := collectIndexIDs(tx, fkScanPrefix(communicationRefundIdx, id), storage.Ascending)
		if err != nil {
			return err
		}
		for _, commID := range commIDs {
			if err := deleteCommunicationTx(tx, commID); err != nil {
				return err
			}
		}

		if err := deleteRefundIndexes(tx, refund); err != nil {
			return err
		}
		if err := tx.Delete(recordKey(refundPrefix, id)); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// readRefund reads a refund record inside a transaction.
func readRefund(tx *badger.Txn, id core.ID) (*core.Refund, error) {
	item, err := tx.Get(recordKey(refundPrefix, id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var refund *core.Refund
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		refund, unmarshalErr = storage.UnmarshalRefund(val)
		return unmarshalErr
	})
	return refund, err
}

// writeRefundIndexes writes all secondary index entries for a refund.
func writeRefundIndexes(tx *badger.Txn, refund *core.Refund) error {
	if err := tx.Set(timeIndexKey(refundCreatedIdx, refund.CreatedAt, refund.Id), []byte(refund.Id)); err != nil {
		return err
	}
	if err := tx.Set(stringIndexKey(refundStatusIdx, string(refund.Status), refund.Id), []byte(refund.Id)); err != nil {
		return err
	}
	return tx.Set(stringIndexKey(refundRetailerIdx, refund.RetailerName, refund.Id), []byte(refund.Id))
}

// deleteRefundIndexes removes all secondary index entries for a refund.
func deleteRefundIndexes(tx *badger.Txn, refund *core.Refund) error {
	if err := tx.Delete(timeIndexKey(refundCreatedIdx, refund.CreatedAt, refund.Id)); err != nil {
		return err
	}
	if err := tx.Delete(stringIndexKey(refundStatusIdx, string(refund.Status), refund.Id)); err != nil {
		return err
	}
	return tx.Delete(stringIndexKey(refundRetailerIdx, refund.RetailerName, refund.Id))
}
