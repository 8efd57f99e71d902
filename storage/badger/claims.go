package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

// WarrantyClaimRepository implements storage.WarrantyClaimRepository
// for BadgerDB.
type WarrantyClaimRepository struct {
	backend *Backend
}

var _ storage.WarrantyClaimRepository = (*WarrantyClaimRepository)(nil)

// NewWarrantyClaimRepository creates a new WarrantyClaimRepository.
func NewWarrantyClaimRepository(backend *Backend) *WarrantyClaimRepository {
	return &WarrantyClaimRepository{backend: backend}
}

// Add assigns an id and timestamps, validates, and inserts the claim.
func (r *WarrantyClaimRepository) Add(ctx context.Context, claim *core.WarrantyClaim) (*core.WarrantyClaim, error) {
	if claim.Id == "" {
		claim.Id = core.NewID()
	}
	now := time.Now().UTC()
	claim.CreatedAt = now
	claim.UpdatedAt = now

	if err := core.ValidateWarrantyClaim(claim); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := recordKey(claimPrefix, claim.Id)
		if _, err := tx.Get(key); err == nil {
			return fmt.Errorf("%w: warranty claim %s", storage.ErrDuplicateKey, claim.Id)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		value, err := storage.MarshalWarrantyClaim(claim)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		if err := writeClaimIndexes(tx, claim); err != nil {
			return err
		}
		return commit(tx)
	}, true)
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// Get retrieves a warranty claim by id. Returns nil without error when
// the id is unknown.
func (r *WarrantyClaimRepository) Get(ctx context.Context, id core.ID) (*core.WarrantyClaim, error) {
	var result *core.WarrantyClaim
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readWarrantyClaim(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAll returns every warranty claim, newest first.
func (r *WarrantyClaimRepository) GetAll(ctx context.Context) ([]*core.WarrantyClaim, error) {
	return r.GetAllOrderedBy(ctx, storage.SortByCreatedAt, storage.Descending)
}

// GetAllOrderedBy returns every warranty claim sorted by an indexed field.
func (r *WarrantyClaimRepository) GetAllOrderedBy(ctx context.Context, field storage.SortField, dir storage.Direction) ([]*core.WarrantyClaim, error) {
	var idxPrefix string
	switch field {
	case storage.SortByCreatedAt:
		idxPrefix = claimCreatedIdx
	case storage.SortByStatus:
		idxPrefix = claimStatusIdx
	case storage.SortByRetailerName:
		idxPrefix = claimRetailerIdx
	default:
		return nil, fmt.Errorf("%w: warranty claims cannot be sorted by %q", storage.ErrInvalidQuery, field)
	}

	var results []*core.WarrantyClaim
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return indexScan(tx, scanPrefix(idxPrefix), dir, func(id core.ID) error {
			claim, err := readWarrantyClaim(tx, id)
			if err != nil {
				return err
			}
			if claim != nil {
				results = append(results, claim)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetByOrder returns the claims raised against one order, oldest first.
func (r *WarrantyClaimRepository) GetByOrder(ctx context.Context, orderID core.ID) ([]*core.WarrantyClaim, error) {
	var results []*core.WarrantyClaim
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return indexScan(tx, fkScanPrefix(claimOrderIdx, orderID), storage.Ascending, func(id core.ID) error {
			claim, err := readWarrantyClaim(tx, id)
			if err != nil {
				return err
			}
			if claim != nil {
				results = append(results, claim)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Update merges the patch over the stored claim and refreshes
// UpdatedAt. Returns ErrNotFound if the id is unknown.
func (r *WarrantyClaimRepository) Update(ctx context.Context, id core.ID, patch *core.WarrantyClaimPatch) (*core.WarrantyClaim, error) {
	var result *core.WarrantyClaim
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		old, err := readWarrantyClaim(tx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("%w: warranty claim %s", storage.ErrNotFound, id)
		}

		updated := *old
		patch.Apply(&updated)
		updated.UpdatedAt = time.Now().UTC()

		if err := core.ValidateWarrantyClaim(&updated); err != nil {
			return err
		}

		value, err := storage.MarshalWarrantyClaim(&updated)
		if err != nil {
			return err
		}
		if err := tx.Set(recordKey(claimPrefix, id), value); err != nil {
			return err
		}

		if old.Status != updated.Status {
			if err := tx.Delete(stringIndexKey(claimStatusIdx, string(old.Status), id)); err != nil {
				return err
			}
			if err := tx.Set(stringIndexKey(claimStatusIdx, string(updated.Status), id), []byte(id)); err != nil {
				return err
			}
		}
		if old.RetailerName != updated.RetailerName {
			if err := tx.Delete(stringIndexKey(claimRetailerIdx, old.RetailerName, id)); err != nil {
				return err
			}
			if err := tx.Set(stringIndexKey(claimRetailerIdx, updated.RetailerName, id), []byte(id)); err != nil {
				return err
			}
		}
		if old.OrderId != updated.OrderId {
			if old.OrderId != "" {
				if err := tx.Delete(stringIndexKey(claimOrderIdx, string(old.OrderId), id)); err != nil {
					return err
				}
			}
			if updated.OrderId != "" {
				if err := tx.Set(stringIndexKey(claimOrderIdx, string(updated.OrderId), id), []byte(id)); err != nil {
					return err
				}
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

// Delete removes the claim and every communication logged against it,
// all in one transaction. Deleting an unknown id is a no-op.
func (r *WarrantyClaimRepository) Delete(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteWarrantyClaimTx(tx, id); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// deleteWarrantyClaimTx removes a claim, its indexes, and its
// communications inside an open write transaction. Unknown ids are a
// no-op so that order cascades stay idempotent.
func deleteWarrantyClaimTx(tx *badger.Txn, id core.ID) error {
	claim, err := readWarrantyClaim(tx, id)
	if err != nil {
		return err
	}
	if claim == nil {
		return nil
	}

	commIDs, err := collectIndexIDs(tx, fkScanPrefix(communicationClaimIdx, id), storage.Ascending)
	if err != nil {
		return err
	}
	for _, commID := range commIDs {
		if err := deleteCommunicationTx(tx, commID); err != nil {
			return err
		}
	}

	if err := deleteClaimIndexes(tx, claim); err != nil {
		return err
	}
	return tx.Delete(recordKey(claimPrefix, id))
}

// readWarrantyClaim reads a claim record inside a transaction.
func readWarrantyClaim(tx *badger.Txn, id core.ID) (*core.WarrantyClaim, error) {
	item, err := tx.Get(recordKey(claimPrefix, id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var claim *core.WarrantyClaim
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		claim, unmarshalErr = storage.UnmarshalWarrantyClaim(val)
		return unmarshalErr
	})
	return claim, err
}

// writeClaimIndexes writes all secondary index entries for a claim.
// The order index is only written when the claim references an order.
func writeClaimIndexes(tx *badger.Txn, claim *core.WarrantyClaim) error {
	if err := tx.Set(timeIndexKey(claimCreatedIdx, claim.CreatedAt, claim.Id), []byte(claim.Id)); err != nil {
		return err
	}
	if err := tx.Set(stringIndexKey(claimStatusIdx, string(claim.Status), claim.Id), []byte(claim.Id)); err != nil {
		return err
	}
	if err := tx.Set(stringIndexKey(claimRetailerIdx, claim.RetailerName, claim.Id), []byte(claim.Id)); err != nil {
		return err
	}
	if claim.OrderId != "" {
		return tx.Set(stringIndexKey(claimOrderIdx, string(claim.OrderId), claim.Id), []byte(claim.Id))
	}
	return nil
}

// deleteClaimIndexes removes all secondary index entries for a claim.
func deleteClaimIndexes(tx *badger.Txn, claim *core.WarrantyClaim) error {
	if err := tx.Delete(timeIndexKey(claimCreatedIdx, claim.CreatedAt, claim.Id)); err != nil {
		return err
	}
	if err := tx.Delete(stringIndexKey(claimStatusIdx, string(claim.Status), claim.Id)); err != nil {
		return err
	}
	if err := tx.Delete(stringIndexKey(claimRetailerIdx, claim.RetailerName, claim.Id)); err != nil {
		return err
	}
	if claim.OrderId != "" {
		return tx.Delete(stringIndexKey(claimOrderIdx, string(claim.OrderId), claim.Id))
	}
	return nil
}
