package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

// OrderRepository implements storage.OrderRepository for BadgerDB.
type OrderRepository struct {
	backend *Backend
}

var _ storage.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(backend *Backend) *OrderRepository {
	return &OrderRepository{backend: backend}
}

// Add assigns an id and timestamps, validates, and inserts the order.
func (r *OrderRepository) Add(ctx context.Context, order *core.Order) (*core.Order, error) {
	if order.Id == "" {
		order.Id = core.NewID()
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := core.ValidateOrder(order); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := recordKey(orderPrefix, order.Id)
		if _, err := tx.Get(key); err == nil {
			return fmt.Errorf("%w: order %s", storage.ErrDuplicateKey, order.Id)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		value, err := storage.MarshalOrder(order)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		if err := writeOrderIndexes(tx, order); err != nil {
			return err
		}
		return commit(tx)
	}, true)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Get retrieves an order by id. Returns nil without error when the id
// is unknown.
func (r *OrderRepository) Get(ctx context.Context, id core.ID) (*core.Order, error) {
	var result *core.Order
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readOrder(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAll returns every order, newest purchase first.
func (r *OrderRepository) GetAll(ctx context.Context) ([]*core.Order, error) {
	return r.GetAllOrderedBy(ctx, storage.SortByPurchaseDate, storage.Descending)
}

// GetAllOrderedBy returns every order sorted by an indexed field.
func (r *OrderRepository) GetAllOrderedBy(ctx context.Context, field storage.SortField, dir storage.Direction) ([]*core.Order, error) {
	var idxPrefix string
	switch field {
	case storage.SortByPurchaseDate:
		idxPrefix = orderPurchaseDateIdx
	case storage.SortByRetailerName:
		idxPrefix = orderRetailerIdx
	case storage.SortByCreatedAt:
		idxPrefix = orderCreatedIdx
	default:
		return nil, fmt.Errorf("%w: orders cannot be sorted by %q", storage.ErrInvalidQuery, field)
	}

	var results []*core.Order
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return indexScan(tx, scanPrefix(idxPrefix), dir, func(id core.ID) error {
			order, err := readOrder(tx, id)
			if err != nil {
				return err
			}
			if order != nil {
				results = append(results, order)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Update merges the patch over the stored order and refreshes
// UpdatedAt. Returns ErrNotFound if the id is unknown.
func (r *OrderRepository) Update(ctx context.Context, id core.ID, patch *core.OrderPatch) (*core.Order, error) {
	var result *core.Order
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		old, err := readOrder(tx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return fmt.Errorf("%w: order %s", storage.ErrNotFound, id)
		}

		updated := *old
		patch.Apply(&updated)
		updated.UpdatedAt = time.Now().UTC()

		if err := core.ValidateOrder(&updated); err != nil {
			return err
		}

		value, err := storage.MarshalOrder(&updated)
		if err != nil {
			return err
		}
		if err := tx.Set(recordKey(orderPrefix, id), value); err != nil {
			return err
		}

		// Move index entries whose indexed value changed.
		if old.PurchaseDate != updated.PurchaseDate {
			if err := tx.Delete(stringIndexKey(orderPurchaseDateIdx, string(old.PurchaseDate), id)); err != nil {
				return err
			}
			if err := tx.Set(stringIndexKey(orderPurchaseDateIdx, string(updated.PurchaseDate), id), []byte(id)); err != nil {
				return err
			}
		}
		if old.RetailerName != updated.RetailerName {
			if err := tx.Delete(stringIndexKey(orderRetailerIdx, old.RetailerName, id)); err != nil {
				return err
			}
			if err := tx.Set(stringIndexKey(orderRetailerIdx, updated.RetailerName, id), []byte(id)); err != nil {
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

// Delete removes the order and cascades to warranty claims and
// documents that reference it, all in one transaction. Deleting an
// unknown id is a no-op.
func (r *OrderRepository) Delete(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		order, err := readOrder(tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return nil
		}

		// Collect dependents first so iteration never races the
		// deletes below.
		claimIDs, err := collectIndexIDs(tx, fkScanPrefix(claimOrderIdx, id), storage.Ascending)
		if err != nil {
			return err
		}
		docIDs, err := collectIndexIDs(tx, fkScanPrefix(documentOrderIdx, id), storage.Ascending)
		if err != nil {
			return err
		}

		for _, claimID := range claimIDs {
			if err := deleteWarrantyClaimTx(tx, claimID); err != nil {
				return err
			}
		}
		for _, docID := range docIDs {
			if err := deleteDocumentTx(tx, docID); err != nil {
				return err
			}
		}

		if err := deleteOrderIndexes(tx, order); err != nil {
			return err
		}
		if err := tx.Delete(recordKey(orderPrefix, id)); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// readOrder reads an order record inside a transaction. Missing ids
// come back as nil, nil.
func readOrder(tx *badger.Txn, id core.ID) (*core.Order, error) {
	item, err := tx.Get(recordKey(orderPrefix, id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var order *core.Order
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		order, unmarshalErr = storage.UnmarshalOrder(val)
		return unmarshalErr
	})
	return order, err
}

// writeOrderIndexes writes all secondary index entries for an order.
// Empty field values are still indexed so full-collection scans see
// every record.
func writeOrderIndexes(tx *badger.Txn, order *core.Order) error {
	if err := tx.Set(stringIndexKey(orderPurchaseDateIdx, string(order.PurchaseDate), order.Id), []byte(order.Id)); err != nil {
		return err
	}
	if err := tx.Set(stringIndexKey(orderRetailerIdx, order.RetailerName, order.Id), []byte(order.Id)); err != nil {
		return err
	}
	return tx.Set(timeIndexKey(orderCreatedIdx, order.CreatedAt, order.Id), []byte(order.Id))
}

// deleteOrderIndexes removes all secondary index entries for an order.
func deleteOrderIndexes(tx *badger.Txn, order *core.Order) error {
	if err := tx.Delete(stringIndexKey(orderPurchaseDateIdx, string(order.PurchaseDate), order.Id)); err != nil {
		return err
	}
	if err := tx.Delete(stringIndexKey(orderRetailerIdx, order.RetailerName, order.Id)); err != nil {
		return err
	}
	return tx.Delete(timeIndexKey(orderCreatedIdx, order.CreatedAt, order.Id))
}
