package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

// CommunicationRepository implements storage.CommunicationRepository
// for BadgerDB. Communications are immutable once written.
type CommunicationRepository struct {
	backend *Backend
}

var _ storage.CommunicationRepository = (*CommunicationRepository)(nil)

// NewCommunicationRepository creates a new CommunicationRepository.
func NewCommunicationRepository(backend *Backend) *CommunicationRepository {
	return &CommunicationRepository{backend: backend}
}

// Add assigns an id and timestamp, validates, and inserts the message.
// Exactly one of RefundId and WarrantyClaimId must be set; the parent
// is not checked for existence.
func (r *CommunicationRepository) Add(ctx context.Context, comm *core.Communication) (*core.Communication, error) {
	if comm.Id == "" {
		comm.Id = core.NewID()
	}
	if comm.Timestamp.IsZero() {
		comm.Timestamp = time.Now().UTC()
	}

	if err := core.ValidateCommunication(comm); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := recordKey(communicationPrefix, comm.Id)
		if _, err := tx.Get(key); err == nil {
			return fmt.Errorf("%w: communication %s", storage.ErrDuplicateKey, comm.Id)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		value, err := storage.MarshalCommunication(comm)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		if err := writeCommunicationIndexes(tx, comm); err != nil {
			return err
		}
		return commit(tx)
	}, true)
	if err != nil {
		return nil, err
	}
	return comm, nil
}

// Get retrieves a communication by id. Returns nil without error when
// the id is unknown.
func (r *CommunicationRepository) Get(ctx context.Context, id core.ID) (*core.Communication, error) {
	var result *core.Communication
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readCommunication(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAll returns every communication, newest first.
func (r *CommunicationRepository) GetAll(ctx context.Context) ([]*core.Communication, error) {
	var results []*core.Communication
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return indexScan(tx, scanPrefix(communicationTimeIdx), storage.Descending, func(id core.ID) error {
			comm, err := readCommunication(tx, id)
			if err != nil {
				return err
			}
			if comm != nil {
				results = append(results, comm)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetByRefund returns the refund's messages, oldest first.
func (r *CommunicationRepository) GetByRefund(ctx context.Context, refundID core.ID) ([]*core.Communication, error) {
	return r.getByParent(communicationRefundIdx, refundID)
}

// GetByWarrantyClaim returns the claim's messages, oldest first.
func (r *CommunicationRepository) GetByWarrantyClaim(ctx context.Context, claimID core.ID) ([]*core.Communication, error) {
	return r.getByParent(communicationClaimIdx, claimID)
}

func (r *CommunicationRepository) getByParent(idxPrefix string, parentID core.ID) ([]*core.Communication, error) {
	var results []*core.Communication
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return indexScan(tx, fkScanPrefix(idxPrefix, parentID), storage.Ascending, func(id core.ID) error {
			comm, err := readCommunication(tx, id)
			if err != nil {
				return err
			}
			if comm != nil {
				results = append(results, comm)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Delete removes the communication. Deleting an unknown id is a no-op.
func (r *CommunicationRepository) Delete(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteCommunicationTx(tx, id); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// deleteCommunicationTx removes a communication and its indexes inside
// an open write transaction. Unknown ids are a no-op so that refund and
// claim cascades stay idempotent.
func deleteCommunicationTx(tx *badger.Txn, id core.ID) error {
	comm, err := readCommunication(tx, id)
	if err != nil {
		return err
	}
	if comm == nil {
		return nil
	}

	if err := deleteCommunicationIndexes(tx, comm); err != nil {
		return err
	}
	return tx.Delete(recordKey(communicationPrefix, id))
}

// readCommunication reads a communication record inside a transaction.
func readCommunication(tx *badger.Txn, id core.ID) (*core.Communication, error) {
	item, err := tx.Get(recordKey(communicationPrefix, id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var comm *core.Communication
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		comm, unmarshalErr = storage.UnmarshalCommunication(val)
		return unmarshalErr
	})
	return comm, err
}

func writeCommunicationIndexes(tx *badger.Txn, comm *core.Communication) error {
	if comm.RefundId != "" {
		if err := tx.Set(stringIndexKey(communicationRefundIdx, string(comm.RefundId), comm.Id), []byte(comm.Id)); err != nil {
			return err
		}
	}
	if comm.WarrantyClaimId != "" {
		if err := tx.Set(stringIndexKey(communicationClaimIdx, string(comm.WarrantyClaimId), comm.Id), []byte(comm.Id)); err != nil {
			return err
		}
	}
	return tx.Set(timeIndexKey(communicationTimeIdx, comm.Timestamp, comm.Id), []byte(comm.Id))
}

func deleteCommunicationIndexes(tx *badger.Txn, comm *core.Communication) error {
	if comm.RefundId != "" {
		if err := tx.Delete(stringIndexKey(communicationRefundIdx, string(comm.RefundId), comm.Id)); err != nil {
			return err
		}
	}
	if comm.WarrantyClaimId != "" {
		if err := tx.Delete(stringIndexKey(communicationClaimIdx, string(comm.WarrantyClaimId), comm.Id)); err != nil {
			return err
		}
	}
	return tx.Delete(timeIndexKey(communicationTimeIdx, comm.Timestamp, comm.Id))
}
