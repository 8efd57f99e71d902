package badger

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

// DocumentRepository implements storage.DocumentRepository for
// BadgerDB. Documents are immutable once written.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) *DocumentRepository {
	return &DocumentRepository{backend: backend}
}

// Add assigns an id and upload timestamp, validates, and inserts the
// document reference.
func (r *DocumentRepository) Add(ctx context.Context, doc *core.Document) (*core.Document, error) {
	if doc.Id == "" {
		doc.Id = core.NewID()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}

	if err := core.ValidateDocument(doc); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := recordKey(documentPrefix, doc.Id)
		if _, err := tx.Get(key); err == nil {
			return fmt.Errorf("%w: document %s", storage.ErrDuplicateKey, doc.Id)
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		value, err := storage.MarshalDocument(doc)
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		if err := writeDocumentIndexes(tx, doc); err != nil {
			return err
		}
		return commit(tx)
	}, true)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Get retrieves a document by id. Returns nil without error when the
// id is unknown.
func (r *DocumentRepository) Get(ctx context.Context, id core.ID) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readDocument(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAll returns every document, newest first. Document ids carry a
// monotonic time component, so a reverse scan over the record keys is
// already newest-first.
func (r *DocumentRepository) GetAll(ctx context.Context) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := scanPrefix(documentPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		seek := append(bytes.Clone(prefix), 0xff)
		for iter.Seek(seek); iter.ValidForPrefix(prefix); iter.Next() {
			var doc *core.Document
			if err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				doc, unmarshalErr = storage.UnmarshalDocument(val)
				return unmarshalErr
			}); err != nil {
				return err
			}
			results = append(results, doc)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetByRefund returns the documents attached to one refund.
func (r *DocumentRepository) GetByRefund(ctx context.Context, refundID core.ID) ([]*core.Document, error) {
	return r.getByParent(documentRefundIdx, refundID)
}

// GetByWarrantyClaim returns the documents attached to one claim.
func (r *DocumentRepository) GetByWarrantyClaim(ctx context.Context, claimID core.ID) ([]*core.Document, error) {
	return r.getByParent(documentClaimIdx, claimID)
}

// GetByOrder returns the documents attached to one order.
func (r *DocumentRepository) GetByOrder(ctx context.Context, orderID core.ID) ([]*core.Document, error) {
	return r.getByParent(documentOrderIdx, orderID)
}

func (r *DocumentRepository) getByParent(idxPrefix string, parentID core.ID) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return indexScan(tx, fkScanPrefix(idxPrefix, parentID), storage.Ascending, func(id core.ID) error {
			doc, err := readDocument(tx, id)
			if err != nil {
				return err
			}
			if doc != nil {
				results = append(results, doc)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Delete removes the document. Deleting an unknown id is a no-op.
func (r *DocumentRepository) Delete(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteDocumentTx(tx, id); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// deleteDocumentTx removes a document and its indexes inside an open
// write transaction. Unknown ids are a no-op so that order cascades
// stay idempotent.
func deleteDocumentTx(tx *badger.Txn, id core.ID) error {
	doc, err := readDocument(tx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	if err := deleteDocumentIndexes(tx, doc); err != nil {
		return err
	}
	return tx.Delete(recordKey(documentPrefix, id))
}

// readDocument reads a document record inside a transaction.
func readDocument(tx *badger.Txn, id core.ID) (*core.Document, error) {
	item, err := tx.Get(recordKey(documentPrefix, id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return doc, err
}

func writeDocumentIndexes(tx *badger.Txn, doc *core.Document) error {
	if doc.RefundId != "" {
		if err := tx.Set(stringIndexKey(documentRefundIdx, string(doc.RefundId), doc.Id), []byte(doc.Id)); err != nil {
			return err
		}
	}
	if doc.WarrantyClaimId != "" {
		if err := tx.Set(stringIndexKey(documentClaimIdx, string(doc.WarrantyClaimId), doc.Id), []byte(doc.Id)); err != nil {
			return err
		}
	}
	if doc.OrderId != "" {
		if err := tx.Set(stringIndexKey(documentOrderIdx, string(doc.OrderId), doc.Id), []byte(doc.Id)); err != nil {
			return err
		}
	}
	return nil
}

func deleteDocumentIndexes(tx *badger.Txn, doc *core.Document) error {
	if doc.RefundId != "" {
		if err := tx.Delete(stringIndexKey(documentRefundIdx, string(doc.RefundId), doc.Id)); err != nil {
			return err
		}
	}
	if doc.WarrantyClaimId != "" {
		if err := tx.Delete(stringIndexKey(documentClaimIdx, string(doc.WarrantyClaimId), doc.Id)); err != nil {
			return err
		}
	}
	if doc.OrderId != "" {
		if err := tx.Delete(stringIndexKey(documentOrderIdx, string(doc.OrderId), doc.Id)); err != nil {
			return err
		}
	}
	return nil
}
