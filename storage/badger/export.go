package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/claimlog/claimlog/storage"
)

// ExportSnapshot reads the full contents of all seven collections in a
// single read transaction. Writes issued after the transaction opens do
// not appear in the snapshot.
func (b *Backend) ExportSnapshot(ctx context.Context) (*storage.Snapshot, error) {
	snap := storage.NewSnapshot()
	err := b.WithTx(func(tx *badger.Txn) error {
		if err := scanRecords(tx, orderPrefix, func(val []byte) error {
			order, err := storage.UnmarshalOrder(val)
			if err != nil {
				return err
			}
			snap.Orders = append(snap.Orders, order)
			return nil
		}); err != nil {
			return err
		}
		if err := scanRecords(tx, refundPrefix, func(val []byte) error {
			refund, err := storage.UnmarshalRefund(val)
			if err != nil {
				return err
			}
			snap.Refunds = append(snap.Refunds, refund)
			return nil
		}); err != nil {
			return err
		}
		if err := scanRecords(tx, claimPrefix, func(val []byte) error {
			claim, err := storage.UnmarshalWarrantyClaim(val)
			if err != nil {
				return err
			}
			snap.WarrantyClaims = append(snap.WarrantyClaims, claim)
			return nil
		}); err != nil {
			return err
		}
		if err := scanRecords(tx, contactPrefix, func(val []byte) error {
			contact, err := storage.UnmarshalContact(val)
			if err != nil {
				return err
			}
			snap.Contacts = append(snap.Contacts, contact)
			return nil
		}); err != nil {
			return err
		}
		if err := scanRecords(tx, communicationPrefix, func(val []byte) error {
			comm, err := storage.UnmarshalCommunication(val)
			if err != nil {
				return err
			}
			snap.Communications = append(snap.Communications, comm)
			return nil
		}); err != nil {
			return err
		}
		if err := scanRecords(tx, documentPrefix, func(val []byte) error {
			doc, err := storage.UnmarshalDocument(val)
			if err != nil {
				return err
			}
			snap.Documents = append(snap.Documents, doc)
			return nil
		}); err != nil {
			return err
		}
		return scanRecords(tx, retailerPrefix, func(val []byte) error {
			retailer, err := storage.UnmarshalRetailer(val)
			if err != nil {
				return err
			}
			snap.Retailers = append(snap.Retailers, retailer)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	snap.ExportedAt = time.Now().UTC()
	return snap, nil
}

// ClearAll deletes every record and index entry across all seven
// collections in one write transaction. The schema version marker is
// kept so a cleared store does not re-run migrations on next open.
func (b *Backend) ClearAll(ctx context.Context) error {
	return b.WithTx(func(tx *badger.Txn) error {
		for _, p := range allPrefixes {
			prefix := scanPrefix(p)
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			opts.PrefetchValues = false

			var keys [][]byte
			iter := tx.NewIterator(opts)
			for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
				keys = append(keys, iter.Item().KeyCopy(nil))
			}
			iter.Close()

			for _, key := range keys {
				if err := tx.Delete(key); err != nil {
					return err
				}
			}
		}
		return commit(tx)
	}, true)
}

// scanRecords walks the record values under a collection prefix in key
// order (ascending by id, which is creation order).
func scanRecords(tx *badger.Txn, recordPrefix string, fn func(val []byte) error) error {
	prefix := scanPrefix(recordPrefix)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix

	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
		if err := iter.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}
