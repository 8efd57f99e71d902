// Copyright 2025 The claimlog Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

// schemaVersion is the current on-disk schema version. Version 2 added
// DeliveredDate and ReturnDeadline to refunds.
const schemaVersion = 2

// Migrate brings the store's schema up to the current version. It runs
// once per open, before any repository is used, and is idempotent: a
// store already at the current version is untouched.
func (b *Backend) Migrate(ctx context.Context) error {
	stored, err := b.storedSchemaVersion()
	if err != nil {
		return err
	}
	if stored >= schemaVersion {
		return nil
	}

	b.logger.Info("migrating store schema",
		slog.Int("from", stored),
		slog.Int("to", schemaVersion))

	if stored < 2 {
		if err := b.migrateRefundDeadlines(); err != nil {
			return err
		}
	}

	return b.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(schemaVersionKey), []byte(strconv.Itoa(schemaVersion))); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// storedSchemaVersion reads the version marker. A store without a
// marker is treated as version 1: pre-marker stores exist, and running
// the backfills on a fresh store is a no-op anyway.
func (b *Backend) storedSchemaVersion() (int, error) {
	version := 1
	err := b.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(schemaVersionKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			v, convErr := strconv.Atoi(string(val))
			if convErr != nil {
				return convErr
			}
			version = v
			return nil
		})
	}, false)
	return version, err
}

// migrateRefundDeadlines backfills DeliveredDate and ReturnDeadline on
// refunds written before version 2. A missing delivered date becomes
// today; a missing deadline becomes delivered date plus thirty days.
// Records that already carry both fields are never rewritten, so
// repeated runs are harmless.
func (b *Backend) migrateRefundDeadlines() error {
	migrated := 0
	err := b.WithTx(func(tx *badger.Txn) error {
		var updates []*core.Refund
		if err := scanRecords(tx, refundPrefix, func(val []byte) error {
			refund, err := storage.UnmarshalRefund(val)
			if err != nil {
				return err
			}

			changed := false
			if refund.DeliveredDate == "" {
				refund.DeliveredDate = core.Today()
				changed = true
			}
			if refund.ReturnDeadline == "" {
				refund.ReturnDeadline = refund.DeliveredDate.AddDays(30)
				changed = true
			}
			if changed {
				updates = append(updates, refund)
			}
			return nil
		}); err != nil {
			return err
		}

		for _, refund := range updates {
			value, err := storage.MarshalRefund(refund)
			if err != nil {
				return err
			}
			if err := tx.Set(recordKey(refundPrefix, refund.Id), value); err != nil {
				return err
			}
		}
		migrated = len(updates)
		return commit(tx)
	}, true)
	if err != nil {
		return err
	}

	if migrated > 0 {
		b.logger.Info("backfilled refund deadlines", slog.Int("records", migrated))
	}
	return nil
}

// SchemaMarkerPresent reports whether the version marker exists. Used
// by tests and the reset path to confirm ClearAll left the marker
// alone.
func (b *Backend) SchemaMarkerPresent() (bool, error) {
	present := false
	err := b.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get([]byte(schemaVersionKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		present = true
		return nil
	}, false)
	return present, err
}

// rawRecordValue returns the stored bytes for a record key, or nil when
// absent. Tests use it to assert migrations leave untouched records bit
// for bit identical.
func (b *Backend) rawRecordValue(prefix string, id core.ID) ([]byte, error) {
	var raw []byte
	err := b.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(recordKey(prefix, id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			raw = bytes.Clone(val)
			return nil
		})
	}, false)
	return raw, err
}