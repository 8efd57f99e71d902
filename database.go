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

package claimlog

import (
	"context"
	"log/slog"

	"github.com/claimlog/claimlog/storage"
	"github.com/claimlog/claimlog/storage/badger"
)

// Database is the top-level handle on a dispute store. Opening it
// migrates the schema to the current version and seeds the retailer
// reference data when the store is brand new.
type Database struct {
	backend      *badger.Backend
	orderRepo    storage.OrderRepository
	refundRepo   storage.RefundRepository
	claimRepo    storage.WarrantyClaimRepository
	contactRepo  storage.ContactRepository
	commRepo     storage.CommunicationRepository
	documentRepo storage.DocumentRepository
	retailerRepo *badger.RetailerRepository
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
	skipSeed bool
}

// WithInMemory keeps the store entirely in memory. Used by tests and
// throwaway runs; nothing survives Close.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) { o.inMemory = true }
}

// WithoutSeeding skips the default retailer seeding on first open.
func WithoutSeeding() DatabaseOption {
	return func(o *databaseOptions) { o.skipSeed = true }
}

// NewDatabase opens the store at filePath, runs pending schema
// migrations, and seeds reference data into an empty store.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := backend.Migrate(ctx); err != nil {
		backend.Close()
		return nil, err
	}

	retailerRepo := badger.NewRetailerRepository(backend)
	if !options.skipSeed {
		if err := backend.SeedRetailers(ctx, retailerRepo); err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:      backend,
		orderRepo:    badger.NewOrderRepository(backend),
		refundRepo:   badger.NewRefundRepository(backend),
		claimRepo:    badger.NewWarrantyClaimRepository(backend),
		contactRepo:  badger.NewContactRepository(backend),
		commRepo:     badger.NewCommunicationRepository(backend),
		documentRepo: badger.NewDocumentRepository(backend),
		retailerRepo: retailerRepo,
		logger:       slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) Orders() storage.OrderRepository {
	return db.orderRepo
}

func (db *Database) Refunds() storage.RefundRepository {
	return db.refundRepo
}

func (db *Database) WarrantyClaims() storage.WarrantyClaimRepository {
	return db.claimRepo
}

func (db *Database) Contacts() storage.ContactRepository {
	return db.contactRepo
}

func (db *Database) Communications() storage.CommunicationRepository {
	return db.commRepo
}

func (db *Database) Documents() storage.DocumentRepository {
	return db.documentRepo
}

func (db *Database) Retailers() storage.RetailerRepository {
	return db.retailerRepo
}

// ExportSnapshot returns a consistent point-in-time copy of all seven
// collections.
func (db *Database) ExportSnapshot(ctx context.Context) (*storage.Snapshot, error) {
	return db.backend.ExportSnapshot(ctx)
}

// ClearAll empties the store. The schema version marker survives, so
// the reset store does not re-run migrations on next open.
func (db *Database) ClearAll(ctx context.Context) error {
	return db.backend.ClearAll(ctx)
}

var _ storage.BulkStore = (*Database)(nil)
