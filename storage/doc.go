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


// Package storage provides the storage abstraction layer for claimlog.
//
// This package defines one repository interface per entity collection
// (orders, refunds, warranty claims, contacts, communications,
// documents, retailers), decoupling storage implementation from the
// rest of the application. The BadgerDB implementation lives in
// storage/badger; tests use its in-memory constructors.
//
// # Semantics
//
// All repositories share the same contract:
//
//   - Add assigns the id and creation timestamp; callers never supply
//     them. Records are validated at this boundary.
//   - Get returns nil (no error) for an unknown id.
//   - Update takes a patch with optional fields, fails with
//     ErrNotFound for an unknown id, and refreshes UpdatedAt.
//   - Delete is idempotent and cascades where the data model says so:
//     refund/warranty-claim deletes remove their communications, order
//     deletes remove dependent claims and documents. Cascade and
//     primary delete are one transaction.
//
// BulkStore adds the two cross-collection operations: ExportSnapshot
// (a consistent point-in-time read of everything) and ClearAll (a
// factory reset).
//
// # Thread Safety
//
// All repository implementations must be safe for concurrent use;
// isolation within a cascade or an export comes from running it as a
// single transaction against the engine.
//
// # Context Support
//
// All repository methods accept context.Context. Pass
// context.Background() for operations without specific timeout
// requirements.
package storage
