package storage

import (
	"context"

	"github.com/claimlog/claimlog/core"
)

// Direction is the sort direction for ordered collection reads.
type Direction int

const (
	// Descending is the default: newest (or lexicographically last) first.
	Descending Direction = iota
	// Ascending is oldest (or lexicographically first) first.
	Ascending
)

// SortField names a secondary index a collection read can be ordered by.
// Each repository accepts the subset of fields its collection indexes;
// anything else fails with ErrInvalidQuery.
type SortField string

const (
	SortByCreatedAt    SortField = "createdAt"
	SortByPurchaseDate SortField = "purchaseDate"
	SortByRetailerName SortField = "retailerName"
	SortByStatus       SortField = "status"
	SortByName         SortField = "name"
)

// OrderRepository provides operations for tracked purchases.
// Deleting an order also deletes warranty claims and documents that
// reference it, in the same transaction.
type OrderRepository interface {
	// Add assigns an id and timestamps, validates, and inserts the record.
	// Returns the stored record.
	Add(ctx context.Context, order *core.Order) (*core.Order, error)

	// Get returns the record, or nil without error when the id is unknown.
	Get(ctx context.Context, id core.ID) (*core.Order, error)

	// GetAll returns every order, newest purchase first.
	GetAll(ctx context.Context) ([]*core.Order, error)

	// GetAllOrderedBy returns every order sorted by an indexed field.
	// Supported fields: purchaseDate, retailerName, createdAt.
	GetAllOrderedBy(ctx context.Context, field SortField, dir Direction) ([]*core.Order, error)

	// Update merges the patch over the stored record and refreshes
	// UpdatedAt. Returns ErrNotFound if the id is unknown.
	Update(ctx context.Context, id core.ID, patch *core.OrderPatch) (*core.Order, error)

	// Delete removes the order and cascades to dependent warranty
	// claims and documents. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id core.ID) error
}

// RefundRepository provides operations for refunds. Deleting a refund
// also deletes its communications, in the same transaction.
type RefundRepository interface {
	Add(ctx context.Context, refund *core.Refund) (*core.Refund, error)
	Get(ctx context.Context, id core.ID) (*core.Refund, error)

	// GetAll returns every refund, newest first.
	GetAll(ctx context.Context) ([]*core.Refund, error)

	// GetAllOrderedBy supports createdAt, status, and retailerName.
	GetAllOrderedBy(ctx context.Context, field SortField, dir Direction) ([]*core.Refund, error)

	Update(ctx context.Context, id core.ID, patch *core.RefundPatch) (*core.Refund, error)
	Delete(ctx context.Context, id core.ID) error
}

// WarrantyClaimRepository provides operations for warranty claims.
// Deleting a claim also deletes its communications.
type WarrantyClaimRepository interface {
	Add(ctx context.Context, claim *core.WarrantyClaim) (*core.WarrantyClaim, error)
	Get(ctx context.Context, id core.ID) (*core.WarrantyClaim, error)

	// GetAll returns every claim, newest first.
	GetAll(ctx context.Context) ([]*core.WarrantyClaim, error)

	// GetAllOrderedBy supports createdAt, status, and retailerName.
	GetAllOrderedBy(ctx context.Context, field SortField, dir Direction) ([]*core.WarrantyClaim, error)

	// GetByOrder returns the claims raised against one order.
	GetByOrder(ctx context.Context, orderID core.ID) ([]*core.WarrantyClaim, error)

	Update(ctx context.Context, id core.ID, patch *core.WarrantyClaimPatch) (*core.WarrantyClaim, error)
	Delete(ctx context.Context, id core.ID) error
}

// ContactRepository provides operations for standalone contacts.
type ContactRepository interface {
	Add(ctx context.Context, contact *core.Contact) (*core.Contact, error)
	Get(ctx context.Context, id core.ID) (*core.Contact, error)

	// GetAll returns every contact, newest first.
	GetAll(ctx context.Context) ([]*core.Contact, error)

	Update(ctx context.Context, id core.ID, patch *core.ContactPatch) (*core.Contact, error)
	Delete(ctx context.Context, id core.ID) error
}

// CommunicationRepository provides operations for logged messages.
// Communications are immutable once written; there is no update.
type CommunicationRepository interface {
	// Add assigns id and timestamp and inserts the record. Exactly one
	// of RefundId and WarrantyClaimId must be set.
	Add(ctx context.Context, comm *core.Communication) (*core.Communication, error)

	Get(ctx context.Context, id core.ID) (*core.Communication, error)
	GetAll(ctx context.Context) ([]*core.Communication, error)

	// GetByRefund returns the refund's messages, oldest first.
	GetByRefund(ctx context.Context, refundID core.ID) ([]*core.Communication, error)

	// GetByWarrantyClaim returns the claim's messages, oldest first.
	GetByWarrantyClaim(ctx context.Context, claimID core.ID) ([]*core.Communication, error)

	Delete(ctx context.Context, id core.ID) error
}

// DocumentRepository provides operations for attachment references.
// Documents are immutable once written.
type DocumentRepository interface {
	Add(ctx context.Context, doc *core.Document) (*core.Document, error)
	Get(ctx context.Context, id core.ID) (*core.Document, error)
	GetAll(ctx context.Context) ([]*core.Document, error)
	GetByRefund(ctx context.Context, refundID core.ID) ([]*core.Document, error)
	GetByWarrantyClaim(ctx context.Context, claimID core.ID) ([]*core.Document, error)
	GetByOrder(ctx context.Context, orderID core.ID) ([]*core.Document, error)
	Delete(ctx context.Context, id core.ID) error
}

// RetailerRepository provides operations for retailer reference data.
type RetailerRepository interface {
	Add(ctx context.Context, retailer *core.Retailer) (*core.Retailer, error)
	Get(ctx context.Context, id core.ID) (*core.Retailer, error)

	// GetAll returns every retailer, sorted by name ascending.
	GetAll(ctx context.Context) ([]*core.Retailer, error)

	// Count returns the number of retailers. Used to decide whether
	// the default reference entries need seeding.
	Count(ctx context.Context) (int, error)

	Update(ctx context.Context, id core.ID, patch *core.RetailerPatch) (*core.Retailer, error)
	Delete(ctx context.Context, id core.ID) error
}

// BulkStore provides the cross-collection operations: a consistent
// point-in-time export and a full factory reset. Both run as a single
// transaction against the underlying engine.
type BulkStore interface {
	// ExportSnapshot returns the full contents of all seven
	// collections as of one instant. Writes issued after the call do
	// not appear in the returned snapshot.
	ExportSnapshot(ctx context.Context) (*Snapshot, error)

	// ClearAll empties all seven collections atomically.
	ClearAll(ctx context.Context) error
}
