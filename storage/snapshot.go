package storage

import (
	"time"

	"github.com/claimlog/claimlog/core"
)

// Snapshot is a full, consistent, read-only dump of all seven
// collections at one instant. It serializes directly to the portable
// export file format.
type Snapshot struct {
	Orders         []*core.Order         `json:"orders"`
	Refunds        []*core.Refund        `json:"refunds"`
	WarrantyClaims []*core.WarrantyClaim `json:"warrantyClaims"`
	Contacts       []*core.Contact       `json:"contacts"`
	Communications []*core.Communication `json:"communications"`
	Documents      []*core.Document      `json:"documents"`
	Retailers      []*core.Retailer      `json:"retailers"`
	ExportedAt     time.Time             `json:"exportedAt"`
}

// NewSnapshot returns a snapshot with empty (non-nil) collections, so
// an export of an empty store still serializes arrays, not nulls.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Orders:         []*core.Order{},
		Refunds:        []*core.Refund{},
		WarrantyClaims: []*core.WarrantyClaim{},
		Contacts:       []*core.Contact{},
		Communications: []*core.Communication{},
		Documents:      []*core.Document{},
		Retailers:      []*core.Retailer{},
		ExportedAt:     time.Now().UTC(),
	}
}

// TotalRecords returns the number of records across all collections.
func (s *Snapshot) TotalRecords() int {
	return len(s.Orders) + len(s.Refunds) + len(s.WarrantyClaims) +
		len(s.Contacts) + len(s.Communications) + len(s.Documents) +
		len(s.Retailers)
}
