package badger

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
)

// Key prefixes. Record keys are prefix:id; index keys are
// prefix:value<NUL>id (string indexes) or prefix:micros|id (time
// indexes, 8-byte big-endian so lexicographic order is time order).
// Index entries store the record id as their value.
const (
	orderPrefix             = "ord"
	orderPurchaseDateIdx    = "ordpd"
	orderRetailerIdx        = "ordrt"
	orderCreatedIdx         = "ordct"
	refundPrefix            = "ref"
	refundCreatedIdx        = "refct"
	refundStatusIdx         = "refst"
	refundRetailerIdx       = "refrt"
	claimPrefix             = "wcl"
	claimCreatedIdx         = "wclct"
	claimStatusIdx          = "wclst"
	claimRetailerIdx        = "wclrt"
	claimOrderIdx           = "wclor"
	contactPrefix           = "con"
	contactCreatedIdx       = "conct"
	communicationPrefix     = "com"
	communicationRefundIdx  = "comrf"
	communicationClaimIdx   = "comwc"
	communicationTimeIdx    = "comts"
	documentPrefix          = "doc"
	documentRefundIdx       = "docrf"
	documentClaimIdx        = "docwc"
	documentOrderIdx        = "docor"
	retailerPrefix          = "rtl"
	retailerNameIdx         = "rtlnm"
	schemaVersionKey        = "meta:schema"
)

// allPrefixes lists every record and index prefix; ClearAll walks them.
// The schema marker is deliberately not included.
var allPrefixes = []string{
	orderPrefix, orderPurchaseDateIdx, orderRetailerIdx, orderCreatedIdx,
	refundPrefix, refundCreatedIdx, refundStatusIdx, refundRetailerIdx,
	claimPrefix, claimCreatedIdx, claimStatusIdx, claimRetailerIdx, claimOrderIdx,
	contactPrefix, contactCreatedIdx,
	communicationPrefix, communicationRefundIdx, communicationClaimIdx, communicationTimeIdx,
	documentPrefix, documentRefundIdx, documentClaimIdx, documentOrderIdx,
	retailerPrefix, retailerNameIdx,
}

// recordKey generates the primary key for a record.
func recordKey(prefix string, id core.ID) []byte {
	buf := make([]byte, 0, len(prefix)+1+len(id))
	buf = append(buf, prefix...)
	buf = append(buf, ':')
	buf = append(buf, id...)
	return buf
}

// stringIndexKey generates a composite key for a string-valued index.
// A NUL byte separates value from id so that "ab"+"c" and "a"+"bc"
// cannot collide; index values never contain NUL.
func stringIndexKey(prefix, value string, id core.ID) []byte {
	buf := make([]byte, 0, len(prefix)+1+len(value)+1+len(id))
	buf = append(buf, prefix...)
	buf = append(buf, ':')
	buf = append(buf, value...)
	buf = append(buf, 0)
	buf = append(buf, id...)
	return buf
}

// timeIndexKey generates a composite key for a time-valued index.
func timeIndexKey(prefix string, t time.Time, id core.ID) []byte {
	buf := make([]byte, 0, len(prefix)+1+8+len(id))
	buf = append(buf, prefix...)
	buf = append(buf, ':')
	var micros [8]byte
	binary.BigEndian.PutUint64(micros[:], uint64(t.UnixMicro()))
	buf = append(buf, micros[:]...)
	buf = append(buf, id...)
	return buf
}

// scanPrefix is the iteration prefix covering a whole index.
func scanPrefix(prefix string) []byte {
	return []byte(prefix + ":")
}

// fkScanPrefix is the iteration prefix covering one foreign-key value
// of a string index.
func fkScanPrefix(prefix string, fk core.ID) []byte {
	buf := make([]byte, 0, len(prefix)+1+len(fk)+1)
	buf = append(buf, prefix...)
	buf = append(buf, ':')
	buf = append(buf, fk...)
	buf = append(buf, 0)
	return buf
}

// indexScan walks every entry of an index in the given direction and
// passes the record ids (stored as entry values) to fn.
func indexScan(tx *badger.Txn, prefix []byte, dir storage.Direction, fn func(id core.ID) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.Reverse = dir == storage.Descending

	iter := tx.NewIterator(opts)
	defer iter.Close()

	seek := prefix
	if opts.Reverse {
		// Position past the last key under the prefix.
		seek = append(bytes.Clone(prefix), 0xff)
	}

	for iter.Seek(seek); iter.ValidForPrefix(prefix); iter.Next() {
		var id core.ID
		if err := iter.Item().Value(func(val []byte) error {
			id = core.ID(bytes.Clone(val))
			return nil
		}); err != nil {
			return err
		}
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}

// collectIndexIDs materializes the ids under an index prefix in order.
func collectIndexIDs(tx *badger.Txn, prefix []byte, dir storage.Direction) ([]core.ID, error) {
	var ids []core.ID
	err := indexScan(tx, prefix, dir, func(id core.ID) error {
		ids = append(ids, id)
		return nil
	})
	return ids, err
}
