package core

import (
	"encoding/hex"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/oklog/ulid/v2"
)

// ID is the unique identifier of a stored record. IDs are opaque,
// store-generated ULID strings: a millisecond time component followed
// by random bits, so they are collision-resistant and sort
// lexicographically in creation order. An ID is never reused or
// reassigned.
type ID string

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewID returns a fresh identifier suitable for storage keys.
func NewID() ID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String())
}

// Fingerprint returns a short BLAKE2b digest of a document payload.
// Identical payloads produce identical fingerprints, which is enough
// to spot a re-uploaded attachment.
func Fingerprint(payload []byte) string {
	h, _ := blake2b.New(16, nil)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
