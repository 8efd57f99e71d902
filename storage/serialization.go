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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/claimlog/claimlog/core"
)

// Records are stored as JSON. The stored bytes use the same field
// names as the export file, so a snapshot is a straight re-encode of
// what is on disk rather than a translation.

// MarshalOrder serializes an Order to bytes.
func MarshalOrder(order *core.Order) ([]byte, error) {
	return marshal(order)
}

// UnmarshalOrder deserializes an Order from bytes.
func UnmarshalOrder(data []byte) (*core.Order, error) {
	var order core.Order
	if err := unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MarshalRefund serializes a Refund to bytes.
func MarshalRefund(refund *core.Refund) ([]byte, error) {
	return marshal(refund)
}

// UnmarshalRefund deserializes a Refund from bytes.
func UnmarshalRefund(data []byte) (*core.Refund, error) {
	var refund core.Refund
	if err := unmarshal(data, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

// MarshalWarrantyClaim serializes a WarrantyClaim to bytes.
func MarshalWarrantyClaim(claim *core.WarrantyClaim) ([]byte, error) {
	return marshal(claim)
}

// UnmarshalWarrantyClaim deserializes a WarrantyClaim from bytes.
func UnmarshalWarrantyClaim(data []byte) (*core.WarrantyClaim, error) {
	var claim core.WarrantyClaim
	if err := unmarshal(data, &claim); err != nil {
		return nil, err
	}
	return &claim, nil
}

// MarshalContact serializes a Contact to bytes.
func MarshalContact(contact *core.Contact) ([]byte, error) {
	return marshal(contact)
}

// UnmarshalContact deserializes a Contact from bytes.
func UnmarshalContact(data []byte) (*core.Contact, error) {
	var contact core.Contact
	if err := unmarshal(data, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// MarshalCommunication serializes a Communication to bytes.
func MarshalCommunication(comm *core.Communication) ([]byte, error) {
	return marshal(comm)
}

// UnmarshalCommunication deserializes a Communication from bytes.
func UnmarshalCommunication(data []byte) (*core.Communication, error) {
	var comm core.Communication
	if err := unmarshal(data, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) ([]byte, error) {
	return marshal(doc)
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	var doc core.Document
	if err := unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalRetailer serializes a Retailer to bytes.
func MarshalRetailer(retailer *core.Retailer) ([]byte, error) {
	return marshal(retailer)
}

// UnmarshalRetailer deserializes a Retailer from bytes.
func UnmarshalRetailer(data []byte) (*core.Retailer, error) {
	var retailer core.Retailer
	if err := unmarshal(data, &retailer); err != nil {
		return nil, err
	}
	return &retailer, nil
}

func marshal(record any) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

func unmarshal(data []byte, record any) error {
	if err := json.Unmarshal(data, record); err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return nil
}
