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


package core

import "fmt"

// ValidateOrder validates an Order according to domain rules.
//
// Validation rules:
//   - RetailerName must not be empty
//   - PurchasePrice and ShippingCost must not be negative
//   - PurchaseDate, if set, must be a yyyy-mm-dd value
//
// NOT validated (populated by the store):
//   - Id, CreatedAt, UpdatedAt
func ValidateOrder(order *Order) error {
	if order == nil {
		return fmt.Errorf("%w: order is nil", ErrInvalidOrder)
	}
	if order.RetailerName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, ErrEmptyRetailerName)
	}
	if order.PurchasePrice < 0 || order.ShippingCost < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, ErrNegativeAmount)
	}
	if order.PurchaseDate != "" && !order.PurchaseDate.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidOrder, ErrInvalidDate, order.PurchaseDate)
	}
	return nil
}

// ValidateRefund validates a Refund according to domain rules.
// Status is deliberately NOT restricted: unknown stages are stored
// verbatim and only normalized for display.
func ValidateRefund(refund *Refund) error {
	if refund == nil {
		return fmt.Errorf("%w: refund is nil", ErrInvalidRefund)
	}
	if refund.RetailerName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRefund, ErrEmptyRetailerName)
	}
	if refund.Amount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRefund, ErrNegativeAmount)
	}
	if refund.DeliveredDate != "" && !refund.DeliveredDate.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRefund, ErrInvalidDate, refund.DeliveredDate)
	}
	if refund.ReturnDeadline != "" && !refund.ReturnDeadline.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRefund, ErrInvalidDate, refund.ReturnDeadline)
	}
	return nil
}

// ValidateWarrantyClaim validates a WarrantyClaim according to domain rules.
func ValidateWarrantyClaim(claim *WarrantyClaim) error {
	if claim == nil {
		return fmt.Errorf("%w: claim is nil", ErrInvalidWarrantyClaim)
	}
	if claim.RetailerName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidWarrantyClaim, ErrEmptyRetailerName)
	}
	return nil
}

// ValidateContact validates a Contact according to domain rules.
func ValidateContact(contact *Contact) error {
	if contact == nil {
		return fmt.Errorf("%w: contact is nil", ErrInvalidContact)
	}
	if contact.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrEmptyName)
	}
	return nil
}

// ValidateCommunication validates a Communication according to domain rules.
//
// Validation rules:
//   - Message must not be empty
//   - exactly one of RefundId and WarrantyClaimId must be set
func ValidateCommunication(comm *Communication) error {
	if comm == nil {
		return fmt.Errorf("%w: communication is nil", ErrInvalidCommunication)
	}
	if comm.Message == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCommunication, ErrEmptyMessage)
	}
	if (comm.RefundId == "") == (comm.WarrantyClaimId == "") {
		return fmt.Errorf("%w: %w", ErrInvalidCommunication, ErrParentRef)
	}
	return nil
}

// ValidateDocument validates a Document according to domain rules.
// A document must name at least one parent (refund, warranty claim, or
// order); more than one is allowed, a receipt can back both an order
// and the refund raised against it.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyName)
	}
	if doc.RefundId == "" && doc.WarrantyClaimId == "" && doc.OrderId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingParentRef)
	}
	if doc.Size < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrNegativeAmount)
	}
	return nil
}

// ValidateRetailer validates a Retailer according to domain rules.
func ValidateRetailer(retailer *Retailer) error {
	if retailer == nil {
		return fmt.Errorf("%w: retailer is nil", ErrInvalidRetailer)
	}
	if retailer.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRetailer, ErrEmptyName)
	}
	return nil
}
