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

import "errors"

// Domain validation errors
var (
	// ErrInvalidOrder indicates an Order failed validation.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInvalidRefund indicates a Refund failed validation.
	ErrInvalidRefund = errors.New("invalid refund")

	// ErrInvalidWarrantyClaim indicates a WarrantyClaim failed validation.
	ErrInvalidWarrantyClaim = errors.New("invalid warranty claim")

	// ErrInvalidContact indicates a Contact failed validation.
	ErrInvalidContact = errors.New("invalid contact")

	// ErrInvalidCommunication indicates a Communication failed validation.
	ErrInvalidCommunication = errors.New("invalid communication")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidRetailer indicates a Retailer failed validation.
	ErrInvalidRetailer = errors.New("invalid retailer")

	// ErrEmptyRetailerName indicates a required retailer name is missing.
	ErrEmptyRetailerName = errors.New("retailer name cannot be empty")

	// ErrEmptyName indicates a required name field is missing.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyMessage indicates a communication has no message text.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrNegativeAmount indicates a money field is below zero.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidDate indicates a date field is not a yyyy-mm-dd value.
	ErrInvalidDate = errors.New("date must be yyyy-mm-dd")

	// ErrParentRef indicates a dependent record does not reference
	// exactly one parent.
	ErrParentRef = errors.New("exactly one parent reference required")

	// ErrMissingParentRef indicates a document references no parent at all.
	ErrMissingParentRef = errors.New("a parent reference is required")
)
