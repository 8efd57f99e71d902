package core

import "time"

// Order is a tracked purchase. Claims and documents may reference it
// through their OrderId field.
type Order struct {
	Id              ID        `json:"id"`
	RetailerName    string    `json:"retailerName"`
	OrderNumber     string    `json:"orderNumber,omitempty"`
	PurchaseDate    Date      `json:"purchaseDate,omitempty"`
	ItemDescription string    `json:"itemDescription,omitempty"`
	PurchasePrice   float64   `json:"purchasePrice,omitempty"`
	ShippingCost    float64   `json:"shippingCost,omitempty"`
	WarrantyPeriod  string    `json:"warrantyPeriod,omitempty"`
	ClaimReason     string    `json:"claimReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Refund tracks a return in progress. DeliveredDate and ReturnDeadline
// were introduced after the first release; records created before then
// are backfilled at open time (see storage/badger migration).
type Refund struct {
	Id             ID        `json:"id"`
	RetailerName   string    `json:"retailerName"`
	Amount         float64   `json:"amount,omitempty"`
	Method         string    `json:"method,omitempty"`
	Status         Status    `json:"status,omitempty"`
	DeliveredDate  Date      `json:"deliveredDate,omitempty"`
	ReturnDeadline Date      `json:"returnDeadline,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// WarrantyClaim tracks a repair or replacement request. OrderId is set
// when the claim was raised against a tracked order; deleting that
// order deletes the claim.
type WarrantyClaim struct {
	Id           ID        `json:"id"`
	RetailerName string    `json:"retailerName"`
	OrderId      ID        `json:"orderId,omitempty"`
	ItemInfo     string    `json:"itemInfo,omitempty"`
	Method       string    `json:"method,omitempty"`
	Status       Status    `json:"status,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Contact is a standalone person record (support agent, escalation
// contact). It references nothing and nothing references it.
type Contact struct {
	Id             ID        `json:"id"`
	Name           string    `json:"name"`
	SocialPlatform string    `json:"socialPlatform,omitempty"`
	Handle         string    `json:"handle,omitempty"`
	Role           string    `json:"role,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Communication is one logged message against a refund or a warranty
// claim. Exactly one of RefundId and WarrantyClaimId is set; deleting
// the parent deletes the communication.
type Communication struct {
	Id              ID        `json:"id"`
	RefundId        ID        `json:"refundId,omitempty"`
	WarrantyClaimId ID        `json:"warrantyClaimId,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	Message         string    `json:"message"`
}

// Document is a stored attachment reference (receipt, photo, shipping
// label). It points at a refund, a warranty claim, or an order;
// deleting an order deletes its documents.
type Document struct {
	Id              ID        `json:"id"`
	RefundId        ID        `json:"refundId,omitempty"`
	WarrantyClaimId ID        `json:"warrantyClaimId,omitempty"`
	OrderId         ID        `json:"orderId,omitempty"`
	Name            string    `json:"name"`
	ContentType     string    `json:"contentType,omitempty"`
	Size            int64     `json:"size,omitempty"`
	PayloadRef      string    `json:"payloadRef,omitempty"`
	Fingerprint     string    `json:"fingerprint,omitempty"`
	UploadedAt      time.Time `json:"uploadedAt"`
}

// Retailer is reference data, seeded with defaults on first run and
// freely editable afterward.
type Retailer struct {
	Id                     ID        `json:"id"`
	Name                   string    `json:"name"`
	PhoneNumber            string    `json:"phoneNumber,omitempty"`
	Email                  string    `json:"email,omitempty"`
	Website                string    `json:"website,omitempty"`
	PreferredContactMethod string    `json:"preferredContactMethod,omitempty"`
	CreatedAt              time.Time `json:"createdAt"`
}
